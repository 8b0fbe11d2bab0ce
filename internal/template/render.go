package template

import "strings"

// RegenerateFormat builds the canonical result format from field order:
// every field's token, concatenated with no separators.
func RegenerateFormat(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.Token())
	}
	return b.String()
}

// Segment computes the text substituted for a field given its raw value.
func Segment(f Field, value string) string {
	v := strings.TrimSpace(value)
	switch {
	case v != "":
		return f.Prefix + v + f.Suffix
	case f.HideIfEmpty:
		return ""
	default:
		return f.Prefix + f.Suffix
	}
}

// Render substitutes each field's segment into the result format and drops
// lines left blank. Tokens are replaced one name at a time in field order,
// so a segment containing a later field's token is substituted again. When
// several fields share a name the last one's segment is used.
func Render(t Template, values map[string]string) string {
	if t.Config.ResultFormat == "" {
		return ""
	}

	segments := make(map[string]string, len(t.Fields))
	order := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if _, ok := segments[f.Name]; !ok {
			order = append(order, f.Name)
		}
		segments[f.Name] = Segment(f, values[f.Name])
	}

	result := t.Config.ResultFormat
	for _, name := range order {
		result = strings.ReplaceAll(result, "{"+name+"}", segments[name])
	}
	return pruneBlankLines(result)
}

func pruneBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
