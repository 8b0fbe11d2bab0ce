package template

import (
	"encoding/json"
	"fmt"
)

// Encode serializes t into the stored document form.
func Encode(t Template) (string, error) {
	if t.Fields == nil {
		t.Fields = []Field{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encode template: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored document. It reports false when text is not a JSON
// object; callers then fall back to New. Missing or mistyped parts are
// defaulted rather than rejected.
func Decode(text string) (Template, bool) {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Template{}, false
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return Template{}, false
	}

	t := Template{Fields: []Field{}}

	if style, ok := doc["style"].(map[string]any); ok {
		t.Style.Icon = stringAttr(style, "icon")
		t.Style.Color = stringAttr(style, "color")
	} else {
		// Early item documents kept icon and color at the top level.
		t.Style.Icon = stringAttr(doc, "icon")
		t.Style.Color = stringAttr(doc, "color")
	}

	if cfg, ok := doc["config"].(map[string]any); ok {
		t.Config.ResultFormat = stringAttr(cfg, "result_format")
	}

	if fields, ok := doc["fields"].([]any); ok {
		for _, item := range fields {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			t.Fields = append(t.Fields, decodeField(obj))
		}
	}

	return t, true
}

// DecodeOrNew decodes text, returning New when the document is unusable.
func DecodeOrNew(text string) Template {
	if t, ok := Decode(text); ok {
		return t
	}
	return New()
}

func decodeField(obj map[string]any) Field {
	hide, _ := obj["hide_if_empty"].(bool)
	return Field{
		ID:          stringAttr(obj, "id"),
		Name:        stringAttr(obj, "name"),
		Label:       stringAttr(obj, "label"),
		Type:        FieldType(stringAttr(obj, "type")),
		Width:       FieldWidth(stringAttr(obj, "width")),
		Placeholder: stringAttr(obj, "placeholder"),
		Prefix:      stringAttr(obj, "prefix"),
		Suffix:      stringAttr(obj, "suffix"),
		HideIfEmpty: hide,
	}
}

func stringAttr(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}
