package template

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed presets.json
var presetsJSON []byte

// Preset is a ready-made field set offered when a template is still empty.
type Preset struct {
	Key    string
	Name   string
	fields []map[string]any
}

var presets = mustLoadPresets(presetsJSON)

func mustLoadPresets(data []byte) []Preset {
	var docs []struct {
		Key    string           `json:"key"`
		Name   string           `json:"name"`
		Fields []map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		panic(fmt.Sprintf("template: parse presets: %v", err))
	}
	out := make([]Preset, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Preset{Key: doc.Key, Name: doc.Name, fields: doc.Fields})
	}
	return out
}

// Presets returns the available presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the preset keys in display order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Key)
	}
	return names
}

// LoadPreset returns a fresh copy of the named preset's fields. Fields without
// an ID get a new one, a missing width becomes normal and hide_if_empty is on
// unless the preset turns it off explicitly.
func LoadPreset(name string) ([]Field, error) {
	for _, p := range presets {
		if p.Key != name {
			continue
		}
		fields := make([]Field, 0, len(p.fields))
		for _, obj := range p.fields {
			f := decodeField(obj)
			if f.ID == "" {
				f.ID = newFieldID()
			}
			if f.Width == "" {
				f.Width = WidthNormal
			}
			if hide, ok := obj["hide_if_empty"].(bool); ok {
				f.HideIfEmpty = hide
			} else {
				f.HideIfEmpty = true
			}
			fields = append(fields, f)
		}
		return fields, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
