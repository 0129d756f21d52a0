package recolor

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is a scripted remap read from YAML:
//
//	colors:
//	  Outline: "20, 12, 28, 255"
//	  Midtone: "#d04648"
type Plan struct {
	Colors map[string]string `yaml:"colors"`
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(data)
}

func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &p, nil
}

// Table resolves plan labels against palette. Unlisted colors keep their
// value. Two keys naming the same entry are an error.
func (p *Plan) Table(palette []LabeledColor) (Table, error) {
	t := IdentityTable(palette)
	seen := make(map[color.NRGBA]string, len(p.Colors))
	for label, value := range p.Colors {
		lc, err := FindLabel(palette, label)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[lc.Color]; ok {
			first, second := min(prev, label), max(prev, label)
			return nil, fmt.Errorf("%w: %q and %q both name %s", ErrDuplicateLabel, first, second, lc.Label)
		}
		seen[lc.Color] = label
		c, err := ParseRGBA(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label, err)
		}
		t[lc.Color] = c
	}
	return t, nil
}
