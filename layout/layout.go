// Package layout reads the initial garden scene from YAML.
package layout

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation problem.
var ErrInvalid = errors.New("layout: invalid")

// Layout is the initial scene: a ground plane, the model catalog to
// preload, placed models and buttons.
type Layout struct {
	Ground  Ground   `yaml:"ground"`
	Catalog []string `yaml:"catalog"`
	Models  []Model  `yaml:"models"`
	Buttons []Button `yaml:"buttons"`
}

type Ground struct {
	Size  [2]float64 `yaml:"size"`
	Color uint32     `yaml:"color"`
}

type Model struct {
	Model    string     `yaml:"model"`
	Position [3]float64 `yaml:"position"`
	Scale    float64    `yaml:"scale"`
	Rotation float64    `yaml:"rotation"` // degrees around Y
}

type Button struct {
	Label    string     `yaml:"label"`
	Position [3]float64 `yaml:"position"`
	// Action names the script function run on click.
	Action string `yaml:"action"`
}

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML data. Missing scales default to 1 and a missing
// ground to a 15x15 grass plane. name is used in errors.
func Parse(data []byte, name string) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout %s: %w", name, err)
	}
	if l.Ground.Size == [2]float64{} {
		l.Ground.Size = [2]float64{15, 15}
	}
	if l.Ground.Color == 0 {
		l.Ground.Color = 0x3f7d1a
	}
	for i := range l.Models {
		if l.Models[i].Scale == 0 {
			l.Models[i].Scale = 1
		}
	}
	return &l, nil
}

// Validate checks the layout against the set of known model identifiers and
// script actions. All problems are reported together; each wraps ErrInvalid.
// A nil hasAction skips action checks.
func (l *Layout) Validate(hasModel, hasAction func(string) bool) error {
	var errs error
	if l.Ground.Size[0] <= 0 || l.Ground.Size[1] <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w: ground size %v must be positive", ErrInvalid, l.Ground.Size))
	}
	for i, id := range l.Catalog {
		if !hasModel(id) {
			errs = multierr.Append(errs, fmt.Errorf("%w: catalog[%d]: unknown model %q", ErrInvalid, i, id))
		}
	}
	for i, m := range l.Models {
		if !hasModel(m.Model) {
			errs = multierr.Append(errs, fmt.Errorf("%w: models[%d]: unknown model %q", ErrInvalid, i, m.Model))
		}
		if m.Scale < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: models[%d]: negative scale %v", ErrInvalid, i, m.Scale))
		}
	}
	seen := make(map[string]bool, len(l.Buttons))
	for i, b := range l.Buttons {
		if b.Label == "" {
			errs = multierr.Append(errs, fmt.Errorf("%w: buttons[%d]: empty label", ErrInvalid, i))
		}
		if seen[b.Label] {
			errs = multierr.Append(errs, fmt.Errorf("%w: buttons[%d]: duplicate label %q", ErrInvalid, i, b.Label))
		}
		seen[b.Label] = true
		if b.Action != "" && hasAction != nil && !hasAction(b.Action) {
			errs = multierr.Append(errs, fmt.Errorf("%w: buttons[%d]: unknown action %q", ErrInvalid, i, b.Action))
		}
	}
	return errs
}
