// Package vault holds the built-in default inventory and the spawn template
// pool, and loads replacements from a YAML file.
package vault

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/placement"
)

var (
	//go:embed data/defaults.yaml
	defaultsYAML []byte

	//go:embed data/templates.yaml
	templatesYAML []byte
)

// Vault is a default item set plus a template pool.
type Vault struct {
	Defaults  []item.Item     `yaml:"defaults"`
	Templates []item.Template `yaml:"templates"`
}

// Builtin returns the embedded vault.
func Builtin() Vault {
	var v Vault
	if err := decodeStrict(defaultsYAML, &v.Defaults); err != nil {
		panic(fmt.Sprintf("vault: embedded defaults: %v", err))
	}
	if err := decodeStrict(templatesYAML, &v.Templates); err != nil {
		panic(fmt.Sprintf("vault: embedded templates: %v", err))
	}
	normalize(&v)
	return v
}

// LoadFile reads a vault file with optional "defaults" and "templates"
// sections. A missing section keeps the built-in one.
func LoadFile(path string) (Vault, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vault{}, fmt.Errorf("reading vault: %w", err)
	}
	return Parse(data)
}

// Parse decodes vault YAML over the built-in vault.
func Parse(data []byte) (Vault, error) {
	var override Vault
	if err := decodeStrict(data, &override); err != nil {
		return Vault{}, fmt.Errorf("parsing vault: %w", err)
	}

	v := Builtin()
	if override.Defaults != nil {
		v.Defaults = override.Defaults
	}
	if override.Templates != nil {
		v.Templates = override.Templates
	}
	normalize(&v)
	return v, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func normalize(v *Vault) {
	for i := range v.Defaults {
		if v.Defaults[i].Properties == nil {
			v.Defaults[i].Properties = []item.Property{}
		}
	}
	for i := range v.Templates {
		if v.Templates[i].Properties == nil {
			v.Templates[i].Properties = []item.Property{}
		}
	}
}

// DefaultItems returns a fresh copy of the default set.
func (v Vault) DefaultItems() []item.Item {
	return item.CloneAll(v.Defaults)
}

// Validate checks that every template is usable and that the default set
// fits the grid without overlaps.
func (v Vault) Validate(g grid.Geometry) error {
	if len(v.Templates) == 0 {
		return errors.New("vault has no templates")
	}
	for _, t := range v.Templates {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(v.Defaults))
	for _, it := range v.Defaults {
		if err := it.Validate(); err != nil {
			return err
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: %q", item.ErrDuplicateID, it.ID)
		}
		seen[it.ID] = true
	}
	if err := placement.CheckInvariants(g, v.Defaults); err != nil {
		return fmt.Errorf("default items: %w", err)
	}
	return nil
}
