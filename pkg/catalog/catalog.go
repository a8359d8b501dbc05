package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/showcase/pkg/util"
)

// Catalog holds every showcase entry grouped by category.
// Section order is significant: it is the order categories are listed in.
type Catalog struct {
	Name     string    `yaml:"name" json:"name"`
	Version  string    `yaml:"version" json:"version"`
	Sections []Section `yaml:"sections" json:"sections" validate:"dive"`
}

var validate = validator.New()

// Categories returns the category keys in catalog order.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	cats := make([]Category, 0, len(c.Sections))
	for _, s := range c.Sections {
		cats = append(cats, s.Category)
	}
	return cats
}

// Section returns the section for cat.
func (c *Catalog) Section(cat Category) (*Section, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Sections {
		if c.Sections[i].Category == cat {
			return &c.Sections[i], true
		}
	}
	return nil, false
}

// Has reports whether the catalog contains cat, even with no entries.
func (c *Catalog) Has(cat Category) bool {
	_, ok := c.Section(cat)
	return ok
}

// Len returns the total number of entries across all categories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, s := range c.Sections {
		n += len(s.Entries)
	}
	return n
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return &Catalog{}
	}
	out := &Catalog{
		Name:     c.Name,
		Version:  c.Version,
		Sections: make([]Section, len(c.Sections)),
	}
	for i, s := range c.Sections {
		entries := make([]Entry, len(s.Entries))
		for j, e := range s.Entries {
			entries[j] = e.Clone()
		}
		out.Sections[i] = Section{Category: s.Category, Entries: entries}
	}
	return out
}

// Validate checks the catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Catalog) Validate() []error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				errs = append(errs, fmt.Errorf("%s failed validation for tag '%s'", fieldPath(fe), fe.Tag()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	seenCategories := make(map[Category]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.Category == "" {
			continue // reported by the struct rules
		}
		if seenCategories[s.Category] {
			errs = append(errs, fmt.Errorf("sections[%d]: duplicate category %q", i, s.Category))
			continue
		}
		seenCategories[s.Category] = true

		names := make(map[string]bool, len(s.Entries))
		for _, e := range s.Entries {
			if e.Name == "" {
				continue
			}
			if names[e.Name] {
				errs = append(errs, fmt.Errorf("category %q: duplicate entry name %q", s.Category, e.Name))
				continue
			}
			names[e.Name] = true
		}
	}

	return errs
}

// fieldPath renders a validator namespace as a lower-cased dotted path,
// e.g. "catalog.sections[0].entries[2].status".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return strings.Join(parts, ".")
}

// normalize fills defaults that the catalog file may omit.
func (c *Catalog) normalize() {
	for i := range c.Sections {
		for j := range c.Sections[i].Entries {
			if c.Sections[i].Entries[j].Status == "" {
				c.Sections[i].Entries[j].Status = StatusNotStarted
			}
		}
	}
}

// LoadFromFile loads a catalog from a YAML or JSON file and validates it.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := util.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a catalog from raw YAML or JSON bytes and validates it.
// JSON is detected by a leading '{'.
func LoadFromBytes(data []byte) (*Catalog, error) {
	var cat Catalog
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	}

	cat.normalize()

	if errs := cat.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}
	return &cat, nil
}

// EncodeYAML renders the catalog in the same layout LoadFromBytes reads.
func (c *Catalog) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}
