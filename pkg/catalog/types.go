package catalog

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of an entry's visual transformation.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
)

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusComplete}
}

// ParseStatus parses a status case-insensitively. Dashes and spaces are
// accepted in place of underscores ("in-progress", "not started").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch Status(norm) {
	case StatusNotStarted, StatusInProgress, StatusComplete:
		return Status(norm), nil
	default:
		return "", fmt.Errorf("invalid status %q (must be NOT_STARTED, IN_PROGRESS or COMPLETE)", s)
	}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Category is the key of one catalog section.
type Category string

// Default categories shipped with the bundled catalog.
const (
	CategoryForms       Category = "forms"
	CategoryNavigation  Category = "navigation"
	CategoryDataDisplay Category = "data-display"
	CategoryFeedback    Category = "feedback"
	CategorySurfaces    Category = "surfaces"
	CategoryUtils       Category = "utils"
)

// DefaultCategories returns the built-in category order.
func DefaultCategories() []Category {
	return []Category{
		CategoryForms,
		CategoryNavigation,
		CategoryDataDisplay,
		CategoryFeedback,
		CategorySurfaces,
		CategoryUtils,
	}
}

// Preset is a named set of props used to demo one variant, size or state.
type Preset struct {
	Name  string         `yaml:"name" json:"name" validate:"required"`
	Props map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
}

// Entry represents one widget in the showcase.
type Entry struct {
	Name        string   `yaml:"name" json:"name" validate:"required"`
	DisplayName string   `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Status      Status   `yaml:"status" json:"status" validate:"omitempty,oneof=NOT_STARTED IN_PROGRESS COMPLETE"`
	Variants    []Preset `yaml:"variants,omitempty" json:"variants,omitempty" validate:"dive"`
	Sizes       []Preset `yaml:"sizes,omitempty" json:"sizes,omitempty" validate:"dive"`
	States      []Preset `yaml:"states,omitempty" json:"states,omitempty" validate:"dive"`
}

// Title returns the display name, falling back to the entry name.
func (e Entry) Title() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

// Clone deep-copies the preset slices so the copy can be mutated freely.
func (e Entry) Clone() Entry {
	e.Variants = clonePresets(e.Variants)
	e.Sizes = clonePresets(e.Sizes)
	e.States = clonePresets(e.States)
	return e
}

func clonePresets(in []Preset) []Preset {
	if in == nil {
		return nil
	}
	out := make([]Preset, len(in))
	for i, p := range in {
		out[i] = Preset{Name: p.Name}
		if p.Props != nil {
			out[i].Props = make(map[string]any, len(p.Props))
			for k, v := range p.Props {
				out[i].Props[k] = v
			}
		}
	}
	return out
}

// Section is one category and its ordered entries.
type Section struct {
	Category Category `yaml:"category" json:"category" validate:"required"`
	Entries  []Entry  `yaml:"entries" json:"entries" validate:"dive"`
}
