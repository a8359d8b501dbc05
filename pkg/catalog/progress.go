package catalog

import "math"

// Progress is an aggregate count of entries by status.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	NotStarted int `json:"not_started"`
	Percentage int `json:"percentage"`
}

// ComputeProgress counts entries by status across the whole catalog.
// Percentage is completed/total rounded half away from zero, and 0 for an
// empty catalog.
func ComputeProgress(c *Catalog) Progress {
	var p Progress
	if c == nil {
		return p
	}
	for _, s := range c.Sections {
		for _, e := range s.Entries {
			p.Total++
			switch e.Status {
			case StatusComplete:
				p.Completed++
			case StatusInProgress:
				p.InProgress++
			default:
				p.NotStarted++
			}
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}
