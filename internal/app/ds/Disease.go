package ds

import "strings"

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Valid reports whether s is one of Low, Medium, High.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type Disease struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Symptoms    []string `json:"symptoms"`
	Solutions   []string `json:"solutions"`
	Prevention  []string `json:"prevention"`
	Severity    Severity `json:"severity" binding:"required"`
	CommonAreas []string `json:"commonAreas"`
}

// Matches does a case-insensitive search over name, description and symptoms.
func (d Disease) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Description), q) {
		return true
	}
	for _, s := range d.Symptoms {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
