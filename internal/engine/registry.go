package engine

import (
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/lussekatt/internal/models"
	"github.com/shrimpsizemoose/lussekatt/internal/timeparse"
)

// Registry holds the students granted special consideration and, where
// one was granted, their personal deadline. Presence in Special is what
// selects the special penalty ladder; an override deadline is optional
// on top of that.
type Registry struct {
	Special   map[string]bool
	Overrides map[string]time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		Special:   make(map[string]bool),
		Overrides: make(map[string]time.Time),
	}
}

// BuildRegistry folds the extension table into a Registry. Rows with a
// malformed student ID are dropped. A row whose deadline text does not
// parse still marks the student as special; they just keep the global
// deadline.
func BuildRegistry(rows []models.ExtensionRow) *Registry {
	reg := NewRegistry()

	for _, row := range rows {
		id := strings.TrimSpace(row.StudentID)
		if !models.ValidStudentID(id) {
			continue
		}

		reg.Special[id] = true

		if strings.TrimSpace(row.RawDeadline) == "" {
			continue
		}
		deadline, ok := timeparse.Parse(row.RawDeadline)
		if !ok {
			logger.Debug.Printf("Ignoring unparseable override deadline %q for student %s", row.RawDeadline, id)
			continue
		}
		reg.Overrides[id] = deadline
	}

	return reg
}

// DeadlineFor resolves the deadline that applies to a student.
func (r *Registry) DeadlineFor(studentID string, global time.Time) time.Time {
	if override, ok := r.Overrides[studentID]; ok {
		return override
	}
	return global
}
