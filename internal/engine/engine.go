// Package engine is the penalty pipeline: reduce the attempt log to
// final submissions, resolve each student's deadline against the
// extension registry, and map lateness onto the penalty schedule.
package engine

import (
	"math"
	"sort"
	"time"

	"github.com/shrimpsizemoose/lussekatt/internal/metrics"
	"github.com/shrimpsizemoose/lussekatt/internal/models"
	"github.com/shrimpsizemoose/lussekatt/internal/scoring"
)

type Engine struct {
	schedule *scoring.Schedule
}

func NewEngine(schedule *scoring.Schedule) *Engine {
	return &Engine{schedule: schedule}
}

// Compute produces one PenaltyResult per valid student in final. The
// global deadline is an explicit argument on every call; nothing here
// reads ambient state, so identical inputs always give the identical
// table. Results come back sorted by student ID.
func (e *Engine) Compute(
	final map[string]models.Submission,
	globalDeadline time.Time,
	registry *Registry,
) []models.PenaltyResult {
	if registry == nil {
		registry = NewRegistry()
	}

	results := make([]models.PenaltyResult, 0, len(final))
	for id, sub := range final {
		if !models.ValidStudentID(id) {
			metrics.RowsDroppedTotal.WithLabelValues("invalid_student_id").Inc()
			continue
		}

		deadline := registry.DeadlineFor(id, globalDeadline)

		hoursLate := sub.SubmittedAt.Sub(deadline).Hours()
		if hoursLate < 0 {
			hoursLate = 0
		}

		special := registry.Special[id]
		penalty := e.schedule.Penalty(hoursLate, special)

		results = append(results, models.PenaltyResult{
			StudentID:            id,
			StudentName:          sub.StudentName,
			SubmissionTime:       sub.RawTimestamp,
			SubmittedAt:          sub.SubmittedAt,
			HoursLate:            math.Round(hoursLate*100) / 100,
			Penalty:              penalty,
			DeadlineUsed:         deadline,
			SpecialConsideration: special,
		})

		metrics.PenaltyHistogram.WithLabelValues(specialLabel(special)).Observe(float64(penalty))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].StudentID < results[j].StudentID
	})

	return results
}

// Run is the whole pipeline in one call: raw tables in, result table out.
func (e *Engine) Run(
	submissions []models.SubmissionRow,
	globalDeadline time.Time,
	extensions []models.ExtensionRow,
) []models.PenaltyResult {
	final := Reduce(submissions)
	registry := BuildRegistry(extensions)
	return e.Compute(final, globalDeadline, registry)
}

func specialLabel(special bool) string {
	if special {
		return "special"
	}
	return "regular"
}
