package engine

import (
	"strings"

	"github.com/shrimpsizemoose/lussekatt/internal/metrics"
	"github.com/shrimpsizemoose/lussekatt/internal/models"
	"github.com/shrimpsizemoose/lussekatt/internal/timeparse"
)

// Reduce collapses the attempt history to one final submission per
// student. Rows missing an ID or a timestamp are dropped, as are rows
// whose timestamp does not parse. When a student has two attempts at
// the exact same instant the later row in input order wins.
func Reduce(rows []models.SubmissionRow) map[string]models.Submission {
	final := make(map[string]models.Submission)

	for _, row := range rows {
		id := strings.TrimSpace(row.StudentID)
		if id == "" || strings.TrimSpace(row.RawTimestamp) == "" {
			metrics.RowsDroppedTotal.WithLabelValues("missing_field").Inc()
			continue
		}

		submittedAt, ok := timeparse.Parse(row.RawTimestamp)
		if !ok {
			metrics.RowsDroppedTotal.WithLabelValues("unparseable_timestamp").Inc()
			continue
		}

		best, seen := final[id]
		if seen && submittedAt.Before(best.SubmittedAt) {
			continue
		}

		final[id] = models.Submission{
			StudentID:    id,
			StudentName:  strings.TrimSpace(row.StudentName),
			RawTimestamp: strings.TrimSpace(row.RawTimestamp),
			SubmittedAt:  submittedAt,
		}
	}

	return final
}
