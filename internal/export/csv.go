// Package export serializes a finished penalty run into the CSV that
// goes back to the teaching team.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shrimpsizemoose/lussekatt/internal/models"
)

var header = []string{
	"Student_ID",
	"Student_Name",
	"Submission_Time",
	"Hours_Late",
	"Late_Penalty",
	"Deadline_Used",
	"Special_Consideration",
}

// WriteCSV renders the result table. tsFormat is the display format for
// the deadline column, normally 02/01/2006 15:04:05 from config.
func WriteCSV(w io.Writer, results []models.PenaltyResult, tsFormat string) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.StudentID,
			r.StudentName,
			r.SubmissionTime,
			fmt.Sprintf("%.2f", r.HoursLate),
			fmt.Sprintf("%d%%", r.Penalty),
			r.DeadlineUsed.Format(tsFormat),
			yesNo(r.SpecialConsideration),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Filename returns a timestamped name for the downloaded file.
func Filename(now time.Time) string {
	return fmt.Sprintf("late_penalties_%s.csv", now.Format("20060102_150405"))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
