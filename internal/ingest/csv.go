// Package ingest reads uploaded tables into typed rows. Column layout
// is validated once here; by the time rows reach the engine the
// required fields are guaranteed present. Row-level defects (blank
// fields, junk timestamps) are not this package's problem, the engine
// drops those silently.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shrimpsizemoose/lussekatt/internal/models"
)

// SubmissionColumns names the headers expected in the grade history
// export. Name is optional; when absent every student shows up unnamed.
type SubmissionColumns struct {
	StudentID string `toml:"student_id"`
	Timestamp string `toml:"timestamp"`
	Name      string `toml:"name"`
}

// ExtensionColumns names the headers of the extension/UAAP sheet.
// Deadline is optional.
type ExtensionColumns struct {
	StudentID string `toml:"student_id"`
	Deadline  string `toml:"deadline"`
}

func DefaultSubmissionColumns() SubmissionColumns {
	return SubmissionColumns{
		StudentID: "Last Edited by: Username",
		Timestamp: "Attempt Activity",
		Name:      "Last Edited by: Name",
	}
}

func DefaultExtensionColumns() ExtensionColumns {
	return ExtensionColumns{
		StudentID: "Student ID",
		Deadline:  "Extension",
	}
}

// MissingColumnsError is the one fatal condition for an uploaded file:
// without the required columns the table cannot be interpreted at all.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf(
		"missing required columns in %s file: %s",
		e.Table,
		strings.Join(e.Columns, ", "),
	)
}

// ReadSubmissionTable parses a CSV of submission attempts. The student
// ID and timestamp columns must be present in the header; their values
// may still be blank per row, which the reducer handles.
func ReadSubmissionTable(r io.Reader, cols SubmissionColumns) ([]models.SubmissionRow, error) {
	header, records, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission file: %w", err)
	}

	idx, missing := columnIndex(header, map[string]bool{
		cols.StudentID: true,
		cols.Timestamp: true,
		cols.Name:      false,
	})
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Table: "submission", Columns: missing}
	}

	rows := make([]models.SubmissionRow, 0, len(records))
	for _, record := range records {
		row := models.SubmissionRow{
			StudentID:    field(record, idx[cols.StudentID]),
			StudentName:  field(record, idx[cols.Name]),
			RawTimestamp: field(record, idx[cols.Timestamp]),
		}
		if err := row.Validate(); err != nil {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ReadExtensionTable parses the extension/UAAP CSV. Only the student ID
// column is required.
func ReadExtensionTable(r io.Reader, cols ExtensionColumns) ([]models.ExtensionRow, error) {
	header, records, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read extension file: %w", err)
	}

	idx, missing := columnIndex(header, map[string]bool{
		cols.StudentID: true,
		cols.Deadline:  false,
	})
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Table: "extension", Columns: missing}
	}

	rows := make([]models.ExtensionRow, 0, len(records))
	for _, record := range records {
		row := models.ExtensionRow{
			StudentID:   field(record, idx[cols.StudentID]),
			RawDeadline: field(record, idx[cols.Deadline]),
		}
		if err := row.Validate(); err != nil {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func readTable(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	return all[0], all[1:], nil
}

// columnIndex maps wanted column names to their position in the header.
// Returns the names of required columns that are absent. Optional
// columns that are absent get index -1.
func columnIndex(header []string, wanted map[string]bool) (map[string]int, []string) {
	idx := make(map[string]int, len(wanted))
	for name := range wanted {
		idx[name] = -1
	}

	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := idx[h]; ok {
			idx[h] = i
		}
	}

	var missing []string
	for name, required := range wanted {
		if required && idx[name] == -1 {
			missing = append(missing, name)
		}
	}

	return idx, missing
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
