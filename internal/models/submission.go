package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// SubmissionRow is one attempt from the LMS grade history export.
// A student usually has several of these; only the latest valid
// attempt makes it into the results.
type SubmissionRow struct {
	StudentID    string `json:"student_id" validate:"required"`
	StudentName  string `json:"student_name"`
	RawTimestamp string `json:"raw_timestamp" validate:"required"`
}

// ExtensionRow marks a student as having special consideration,
// optionally with their own deadline.
type ExtensionRow struct {
	StudentID   string `json:"student_id" validate:"required"`
	RawDeadline string `json:"raw_deadline"`
}

// Submission is a SubmissionRow whose timestamp survived parsing.
type Submission struct {
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	RawTimestamp string    `json:"raw_timestamp"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func (r *SubmissionRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

func (r *ExtensionRow) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ValidStudentID reports whether id looks like a real student number.
// Test accounts in the LMS export start with "00", and anything shorter
// than 8 characters is not an institutional ID.
func ValidStudentID(id string) bool {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "00") {
		return false
	}
	return len([]rune(id)) >= 8
}
