package models

import "time"

// PenaltyResult is the terminal output for one student: their final
// submission, how late it was against the deadline that applied to
// them, and the penalty tier it landed in. Never mutated after Compute.
type PenaltyResult struct {
	StudentID            string    `json:"student_id"`
	StudentName          string    `json:"student_name"`
	SubmissionTime       string    `json:"submission_time"`
	SubmittedAt          time.Time `json:"submitted_at"`
	HoursLate            float64   `json:"hours_late"`
	Penalty              int       `json:"penalty_percent"`
	DeadlineUsed         time.Time `json:"-"`
	SpecialConsideration bool      `json:"special_consideration"`
}

// Summary mirrors the headline counters of a penalty run.
type Summary struct {
	Total   int `json:"total"`
	OnTime  int `json:"on_time"`
	Late    int `json:"late"`
	Special int `json:"special_consideration"`
}

func Summarize(results []PenaltyResult) Summary {
	var s Summary
	s.Total = len(results)
	for _, r := range results {
		if r.Penalty == 0 {
			s.OnTime++
		} else {
			s.Late++
		}
		if r.SpecialConsideration {
			s.Special++
		}
	}
	return s
}
