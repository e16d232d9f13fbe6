package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStudentID(t *testing.T) {
	testCases := []struct {
		id    string
		valid bool
	}{
		{"001234567", false},
		{"1234", false},
		{"20231234", true},
		{"  45671234  ", true},
		{"", false},
		{"0045671234", false},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidStudentID(tc.id))
		})
	}
}

func TestSubmissionRow_Validate(t *testing.T) {
	row := SubmissionRow{StudentID: "45671234", RawTimestamp: "19/04/2025 01:00:00"}
	assert.NoError(t, row.Validate())

	assert.Error(t, (&SubmissionRow{RawTimestamp: "19/04/2025"}).Validate())
	assert.Error(t, (&SubmissionRow{StudentID: "45671234"}).Validate())
}

func TestSummarize(t *testing.T) {
	results := []PenaltyResult{
		{StudentID: "45671001", Penalty: 0},
		{StudentID: "45671002", Penalty: 10, SpecialConsideration: true},
		{StudentID: "45671003", Penalty: 100},
	}

	assert.Equal(t, Summary{Total: 3, OnTime: 1, Late: 2, Special: 1}, Summarize(results))
}
