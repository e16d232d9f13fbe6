package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSubmissionTable(t *testing.T) {
	data := strings.Join([]string{
		`Last Edited by: Username,Last Edited by: Name,Attempt Activity`,
		`45671234,Agda Svensson,19/04/2025 01:00:00`,
		`45671234,Agda Svensson,18/04/2025 10:00:00`,
		`,Nobody,18/04/2025 10:00:00`,
		`98765432,Bo Nilsson,17/04/2025 08:00:00`,
	}, "\n")

	rows, err := ReadSubmissionTable(strings.NewReader(data), DefaultSubmissionColumns())
	require.NoError(t, err)

	// The blank-ID row is gone already; everything else survives.
	require.Len(t, rows, 3)
	assert.Equal(t, "45671234", rows[0].StudentID)
	assert.Equal(t, "Agda Svensson", rows[0].StudentName)
	assert.Equal(t, "19/04/2025 01:00:00", rows[0].RawTimestamp)
}

func TestReadSubmissionTable_MissingColumn(t *testing.T) {
	data := strings.Join([]string{
		`Last Edited by: Username,Last Edited by: Name`,
		`45671234,Agda Svensson`,
	}, "\n")

	_, err := ReadSubmissionTable(strings.NewReader(data), DefaultSubmissionColumns())
	require.Error(t, err)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "submission", missing.Table)
	assert.Contains(t, missing.Columns, "Attempt Activity")
	assert.Contains(t, err.Error(), "Attempt Activity")
}

func TestReadSubmissionTable_NameColumnOptional(t *testing.T) {
	data := strings.Join([]string{
		`Last Edited by: Username,Attempt Activity`,
		`45671234,19/04/2025 01:00:00`,
	}, "\n")

	rows, err := ReadSubmissionTable(strings.NewReader(data), DefaultSubmissionColumns())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].StudentName)
}

func TestReadExtensionTable(t *testing.T) {
	data := strings.Join([]string{
		`Student ID,Extension`,
		`45671234,`,
		`98765432,25/04/2025 23:59:00`,
	}, "\n")

	rows, err := ReadExtensionTable(strings.NewReader(data), DefaultExtensionColumns())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Empty(t, rows[0].RawDeadline)
	assert.Equal(t, "25/04/2025 23:59:00", rows[1].RawDeadline)
}

func TestReadExtensionTable_MissingIDColumn(t *testing.T) {
	data := strings.Join([]string{
		`Username,Extension`,
		`45671234,25/04/2025 23:59:00`,
	}, "\n")

	_, err := ReadExtensionTable(strings.NewReader(data), DefaultExtensionColumns())

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "extension", missing.Table)
	assert.Equal(t, []string{"Student ID"}, missing.Columns)
}

func TestReadSubmissionTable_Empty(t *testing.T) {
	_, err := ReadSubmissionTable(strings.NewReader(""), DefaultSubmissionColumns())
	assert.Error(t, err)
}
