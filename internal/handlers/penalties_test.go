package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/lussekatt/internal/app"
)

const submissionCSV = `Last Edited by: Username,Last Edited by: Name,Attempt Activity
45671001,Student A,19/04/2025 01:00:00
45671002,Student B,20/04/2025 00:30:00
45671002,Student B,18/04/2025 09:00:00
`

const extensionCSV = `Student ID,Extension
45671002,
`

func newTestHandler(t *testing.T) *PenaltyHandler {
	t.Helper()
	config := &app.Config{}
	config.Server.Port = ":0"
	return NewPenaltyHandler(app.NewServiceWithConfig(config))
}

func multipartUpload(t *testing.T, deadline, submissions, extensions string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	require.NoError(t, form.WriteField("deadline", deadline))

	file, err := form.CreateFormFile("submissions", "grade_history.csv")
	require.NoError(t, err)
	_, err = io.Copy(file, strings.NewReader(submissions))
	require.NoError(t, err)

	if extensions != "" {
		file, err = form.CreateFormFile("extensions", "uaap.csv")
		require.NoError(t, err)
		_, err = io.Copy(file, strings.NewReader(extensions))
		require.NoError(t, err)
	}

	require.NoError(t, form.Close())
	return &buf, form.FormDataContentType()
}

func TestHandleCompute(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartUpload(t, "18/04/2025", submissionCSV, extensionCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/penalties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCompute(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		RunID    string `json:"run_id"`
		Deadline string `json:"deadline"`
		Summary  struct {
			Total   int `json:"total"`
			OnTime  int `json:"on_time"`
			Late    int `json:"late"`
			Special int `json:"special_consideration"`
		} `json:"summary"`
		Results []struct {
			StudentID            string  `json:"student_id"`
			HoursLate            float64 `json:"hours_late"`
			Penalty              int     `json:"penalty_percent"`
			DeadlineUsed         string  `json:"deadline_used"`
			SpecialConsideration bool    `json:"special_consideration"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, "18/04/2025 23:59:00", resp.Deadline)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Special)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "45671001", resp.Results[0].StudentID)
	assert.InDelta(t, 1.02, resp.Results[0].HoursLate, 0.001)
	assert.Equal(t, 0, resp.Results[0].Penalty)
	assert.Equal(t, "18/04/2025 23:59:00", resp.Results[0].DeadlineUsed)

	assert.Equal(t, "45671002", resp.Results[1].StudentID)
	assert.Equal(t, 10, resp.Results[1].Penalty)
	assert.True(t, resp.Results[1].SpecialConsideration)
}

func TestHandleCompute_MissingColumn(t *testing.T) {
	handler := newTestHandler(t)

	badCSV := "Username,Attempt Activity\n45671001,19/04/2025 01:00:00\n"
	body, contentType := multipartUpload(t, "18/04/2025", badCSV, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/penalties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCompute(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Last Edited by: Username")
}

func TestHandleCompute_MissingDeadline(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartUpload(t, "", submissionCSV, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/penalties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.HandleCompute(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDownload(t *testing.T) {
	handler := newTestHandler(t)

	body, contentType := multipartUpload(t, "18/04/2025", submissionCSV, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/penalties", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.HandleCompute(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/penalties/"+resp.RunID+"/csv", nil)
	req.SetPathValue("runID", resp.RunID)
	rec = httptest.NewRecorder()

	handler.HandleDownload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Student_ID,Student_Name")
	assert.Contains(t, rec.Body.String(), "45671001")
}

func TestHandleDownload_UnknownRun(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/penalties/nope/csv", nil)
	req.SetPathValue("runID", "nope")
	rec := httptest.NewRecorder()

	handler.HandleDownload(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
