package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/lussekatt/internal/app"
	"github.com/shrimpsizemoose/lussekatt/internal/export"
	"github.com/shrimpsizemoose/lussekatt/internal/ingest"
	"github.com/shrimpsizemoose/lussekatt/internal/metrics"
	"github.com/shrimpsizemoose/lussekatt/internal/models"
	"github.com/shrimpsizemoose/lussekatt/internal/timeparse"
)

const maxUploadBytes = 32 << 20

type PenaltyHandler struct {
	service *app.Service
}

func NewPenaltyHandler(service *app.Service) *PenaltyHandler {
	return &PenaltyHandler{
		service: service,
	}
}

// resultView is a PenaltyResult with the deadline rendered for display.
type resultView struct {
	models.PenaltyResult
	DeadlineUsed string `json:"deadline_used"`
}

func (h *PenaltyHandler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			"200",
		).Observe(duration)
	}()

	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.Error.Printf("Failed to parse multipart form: %v", err)
		http.Error(w, "Expected multipart form upload", http.StatusBadRequest)
		return
	}

	deadlineText := r.FormValue("deadline")
	if deadlineText == "" {
		http.Error(w, "Missing deadline field", http.StatusBadRequest)
		return
	}
	deadline, ok := timeparse.Parse(deadlineText)
	if !ok {
		http.Error(w, fmt.Sprintf("Cannot parse deadline %q", deadlineText), http.StatusBadRequest)
		return
	}

	submissions, _, err := r.FormFile("submissions")
	if err != nil {
		http.Error(w, "Missing submissions file", http.StatusBadRequest)
		return
	}
	defer submissions.Close()

	var extensions multipart.File
	if f, _, err := r.FormFile("extensions"); err == nil {
		extensions = f
		defer f.Close()
	}

	run, err := h.service.RunPenalties(submissions, extensions, deadline)
	if err != nil {
		var missing *ingest.MissingColumnsError
		if errors.As(err, &missing) {
			http.Error(w, missing.Error(), http.StatusBadRequest)
			return
		}
		logger.Error.Printf("Penalty run failed: %v", err)
		http.Error(w, "Failed to process uploaded tables", http.StatusBadRequest)
		return
	}

	logger.Info.Printf(
		"Computed run %s: %d students, %d late, %d special",
		run.ID,
		run.Summary.Total,
		run.Summary.Late,
		run.Summary.Special,
	)

	tsFormat := h.service.Config.Display.TimestampFormat
	views := make([]resultView, 0, len(run.Results))
	for _, result := range run.Results {
		views = append(views, resultView{
			PenaltyResult: result,
			DeadlineUsed:  result.DeadlineUsed.Format(tsFormat),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":   run.ID,
		"deadline": run.Deadline.Format(tsFormat),
		"summary":  run.Summary,
		"results":  views,
	}); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *PenaltyHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !h.service.ValidateHeaders(r.Header) {
		http.Error(w, "these are not the droids you are looking for", http.StatusNotFound)
		return
	}

	runID := r.PathValue("runID")
	run := h.service.GetRun(runID)
	if run == nil {
		http.Error(w, "Unknown run", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())),
	)

	tsFormat := h.service.Config.Display.TimestampFormat
	if err := export.WriteCSV(w, run.Results, tsFormat); err != nil {
		logger.Error.Printf("Failed to write CSV for run %s: %v", runID, err)
	}
}
