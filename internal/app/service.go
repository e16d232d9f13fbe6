package app

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shrimpsizemoose/lussekatt/internal/engine"
	"github.com/shrimpsizemoose/lussekatt/internal/ingest"
	"github.com/shrimpsizemoose/lussekatt/internal/metrics"
	"github.com/shrimpsizemoose/lussekatt/internal/models"
)

// Run is one finished penalty computation, kept in memory so the
// adapter can offer the CSV download right after showing the table.
// Nothing survives a restart.
type Run struct {
	ID        string                 `json:"run_id"`
	Deadline  time.Time              `json:"-"`
	Results   []models.PenaltyResult `json:"results"`
	Summary   models.Summary         `json:"summary"`
	CreatedAt time.Time              `json:"created_at"`
}

type Service struct {
	Config *Config
	Engine *engine.Engine

	mu   sync.RWMutex
	runs map[string]*Run
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewServiceWithConfig(config), nil
}

func NewServiceWithConfig(config *Config) *Service {
	config.applyDefaults()

	return &Service{
		Config: config,
		Engine: engine.NewEngine(&config.Scoring),
		runs:   make(map[string]*Run),
	}
}

func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.API.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

// RunPenalties is the adapter entrypoint: two uploaded tables and an
// explicit deadline in, a cached Run out. extensions may be nil when no
// extension sheet was uploaded.
func (s *Service) RunPenalties(submissions, extensions io.Reader, deadline time.Time) (*Run, error) {
	subRows, err := ingest.ReadSubmissionTable(submissions, s.Config.Columns.Submission)
	if err != nil {
		return nil, err
	}

	var extRows []models.ExtensionRow
	if extensions != nil {
		extRows, err = ingest.ReadExtensionTable(extensions, s.Config.Columns.Extension)
		if err != nil {
			return nil, err
		}
	}

	results := s.Engine.Run(subRows, deadline, extRows)
	metrics.PenaltyRunsTotal.Inc()

	run := &Run{
		ID:        uuid.NewString(),
		Deadline:  deadline,
		Results:   results,
		Summary:   models.Summarize(results),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	return run, nil
}

// GetRun returns a cached run, or nil if the ID is unknown.
func (s *Service) GetRun(id string) *Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[id]
}
