package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/lussekatt/internal/ingest"
	"github.com/shrimpsizemoose/lussekatt/internal/scoring"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type Config struct {
	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	API struct {
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"api"`

	Columns struct {
		Submission ingest.SubmissionColumns `toml:"submission"`
		Extension  ingest.ExtensionColumns  `toml:"extension"`
	} `toml:"columns"`

	Display struct {
		TimestampFormat string `toml:"timestamp_format"`
	} `toml:"display"`

	Scoring scoring.Schedule `toml:"scoring"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}

	config.applyDefaults()

	logger.Debug.Printf("Loaded scoring config: %+v", config.Scoring)

	return &config, nil
}

// applyDefaults fills in what the config file may omit: the course
// penalty ladders, the LMS export column names and the display
// timestamp format.
func (c *Config) applyDefaults() {
	defaults := scoring.DefaultSchedule()
	if len(c.Scoring.StandardTiers) == 0 {
		c.Scoring.StandardTiers = defaults.StandardTiers
	}
	if len(c.Scoring.SpecialTiers) == 0 {
		c.Scoring.SpecialTiers = defaults.SpecialTiers
	}
	if c.Scoring.OverduePenalty == 0 {
		c.Scoring.OverduePenalty = defaults.OverduePenalty
	}

	if c.Columns.Submission.StudentID == "" {
		c.Columns.Submission = ingest.DefaultSubmissionColumns()
	}
	if c.Columns.Extension.StudentID == "" {
		c.Columns.Extension = ingest.DefaultExtensionColumns()
	}

	if c.Display.TimestampFormat == "" {
		c.Display.TimestampFormat = "02/01/2006 15:04:05"
	}
}
