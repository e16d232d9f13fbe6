package main

import (
	"flag"
	"io"
	"os"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/lussekatt/internal/app"
	"github.com/shrimpsizemoose/lussekatt/internal/export"
	"github.com/shrimpsizemoose/lussekatt/internal/timeparse"
)

func main() {
	var (
		configPath     = flag.String("config", "config.toml", "Path to config file")
		submissionPath = flag.String("submissions", "", "Path to submission detail CSV")
		extensionPath  = flag.String("extensions", "", "Path to extension/UAAP CSV (optional)")
		deadlineText   = flag.String("deadline", "", "Assignment deadline, e.g. 18/04/2025 (time defaults to 23:59:00)")
		outPath        = flag.String("out", "", "Output CSV path (default: late_penalties_<timestamp>.csv)")
	)
	flag.Parse()

	if *submissionPath == "" || *deadlineText == "" {
		logger.Error.Fatalf("Both -submissions and -deadline are required")
	}

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}

	deadline, ok := timeparse.Parse(*deadlineText)
	if !ok {
		logger.Error.Fatalf("Cannot parse deadline %q", *deadlineText)
	}

	submissions, err := os.Open(*submissionPath)
	if err != nil {
		logger.Error.Fatalf("Failed to open submission file: %v", err)
	}
	defer submissions.Close()

	var extensions io.Reader
	if *extensionPath != "" {
		f, err := os.Open(*extensionPath)
		if err != nil {
			logger.Error.Fatalf("Failed to open extension file: %v", err)
		}
		defer f.Close()
		extensions = f
	}

	run, err := service.RunPenalties(submissions, extensions, deadline)
	if err != nil {
		logger.Error.Fatalf("Penalty run failed: %v", err)
	}

	name := *outPath
	if name == "" {
		name = export.Filename(run.CreatedAt)
	}

	out, err := os.Create(name)
	if err != nil {
		logger.Error.Fatalf("Failed to create output file: %v", err)
	}
	defer out.Close()

	if err := export.WriteCSV(out, run.Results, service.Config.Display.TimestampFormat); err != nil {
		logger.Error.Fatalf("Failed to write results: %v", err)
	}

	logger.Info.Printf("Deadline used: %s", deadline.Format(service.Config.Display.TimestampFormat))
	logger.Info.Printf(
		"Wrote %s: %d students, %d on time, %d late, %d with special consideration",
		name,
		run.Summary.Total,
		run.Summary.OnTime,
		run.Summary.Late,
		run.Summary.Special,
	)
}
