package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/config"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/logger"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/metrics"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/sink"
)

const progressEvery = 1000

// RunSummary is appended to the run log as one JSON line.
type RunSummary struct {
	RunID        string         `json:"run_id"`
	Timestamp    string         `json:"timestamp"`
	Inputs       []string       `json:"inputs"`
	Sink         string         `json:"sink"`
	EventCount   int            `json:"event_count"`
	RecordCount  int            `json:"record_count"`
	SkippedLines int            `json:"skipped_lines"`
	ByCategory   map[string]int `json:"by_category"`
	Error        string         `json:"error,omitempty"`
}

// skipCounter is implemented by sources that drop malformed input.
type skipCounter interface {
	Skipped() int
}

func appendRunLog(path string, summary RunSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	return enc.Encode(summary)
}

// RunNormalize drives src through the normalization engine into out.
// It is factored out from the Cobra command so it can be unit tested.
// The returned Stats are valid even when err is non-nil; they cover the
// lines emitted before the failure.
func RunNormalize(ctx context.Context, src normalize.Source, out sink.Sink, cfg *config.Config) (*Stats, error) {
	log := logger.L()
	if cfg == nil {
		cfg = config.Get()
	}
	runID := uuid.NewString()
	log.Infow("starting normalize run",
		"run_id", runID,
		"inputs", cfg.Input.Files,
		"sink", cfg.Output.Sink)

	stats := NewStats()
	m := metrics.New()
	driver := normalize.NewDriver()
	startTime := time.Now()

	err := driver.Run(ctx, src, func(l normalize.Line) error {
		if err := out.Write(ctx, l); err != nil {
			return err
		}
		stats.Observe(l)
		m.ObserveRecord(l)
		if l.RecordOrdinal == 1 && l.EventOrdinal%progressEvery == 0 {
			log.Infow("processing progress",
				"events_processed", stats.Events,
				"records_processed", stats.Records)
		}
		return nil
	})
	if errors.Is(err, normalize.ErrFirstRecordUnavailable) {
		log.Errorw("Error getting first record", "event_ordinal", driver.Events()+1)
	} else if err != nil {
		log.Errorw("normalize failed", "err", err.Error())
	}

	skipped := 0
	if sc, ok := src.(skipCounter); ok {
		skipped = sc.Skipped()
		m.SkippedLinesTotal.Add(float64(skipped))
	}

	if cfg.Logging.RunLog != "" {
		summary := RunSummary{
			RunID:        runID,
			Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
			Inputs:       cfg.Input.Files,
			Sink:         cfg.Output.Sink,
			EventCount:   stats.Events,
			RecordCount:  stats.Records,
			SkippedLines: skipped,
			ByCategory:   stats.ByCategory,
		}
		if err != nil {
			summary.Error = err.Error()
		}
		if werr := appendRunLog(cfg.Logging.RunLog, summary); werr != nil {
			log.Errorw("failed to write run log",
				"path", cfg.Logging.RunLog,
				"err", werr.Error())
		} else {
			log.Debugw("wrote run summary", "path", cfg.Logging.RunLog)
		}
	}

	if cfg.Metrics.Textfile != "" {
		if werr := m.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			log.Errorw("failed to write metrics textfile",
				"path", cfg.Metrics.Textfile,
				"err", werr.Error())
		}
	}

	if err != nil {
		return stats, fmt.Errorf("normalize: %w", err)
	}

	duration := time.Since(startTime)
	log.Infow("completed normalize run",
		"run_id", runID,
		"duration", duration,
		"events", stats.Events,
		"records", stats.Records,
		"skipped_lines", skipped,
		"events_per_second", float64(stats.Events)/duration.Seconds())
	return stats, nil
}
