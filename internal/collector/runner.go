package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Vodeneev/dkprops/internal/pkg/health"
	"github.com/Vodeneev/dkprops/internal/pkg/models"
	"github.com/Vodeneev/dkprops/internal/pkg/notify"
)

// Sink consumes a finished run's table.
type Sink interface {
	Name() string
	Write(table models.Table) error
}

// Runner drives full gather runs: walk the catalog, hand the merged table
// to every sink, report the outcome.
type Runner struct {
	collector *Collector
	catalog   []MainCategory
	sinks     []Sink
	notifier  *notify.TelegramNotifier
	csvPath   string // shown in run summaries, empty when csv export is off
}

func NewRunner(c *Collector, catalog []MainCategory, sinks []Sink, notifier *notify.TelegramNotifier, csvPath string) *Runner {
	return &Runner{
		collector: c,
		catalog:   catalog,
		sinks:     sinks,
		notifier:  notifier,
		csvPath:   csvPath,
	}
}

// RunOnce performs one gather run end to end and returns the merged table.
// A collect failure aborts the run before any sink sees data; a sink failure
// still leaves the table with the remaining sinks but fails the run.
func (r *Runner) RunOnce(ctx context.Context) (models.Table, error) {
	runID := uuid.NewString()
	source := r.collector.source.Name()
	start := time.Now()

	slog.Info("Run started", "run_id", runID, "source", source)
	health.BeginRun(runID, source)

	table, err := r.collector.CollectAll(ctx, r.catalog)
	if err != nil {
		duration := time.Since(start)
		health.FinishRun(0, err)
		slog.Error("Run failed", "run_id", runID, "error", err, "duration", duration)
		r.notifier.NotifyRunFailure(runID, source, err, duration)
		return models.Table{}, err
	}

	var sinkErr error
	for _, s := range r.sinks {
		if err := s.Write(table); err != nil {
			slog.Error("Sink write failed", "run_id", runID, "sink", s.Name(), "error", err)
			if sinkErr == nil {
				sinkErr = fmt.Errorf("sink %s: %w", s.Name(), err)
			}
		}
	}

	duration := time.Since(start)
	if sinkErr != nil {
		health.FinishRun(table.Len(), sinkErr)
		r.notifier.NotifyRunFailure(runID, source, sinkErr, duration)
		return table, sinkErr
	}

	health.FinishRun(table.Len(), nil)
	slog.Info("Run finished", "run_id", runID, "rows", table.Len(), "duration", duration)
	r.notifier.NotifyRunSuccess(notify.RunSummary{
		RunID:    runID,
		Source:   source,
		Rows:     table.Len(),
		Duration: duration,
		CSVPath:  r.csvPath,
	})
	return table, nil
}
