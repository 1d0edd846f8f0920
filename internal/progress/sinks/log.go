package sinks

import (
	"context"

	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/progress"
)

// LogSink reports progress through structured logs: every new domain with the
// running total, finished feeds, and run boundaries. Fetch events are logged at
// debug level only.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Consume logs each event in the batch.
func (s *LogSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		runID := zap.String("run_id", evt.RunUUID().String())
		switch evt.Stage {
		case progress.StageDomainAdded:
			s.logger.Info("domain added", runID, zap.String("domain", evt.Domain), zap.Int64("total", evt.Total))
		case progress.StageFeedDone:
			s.logger.Info("feed harvested", runID, zap.String("url", evt.URL), zap.Int64("new_domains", evt.Total))
		case progress.StageFetchDone:
			s.logger.Debug("fetch done",
				runID,
				zap.String("url", evt.URL),
				zap.String("outcome", string(evt.Outcome)),
				zap.Int64("bytes", evt.Bytes),
				zap.Duration("dur", evt.Dur),
				zap.String("note", evt.Note),
			)
		case progress.StageRunStart:
			s.logger.Info("harvest started", runID)
		case progress.StageRunDone:
			s.logger.Info("harvest finished", runID, zap.Int64("domains", evt.Total), zap.Duration("dur", evt.Dur))
		case progress.StageRunError:
			s.logger.Error("harvest failed", runID, zap.String("error", evt.Note), zap.Duration("dur", evt.Dur))
		}
	}
	return nil
}

// Close implements progress.Sink; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}
