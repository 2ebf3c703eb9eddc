package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// ChangeWorker drains change jobs. It logs each change so lead intake and
// publication are visible to operators; notification fan-out hangs off here.
type ChangeWorker struct {
	river.WorkerDefaults[ChangeJobArgs]
	logger *slog.Logger
}

// NewChangeWorker returns a worker logging through logger, or slog.Default when nil.
func NewChangeWorker(logger *slog.Logger) *ChangeWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChangeWorker{logger: logger}
}

// Work processes a single change job.
func (w *ChangeWorker) Work(ctx context.Context, job *river.Job[ChangeJobArgs]) error {
	attrs := []any{
		"entity", job.Args.Entity,
		"action", job.Args.Action,
		"entity_id", job.Args.EntityID,
		"occurred_at", job.Args.OccurredAt,
		"job_id", job.ID,
		"attempt", job.Attempt,
	}
	for k, v := range job.Args.Attributes {
		attrs = append(attrs, "attr."+k, v)
	}
	w.logger.InfoContext(ctx, "processing change", attrs...)
	return nil
}
