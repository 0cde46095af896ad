package deliver

import (
	"context"

	"github.com/dmitrijs2005/ankisync/internal/logging"
	"github.com/dmitrijs2005/ankisync/internal/queue"
)

// StatusWriter records per-item outcomes in the remote queue. Update errors
// are logged and swallowed: a failed status write never aborts the run and is
// never retried, so a delivered item whose update was lost may be reprocessed
// on the next run. In dry-run mode every write is suppressed.
type StatusWriter struct {
	repo   queue.Repository
	log    logging.Logger
	dryRun bool
}

// NewStatusWriter constructs a StatusWriter over the given repository.
func NewStatusWriter(repo queue.Repository, log logging.Logger, dryRun bool) *StatusWriter {
	return &StatusWriter{repo: repo, log: log, dryRun: dryRun}
}

// Success marks the item delivered.
func (w *StatusWriter) Success(ctx context.Context, id string) {
	if w.dryRun {
		return
	}
	if err := w.repo.MarkPushed(ctx, id); err != nil {
		w.log.Error(ctx, "failed to update queue status", "id", id, "error", err.Error())
	}
}

// Failure records the failure reason, leaving the item eligible for retry.
func (w *StatusWriter) Failure(ctx context.Context, id string, reason string) {
	if w.dryRun {
		return
	}
	if err := w.repo.MarkFailed(ctx, id, reason); err != nil {
		w.log.Error(ctx, "failed to update queue status", "id", id, "error", err.Error())
	}
}
