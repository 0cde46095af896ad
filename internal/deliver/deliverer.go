// Package deliver contains the two delivery strategies that move queue items
// into Anki: direct AnkiConnect calls and CSV export for manual import.
// A strategy is selected once at startup; the run loop only ever sees the
// Deliverer interface.
package deliver

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/ankisync/internal/queue"
)

// Status classifies the outcome of one item within a batch.
type Status string

const (
	// StatusDelivered means a new note was created (or, in export mode,
	// the item made it into the written file).
	StatusDelivered Status = "delivered"
	// StatusDuplicate means an existing note already covers the word;
	// the item is marked delivered without creating anything.
	StatusDuplicate Status = "duplicate"
	// StatusFailed means the item was recorded as failed with a reason.
	StatusFailed Status = "failed"
	// StatusDropped means an export-mode duplicate was omitted from the
	// file without being marked as a failure.
	StatusDropped Status = "dropped"
)

// Outcome is the per-item result of a delivery pass. Item failures are values
// here, never propagated errors; only fatal conditions abort a batch.
type Outcome struct {
	Item   *queue.Item
	Status Status
	Reason string
	NoteID int64
}

// Deliverer processes one batch of queue items and reports per-item outcomes.
// A returned error is fatal for the whole run and implies no further items
// were touched.
type Deliverer interface {
	Deliver(ctx context.Context, items []*queue.Item) ([]Outcome, error)
}

// normalizeWord case-folds and trims a word for duplicate matching.
func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
