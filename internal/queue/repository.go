package queue

import "context"

// Repository is the remote queue table: select-with-filter-and-order plus
// update-by-identifier. It is both the reader and the status writer.
type Repository interface {
	// SelectPending returns items with no delivered timestamp, oldest first.
	// A limit of 0 means no cap. An empty queue yields an empty slice.
	SelectPending(ctx context.Context, limit int) ([]*Item, error)

	// MarkPushed records successful delivery: sets the delivered timestamp
	// to the current UTC time and clears any prior failure reason.
	MarkPushed(ctx context.Context, id string) error

	// MarkFailed records a failure reason, leaving the delivered timestamp
	// untouched so the item stays eligible for a future run.
	MarkFailed(ctx context.Context, id string, reason string) error
}
