// Package queue provides the model and PostgreSQL repository for the remote
// anki_queue table, the sole source of truth for pending vocabulary items
// and for delivery outcomes.
package queue

import "time"

// Item is one pending vocabulary entry from the anki_queue table.
//
// PushedAt is nil while the item is eligible for delivery; a set value marks
// the item as delivered and excludes it from future reads. PushError holds
// the last failure reason and is cleared on success.
type Item struct {
	ID         string
	Word       string
	Definition string
	Deck       string
	NoteType   string
	Tags       []string
	CreatedAt  time.Time
	PushedAt   *time.Time
	PushError  *string
}

// HasDefinition reports whether the item carries a usable definition.
// An item without one can never be delivered.
func (i *Item) HasDefinition() bool {
	return i.Definition != ""
}
