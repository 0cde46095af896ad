// Package common contains shared constants and sentinel errors used across
// ankisync components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Configuration errors (missing required settings, pre-flight).
	ErrMissingConfig = errors.New("missing configuration")

	// Connectivity errors (AnkiConnect or the queue store unreachable).
	ErrUnreachable = errors.New("service unreachable")

	// Item-level errors.
	ErrMissingDefinition = errors.New("missing definition")
	ErrDelivery          = errors.New("delivery failed")
)
