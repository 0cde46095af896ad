package common

// Defaults applied to queue rows that carry no destination classification.
const (
	DefaultDeck     = "Main"
	DefaultNoteType = "WordDefinition"
)

// DefaultTags is attached to rows whose tags column is NULL or empty.
// Callers must not mutate the slice in place; copy if needed.
var DefaultTags = []string{"dom_words", "lang_en", "time_permanent", "type_definition"}
