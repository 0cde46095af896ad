package queue

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ankisync/internal/common"
	"github.com/dmitrijs2005/ankisync/internal/dbx"
)

// PostgresRepository implements queue access over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectPending returns all rows with pushed_to_anki_at IS NULL ordered by
// created_at ascending, truncated to limit when limit > 0. NULL deck,
// note_type and tags columns are replaced with the shared defaults.
func (r *PostgresRepository) SelectPending(ctx context.Context, limit int) ([]*Item, error) {
	query := `
		SELECT id, word, definition, deck, note_type, array_to_string(tags, ','), created_at, push_error
		FROM anki_queue
		WHERE pushed_to_anki_at IS NULL
		ORDER BY created_at ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending items: %w", err)
	}
	defer rows.Close()

	var result []*Item
	for rows.Next() {
		var item Item
		var definition, deck, noteType, tags, pushError sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Word, &definition, &deck, &noteType, &tags, &item.CreatedAt, &pushError,
		); err != nil {
			return nil, err
		}
		if pushError.Valid {
			item.PushError = &pushError.String
		}
		item.Definition = definition.String
		item.Deck = deck.String
		if item.Deck == "" {
			item.Deck = common.DefaultDeck
		}
		item.NoteType = noteType.String
		if item.NoteType == "" {
			item.NoteType = common.DefaultNoteType
		}
		item.Tags = splitTags(tags.String)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkPushed sets the delivered timestamp and clears the failure reason.
// Returns common.ErrorNotFound if no row matches the id.
func (r *PostgresRepository) MarkPushed(ctx context.Context, id string) error {
	query := `
		UPDATE anki_queue
		SET pushed_to_anki_at = now() AT TIME ZONE 'utc', push_error = NULL
		WHERE id = $1
	`
	return r.execOne(ctx, query, id)
}

// MarkFailed stores the failure reason. pushed_to_anki_at stays untouched,
// so the row remains eligible for the next run.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	query := `
		UPDATE anki_queue
		SET push_error = $2
		WHERE id = $1
	`
	return r.execOne(ctx, query, id, reason)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// splitTags turns the comma-joined tags column back into a slice. An empty
// or NULL column yields the shared default tag set.
func splitTags(s string) []string {
	if s == "" {
		return append([]string(nil), common.DefaultTags...)
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return append([]string(nil), common.DefaultTags...)
	}
	return tags
}
