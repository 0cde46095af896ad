package deliver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/ankisync/internal/anki"
	"github.com/dmitrijs2005/ankisync/internal/common"
	"github.com/dmitrijs2005/ankisync/internal/logging"
	"github.com/dmitrijs2005/ankisync/internal/queue"
)

// reasonAddFailed is the generic per-item reason recorded when note creation
// fails for any cause (transport, status, error payload).
const reasonAddFailed = "failed to add note to Anki"

// ControlService is the subset of the AnkiConnect API the direct adapter
// needs. *anki.Client satisfies it.
type ControlService interface {
	Version(ctx context.Context) (int, error)
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]anki.NoteInfo, error)
	AddNote(ctx context.Context, note anki.Note) (int64, error)
}

// Direct delivers items one by one through a locally running AnkiConnect
// instance: availability check, per-item duplicate lookup, then insertion.
type Direct struct {
	client ControlService
	status *StatusWriter
	log    logging.Logger
	dryRun bool
	out    io.Writer
}

// NewDirect constructs the direct-call adapter.
func NewDirect(client ControlService, status *StatusWriter, log logging.Logger, dryRun bool) *Direct {
	return &Direct{client: client, status: status, log: log, dryRun: dryRun, out: os.Stdout}
}

// Deliver verifies AnkiConnect is reachable and then processes items in
// order. Per-item failures are recorded and never abort the batch; only an
// unreachable control service is fatal, and in that case zero items are
// touched.
func (d *Direct) Deliver(ctx context.Context, items []*queue.Item) ([]Outcome, error) {
	v, err := d.client.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("AnkiConnect is not reachable: %w: %w", err, common.ErrUnreachable)
	}
	d.log.Info(ctx, "AnkiConnect is reachable", "api_version", v)

	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		outcome := d.deliverOne(ctx, item)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (d *Direct) deliverOne(ctx context.Context, item *queue.Item) Outcome {
	d.log.Info(ctx, "processing item", "id", item.ID, "word", item.Word)

	if !item.HasDefinition() {
		d.log.Warn(ctx, "skipping item", "id", item.ID, "reason", common.ErrMissingDefinition.Error())
		d.status.Failure(ctx, item.ID, common.ErrMissingDefinition.Error())
		return Outcome{Item: item, Status: StatusFailed, Reason: common.ErrMissingDefinition.Error()}
	}

	if noteID, found := d.findDuplicate(ctx, item.Word, item.NoteType); found {
		d.log.Info(ctx, "duplicate found, marking as pushed", "id", item.ID, "note_id", noteID)
		d.status.Success(ctx, item.ID)
		return Outcome{Item: item, Status: StatusDuplicate, NoteID: noteID}
	}

	if d.dryRun {
		fmt.Fprintf(d.out, "[dry run] would add: Front=%q, Back=%q, Deck=%q, Tags=%v\n",
			item.Word, preview(item.Definition, 50), item.Deck, item.Tags)
		return Outcome{Item: item, Status: StatusDelivered}
	}

	noteID, err := d.client.AddNote(ctx, anki.Note{
		DeckName:  item.Deck,
		ModelName: item.NoteType,
		Fields:    map[string]string{"Front": item.Word, "Back": item.Definition},
		Tags:      item.Tags,
	})
	if err != nil {
		d.log.Error(ctx, "failed to add note", "id", item.ID, "error", err.Error())
		d.status.Failure(ctx, item.ID, reasonAddFailed)
		return Outcome{Item: item, Status: StatusFailed, Reason: reasonAddFailed}
	}

	d.log.Info(ctx, "note added", "id", item.ID, "note_id", noteID)
	d.status.Success(ctx, item.ID)
	return Outcome{Item: item, Status: StatusDelivered, NoteID: noteID}
}

// findDuplicate searches for an existing note whose Front field matches the
// case-folded, trimmed word within the given note type. The first hit is
// re-verified against loose query matching via notesInfo. Lookup errors are
// logged and treated as "no duplicate".
func (d *Direct) findDuplicate(ctx context.Context, word string, noteType string) (int64, bool) {
	normalized := normalizeWord(word)
	query := fmt.Sprintf("note:%q %q", noteType, "Front:"+normalized)

	ids, err := d.client.FindNotes(ctx, query)
	if err != nil {
		d.log.Warn(ctx, "duplicate lookup failed", "word", word, "error", err.Error())
		return 0, false
	}
	if len(ids) == 0 {
		return 0, false
	}

	infos, err := d.client.NotesInfo(ctx, ids[:1])
	if err != nil {
		d.log.Warn(ctx, "note info fetch failed", "word", word, "error", err.Error())
		return 0, false
	}
	if len(infos) == 0 {
		return 0, false
	}
	if normalizeWord(infos[0].Fields["Front"].Value) == normalized {
		return infos[0].NoteID, true
	}
	return 0, false
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
