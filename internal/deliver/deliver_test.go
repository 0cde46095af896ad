package deliver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrijs2005/ankisync/internal/anki"
	"github.com/dmitrijs2005/ankisync/internal/logging"
	"github.com/dmitrijs2005/ankisync/internal/queue"
	"github.com/google/uuid"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeRepo records status updates in memory.
type fakeRepo struct {
	pushed []string
	failed map[string]string
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{failed: make(map[string]string)}
}

func (f *fakeRepo) SelectPending(ctx context.Context, limit int) ([]*queue.Item, error) {
	return nil, nil
}

func (f *fakeRepo) MarkPushed(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, id)
	return nil
}

func (f *fakeRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.failed[id] = reason
	return nil
}

func (f *fakeRepo) mutations() int {
	return len(f.pushed) + len(f.failed)
}

// fakeControl is a stateful in-memory AnkiConnect: added notes become
// findable duplicates, the way a real collection behaves across runs.
type fakeControl struct {
	versionErr error
	findErr    error
	infoErr    error
	addErr     error
	added      []anki.Note
	nextNoteID int64
	// byFront maps a normalized Front value to an existing note id.
	byFront map[string]int64
	infos   map[int64]anki.NoteInfo
}

func newFakeControl() *fakeControl {
	return &fakeControl{nextNoteID: 100, byFront: make(map[string]int64), infos: make(map[int64]anki.NoteInfo)}
}

func (f *fakeControl) seed(front string, modelName string) int64 {
	f.nextNoteID++
	id := f.nextNoteID
	f.byFront[normalizeWord(front)] = id
	f.infos[id] = anki.NoteInfo{
		NoteID:    id,
		ModelName: modelName,
		Fields:    map[string]anki.FieldValue{"Front": {Value: front, Order: 0}},
	}
	return id
}

func (f *fakeControl) Version(ctx context.Context) (int, error) {
	if f.versionErr != nil {
		return 0, f.versionErr
	}
	return 6, nil
}

func (f *fakeControl) FindNotes(ctx context.Context, query string) ([]int64, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for front, id := range f.byFront {
		if query == `note:"WordDefinition" "Front:`+front+`"` {
			return []int64{id}, nil
		}
	}
	return nil, nil
}

func (f *fakeControl) NotesInfo(ctx context.Context, ids []int64) ([]anki.NoteInfo, error) {
	if f.infoErr != nil {
		return nil, f.infoErr
	}
	var infos []anki.NoteInfo
	for _, id := range ids {
		if info, ok := f.infos[id]; ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (f *fakeControl) AddNote(ctx context.Context, note anki.Note) (int64, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.added = append(f.added, note)
	return f.seed(note.Fields["Front"], note.ModelName), nil
}

func testItem(word string, definition string) *queue.Item {
	return &queue.Item{
		ID:         uuid.NewString(),
		Word:       word,
		Definition: definition,
		Deck:       "Main",
		NoteType:   "WordDefinition",
		Tags:       []string{"dom_words", "lang_en"},
		CreatedAt:  time.Now(),
	}
}
