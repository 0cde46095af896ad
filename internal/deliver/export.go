package deliver

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/ankisync/internal/common"
	"github.com/dmitrijs2005/ankisync/internal/logging"
	"github.com/dmitrijs2005/ankisync/internal/queue"
)

// exportHeader is the fixed header Anki's manual CSV import expects.
var exportHeader = []string{"Front", "Back", "Tags"}

// newlineFlattener collapses embedded line breaks to single spaces before a
// field is handed to the CSV writer.
var newlineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Export writes the whole batch to a CSV file for Anki's manual importer.
// Unlike the direct adapter it deduplicates in memory up front: later
// occurrences of the same case-folded word are omitted from the file without
// being marked as failures.
type Export struct {
	status  *StatusWriter
	log     logging.Logger
	dir     string
	outFile string
	dryRun  bool
	out     io.Writer
	now     func() time.Time
}

// NewExport constructs the file-export adapter. outFile, when non-empty,
// overrides the generated path under dir.
func NewExport(status *StatusWriter, log logging.Logger, dir string, outFile string, dryRun bool) *Export {
	return &Export{
		status:  status,
		log:     log,
		dir:     dir,
		outFile: outFile,
		dryRun:  dryRun,
		out:     os.Stdout,
		now:     time.Now,
	}
}

// Deliver partitions the batch, deduplicates it, writes the CSV file and
// finally marks every exported item as pushed. A filesystem error is fatal
// and leaves all queue rows untouched.
func (e *Export) Deliver(ctx context.Context, items []*queue.Item) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(items))
	seen := make(map[string]string)
	var exported []*queue.Item

	for _, item := range items {
		if !item.HasDefinition() {
			e.log.Warn(ctx, "skipping item", "id", item.ID, "reason", common.ErrMissingDefinition.Error())
			e.status.Failure(ctx, item.ID, common.ErrMissingDefinition.Error())
			outcomes = append(outcomes, Outcome{Item: item, Status: StatusFailed, Reason: common.ErrMissingDefinition.Error()})
			continue
		}

		key := normalizeWord(item.Word)
		if first, dup := seen[key]; dup {
			e.log.Info(ctx, "dropping duplicate word", "id", item.ID, "word", item.Word, "first", first)
			outcomes = append(outcomes, Outcome{Item: item, Status: StatusDropped, Reason: "duplicate of " + first})
			continue
		}
		seen[key] = item.Word
		exported = append(exported, item)
		outcomes = append(outcomes, Outcome{Item: item, Status: StatusDelivered})
	}

	path := e.outFile
	if path == "" {
		path = filepath.Join(e.dir, fmt.Sprintf("anki_import_%s.csv", e.now().Format("20060102_150405")))
	}

	if e.dryRun {
		fmt.Fprintf(e.out, "[dry run] would write %d row(s) to %s\n", len(exported), path)
		for _, item := range exported {
			fmt.Fprintf(e.out, "[dry run]   Front=%q, Back=%q, Tags=%v\n",
				item.Word, preview(item.Definition, 50), item.Tags)
		}
		return outcomes, nil
	}

	if err := e.writeFile(path, exported); err != nil {
		return nil, err
	}
	e.log.Info(ctx, "export file written", "path", path, "rows", len(exported))

	for _, item := range exported {
		e.status.Success(ctx, item.ID)
	}
	return outcomes, nil
}

// writeFile serializes the surviving items. Fields pass through the newline
// flattener first; encoding/csv then quotes fields containing the delimiter
// or quote character and doubles embedded quotes.
func (e *Export) writeFile(path string, items []*queue.Item) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, item := range items {
		row := []string{
			newlineFlattener.Replace(item.Word),
			newlineFlattener.Replace(item.Definition),
			newlineFlattener.Replace(strings.Join(item.Tags, " ")),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}
	return nil
}
