// Package sync initializes and runs one sync pass: it wires the queue
// repository to the configured delivery strategy, handles interrupts, and
// reports a batch summary.
package sync

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/ankisync/internal/anki"
	"github.com/dmitrijs2005/ankisync/internal/deliver"
	"github.com/dmitrijs2005/ankisync/internal/logging"
	"github.com/dmitrijs2005/ankisync/internal/queue"
	"github.com/dmitrijs2005/ankisync/internal/sync/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	repo      queue.Repository
	deliverer deliver.Deliverer
}

func NewApp(cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	repo := queue.NewPostgresRepository(db)
	status := deliver.NewStatusWriter(repo, logger, cfg.DryRun)

	var d deliver.Deliverer
	switch cfg.Mode {
	case config.ModeDirect:
		client := anki.NewClient(cfg.AnkiConnectURL, cfg.RequestTimeout)
		d = deliver.NewDirect(client, status, logger, cfg.DryRun)
	case config.ModeExport:
		d = deliver.NewExport(status, logger, cfg.ExportDir, cfg.OutFile, cfg.DryRun)
	default:
		return nil, fmt.Errorf("unknown delivery mode: %q", cfg.Mode)
	}

	return &App{config: cfg, logger: logger, db: db, repo: repo, deliverer: d}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run performs one strictly sequential pass: read the pending batch, hand it
// to the deliverer, log the summary. An interrupt cancels the run context;
// already-updated rows keep their new state, untouched rows stay eligible.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)
	defer app.db.Close()

	app.logger.Info(ctx, "fetching unpushed items", "limit", app.config.Limit)

	items, err := app.repo.SelectPending(ctx, app.config.Limit)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}
	if len(items) == 0 {
		app.logger.Info(ctx, "no unpushed items found")
		return nil
	}
	app.logger.Info(ctx, "found unpushed items", "count", len(items))

	if app.config.DryRun {
		app.logger.Info(ctx, "dry run mode, no changes will be made")
	}

	outcomes, err := app.deliverer.Deliver(ctx, items)
	if err != nil {
		return err
	}

	var delivered, duplicates, failed, dropped int
	for _, o := range outcomes {
		switch o.Status {
		case deliver.StatusDelivered:
			delivered++
		case deliver.StatusDuplicate:
			duplicates++
		case deliver.StatusFailed:
			failed++
		case deliver.StatusDropped:
			dropped++
		}
	}
	app.logger.Info(ctx, "sync complete",
		"delivered", delivered, "duplicates", duplicates, "failed", failed, "dropped", dropped)

	return nil
}
