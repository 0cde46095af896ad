package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ankisync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN of the remote queue
//	-a string   AnkiConnect base URL (e.g., "http://localhost:8765")
//	-m string   delivery mode: "direct" or "export"
//	-e string   export directory (export mode)
//	-o string   explicit export file path, overrides -e
//	-n int      limit of items to process (0 = no cap)
//	-r          dry run: print previews, mutate nothing
//	-t int      AnkiConnect request timeout in seconds
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-m", "-e", "-o", "-n", "-r", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN of the remote queue")
	fs.StringVar(&config.AnkiConnectURL, "a", config.AnkiConnectURL, "AnkiConnect base URL")
	mode := fs.String("m", string(config.Mode), "delivery mode (direct|export)")
	fs.StringVar(&config.ExportDir, "e", config.ExportDir, "export directory")
	fs.StringVar(&config.OutFile, "o", config.OutFile, "explicit export file path")
	fs.IntVar(&config.Limit, "n", config.Limit, "limit of items to process (0 = no cap)")
	fs.BoolVar(&config.DryRun, "r", config.DryRun, "dry run (no changes)")
	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Mode = Mode(*mode)
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
