// Package config handles configuration for the sync tool, including
// defaults, JSON overlay, environment overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/ankisync/internal/common"
)

// Mode selects the delivery strategy for a run.
type Mode string

const (
	// ModeDirect talks to a locally running AnkiConnect instance.
	ModeDirect Mode = "direct"
	// ModeExport writes a CSV file for Anki's manual importer.
	ModeExport Mode = "export"
)

// Config holds runtime settings for one sync run.
//
// Fields:
//   - DatabaseDSN: PostgreSQL DSN of the remote queue (pgx). Required.
//   - AnkiConnectURL: base URL of the AnkiConnect endpoint (direct mode).
//   - Mode: delivery strategy, "direct" or "export".
//   - ExportDir: directory for generated export files (export mode).
//   - OutFile: explicit export file path, overrides ExportDir when set.
//   - Limit: maximum number of items to process; 0 means no cap.
//   - DryRun: suppress every mutating side effect, print previews only.
//   - RequestTimeout: per-request bound for AnkiConnect calls.
type Config struct {
	DatabaseDSN    string
	AnkiConnectURL string
	Mode           Mode
	ExportDir      string
	OutFile        string
	Limit          int
	DryRun         bool
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. The database DSN has no
// default: the queue location must always be supplied explicitly.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = ""
	c.AnkiConnectURL = "http://localhost:8765"
	c.Mode = ModeDirect
	c.ExportDir = "./exports"
	c.Limit = 0
	c.DryRun = false
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables and finally command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate checks that everything the selected mode needs is present.
// It must be called before any work begins; a non-nil result is fatal.
func (c *Config) Validate() error {
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: database DSN is required", common.ErrMissingConfig)
	}
	switch c.Mode {
	case ModeDirect:
		if c.AnkiConnectURL == "" {
			return fmt.Errorf("%w: AnkiConnect URL is required in direct mode", common.ErrMissingConfig)
		}
	case ModeExport:
		if c.ExportDir == "" && c.OutFile == "" {
			return fmt.Errorf("%w: export directory or output file is required in export mode", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", common.ErrMissingConfig, c.Mode)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", common.ErrMissingConfig)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", common.ErrMissingConfig)
	}
	return nil
}
