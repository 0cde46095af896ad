package config

import "os"

// parseEnv overlays Config with values from environment variables. Only
// variables that are set and non-empty override the current values.
//
// Recognized variables:
//
//	DATABASE_DSN      PostgreSQL DSN of the remote queue
//	ANKI_CONNECT_URL  AnkiConnect base URL
//	SYNC_MODE         delivery mode: "direct" or "export"
//	EXPORT_DIR        export directory
func parseEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("ANKI_CONNECT_URL"); v != "" {
		cfg.AnkiConnectURL = v
	}
	if v := os.Getenv("SYNC_MODE"); v != "" {
		cfg.Mode = Mode(v)
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
}
