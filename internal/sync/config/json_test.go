package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysPresentFields(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.json")
	content := `{
		"database_dsn": "postgres://json-host/queue",
		"mode": "export",
		"export_dir": "/data/exports",
		"request_timeout": 8
	}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	os.Args = []string{"cmd", "-c", file}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, "postgres://json-host/queue", c.DatabaseDSN)
	assert.Equal(t, ModeExport, c.Mode)
	assert.Equal(t, "/data/exports", c.ExportDir)
	assert.Equal(t, 8*time.Second, c.RequestTimeout)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "http://localhost:8765", c.AnkiConnectURL)
}

func TestParseJson_NoFileFlagIsANoop(t *testing.T) {
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	before := *c
	parseJson(c)

	assert.Equal(t, before, *c)
}

func TestParseJson_UnreadableFilePanics(t *testing.T) {
	os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "missing.json")}

	c := &Config{}
	c.LoadDefaults()
	require.Panics(t, func() { parseJson(c) })
}
