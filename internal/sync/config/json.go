package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/ankisync/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The request
// timeout is specified as integer seconds. After parsing, values are copied
// into the runtime Config.
type JsonConfig struct {
	DatabaseDSN           string `json:"database_dsn"`
	AnkiConnectURL        string `json:"anki_connect_url"`
	Mode                  string `json:"mode"`
	ExportDir             string `json:"export_dir"`
	RequestTimeoutSeconds int    `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags;
// when no path is given, no JSON is loaded. Only fields present in the file
// (non-zero after unmarshalling) override the current values. Read or
// unmarshal errors panic (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AnkiConnectURL != "" {
		cfg.AnkiConnectURL = jc.AnkiConnectURL
	}
	if jc.Mode != "" {
		cfg.Mode = Mode(jc.Mode)
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
	if jc.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSeconds) * time.Second
	}
}
