package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/travelmate/internal/timex"
)

// JsonConfig is the on-disk form of Config. Timeout accepts "15s" as well
// as integer nanoseconds. Absent fields keep their current value.
type JsonConfig struct {
	ServerURL   string          `json:"server_url"`
	HealthAddr  *string         `json:"health_addr"`
	SessionFile string          `json:"session_file"`
	Timeout     *timex.Duration `json:"timeout"`
}

func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.HealthAddr != nil {
		cfg.HealthAddr = *jc.HealthAddr
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}
