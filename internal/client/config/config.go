package config

import "time"

// Config holds runtime settings for the TravelMate CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - HealthAddr: host:port of the gRPC health service ("" skips the probe).
//   - SessionFile: SQLite file that keeps the login session between runs.
//   - Timeout: per-request timeout for API calls.
type Config struct {
	ServerURL   string
	HealthAddr  string
	SessionFile string
	Timeout     time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.HealthAddr = "127.0.0.1:50051"
	c.SessionFile = "travelmate.db"
	c.Timeout = 15 * time.Second
}

// LoadConfig builds a Config from defaults, then the JSON file at path (if
// path is not empty), then the environment. Command-line flags are applied
// on top by the CLI.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	return cfg, nil
}
