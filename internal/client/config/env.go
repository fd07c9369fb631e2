package config

import "os"

// parseEnv overlays Config with TRAVELMATE_* variables that are set.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv("TRAVELMATE_URL"); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv("TRAVELMATE_HEALTH_ADDR"); ok {
		cfg.HealthAddr = v
	}
	if v, ok := os.LookupEnv("TRAVELMATE_SESSION"); ok && v != "" {
		cfg.SessionFile = v
	}
}
