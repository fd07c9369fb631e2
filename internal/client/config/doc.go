// Package config loads runtime configuration for the TravelMate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config.
//  3. Environment: TRAVELMATE_URL, TRAVELMATE_HEALTH_ADDR, TRAVELMATE_SESSION.
//  4. Command-line flags, applied by the CLI itself.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "health_addr": "127.0.0.1:50051",
//	  "session_file": "travelmate.db",
//	  "timeout": "15s"
//	}
package config
