// Package config provides centralized configuration management for agricli.
// It layers environment variables (prefix AGRI_*) over an optional YAML file,
// validates the result, and exposes a single Paths type that is the source of
// truth for every file system location the toolkit touches.
//
// # Configuration Sources
//
// Configuration is loaded in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (agricli.yaml next to the executable)
//	3. Built-in defaults (lowest priority)
//
// # Environment Variables
//
//	AGRI_SERVER_PORT=8080
//	AGRI_LOGGING_LEVEL=info
//	AGRI_PIPELINE_SENTINEL=-1.0
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
