// Package config provides configuration management for the export
// normalizers. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for the settings that the
// command-line flags do not cover.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command-line flags (applied by package cli, highest priority)
//	2. Environment variables
//	3. YAML configuration file
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern NORMALIZER_* for namespacing:
//
//	NORMALIZER_LOGGING_LEVEL=debug
//	NORMALIZER_LOGGING_FORMAT=json
//	NORMALIZER_EXPORT_SUFFIX=_clean
//	NORMALIZER_EXPORT_FORMAT=csv
//	NORMALIZER_TELEMETRY_METRICS_FILE=metrics.prom
//
// # Configuration File
//
// The file is given with --config, or found as normalizer.yaml in the
// working directory or in configs/:
//
//	logging:
//	  level: info
//	  format: text
//	export:
//	  suffix: _limpio
//	  format: xlsx
//	  csv_bom: true
//	preview:
//	  rows: 5
//
// # Usage
//
//	cfg, err := config.Load(configPath)
//	if err != nil {
//	    return err
//	}
package config
