// Package config provides centralized configuration for the datalens
// service and its command line tools.
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//  1. Environment variables (highest priority)
//  2. An optional YAML configuration file
//  3. Built-in defaults (lowest priority)
//
// All environment variables use the DATALENS_ prefix:
//
//	DATALENS_SERVER_PORT=8080
//	DATALENS_ANALYTICS_BASE_URL=http://127.0.0.1:5000
//	DATALENS_LOGGING_LEVEL=info
//
// The quality thresholds that drive the assessor (completeness ratios,
// minimum row and column counts, score penalties) live in QualityConfig
// rather than in the assessment code, so scoring policy can be tuned
// without touching the algorithm.
//
// Load configuration once at startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
