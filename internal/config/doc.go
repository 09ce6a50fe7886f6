// Package config provides centralized configuration management for tradelens.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TRADELENS_<SECTION>_<FIELD>:
//
//	TRADELENS_SERVER_PORT=4000
//	TRADELENS_REPORT_SOURCE_PATH=/data/trades.xlsx
//	TRADELENS_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,https://app.example.com
//	TRADELENS_LOGGING_LEVEL=debug
//
// TRADELENS_CONFIG points at the YAML file; otherwise tradelens.yaml is looked
// up in the working directory and in configs/.
//
// # Validation
//
// Every section carries go-playground/validator struct tags which are checked
// once all layers are applied.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
