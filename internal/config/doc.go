// Package config loads the generator configuration.
//
// Values come from three layers, later layers winning:
//
//  1. Default()
//  2. a YAML file (REPORTGEN_CONFIG, config.yaml or configs/config.yaml)
//  3. environment variables prefixed with REPORTGEN_
//
// Nested sections map to nested prefixes, e.g. REPORTGEN_SERVER_PORT or
// REPORTGEN_REPORT_OUTPUT_DIR. The bare tag name is accepted as a fallback when
// the prefixed variable is unset, so MAIN_CSV, CHART_CSV, TEMPLATE_PATH and
// OUTPUT_DIR can point the generator at its inputs directly. Load also reads
// a .env file from the working directory into the environment (godotenv)
// without overriding variables that are already set.
//
// The result is checked with go-playground/validator struct tags.
package config
