package config

import "time"

// Application constants
const (
	AppName = "energyreport"

	// Report inputs and outputs
	DefaultVariablesPath = "/mnt/Technical and Financial Output.csv"
	DefaultChartPath     = "/mnt/Outputs - Chart Financed (1).csv"
	DefaultTemplatePath  = "template.html"
	DefaultOutputDir     = "output"

	// DotEnvFile is merged into the environment by Load when present
	DotEnvFile = ".env"

	DefaultMaxUploadBytes = 10 << 20 // 10MB
	DefaultPDFTimeout     = 60 * time.Second

	// HTTP surface
	DefaultRequestTimeout = 2 * time.Minute
	DefaultRateLimit      = 10 // requests per second
	DefaultBurstSize      = 20

	DefaultLogLevel = "info"
)
