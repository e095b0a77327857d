package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, "none", cfg.Telemetry.TracingExporter)
				assert.Equal(t, DefaultVariablesPath, cfg.Report.VariablesPath)
				assert.Equal(t, DefaultChartPath, cfg.Report.ChartPath)
				assert.Equal(t, "template.html", cfg.Report.TemplatePath)
				assert.Equal(t, "output", cfg.Report.OutputDir)
				assert.False(t, cfg.Report.PDF)
				assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Report.MaxUploadBytes)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 9090
  read_timeout: 5s
report:
  output_dir: reports
  pdf: true
  disclaimer: Indicative only.
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, "reports", cfg.Report.OutputDir)
				assert.True(t, cfg.Report.PDF)
				assert.Equal(t, "Indicative only.", cfg.Report.Disclaimer)
				assert.Equal(t, DefaultTemplatePath, cfg.Report.TemplatePath)
			},
		},
		{
			name: "env overrides file",
			file: "server:\n  port: 9090\n",
			env:  map[string]string{"REPORTGEN_SERVER_PORT": "9191"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9191, cfg.Server.Port)
			},
		},
		{
			name: "bare input variables",
			env: map[string]string{
				"MAIN_CSV":      "/data/vars.csv",
				"CHART_CSV":     "/data/chart.csv",
				"TEMPLATE_PATH": "/data/template.html",
				"OUTPUT_DIR":    "/data/out",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/vars.csv", cfg.Report.VariablesPath)
				assert.Equal(t, "/data/chart.csv", cfg.Report.ChartPath)
				assert.Equal(t, "/data/template.html", cfg.Report.TemplatePath)
				assert.Equal(t, "/data/out", cfg.Report.OutputDir)
			},
		},
		{
			name: "prefixed variable beats bare one",
			env: map[string]string{
				"MAIN_CSV":                  "/bare.csv",
				"REPORTGEN_REPORT_MAIN_CSV": "/prefixed.csv",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/prefixed.csv", cfg.Report.VariablesPath)
			},
		},
		{
			name: "level is case insensitive",
			env:  map[string]string{"REPORTGEN_LOGGING_LEVEL": "DEBUG"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name:    "invalid level",
			env:     map[string]string{"REPORTGEN_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "invalid port",
			env:     map[string]string{"REPORTGEN_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "unparseable env value",
			env:     map[string]string{"REPORTGEN_REPORT_PDF": "maybe"},
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			file:    "server: [",
			wantErr: true,
		},
		{
			name:    "empty output dir",
			file:    "report:\n  output_dir: \"\"\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadDotEnv(t *testing.T) {
	const (
		fileOnly = "REPORTGEN_DOTENV_TEST_FILE_ONLY"
		preset   = "REPORTGEN_DOTENV_TEST_PRESET"
	)
	t.Setenv(preset, "from-env")
	t.Cleanup(func() { os.Unsetenv(fileOnly) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(fileOnly+"=from-file\n"+preset+"=from-file\n"), 0644))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv(fileOnly))
	assert.Equal(t, "from-env", os.Getenv(preset))

	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
