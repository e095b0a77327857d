package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/internal/shared/testutil"
	"energyreport/pkg/contracts"
)

func TestHealthService(t *testing.T) {
	inputs := testutil.WriteReportInputs(t)

	tests := []struct {
		name         string
		outputDir    func(t *testing.T) string
		templatePath string
		wantReady    string
		wantHealth   string
	}{
		{
			name:         "writable output and template present",
			outputDir:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "out") },
			templatePath: inputs.Template,
			wantReady:    "ready",
			wantHealth:   "ok",
		},
		{
			name:       "nothing configured",
			outputDir:  func(t *testing.T) string { return "" },
			wantReady:  "ready",
			wantHealth: "ok",
		},
		{
			name:         "template missing",
			outputDir:    func(t *testing.T) string { return t.TempDir() },
			templatePath: filepath.Join(inputs.Dir, "missing.html"),
			wantReady:    "not_ready",
			wantHealth:   "degraded",
		},
		{
			name: "output path is a file",
			outputDir: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "blocker")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantReady:  "not_ready",
			wantHealth: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			hs := NewHealthService(tt.outputDir(t), tt.templatePath, logger)

			ready := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantReady, ready.Status)
			assert.Equal(t, contracts.Version, ready.Version)
			assert.Len(t, ready.Services, 2)

			health := hs.HealthCheck(context.Background())
			assert.Equal(t, tt.wantHealth, health.Status)
			assert.Contains(t, health.Runtime, "uptime_seconds")
		})
	}
}

func TestHealthService_Version(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("", "", logger)

	v := hs.Version()
	assert.Equal(t, contracts.Version, v["version"])
	assert.Equal(t, contracts.APIVersion, v["api_version"])
	assert.Equal(t, contracts.TemplateFormat, v["template_format"])
}
