package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/internal/services"
	"energyreport/internal/shared/testutil"
	"energyreport/pkg/contracts"
)

func TestHealthHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	inputs := testutil.WriteReportInputs(t)
	handler := NewHealthHandler(services.NewHealthService(t.TempDir(), inputs.Template, logger), logger)

	tests := []struct {
		name           string
		endpoint       string
		handlerFunc    http.HandlerFunc
		expectedStatus int
		checkResponse  func(t *testing.T, body map[string]any)
	}{
		{
			name:           "health check endpoint",
			endpoint:       "/api/health",
			handlerFunc:    handler.HealthCheck,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "ok", body["status"])
				assert.Equal(t, contracts.Version, body["version"])
				assert.Contains(t, body, "runtime")
			},
		},
		{
			name:           "readiness endpoint",
			endpoint:       "/api/health/ready",
			handlerFunc:    handler.ReadinessCheck,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "ready", body["status"])
				deps, ok := body["services"].(map[string]any)
				require.True(t, ok)
				assert.Contains(t, deps, "output")
				assert.Contains(t, deps, "template")
			},
		},
		{
			name:           "version endpoint",
			endpoint:       "/api/version",
			handlerFunc:    handler.Version,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body map[string]any) {
				assert.Equal(t, contracts.Version, body["version"])
				assert.Equal(t, contracts.APIVersion, body["api_version"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.endpoint, nil)
			rec := httptest.NewRecorder()

			tt.handlerFunc(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			tt.checkResponse(t, body)
		})
	}
}

func TestHealthHandler_ReadinessNotReady(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	handler := NewHealthHandler(services.NewHealthService(blocker, "", logger), logger)

	rec := httptest.NewRecorder()
	handler.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_ready"`)
	assert.True(t, logs.ContainsMessage("readiness check failed"))
}
