package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyreport/internal/config"
	apierrors "energyreport/internal/errors"
	"energyreport/internal/shared/testutil"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	inputs := testutil.WriteReportInputs(t)

	cfg := config.Default()
	cfg.Report.TemplatePath = inputs.Template
	cfg.Report.OutputDir = t.TempDir()
	cfg.Telemetry.TracingExporter = "none"
	cfg.Telemetry.MetricsExporter = "prometheus"
	require.NoError(t, cfg.Validate())
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) (*Application, *httptest.Server) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)

	app, err := New(cfg, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		srv.Close()
		app.OTelProviders.Shutdown(context.Background())
	})
	return app, srv
}

func postReport(t *testing.T, url string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, content := range map[string]string{
		"variables": testutil.SampleVariablesCSV,
		"chart":     testutil.SampleChartCSV,
	} {
		part, err := mw.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestApplication_Routes(t *testing.T) {
	_, srv := newTestApp(t, newTestConfig(t))

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedType   string
		expectedBody   string
	}{
		{
			name:           "health",
			method:         http.MethodGet,
			path:           "/api/health",
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "readiness",
			method:         http.MethodGet,
			path:           "/api/health/ready",
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
			expectedBody:   `"status":"ready"`,
		},
		{
			name:           "version",
			method:         http.MethodGet,
			path:           "/api/version",
			expectedStatus: http.StatusOK,
			expectedType:   "application/json",
			expectedBody:   `"template_format"`,
		},
		{
			name:           "unknown route",
			method:         http.MethodGet,
			path:           "/api/nope",
			expectedStatus: http.StatusNotFound,
			expectedType:   apierrors.ProblemContentType,
			expectedBody:   `"/errors/not-found"`,
		},
		{
			name:           "wrong method",
			method:         http.MethodDelete,
			path:           "/api/health",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedType:   apierrors.ProblemContentType,
			expectedBody:   `"/errors/method-not-allowed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.expectedType)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
			assert.Contains(t, readBody(t, resp), tt.expectedBody)
		})
	}
}

func TestApplication_GenerateReport(t *testing.T) {
	_, srv := newTestApp(t, newTestConfig(t))

	resp := postReport(t, srv.URL+"/api/reports")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, testutil.SampleMPAN, resp.Header.Get("X-Report-Name"))
	assert.Contains(t, readBody(t, resp), "<h1>Acme Works</h1>")

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()

	body := readBody(t, metrics)
	assert.Contains(t, body, "reports_generated_total")
	assert.Contains(t, body, "http_requests_total")
}

func TestApplication_RequestIDPropagation(t *testing.T) {
	_, srv := newTestApp(t, newTestConfig(t))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/nope", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
	assert.Contains(t, readBody(t, resp), `"trace_id":"req-123"`)
}

func TestApplication_RateLimit(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Security.RateLimit.Enabled = true
	cfg.Security.RateLimit.RPS = 0.01
	cfg.Security.RateLimit.Burst = 1
	_, srv := newTestApp(t, cfg)

	first, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.NotEmpty(t, second.Header.Get("Retry-After"))
}

func TestApplication_MissingDefaultTemplate(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Report.TemplatePath = "does-not-exist.html"
	_, srv := newTestApp(t, cfg)

	resp := postReport(t, srv.URL+"/api/reports")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"MISSING_PARAMETER"`)
}

func TestApplication_StartStop(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := newTestConfig(t)
	cfg.Server.Port = port
	logger, logs := testutil.NewTestLogger(t)
	app, err := New(cfg, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, app.Start(ctx, cancel))

	url := fmt.Sprintf("http://127.0.0.1:%d/api/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, app.Stop(ctx))
	assert.NoError(t, ctx.Err())
	assert.True(t, logs.ContainsMessage("Application shutdown complete"))

	_, err = http.Get(url)
	assert.Error(t, err)
}
