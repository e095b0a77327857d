package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"energyreport/internal/infrastructure"
	"energyreport/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	outputDir    string
	templatePath string
	startTime    time.Time
	logger       *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual dependency health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a health service that checks the output directory
// and, when set, the default template file.
func NewHealthService(outputDir, templatePath string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", contracts.Version),
		slog.String("output_dir", outputDir))

	return &HealthService{
		outputDir:    outputDir,
		templatePath: templatePath,
		startTime:    time.Now(),
		logger:       infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status. Readiness of dependencies is
// folded in so a single probe reflects whether reports can be written.
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := hs.ReadinessCheck(ctx)
	if status.Status == "ready" {
		status.Status = "ok"
	} else {
		status.Status = "degraded"
	}
	status.Runtime = map[string]interface{}{
		"uptime_seconds": time.Since(hs.startTime).Seconds(),
		"go_version":     runtime.Version(),
		"goroutines":     runtime.NumGoroutine(),
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status))

	return status
}

// ReadinessCheck returns readiness status
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]ServiceHealth{
			"output":   hs.checkOutputDir(),
			"template": hs.checkTemplate(),
		},
	}

	for _, sh := range status.Services {
		if sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	return status
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":         info.Version,
		"prerelease":      contracts.IsPrerelease(),
		"api_version":     info.APIVersion,
		"template_format": info.TemplateFormat,
		"build_time":      info.BuildTime,
		"git_commit":      info.GitCommit,
		"go_version":      info.GoVersion,
		"os":              info.OS,
		"arch":            info.Architecture,
		"uptime":          time.Since(hs.startTime).Seconds(),
		"start_time":      hs.startTime.Format(time.RFC3339),
	}
}

// checkOutputDir verifies reports can be written by creating and removing a
// probe file.
func (hs *HealthService) checkOutputDir() ServiceHealth {
	if hs.outputDir == "" {
		return ServiceHealth{Status: "ready", Message: "documents are returned inline"}
	}

	if err := os.MkdirAll(hs.outputDir, 0755); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Cannot create output directory: %v", err),
		}
	}

	probe, err := os.CreateTemp(hs.outputDir, ".health-*")
	if err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Cannot write to output directory: %v", err),
		}
	}
	probe.Close()
	os.Remove(probe.Name())

	return ServiceHealth{Status: "ready", Message: "Output directory is writable"}
}

// checkTemplate verifies the default template is readable. Uploaded
// templates make it optional, so an unset path is ready.
func (hs *HealthService) checkTemplate() ServiceHealth {
	if hs.templatePath == "" {
		return ServiceHealth{Status: "ready", Message: "no default template configured"}
	}

	info, err := os.Stat(hs.templatePath)
	if err != nil || info.IsDir() {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Default template not found: %s", filepath.Clean(hs.templatePath)),
		}
	}

	return ServiceHealth{Status: "ready", Message: "Default template is readable"}
}
