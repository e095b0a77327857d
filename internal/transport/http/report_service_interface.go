package http

import (
	"context"

	"energyreport/internal/files"
	"energyreport/pkg/contracts/domain"
)

// ReportServiceInterface defines the report operations the HTTP surface needs
type ReportServiceInterface interface {
	Generate(ctx context.Context, in files.Inputs) (*domain.ReportResult, error)
	Placeholders(ctx context.Context, in files.Inputs) (*domain.ReportResult, error)
	RenderPDF(ctx context.Context, result *domain.ReportResult) ([]byte, error)
}
