package api

import (
	"energyreport/pkg/contracts/domain"
)

// PlaceholdersResponse is the body of POST /api/reports/placeholders
type PlaceholdersResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	MPAN         string               `json:"mpan"`
	Placeholders []domain.Placeholder `json:"placeholders"`
	Stats        domain.ReportStats   `json:"stats"`
}
