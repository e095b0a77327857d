// Package api contains the HTTP API contract definitions of the report
// service. Version v1 represents the current stable API version.
package api

// Output formats accepted by ReportGenerateRequest.Format.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ReportGenerateRequest holds the non-file form fields of POST /api/reports.
// The variable sheet, chart sheet and template travel as multipart uploads.
type ReportGenerateRequest struct {
	Format   string `json:"format" form:"format" validate:"omitempty,oneof=html pdf"`
	Download bool   `json:"download" form:"download"`

	// Name replaces the document base name derived from the sheet.
	Name string `json:"name,omitempty" form:"name" validate:"omitempty,filename"`
	// MPAN selects the chart rows instead of the sheet's own MPAN.
	MPAN string `json:"mpan,omitempty" form:"mpan" validate:"omitempty,mpan"`
}
