// Package http implements the HTTP handlers of the report service. Handlers
// stay thin: they decode multipart uploads, call the service layer and turn
// its errors into RFC 7807 problem documents through apierrors.ErrorHandler.
//
// # Endpoints
//
//	POST /api/reports               variables, chart, template -> text/html (or PDF)
//	POST /api/reports/placeholders  variables, chart -> JSON placeholder table
//	GET  /api/health                liveness plus dependency status
//	GET  /api/health/ready          readiness, 503 when not ready
//	GET  /api/version               build information
//
// # Uploads
//
// Each sheet may be delimited text or an .xlsx workbook; the service sniffs
// the content. Bodies are capped with http.MaxBytesReader, and exceeding the
// cap yields a 413 problem with a limit_bytes extension. When the handler is
// configured with a default template the template upload becomes optional.
//
// POST /api/reports also reads plain form fields: format (html or pdf),
// download (attachment disposition), name (document base name) and mpan (the
// identifier whose chart rows are plotted, scientific notation accepted).
//
// # Error Handling
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Missing upload \"chart\"",
//	    "instance": "/api/reports",
//	    "error_code": "MISSING_PARAMETER",
//	    "trace_id": "..."
//	}
//
// # Testing
//
// Handlers are tested with httptest, against testify mocks of
// ReportServiceInterface for error paths and the real ReportService for
// end-to-end document checks.
package http
