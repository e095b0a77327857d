// Package services implements the business logic layer of the report
// generator. It sits between the entry points (CLI and HTTP handlers) and the
// pure core packages, and owns the cross-cutting concerns: tracing, metrics,
// logging and error classification.
//
// # Available Services
//
//	- ReportService: runs the parse → build → render pipeline on in-memory
//	  inputs (Generate) or on files, writing the finished documents
//	  (GenerateToDisk)
//	- HealthService: health, readiness and version information
//
// # Error Handling
//
// Failures are returned as *errors.AppError values from internal/errors:
// PARSING for an unreadable workbook, VALIDATION for a variable sheet whose
// keys collide, TEMPLATE for an empty template, STORAGE for output that
// cannot be written, RENDERING for a failed PDF print. The HTTP layer maps
// these to problem responses; the CLI prints them.
package services
