// Package exporter turns report values into display text and writes finished
// documents.
//
// This package contains four main components:
//
// Typed formatter: FormatByKey picks a display rule from the shape of a
// placeholder key (identifier, percent, years, rate, quantity, currency) and
// renders the raw cell with en-GB number conventions.
//
// CSVWriter: writes CSV files with an optional UTF-8 BOM for Excel, used to
// dump the resolved placeholder table next to a report.
//
// DocumentWriter: writes finished HTML (and PDF) documents into the output
// directory under a sanitized file name.
//
// PDFRenderer: prints an HTML document to PDF through headless Chrome.
//
// Example usage:
//
//	display := exporter.FormatByKey("capital_cost_gbp", "-1500") // "(£1,500)"
//
//	writer := exporter.NewDocumentWriter("output", logger)
//	path, err := writer.WriteHTML(exporter.SanitizeFilename(mpan), html)
package exporter
