// Package report builds the presentation data for an energy savings report.
//
// BuildValues folds the variable sheet into a record map addressed by
// dot-paths. ComputeCostBands and SeriesFromTable derive the tariff band
// table and the chart series, and BuildPlaceholders renders everything into
// the token table that ApplyPlaceholders substitutes into an HTML template.
//
// Every function here is a pure function of its inputs.
package report
