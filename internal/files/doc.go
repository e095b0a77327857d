// Package files reads report inputs from disk.
//
// Manager resolves paths against a base directory and performs the raw file
// operations. Loader uses it to fetch the variables sheet, the chart sheet
// and the HTML template of one report in parallel:
//
//	loader := files.NewLoader(files.NewManager(""), logger)
//	in, err := loader.LoadInputs(ctx, files.InputPaths{
//	    Variables: "data.csv",
//	    Chart:     "chart.csv",
//	    Template:  "template.html",
//	})
//
// Failures are reported as *errors.AppError values from internal/errors so
// callers can tell a missing file from an unreadable one.
package files
