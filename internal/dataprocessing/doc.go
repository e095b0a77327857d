// Package dataprocessing turns raw sheet exports into tables of strings and
// normalizes scalar cell values.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. Parser: tokenizes delimited text (comma, tab or semicolon, detected from
// the header line) with full quote handling
// 2. Workbook loader: reads .xlsx exports into the same Table shape
// 3. Normalizer: converts cells to numbers and expands scientific notation
//
// # Usage
//
//	table := dataprocessing.Parse(text)
//	for _, rec := range table.Records {
//	    name := rec.First("Variable", "variable")
//	    if v, ok := dataprocessing.ToNumber(rec.Get("Value")); ok {
//	        ...
//	    }
//	}
//
// Inputs of unknown encoding go through DecodeAuto, which sniffs the ZIP magic
// bytes of an .xlsx file before falling back to the delimited parser.
//
// # Error Handling
//
// Parsing is permissive by design of the inputs it serves: malformed quoting
// is flushed at end of input and bad numbers report ok=false. Only opening a
// corrupt workbook returns an error.
package dataprocessing
