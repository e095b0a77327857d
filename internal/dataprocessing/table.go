package dataprocessing

import "strings"

// Table is a parsed sheet: a header row plus data rows zipped against it.
type Table struct {
	// Delimiter is the separator detected for delimited text. It is zero for
	// tables loaded from a workbook.
	Delimiter rune
	Header    []string
	Records   []Record

	columns map[string]int
}

// Record is one data row aligned to its table's header. Fields beyond the
// header are dropped; missing trailing fields are empty strings.
type Record struct {
	Fields  []string
	columns map[string]int
}

func newTable(delimiter rune, header []string, rows [][]string) *Table {
	t := &Table{
		Delimiter: delimiter,
		Header:    make([]string, len(header)),
		columns:   make(map[string]int, len(header)),
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		t.Header[i] = name
		// Duplicate header names resolve to the last column.
		t.columns[name] = i
	}

	t.Records = make([]Record, 0, len(rows))
	for _, row := range rows {
		fields := make([]string, len(t.Header))
		for i := range fields {
			if i < len(row) {
				fields[i] = row[i]
			}
		}
		t.Records = append(t.Records, Record{Fields: fields, columns: t.columns})
	}

	return t
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Get returns the field for the named column, or "" when the column is absent.
func (r Record) Get(name string) string {
	if idx, ok := r.columns[name]; ok && idx < len(r.Fields) {
		return r.Fields[idx]
	}
	return ""
}

// First returns the first non-empty field among the given column names.
func (r Record) First(names ...string) string {
	for _, name := range names {
		if v := r.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// Map returns the record as a name to value map. Duplicate header names keep
// the last column's value.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.columns))
	for name, idx := range r.columns {
		if idx < len(r.Fields) {
			m[name] = r.Fields[idx]
		}
	}
	return m
}
