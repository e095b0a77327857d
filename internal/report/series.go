package report

import (
	"strings"

	"energyreport/internal/dataprocessing"
	"energyreport/pkg/contracts/domain"
)

var (
	periodColumns     = []string{"Year", "year"}
	identifierColumns = []string{"MPAN", "mpan"}
)

// ParseSeries parses a chart sheet and reduces it with SeriesFromTable.
func ParseSeries(text, targetID string) domain.ChartSeries {
	return SeriesFromTable(dataprocessing.Parse(text), targetID)
}

// SeriesFromTable keeps the rows whose identifier matches targetID (every row
// when targetID is empty) and turns each remaining column into a series of
// values rounded to 2 places. Both identifiers are compared after scientific
// notation is expanded. Cells that are not numbers become nil so every series
// stays aligned with Years.
func SeriesFromTable(table *dataprocessing.Table, targetID string) domain.ChartSeries {
	chart := domain.ChartSeries{
		Years:  []string{},
		Keys:   []string{},
		Series: map[string][]*float64{},
	}
	if table == nil {
		return chart
	}

	target := normalizeID(targetID)
	rows := make([]dataprocessing.Record, 0, len(table.Records))
	for _, rec := range table.Records {
		if target == "" || normalizeID(rec.First(identifierColumns...)) == target {
			rows = append(rows, rec)
		}
	}
	if len(rows) == 0 {
		return chart
	}

	columns := seriesColumns(table.Header)
	for _, col := range columns {
		chart.Keys = append(chart.Keys, col.key)
		chart.Series[col.key] = make([]*float64, 0, len(rows))
	}

	for _, rec := range rows {
		if year := rec.First(periodColumns...); year != "" {
			chart.Years = append(chart.Years, year)
		}
		for _, col := range columns {
			chart.Series[col.key] = append(chart.Series[col.key], cellValue(rec.Get(col.header)))
		}
	}

	return chart
}

type seriesColumn struct {
	header string
	key    string
}

// seriesColumns lists the value columns of a chart sheet in header order.
// Period and identifier columns are skipped; when two headers share a name or
// reduce to the same key, the first one keeps the key.
func seriesColumns(header []string) []seriesColumn {
	excluded := make(map[string]bool, len(periodColumns)+len(identifierColumns))
	for _, name := range append(append([]string{}, periodColumns...), identifierColumns...) {
		excluded[name] = true
	}

	seen := make(map[string]bool, len(header))
	columns := make([]seriesColumn, 0, len(header))
	for _, h := range header {
		if excluded[h] {
			continue
		}
		key := SeriesKey(h)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		columns = append(columns, seriesColumn{header: h, key: key})
	}
	return columns
}

func cellValue(raw string) *float64 {
	v, ok := dataprocessing.ToNumber(raw)
	if !ok {
		return nil
	}
	v = dataprocessing.RoundTo(v, 2)
	return &v
}

func normalizeID(raw string) string {
	return dataprocessing.ExpandScientific(strings.TrimSpace(raw))
}
