package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

const chartSheet = `Year,MPAN,Finance Payment,Finance - Optima Cum. Savings
2025,123,"1,000.456",-
2026,123,1100,250.5
2025,456,9,9
2027,1.23E+2,,null
`

func TestParseSeriesFiltersByIdentifier(t *testing.T) {
	chart := ParseSeries(chartSheet, "1.23E+2")

	assert.Equal(t, []string{"2025", "2026", "2027"}, chart.Years)
	assert.Equal(t, []string{"finance_payment", "finance_optima_cum_savings"}, chart.Keys)
	assert.Equal(t, []*float64{ptr(1000.46), ptr(1100), nil}, chart.Values("finance_payment"))
	assert.Equal(t, []*float64{nil, ptr(250.5), nil}, chart.Values("finance_optima_cum_savings"))
	assert.False(t, chart.Has("mpan"))
	assert.False(t, chart.Has("year"))
}

func TestParseSeriesWithoutTarget(t *testing.T) {
	chart := ParseSeries(chartSheet, "")
	assert.Len(t, chart.Years, 4)
	assert.Len(t, chart.Values("finance_payment"), 4)
}

func TestParseSeriesNoMatch(t *testing.T) {
	chart := ParseSeries(chartSheet, "999")
	assert.Empty(t, chart.Years)
	assert.Empty(t, chart.Keys)
	assert.Empty(t, chart.Series)
}

func TestParseSeriesSkipsEmptyYears(t *testing.T) {
	chart := ParseSeries("year\tmpan\tValue\n\t1\t5\n2030\t1\t6\n", "1")
	require.Len(t, chart.Values("value"), 2)
	assert.Equal(t, []string{"2030"}, chart.Years)
}

func TestParseSeriesDuplicateKeys(t *testing.T) {
	chart := ParseSeries("Year,Payment £,Payment\n2025,1,2\n", "")
	assert.Equal(t, []string{"payment"}, chart.Keys)
	assert.Equal(t, []*float64{ptr(1)}, chart.Values("payment"))
}

func TestSeriesFromNilTable(t *testing.T) {
	chart := SeriesFromTable(nil, "1")
	assert.NotNil(t, chart.Series)
	assert.Empty(t, chart.Years)
}
