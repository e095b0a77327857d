package domain

import (
	"time"
)

// Band names one tariff time band.
type Band string

const (
	BandDay   Band = "Day"
	BandNight Band = "Night"
	BandRed   Band = "Red"
	BandAmber Band = "Amber"
	BandGreen Band = "Green"
)

// Bands lists the cost bands in display order.
var Bands = []Band{BandDay, BandNight, BandRed, BandAmber, BandGreen}

// CostBand holds rates, consumption and derived cost for one band on both
// the current tariff and the Optima (alternative) tariff. Missing inputs are 0.
type CostBand struct {
	Band         Band    `json:"band"`
	CurrentRate  float64 `json:"current_rate_p_kwh"`
	OptimaRate   float64 `json:"optima_rate_p_kwh"`
	CurrentUnits float64 `json:"current_units_kwh"`
	OptimaUnits  float64 `json:"optima_units_kwh"`
	CurrentCost  float64 `json:"current_cost_gbp"`
	OptimaCost   float64 `json:"optima_cost_gbp"`

	// Display strings are empty when the underlying value is zero.
	CurrentRateText string `json:"current_rate_text"`
	OptimaRateText  string `json:"optima_rate_text"`
	CurrentCostText string `json:"current_cost_text"`
	OptimaCostText  string `json:"optima_cost_text"`
}

// CostBandTable is the five fixed bands in display order.
type CostBandTable struct {
	Bands []CostBand `json:"bands"`
}

// Labels returns the band names in order.
func (t CostBandTable) Labels() []string {
	labels := make([]string, len(t.Bands))
	for i, b := range t.Bands {
		labels[i] = string(b.Band)
	}
	return labels
}

// CurrentCosts returns the current-tariff cost per band.
func (t CostBandTable) CurrentCosts() []float64 {
	costs := make([]float64, len(t.Bands))
	for i, b := range t.Bands {
		costs[i] = b.CurrentCost
	}
	return costs
}

// OptimaCosts returns the Optima-tariff cost per band.
func (t CostBandTable) OptimaCosts() []float64 {
	costs := make([]float64, len(t.Bands))
	for i, b := range t.Bands {
		costs[i] = b.OptimaCost
	}
	return costs
}

// Band looks up a band by name.
func (t CostBandTable) Band(band Band) (CostBand, bool) {
	for _, b := range t.Bands {
		if b.Band == band {
			return b, true
		}
	}
	return CostBand{}, false
}

// ChartSeries is a time-series sheet reduced to period labels and one
// period-aligned column of values per series key. A nil entry marks a gap.
type ChartSeries struct {
	Years  []string              `json:"years"`
	Keys   []string              `json:"keys"`
	Series map[string][]*float64 `json:"series"`
}

// Values returns the column for key, or nil when the series does not exist.
func (c ChartSeries) Values(key string) []*float64 {
	return c.Series[key]
}

// Has reports whether the series key exists.
func (c ChartSeries) Has(key string) bool {
	_, ok := c.Series[key]
	return ok
}

// Placeholder is one template token and its substituted text.
type Placeholder struct {
	Token string `json:"token"`
	Value string `json:"value"`
}

// ReportStats summarizes the inputs of one generation run.
type ReportStats struct {
	VariableRows       int    `json:"variable_rows"`
	VariablesDelimiter string `json:"variables_delimiter"`
	ValueKeys          int    `json:"value_keys"`
	ChartRows          int    `json:"chart_rows"`
	ChartRowsRetained  int    `json:"chart_rows_retained"`
	ChartDelimiter     string `json:"chart_delimiter"`
	SeriesCount        int    `json:"series_count"`
	Placeholders       int    `json:"placeholders"`
}

// ReportResult is the outcome of one report generation.
type ReportResult struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MPAN         string        `json:"mpan"`
	Document     string        `json:"-"`
	Placeholders []Placeholder `json:"placeholders"`
	CostBands    CostBandTable `json:"cost_bands"`
	Chart        ChartSeries   `json:"chart"`
	Stats        ReportStats   `json:"stats"`
	GeneratedAt  time.Time     `json:"generated_at"`

	// Paths are set only when the result was written to disk.
	HTMLPath        string `json:"html_path,omitempty"`
	PDFPath         string `json:"pdf_path,omitempty"`
	PlaceholderPath string `json:"placeholder_path,omitempty"`
}
