package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"energyreport/internal/exporter"
	"energyreport/pkg/contracts/domain"
)

// DefaultDisclaimer is substituted for {{static_disclaimer_text}} unless the
// caller configures another text.
const DefaultDisclaimer = "This report is based on the supplied consumption profile and tariff information. " +
	"Savings are indicative and subject to final engineering design, site surveys, and prevailing market conditions. " +
	"Finance illustrations are for guidance only and may vary. " +
	"Please refer to your agreement for full terms and conditions."

// flatKeys are the record-map paths exposed to templates as {{path}} and
// rendered through exporter.FormatByKey.
var flatKeys = []string{
	"site_name", "address", "mpan", "current_demand_period", "number_of_days", "created_date",
	"current_supplier", "contract_end_date", "gsp", "total_consumption_kwh",
	"current_energy_bill_gbp", "optima_energy_bill_gbp", "savings_percent", "optima_system_type",
	"optima_power_kw", "optima_capacity_kwh", "capital_cost_gbp", "optima_annual_savings_gbp",
	"dynamic_savings_percent", "dynamic_forecast_savings_gbp", "dynamic_roi_inc_full_expensing_years", "dynamic_roi_inc_full_expensing",
	"units.current.day_kwh", "units.current.night_kwh", "units.current.red_kwh", "units.current.amber_kwh", "units.current.green_kwh",
	"capacity.current_kva",
	"units.optima.day_kwh", "units.optima.night_kwh", "units.optima.red_kwh", "units.optima.amber_kwh", "units.optima.green_kwh",
	"capacity.optima_kva",
	"tariff.current.day_p_kwh", "tariff.current.night_p_kwh", "tariff.current.peak_p_kwh",
	"tariff.current.standing_p_day", "tariff.current.availability_p_kva_day", "tariff.current.ccl_p_kwh",
	"tariff.optima.day_p_kwh", "tariff.optima.night_p_kwh", "tariff.optima.peak_p_kwh",
	"tariff.optima.standing_p_day", "tariff.optima.availability_p_kva_day", "tariff.optima.ccl_p_kwh",
	"finance.product", "finance.term_months", "finance.interest_rate", "finance.repayment_gbp_pm",
	"finance.deposit_gbp", "finance.vat_gbp", "finance.est_price_gbp",
	"purchase_savings_year_1", "purchase_savings_warranty", "purchase_savings_useful_life",
	"purchase_roi_ex_full_expensing", "purchase_roi_inc_full_expensing", "basic_roi_years", "full_expensing_value",
	"finance_savings_year_1", "finance_savings_warranty", "finance_savings_useful_life",
	"finance_roi_ex_full_expensing", "finance_roi_inc_full_expensing",
	"dynamic_forecast_savings", "dynamic_roi_ex_full_expensing",
	"finance_payment_label", "finance_payment_total",
}

// chartSeriesTokens maps each chart token to the series keys that can fill
// it, in order of preference.
var chartSeriesTokens = []struct {
	name string
	keys []string
}{
	{name: "finance_payment", keys: []string{"finance_payment", "finance_payment_gbp"}},
	{name: "finance_optima_cum_savings", keys: []string{"finance_optima_cum_savings"}},
	{name: "finance_dynamic_forecast_savings", keys: []string{"finance_dynamic_forecast_savings"}},
	{name: "purchase_optima_cum_savings", keys: []string{"purchase_optima_cum_savings"}},
	{name: "purchase_dynamic_forecast_savings", keys: []string{"purchase_dynamic_forecast_savings"}},
}

// Token wraps key in template braces.
func Token(key string) string {
	return "{{" + key + "}}"
}

// Placeholders is an insertion-ordered token to text table. Setting an
// existing token replaces its text and keeps its position.
type Placeholders struct {
	tokens []string
	values map[string]string
}

// NewPlaceholders returns an empty table.
func NewPlaceholders() *Placeholders {
	return &Placeholders{values: map[string]string{}}
}

// Set assigns text to token.
func (p *Placeholders) Set(token, text string) {
	if _, ok := p.values[token]; !ok {
		p.tokens = append(p.tokens, token)
	}
	p.values[token] = text
}

// Get returns the text for token.
func (p *Placeholders) Get(token string) (string, bool) {
	v, ok := p.values[token]
	return v, ok
}

// Len returns the number of tokens.
func (p *Placeholders) Len() int {
	return len(p.tokens)
}

// Tokens returns the tokens in insertion order.
func (p *Placeholders) Tokens() []string {
	return append([]string(nil), p.tokens...)
}

// Entries returns the table as contract values in insertion order.
func (p *Placeholders) Entries() []domain.Placeholder {
	out := make([]domain.Placeholder, len(p.tokens))
	for i, t := range p.tokens {
		out[i] = domain.Placeholder{Token: t, Value: p.values[t]}
	}
	return out
}

// PlaceholderOptions tunes BuildPlaceholders.
type PlaceholderOptions struct {
	// Disclaimer replaces DefaultDisclaimer when non-empty.
	Disclaimer string
}

// BuildPlaceholders assembles the display text for every template token from
// the record map, the cost bands and the chart series. List-valued tokens are
// JSON arrays.
func BuildPlaceholders(values *Values, bands domain.CostBandTable, chart domain.ChartSeries, opts PlaceholderOptions) (*Placeholders, error) {
	p := NewPlaceholders()

	for _, key := range flatKeys {
		p.Set(Token(key), exporter.FormatByKey(key, values.Lookup(key)))
	}

	if err := p.setJSON("costBands.labels", bands.Labels()); err != nil {
		return nil, err
	}
	if err := p.setJSON("costBands.current.values", bands.CurrentCosts()); err != nil {
		return nil, err
	}
	if err := p.setJSON("costBands.optima.values", bands.OptimaCosts()); err != nil {
		return nil, err
	}

	for _, b := range bands.Bands {
		key := bandKey(b.Band)
		p.Set(Token("tariff."+SideCurrent+"."+key), b.CurrentRateText)
		p.Set(Token("tariff."+SideOptima+"."+key), b.OptimaRateText)
		p.Set(Token("cost."+SideCurrent+"."+key), b.CurrentCostText)
		p.Set(Token("cost."+SideOptima+"."+key), b.OptimaCostText)
	}

	years := chart.Years
	if years == nil {
		years = []string{}
	}
	if err := p.setJSON("chartYears", years); err != nil {
		return nil, err
	}
	for _, st := range chartSeriesTokens {
		if err := p.setJSON("chartSeries."+st.name, firstSeries(chart, st.keys)); err != nil {
			return nil, err
		}
	}

	disclaimer := opts.Disclaimer
	if strings.TrimSpace(disclaimer) == "" {
		disclaimer = DefaultDisclaimer
	}
	p.Set(Token("static_disclaimer_text"), disclaimer)

	p.Set(Token("mpan"), exporter.FormatMPAN(values.Lookup("mpan")))

	return p, nil
}

// firstSeries returns the first non-empty series among keys, or an empty
// series so the token still renders as [].
func firstSeries(chart domain.ChartSeries, keys []string) []*float64 {
	for _, k := range keys {
		if s := chart.Values(k); len(s) > 0 {
			return s
		}
	}
	return []*float64{}
}

func (p *Placeholders) setJSON(key string, v any) error {
	text, err := marshalArray(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", Token(key), err)
	}
	p.Set(Token(key), text)
	return nil
}

// marshalArray encodes v as compact JSON without HTML escaping, since the
// result is embedded verbatim inside script blocks.
func marshalArray(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// OutputName picks the document base name: the expanded MPAN, else the site
// name, else "report", sanitized for use as a file name.
func OutputName(values *Values) string {
	name := exporter.FormatMPAN(values.Lookup("mpan"))
	if name == "" {
		name = values.Lookup("site_name")
	}
	return exporter.SanitizeFilename(name)
}
