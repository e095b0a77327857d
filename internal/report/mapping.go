package report

import (
	"regexp"
	"strings"
)

// variableKeys maps variable names used by the technical and financial output
// sheet to dot-paths in the record map. Names not listed here go through
// Slugify.
var variableKeys = map[string]string{
	"Site Name":             "site_name",
	"Address":               "address",
	"MPAN":                  "mpan",
	"Current Demand Period": "current_demand_period",
	"Number of Days":        "number_of_days",
	"Created Date":          "created_date",
	"Contract End Date":     "contract_end_date",
	"Current Supplier":      "current_supplier",
	"GSP":                   "gsp",
	"Total Consumption":     "total_consumption_kwh",

	"Current Energy Bill £": "current_energy_bill_gbp",
	"Optima Energy Bill £":  "optima_energy_bill_gbp",
	"Savings":               "savings_percent",

	"Optima System Type":    "optima_system_type",
	"Power":                 "optima_power_kw",
	"Capacity":              "optima_capacity_kwh",
	"Capital Cost Value":    "capital_cost_gbp",
	"Optima Annual Savings": "optima_annual_savings_gbp",

	"Dynamic Savings":                 "dynamic_savings_percent",
	"Dynamic Forecast Savings *":      "dynamic_forecast_savings_gbp",
	"Dynamic ROI inc. Full Expensing": "dynamic_roi_inc_full_expensing_years",

	"Day units Current kWh":   "units.current.day_kwh",
	"Night units Current kWh": "units.current.night_kwh",
	"Red units Current kWh":   "units.current.red_kwh",
	"Amber units Current kWh": "units.current.amber_kwh",
	"Green units Current kWh": "units.current.green_kwh",
	"Capacity Current KVA":    "capacity.current_kva",

	"Day units Optima kWh":   "units.optima.day_kwh",
	"Night units Optima kWh": "units.optima.night_kwh",
	"Red units Optima kWh":   "units.optima.red_kwh",
	"Amber units Optima kWh": "units.optima.amber_kwh",
	"Green units Optima kWh": "units.optima.green_kwh",
	"Capacity Optima KVA":    "capacity.optima_kva",

	"Day Current P/kWh":            "tariff.current.day_p_kwh",
	"Night Current P/kWh":          "tariff.current.night_p_kwh",
	"Peak Current P/kWh":           "tariff.current.peak_p_kwh",
	"Standing charge Current P/D":  "tariff.current.standing_p_day",
	"Availability Current P/KVA/D": "tariff.current.availability_p_kva_day",
	"CCL Current P/kWh":            "tariff.current.ccl_p_kwh",

	"Day Optima P/kWh":            "tariff.optima.day_p_kwh",
	"Night Optima P/kWh":          "tariff.optima.night_p_kwh",
	"Peak Optima P/kWh":           "tariff.optima.peak_p_kwh",
	"Standing charge Optima P/D":  "tariff.optima.standing_p_day",
	"Availability Optima P/KVA/D": "tariff.optima.availability_p_kva_day",
	"CCL Optima P/kWh":            "tariff.optima.ccl_p_kwh",

	"Product":                   "finance.product",
	"Term (months)":             "finance.term_months",
	"Interest Rate":             "finance.interest_rate",
	"Repayment (p/m)":           "finance.repayment_gbp_pm",
	"Deposit":                   "finance.deposit_gbp",
	"VAT":                       "finance.vat_gbp",
	"Est. Price (inc. install)": "finance.est_price_gbp",

	"Purchase - Savings Year 1":             "purchase_savings_year_1",
	"Purchase - Savings within Warranty":    "purchase_savings_warranty",
	"Purchase - Savings within Useful Life": "purchase_savings_useful_life",
	"Purchase - ROI ex. Full Expensing":     "purchase_roi_ex_full_expensing",
	"Purchase - ROI inc. Full Expensing":    "purchase_roi_inc_full_expensing",
	"Basic ROI (years) *":                   "basic_roi_years",
	"Full Expensing":                        "full_expensing_value",

	"Finance - Savings Year 1":             "finance_savings_year_1",
	"Finance - Savings within Warranty":    "finance_savings_warranty",
	"Finance - Savings within Useful Life": "finance_savings_useful_life",
	"Finance - ROI ex. Full Expensing":     "finance_roi_ex_full_expensing",
	"Finance - ROI inc. Full Expensing":    "finance_roi_inc_full_expensing",

	"Dynamic ROI ex. Full Expensing": "dynamic_roi_ex_full_expensing",
}

// slugStep is one rewrite applied by a slug rule.
type slugStep struct {
	pattern *regexp.Regexp
	replace string
}

// variableSlugSteps derive a key from an unmapped variable name. Markers
// ("*"), currency symbols and parenthetical notes are dropped before the name
// is reduced to lowercase alphanumeric runs joined by underscores.
var variableSlugSteps = []slugStep{
	{regexp.MustCompile(`\*`), ""},
	{regexp.MustCompile(`£`), ""},
	{regexp.MustCompile(`\([^)]*\)`), ""},
	{regexp.MustCompile(`[^a-z0-9]+`), "_"},
	{regexp.MustCompile(`_+`), "_"},
}

// seriesSlugSteps derive a series key from a chart column header.
var seriesSlugSteps = []slugStep{
	{regexp.MustCompile(`[^a-z0-9]+`), "_"},
	{regexp.MustCompile(`_+`), "_"},
}

func applySlug(name string, steps []slugStep) string {
	s := strings.ToLower(name)
	for _, step := range steps {
		s = step.pattern.ReplaceAllString(s, step.replace)
	}
	return strings.Trim(s, "_")
}

// Slugify turns a free-form variable name into a record-map key, e.g.
// "Annual Standing Charge (est.) £" becomes "annual_standing_charge".
func Slugify(name string) string {
	return applySlug(name, variableSlugSteps)
}

// SeriesKey turns a chart column header into a series key, e.g.
// "Finance - Optima Cum. Savings" becomes "finance_optima_cum_savings".
func SeriesKey(header string) string {
	return applySlug(header, seriesSlugSteps)
}

// ResolveKey returns the record-map path for a variable name: the mapped path
// when the name is known, its slug otherwise.
func ResolveKey(name string) string {
	if key, ok := variableKeys[name]; ok {
		return key
	}
	return Slugify(name)
}

// IsMapped reports whether name has an explicit path.
func IsMapped(name string) bool {
	_, ok := variableKeys[name]
	return ok
}
