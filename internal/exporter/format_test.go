package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatByKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		raw      string
		expected string
	}{
		{name: "negative currency", key: "capital_cost_gbp", raw: "-1500", expected: "(£1,500)"},
		{name: "positive currency rounds", key: "optima_annual_savings_gbp", raw: "12,345.67", expected: "£12,346"},
		{name: "currency passthrough", key: "finance.deposit_gbp", raw: "£2,000", expected: "£2,000"},
		{name: "currency non numeric", key: "current_energy_bill_gbp", raw: "TBC", expected: "TBC"},
		{name: "currency by word", key: "finance_payment_total", raw: "999.5", expected: "£1,000"},
		{name: "percent", key: "savings_percent", raw: "12.345", expected: "12.3%"},
		{name: "percent already formatted", key: "dynamic_savings_percent", raw: "15%", expected: "15%"},
		{name: "percent whole", key: "savings_percent", raw: "20", expected: "20%"},
		{name: "roi years", key: "purchase_roi_ex_full_expensing", raw: "4.25", expected: "4.3 years"},
		{name: "roi non numeric", key: "basic_roi_years", raw: "n/a", expected: "n/a"},
		{name: "roi beats savings", key: "dynamic_roi_inc_full_expensing_years", raw: "3", expected: "3 years"},
		{name: "rate kwh", key: "tariff.current.day_p_kwh", raw: "21.456", expected: "21.456 p/kWh"},
		{name: "rate day", key: "tariff.current.standing_p_day", raw: "55", expected: "55 p/day"},
		{name: "rate kva day", key: "tariff.optima.availability_p_kva_day", raw: "3.1", expected: "3.1 p/kVA/day"},
		{name: "energy", key: "units.current.day_kwh", raw: "12345.67", expected: "12,345.7 kWh"},
		{name: "energy non numeric", key: "total_consumption_kwh", raw: "unknown", expected: "unknown"},
		{name: "capacity", key: "capacity.current_kva", raw: "200", expected: "200 kVA"},
		{name: "identifier", key: "mpan", raw: "1.1E+9", expected: "1100000000"},
		{name: "identifier plain", key: "mpan", raw: "1234567890123", expected: "1234567890123"},
		{name: "default", key: "site_name", raw: "Acme Works", expected: "Acme Works"},
		{name: "empty currency", key: "capital_cost_gbp", raw: "", expected: ""},
		{name: "empty percent", key: "savings_percent", raw: "", expected: ""},
		{name: "empty rate", key: "tariff.current.day_p_kwh", raw: "", expected: ""},
		{name: "empty default", key: "gsp", raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatByKey(tt.key, tt.raw))
		})
	}
}

func TestRuleFor(t *testing.T) {
	tests := map[string]string{
		"mpan":                           "identifier",
		"savings_percent":                "percent",
		"finance_roi_inc_full_expensing": "years",
		"tariff.current.ccl_p_kwh":       "rate_kwh",
		"units.optima.green_kwh":         "energy",
		"capacity.optima_kva":            "capacity",
		"finance.vat_gbp":                "currency",
		"full_expensing_value":           "default",
	}

	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, RuleFor(key))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "£200", FormatAmount(200))
	assert.Equal(t, "£1,234,568", FormatAmount(1234567.8))
	assert.Equal(t, "(£42)", FormatAmount(-41.5))
	assert.Equal(t, "£0", FormatAmount(0))
}

func TestFormatUnitNegative(t *testing.T) {
	assert.Equal(t, "-1,500.5 kWh", FormatUnit("-1500.5", "kWh"))
	assert.Equal(t, "0 kWh", FormatUnit("-0.01", "kWh"))
}
