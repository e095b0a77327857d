package exporter

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"energyreport/internal/dataprocessing"
)

const currencySymbol = "£"

// printer renders numbers with British grouping and decimal conventions.
var printer = message.NewPrinter(language.BritishEnglish)

// formatRule pairs a key predicate with the renderer used when it matches.
type formatRule struct {
	name    string
	matches func(key string) bool
	format  func(raw string) string
}

// formatRules is evaluated top to bottom; the first matching rule wins.
var formatRules = []formatRule{
	{name: "identifier", matches: contains("mpan"), format: FormatMPAN},
	{name: "percent", matches: contains("percent"), format: FormatPercent},
	{name: "years", matches: contains("roi"), format: FormatYears},
	{name: "rate_kwh", matches: hasSuffix("_p_kwh"), format: rate("p/kWh")},
	{name: "rate_day", matches: hasSuffix("_p_day"), format: rate("p/day")},
	{name: "rate_kva_day", matches: hasSuffix("_p_kva_day"), format: rate("p/kVA/day")},
	{name: "energy", matches: hasSuffix("_kwh"), format: unit("kWh")},
	{name: "capacity", matches: hasSuffix("_kva"), format: unit("kVA")},
	{name: "currency", matches: isMonetary, format: FormatCurrency},
}

// FormatByKey renders raw for display according to the semantic type implied
// by key. Keys matching no rule return raw unchanged.
func FormatByKey(key, raw string) string {
	for _, rule := range formatRules {
		if rule.matches(key) {
			return rule.format(raw)
		}
	}
	return raw
}

// RuleFor returns the name of the rule FormatByKey would apply to key, or
// "default".
func RuleFor(key string) string {
	for _, rule := range formatRules {
		if rule.matches(key) {
			return rule.name
		}
	}
	return "default"
}

func contains(sub string) func(string) bool {
	return func(key string) bool { return strings.Contains(key, sub) }
}

func hasSuffix(suffix string) func(string) bool {
	return func(key string) bool { return strings.HasSuffix(key, suffix) }
}

var monetaryWords = []string{"savings", "payment", "cost", "deposit", "price", "bill"}

func isMonetary(key string) bool {
	for _, w := range monetaryWords {
		if strings.Contains(key, w) {
			return true
		}
	}
	return strings.HasSuffix(key, "_gbp")
}

// FormatMPAN expands an identifier exported in scientific notation back to
// its plain digits. No grouping is applied.
func FormatMPAN(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return dataprocessing.ExpandScientific(s)
}

// FormatPercent renders a number with at most one decimal and a % sign.
// Values that already carry a % sign are returned as they are.
func FormatPercent(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "%") {
		return s
	}
	v, ok := dataprocessing.ToNumber(s)
	if !ok {
		return s
	}
	return formatDecimal(v, 1) + "%"
}

// FormatYears renders a payback period such as "4.2 years".
func FormatYears(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	v, ok := dataprocessing.ToNumber(s)
	if !ok {
		return s
	}
	return formatDecimal(v, 1) + " years"
}

// FormatUnit renders a quantity with at most one decimal, grouped thousands
// and the unit label.
func FormatUnit(raw, unitLabel string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	v, ok := dataprocessing.ToNumber(s)
	if !ok {
		return s
	}
	return formatDecimal(v, 1) + " " + unitLabel
}

// FormatRate appends a per-unit rate label to raw without reformatting it.
func FormatRate(raw, unitLabel string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return s + " " + unitLabel
}

// FormatCurrency renders a whole-pound amount. Negative amounts use the
// accounting form "(£1,500)". Text already starting with £ is kept.
func FormatCurrency(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, currencySymbol) {
		return s
	}
	v, ok := dataprocessing.ToNumber(s)
	if !ok {
		return s
	}
	return FormatAmount(v)
}

// FormatAmount is FormatCurrency for an already numeric value.
func FormatAmount(v float64) string {
	formatted := currencySymbol + formatDecimal(math.Abs(v), 0)
	if v < 0 {
		return "(" + formatted + ")"
	}
	return formatted
}

// formatDecimal rounds half away from zero before handing the value to the
// locale printer, so results do not depend on its rounding mode.
func formatDecimal(v float64, digits int) string {
	v = dataprocessing.RoundTo(v, digits)
	if v == 0 {
		// normalize -0
		v = 0
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(digits)))
}

func rate(label string) func(string) string {
	return func(raw string) string { return FormatRate(raw, label) }
}

func unit(label string) func(string) string {
	return func(raw string) string { return FormatUnit(raw, label) }
}
