package report

import (
	"math"
	"strconv"
	"strings"

	"energyreport/internal/dataprocessing"
	"energyreport/internal/exporter"
	"energyreport/pkg/contracts/domain"
)

// Tariff sides as they appear in record-map paths.
const (
	SideCurrent = "current"
	SideOptima  = "optima"
)

// bandSource names the record-map fields a band reads on each side. Rate
// fields are tried in order and the first non-empty one is used.
type bandSource struct {
	band  domain.Band
	rates []string
	units string
}

var bandSources = []bandSource{
	{band: domain.BandDay, rates: []string{"day_p_kwh"}, units: "day_kwh"},
	{band: domain.BandNight, rates: []string{"night_p_kwh"}, units: "night_kwh"},
	{band: domain.BandRed, rates: []string{"peak_p_kwh"}, units: "red_kwh"},
	// Some sheets only carry a "red" rate for the amber window.
	{band: domain.BandAmber, rates: []string{"amber_p_kwh", "red_p_kwh"}, units: "amber_kwh"},
	{band: domain.BandGreen, rates: []string{"green_p_kwh"}, units: "green_kwh"},
}

// ComputeCostBands derives the cost of each tariff band on both sides as
// units × rate / 100 (pence to pounds), rounded to 2 places. Missing or
// unparseable inputs count as 0.
func ComputeCostBands(values *Values) domain.CostBandTable {
	table := domain.CostBandTable{Bands: make([]domain.CostBand, 0, len(bandSources))}

	for _, src := range bandSources {
		currentRate := src.rate(values, SideCurrent)
		optimaRate := src.rate(values, SideOptima)
		currentUnits := number(values.Lookup("units." + SideCurrent + "." + src.units))
		optimaUnits := number(values.Lookup("units." + SideOptima + "." + src.units))

		currentCost := bandCost(currentUnits, currentRate)
		optimaCost := bandCost(optimaUnits, optimaRate)

		table.Bands = append(table.Bands, domain.CostBand{
			Band:            src.band,
			CurrentRate:     currentRate,
			OptimaRate:      optimaRate,
			CurrentUnits:    currentUnits,
			OptimaUnits:     optimaUnits,
			CurrentCost:     dataprocessing.RoundTo(currentCost, 2),
			OptimaCost:      dataprocessing.RoundTo(optimaCost, 2),
			CurrentRateText: rateText(currentRate),
			OptimaRateText:  rateText(optimaRate),
			CurrentCostText: costText(currentCost),
			OptimaCostText:  costText(optimaCost),
		})
	}

	return table
}

func (s bandSource) rate(values *Values, side string) float64 {
	for _, field := range s.rates {
		if raw := values.Lookup("tariff." + side + "." + field); raw != "" {
			return number(raw)
		}
	}
	return 0
}

func number(raw string) float64 {
	v, ok := dataprocessing.ToNumber(raw)
	if !ok {
		return 0
	}
	return v
}

func bandCost(units, rate float64) float64 {
	cost := units * rate / 100
	if math.IsInf(cost, 0) || math.IsNaN(cost) {
		return 0
	}
	return cost
}

func rateText(rate float64) string {
	if rate == 0 {
		return ""
	}
	return strconv.FormatFloat(rate, 'f', -1, 64) + " p/kWh"
}

func costText(cost float64) string {
	if cost == 0 {
		return ""
	}
	return exporter.FormatAmount(cost)
}

// bandKey is the lower-case band name used in placeholder tokens.
func bandKey(b domain.Band) string {
	return strings.ToLower(string(b))
}
