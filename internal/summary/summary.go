// Package summary reduces Monte Carlo trial output to per-year percentiles
// and a success rate.
package summary

import (
	"slices"

	"finance-engine/internal/model"
)

// Summarize aggregates trials of equal length. A trial succeeds when no
// year ends with a negative balance.
func Summarize(trials [][]model.YearResult) model.SimulationSummary {
	s := model.SimulationSummary{
		SuccessCount:      SuccessCount(trials),
		Nominal:           YearlyPercentiles(trials, nominal),
		InflationAdjusted: YearlyPercentiles(trials, inflationAdjusted),
	}
	if len(trials) > 0 {
		s.SuccessRate = float64(s.SuccessCount) / float64(len(trials))
	}
	return s
}

func nominal(r model.YearResult) float64           { return r.Balance }
func inflationAdjusted(r model.YearResult) float64 { return r.InflationAdjustedBalance }

func SuccessCount(trials [][]model.YearResult) int {
	n := 0
	for _, trial := range trials {
		if !slices.ContainsFunc(trial, func(r model.YearResult) bool { return r.Balance < 0 }) {
			n++
		}
	}
	return n
}

// YearlyPercentiles sorts each year's values across trials and picks the
// value at index floor(n*p).
func YearlyPercentiles(trials [][]model.YearResult, value func(model.YearResult) float64) []model.YearPercentiles {
	if len(trials) == 0 {
		return []model.YearPercentiles{}
	}

	years := len(trials[0])
	out := make([]model.YearPercentiles, 0, years)
	values := make([]float64, 0, len(trials))

	for y := 0; y < years; y++ {
		values = values[:0]
		for _, trial := range trials {
			if y < len(trial) {
				values = append(values, value(trial[y]))
			}
		}
		slices.Sort(values)

		at := func(p float64) float64 {
			return values[int(float64(len(values))*p)]
		}
		out = append(out, model.YearPercentiles{
			Year:   trials[0][y].Year,
			Min:    values[0],
			P10:    at(0.1),
			P20:    at(0.2),
			P30:    at(0.3),
			P40:    at(0.4),
			Median: at(0.5),
			P60:    at(0.6),
			P70:    at(0.7),
			P80:    at(0.8),
			P90:    at(0.9),
			Max:    values[len(values)-1],
		})
	}

	return out
}
