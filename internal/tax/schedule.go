// Package tax computes progressive tax over a marginal-rate bracket schedule.
package tax

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"sort"

	"finance-engine/internal/model"
)

// Tolerance is the solver's acceptable error in currency units.
const Tolerance = 0.01

// maxExpansions bounds how often FindPreTaxIncome doubles its upper bound.
const maxExpansions = 64

var (
	// ErrRateNotBelowOne means net income is not strictly increasing in gross
	// income, so the inverse is not well defined.
	ErrRateNotBelowOne = errors.New("every bracket rate must be below 100% to solve for pre-tax income")
	ErrSearchDiverged  = errors.New("could not bracket pre-tax income")
)

// SortBrackets returns a copy of brackets ordered by upper bound with the
// infinite bracket last.
func SortBrackets(brackets []model.TaxBracket) []model.TaxBracket {
	sorted := slices.Clone(brackets)
	slices.SortStableFunc(sorted, func(a, b model.TaxBracket) int {
		switch {
		case a.Infinite() && b.Infinite():
			return 0
		case a.Infinite():
			return 1
		case b.Infinite():
			return -1
		}
		return cmp.Compare(*a.UpperBound, *b.UpperBound)
	})
	return sorted
}

// PrepareSchedule sorts brackets and caches running totals for each. It is
// recomputed from scratch whenever the brackets change.
func PrepareSchedule(brackets []model.TaxBracket) []model.DerivedBracket {
	sorted := SortBrackets(brackets)
	schedule := make([]model.DerivedBracket, 0, len(sorted))

	var lower, cumulative float64
	for _, b := range sorted {
		d := model.DerivedBracket{
			LowerBound:           lower,
			Rate:                 b.Rate,
			CumulativeTaxAtStart: cumulative,
		}
		if !b.Infinite() {
			upper := *b.UpperBound
			inBracket := (upper - lower) * b.Rate
			total := cumulative + inBracket
			effective := total / upper

			d.UpperBound = &upper
			d.TaxInBracket = &inBracket
			d.TotalTaxAtUpperBound = &total
			d.EffectiveRateAtUpperBound = &effective

			cumulative = total
			lower = upper
		}
		d.IncomeRange = DescribeRange(d)
		schedule = append(schedule, d)
	}

	return schedule
}

// CalculateTax returns the tax owed on income. Income above every finite
// bracket of a schedule without an infinite bracket is untaxed.
func CalculateTax(income float64, schedule []model.DerivedBracket) float64 {
	if income <= 0 || len(schedule) == 0 {
		return 0
	}

	i := sort.Search(len(schedule), func(i int) bool {
		return schedule[i].Infinite() || *schedule[i].UpperBound >= income
	})
	if i == len(schedule) {
		return *schedule[i-1].TotalTaxAtUpperBound
	}

	b := schedule[i]
	return b.CumulativeTaxAtStart + (income-b.LowerBound)*b.Rate
}

// CalculateTaxIterative consumes income bracket by bracket. It agrees with
// CalculateTax and is kept as its reference.
func CalculateTaxIterative(income float64, brackets []model.TaxBracket) float64 {
	var total, lower float64
	remaining := income

	for _, b := range SortBrackets(brackets) {
		size := remaining
		if !b.Infinite() {
			size = math.Min(*b.UpperBound-lower, remaining)
			lower = *b.UpperBound
		}
		if size <= 0 {
			break
		}

		total += size * b.Rate
		remaining -= size
		if remaining <= 0 {
			break
		}
	}

	return total
}

// CalculateEffectiveTaxRate is tax divided by income. Zero income yields NaN;
// callers guard it.
func CalculateEffectiveTaxRate(income float64, schedule []model.DerivedBracket) float64 {
	return CalculateTax(income, schedule) / income
}

// FindPreTaxIncome binary-searches the gross income whose net of tax is
// within Tolerance of targetPostTax. The search starts on
// [target, 2*target] and doubles the upper end while its net income is still
// short of the target.
func FindPreTaxIncome(targetPostTax float64, schedule []model.DerivedBracket) (float64, error) {
	for _, b := range schedule {
		if !(b.Rate < 1) {
			return 0, ErrRateNotBelowOne
		}
	}

	netOf := func(gross float64) float64 {
		return gross - CalculateTax(gross, schedule)
	}

	low, high := targetPostTax, 2*targetPostTax
	for n := 0; targetPostTax > 0 && netOf(high) < targetPostTax; n++ {
		if n == maxExpansions {
			return 0, ErrSearchDiverged
		}
		low, high = high, 2*high
	}

	for high-low > Tolerance {
		mid := (low + high) / 2
		net := netOf(mid)

		if math.Abs(net-targetPostTax) < Tolerance {
			return mid, nil
		}
		if net > targetPostTax {
			high = mid
		} else {
			low = mid
		}
	}

	return (low + high) / 2, nil
}
