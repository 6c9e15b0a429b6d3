package engine

import (
	"finance-engine/internal/model"
	"finance-engine/internal/random"
)

const (
	monthsPerYear = 12

	// maxPreallocYears caps the result capacity reserved up front.
	maxPreallocYears = 1000
)

// Inputs is the read-only input set shared by every trial.
type Inputs struct {
	StartingBalance float64
	MonthlyExpenses float64 // negative = money leaving
	Jobs            []model.Job
	LifeEvents      []model.LifeEvent
	AssetClasses    []model.AssetClass
	Inflation       model.ReturnDistribution
	EndYear         int
	CurrentYear     int
}

// State holds one trial's running totals.
type State struct {
	Balance                       float64
	MonthlyExpenses               float64
	CumulativeInflationMultiplier float64
	StartingYear                  int
	EndYear                       int
}

func NewState(in *Inputs) State {
	return State{
		Balance:                       in.StartingBalance,
		MonthlyExpenses:               in.MonthlyExpenses,
		CumulativeInflationMultiplier: 1,
		StartingYear:                  in.CurrentYear,
		EndYear:                       in.EndYear,
	}
}

// Step advances s through calendar year `year` and returns the new state
// together with the year's record.
//
// Returns, expenses and job income are applied against last year's
// inflation multiplier. Life events are applied after this year's inflation
// draw and use the updated multiplier.
func Step(s State, year int, in *Inputs, rv random.Variate) (State, model.YearResult) {
	s.Balance += s.Balance * portfolioReturn(in.AssetClasses, rv)
	s.Balance += s.MonthlyExpenses * monthsPerYear
	s.Balance += jobsIncome(in.Jobs, year, s.CumulativeInflationMultiplier)

	rate := rv.Sample(in.Inflation.MeanAnnualReturn, in.Inflation.StandardDeviation)
	s.CumulativeInflationMultiplier *= 1 + rate
	s.MonthlyExpenses *= 1 + rate

	expensesChange, balanceChange := lifeEventChanges(in.LifeEvents, year)
	s.MonthlyExpenses += expensesChange * s.CumulativeInflationMultiplier
	s.Balance += balanceChange * s.CumulativeInflationMultiplier

	return s, model.YearResult{
		Year:                             year,
		Balance:                          s.Balance,
		InflationAdjustedBalance:         s.Balance / s.CumulativeInflationMultiplier,
		InflationRate:                    rate,
		MonthlyExpenses:                  s.MonthlyExpenses,
		InflationAdjustedMonthlyExpenses: s.MonthlyExpenses / s.CumulativeInflationMultiplier,
	}
}

// RunTrial simulates years CurrentYear+1 through EndYear inclusive.
func RunTrial(in *Inputs, rv random.Variate) []model.YearResult {
	state := NewState(in)
	results := make([]model.YearResult, 0, preallocYears(in))

	for year := state.StartingYear + 1; year <= state.EndYear; year++ {
		var yr model.YearResult
		state, yr = Step(state, year, in, rv)
		results = append(results, yr)
	}

	return results
}

func preallocYears(in *Inputs) int {
	if in.EndYear <= in.CurrentYear {
		return 0
	}
	n := in.EndYear - in.CurrentYear
	if n < 0 || n > maxPreallocYears {
		// n < 0 means the subtraction overflowed.
		return maxPreallocYears
	}
	return n
}

// portfolioReturn draws one return per asset class and weights it by the
// class allocation.
func portfolioReturn(classes []model.AssetClass, rv random.Variate) float64 {
	var total float64
	for _, ac := range classes {
		total += ac.Allocation * rv.Sample(ac.Distribution.MeanAnnualReturn, ac.Distribution.StandardDeviation)
	}
	return total
}

func jobsIncome(jobs []model.Job, year int, multiplier float64) float64 {
	var total float64
	for i := range jobs {
		if !jobs[i].ActiveIn(year) {
			continue
		}
		income := jobs[i].PostTaxAnnualIncome
		if jobs[i].AdjustForInflation {
			income *= multiplier
		}
		total += income
	}
	return total
}

// lifeEventChanges sums the today's-dollar changes of events firing in year.
func lifeEventChanges(events []model.LifeEvent, year int) (monthlyExpenses, balance float64) {
	for i := range events {
		if !events[i].FiresIn(year) {
			continue
		}
		monthlyExpenses += events[i].MonthlyExpensesChange
		balance += events[i].BalanceChange
	}
	return monthlyExpenses, balance
}
