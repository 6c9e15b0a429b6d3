package model

// ReturnDistribution is a yearly-sampled normal distribution expressed in
// decimal fractions (0.07 = 7%). Inflation is modeled with the same shape.
type ReturnDistribution struct {
	MeanAnnualReturn  float64 `json:"mean_annual_return"`
	StandardDeviation float64 `json:"standard_deviation"`
}

// AssetClass is one slice of a portfolio. Allocations across a portfolio are
// not normalized; the blended return is the allocation-weighted sum.
type AssetClass struct {
	Name         string             `json:"name"`
	Allocation   float64            `json:"allocation"`
	Distribution ReturnDistribution `json:"distribution"`
}

type Job struct {
	Name                  string  `json:"name"`
	PostTaxAnnualIncome   float64 `json:"post_tax_annual_income"`
	AdjustForInflation    bool    `json:"adjust_for_inflation"`
	YearlyRaisePercentage float64 `json:"yearly_raise_percentage"` // carried, not applied
	StartDate             *Date   `json:"start_date,omitempty"`
	EndDate               *Date   `json:"end_date,omitempty"`
}

// ActiveIn reports whether the job pays during the given calendar year.
// Only the year of each boundary date is compared.
func (j *Job) ActiveIn(year int) bool {
	if j.StartDate.Set() && j.StartDate.Year() > year {
		return false
	}
	if j.EndDate.Set() && j.EndDate.Year() < year {
		return false
	}
	return true
}

// LifeEvent is a one-off change expressed in today's dollars.
type LifeEvent struct {
	Name                  string  `json:"name"`
	BalanceChange         float64 `json:"balance_change"`
	MonthlyExpensesChange float64 `json:"monthly_expenses_change"`
	Date                  *Date   `json:"date,omitempty"`
}

// FiresIn reports whether the event happens in the given calendar year.
// Events without a date never fire.
func (e *LifeEvent) FiresIn(year int) bool {
	return e.Date.Set() && e.Date.Year() == year
}

// YearResult records the state at the end of one simulated year.
type YearResult struct {
	Year                             int     `json:"year"`
	Balance                          float64 `json:"balance"`
	InflationAdjustedBalance         float64 `json:"inflation_adjusted_balance"`
	InflationRate                    float64 `json:"inflation_rate"`
	MonthlyExpenses                  float64 `json:"monthly_expenses"`
	InflationAdjustedMonthlyExpenses float64 `json:"inflation_adjusted_monthly_expenses"`
}
