package model

// TaxBracket is one marginal bracket. A nil UpperBound is the infinite
// sentinel. Rate is a decimal fraction.
type TaxBracket struct {
	UpperBound *float64 `json:"upper_bound"`
	Rate       float64  `json:"rate"`
}

// Infinite reports whether the bracket has no upper bound.
func (b TaxBracket) Infinite() bool {
	return b.UpperBound == nil
}

// Bound returns a pointer to v, for building brackets inline.
func Bound(v float64) *float64 {
	return &v
}

// DerivedBracket caches the running totals of a sorted schedule. The
// pointer fields are nil for the infinite bracket.
type DerivedBracket struct {
	LowerBound                float64  `json:"lower_bound"`
	UpperBound                *float64 `json:"upper_bound"`
	Rate                      float64  `json:"rate"`
	CumulativeTaxAtStart      float64  `json:"cumulative_tax_at_start"`
	TaxInBracket              *float64 `json:"tax_in_bracket"`
	TotalTaxAtUpperBound      *float64 `json:"total_tax_at_upper_bound"`
	EffectiveRateAtUpperBound *float64 `json:"effective_rate_at_upper_bound"`
	IncomeRange               string   `json:"income_range"`
}

func (b DerivedBracket) Infinite() bool {
	return b.UpperBound == nil
}

// ValidationError describes one structural problem in a bracket schedule.
// Index is nil for schedule-wide problems.
type ValidationError struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Index   *int   `json:"index,omitempty"`
}
