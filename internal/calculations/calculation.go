package calculations

import "finance-engine/internal/model"

// CalculationHandler defines the contract for all named tax calculations.
// Validate checks the properties against the prepared schedule; Apply
// computes the result.
type CalculationHandler interface {
	Validate(schedule []model.DerivedBracket, calc *model.Calculation) []model.CalculationMessage
	Apply(schedule []model.DerivedBracket, calc *model.Calculation) (float64, []model.CalculationMessage)
}
