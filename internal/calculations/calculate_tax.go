package calculations

import (
	"finance-engine/internal/model"
	"finance-engine/internal/tax"
)

type CalculateTaxHandler struct{}

func (h *CalculateTaxHandler) Validate(schedule []model.DerivedBracket, calc *model.Calculation) []model.CalculationMessage {
	income, bad := decodeIncome(calc)
	if bad != nil {
		return []model.CalculationMessage{*bad}
	}

	if income < 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeNegativeIncome,
			Message: "Negative income owes no tax",
		}}
	}

	return untaxedIncomeWarning(schedule, income)
}

func (h *CalculateTaxHandler) Apply(schedule []model.DerivedBracket, calc *model.Calculation) (float64, []model.CalculationMessage) {
	income, _ := decodeIncome(calc)
	return tax.CalculateTax(income, schedule), nil
}
