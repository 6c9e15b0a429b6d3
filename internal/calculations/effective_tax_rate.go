package calculations

import (
	"finance-engine/internal/model"
	"finance-engine/internal/tax"
)

type EffectiveTaxRateHandler struct{}

func (h *EffectiveTaxRateHandler) Validate(schedule []model.DerivedBracket, calc *model.Calculation) []model.CalculationMessage {
	income, bad := decodeIncome(calc)
	if bad != nil {
		return []model.CalculationMessage{*bad}
	}

	// Zero income has no effective rate (0/0).
	if income == 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeZeroIncome,
			Message: "Effective tax rate is undefined for zero income",
		}}
	}

	return untaxedIncomeWarning(schedule, income)
}

func (h *EffectiveTaxRateHandler) Apply(schedule []model.DerivedBracket, calc *model.Calculation) (float64, []model.CalculationMessage) {
	income, _ := decodeIncome(calc)
	return tax.CalculateEffectiveTaxRate(income, schedule), nil
}
