package calculations

import (
	json "github.com/goccy/go-json"

	"finance-engine/internal/model"
	"finance-engine/internal/tax"
)

type findPreTaxIncomeProps struct {
	TargetPostTaxIncome *float64 `json:"target_post_tax_income"`
}

type FindPreTaxIncomeHandler struct{}

// decodeTarget reads {"target_post_tax_income": n}. The message is nil on
// success.
func decodeTarget(calc *model.Calculation) (float64, *model.CalculationMessage) {
	var props findPreTaxIncomeProps
	if err := json.Unmarshal(calc.CalculationProperties, &props); err != nil || props.TargetPostTaxIncome == nil {
		return 0, invalidProps(calc, "target_post_tax_income")
	}
	return *props.TargetPostTaxIncome, nil
}

func (h *FindPreTaxIncomeHandler) Validate(schedule []model.DerivedBracket, calc *model.Calculation) []model.CalculationMessage {
	target, msg := decodeTarget(calc)
	if msg != nil {
		return []model.CalculationMessage{*msg}
	}

	if target <= 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidTarget,
			Message: "Target post-tax income must be greater than 0",
		}}
	}

	for _, b := range schedule {
		if b.Rate >= 1 {
			return []model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeUnsolvable,
				Message: tax.ErrRateNotBelowOne.Error(),
			}}
		}
	}

	return nil
}

func (h *FindPreTaxIncomeHandler) Apply(schedule []model.DerivedBracket, calc *model.Calculation) (float64, []model.CalculationMessage) {
	target, msg := decodeTarget(calc)
	if msg != nil {
		return 0, []model.CalculationMessage{*msg}
	}

	gross, err := tax.FindPreTaxIncome(target, schedule)
	if err != nil {
		return 0, []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeUnsolvable,
			Message: err.Error(),
		}}
	}
	return gross, nil
}
