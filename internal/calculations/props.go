package calculations

import (
	"fmt"

	json "github.com/goccy/go-json"

	"finance-engine/internal/model"
)

type incomeProps struct {
	Income *float64 `json:"income"`
}

// decodeIncome reads {"income": n}. The message is nil on success.
func decodeIncome(calc *model.Calculation) (float64, *model.CalculationMessage) {
	var props incomeProps
	if err := json.Unmarshal(calc.CalculationProperties, &props); err != nil || props.Income == nil {
		return 0, invalidProps(calc, "income")
	}
	return *props.Income, nil
}

func invalidProps(calc *model.Calculation, field string) *model.CalculationMessage {
	return &model.CalculationMessage{
		Level:   model.LevelCritical,
		Code:    model.CodeInvalidProperties,
		Message: fmt.Sprintf("%s requires a numeric %s property", calc.CalculationName, field),
	}
}

// untaxedIncomeWarning flags income above the last finite bracket of a
// schedule without an infinite bracket.
func untaxedIncomeWarning(schedule []model.DerivedBracket, income float64) []model.CalculationMessage {
	if len(schedule) == 0 {
		return nil
	}
	top := schedule[len(schedule)-1]
	if top.Infinite() || income <= *top.UpperBound {
		return nil
	}
	return []model.CalculationMessage{{
		Level:   model.LevelWarning,
		Code:    model.CodeUntaxedIncome,
		Message: fmt.Sprintf("Income above %.2f is not covered by any bracket and is untaxed", *top.UpperBound),
	}}
}
