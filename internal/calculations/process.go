package calculations

import (
	"fmt"
	"time"

	"finance-engine/internal/model"
	"finance-engine/internal/tax"
)

// Process validates the bracket schedule, prepares it, and runs each named
// calculation in order. Processing stops at the first CRITICAL message.
func Process(brackets []model.TaxBracket, calcs []model.Calculation) *model.TaxResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	processed := []model.ProcessedCalculation{}
	outcome := model.OutcomeSuccess

	record := func(msgs []model.CalculationMessage) []int {
		var indexes []int
		for _, m := range msgs {
			m.ID = len(allMessages)
			allMessages = append(allMessages, m)
			indexes = append(indexes, m.ID)
		}
		return indexes
	}

	var schedule []model.DerivedBracket
	if errs := tax.Validate(brackets); len(errs) > 0 {
		for _, e := range errs {
			record([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeInvalidTaxBracket,
				Message: tax.FormatValidationErrors([]model.ValidationError{e}),
			}})
		}
		outcome = model.OutcomeFailure
	} else {
		schedule = tax.PrepareSchedule(brackets)
	}

	for i := 0; outcome == model.OutcomeSuccess && i < len(calcs); i++ {
		calc := calcs[i]

		handler, ok := Get(calc.CalculationName)
		if !ok {
			idx := record([]model.CalculationMessage{{
				Level:   model.LevelCritical,
				Code:    model.CodeUnknownCalculation,
				Message: fmt.Sprintf("Unknown calculation: %s", calc.CalculationName),
			}})
			processed = append(processed, model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: idx})
			outcome = model.OutcomeFailure
			break
		}

		validationMsgs := handler.Validate(schedule, &calc)
		msgIndexes := record(validationMsgs)
		if model.IsCritical(validationMsgs) {
			processed = append(processed, model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: msgIndexes})
			outcome = model.OutcomeFailure
			break
		}

		result, applyMsgs := handler.Apply(schedule, &calc)
		msgIndexes = append(msgIndexes, record(applyMsgs)...)

		pc := model.ProcessedCalculation{Calculation: calc, CalculationMessageIndexes: msgIndexes}
		if model.IsCritical(applyMsgs) {
			outcome = model.OutcomeFailure
		} else {
			pc.Result = &result
		}
		processed = append(processed, pc)
	}

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	return &model.TaxResponse{
		CalculationMetadata: model.NewMetadata(start, outcome),
		Messages:            allMessages,
		Schedule:            schedule,
		Calculations:        processed,
	}
}
