package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Message codes emitted by the tax calculation pipeline.
const (
	CodeInvalidTaxBracket  = "INVALID_TAX_BRACKET"
	CodeUnknownCalculation = "UNKNOWN_CALCULATION"
	CodeInvalidProperties  = "INVALID_PROPERTIES"
	CodeZeroIncome         = "ZERO_INCOME"
	CodeNegativeIncome     = "NEGATIVE_INCOME"
	CodeInvalidTarget      = "INVALID_TARGET"
	CodeUnsolvable         = "UNSOLVABLE"
	CodeUntaxedIncome      = "UNTAXED_INCOME"
)

// IsCritical reports whether any message carries the CRITICAL level.
func IsCritical(msgs []CalculationMessage) bool {
	for _, m := range msgs {
		if m.Level == LevelCritical {
			return true
		}
	}
	return false
}
