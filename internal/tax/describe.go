package tax

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"finance-engine/internal/model"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// DescribeRange renders a bracket's income range, e.g. "$10,000 - $50,000"
// or "$50,000 - ∞".
func DescribeRange(b model.DerivedBracket) string {
	upper := "∞"
	if !b.Infinite() {
		upper = formatDollars(*b.UpperBound)
	}
	return formatDollars(b.LowerBound) + " - " + upper
}

func formatDollars(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return printer.Sprintf("$%d", int64(v))
	}
	return printer.Sprintf("$%.2f", v)
}
