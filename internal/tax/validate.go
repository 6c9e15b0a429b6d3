package tax

import (
	"fmt"
	"math"
	"strings"

	"finance-engine/internal/model"
)

const (
	MsgEmptySchedule       = "Tax brackets cannot be empty"
	MsgRateNotNumber       = "Tax rate must be a valid number"
	MsgRateOutOfRange      = "Tax rate must be between 0% and 100%"
	MsgBoundNotNumber      = "Upper bound must be a valid number or null"
	MsgBoundNotPositive    = "Upper bound must be greater than 0"
	MsgBoundsNotIncreasing = "Upper bounds must be in increasing order"
	MsgInfiniteNotLast     = "Only the last bracket can have an infinite upper bound"
)

const (
	FieldRate       = "rate"
	FieldUpperBound = "upperBound"
)

// Validate checks a schedule in input order and reports every problem found.
// An empty schedule short-circuits with a single error.
func Validate(brackets []model.TaxBracket) []model.ValidationError {
	if len(brackets) == 0 {
		return []model.ValidationError{{Message: MsgEmptySchedule}}
	}

	var errs []model.ValidationError
	indexed := func(i int, field, msg string) {
		errs = append(errs, model.ValidationError{Message: msg, Field: field, Index: &i})
	}

	var last float64
	haveLast := false
	for i, b := range brackets {
		switch {
		case !finite(b.Rate):
			indexed(i, FieldRate, MsgRateNotNumber)
		case b.Rate < 0 || b.Rate > 1:
			indexed(i, FieldRate, MsgRateOutOfRange)
		}

		if b.Infinite() {
			if i != len(brackets)-1 {
				errs = append(errs, model.ValidationError{Message: MsgInfiniteNotLast})
			}
			continue
		}

		upper := *b.UpperBound
		if !finite(upper) {
			indexed(i, FieldUpperBound, MsgBoundNotNumber)
			continue
		}
		if upper <= 0 {
			indexed(i, FieldUpperBound, MsgBoundNotPositive)
		}
		if haveLast && upper <= last {
			indexed(i, FieldUpperBound, MsgBoundsNotIncreasing)
		}
		last, haveLast = upper, true
	}

	return errs
}

// FormatValidationErrors renders one error per line, prefixing indexed
// errors with their 1-based bracket number.
func FormatValidationErrors(errs []model.ValidationError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		if e.Index != nil {
			lines[i] = fmt.Sprintf("Bracket %d: %s", *e.Index+1, e.Message)
		} else {
			lines[i] = e.Message
		}
	}
	return strings.Join(lines, "\n")
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
