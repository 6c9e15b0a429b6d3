package tax

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"finance-engine/internal/model"
)

const (
	columnUpperBound = "upperBound"
	columnRate       = "rate"
	nullBound        = "null"
	percent          = 100
)

// ScheduleError reports a CSV that parsed but describes an invalid schedule.
type ScheduleError struct {
	Errors []model.ValidationError
}

func (e *ScheduleError) Error() string {
	return FormatValidationErrors(e.Errors)
}

// ParseCSV reads a bracket schedule with header "upperBound,rate". Bounds are
// numbers or the literal "null"; rates are percentages. The schedule is
// validated before it is returned.
func ParseCSV(r io.Reader) ([]model.TaxBracket, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse tax csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("parse tax csv: %w", err)
	}

	boundCol, rateCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case columnUpperBound:
			boundCol = i
		case columnRate:
			rateCol = i
		}
	}
	if boundCol < 0 || rateCol < 0 {
		return nil, fmt.Errorf("parse tax csv: header must contain %q and %q columns", columnUpperBound, columnRate)
	}

	var brackets []model.TaxBracket
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse tax csv: %w", err)
		}

		b, err := parseRow(record, boundCol, rateCol)
		if err != nil {
			return nil, fmt.Errorf("parse tax csv: line %d: %w", line, err)
		}
		brackets = append(brackets, b)
	}

	if errs := Validate(brackets); len(errs) > 0 {
		return nil, &ScheduleError{Errors: errs}
	}

	return brackets, nil
}

func parseRow(record []string, boundCol, rateCol int) (model.TaxBracket, error) {
	var b model.TaxBracket

	bound := strings.TrimSpace(record[boundCol])
	if bound != nullBound {
		v, err := strconv.ParseFloat(bound, 64)
		if err != nil {
			return b, fmt.Errorf("invalid upper bound %q", bound)
		}
		b.UpperBound = &v
	}

	rate := strings.TrimSpace(record[rateCol])
	v, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return b, fmt.Errorf("invalid rate %q", rate)
	}
	b.Rate = v / percent

	return b, nil
}

// ExportCSV renders brackets in the format ParseCSV reads. Rows are joined
// by "\n" without a trailing newline.
func ExportCSV(brackets []model.TaxBracket) string {
	var sb strings.Builder
	sb.WriteString(columnUpperBound + "," + columnRate)

	for _, b := range brackets {
		sb.WriteByte('\n')
		if b.Infinite() {
			sb.WriteString(nullBound)
		} else {
			sb.WriteString(strconv.FormatFloat(*b.UpperBound, 'f', -1, 64))
		}
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(toPercent(b.Rate), 'f', -1, 64))
	}

	return sb.String()
}

// toPercent drops the float noise that fraction-to-percent scaling leaves
// behind (0.07*100 = 7.000000000000001).
func toPercent(rate float64) float64 {
	const scale = 1e9
	return math.Round(rate*percent*scale) / scale
}
