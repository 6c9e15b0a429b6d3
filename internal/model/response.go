package model

import (
	"time"

	"github.com/google/uuid"
)

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

// NewMetadata stamps a calculation that began at start and ends now.
func NewMetadata(start time.Time, outcome string) CalculationMetadata {
	elapsed := time.Since(start)
	now := time.Now().UTC()

	return CalculationMetadata{
		CalculationID:          uuid.New().String(),
		CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  elapsed.Milliseconds(),
		CalculationOutcome:     outcome,
	}
}

type SimulationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	StartingYear        int                 `json:"starting_year"`
	EndYear             int                 `json:"end_year"`
	TrialCount          int                 `json:"trial_count"`
	Seed                int64               `json:"seed"`
	Summary             SimulationSummary   `json:"summary"`
	Trials              [][]YearResult      `json:"trials,omitempty"`
}

// SimulationSummary aggregates trial output per simulated year.
type SimulationSummary struct {
	SuccessCount      int               `json:"success_count"`
	SuccessRate       float64           `json:"success_rate"`
	Nominal           []YearPercentiles `json:"nominal"`
	InflationAdjusted []YearPercentiles `json:"inflation_adjusted"`
}

type YearPercentiles struct {
	Year   int     `json:"year"`
	Min    float64 `json:"min"`
	P10    float64 `json:"p10"`
	P20    float64 `json:"p20"`
	P30    float64 `json:"p30"`
	P40    float64 `json:"p40"`
	Median float64 `json:"median"`
	P60    float64 `json:"p60"`
	P70    float64 `json:"p70"`
	P80    float64 `json:"p80"`
	P90    float64 `json:"p90"`
	Max    float64 `json:"max"`
}

type TaxResponse struct {
	CalculationMetadata CalculationMetadata    `json:"calculation_metadata"`
	Messages            []CalculationMessage   `json:"messages"`
	Schedule            []DerivedBracket       `json:"schedule"`
	Calculations        []ProcessedCalculation `json:"calculations"`
}

type ProcessedCalculation struct {
	Calculation               Calculation `json:"calculation"`
	Result                    *float64    `json:"result"`
	CalculationMessageIndexes []int       `json:"calculation_message_indexes,omitempty"`
}

type CSVParseResponse struct {
	Brackets []TaxBracket     `json:"brackets"`
	Schedule []DerivedBracket `json:"schedule"`
}

type ErrorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
