package model

import json "github.com/goccy/go-json"

// SimulationRequest carries the already-parsed inputs for a Monte Carlo run.
// Zero values for EndYear, CurrentYear, TrialCount and Seed fall back to
// server defaults.
type SimulationRequest struct {
	StartingBalance float64            `json:"starting_balance"`
	MonthlyExpenses float64            `json:"monthly_expenses"`
	Jobs            []Job              `json:"jobs"`
	LifeEvents      []LifeEvent        `json:"life_events"`
	AssetClasses    []AssetClass       `json:"asset_classes"`
	Inflation       ReturnDistribution `json:"inflation"`
	EndYear         int                `json:"end_year,omitempty"`
	CurrentYear     int                `json:"current_year,omitempty"`
	TrialCount      int                `json:"trial_count,omitempty"`
	Seed            int64              `json:"seed,omitempty"`
	IncludeTrials   bool               `json:"include_trials,omitempty"`
}

// TaxRequest evaluates a list of named calculations against one schedule.
// The schedule is either inline or resolved from the schedule registry.
type TaxRequest struct {
	ScheduleID   string        `json:"schedule_id,omitempty"`
	Brackets     []TaxBracket  `json:"brackets,omitempty"`
	Calculations []Calculation `json:"calculations"`
}

type Calculation struct {
	CalculationID         string          `json:"calculation_id"`
	CalculationName       string          `json:"calculation_name"`
	CalculationProperties json.RawMessage `json:"calculation_properties"`
}

type CSVExportRequest struct {
	Brackets []TaxBracket `json:"brackets"`
}
