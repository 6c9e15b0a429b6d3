package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-engine/internal/model"
	"finance-engine/internal/random"
)

func volatileInputs() *Inputs {
	return &Inputs{
		StartingBalance: 500000,
		MonthlyExpenses: -3000,
		Jobs:            []model.Job{{Name: "job", PostTaxAnnualIncome: 40000, AdjustForInflation: true, EndDate: date(2035)}},
		AssetClasses: []model.AssetClass{
			{Name: "Stocks", Allocation: 0.6, Distribution: model.ReturnDistribution{MeanAnnualReturn: 0.08, StandardDeviation: 0.18}},
			{Name: "Bonds", Allocation: 0.4, Distribution: model.ReturnDistribution{MeanAnnualReturn: 0.03, StandardDeviation: 0.05}},
		},
		Inflation:   model.ReturnDistribution{MeanAnnualReturn: 0.03, StandardDeviation: 0.01},
		EndYear:     testCurrentYear + 40,
		CurrentYear: testCurrentYear,
	}
}

func TestRunTrialsShape(t *testing.T) {
	results, err := RunTrials(context.Background(), volatileInputs(), Options{TrialCount: 25, Seed: 5})
	require.NoError(t, err)
	require.Len(t, results, 25)
	for i, trial := range results {
		if len(trial) != 40 {
			t.Fatalf("trial %d: expected 40 years, got %d", i, len(trial))
		}
	}
	assert.NotEqual(t, results[0], results[1], "trials must draw independently")
}

func TestRunTrialsIndependentOfWorkers(t *testing.T) {
	in := volatileInputs()
	serial, err := RunTrials(context.Background(), in, Options{TrialCount: 30, Workers: 1, Seed: 11})
	require.NoError(t, err)
	parallel, err := RunTrials(context.Background(), in, Options{TrialCount: 30, Workers: 8, Seed: 11})
	require.NoError(t, err)
	assert.Equal(t, serial, parallel)

	other, err := RunTrials(context.Background(), in, Options{TrialCount: 30, Workers: 8, Seed: 12})
	require.NoError(t, err)
	assert.NotEqual(t, serial, other)
}

func TestRunTrialsZeroVarianceTrialsAgree(t *testing.T) {
	in := &Inputs{
		StartingBalance: 1,
		MonthlyExpenses: -5000,
		Jobs:            []model.Job{{Name: "exact", PostTaxAnnualIncome: 60000, AdjustForInflation: true}},
		AssetClasses:    singleClass(0),
		EndYear:         testCurrentYear + 10,
		CurrentYear:     testCurrentYear,
	}

	results, err := RunTrials(context.Background(), in, Options{TrialCount: 10, Seed: 3})
	require.NoError(t, err)
	for _, trial := range results {
		assert.Equal(t, results[0], trial)
	}
}

func TestRunTrialsCustomVariate(t *testing.T) {
	var seen []int
	opts := Options{
		TrialCount: 3,
		Workers:    1,
		NewVariate: func(trial int) random.Variate {
			seen = append(seen, trial)
			return meanVariate{}
		},
	}
	_, err := RunTrials(context.Background(), volatileInputs(), opts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2}, seen)
}

func TestRunTrialsRejectsEmptyBatch(t *testing.T) {
	_, err := RunTrials(context.Background(), volatileInputs(), Options{})
	if !errors.Is(err, ErrNoTrials) {
		t.Fatalf("expected ErrNoTrials, got %v", err)
	}
}

func TestRunTrialsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunTrials(ctx, volatileInputs(), Options{TrialCount: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
