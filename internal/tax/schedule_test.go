package tax

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-engine/internal/model"
)

func sampleBrackets() []model.TaxBracket {
	return []model.TaxBracket{
		{UpperBound: model.Bound(10000), Rate: 0.1},
		{UpperBound: model.Bound(50000), Rate: 0.2},
		{UpperBound: nil, Rate: 0.3},
	}
}

func TestPrepareScheduleSorts(t *testing.T) {
	unsorted := []model.TaxBracket{
		{UpperBound: nil, Rate: 0.3},
		{UpperBound: model.Bound(50000), Rate: 0.2},
		{UpperBound: model.Bound(10000), Rate: 0.1},
	}

	schedule := PrepareSchedule(unsorted)

	require.Len(t, schedule, 3)
	assert.Equal(t, 10000.0, *schedule[0].UpperBound)
	assert.Equal(t, 50000.0, *schedule[1].UpperBound)
	assert.Nil(t, schedule[2].UpperBound)
	assert.Nil(t, unsorted[0].UpperBound, "input must not be reordered")
}

func TestPrepareScheduleDerivedValues(t *testing.T) {
	schedule := PrepareSchedule(sampleBrackets())

	first := schedule[0]
	assert.Equal(t, 0.0, first.LowerBound)
	assert.Equal(t, 0.0, first.CumulativeTaxAtStart)
	assert.InDelta(t, 1000, *first.TaxInBracket, 1e-9)
	assert.InDelta(t, 1000, *first.TotalTaxAtUpperBound, 1e-9)
	assert.InDelta(t, 0.1, *first.EffectiveRateAtUpperBound, 1e-12)
	assert.Equal(t, "$0 - $10,000", first.IncomeRange)

	second := schedule[1]
	assert.Equal(t, 10000.0, second.LowerBound)
	assert.InDelta(t, 1000, second.CumulativeTaxAtStart, 1e-9)
	assert.InDelta(t, 8000, *second.TaxInBracket, 1e-9)
	assert.InDelta(t, 9000, *second.TotalTaxAtUpperBound, 1e-9)
	assert.InDelta(t, 0.18, *second.EffectiveRateAtUpperBound, 1e-12)
	assert.Equal(t, "$10,000 - $50,000", second.IncomeRange)

	top := schedule[2]
	assert.InDelta(t, 9000, top.CumulativeTaxAtStart, 1e-9)
	assert.Nil(t, top.TaxInBracket)
	assert.Nil(t, top.TotalTaxAtUpperBound)
	assert.Nil(t, top.EffectiveRateAtUpperBound)
	assert.Equal(t, "$50,000 - ∞", top.IncomeRange)
}

func TestCalculateTax(t *testing.T) {
	schedule := PrepareSchedule(sampleBrackets())

	tests := []struct {
		name   string
		income float64
		want   float64
	}{
		{"zero", 0, 0},
		{"negative", -500, 0},
		{"first bracket", 5000, 500},
		{"bracket boundary", 10000, 1000},
		{"spans two brackets", 30000, 5000},
		{"second boundary", 50000, 9000},
		{"highest bracket", 100000, 24000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateTax(tt.income, schedule), 1e-9)
		})
	}
}

func TestCalculateTaxWithoutInfiniteBracket(t *testing.T) {
	schedule := PrepareSchedule([]model.TaxBracket{
		{UpperBound: model.Bound(10000), Rate: 0.1},
		{UpperBound: model.Bound(20000), Rate: 0.2},
	})

	assert.InDelta(t, 3000, CalculateTax(20000, schedule), 1e-9)
	assert.InDelta(t, 3000, CalculateTax(1e6, schedule), 1e-9)
	assert.Equal(t, 0.0, CalculateTax(100, nil))
}

func TestCalculateTaxMatchesIterative(t *testing.T) {
	brackets := []model.TaxBracket{
		{UpperBound: model.Bound(11600), Rate: 0.10},
		{UpperBound: model.Bound(47150), Rate: 0.12},
		{UpperBound: model.Bound(100525), Rate: 0.22},
		{UpperBound: model.Bound(191950), Rate: 0.24},
		{UpperBound: model.Bound(243725), Rate: 0.32},
		{UpperBound: model.Bound(609350), Rate: 0.35},
		{UpperBound: nil, Rate: 0.37},
	}
	schedule := PrepareSchedule(brackets)

	for income := -1000.0; income <= 800000; income += 1234.5 {
		cached := CalculateTax(income, schedule)
		iterative := CalculateTaxIterative(income, brackets)
		if math.Abs(cached-iterative) > 1e-6 {
			t.Fatalf("income %v: cached %v != iterative %v", income, cached, iterative)
		}
	}
}

func TestCalculateTaxMonotoneAndContinuous(t *testing.T) {
	schedule := PrepareSchedule(sampleBrackets())

	prev := CalculateTax(0, schedule)
	for income := 1.0; income <= 120000; income++ {
		tax := CalculateTax(income, schedule)
		step := tax - prev
		if step < 0 {
			t.Fatalf("tax decreased at income %v", income)
		}
		if step > 0.3+1e-9 {
			t.Fatalf("tax jumped by %v at income %v", step, income)
		}
		prev = tax
	}

	// slope inside each bracket equals its rate
	assert.InDelta(t, 0.1, CalculateTax(5001, schedule)-CalculateTax(5000, schedule), 1e-9)
	assert.InDelta(t, 0.2, CalculateTax(30001, schedule)-CalculateTax(30000, schedule), 1e-9)
	assert.InDelta(t, 0.3, CalculateTax(90001, schedule)-CalculateTax(90000, schedule), 1e-9)
}

func TestCalculateEffectiveTaxRate(t *testing.T) {
	schedule := PrepareSchedule(sampleBrackets())

	assert.InDelta(t, 0.1, CalculateEffectiveTaxRate(5000, schedule), 1e-12)
	assert.InDelta(t, 0.15, CalculateEffectiveTaxRate(20000, schedule), 1e-12)
	assert.True(t, math.IsNaN(CalculateEffectiveTaxRate(0, schedule)))
}

func TestFindPreTaxIncomeRoundTrip(t *testing.T) {
	schedule := PrepareSchedule(sampleBrackets())

	for _, target := range []float64{100, 4500, 9000, 45000, 123456.78, 1000000} {
		gross, err := FindPreTaxIncome(target, schedule)
		require.NoError(t, err)
		net := gross - CalculateTax(gross, schedule)
		assert.InDelta(t, target, net, Tolerance, "target %v", target)
		assert.GreaterOrEqual(t, gross, target)
	}

	gross, err := FindPreTaxIncome(100, schedule)
	require.NoError(t, err)
	assert.Greater(t, gross, 100.0)
}

func TestFindPreTaxIncomeHighRates(t *testing.T) {
	schedule := PrepareSchedule([]model.TaxBracket{
		{UpperBound: model.Bound(1000), Rate: 0.5},
		{UpperBound: nil, Rate: 0.9},
	})

	gross, err := FindPreTaxIncome(5000, schedule)
	require.NoError(t, err)
	assert.InDelta(t, 5000, gross-CalculateTax(gross, schedule), Tolerance)
	assert.InDelta(t, 46000, gross, 1)
}

func TestFindPreTaxIncomeDegenerateTargets(t *testing.T) {
	schedule := PrepareSchedule(sampleBrackets())

	gross, err := FindPreTaxIncome(0, schedule)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gross)
}

func TestFindPreTaxIncomeRejectsFullRate(t *testing.T) {
	schedule := PrepareSchedule([]model.TaxBracket{
		{UpperBound: model.Bound(1000), Rate: 0.1},
		{UpperBound: nil, Rate: 1},
	})

	_, err := FindPreTaxIncome(5000, schedule)
	if !errors.Is(err, ErrRateNotBelowOne) {
		t.Fatalf("expected ErrRateNotBelowOne, got %v", err)
	}
}

func TestDescribeRangeFractionalBounds(t *testing.T) {
	b := model.DerivedBracket{LowerBound: 1234.5, UpperBound: model.Bound(2000000)}
	assert.Equal(t, "$1,234.50 - $2,000,000", DescribeRange(b))
}
