package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValidity(t *testing.T) {
	t.Run("coverage policies", func(t *testing.T) {
		assert.True(t, CoverageBusinessHours.Valid())
		assert.True(t, CoverageExtendedHours.Valid())
		assert.True(t, CoverageFullTime.Valid())
		assert.False(t, CoveragePolicy("follow_the_sun").Valid())
	})

	t.Run("cost behaviors", func(t *testing.T) {
		for _, behavior := range []CostBehavior{CostBehaviorFixed, CostBehaviorVariable, CostBehaviorSemiVariable, CostBehaviorEventual} {
			assert.True(t, behavior.Valid(), string(behavior))
		}
		assert.False(t, CostBehavior("elastic").Valid())
	})

	t.Run("margin policy kinds", func(t *testing.T) {
		assert.True(t, MarginPercentageOnCost.Valid())
		assert.True(t, MarginFixedTarget.Valid())
		assert.False(t, MarginPolicyKind("cost_plus").Valid())
	})

	t.Run("adjustment categories", func(t *testing.T) {
		for _, category := range []AdjustmentCategory{AdjustmentPrice, AdjustmentTerms, AdjustmentScope, AdjustmentTimeline} {
			assert.True(t, category.Valid(), string(category))
		}
		assert.False(t, AdjustmentCategory("vibes").Valid())
	})
}

func TestRecurrenceMonths(t *testing.T) {
	tests := []struct {
		name       string
		recurrence Recurrence
		months     float64
	}{
		{"monthly spans one month", RecurrenceMonthly, 1},
		{"quarterly spans three months", RecurrenceQuarterly, 3},
		{"semi annual spans six months", RecurrenceSemiAnnual, 6},
		{"annual spans twelve months", RecurrenceAnnual, 12},
		{"one time amortizes over twelve months", RecurrenceOneTime, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.months, tt.recurrence.Months())
		})
	}
}

func TestOtherCostMonthlyEquivalent(t *testing.T) {
	cost := OtherCost{Name: "audit", Amount: 900, Behavior: CostBehaviorFixed, Recurrence: RecurrenceQuarterly}
	assert.InDelta(t, 300.0, cost.MonthlyEquivalent(), 1e-9)

	setup := OtherCost{Name: "setup", Amount: 2400, Behavior: CostBehaviorEventual, Recurrence: RecurrenceOneTime}
	assert.InDelta(t, 200.0, setup.MonthlyEquivalent(), 1e-9)
}

func TestComputeImpactPct(t *testing.T) {
	t.Run("relative change in percent", func(t *testing.T) {
		adjustment := Adjustment{OriginalValue: 100000, AdjustedValue: 120000}
		assert.InDelta(t, 20.0, adjustment.ComputeImpactPct(), 1e-9)
	})

	t.Run("zero original value yields zero impact", func(t *testing.T) {
		adjustment := Adjustment{OriginalValue: 0, AdjustedValue: 500}
		assert.Zero(t, adjustment.ComputeImpactPct())
	})
}

func TestProjectSnapshotClone(t *testing.T) {
	original := ProjectSnapshot{
		Name: "acme",
		Team: TeamComposition{
			Positions: []TeamPosition{{PositionID: "n1-analyst", Headcount: 2, WeeklyHours: WeeklyHoursFull}},
		},
		Rates: PositionRates{
			"n1-analyst": {PositionID: "n1-analyst", MonthlyRate48: 3200},
		},
		Taxes: TaxConfig{Components: []TaxComponent{{Name: "ISS", RatePct: 5}}},
		OtherCosts: []OtherCost{
			{Name: "license", Amount: 100, Behavior: CostBehaviorFixed, Recurrence: RecurrenceMonthly},
		},
	}

	clone := original.Clone()
	clone.Team.Positions[0].Headcount = 9
	clone.Rates["n1-analyst"] = PositionRate{PositionID: "n1-analyst", MonthlyRate48: 1}
	clone.Taxes.Components[0].RatePct = 99
	clone.OtherCosts[0].Amount = 999

	assert.Equal(t, 2, original.Team.Positions[0].Headcount)
	assert.Equal(t, 3200.0, original.Rates["n1-analyst"].MonthlyRate48)
	assert.Equal(t, 5.0, original.Taxes.Components[0].RatePct)
	assert.Equal(t, 100.0, original.OtherCosts[0].Amount)
}

func TestNegotiationScenarioClone(t *testing.T) {
	scenario := NewNegotiationScenario("Round 1", "first pass")
	scenario.Adjustments = []Adjustment{{Category: AdjustmentPrice, Field: "margin", OriginalValue: 20, AdjustedValue: 25}}
	scenario.Results.Taxes.Components = []TaxAmount{{Name: "ISS", Amount: 500}}

	clone := scenario.Clone()
	clone.Adjustments[0].AdjustedValue = 99
	clone.Results.Taxes.Components[0].Amount = 1

	assert.Equal(t, 25.0, scenario.Adjustments[0].AdjustedValue)
	assert.Equal(t, 500.0, scenario.Results.Taxes.Components[0].Amount)
	assert.Equal(t, scenario.ID, clone.ID)
}

func TestNewNegotiationScenario(t *testing.T) {
	scenario := NewNegotiationScenario("Round 1", "first pass")

	assert.NotEmpty(t, scenario.ID)
	assert.Equal(t, 1, scenario.Version)
	assert.False(t, scenario.IsBaseline)
	assert.False(t, scenario.CreatedAt.IsZero())
}

func TestPositionRatesRateFor(t *testing.T) {
	rates := PositionRates{
		"n1-analyst": {PositionID: "n1-analyst", MonthlyRate48: 3200, MonthlyRate36: 2600},
	}

	rate, ok := rates.RateFor("n1-analyst", WeeklyHoursFull)
	require.True(t, ok)
	assert.Equal(t, 3200.0, rate)

	rate, ok = rates.RateFor("n1-analyst", WeeklyHoursReduced)
	require.True(t, ok)
	assert.Equal(t, 2600.0, rate)

	_, ok = rates.RateFor("n1-analyst", 40)
	assert.False(t, ok)

	_, ok = rates.RateFor("n3-specialist", WeeklyHoursFull)
	assert.False(t, ok)
}

func TestVersionTagsHas(t *testing.T) {
	tags := VersionTags{"rollback", AutoBackupTag}
	assert.True(t, tags.Has(AutoBackupTag))
	assert.False(t, tags.Has("sent-to-client"))
	assert.False(t, VersionTags(nil).Has("anything"))
}

func TestScenarioSnapshotScanValue(t *testing.T) {
	snapshot := ScenarioSnapshot{Scenario: NegotiationScenario{ID: "s1", Name: "Round 1", Version: 3}}

	value, err := snapshot.Value()
	require.NoError(t, err)

	var restored ScenarioSnapshot
	require.NoError(t, restored.Scan(value))
	assert.Equal(t, snapshot.Scenario.ID, restored.Scenario.ID)
	assert.Equal(t, snapshot.Scenario.Version, restored.Scenario.Version)

	assert.Error(t, restored.Scan(42))
}

func TestVersionTagsScanValue(t *testing.T) {
	tags := VersionTags{"rollback"}

	value, err := tags.Value()
	require.NoError(t, err)

	var restored VersionTags
	require.NoError(t, restored.Scan(value))
	assert.Equal(t, tags, restored)

	require.NoError(t, restored.Scan(nil))
	assert.Nil(t, restored)
}
