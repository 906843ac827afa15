// Package testing provides pure in-memory fixtures for testing the pricing engine
package testing

import (
	"deskquote/models"
)

// The canonical 100-user service desk contract used across the engine tests:
// 150 calls a month sized to two tier-1 and one tier-2 analyst, priced with a
// 20% markup under Brazilian service taxes.

// Demand returns the canonical demand profile.
func Demand() models.DemandProfile {
	return models.DemandProfile{
		UserCount:                100,
		IncidentsPerUserPerMonth: 1.5,
		AverageHandleMinutes:     10,
		OccupancyRatePct:         80,
		Tier1SharePct:            80,
	}
}

// Team returns the analyst mix matching the canonical demand.
func Team() models.TeamComposition {
	return models.TeamComposition{
		Positions: []models.TeamPosition{
			{PositionID: "n1-analyst", Headcount: 2, WeeklyHours: models.WeeklyHoursFull},
			{PositionID: "n2-analyst", Headcount: 1, WeeklyHours: models.WeeklyHoursFull},
		},
	}
}

// Rates returns the salary catalog for the canonical team.
func Rates() models.PositionRates {
	return models.PositionRates{
		"n1-analyst": {PositionID: "n1-analyst", MonthlyRate48: 3200, MonthlyRate36: 2600},
		"n2-analyst": {PositionID: "n2-analyst", MonthlyRate48: 4800, MonthlyRate36: 3900},
	}
}

// Taxes returns the service-tax configuration (ISS plus PIS/COFINS).
func Taxes() models.TaxConfig {
	return models.TaxConfig{
		Components: []models.TaxComponent{
			{Name: "ISS", RatePct: 5},
			{Name: "PIS/COFINS", RatePct: 9.25},
		},
	}
}

// Margin returns the default 20% markup-on-cost policy.
func Margin() models.MarginPolicy {
	return models.MarginPolicy{Kind: models.MarginPercentageOnCost, Value: 20}
}

// Project assembles the full canonical project snapshot.
func Project() models.ProjectSnapshot {
	return models.ProjectSnapshot{
		Name:     "acme-servicedesk",
		Demand:   Demand(),
		Capacity: models.DefaultTierCapacity(),
		Coverage: models.CoverageBusinessHours,
		Team:     Team(),
		Rates:    Rates(),
		Taxes:    Taxes(),
		Margin:   Margin(),
	}
}

// Scenario creates a scenario shell seeded with the canonical results.
func Scenario(name string) *models.NegotiationScenario {
	scenario := models.NewNegotiationScenario(name, "quoting run for acme")
	scenario.Results = models.CostBreakdown{
		TotalPrice: 13440,
		TotalCost:  13115.2,
		Profit:     324.8,
		MarginPct:  324.8 / 13440 * 100,
	}
	return scenario
}
