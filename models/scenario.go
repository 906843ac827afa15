package models

import (
	"time"

	"github.com/google/uuid"
)

// AdjustmentCategory groups the staged changes a negotiator can apply.
type AdjustmentCategory string

const (
	AdjustmentPrice    AdjustmentCategory = "price"
	AdjustmentTerms    AdjustmentCategory = "terms"
	AdjustmentScope    AdjustmentCategory = "scope"
	AdjustmentTimeline AdjustmentCategory = "timeline"
)

// Valid checks if the category is a known grouping.
func (c AdjustmentCategory) Valid() bool {
	switch c {
	case AdjustmentPrice, AdjustmentTerms, AdjustmentScope, AdjustmentTimeline:
		return true
	default:
		return false
	}
}

// Adjustment is a single staged change within a negotiation scenario.
// ImpactPct is derived from the original and adjusted values and is zero when
// the original value is zero.
type Adjustment struct {
	Category      AdjustmentCategory `json:"category"`
	Field         string             `json:"field"`
	OriginalValue float64            `json:"original_value"`
	AdjustedValue float64            `json:"adjusted_value"`
	ImpactPct     float64            `json:"impact_pct"`
	Reason        string             `json:"reason"`
}

// ComputeImpactPct derives the relative impact of the adjustment.
func (a Adjustment) ComputeImpactPct() float64 {
	if a.OriginalValue == 0 {
		return 0
	}
	return (a.AdjustedValue - a.OriginalValue) / a.OriginalValue * 100
}

// AdjustmentWarning flags a staged adjustment whose (category, field) pair has
// no wired handler. The core applies it as a no-op and reports it here for
// the UI.
type AdjustmentWarning struct {
	Category AdjustmentCategory `json:"category"`
	Field    string             `json:"field"`
	Message  string             `json:"message"`
}

// NegotiationScenario is one named what-if variant within a negotiation run.
// The baseline scenario is the protected reference: adjustments on it are
// rejected. Version increases by exactly one per saved version-store entry.
type NegotiationScenario struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	IsBaseline  bool                `json:"is_baseline"`
	Adjustments []Adjustment        `json:"adjustments"`
	Warnings    []AdjustmentWarning `json:"warnings,omitempty"`
	Results     CostBreakdown       `json:"results"`
	Version     int                 `json:"version"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewNegotiationScenario creates a scenario shell with a fresh id at version 1.
func NewNegotiationScenario(name, description string) *NegotiationScenario {
	return &NegotiationScenario{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Adjustments: []Adjustment{},
		Version:     1,
		CreatedAt:   time.Now().UTC(),
	}
}

// Clone returns a deep copy of the scenario. The copy shares no slices with
// the original, so mutating one never touches the other.
func (s *NegotiationScenario) Clone() *NegotiationScenario {
	out := *s
	out.Adjustments = make([]Adjustment, len(s.Adjustments))
	copy(out.Adjustments, s.Adjustments)
	out.Warnings = make([]AdjustmentWarning, len(s.Warnings))
	copy(out.Warnings, s.Warnings)
	out.Results.Taxes.Components = make([]TaxAmount, len(s.Results.Taxes.Components))
	copy(out.Results.Taxes.Components, s.Results.Taxes.Components)
	return &out
}

// ComparisonMetrics is the fixed metric set gathered per scenario during a
// comparison.
type ComparisonMetrics struct {
	TotalPrice    float64 `json:"total_price"`
	TotalCost     float64 `json:"total_cost"`
	Profit        float64 `json:"profit"`
	MarginPct     float64 `json:"margin_pct"`
	ROIPct        float64 `json:"roi_pct"`
	PaybackMonths int     `json:"payback_months"`
}

// ComparisonEntry pairs a scenario with its metric values.
type ComparisonEntry struct {
	ScenarioID   string            `json:"scenario_id"`
	ScenarioName string            `json:"scenario_name"`
	IsBaseline   bool              `json:"is_baseline"`
	Metrics      ComparisonMetrics `json:"metrics"`
}

// ScenarioComparison is the comparison table plus the derived recommendation
// for the active scenario against the baseline.
type ScenarioComparison struct {
	Entries        []ComparisonEntry `json:"entries"`
	Recommendation string            `json:"recommendation"`
}
