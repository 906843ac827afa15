package dto

import "deskquote/models"

// CreateScenarioRequest represents the request to create a negotiation scenario
type CreateScenarioRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	IsBaseline  bool   `json:"is_baseline"`
}

// ScenarioResponse wraps a single scenario in responses
type ScenarioResponse struct {
	Scenario *models.NegotiationScenario `json:"scenario"`
}

// ListScenariosResponse lists every scenario of the negotiation run
type ListScenariosResponse struct {
	Scenarios []*models.NegotiationScenario `json:"scenarios"`
}

// AddAdjustmentRequest represents the request to stage an adjustment on a scenario
type AddAdjustmentRequest struct {
	ScenarioID    string  `json:"-"`
	Category      string  `json:"category" validate:"required,oneof=price terms scope timeline"`
	Field         string  `json:"field" validate:"required,max=100"`
	OriginalValue float64 `json:"original_value"`
	AdjustedValue float64 `json:"adjusted_value"`
	Reason        string  `json:"reason" validate:"max=2000"`
}

// UpdateAdjustmentRequest patches a staged adjustment in place. Nil fields are
// left untouched.
type UpdateAdjustmentRequest struct {
	ScenarioID    string   `json:"-"`
	Index         int      `json:"-"`
	Category      *string  `json:"category,omitempty" validate:"omitempty,oneof=price terms scope timeline"`
	Field         *string  `json:"field,omitempty" validate:"omitempty,max=100"`
	OriginalValue *float64 `json:"original_value,omitempty"`
	AdjustedValue *float64 `json:"adjusted_value,omitempty"`
	Reason        *string  `json:"reason,omitempty" validate:"omitempty,max=2000"`
}

// CompareScenariosRequest represents the request to compare scenarios against
// the baseline
type CompareScenariosRequest struct {
	ScenarioIDs []string `json:"scenario_ids" validate:"required,min=1,dive,required"`
}

// CompareScenariosResponse carries the metric table and recommendation
type CompareScenariosResponse struct {
	Comparison models.ScenarioComparison `json:"comparison"`
}
