package dto

import "deskquote/models"

// ComputeCostsRequest represents the request to derive a full cost breakdown
type ComputeCostsRequest struct {
	Team              models.TeamComposition `json:"team"`
	Schedule          models.Schedule        `json:"schedule"`
	Rates             models.PositionRates   `json:"rates" validate:"required"`
	Taxes             models.TaxConfig       `json:"taxes"`
	Margin            models.MarginPolicy    `json:"margin"`
	OtherCosts        []models.OtherCost     `json:"other_costs,omitempty"`
	ContractMonths    int                    `json:"contract_months" validate:"min=0"`
	InitialInvestment float64                `json:"initial_investment" validate:"min=0"`
	PriceOverride     *float64               `json:"price_override,omitempty"`
}

// ComputeCostsResponse represents the derived cost breakdown
type ComputeCostsResponse struct {
	Breakdown models.CostBreakdown `json:"breakdown"`
}

// ROIRequest represents the standalone return-on-investment request
type ROIRequest struct {
	Investment     float64   `json:"investment"`
	MonthlyReturns []float64 `json:"monthly_returns"`
}

// ROIResponse represents the computed return on investment
type ROIResponse struct {
	ROIPct float64 `json:"roi_pct"`
}

// PaybackRequest represents the standalone simple-payback request
type PaybackRequest struct {
	Investment     float64   `json:"investment"`
	MonthlyReturns []float64 `json:"monthly_returns"`
}

// PaybackResponse represents the computed payback horizon
type PaybackResponse struct {
	Months       int  `json:"months"`
	NotRecovered bool `json:"not_recovered"`
}
