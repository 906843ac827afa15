package models

// TaxComponent is a single named tax applied as rate% over a base. Base
// defaults to the total price unless an alternate base is given.
type TaxComponent struct {
	Name          string   `json:"name"`
	RatePct       float64  `json:"rate_pct" validate:"min=0"`
	AlternateBase *float64 `json:"alternate_base,omitempty"`
}

// TaxConfig is the ordered list of tax components for a contract.
type TaxConfig struct {
	Components []TaxComponent `json:"components"`
}

// TaxBreakdown is the computed tax picture: each component's amount plus the
// total.
type TaxBreakdown struct {
	Components []TaxAmount `json:"components"`
	Total      float64     `json:"total"`
}

// TaxAmount is one computed tax line.
type TaxAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// CostBehavior classifies how an other-cost item behaves over the contract.
type CostBehavior string

const (
	CostBehaviorFixed        CostBehavior = "fixed"
	CostBehaviorVariable     CostBehavior = "variable"
	CostBehaviorSemiVariable CostBehavior = "semi_variable"
	CostBehaviorEventual     CostBehavior = "eventual"
)

// Valid checks if the behavior is a known classification.
func (b CostBehavior) Valid() bool {
	switch b {
	case CostBehaviorFixed, CostBehaviorVariable, CostBehaviorSemiVariable, CostBehaviorEventual:
		return true
	default:
		return false
	}
}

// Recurrence expresses how often an other-cost item recurs.
type Recurrence string

const (
	RecurrenceMonthly    Recurrence = "monthly"
	RecurrenceQuarterly  Recurrence = "quarterly"
	RecurrenceSemiAnnual Recurrence = "semi_annual"
	RecurrenceAnnual     Recurrence = "annual"
	RecurrenceOneTime    Recurrence = "one_time"
)

// Valid checks if the recurrence is a known period.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceMonthly, RecurrenceQuarterly, RecurrenceSemiAnnual, RecurrenceAnnual, RecurrenceOneTime:
		return true
	default:
		return false
	}
}

// Months returns the number of months the recurrence period spans. ONE_TIME
// costs are amortized over 12 months.
func (r Recurrence) Months() float64 {
	switch r {
	case RecurrenceQuarterly:
		return 3
	case RecurrenceSemiAnnual:
		return 6
	case RecurrenceAnnual:
		return 12
	case RecurrenceOneTime:
		return 12
	default:
		return 1
	}
}

// OtherCost is a named non-payroll cost item.
type OtherCost struct {
	Name       string       `json:"name"`
	Amount     float64      `json:"amount" validate:"min=0"`
	Behavior   CostBehavior `json:"behavior"`
	Recurrence Recurrence   `json:"recurrence"`
}

// MonthlyEquivalent normalizes the cost to a monthly value by dividing the
// amount over the recurrence period.
func (c OtherCost) MonthlyEquivalent() float64 {
	return c.Amount / c.Recurrence.Months()
}

// MarginPolicyKind selects how the margin policy derives the total price.
type MarginPolicyKind string

const (
	// MarginPercentageOnCost marks up total cost by a percentage.
	MarginPercentageOnCost MarginPolicyKind = "percentage_on_cost"
	// MarginFixedTarget adds a fixed monthly profit target on top of cost.
	MarginFixedTarget MarginPolicyKind = "fixed_target"
)

// Valid checks if the kind is a supported policy.
func (k MarginPolicyKind) Valid() bool {
	return k == MarginPercentageOnCost || k == MarginFixedTarget
}

// MarginPolicy is the pricing rule applied over monthly cost.
type MarginPolicy struct {
	Kind  MarginPolicyKind `json:"kind"`
	Value float64          `json:"value"`
}

// CostBreakdown is the fully derived cost/tax/margin/ROI picture for a
// scenario. It is recomputed on every relevant input change and never mutated
// field by field.
type CostBreakdown struct {
	TeamMonthlyCost  float64      `json:"team_monthly_cost"`
	OtherMonthlyCost float64      `json:"other_monthly_cost"`
	Taxes            TaxBreakdown `json:"taxes"`
	Margin           MarginPolicy `json:"margin"`
	MarginAmount     float64      `json:"margin_amount"`
	TotalPrice       float64      `json:"total_price"`
	TotalCost        float64      `json:"total_cost"`
	Profit           float64      `json:"profit"`
	MarginPct        float64      `json:"margin_pct"`
	ROIPct           float64      `json:"roi_pct"`
	PaybackMonths    int          `json:"payback_months"`
	PaybackRecovered bool         `json:"payback_recovered"`
	AnnualPrice      float64      `json:"annual_price"`
	AnnualCost       float64      `json:"annual_cost"`
}

// ROIResult is the return-on-investment output of the standalone ROI
// operation.
type ROIResult struct {
	ROIPct float64 `json:"roi_pct"`
}

// PaybackResult is the simple-payback output. When the investment is never
// recovered within the supplied series, Months reports the series length and
// NotRecovered is set.
type PaybackResult struct {
	Months       int  `json:"months"`
	NotRecovered bool `json:"not_recovered"`
}
