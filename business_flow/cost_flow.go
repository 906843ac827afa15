package businessflow

import (
	"context"
	"fmt"

	"deskquote/app/dto"
	"deskquote/models"
)

// DefaultContractMonths is assumed when a project does not declare a
// contract duration.
const DefaultContractMonths = 12

// CostFlow handles the cost/tax/margin/ROI business logic
type CostFlow interface {
	ComputeCosts(ctx context.Context, req *dto.ComputeCostsRequest) (*dto.ComputeCostsResponse, error)
	ComputeROI(ctx context.Context, req *dto.ROIRequest) (*dto.ROIResponse, error)
	ComputePayback(ctx context.Context, req *dto.PaybackRequest) (*dto.PaybackResponse, error)
}

// CostFlowImpl implements the cost flow
type CostFlowImpl struct{}

// NewCostFlow creates a new cost flow instance
func NewCostFlow() CostFlow {
	return &CostFlowImpl{}
}

// ComputeCosts runs the cost engine over the supplied team, schedule and
// pricing configuration.
func (c *CostFlowImpl) ComputeCosts(ctx context.Context, req *dto.ComputeCostsRequest) (*dto.ComputeCostsResponse, error) {
	breakdown, err := ComputeCosts(req.Team, req.Schedule, req.Rates, req.Taxes, req.Margin, req.OtherCosts, CostOptions{
		ContractMonths:    req.ContractMonths,
		InitialInvestment: req.InitialInvestment,
		PriceOverride:     req.PriceOverride,
	})
	if err != nil {
		return nil, NewBusinessError("COST_COMPUTATION_FAILED", "Cost computation failed", err)
	}
	return &dto.ComputeCostsResponse{Breakdown: breakdown}, nil
}

// ComputeROI runs the standalone ROI operation.
func (c *CostFlowImpl) ComputeROI(ctx context.Context, req *dto.ROIRequest) (*dto.ROIResponse, error) {
	result, err := ComputeROI(req.Investment, req.MonthlyReturns)
	if err != nil {
		return nil, NewBusinessError("ROI_COMPUTATION_FAILED", "ROI computation failed", err)
	}
	return &dto.ROIResponse{ROIPct: result.ROIPct}, nil
}

// ComputePayback runs the standalone simple-payback operation.
func (c *CostFlowImpl) ComputePayback(ctx context.Context, req *dto.PaybackRequest) (*dto.PaybackResponse, error) {
	result, err := ComputePayback(req.Investment, req.MonthlyReturns)
	if err != nil {
		return nil, NewBusinessError("PAYBACK_COMPUTATION_FAILED", "Payback computation failed", err)
	}
	return &dto.PaybackResponse{Months: result.Months, NotRecovered: result.NotRecovered}, nil
}

// CostOptions carries the contract-level inputs of a breakdown that are not
// part of the team/schedule/tax/margin arguments.
type CostOptions struct {
	ContractMonths    int
	InitialInvestment float64
	PriceOverride     *float64
}

// TeamMonthlyCost sums headcount times the catalog rate for each position's
// weekly-hour class. Fails fast on missing positions, bad hour classes and
// negative rates; it never produces a negative cost.
func TeamMonthlyCost(team models.TeamComposition, rates models.PositionRates) (float64, error) {
	total := 0.0
	for _, position := range team.Positions {
		if position.Headcount < 1 {
			return 0, fmt.Errorf("%w: position %q", ErrHeadcountTooLow, position.PositionID)
		}
		if position.WeeklyHours != models.WeeklyHoursFull && position.WeeklyHours != models.WeeklyHoursReduced {
			return 0, fmt.Errorf("%w: position %q has %d", ErrUnknownWeeklyHours, position.PositionID, position.WeeklyHours)
		}
		rate, ok := rates.RateFor(position.PositionID, position.WeeklyHours)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrPositionRateMissing, position.PositionID)
		}
		if rate < 0 {
			return 0, fmt.Errorf("%w: position %q", ErrNegativeRate, position.PositionID)
		}
		total += float64(position.Headcount) * rate
	}
	return total, nil
}

// SchedulePremiumFactor is the headcount-weighted average rate multiplier of
// the schedule's shifts. Premium evening/overnight shifts push it above 1.0;
// a schedule with no assignments contributes no uplift.
func SchedulePremiumFactor(schedule models.Schedule) float64 {
	weighted, headcount := 0.0, 0
	for _, shift := range schedule.Shifts {
		weighted += float64(shift.Headcount()) * shift.RateMultiplier
		headcount += shift.Headcount()
	}
	if headcount == 0 {
		return 1.0
	}
	return weighted / float64(headcount)
}

// ComputeTaxes resolves every configured tax component against the total
// price (or the component's alternate base) and sums them.
func ComputeTaxes(totalPrice float64, config models.TaxConfig) (models.TaxBreakdown, error) {
	breakdown := models.TaxBreakdown{Components: make([]models.TaxAmount, 0, len(config.Components))}
	for _, component := range config.Components {
		if component.RatePct < 0 {
			return models.TaxBreakdown{}, fmt.Errorf("%w: %q", ErrNegativeTaxRate, component.Name)
		}
		base := totalPrice
		if component.AlternateBase != nil {
			base = *component.AlternateBase
		}
		amount := component.RatePct / 100 * base
		breakdown.Components = append(breakdown.Components, models.TaxAmount{Name: component.Name, Amount: amount})
		breakdown.Total += amount
	}
	return breakdown, nil
}

// NormalizeOtherCosts validates the other-cost items and returns their
// summed monthly equivalent.
func NormalizeOtherCosts(costs []models.OtherCost) (float64, error) {
	total := 0.0
	for _, cost := range costs {
		if cost.Amount < 0 {
			return 0, fmt.Errorf("%w: %q", ErrNegativeCostAmount, cost.Name)
		}
		if !cost.Behavior.Valid() {
			return 0, fmt.Errorf("%w: %q has %q", ErrUnknownCostBehavior, cost.Name, cost.Behavior)
		}
		if !cost.Recurrence.Valid() {
			return 0, fmt.Errorf("%w: %q has %q", ErrUnknownRecurrence, cost.Name, cost.Recurrence)
		}
		total += cost.MonthlyEquivalent()
	}
	return total, nil
}

// ApplyMargin normalizes the other costs, adds them to the team cost and
// derives the total price under the margin policy.
func ApplyMargin(teamMonthlyCost float64, policy models.MarginPolicy, otherCosts []models.OtherCost) (float64, error) {
	otherMonthly, err := NormalizeOtherCosts(otherCosts)
	if err != nil {
		return 0, err
	}
	costBase := teamMonthlyCost + otherMonthly

	switch policy.Kind {
	case models.MarginPercentageOnCost:
		return costBase * (1 + policy.Value/100), nil
	case models.MarginFixedTarget:
		return costBase + policy.Value, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMarginPolicy, policy.Kind)
	}
}

// ComputeROI computes the simple return on investment over the supplied
// monthly return series. A zero investment is a hard input error, never a
// silent zero.
func ComputeROI(investment float64, monthlyReturns []float64) (models.ROIResult, error) {
	if investment <= 0 {
		return models.ROIResult{}, ErrZeroInvestment
	}
	total := 0.0
	for _, r := range monthlyReturns {
		total += r
	}
	return models.ROIResult{ROIPct: (total - investment) / investment * 100}, nil
}

// ComputePayback finds the smallest month count whose cumulative returns
// reach the investment. When the series never recovers the investment the
// result reports the series length with NotRecovered set instead of a
// fabricated number.
func ComputePayback(investment float64, monthlyReturns []float64) (models.PaybackResult, error) {
	if investment <= 0 {
		return models.PaybackResult{}, ErrZeroInvestment
	}
	cumulative := 0.0
	for i, r := range monthlyReturns {
		cumulative += r
		if cumulative >= investment {
			return models.PaybackResult{Months: i + 1}, nil
		}
	}
	return models.PaybackResult{Months: len(monthlyReturns), NotRecovered: true}, nil
}

// ComputeProjectBreakdown runs the full sizing pipeline for a project
// snapshot: dimension the team, synthesize the schedule for the project's
// coverage policy, then derive the cost breakdown.
func ComputeProjectBreakdown(project models.ProjectSnapshot) (models.CostBreakdown, error) {
	staffing, err := DimensionTeam(project.Demand, project.Capacity)
	if err != nil {
		return models.CostBreakdown{}, err
	}
	schedule, err := SynthesizeSchedule(staffing, project.Coverage, project.Demand.Tier1ShortShift)
	if err != nil {
		return models.CostBreakdown{}, err
	}
	return ComputeCosts(project.Team, schedule, project.Rates, project.Taxes, project.Margin, project.OtherCosts, CostOptions{
		ContractMonths:    project.ContractMonths,
		InitialInvestment: project.InitialInvestment,
		PriceOverride:     project.PriceOverride,
	})
}

// ComputeCosts derives the full monthly breakdown: payroll with premium-shift
// uplift, normalized other costs, margin-derived (or overridden) total price,
// taxes, profit and the ROI/payback picture when the contract declares an
// initial investment. Loss scenarios are valid output, not an error.
func ComputeCosts(team models.TeamComposition, schedule models.Schedule, rates models.PositionRates, taxes models.TaxConfig, margin models.MarginPolicy, otherCosts []models.OtherCost, opts CostOptions) (models.CostBreakdown, error) {
	baseTeamCost, err := TeamMonthlyCost(team, rates)
	if err != nil {
		return models.CostBreakdown{}, err
	}
	teamCost := baseTeamCost * SchedulePremiumFactor(schedule)

	otherMonthly, err := NormalizeOtherCosts(otherCosts)
	if err != nil {
		return models.CostBreakdown{}, err
	}

	totalPrice, err := ApplyMargin(teamCost, margin, otherCosts)
	if err != nil {
		return models.CostBreakdown{}, err
	}
	if opts.PriceOverride != nil {
		totalPrice = *opts.PriceOverride
	}

	taxBreakdown, err := ComputeTaxes(totalPrice, taxes)
	if err != nil {
		return models.CostBreakdown{}, err
	}

	costBase := teamCost + otherMonthly
	totalCost := costBase + taxBreakdown.Total
	profit := totalPrice - totalCost

	marginPct := 0.0
	if totalPrice != 0 {
		marginPct = profit / totalPrice * 100
	}

	breakdown := models.CostBreakdown{
		TeamMonthlyCost:  teamCost,
		OtherMonthlyCost: otherMonthly,
		Taxes:            taxBreakdown,
		Margin:           margin,
		MarginAmount:     totalPrice - costBase,
		TotalPrice:       totalPrice,
		TotalCost:        totalCost,
		Profit:           profit,
		MarginPct:        marginPct,
		AnnualPrice:      totalPrice * 12,
		AnnualCost:       totalCost * 12,
	}

	months := opts.ContractMonths
	if months <= 0 {
		months = DefaultContractMonths
	}

	if opts.InitialInvestment > 0 {
		returns := make([]float64, months)
		for i := range returns {
			returns[i] = profit
		}
		roi, err := ComputeROI(opts.InitialInvestment, returns)
		if err != nil {
			return models.CostBreakdown{}, err
		}
		payback, err := ComputePayback(opts.InitialInvestment, returns)
		if err != nil {
			return models.CostBreakdown{}, err
		}
		breakdown.ROIPct = roi.ROIPct
		breakdown.PaybackMonths = payback.Months
		breakdown.PaybackRecovered = !payback.NotRecovered
	} else {
		// Nothing invested, nothing to recover.
		breakdown.PaybackRecovered = true
	}

	return breakdown, nil
}
