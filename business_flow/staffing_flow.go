// Package businessflow contains the core business logic and use cases for workforce dimensioning and scenario negotiation
package businessflow

import (
	"context"
	"math"
	"time"

	"deskquote/app/dto"
	"deskquote/models"
)

// Sizing constants. The workload estimate assumes 22 working days of 8
// productive hours and pads the result with a 20% safety factor.
const (
	WorkingDaysPerMonth     = 22.0
	ProductiveHoursPerDay   = 8.0
	WorkloadSafetyFactor    = 1.2
	ShortShiftCapacityScale = 0.75
)

// StaffingFlow handles the team dimensioning business logic
type StaffingFlow interface {
	ComputeStaffing(ctx context.Context, req *dto.ComputeStaffingRequest) (*dto.ComputeStaffingResponse, error)
}

// StaffingFlowImpl implements the staffing flow
type StaffingFlowImpl struct {
	defaults models.TierCapacity
}

// NewStaffingFlow creates a new staffing flow instance
func NewStaffingFlow(defaults models.TierCapacity) StaffingFlow {
	return &StaffingFlowImpl{defaults: defaults}
}

// ComputeStaffing validates the request and runs the dimensioner.
func (s *StaffingFlowImpl) ComputeStaffing(ctx context.Context, req *dto.ComputeStaffingRequest) (*dto.ComputeStaffingResponse, error) {
	profile := models.DemandProfile{
		UserCount:                req.UserCount,
		IncidentsPerUserPerMonth: req.IncidentsPerUserPerMonth,
		AverageHandleMinutes:     req.AverageHandleMinutes,
		OccupancyRatePct:         req.OccupancyRatePct,
		Tier1SharePct:            req.Tier1SharePct,
		Tier1ShortShift:          req.Tier1ShortShift,
	}

	capacity := s.defaults
	if req.Capacity != nil {
		capacity = models.TierCapacity{
			Tier1CapacityPerAgent: req.Capacity.Tier1CapacityPerAgent,
			Tier2CapacityPerAgent: req.Capacity.Tier2CapacityPerAgent,
		}
	}

	result, err := DimensionTeam(profile, capacity)
	if err != nil {
		return nil, NewBusinessError("STAFFING_VALIDATION_FAILED", "Staffing computation failed", err)
	}

	return &dto.ComputeStaffingResponse{
		MonthlyCallVolume: result.MonthlyCallVolume,
		Tier1Agents:       result.Tier1Agents,
		Tier2Agents:       result.Tier2Agents,
		WorkloadUnits:     result.WorkloadUnits,
		ComputedAt:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// DimensionTeam sizes the support team for the given demand. Two estimates
// are computed per tier (workload-based and capacity-based) and the larger
// one wins; the floor is one agent per tier in any case. The dual-method
// max policy is a deliberate conservative-sizing decision, not an oversight.
func DimensionTeam(profile models.DemandProfile, capacity models.TierCapacity) (models.StaffingResult, error) {
	if err := validateDemandProfile(profile); err != nil {
		return models.StaffingResult{}, err
	}
	if capacity.Tier1CapacityPerAgent <= 0 || capacity.Tier2CapacityPerAgent <= 0 {
		return models.StaffingResult{}, ErrTierCapacityNotPositive
	}

	monthlyCallVolume := float64(profile.UserCount) * profile.IncidentsPerUserPerMonth

	// Workload-based estimate.
	dailyVolume := monthlyCallVolume / WorkingDaysPerMonth
	hourlyVolume := dailyVolume / ProductiveHoursPerDay
	workloadUnits := hourlyVolume * profile.AverageHandleMinutes / 60
	adjustedWorkload := workloadUnits / profile.OccupancyRatePct * 100 * WorkloadSafetyFactor

	tier1WorkloadBasic := int(math.Ceil(adjustedWorkload * profile.Tier1SharePct / 100))
	tier2WorkloadBasic := int(math.Ceil(adjustedWorkload * (100 - profile.Tier1SharePct) / 100))

	// Capacity-based estimate.
	tier1Calls := monthlyCallVolume * profile.Tier1SharePct / 100
	tier2Calls := monthlyCallVolume * (100 - profile.Tier1SharePct) / 100

	tier1EffectiveCapacity := capacity.Tier1CapacityPerAgent
	if profile.Tier1ShortShift {
		tier1EffectiveCapacity *= ShortShiftCapacityScale
	}

	tier1CapacityBased := int(math.Ceil(tier1Calls / tier1EffectiveCapacity))
	tier2CapacityBased := int(math.Ceil(tier2Calls / capacity.Tier2CapacityPerAgent))

	// Conservative: whichever method asks for more agents wins.
	tier1 := maxInt(tier1WorkloadBasic, tier1CapacityBased)
	tier2 := maxInt(tier2WorkloadBasic, tier2CapacityBased)

	if tier1 < 1 {
		tier1 = 1
	}
	if tier2 < 1 {
		tier2 = 1
	}

	return models.StaffingResult{
		MonthlyCallVolume: monthlyCallVolume,
		Tier1Agents:       tier1,
		Tier2Agents:       tier2,
		WorkloadUnits:     workloadUnits,
	}, nil
}

func validateDemandProfile(profile models.DemandProfile) error {
	if profile.UserCount < 1 {
		return ErrUserCountTooLow
	}
	if profile.IncidentsPerUserPerMonth < 0 {
		return ErrIncidentRateNegative
	}
	if profile.AverageHandleMinutes <= 0 {
		return ErrHandleTimeNotPositive
	}
	if profile.OccupancyRatePct < 1 || profile.OccupancyRatePct > 100 {
		return ErrOccupancyOutOfRange
	}
	if profile.Tier1SharePct < 0 || profile.Tier1SharePct > 100 {
		return ErrTierShareOutOfRange
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
