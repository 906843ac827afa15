package models

// DemandProfile is the immutable input snapshot describing a contract's
// call demand. A fresh profile is created per calculation request.
type DemandProfile struct {
	UserCount                int     `json:"user_count" validate:"min=1"`
	IncidentsPerUserPerMonth float64 `json:"incidents_per_user_per_month" validate:"min=0"`
	AverageHandleMinutes     float64 `json:"average_handle_minutes" validate:"gt=0"`
	OccupancyRatePct         float64 `json:"occupancy_rate_pct" validate:"min=1,max=100"`
	Tier1SharePct            float64 `json:"tier1_share_pct" validate:"min=0,max=100"`
	Tier1ShortShift          bool    `json:"tier1_short_shift"`
}

// TierCapacity holds the per-tier monthly call capacity of a single agent.
// Tier-1 capacity is scaled by 0.75 when the tier-1 pool works short shifts.
type TierCapacity struct {
	Tier1CapacityPerAgent float64 `json:"tier1_capacity_per_agent"`
	Tier2CapacityPerAgent float64 `json:"tier2_capacity_per_agent"`
}

// DefaultTierCapacity returns the platform default per-agent capacities.
func DefaultTierCapacity() TierCapacity {
	return TierCapacity{
		Tier1CapacityPerAgent: 100,
		Tier2CapacityPerAgent: 75,
	}
}

// StaffingResult is the derived sizing output. It is recomputed whenever the
// demand profile changes and is never persisted on its own; it travels
// embedded in the scenario that produced it.
type StaffingResult struct {
	MonthlyCallVolume float64 `json:"monthly_call_volume"`
	Tier1Agents       int     `json:"tier1_agents"`
	Tier2Agents       int     `json:"tier2_agents"`
	WorkloadUnits     float64 `json:"workload_units"`
}

// TotalAgents returns the combined headcount across both tiers.
func (r StaffingResult) TotalAgents() int {
	return r.Tier1Agents + r.Tier2Agents
}
