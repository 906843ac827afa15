package dto

// TierCapacityDTO overrides the default per-agent monthly call capacities.
type TierCapacityDTO struct {
	Tier1CapacityPerAgent float64 `json:"tier1_capacity_per_agent" validate:"gt=0"`
	Tier2CapacityPerAgent float64 `json:"tier2_capacity_per_agent" validate:"gt=0"`
}

// ComputeStaffingRequest represents the request to size the support team
type ComputeStaffingRequest struct {
	UserCount                int              `json:"user_count" validate:"min=1"`
	IncidentsPerUserPerMonth float64          `json:"incidents_per_user_per_month" validate:"min=0"`
	AverageHandleMinutes     float64          `json:"average_handle_minutes" validate:"gt=0"`
	OccupancyRatePct         float64          `json:"occupancy_rate_pct" validate:"min=1,max=100"`
	Tier1SharePct            float64          `json:"tier1_share_pct" validate:"min=0,max=100"`
	Tier1ShortShift          bool             `json:"tier1_short_shift"`
	Capacity                 *TierCapacityDTO `json:"capacity,omitempty" validate:"omitempty"`
}

// ComputeStaffingResponse represents the sized team
type ComputeStaffingResponse struct {
	MonthlyCallVolume float64 `json:"monthly_call_volume"`
	Tier1Agents       int     `json:"tier1_agents"`
	Tier2Agents       int     `json:"tier2_agents"`
	WorkloadUnits     float64 `json:"workload_units"`
	ComputedAt        string  `json:"computed_at"`
}
