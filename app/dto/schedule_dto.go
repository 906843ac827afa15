package dto

import "deskquote/models"

// SynthesizeScheduleRequest represents the request to build a shift plan from
// a staffing result under a coverage policy
type SynthesizeScheduleRequest struct {
	MonthlyCallVolume float64 `json:"monthly_call_volume" validate:"min=0"`
	Tier1Agents       int     `json:"tier1_agents" validate:"min=1"`
	Tier2Agents       int     `json:"tier2_agents" validate:"min=1"`
	WorkloadUnits     float64 `json:"workload_units" validate:"min=0"`
	Policy            string  `json:"policy" validate:"required"`
	Tier1ShortShift   bool    `json:"tier1_short_shift"`
}

// SynthesizeScheduleResponse represents the synthesized schedule
type SynthesizeScheduleResponse struct {
	Schedule models.Schedule `json:"schedule"`
}
