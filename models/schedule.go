package models

// CoveragePolicy selects the operating-hours template a contract is staffed
// against.
type CoveragePolicy string

const (
	// CoverageBusinessHours is 8x5 coverage, Mon-Fri business hours.
	CoverageBusinessHours CoveragePolicy = "business_hours"
	// CoverageExtendedHours is 12x5 coverage with split tier-1 shifts.
	CoverageExtendedHours CoveragePolicy = "extended_hours"
	// CoverageFullTime is 24x7 coverage in four rotating shifts.
	CoverageFullTime CoveragePolicy = "full_time"
)

// String returns the string representation of the policy.
func (p CoveragePolicy) String() string {
	return string(p)
}

// Valid checks if the policy is a known template.
func (p CoveragePolicy) Valid() bool {
	switch p {
	case CoverageBusinessHours, CoverageExtendedHours, CoverageFullTime:
		return true
	default:
		return false
	}
}

// Shift is a single staffed time slot within a schedule. Times are wall-clock
// "HH:MM" strings; DaysOfWeek uses 0=Sunday through 6=Saturday.
type Shift struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	DaysOfWeek     []int    `json:"days_of_week"`
	AssignedAgents []string `json:"assigned_agents"`
	IsPremiumShift bool     `json:"is_premium_shift"`
	RateMultiplier float64  `json:"rate_multiplier"`
}

// Headcount returns the number of agents assigned to the shift.
func (s Shift) Headcount() int {
	return len(s.AssignedAgents)
}

// CoverageRule captures the minimum and preferred simultaneous staffing for a
// schedule's covered window.
type CoverageRule struct {
	MinimumStaff   int `json:"minimum_staff"`
	PreferredStaff int `json:"preferred_staff"`
}

// SpecialRate is a named pay multiplier applied to a subset of shifts.
type SpecialRate struct {
	Name              string   `json:"name"`
	Condition         string   `json:"condition"`
	Multiplier        float64  `json:"multiplier"`
	ApplicableShiftID []string `json:"applicable_shift_ids"`
}

// Schedule is a concrete shift plan synthesized from a staffing result and a
// coverage policy. It is replaced wholesale on re-dimensioning; shifts are
// never mutated in place.
type Schedule struct {
	Name         string         `json:"name"`
	Policy       CoveragePolicy `json:"policy"`
	Shifts       []Shift        `json:"shifts"`
	CoverageRule CoverageRule   `json:"coverage_rule"`
	SpecialRates []SpecialRate  `json:"special_rates"`
}

// TierHeadcount sums assigned agents across shifts for the given agent-ref
// prefix ("N1" or "N2").
func (s Schedule) TierHeadcount(tierPrefix string) int {
	seen := make(map[string]struct{})
	for _, shift := range s.Shifts {
		for _, ref := range shift.AssignedAgents {
			if len(ref) >= len(tierPrefix) && ref[:len(tierPrefix)] == tierPrefix {
				seen[ref] = struct{}{}
			}
		}
	}
	return len(seen)
}
