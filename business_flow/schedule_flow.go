package businessflow

import (
	"context"
	"fmt"

	"deskquote/app/dto"
	"deskquote/models"
)

// Premium pay multipliers for 24x7 coverage.
const (
	OvernightRateMultiplier  = 1.3
	EveningRateMultiplier    = 1.2
	NightSpecialMultiplier   = 1.2
	WeekendSpecialMultiplier = 1.1
)

var (
	weekdays = []int{1, 2, 3, 4, 5}
	allDays  = []int{0, 1, 2, 3, 4, 5, 6}
)

// ScheduleFlow handles the schedule synthesis business logic
type ScheduleFlow interface {
	SynthesizeSchedule(ctx context.Context, req *dto.SynthesizeScheduleRequest) (*dto.SynthesizeScheduleResponse, error)
}

// ScheduleFlowImpl implements the schedule flow
type ScheduleFlowImpl struct{}

// NewScheduleFlow creates a new schedule flow instance
func NewScheduleFlow() ScheduleFlow {
	return &ScheduleFlowImpl{}
}

// SynthesizeSchedule validates the request and builds the shift plan.
func (s *ScheduleFlowImpl) SynthesizeSchedule(ctx context.Context, req *dto.SynthesizeScheduleRequest) (*dto.SynthesizeScheduleResponse, error) {
	staffing := models.StaffingResult{
		MonthlyCallVolume: req.MonthlyCallVolume,
		Tier1Agents:       req.Tier1Agents,
		Tier2Agents:       req.Tier2Agents,
		WorkloadUnits:     req.WorkloadUnits,
	}

	schedule, err := SynthesizeSchedule(staffing, models.CoveragePolicy(req.Policy), req.Tier1ShortShift)
	if err != nil {
		return nil, NewBusinessError("SCHEDULE_SYNTHESIS_FAILED", "Schedule synthesis failed", err)
	}

	return &dto.SynthesizeScheduleResponse{Schedule: schedule}, nil
}

// SynthesizeSchedule builds a concrete shift schedule for the sized team
// under the given coverage policy. The function is total over the three known
// policies; anything else is a caller bug and fails with a configuration
// error. Headcount distribution across shifts always sums to the tier's
// total: no unit is lost or duplicated.
func SynthesizeSchedule(staffing models.StaffingResult, policy models.CoveragePolicy, tier1ShortShift bool) (models.Schedule, error) {
	if staffing.Tier1Agents < 1 || staffing.Tier2Agents < 1 {
		return models.Schedule{}, ErrNoAgentsToSchedule
	}

	switch policy {
	case models.CoverageBusinessHours:
		return businessHoursSchedule(staffing, tier1ShortShift), nil
	case models.CoverageExtendedHours:
		return extendedHoursSchedule(staffing, tier1ShortShift), nil
	case models.CoverageFullTime:
		return fullTimeSchedule(staffing), nil
	default:
		return models.Schedule{}, fmt.Errorf("%w: %q", ErrUnknownCoveragePolicy, policy)
	}
}

func businessHoursSchedule(staffing models.StaffingResult, tier1ShortShift bool) models.Schedule {
	tier1End := "17:00"
	if tier1ShortShift {
		tier1End = "14:00"
	}

	total := staffing.TotalAgents()

	shifts := []models.Shift{
		{
			ID:             "bh-tier1",
			Name:           "Tier 1 Business Hours",
			StartTime:      "08:00",
			EndTime:        tier1End,
			DaysOfWeek:     weekdays,
			AssignedAgents: agentRefs("N1", 0, staffing.Tier1Agents),
			RateMultiplier: 1.0,
		},
		{
			ID:             "bh-tier2",
			Name:           "Tier 2 Business Hours",
			StartTime:      "08:00",
			EndTime:        "17:00",
			DaysOfWeek:     weekdays,
			AssignedAgents: agentRefs("N2", 0, staffing.Tier2Agents),
			RateMultiplier: 1.0,
		},
	}

	return models.Schedule{
		Name:   "Business Hours 8x5",
		Policy: models.CoverageBusinessHours,
		Shifts: shifts,
		CoverageRule: models.CoverageRule{
			MinimumStaff:   minInt(total, 2),
			PreferredStaff: total,
		},
	}
}

func extendedHoursSchedule(staffing models.StaffingResult, tier1ShortShift bool) models.Schedule {
	// The tier-1 pool splits into a morning and an afternoon wave covering
	// the 07:00-19:00 span. Short shifts meet at a hard 13:00 boundary;
	// full shifts overlap through midday.
	morningEnd, afternoonStart := "15:00", "11:00"
	if tier1ShortShift {
		morningEnd, afternoonStart = "13:00", "13:00"
	}

	morningCount := (staffing.Tier1Agents + 1) / 2
	afternoonCount := staffing.Tier1Agents - morningCount
	total := staffing.TotalAgents()

	shifts := []models.Shift{
		{
			ID:             "ext-tier1-morning",
			Name:           "Tier 1 Morning",
			StartTime:      "07:00",
			EndTime:        morningEnd,
			DaysOfWeek:     weekdays,
			AssignedAgents: agentRefs("N1", 0, morningCount),
			RateMultiplier: 1.0,
		},
		{
			ID:             "ext-tier1-afternoon",
			Name:           "Tier 1 Afternoon",
			StartTime:      afternoonStart,
			EndTime:        "19:00",
			DaysOfWeek:     weekdays,
			AssignedAgents: agentRefs("N1", morningCount, afternoonCount),
			RateMultiplier: 1.0,
		},
		{
			ID:             "ext-tier2",
			Name:           "Tier 2 Extended",
			StartTime:      "07:00",
			EndTime:        "19:00",
			DaysOfWeek:     weekdays,
			AssignedAgents: agentRefs("N2", 0, staffing.Tier2Agents),
			RateMultiplier: 1.0,
		},
	}

	return models.Schedule{
		Name:   "Extended Hours 12x5",
		Policy: models.CoverageExtendedHours,
		Shifts: shifts,
		CoverageRule: models.CoverageRule{
			MinimumStaff:   minInt(total, 3),
			PreferredStaff: total,
		},
	}
}

func fullTimeSchedule(staffing models.StaffingResult) models.Schedule {
	windows := []struct {
		id      string
		name    string
		start   string
		end     string
		premium bool
		rate    float64
	}{
		{"ft-morning", "Morning", "06:00", "12:00", false, 1.0},
		{"ft-afternoon", "Afternoon", "12:00", "18:00", false, 1.0},
		{"ft-evening", "Evening", "18:00", "00:00", true, EveningRateMultiplier},
		{"ft-overnight", "Overnight", "00:00", "06:00", true, OvernightRateMultiplier},
	}

	tier1Split := splitHeadcount(staffing.Tier1Agents, len(windows))
	tier2Split := splitHeadcount(staffing.Tier2Agents, len(windows))

	shifts := make([]models.Shift, 0, len(windows))
	tier1Offset, tier2Offset := 0, 0
	for i, w := range windows {
		assigned := agentRefs("N1", tier1Offset, tier1Split[i])
		assigned = append(assigned, agentRefs("N2", tier2Offset, tier2Split[i])...)
		tier1Offset += tier1Split[i]
		tier2Offset += tier2Split[i]

		shifts = append(shifts, models.Shift{
			ID:             w.id,
			Name:           w.name,
			StartTime:      w.start,
			EndTime:        w.end,
			DaysOfWeek:     allDays,
			AssignedAgents: assigned,
			IsPremiumShift: w.premium,
			RateMultiplier: w.rate,
		})
	}

	total := staffing.TotalAgents()
	minimum := total * 3 / 10
	if minimum < 1 {
		minimum = 1
	}

	return models.Schedule{
		Name:   "Full Time 24x7",
		Policy: models.CoverageFullTime,
		Shifts: shifts,
		CoverageRule: models.CoverageRule{
			MinimumStaff:   minimum,
			PreferredStaff: total,
		},
		SpecialRates: []models.SpecialRate{
			{
				Name:              "Night Differential",
				Condition:         "between 18:00 and 06:00",
				Multiplier:        NightSpecialMultiplier,
				ApplicableShiftID: []string{"ft-evening", "ft-overnight"},
			},
			{
				Name:              "Weekend Differential",
				Condition:         "Saturday and Sunday",
				Multiplier:        WeekendSpecialMultiplier,
				ApplicableShiftID: []string{"ft-morning", "ft-afternoon", "ft-evening", "ft-overnight"},
			},
		},
	}
}

// splitHeadcount divides total into parts buckets. Earlier buckets take the
// ceil share so the parts always sum back to total.
func splitHeadcount(total, parts int) []int {
	out := make([]int, parts)
	base := total / parts
	remainder := total % parts
	for i := range out {
		out[i] = base
		if i < remainder {
			out[i]++
		}
	}
	return out
}

func agentRefs(tierPrefix string, offset, count int) []string {
	refs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		refs = append(refs, fmt.Sprintf("%s-%d", tierPrefix, offset+i+1))
	}
	return refs
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
