package businessflow

import (
	"context"
	"testing"

	"deskquote/app/dto"
	"deskquote/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffingFor(tier1, tier2 int) models.StaffingResult {
	return models.StaffingResult{
		MonthlyCallVolume: 150,
		Tier1Agents:       tier1,
		Tier2Agents:       tier2,
	}
}

func findShift(t *testing.T, schedule models.Schedule, id string) models.Shift {
	t.Helper()
	for _, shift := range schedule.Shifts {
		if shift.ID == id {
			return shift
		}
	}
	t.Fatalf("shift %q not found in schedule %q", id, schedule.Name)
	return models.Shift{}
}

func TestSynthesizeScheduleBusinessHours(t *testing.T) {
	t.Run("builds one shift per tier on weekdays", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(2, 1), models.CoverageBusinessHours, false)
		require.NoError(t, err)

		require.Len(t, schedule.Shifts, 2)

		tier1 := findShift(t, schedule, "bh-tier1")
		assert.Equal(t, "08:00", tier1.StartTime)
		assert.Equal(t, "17:00", tier1.EndTime)
		assert.Equal(t, []string{"N1-1", "N1-2"}, tier1.AssignedAgents)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, tier1.DaysOfWeek)

		tier2 := findShift(t, schedule, "bh-tier2")
		assert.Equal(t, []string{"N2-1"}, tier2.AssignedAgents)

		assert.Equal(t, 2, schedule.CoverageRule.MinimumStaff)
		assert.Equal(t, 3, schedule.CoverageRule.PreferredStaff)
	})

	t.Run("short shift ends tier1 at fourteen", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(2, 1), models.CoverageBusinessHours, true)
		require.NoError(t, err)

		tier1 := findShift(t, schedule, "bh-tier1")
		assert.Equal(t, "14:00", tier1.EndTime)

		tier2 := findShift(t, schedule, "bh-tier2")
		assert.Equal(t, "17:00", tier2.EndTime)
	})
}

func TestSynthesizeScheduleExtendedHours(t *testing.T) {
	t.Run("splits tier1 into overlapping waves", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(5, 2), models.CoverageExtendedHours, false)
		require.NoError(t, err)

		require.Len(t, schedule.Shifts, 3)

		morning := findShift(t, schedule, "ext-tier1-morning")
		assert.Equal(t, "07:00", morning.StartTime)
		assert.Equal(t, "15:00", morning.EndTime)
		assert.Len(t, morning.AssignedAgents, 3)

		afternoon := findShift(t, schedule, "ext-tier1-afternoon")
		assert.Equal(t, "11:00", afternoon.StartTime)
		assert.Equal(t, "19:00", afternoon.EndTime)
		assert.Len(t, afternoon.AssignedAgents, 2)

		tier2 := findShift(t, schedule, "ext-tier2")
		assert.Equal(t, "07:00", tier2.StartTime)
		assert.Equal(t, "19:00", tier2.EndTime)

		assert.Equal(t, 3, schedule.CoverageRule.MinimumStaff)
	})

	t.Run("short shift waves meet at thirteen", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(4, 1), models.CoverageExtendedHours, true)
		require.NoError(t, err)

		morning := findShift(t, schedule, "ext-tier1-morning")
		assert.Equal(t, "13:00", morning.EndTime)

		afternoon := findShift(t, schedule, "ext-tier1-afternoon")
		assert.Equal(t, "13:00", afternoon.StartTime)
	})

	t.Run("minimum staff caps at total headcount", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(1, 1), models.CoverageExtendedHours, false)
		require.NoError(t, err)

		assert.Equal(t, 2, schedule.CoverageRule.MinimumStaff)
	})
}

func TestSynthesizeScheduleFullTime(t *testing.T) {
	t.Run("builds four windows with premium rates", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(6, 3), models.CoverageFullTime, false)
		require.NoError(t, err)

		require.Len(t, schedule.Shifts, 4)

		evening := findShift(t, schedule, "ft-evening")
		assert.True(t, evening.IsPremiumShift)
		assert.Equal(t, 1.2, evening.RateMultiplier)

		overnight := findShift(t, schedule, "ft-overnight")
		assert.True(t, overnight.IsPremiumShift)
		assert.Equal(t, 1.3, overnight.RateMultiplier)

		morning := findShift(t, schedule, "ft-morning")
		assert.False(t, morning.IsPremiumShift)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, morning.DaysOfWeek)
	})

	t.Run("earlier windows absorb the headcount remainder", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(6, 3), models.CoverageFullTime, false)
		require.NoError(t, err)

		// Tier 1 splits 2/2/1/1, tier 2 splits 1/1/1/0.
		assert.Len(t, findShift(t, schedule, "ft-morning").AssignedAgents, 3)
		assert.Len(t, findShift(t, schedule, "ft-afternoon").AssignedAgents, 3)
		assert.Len(t, findShift(t, schedule, "ft-evening").AssignedAgents, 2)
		assert.Len(t, findShift(t, schedule, "ft-overnight").AssignedAgents, 1)
	})

	t.Run("minimum staff is thirty percent floored at one", func(t *testing.T) {
		tests := []struct {
			name     string
			tier1    int
			tier2    int
			expected int
		}{
			{"small team floors at one", 1, 1, 1},
			{"ten agents need three", 7, 3, 3},
			{"twenty agents need six", 15, 5, 6},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				schedule, err := SynthesizeSchedule(staffingFor(tt.tier1, tt.tier2), models.CoverageFullTime, false)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, schedule.CoverageRule.MinimumStaff)
			})
		}
	})

	t.Run("carries night and weekend differentials", func(t *testing.T) {
		schedule, err := SynthesizeSchedule(staffingFor(4, 2), models.CoverageFullTime, false)
		require.NoError(t, err)

		require.Len(t, schedule.SpecialRates, 2)

		night := schedule.SpecialRates[0]
		assert.Equal(t, "Night Differential", night.Name)
		assert.Equal(t, 1.2, night.Multiplier)
		assert.Equal(t, []string{"ft-evening", "ft-overnight"}, night.ApplicableShiftID)

		weekend := schedule.SpecialRates[1]
		assert.Equal(t, "Weekend Differential", weekend.Name)
		assert.Equal(t, 1.1, weekend.Multiplier)
		assert.Len(t, weekend.ApplicableShiftID, 4)
	})
}

func TestSynthesizeScheduleHeadcountConservation(t *testing.T) {
	policies := []models.CoveragePolicy{
		models.CoverageBusinessHours,
		models.CoverageExtendedHours,
		models.CoverageFullTime,
	}

	for tier1 := 1; tier1 <= 9; tier1++ {
		for tier2 := 1; tier2 <= 4; tier2++ {
			for _, policy := range policies {
				schedule, err := SynthesizeSchedule(staffingFor(tier1, tier2), policy, false)
				require.NoError(t, err)

				assert.Equal(t, tier1, schedule.TierHeadcount("N1"),
					"tier1 headcount mismatch for %s %d/%d", policy, tier1, tier2)
				assert.Equal(t, tier2, schedule.TierHeadcount("N2"),
					"tier2 headcount mismatch for %s %d/%d", policy, tier1, tier2)
			}
		}
	}
}

func TestSynthesizeScheduleErrors(t *testing.T) {
	t.Run("unknown policy fails", func(t *testing.T) {
		_, err := SynthesizeSchedule(staffingFor(2, 1), models.CoveragePolicy("follow_the_sun"), false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownCoveragePolicy)
		assert.True(t, IsUnknownCoveragePolicy(err))
	})

	t.Run("zero agents in a tier fails", func(t *testing.T) {
		_, err := SynthesizeSchedule(staffingFor(0, 1), models.CoverageBusinessHours, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoAgentsToSchedule)
	})
}

func TestScheduleFlowSynthesizeSchedule(t *testing.T) {
	flow := NewScheduleFlow()
	ctx := context.Background()

	t.Run("wraps the schedule in a response", func(t *testing.T) {
		resp, err := flow.SynthesizeSchedule(ctx, &dto.SynthesizeScheduleRequest{
			MonthlyCallVolume: 150,
			Tier1Agents:       2,
			Tier2Agents:       1,
			Policy:            "business_hours",
		})
		require.NoError(t, err)

		assert.Equal(t, models.CoverageBusinessHours, resp.Schedule.Policy)
		assert.Len(t, resp.Schedule.Shifts, 2)
	})

	t.Run("unknown policy surfaces as business error", func(t *testing.T) {
		_, err := flow.SynthesizeSchedule(ctx, &dto.SynthesizeScheduleRequest{
			MonthlyCallVolume: 150,
			Tier1Agents:       2,
			Tier2Agents:       1,
			Policy:            "sometimes",
		})
		require.Error(t, err)
		assert.True(t, IsUnknownCoveragePolicy(err))

		var bizErr *BusinessError
		require.ErrorAs(t, err, &bizErr)
		assert.Equal(t, "SCHEDULE_SYNTHESIS_FAILED", bizErr.Code)
	})
}
