package businessflow

import (
	"context"
	"testing"

	"deskquote/app/dto"
	"deskquote/models"
	fixtures "deskquote/testing"
	"deskquote/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject() models.ProjectSnapshot {
	return fixtures.Project()
}

func createTestScenarioFlow(t *testing.T) (ScenarioFlow, *models.NegotiationScenario, *models.NegotiationScenario) {
	t.Helper()
	flow := NewScenarioFlow(testProject())
	ctx := context.Background()

	baseline, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Baseline", IsBaseline: true})
	require.NoError(t, err)

	working, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Negotiation round 1"})
	require.NoError(t, err)

	return flow, baseline.Scenario, working.Scenario
}

func TestCreateScenario(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds results from the project snapshot", func(t *testing.T) {
		flow := NewScenarioFlow(testProject())

		resp, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Baseline", IsBaseline: true})
		require.NoError(t, err)

		scenario := resp.Scenario
		assert.NotEmpty(t, scenario.ID)
		assert.Equal(t, 1, scenario.Version)
		assert.True(t, scenario.IsBaseline)
		assert.InDelta(t, 13440.0, scenario.Results.TotalPrice, 1e-9)
		assert.InDelta(t, 324.8, scenario.Results.Profit, 1e-9)
		assert.Empty(t, scenario.Adjustments)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		flow := NewScenarioFlow(testProject())

		_, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: ""})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrScenarioNameRequired)
		assert.True(t, IsInvalidInput(err))
	})

	t.Run("rejects a second baseline", func(t *testing.T) {
		flow := NewScenarioFlow(testProject())

		_, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Baseline", IsBaseline: true})
		require.NoError(t, err)

		_, err = flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Another baseline", IsBaseline: true})
		require.Error(t, err)
		assert.True(t, IsSecondBaseline(err))
	})

	t.Run("seeding fails on a broken project", func(t *testing.T) {
		project := testProject()
		project.Demand.UserCount = 0
		flow := NewScenarioFlow(project)

		_, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Baseline"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUserCountTooLow)
	})
}

func TestDuplicateScenario(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate is an isolated deep copy", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "price",
			Field:         "margin",
			OriginalValue: 20,
			AdjustedValue: 25,
		})
		require.NoError(t, err)

		dup, err := flow.DuplicateScenario(ctx, working.ID)
		require.NoError(t, err)

		duplicate := dup.Scenario
		assert.NotEqual(t, working.ID, duplicate.ID)
		assert.Equal(t, "Negotiation round 1 (copy)", duplicate.Name)
		assert.False(t, duplicate.IsBaseline)
		assert.Equal(t, 1, duplicate.Version)
		require.Len(t, duplicate.Adjustments, 1)

		// Mutating the copy must not leak into the original.
		_, err = flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    duplicate.ID,
			Category:      "price",
			Field:         "margin",
			OriginalValue: 25,
			AdjustedValue: 30,
		})
		require.NoError(t, err)

		original, err := flow.GetScenario(ctx, working.ID)
		require.NoError(t, err)
		assert.Len(t, original.Adjustments, 1)
	})

	t.Run("unknown scenario fails", func(t *testing.T) {
		flow, _, _ := createTestScenarioFlow(t)

		_, err := flow.DuplicateScenario(ctx, "nope")
		require.Error(t, err)
		assert.True(t, IsScenarioNotFound(err))
	})
}

func TestDeleteScenario(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a working scenario", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		require.NoError(t, flow.DeleteScenario(ctx, working.ID))

		_, err := flow.GetScenario(ctx, working.ID)
		require.Error(t, err)
		assert.True(t, IsScenarioNotFound(err))
	})

	t.Run("baseline is protected", func(t *testing.T) {
		flow, baseline, _ := createTestScenarioFlow(t)

		err := flow.DeleteScenario(ctx, baseline.ID)
		require.Error(t, err)
		assert.True(t, IsBaselineImmutable(err))
	})
}

func TestListScenarios(t *testing.T) {
	ctx := context.Background()
	flow, baseline, working := createTestScenarioFlow(t)

	resp, err := flow.ListScenarios(ctx)
	require.NoError(t, err)

	require.Len(t, resp.Scenarios, 2)
	ids := []string{resp.Scenarios[0].ID, resp.Scenarios[1].ID}
	assert.Contains(t, ids, baseline.ID)
	assert.Contains(t, ids, working.ID)
	assert.False(t, resp.Scenarios[1].CreatedAt.Before(resp.Scenarios[0].CreatedAt))
}

func TestAddAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("derives impact percentage", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "price",
			Field:         "totalPrice",
			OriginalValue: 100000,
			AdjustedValue: 120000,
			Reason:        "client accepted the premium tier",
		})
		require.NoError(t, err)

		require.Len(t, resp.Scenario.Adjustments, 1)
		assert.InDelta(t, 20.0, resp.Scenario.Adjustments[0].ImpactPct, 1e-9)
	})

	t.Run("price override adjustment drives the results", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "price",
			Field:         "totalPrice",
			OriginalValue: 13440,
			AdjustedValue: 15000,
		})
		require.NoError(t, err)

		assert.InDelta(t, 15000.0, resp.Scenario.Results.TotalPrice, 1e-9)
	})

	t.Run("margin adjustment recomputes the price", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "price",
			Field:         "margin",
			OriginalValue: 20,
			AdjustedValue: 30,
		})
		require.NoError(t, err)

		// 11200 * 1.3
		assert.InDelta(t, 14560.0, resp.Scenario.Results.TotalPrice, 1e-9)
	})

	t.Run("unrecognized pair warns and leaves results unchanged", func(t *testing.T) {
		flow, baseline, working := createTestScenarioFlow(t)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "scope",
			Field:         "slaTarget",
			OriginalValue: 95,
			AdjustedValue: 99,
		})
		require.NoError(t, err)

		require.Len(t, resp.Scenario.Warnings, 1)
		assert.Contains(t, resp.Scenario.Warnings[0].Message, "no handler for adjustment scope/slaTarget")
		assert.InDelta(t, baseline.Results.TotalPrice, resp.Scenario.Results.TotalPrice, 1e-9)
	})

	t.Run("baseline rejects adjustments", func(t *testing.T) {
		flow, baseline, _ := createTestScenarioFlow(t)

		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    baseline.ID,
			Category:      "price",
			Field:         "margin",
			OriginalValue: 20,
			AdjustedValue: 25,
		})
		require.Error(t, err)
		assert.True(t, IsBaselineImmutable(err))
	})

	t.Run("unknown category fails before touching the scenario", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID: working.ID,
			Category:   "vibes",
			Field:      "margin",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownAdjustmentCategory)

		scenario, err := flow.GetScenario(ctx, working.ID)
		require.NoError(t, err)
		assert.Empty(t, scenario.Adjustments)
	})

	t.Run("failed recompute rolls warnings back with the adjustment", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "scope",
			Field:         "slaTarget",
			OriginalValue: 95,
			AdjustedValue: 99,
		})
		require.NoError(t, err)
		require.Len(t, resp.Scenario.Warnings, 1)

		// Degrade the project under the flow so the next replay fails.
		flow.(*ScenarioFlowImpl).project.Demand.UserCount = 0

		_, err = flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "scope",
			Field:         "penaltyCap",
			OriginalValue: 5,
			AdjustedValue: 10,
		})
		require.Error(t, err)

		scenario, err := flow.GetScenario(ctx, working.ID)
		require.NoError(t, err)
		require.Len(t, scenario.Adjustments, 1)
		require.Len(t, scenario.Warnings, 1)
		assert.Contains(t, scenario.Warnings[0].Message, "scope/slaTarget")
	})

	t.Run("team size truncation drops payroll", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "scope",
			Field:         "teamSize",
			OriginalValue: 2,
			AdjustedValue: 1,
		})
		require.NoError(t, err)

		// Only the first catalog position remains: 2 x 3200 marked up 20%.
		assert.InDelta(t, 6400.0, resp.Scenario.Results.TeamMonthlyCost, 1e-9)
		assert.InDelta(t, 7680.0, resp.Scenario.Results.TotalPrice, 1e-9)
	})

	t.Run("contract period adjustment drives the payback horizon", func(t *testing.T) {
		project := testProject()
		project.InitialInvestment = 2000
		flow := NewScenarioFlow(project)

		created, err := flow.CreateScenario(ctx, &dto.CreateScenarioRequest{Name: "Round 1"})
		require.NoError(t, err)
		assert.Equal(t, 7, created.Scenario.Results.PaybackMonths)

		resp, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    created.Scenario.ID,
			Category:      "terms",
			Field:         "contractPeriod",
			OriginalValue: 12,
			AdjustedValue: 4,
		})
		require.NoError(t, err)

		// Four months of 324.8 profit never recover 2000.
		assert.Equal(t, 4, resp.Scenario.Results.PaybackMonths)
		assert.False(t, resp.Scenario.Results.PaybackRecovered)
	})

	t.Run("unknown scenario fails", func(t *testing.T) {
		flow, _, _ := createTestScenarioFlow(t)

		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID: "nope",
			Category:   "price",
			Field:      "margin",
		})
		require.Error(t, err)
		assert.True(t, IsScenarioNotFound(err))
	})
}

func TestUpdateAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("patches a staged adjustment and recomputes", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "price",
			Field:         "margin",
			OriginalValue: 20,
			AdjustedValue: 25,
		})
		require.NoError(t, err)

		resp, err := flow.UpdateAdjustment(ctx, &dto.UpdateAdjustmentRequest{
			ScenarioID:    working.ID,
			Index:         0,
			AdjustedValue: utils.ToPtr(30.0),
		})
		require.NoError(t, err)

		adjustment := resp.Scenario.Adjustments[0]
		assert.Equal(t, 30.0, adjustment.AdjustedValue)
		assert.InDelta(t, 50.0, adjustment.ImpactPct, 1e-9)
		assert.InDelta(t, 14560.0, resp.Scenario.Results.TotalPrice, 1e-9)
	})

	t.Run("index out of range fails", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		_, err := flow.UpdateAdjustment(ctx, &dto.UpdateAdjustmentRequest{
			ScenarioID: working.ID,
			Index:      5,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAdjustmentIndexOutOfRange)
	})
}

func TestRemoveAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("removal restores the zero-adjustment results", func(t *testing.T) {
		flow, baseline, working := createTestScenarioFlow(t)

		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    working.ID,
			Category:      "price",
			Field:         "totalPrice",
			OriginalValue: 13440,
			AdjustedValue: 20000,
		})
		require.NoError(t, err)

		resp, err := flow.RemoveAdjustment(ctx, working.ID, 0)
		require.NoError(t, err)

		assert.Empty(t, resp.Scenario.Adjustments)
		assert.InDelta(t, baseline.Results.TotalPrice, resp.Scenario.Results.TotalPrice, 1e-9)
	})

	t.Run("negative index fails", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		_, err := flow.RemoveAdjustment(ctx, working.ID, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAdjustmentIndexOutOfRange)
	})
}

func TestCompareScenarios(t *testing.T) {
	ctx := context.Background()

	raisePrice := func(t *testing.T, flow ScenarioFlow, scenarioID string, price float64) {
		t.Helper()
		_, err := flow.AddAdjustment(ctx, &dto.AddAdjustmentRequest{
			ScenarioID:    scenarioID,
			Category:      "price",
			Field:         "totalPrice",
			OriginalValue: 13440,
			AdjustedValue: price,
		})
		require.NoError(t, err)
	}

	t.Run("improved scenario is recommended", func(t *testing.T) {
		flow, baseline, working := createTestScenarioFlow(t)
		raisePrice(t, flow, working.ID, 16000)

		resp, err := flow.CompareScenarios(ctx, &dto.CompareScenariosRequest{
			ScenarioIDs: []string{baseline.ID, working.ID},
		})
		require.NoError(t, err)

		require.Len(t, resp.Comparison.Entries, 2)
		assert.True(t, resp.Comparison.Entries[0].IsBaseline)
		assert.Equal(t, "Negotiation round 1 is recommended: it improves both profit and margin over the baseline", resp.Comparison.Recommendation)
	})

	t.Run("worse scenario gets a revision warning", func(t *testing.T) {
		flow, baseline, working := createTestScenarioFlow(t)
		raisePrice(t, flow, working.ID, 12000)

		resp, err := flow.CompareScenarios(ctx, &dto.CompareScenariosRequest{
			ScenarioIDs: []string{baseline.ID, working.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "Negotiation round 1 is less favorable than the baseline; revise before presenting", resp.Comparison.Recommendation)
	})

	t.Run("empty id list fails", func(t *testing.T) {
		flow, _, _ := createTestScenarioFlow(t)

		_, err := flow.CompareScenarios(ctx, &dto.CompareScenariosRequest{ScenarioIDs: nil})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrComparisonNeedsScenarios)
	})

	t.Run("unknown id fails", func(t *testing.T) {
		flow, baseline, _ := createTestScenarioFlow(t)

		_, err := flow.CompareScenarios(ctx, &dto.CompareScenariosRequest{
			ScenarioIDs: []string{baseline.ID, "nope"},
		})
		require.Error(t, err)
		assert.True(t, IsScenarioNotFound(err))
	})
}

func TestRestoreScenario(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the live entry wholesale", func(t *testing.T) {
		flow, _, working := createTestScenarioFlow(t)

		restored := working.Clone()
		restored.Name = "Negotiation round 1 (restored)"
		restored.Version = 4
		require.NoError(t, flow.RestoreScenario(ctx, restored))

		scenario, err := flow.GetScenario(ctx, working.ID)
		require.NoError(t, err)
		assert.Equal(t, "Negotiation round 1 (restored)", scenario.Name)
		assert.Equal(t, 4, scenario.Version)
	})

	t.Run("nil scenario fails", func(t *testing.T) {
		flow, _, _ := createTestScenarioFlow(t)
		assert.Error(t, flow.RestoreScenario(ctx, nil))
	})
}

func TestSetVersion(t *testing.T) {
	ctx := context.Background()
	flow, _, working := createTestScenarioFlow(t)

	require.NoError(t, flow.SetVersion(ctx, working.ID, 7))

	scenario, err := flow.GetScenario(ctx, working.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, scenario.Version)

	err = flow.SetVersion(ctx, "nope", 1)
	require.Error(t, err)
	assert.True(t, IsScenarioNotFound(err))
}
