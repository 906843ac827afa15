package repository

import (
	"context"
	"testing"

	"deskquote/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(scenarioID string, version int) *models.ScenarioVersion {
	return &models.ScenarioVersion{
		ScenarioID: scenarioID,
		Version:    version,
		Data: models.ScenarioSnapshot{
			Scenario: models.NegotiationScenario{ID: scenarioID, Name: "Round", Version: version},
		},
	}
}

func TestMemoryVersionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("lists versions ascending regardless of insert order", func(t *testing.T) {
		repo := NewMemoryVersionRepository()

		require.NoError(t, repo.Append(ctx, entry("s1", 3)))
		require.NoError(t, repo.Append(ctx, entry("s1", 1)))
		require.NoError(t, repo.Append(ctx, entry("s1", 2)))

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, versions, 3)
		for i, version := range versions {
			assert.Equal(t, i+1, version.Version)
		}
	})

	t.Run("rejects duplicate version numbers", func(t *testing.T) {
		repo := NewMemoryVersionRepository()

		require.NoError(t, repo.Append(ctx, entry("s1", 1)))
		assert.Error(t, repo.Append(ctx, entry("s1", 1)))
	})

	t.Run("scenarios are isolated from each other", func(t *testing.T) {
		repo := NewMemoryVersionRepository()

		require.NoError(t, repo.Append(ctx, entry("s1", 1)))
		require.NoError(t, repo.Append(ctx, entry("s2", 1)))

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, versions, 1)
	})

	t.Run("listed entries are copies", func(t *testing.T) {
		repo := NewMemoryVersionRepository()
		require.NoError(t, repo.Append(ctx, entry("s1", 1)))

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		versions[0].ChangeDescription = "mutated by caller"

		again, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, again[0].ChangeDescription)
	})

	t.Run("appends a batch as a whole", func(t *testing.T) {
		repo := NewMemoryVersionRepository()

		require.NoError(t, repo.AppendAll(ctx, entry("s1", 1), entry("s1", 2)))

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, versions, 2)
	})

	t.Run("a colliding batch leaves the log untouched", func(t *testing.T) {
		repo := NewMemoryVersionRepository()
		require.NoError(t, repo.Append(ctx, entry("s1", 2)))

		err := repo.AppendAll(ctx, entry("s1", 1), entry("s1", 2))
		require.Error(t, err)

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, versions, 1)
		assert.Equal(t, 2, versions[0].Version)
	})

	t.Run("rejects duplicates within a batch", func(t *testing.T) {
		repo := NewMemoryVersionRepository()

		err := repo.AppendAll(ctx, entry("s1", 1), entry("s1", 1))
		require.Error(t, err)

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, versions)
	})

	t.Run("delete removes only the named versions", func(t *testing.T) {
		repo := NewMemoryVersionRepository()
		for v := 1; v <= 4; v++ {
			require.NoError(t, repo.Append(ctx, entry("s1", v)))
		}

		require.NoError(t, repo.Delete(ctx, "s1", []int{1, 3}))

		versions, err := repo.ListByScenario(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, versions, 2)
		assert.Equal(t, 2, versions[0].Version)
		assert.Equal(t, 4, versions[1].Version)
	})
}
