package repository

import (
	"context"
	"fmt"

	"deskquote/models"

	"gorm.io/gorm"
)

// ScenarioVersionRepositoryImpl is the Postgres-backed version log.
type ScenarioVersionRepositoryImpl struct {
	DB *gorm.DB
}

// NewScenarioVersionRepository creates a new Postgres version repository
func NewScenarioVersionRepository(db *gorm.DB) ScenarioVersionRepository {
	return &ScenarioVersionRepositoryImpl{DB: db}
}

// Append inserts a new version row.
func (r *ScenarioVersionRepositoryImpl) Append(ctx context.Context, version *models.ScenarioVersion) error {
	db := getDB(ctx, r.DB)
	if err := db.Create(version).Error; err != nil {
		return fmt.Errorf("failed to append scenario version: %w", err)
	}
	return nil
}

// AppendAll inserts the given version rows inside one transaction.
func (r *ScenarioVersionRepositoryImpl) AppendAll(ctx context.Context, versions ...*models.ScenarioVersion) error {
	if len(versions) == 0 {
		return nil
	}
	if len(versions) == 1 {
		return r.Append(ctx, versions[0])
	}
	return WithTransaction(ctx, getDB(ctx, r.DB), func(txCtx context.Context) error {
		for _, version := range versions {
			if err := r.Append(txCtx, version); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByScenario returns the scenario's versions ordered by version ascending.
func (r *ScenarioVersionRepositoryImpl) ListByScenario(ctx context.Context, scenarioID string) ([]*models.ScenarioVersion, error) {
	db := getDB(ctx, r.DB)

	var versions []*models.ScenarioVersion
	err := db.Where("scenario_id = ?", scenarioID).Order("version ASC").Find(&versions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario versions: %w", err)
	}
	return versions, nil
}

// Delete removes the given version numbers of a scenario.
func (r *ScenarioVersionRepositoryImpl) Delete(ctx context.Context, scenarioID string, versions []int) error {
	if len(versions) == 0 {
		return nil
	}
	db := getDB(ctx, r.DB)
	err := db.Where("scenario_id = ? AND version IN ?", scenarioID, versions).
		Delete(&models.ScenarioVersion{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete scenario versions: %w", err)
	}
	return nil
}
