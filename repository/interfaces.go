// Package repository provides data access layer implementations and interfaces for the scenario version log
package repository

import (
	"context"

	"deskquote/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

// ScenarioVersionRepository is the opaque persistence port for the scenario
// version log. Contractually the log is append-only: entries are never
// updated; Delete exists solely for the explicit pruning policy.
type ScenarioVersionRepository interface {
	// Append inserts a new version entry. The entry's version number must be
	// unique within its scenario.
	Append(ctx context.Context, version *models.ScenarioVersion) error
	// AppendAll inserts several version entries so that either all of them
	// land or none do. Each entry keeps Append's uniqueness contract.
	AppendAll(ctx context.Context, versions ...*models.ScenarioVersion) error
	// ListByScenario returns a scenario's versions ordered by version
	// ascending. An unknown scenario yields an empty slice, not an error.
	ListByScenario(ctx context.Context, scenarioID string) ([]*models.ScenarioVersion, error)
	// Delete removes the given version numbers of a scenario. Used only by
	// the pruning policy.
	Delete(ctx context.Context, scenarioID string, versions []int) error
}
