package businessflow

import (
	"context"
	"fmt"
	"time"

	"deskquote/models"
	"deskquote/repository"
	"deskquote/utils"
)

// VersionFlow handles the scenario version-store business logic. The version
// log is append-only: saves and rollbacks only ever move the version counter
// forward, so no state is ever lost.
type VersionFlow interface {
	SaveVersion(ctx context.Context, scenario *models.NegotiationScenario, changeDescription, author string, tags []string) (*models.ScenarioVersion, error)
	Rollback(ctx context.Context, scenarioID string, targetVersion int, createBackup bool) (*models.NegotiationScenario, error)
	ListVersions(ctx context.Context, scenarioID string) ([]*models.ScenarioVersion, error)
	Diff(ctx context.Context, scenarioID string, fromVersion, toVersion int) (*models.VersionDiff, error)
	PruneVersions(ctx context.Context, scenarioID string, keepLast int) (int, error)
}

// VersionFlowImpl implements the version flow on top of the persistence port.
type VersionFlowImpl struct {
	repo            repository.ScenarioVersionRepository
	locks           *scenarioLocks
	defaultKeepLast int
}

// NewVersionFlow creates a new version flow instance. defaultKeepLast is the
// retention window applied when a prune request leaves keep_last unset.
func NewVersionFlow(repo repository.ScenarioVersionRepository, defaultKeepLast int) VersionFlow {
	if defaultKeepLast < 1 {
		defaultKeepLast = utils.DefaultVersionKeepLast
	}
	return &VersionFlowImpl{
		repo:            repo,
		locks:           newScenarioLocks(),
		defaultKeepLast: defaultKeepLast,
	}
}

// SaveVersion appends an immutable snapshot of the scenario. When the
// scenario already has saved versions the latest one is first re-appended
// under a fresh number tagged auto-backup, so the pre-save state stays
// directly addressable even after later pruning.
func (v *VersionFlowImpl) SaveVersion(ctx context.Context, scenario *models.NegotiationScenario, changeDescription, author string, tags []string) (*models.ScenarioVersion, error) {
	if scenario == nil || scenario.ID == "" {
		return nil, NewBusinessError("VERSION_VALIDATION_FAILED", "Version validation failed", ErrScenarioNotFound)
	}

	lock := v.locks.forScenario(scenario.ID)
	lock.Lock()
	defer lock.Unlock()

	versions, err := v.repo.ListByScenario(ctx, scenario.ID)
	if err != nil {
		return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to read version log", err)
	}

	next := 1
	var backup *models.ScenarioVersion
	if len(versions) > 0 {
		latest := versions[len(versions)-1]
		backup = &models.ScenarioVersion{
			ScenarioID:        scenario.ID,
			Version:           latest.Version + 1,
			Data:              latest.Data,
			ChangeDescription: "Automatic backup before save",
			CreatedBy:         author,
			Tags:              models.VersionTags{models.AutoBackupTag},
			CreatedAt:         time.Now().UTC(),
		}
		next = backup.Version + 1
	}

	snapshot := scenario.Clone()
	snapshot.Version = next

	entry := &models.ScenarioVersion{
		ScenarioID:        scenario.ID,
		Version:           next,
		Data:              models.ScenarioSnapshot{Scenario: *snapshot},
		ChangeDescription: changeDescription,
		CreatedBy:         author,
		Tags:              models.VersionTags(tags),
		CreatedAt:         time.Now().UTC(),
	}

	// Backup and entry land together or not at all.
	if backup != nil {
		if err := v.repo.AppendAll(ctx, backup, entry); err != nil {
			return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to append version", err)
		}
	} else if err := v.repo.Append(ctx, entry); err != nil {
		return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to append version", err)
	}

	return entry, nil
}

// Rollback restores the snapshot stored at targetVersion. The pre-rollback
// state is backed up as a new forward version first (unless disabled), and
// the restored scenario advances to a fresh version number; the counter is
// never rewound, so the "old future" stays recoverable.
func (v *VersionFlowImpl) Rollback(ctx context.Context, scenarioID string, targetVersion int, createBackup bool) (*models.NegotiationScenario, error) {
	lock := v.locks.forScenario(scenarioID)
	lock.Lock()
	defer lock.Unlock()

	versions, err := v.repo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to read version log", err)
	}
	if len(versions) == 0 {
		return nil, NewBusinessError("NO_VERSIONS_SAVED", "Scenario has no saved versions", ErrNoVersionsSaved)
	}

	var target *models.ScenarioVersion
	for _, candidate := range versions {
		if candidate.Version == targetVersion {
			target = candidate
			break
		}
	}
	if target == nil {
		return nil, NewBusinessError("VERSION_NOT_FOUND", "Version not found", fmt.Errorf("%w %d of scenario %s", ErrVersionNotFound, targetVersion, scenarioID))
	}

	latest := versions[len(versions)-1]
	next := latest.Version + 1

	var backup *models.ScenarioVersion
	if createBackup {
		backup = &models.ScenarioVersion{
			ScenarioID:        scenarioID,
			Version:           next,
			Data:              latest.Data,
			ChangeDescription: fmt.Sprintf("Automatic backup before rollback to version %d", targetVersion),
			Tags:              models.VersionTags{models.AutoBackupTag},
			CreatedAt:         time.Now().UTC(),
		}
		next = backup.Version + 1
	}

	restored := target.Data.Scenario.Clone()
	restored.Version = next

	entry := &models.ScenarioVersion{
		ScenarioID:        scenarioID,
		Version:           next,
		Data:              models.ScenarioSnapshot{Scenario: *restored},
		ChangeDescription: fmt.Sprintf("Rollback to version %d", targetVersion),
		Tags:              models.VersionTags{"rollback"},
		CreatedAt:         time.Now().UTC(),
	}

	// Backup and rollback entry land together or not at all.
	if backup != nil {
		if err := v.repo.AppendAll(ctx, backup, entry); err != nil {
			return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to append rollback version", err)
		}
	} else if err := v.repo.Append(ctx, entry); err != nil {
		return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to append rollback version", err)
	}

	return restored, nil
}

// ListVersions returns a scenario's versions ordered by version ascending.
func (v *VersionFlowImpl) ListVersions(ctx context.Context, scenarioID string) ([]*models.ScenarioVersion, error) {
	versions, err := v.repo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to read version log", err)
	}
	return versions, nil
}

// Diff compares two stored versions field by field. Scalar fields diff by
// value inequality; the adjustment list diffs by position. Identical
// snapshots produce an empty change list, not an error.
func (v *VersionFlowImpl) Diff(ctx context.Context, scenarioID string, fromVersion, toVersion int) (*models.VersionDiff, error) {
	versions, err := v.repo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return nil, NewBusinessError("VERSION_STORE_FAILED", "Failed to read version log", err)
	}
	if len(versions) == 0 {
		return nil, NewBusinessError("NO_VERSIONS_SAVED", "Scenario has no saved versions", ErrNoVersionsSaved)
	}

	byVersion := make(map[int]*models.ScenarioVersion, len(versions))
	for _, candidate := range versions {
		byVersion[candidate.Version] = candidate
	}

	from, ok := byVersion[fromVersion]
	if !ok {
		return nil, NewBusinessError("VERSION_NOT_FOUND", "Version not found", fmt.Errorf("%w %d of scenario %s", ErrVersionNotFound, fromVersion, scenarioID))
	}
	to, ok := byVersion[toVersion]
	if !ok {
		return nil, NewBusinessError("VERSION_NOT_FOUND", "Version not found", fmt.Errorf("%w %d of scenario %s", ErrVersionNotFound, toVersion, scenarioID))
	}

	return &models.VersionDiff{
		ScenarioID:  scenarioID,
		FromVersion: fromVersion,
		ToVersion:   toVersion,
		Changes:     diffScenarios(from.Data.Scenario, to.Data.Scenario),
	}, nil
}

// PruneVersions applies the retention policy: keep the most recent keepLast
// versions, drop the rest. The highest version is always kept. A keepLast of
// zero applies the configured default window. Returns the number of removed
// entries.
func (v *VersionFlowImpl) PruneVersions(ctx context.Context, scenarioID string, keepLast int) (int, error) {
	if keepLast == 0 {
		keepLast = v.defaultKeepLast
	}
	if keepLast < 1 {
		return 0, NewBusinessError("VERSION_VALIDATION_FAILED", "Version validation failed", fmt.Errorf("%w: keep_last must be at least 1", ErrInvalidInput))
	}

	lock := v.locks.forScenario(scenarioID)
	lock.Lock()
	defer lock.Unlock()

	versions, err := v.repo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return 0, NewBusinessError("VERSION_STORE_FAILED", "Failed to read version log", err)
	}
	if len(versions) <= keepLast {
		return 0, nil
	}

	drop := make([]int, 0, len(versions)-keepLast)
	for _, candidate := range versions[:len(versions)-keepLast] {
		drop = append(drop, candidate.Version)
	}
	if err := v.repo.Delete(ctx, scenarioID, drop); err != nil {
		return 0, NewBusinessError("VERSION_STORE_FAILED", "Failed to prune versions", err)
	}
	return len(drop), nil
}

func diffScenarios(from, to models.NegotiationScenario) []models.VersionChange {
	changes := []models.VersionChange{}

	if from.Name != to.Name {
		changes = append(changes, models.VersionChange{
			Field:       "name",
			Type:        models.VersionChangeModified,
			OldValue:    from.Name,
			NewValue:    to.Name,
			Description: fmt.Sprintf("name changed from %q to %q", from.Name, to.Name),
		})
	}
	if from.Description != to.Description {
		changes = append(changes, models.VersionChange{
			Field:       "description",
			Type:        models.VersionChangeModified,
			OldValue:    from.Description,
			NewValue:    to.Description,
			Description: "description changed",
		})
	}

	shared := len(from.Adjustments)
	if len(to.Adjustments) < shared {
		shared = len(to.Adjustments)
	}
	for i := 0; i < shared; i++ {
		if from.Adjustments[i] != to.Adjustments[i] {
			changes = append(changes, models.VersionChange{
				Field:       fmt.Sprintf("adjustments[%d]", i),
				Type:        models.VersionChangeModified,
				OldValue:    from.Adjustments[i],
				NewValue:    to.Adjustments[i],
				Description: fmt.Sprintf("adjustment %s/%s modified", to.Adjustments[i].Category, to.Adjustments[i].Field),
			})
		}
	}
	for i := shared; i < len(to.Adjustments); i++ {
		changes = append(changes, models.VersionChange{
			Field:       fmt.Sprintf("adjustments[%d]", i),
			Type:        models.VersionChangeAdded,
			NewValue:    to.Adjustments[i],
			Description: fmt.Sprintf("adjustment %s/%s added", to.Adjustments[i].Category, to.Adjustments[i].Field),
		})
	}
	for i := shared; i < len(from.Adjustments); i++ {
		changes = append(changes, models.VersionChange{
			Field:       fmt.Sprintf("adjustments[%d]", i),
			Type:        models.VersionChangeRemoved,
			OldValue:    from.Adjustments[i],
			Description: fmt.Sprintf("adjustment %s/%s removed", from.Adjustments[i].Category, from.Adjustments[i].Field),
		})
	}

	changes = append(changes, diffResults(from.Results, to.Results)...)
	return changes
}

func diffResults(from, to models.CostBreakdown) []models.VersionChange {
	var changes []models.VersionChange

	scalar := func(field string, oldValue, newValue float64) {
		if oldValue != newValue {
			changes = append(changes, models.VersionChange{
				Field:       "results." + field,
				Type:        models.VersionChangeModified,
				OldValue:    oldValue,
				NewValue:    newValue,
				Description: fmt.Sprintf("%s changed from %.2f to %.2f", field, oldValue, newValue),
			})
		}
	}

	scalar("total_price", from.TotalPrice, to.TotalPrice)
	scalar("total_cost", from.TotalCost, to.TotalCost)
	scalar("profit", from.Profit, to.Profit)
	scalar("margin_pct", from.MarginPct, to.MarginPct)
	scalar("roi_pct", from.ROIPct, to.ROIPct)
	if from.PaybackMonths != to.PaybackMonths {
		changes = append(changes, models.VersionChange{
			Field:       "results.payback_months",
			Type:        models.VersionChangeModified,
			OldValue:    from.PaybackMonths,
			NewValue:    to.PaybackMonths,
			Description: fmt.Sprintf("payback_months changed from %d to %d", from.PaybackMonths, to.PaybackMonths),
		})
	}

	return changes
}
