package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"deskquote/models"
)

// MemoryVersionRepository is an in-memory version log used by tests and by
// deployments that keep negotiation history session-local.
type MemoryVersionRepository struct {
	mu       sync.RWMutex
	versions map[string][]*models.ScenarioVersion
}

// NewMemoryVersionRepository creates a new in-memory version repository
func NewMemoryVersionRepository() *MemoryVersionRepository {
	return &MemoryVersionRepository{versions: make(map[string][]*models.ScenarioVersion)}
}

// Append inserts a new version entry, rejecting duplicates of an existing
// version number.
func (r *MemoryVersionRepository) Append(ctx context.Context, version *models.ScenarioVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(version)
}

// AppendAll inserts the given version entries under one lock acquisition.
// Every entry is checked against the log before any of them is stored, so a
// version collision leaves the log untouched.
func (r *MemoryVersionRepository) AppendAll(ctx context.Context, versions ...*models.ScenarioVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]map[int]struct{}, len(versions))
	for _, version := range versions {
		if r.hasVersionLocked(version.ScenarioID, version.Version) {
			return fmt.Errorf("scenario %s already has version %d", version.ScenarioID, version.Version)
		}
		if _, ok := seen[version.ScenarioID][version.Version]; ok {
			return fmt.Errorf("scenario %s already has version %d", version.ScenarioID, version.Version)
		}
		if seen[version.ScenarioID] == nil {
			seen[version.ScenarioID] = make(map[int]struct{})
		}
		seen[version.ScenarioID][version.Version] = struct{}{}
	}

	for _, version := range versions {
		stored := *version
		r.versions[version.ScenarioID] = append(r.versions[version.ScenarioID], &stored)
	}
	return nil
}

func (r *MemoryVersionRepository) appendLocked(version *models.ScenarioVersion) error {
	if r.hasVersionLocked(version.ScenarioID, version.Version) {
		return fmt.Errorf("scenario %s already has version %d", version.ScenarioID, version.Version)
	}

	stored := *version
	r.versions[version.ScenarioID] = append(r.versions[version.ScenarioID], &stored)
	return nil
}

func (r *MemoryVersionRepository) hasVersionLocked(scenarioID string, version int) bool {
	for _, existing := range r.versions[scenarioID] {
		if existing.Version == version {
			return true
		}
	}
	return false
}

// ListByScenario returns the scenario's versions ordered by version ascending.
func (r *MemoryVersionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*models.ScenarioVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.ScenarioVersion, 0, len(r.versions[scenarioID]))
	for _, version := range r.versions[scenarioID] {
		copied := *version
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Delete removes the given version numbers of a scenario.
func (r *MemoryVersionRepository) Delete(ctx context.Context, scenarioID string, versions []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[int]struct{}, len(versions))
	for _, v := range versions {
		drop[v] = struct{}{}
	}

	kept := r.versions[scenarioID][:0]
	for _, version := range r.versions[scenarioID] {
		if _, ok := drop[version.Version]; !ok {
			kept = append(kept, version)
		}
	}
	r.versions[scenarioID] = kept
	return nil
}
