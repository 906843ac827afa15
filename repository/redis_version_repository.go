package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"deskquote/models"

	"github.com/redis/go-redis/v9"
)

// RedisVersionRepository is the Redis-backed version log. Each scenario maps
// to one hash keyed by version number with JSON-encoded entries; any
// key-value store able to round-trip ScenarioVersion satisfies the port.
type RedisVersionRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisVersionRepository creates a new Redis version repository
func NewRedisVersionRepository(client *redis.Client, keyPrefix string) ScenarioVersionRepository {
	if keyPrefix == "" {
		keyPrefix = "scenario_versions"
	}
	return &RedisVersionRepository{client: client, keyPrefix: keyPrefix}
}

func (r *RedisVersionRepository) key(scenarioID string) string {
	return fmt.Sprintf("%s:%s", r.keyPrefix, scenarioID)
}

// Append inserts a new version entry. HSETNX keeps the log append-only: an
// existing version number is never overwritten.
func (r *RedisVersionRepository) Append(ctx context.Context, version *models.ScenarioVersion) error {
	payload, err := json.Marshal(version)
	if err != nil {
		return fmt.Errorf("failed to encode scenario version: %w", err)
	}

	field := strconv.Itoa(version.Version)
	set, err := r.client.HSetNX(ctx, r.key(version.ScenarioID), field, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to append scenario version: %w", err)
	}
	if !set {
		return fmt.Errorf("scenario %s already has version %d", version.ScenarioID, version.Version)
	}
	return nil
}

// AppendAll inserts the given version entries through one MULTI/EXEC
// pipeline. When any HSETNX reports a version collision the fields that did
// land are deleted again, so a half-written batch never survives.
func (r *RedisVersionRepository) AppendAll(ctx context.Context, versions ...*models.ScenarioVersion) error {
	if len(versions) == 0 {
		return nil
	}

	payloads := make([][]byte, len(versions))
	for i, version := range versions {
		payload, err := json.Marshal(version)
		if err != nil {
			return fmt.Errorf("failed to encode scenario version: %w", err)
		}
		payloads[i] = payload
	}

	results := make([]*redis.BoolCmd, len(versions))
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, version := range versions {
			results[i] = pipe.HSetNX(ctx, r.key(version.ScenarioID), strconv.Itoa(version.Version), payloads[i])
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append scenario versions: %w", err)
	}

	for i, result := range results {
		if result.Val() {
			continue
		}
		for j, undo := range results {
			if undo.Val() {
				set := versions[j]
				r.client.HDel(ctx, r.key(set.ScenarioID), strconv.Itoa(set.Version))
			}
		}
		collided := versions[i]
		return fmt.Errorf("scenario %s already has version %d", collided.ScenarioID, collided.Version)
	}
	return nil
}

// ListByScenario returns the scenario's versions ordered by version ascending.
func (r *RedisVersionRepository) ListByScenario(ctx context.Context, scenarioID string) ([]*models.ScenarioVersion, error) {
	raw, err := r.client.HGetAll(ctx, r.key(scenarioID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario versions: %w", err)
	}

	versions := make([]*models.ScenarioVersion, 0, len(raw))
	for _, payload := range raw {
		var version models.ScenarioVersion
		if err := json.Unmarshal([]byte(payload), &version); err != nil {
			return nil, fmt.Errorf("failed to decode scenario version: %w", err)
		}
		versions = append(versions, &version)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Version < versions[j].Version })
	return versions, nil
}

// Delete removes the given version numbers of a scenario.
func (r *RedisVersionRepository) Delete(ctx context.Context, scenarioID string, versions []int) error {
	if len(versions) == 0 {
		return nil
	}
	fields := make([]string, 0, len(versions))
	for _, v := range versions {
		fields = append(fields, strconv.Itoa(v))
	}
	if err := r.client.HDel(ctx, r.key(scenarioID), fields...).Err(); err != nil {
		return fmt.Errorf("failed to delete scenario versions: %w", err)
	}
	return nil
}
