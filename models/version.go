package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ScenarioSnapshot is the immutable JSON snapshot of a scenario stored inside
// a version row.
type ScenarioSnapshot struct {
	Scenario NegotiationScenario `json:"scenario"`
}

// Value implements the driver.Valuer interface for ScenarioSnapshot
func (s ScenarioSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface for ScenarioSnapshot
func (s *ScenarioSnapshot) Scan(value any) error {
	if value == nil {
		*s = ScenarioSnapshot{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ScenarioSnapshot", value)
	}

	return json.Unmarshal(bytes, s)
}

// VersionTags is a list of labels attached to a version (e.g. "auto-backup").
type VersionTags []string

// Value implements the driver.Valuer interface for VersionTags
func (t VersionTags) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements the sql.Scanner interface for VersionTags
func (t *VersionTags) Scan(value any) error {
	if value == nil {
		*t = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into VersionTags", value)
	}

	return json.Unmarshal(bytes, t)
}

// Has reports whether the tag list contains the given tag.
func (t VersionTags) Has(tag string) bool {
	for _, candidate := range t {
		if candidate == tag {
			return true
		}
	}
	return false
}

// AutoBackupTag marks versions written automatically before a save or
// rollback.
const AutoBackupTag = "auto-backup"

// ScenarioVersion is one immutable entry of a scenario's append-only version
// log. Entries are never edited; pruning is the only removal path.
type ScenarioVersion struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	ScenarioID        string           `gorm:"size:36;not null;index:idx_scenario_versions_scenario_id" json:"scenario_id"`
	Version           int              `gorm:"not null;uniqueIndex:uk_scenario_versions_scenario_version,composite:scenario" json:"version"`
	Data              ScenarioSnapshot `gorm:"type:jsonb;not null" json:"data"`
	ChangeDescription string           `gorm:"type:text" json:"change_description"`
	CreatedBy         string           `gorm:"size:255" json:"created_by"`
	Tags              VersionTags      `gorm:"type:jsonb;default:'[]'" json:"tags"`
	CreatedAt         time.Time        `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_scenario_versions_created_at" json:"created_at"`
}

// TableName returns the table name for the model
func (ScenarioVersion) TableName() string { return "scenario_versions" }

// ScenarioVersionFilter represents filter criteria for version queries
type ScenarioVersionFilter struct {
	ScenarioID    *string
	Version       *int
	Tag           *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// VersionChangeType classifies one entry of a version diff.
type VersionChangeType string

const (
	VersionChangeAdded    VersionChangeType = "added"
	VersionChangeRemoved  VersionChangeType = "removed"
	VersionChangeModified VersionChangeType = "modified"
)

// VersionChange is one field-level difference between two versions.
type VersionChange struct {
	Field       string            `json:"field"`
	Type        VersionChangeType `json:"type"`
	OldValue    any               `json:"old_value,omitempty"`
	NewValue    any               `json:"new_value,omitempty"`
	Description string            `json:"description"`
}

// VersionDiff is the structural comparison between two versions of a
// scenario, used purely for display. Identical snapshots produce an empty
// change list.
type VersionDiff struct {
	ScenarioID  string          `json:"scenario_id"`
	FromVersion int             `json:"from_version"`
	ToVersion   int             `json:"to_version"`
	Changes     []VersionChange `json:"changes"`
}
