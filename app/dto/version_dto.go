package dto

import "deskquote/models"

// SaveVersionRequest represents the request to snapshot a scenario into the
// version log
type SaveVersionRequest struct {
	ScenarioID        string   `json:"-"`
	ChangeDescription string   `json:"change_description" validate:"max=2000"`
	Tags              []string `json:"tags,omitempty" validate:"omitempty,dive,max=64"`
}

// VersionResponse wraps a single saved version
type VersionResponse struct {
	Version *models.ScenarioVersion `json:"version"`
}

// RollbackRequest represents the request to restore a scenario to a previous
// version. CreateBackup defaults to true when omitted.
type RollbackRequest struct {
	ScenarioID    string `json:"-"`
	TargetVersion int    `json:"target_version" validate:"min=1"`
	CreateBackup  *bool  `json:"create_backup,omitempty"`
}

// RollbackResponse carries the restored scenario state
type RollbackResponse struct {
	Scenario *models.NegotiationScenario `json:"scenario"`
}

// ListVersionsResponse lists a scenario's versions in ascending order
type ListVersionsResponse struct {
	Versions []*models.ScenarioVersion `json:"versions"`
}

// DiffVersionsRequest represents the request to structurally compare two
// versions of a scenario
type DiffVersionsRequest struct {
	ScenarioID  string `json:"-"`
	FromVersion int    `json:"from_version" validate:"min=1"`
	ToVersion   int    `json:"to_version" validate:"min=1"`
}

// DiffVersionsResponse carries the structural diff
type DiffVersionsResponse struct {
	Diff *models.VersionDiff `json:"diff"`
}

// PruneVersionsRequest represents the request to apply the retention policy.
// KeepLast falls back to the configured default window when omitted.
type PruneVersionsRequest struct {
	ScenarioID string `json:"-"`
	KeepLast   *int   `json:"keep_last,omitempty" validate:"omitempty,min=1"`
}

// PruneVersionsResponse reports how many versions were removed
type PruneVersionsResponse struct {
	Removed int `json:"removed"`
}
