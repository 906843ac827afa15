package businessflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"deskquote/app/dto"
	"deskquote/models"

	"github.com/google/uuid"
)

// ScenarioFlow handles the negotiation-scenario business logic. Scenarios
// live in memory for the duration of a negotiation run; durable snapshots go
// through the version store.
type ScenarioFlow interface {
	CreateScenario(ctx context.Context, req *dto.CreateScenarioRequest) (*dto.ScenarioResponse, error)
	DuplicateScenario(ctx context.Context, scenarioID string) (*dto.ScenarioResponse, error)
	DeleteScenario(ctx context.Context, scenarioID string) error
	GetScenario(ctx context.Context, scenarioID string) (*models.NegotiationScenario, error)
	ListScenarios(ctx context.Context) (*dto.ListScenariosResponse, error)
	AddAdjustment(ctx context.Context, req *dto.AddAdjustmentRequest) (*dto.ScenarioResponse, error)
	UpdateAdjustment(ctx context.Context, req *dto.UpdateAdjustmentRequest) (*dto.ScenarioResponse, error)
	RemoveAdjustment(ctx context.Context, scenarioID string, index int) (*dto.ScenarioResponse, error)
	CompareScenarios(ctx context.Context, req *dto.CompareScenariosRequest) (*dto.CompareScenariosResponse, error)
	RestoreScenario(ctx context.Context, scenario *models.NegotiationScenario) error
	SetVersion(ctx context.Context, scenarioID string, version int) error
}

// ScenarioFlowImpl implements the scenario flow
type ScenarioFlowImpl struct {
	project   models.ProjectSnapshot
	mu        sync.RWMutex
	scenarios map[string]*models.NegotiationScenario
	locks     *scenarioLocks
}

// NewScenarioFlow creates a new scenario flow instance seeded with the
// project snapshot assembled by the UI forms.
func NewScenarioFlow(project models.ProjectSnapshot) ScenarioFlow {
	return &ScenarioFlowImpl{
		project:   project,
		scenarios: make(map[string]*models.NegotiationScenario),
		locks:     newScenarioLocks(),
	}
}

// CreateScenario creates a scenario seeded with the zero-adjustment cost
// breakdown of the current project data. At most one baseline may exist per
// negotiation run.
func (s *ScenarioFlowImpl) CreateScenario(ctx context.Context, req *dto.CreateScenarioRequest) (*dto.ScenarioResponse, error) {
	if req.Name == "" {
		return nil, NewBusinessError("SCENARIO_VALIDATION_FAILED", "Scenario validation failed", ErrScenarioNameRequired)
	}

	results, err := ComputeProjectBreakdown(s.project)
	if err != nil {
		return nil, NewBusinessError("SCENARIO_SEED_FAILED", "Failed to compute baseline results", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.IsBaseline {
		for _, existing := range s.scenarios {
			if existing.IsBaseline {
				return nil, NewBusinessError("BASELINE_ALREADY_EXISTS", "A baseline scenario already exists", ErrSecondBaseline)
			}
		}
	}

	scenario := models.NewNegotiationScenario(req.Name, req.Description)
	scenario.IsBaseline = req.IsBaseline
	scenario.Results = results
	s.scenarios[scenario.ID] = scenario

	return &dto.ScenarioResponse{Scenario: scenario.Clone()}, nil
}

// DuplicateScenario deep-copies a scenario under a fresh id. The copy is
// never a baseline and restarts its version counter.
func (s *ScenarioFlowImpl) DuplicateScenario(ctx context.Context, scenarioID string) (*dto.ScenarioResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.scenarios[scenarioID]
	if !ok {
		return nil, NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}

	duplicate := original.Clone()
	duplicate.ID = uuid.New().String()
	duplicate.Name = original.Name + " (copy)"
	duplicate.IsBaseline = false
	duplicate.Version = 1
	duplicate.CreatedAt = time.Now().UTC()
	s.scenarios[duplicate.ID] = duplicate

	return &dto.ScenarioResponse{Scenario: duplicate.Clone()}, nil
}

// DeleteScenario removes a scenario from the run. The baseline is protected.
func (s *ScenarioFlowImpl) DeleteScenario(ctx context.Context, scenarioID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		return NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}
	if scenario.IsBaseline {
		return NewBusinessError("BASELINE_IMMUTABLE", "Baseline scenario cannot be deleted", ErrBaselineImmutable)
	}

	delete(s.scenarios, scenarioID)
	return nil
}

// GetScenario returns a deep copy of the scenario's current state.
func (s *ScenarioFlowImpl) GetScenario(ctx context.Context, scenarioID string) (*models.NegotiationScenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		return nil, NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}
	return scenario.Clone(), nil
}

// ListScenarios returns every scenario of the run ordered by creation time.
func (s *ScenarioFlowImpl) ListScenarios(ctx context.Context) (*dto.ListScenariosResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.NegotiationScenario, 0, len(s.scenarios))
	for _, scenario := range s.scenarios {
		out = append(out, scenario.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return &dto.ListScenariosResponse{Scenarios: out}, nil
}

// AddAdjustment stages a new adjustment on a scenario and recomputes its
// results by replaying every adjustment from the unmodified project baseline.
func (s *ScenarioFlowImpl) AddAdjustment(ctx context.Context, req *dto.AddAdjustmentRequest) (*dto.ScenarioResponse, error) {
	category := models.AdjustmentCategory(req.Category)
	if !category.Valid() {
		return nil, NewBusinessError("ADJUSTMENT_VALIDATION_FAILED", "Adjustment validation failed", fmt.Errorf("%w: %q", ErrUnknownAdjustmentCategory, req.Category))
	}

	lock := s.locks.forScenario(req.ScenarioID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, ok := s.scenarios[req.ScenarioID]
	if !ok {
		return nil, NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}
	if scenario.IsBaseline {
		return nil, NewBusinessError("BASELINE_IMMUTABLE", "Adjustments on the baseline scenario are rejected", ErrBaselineImmutable)
	}

	adjustment := models.Adjustment{
		Category:      category,
		Field:         req.Field,
		OriginalValue: req.OriginalValue,
		AdjustedValue: req.AdjustedValue,
		Reason:        req.Reason,
	}
	adjustment.ImpactPct = adjustment.ComputeImpactPct()

	scenario.Adjustments = append(scenario.Adjustments, adjustment)
	if err := s.recompute(scenario); err != nil {
		// Roll the staged adjustment back so the scenario stays consistent.
		scenario.Adjustments = scenario.Adjustments[:len(scenario.Adjustments)-1]
		return nil, NewBusinessError("SCENARIO_RECOMPUTE_FAILED", "Failed to recompute scenario results", err)
	}

	return &dto.ScenarioResponse{Scenario: scenario.Clone()}, nil
}

// UpdateAdjustment patches a staged adjustment, re-derives its impact and
// recomputes the scenario results via full replay.
func (s *ScenarioFlowImpl) UpdateAdjustment(ctx context.Context, req *dto.UpdateAdjustmentRequest) (*dto.ScenarioResponse, error) {
	lock := s.locks.forScenario(req.ScenarioID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, ok := s.scenarios[req.ScenarioID]
	if !ok {
		return nil, NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}
	if scenario.IsBaseline {
		return nil, NewBusinessError("BASELINE_IMMUTABLE", "Adjustments on the baseline scenario are rejected", ErrBaselineImmutable)
	}
	if req.Index < 0 || req.Index >= len(scenario.Adjustments) {
		return nil, NewBusinessError("ADJUSTMENT_INDEX_INVALID", "Adjustment index out of range", ErrAdjustmentIndexOutOfRange)
	}

	previous := scenario.Adjustments[req.Index]
	patched := previous

	if req.Category != nil {
		category := models.AdjustmentCategory(*req.Category)
		if !category.Valid() {
			return nil, NewBusinessError("ADJUSTMENT_VALIDATION_FAILED", "Adjustment validation failed", fmt.Errorf("%w: %q", ErrUnknownAdjustmentCategory, *req.Category))
		}
		patched.Category = category
	}
	if req.Field != nil {
		patched.Field = *req.Field
	}
	if req.OriginalValue != nil {
		patched.OriginalValue = *req.OriginalValue
	}
	if req.AdjustedValue != nil {
		patched.AdjustedValue = *req.AdjustedValue
	}
	if req.Reason != nil {
		patched.Reason = *req.Reason
	}
	patched.ImpactPct = patched.ComputeImpactPct()

	scenario.Adjustments[req.Index] = patched
	if err := s.recompute(scenario); err != nil {
		scenario.Adjustments[req.Index] = previous
		return nil, NewBusinessError("SCENARIO_RECOMPUTE_FAILED", "Failed to recompute scenario results", err)
	}

	return &dto.ScenarioResponse{Scenario: scenario.Clone()}, nil
}

// RemoveAdjustment drops a staged adjustment and recomputes via full replay.
func (s *ScenarioFlowImpl) RemoveAdjustment(ctx context.Context, scenarioID string, index int) (*dto.ScenarioResponse, error) {
	lock := s.locks.forScenario(scenarioID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		return nil, NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}
	if scenario.IsBaseline {
		return nil, NewBusinessError("BASELINE_IMMUTABLE", "Adjustments on the baseline scenario are rejected", ErrBaselineImmutable)
	}
	if index < 0 || index >= len(scenario.Adjustments) {
		return nil, NewBusinessError("ADJUSTMENT_INDEX_INVALID", "Adjustment index out of range", ErrAdjustmentIndexOutOfRange)
	}

	removed := scenario.Adjustments[index]
	scenario.Adjustments = append(scenario.Adjustments[:index], scenario.Adjustments[index+1:]...)
	if err := s.recompute(scenario); err != nil {
		// Reinsert at the original position on failure.
		scenario.Adjustments = append(scenario.Adjustments[:index], append([]models.Adjustment{removed}, scenario.Adjustments[index:]...)...)
		return nil, NewBusinessError("SCENARIO_RECOMPUTE_FAILED", "Failed to recompute scenario results", err)
	}

	return &dto.ScenarioResponse{Scenario: scenario.Clone()}, nil
}

// recompute replays every staged adjustment from a fresh copy of the project
// baseline and recomputes the cost breakdown. Replay from scratch keeps the
// results independent of mutation ordering. Caller holds the locks.
func (s *ScenarioFlowImpl) recompute(scenario *models.NegotiationScenario) error {
	project := s.project.Clone()

	// Warnings from a failed replay must not stick to the scenario.
	warnings := make([]models.AdjustmentWarning, 0)
	for _, adjustment := range scenario.Adjustments {
		if !applyAdjustment(&project, adjustment) {
			warnings = append(warnings, models.AdjustmentWarning{
				Category: adjustment.Category,
				Field:    adjustment.Field,
				Message:  fmt.Sprintf("no handler for adjustment %s/%s, applied as no-op", adjustment.Category, adjustment.Field),
			})
		}
	}

	results, err := ComputeProjectBreakdown(project)
	if err != nil {
		return err
	}
	scenario.Warnings = warnings
	scenario.Results = results
	return nil
}

// applyAdjustment mutates the project copy for a recognized
// (category, field) pair and reports whether the pair was handled.
// Unrecognized pairs are deliberately a no-op: scenario authors may stage
// adjustments before a handler is wired.
func applyAdjustment(project *models.ProjectSnapshot, adjustment models.Adjustment) bool {
	switch {
	case adjustment.Category == models.AdjustmentPrice && adjustment.Field == "totalPrice":
		override := adjustment.AdjustedValue
		project.PriceOverride = &override
		return true
	case adjustment.Category == models.AdjustmentPrice && adjustment.Field == "margin":
		project.Margin.Value = adjustment.AdjustedValue
		return true
	case adjustment.Category == models.AdjustmentTerms && adjustment.Field == "contractPeriod":
		project.ContractMonths = int(adjustment.AdjustedValue)
		return true
	case adjustment.Category == models.AdjustmentScope && adjustment.Field == "teamSize":
		target := int(adjustment.AdjustedValue)
		if target >= 0 && target < len(project.Team.Positions) {
			project.Team.Positions = project.Team.Positions[:target]
		}
		return true
	case adjustment.Category == models.AdjustmentTimeline && adjustment.Field == "startDate":
		project.StartDate = time.Unix(int64(adjustment.AdjustedValue), 0).UTC()
		return true
	default:
		return false
	}
}

// CompareScenarios gathers the fixed metric set for each requested scenario
// and derives a recommendation for the first non-baseline scenario against
// the run's baseline.
func (s *ScenarioFlowImpl) CompareScenarios(ctx context.Context, req *dto.CompareScenariosRequest) (*dto.CompareScenariosResponse, error) {
	if len(req.ScenarioIDs) == 0 {
		return nil, NewBusinessError("COMPARISON_VALIDATION_FAILED", "Comparison validation failed", ErrComparisonNeedsScenarios)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var baseline *models.NegotiationScenario
	for _, scenario := range s.scenarios {
		if scenario.IsBaseline {
			baseline = scenario
			break
		}
	}

	entries := make([]models.ComparisonEntry, 0, len(req.ScenarioIDs))
	var active *models.NegotiationScenario
	for _, id := range req.ScenarioIDs {
		scenario, ok := s.scenarios[id]
		if !ok {
			return nil, NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", fmt.Errorf("%w: %s", ErrScenarioNotFound, id))
		}
		entries = append(entries, models.ComparisonEntry{
			ScenarioID:   scenario.ID,
			ScenarioName: scenario.Name,
			IsBaseline:   scenario.IsBaseline,
			Metrics:      metricsOf(scenario),
		})
		if active == nil && !scenario.IsBaseline {
			active = scenario
		}
	}

	comparison := models.ScenarioComparison{Entries: entries}
	if baseline != nil && active != nil {
		comparison.Recommendation = recommend(active, baseline)
	}

	return &dto.CompareScenariosResponse{Comparison: comparison}, nil
}

func metricsOf(scenario *models.NegotiationScenario) models.ComparisonMetrics {
	return models.ComparisonMetrics{
		TotalPrice:    scenario.Results.TotalPrice,
		TotalCost:     scenario.Results.TotalCost,
		Profit:        scenario.Results.Profit,
		MarginPct:     scenario.Results.MarginPct,
		ROIPct:        scenario.Results.ROIPct,
		PaybackMonths: scenario.Results.PaybackMonths,
	}
}

func recommend(active, baseline *models.NegotiationScenario) string {
	profitImproved := active.Results.Profit > baseline.Results.Profit
	marginImproved := active.Results.MarginPct > baseline.Results.MarginPct

	switch {
	case profitImproved && marginImproved:
		return fmt.Sprintf("%s is recommended: it improves both profit and margin over the baseline", active.Name)
	case profitImproved:
		return fmt.Sprintf("%s improves profit but not margin over the baseline; review the margin policy before committing", active.Name)
	case marginImproved:
		return fmt.Sprintf("%s improves margin but not profit over the baseline; review the pricing before committing", active.Name)
	default:
		return fmt.Sprintf("%s is less favorable than the baseline; revise before presenting", active.Name)
	}
}

// RestoreScenario adopts a rolled-back scenario state into the run, replacing
// the live entry wholesale.
func (s *ScenarioFlowImpl) RestoreScenario(ctx context.Context, scenario *models.NegotiationScenario) error {
	if scenario == nil || scenario.ID == "" {
		return NewBusinessError("SCENARIO_VALIDATION_FAILED", "Scenario validation failed", ErrScenarioNameRequired)
	}

	lock := s.locks.forScenario(scenario.ID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarios[scenario.ID] = scenario.Clone()
	return nil
}

// SetVersion advances a scenario's version counter after a successful save.
func (s *ScenarioFlowImpl) SetVersion(ctx context.Context, scenarioID string, version int) error {
	lock := s.locks.forScenario(scenarioID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	scenario, ok := s.scenarios[scenarioID]
	if !ok {
		return NewBusinessError("SCENARIO_NOT_FOUND", "Scenario not found", ErrScenarioNotFound)
	}
	scenario.Version = version
	return nil
}
