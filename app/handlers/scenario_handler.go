// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"

	"deskquote/app/dto"
	businessflow "deskquote/business_flow"

	"github.com/gofiber/fiber/v3"
)

// ScenarioHandlerInterface defines the contract for scenario handlers
type ScenarioHandlerInterface interface {
	CreateScenario(c fiber.Ctx) error
	ListScenarios(c fiber.Ctx) error
	GetScenario(c fiber.Ctx) error
	DuplicateScenario(c fiber.Ctx) error
	DeleteScenario(c fiber.Ctx) error
	AddAdjustment(c fiber.Ctx) error
	UpdateAdjustment(c fiber.Ctx) error
	RemoveAdjustment(c fiber.Ctx) error
	CompareScenarios(c fiber.Ctx) error
}

// ScenarioHandler handles negotiation scenario HTTP requests
type ScenarioHandler struct {
	base
	scenarioFlow businessflow.ScenarioFlow
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(scenarioFlow businessflow.ScenarioFlow) *ScenarioHandler {
	return &ScenarioHandler{
		base:         newBase(),
		scenarioFlow: scenarioFlow,
	}
}

// CreateScenario creates a negotiation scenario seeded from the project
// @Summary Create scenario
// @Description Create a negotiation scenario and compute its initial results
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param request body dto.CreateScenarioRequest true "Scenario creation data"
// @Success 201 {object} dto.APIResponse{data=dto.ScenarioResponse} "Scenario created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 409 {object} dto.APIResponse "A baseline scenario already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios [post]
func (h *ScenarioHandler) CreateScenario(c fiber.Ctx) error {
	var req dto.CreateScenarioRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.scenarioFlow.CreateScenario(h.createRequestContext(c, "/api/v1/scenarios"), &req)
	if err != nil {
		if businessflow.IsSecondBaseline(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "A baseline scenario already exists", "BASELINE_EXISTS", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid scenario", "INVALID_SCENARIO", err.Error())
		}

		log.Println("Scenario creation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Scenario creation failed", "SCENARIO_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Scenario created successfully", result)
}

// ListScenarios lists every scenario of the negotiation run
// @Summary List scenarios
// @Tags Scenarios
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ListScenariosResponse} "Scenarios listed successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios [get]
func (h *ScenarioHandler) ListScenarios(c fiber.Ctx) error {
	result, err := h.scenarioFlow.ListScenarios(h.createRequestContext(c, "/api/v1/scenarios"))
	if err != nil {
		log.Println("Scenario listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Scenario listing failed", "SCENARIO_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Scenarios listed successfully", result)
}

// GetScenario fetches one scenario by id
// @Summary Get scenario
// @Tags Scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScenarioResponse} "Scenario fetched successfully"
// @Failure 404 {object} dto.APIResponse "Scenario not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id} [get]
func (h *ScenarioHandler) GetScenario(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	scenario, err := h.scenarioFlow.GetScenario(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID), scenarioID)
	if err != nil {
		if businessflow.IsScenarioNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Scenario not found", "SCENARIO_NOT_FOUND", nil)
		}

		log.Println("Scenario fetch failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Scenario fetch failed", "SCENARIO_FETCH_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Scenario fetched successfully", &dto.ScenarioResponse{Scenario: scenario})
}

// DuplicateScenario deep-copies a scenario into an independent draft
// @Summary Duplicate scenario
// @Tags Scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 201 {object} dto.APIResponse{data=dto.ScenarioResponse} "Scenario duplicated successfully"
// @Failure 404 {object} dto.APIResponse "Scenario not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/duplicate [post]
func (h *ScenarioHandler) DuplicateScenario(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	result, err := h.scenarioFlow.DuplicateScenario(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/duplicate"), scenarioID)
	if err != nil {
		if businessflow.IsScenarioNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Scenario not found", "SCENARIO_NOT_FOUND", nil)
		}

		log.Println("Scenario duplication failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Scenario duplication failed", "SCENARIO_DUPLICATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Scenario duplicated successfully", result)
}

// DeleteScenario removes a non-baseline scenario
// @Summary Delete scenario
// @Tags Scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 200 {object} dto.APIResponse "Scenario deleted successfully"
// @Failure 403 {object} dto.APIResponse "Baseline scenarios cannot be deleted"
// @Failure 404 {object} dto.APIResponse "Scenario not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id} [delete]
func (h *ScenarioHandler) DeleteScenario(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	err := h.scenarioFlow.DeleteScenario(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID), scenarioID)
	if err != nil {
		if businessflow.IsScenarioNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Scenario not found", "SCENARIO_NOT_FOUND", nil)
		}
		if businessflow.IsBaselineImmutable(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Baseline scenarios cannot be deleted", "BASELINE_IMMUTABLE", nil)
		}

		log.Println("Scenario deletion failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Scenario deletion failed", "SCENARIO_DELETION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Scenario deleted successfully", nil)
}

// AddAdjustment stages an adjustment on a scenario and recomputes its results
// @Summary Add adjustment
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param request body dto.AddAdjustmentRequest true "Adjustment data"
// @Success 200 {object} dto.APIResponse{data=dto.ScenarioResponse} "Adjustment added successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 403 {object} dto.APIResponse "Baseline scenarios cannot be adjusted"
// @Failure 404 {object} dto.APIResponse "Scenario not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/adjustments [post]
func (h *ScenarioHandler) AddAdjustment(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	var req dto.AddAdjustmentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ScenarioID = scenarioID

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.scenarioFlow.AddAdjustment(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/adjustments"), &req)
	if err != nil {
		return h.adjustmentErrorResponse(c, "Adjustment addition failed", "ADJUSTMENT_ADDITION_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Adjustment added successfully", result)
}

// UpdateAdjustment patches a staged adjustment and recomputes the scenario
// @Summary Update adjustment
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param index path int true "Adjustment index"
// @Param request body dto.UpdateAdjustmentRequest true "Adjustment patch"
// @Success 200 {object} dto.APIResponse{data=dto.ScenarioResponse} "Adjustment updated successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 403 {object} dto.APIResponse "Baseline scenarios cannot be adjusted"
// @Failure 404 {object} dto.APIResponse "Scenario or adjustment not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/adjustments/{index} [put]
func (h *ScenarioHandler) UpdateAdjustment(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Adjustment index must be a non-negative integer", "INVALID_ADJUSTMENT_INDEX", nil)
	}

	var req dto.UpdateAdjustmentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ScenarioID = scenarioID
	req.Index = index

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.scenarioFlow.UpdateAdjustment(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/adjustments"), &req)
	if err != nil {
		return h.adjustmentErrorResponse(c, "Adjustment update failed", "ADJUSTMENT_UPDATE_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Adjustment updated successfully", result)
}

// RemoveAdjustment drops a staged adjustment and recomputes the scenario
// @Summary Remove adjustment
// @Tags Scenarios
// @Produce json
// @Param id path string true "Scenario ID"
// @Param index path int true "Adjustment index"
// @Success 200 {object} dto.APIResponse{data=dto.ScenarioResponse} "Adjustment removed successfully"
// @Failure 400 {object} dto.APIResponse "Invalid adjustment index"
// @Failure 403 {object} dto.APIResponse "Baseline scenarios cannot be adjusted"
// @Failure 404 {object} dto.APIResponse "Scenario or adjustment not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/adjustments/{index} [delete]
func (h *ScenarioHandler) RemoveAdjustment(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Adjustment index must be a non-negative integer", "INVALID_ADJUSTMENT_INDEX", nil)
	}

	result, err := h.scenarioFlow.RemoveAdjustment(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/adjustments"), scenarioID, index)
	if err != nil {
		return h.adjustmentErrorResponse(c, "Adjustment removal failed", "ADJUSTMENT_REMOVAL_FAILED", err)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Adjustment removed successfully", result)
}

// CompareScenarios builds the metric comparison table and recommendation
// @Summary Compare scenarios
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param request body dto.CompareScenariosRequest true "Scenario IDs to compare"
// @Success 200 {object} dto.APIResponse{data=dto.CompareScenariosResponse} "Scenarios compared successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Scenario not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/compare [post]
func (h *ScenarioHandler) CompareScenarios(c fiber.Ctx) error {
	var req dto.CompareScenariosRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.scenarioFlow.CompareScenarios(h.createRequestContext(c, "/api/v1/scenarios/compare"), &req)
	if err != nil {
		if businessflow.IsScenarioNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Scenario not found", "SCENARIO_NOT_FOUND", nil)
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid comparison request", "INVALID_COMPARISON", err.Error())
		}

		log.Println("Scenario comparison failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Scenario comparison failed", "SCENARIO_COMPARISON_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Scenarios compared successfully", result)
}

func (h *ScenarioHandler) adjustmentErrorResponse(c fiber.Ctx, message, code string, err error) error {
	if businessflow.IsScenarioNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Scenario not found", "SCENARIO_NOT_FOUND", nil)
	}
	if businessflow.IsBaselineImmutable(err) {
		return h.ErrorResponse(c, fiber.StatusForbidden, "Baseline scenarios cannot be adjusted", "BASELINE_IMMUTABLE", nil)
	}
	if businessflow.IsNotFound(err) {
		return h.ErrorResponse(c, fiber.StatusNotFound, "Adjustment not found", "ADJUSTMENT_NOT_FOUND", nil)
	}
	if businessflow.IsInvalidInput(err) {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid adjustment", "INVALID_ADJUSTMENT", err.Error())
	}

	log.Println(message, err)
	return h.ErrorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
