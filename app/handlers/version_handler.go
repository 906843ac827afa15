// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"deskquote/app/dto"
	"deskquote/app/middleware"
	businessflow "deskquote/business_flow"
	"deskquote/utils"

	"github.com/gofiber/fiber/v3"
)

// VersionHandlerInterface defines the contract for version handlers
type VersionHandlerInterface interface {
	SaveVersion(c fiber.Ctx) error
	ListVersions(c fiber.Ctx) error
	Rollback(c fiber.Ctx) error
	DiffVersions(c fiber.Ctx) error
	PruneVersions(c fiber.Ctx) error
}

// VersionHandler handles version log HTTP requests. It orchestrates the
// scenario flow and the version flow so the version log only ever sees
// scenarios as data.
type VersionHandler struct {
	base
	scenarioFlow businessflow.ScenarioFlow
	versionFlow  businessflow.VersionFlow
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(scenarioFlow businessflow.ScenarioFlow, versionFlow businessflow.VersionFlow) *VersionHandler {
	return &VersionHandler{
		base:         newBase(),
		scenarioFlow: scenarioFlow,
		versionFlow:  versionFlow,
	}
}

// SaveVersion snapshots a scenario into its append-only version log
// @Summary Save version
// @Description Append the current scenario state to its version log
// @Tags Versions
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param request body dto.SaveVersionRequest true "Change description and tags"
// @Success 201 {object} dto.APIResponse{data=dto.VersionResponse} "Version saved successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Scenario not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/versions [post]
func (h *VersionHandler) SaveVersion(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	var req dto.SaveVersionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ScenarioID = scenarioID

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	ctx := h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/versions")

	scenario, err := h.scenarioFlow.GetScenario(ctx, scenarioID)
	if err != nil {
		if businessflow.IsScenarioNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Scenario not found", "SCENARIO_NOT_FOUND", nil)
		}

		log.Println("Version save failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Version save failed", "VERSION_SAVE_FAILED", nil)
	}

	author := middleware.AuthorFromContext(c)
	saved, err := h.versionFlow.SaveVersion(ctx, scenario, req.ChangeDescription, author, req.Tags)
	if err != nil {
		log.Println("Version save failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Version save failed", "VERSION_SAVE_FAILED", nil)
	}

	// Keep the in-memory scenario's version counter aligned with the log.
	if err := h.scenarioFlow.SetVersion(ctx, scenarioID, saved.Version); err != nil {
		log.Println("Version counter update failed", err)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Version saved successfully", &dto.VersionResponse{Version: saved})
}

// ListVersions lists a scenario's versions in ascending order
// @Summary List versions
// @Tags Versions
// @Produce json
// @Param id path string true "Scenario ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListVersionsResponse} "Versions listed successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/versions [get]
func (h *VersionHandler) ListVersions(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	versions, err := h.versionFlow.ListVersions(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/versions"), scenarioID)
	if err != nil {
		log.Println("Version listing failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Version listing failed", "VERSION_LISTING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Versions listed successfully", &dto.ListVersionsResponse{Versions: versions})
}

// Rollback restores a scenario to a previously saved version
// @Summary Rollback scenario
// @Description Restore a previous version by appending it as a new forward version
// @Tags Versions
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param request body dto.RollbackRequest true "Target version and backup flag"
// @Success 200 {object} dto.APIResponse{data=dto.RollbackResponse} "Scenario rolled back successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or empty version log"
// @Failure 404 {object} dto.APIResponse "Scenario or version not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/versions/rollback [post]
func (h *VersionHandler) Rollback(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	var req dto.RollbackRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ScenarioID = scenarioID

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	ctx := h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/versions/rollback")

	restored, err := h.versionFlow.Rollback(ctx, scenarioID, req.TargetVersion, utils.IsTrueOrNil(req.CreateBackup))
	if err != nil {
		if businessflow.IsVersionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Version not found", "VERSION_NOT_FOUND", nil)
		}
		if businessflow.IsNoVersionsSaved(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No versions saved for scenario", "NO_VERSIONS_SAVED", nil)
		}

		log.Println("Rollback failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Rollback failed", "ROLLBACK_FAILED", nil)
	}

	if err := h.scenarioFlow.RestoreScenario(ctx, restored); err != nil {
		log.Println("Rollback state restore failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Rollback failed", "ROLLBACK_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Scenario rolled back successfully", &dto.RollbackResponse{Scenario: restored})
}

// DiffVersions structurally compares two versions of a scenario
// @Summary Diff versions
// @Tags Versions
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param request body dto.DiffVersionsRequest true "Version pair to compare"
// @Success 200 {object} dto.APIResponse{data=dto.DiffVersionsResponse} "Versions compared successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Version not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/versions/diff [post]
func (h *VersionHandler) DiffVersions(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	var req dto.DiffVersionsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ScenarioID = scenarioID

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	diff, err := h.versionFlow.Diff(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/versions/diff"), scenarioID, req.FromVersion, req.ToVersion)
	if err != nil {
		if businessflow.IsVersionNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Version not found", "VERSION_NOT_FOUND", nil)
		}
		if businessflow.IsNoVersionsSaved(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "No versions saved for scenario", "NO_VERSIONS_SAVED", nil)
		}

		log.Println("Version diff failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Version diff failed", "VERSION_DIFF_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Versions compared successfully", &dto.DiffVersionsResponse{Diff: diff})
}

// PruneVersions applies the retention policy to a scenario's version log
// @Summary Prune versions
// @Tags Versions
// @Accept json
// @Produce json
// @Param id path string true "Scenario ID"
// @Param request body dto.PruneVersionsRequest true "Retention window"
// @Success 200 {object} dto.APIResponse{data=dto.PruneVersionsResponse} "Versions pruned successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/scenarios/{id}/versions/prune [post]
func (h *VersionHandler) PruneVersions(c fiber.Ctx) error {
	scenarioID := c.Params("id")
	if scenarioID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Scenario ID is required", "MISSING_SCENARIO_ID", nil)
	}

	var req dto.PruneVersionsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.ScenarioID = scenarioID

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	// Zero tells the flow to apply the configured retention default.
	keepLast := 0
	if req.KeepLast != nil {
		keepLast = *req.KeepLast
	}

	removed, err := h.versionFlow.PruneVersions(h.createRequestContext(c, "/api/v1/scenarios/"+scenarioID+"/versions/prune"), scenarioID, keepLast)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid retention window", "INVALID_RETENTION_WINDOW", err.Error())
		}

		log.Println("Version pruning failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Version pruning failed", "VERSION_PRUNING_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Versions pruned successfully", &dto.PruneVersionsResponse{Removed: removed})
}
