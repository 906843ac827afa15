// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"deskquote/app/dto"
	businessflow "deskquote/business_flow"

	"github.com/gofiber/fiber/v3"
)

// ScheduleHandlerInterface defines the contract for schedule handlers
type ScheduleHandlerInterface interface {
	SynthesizeSchedule(c fiber.Ctx) error
}

// ScheduleHandler handles shift plan synthesis HTTP requests
type ScheduleHandler struct {
	base
	scheduleFlow businessflow.ScheduleFlow
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleFlow businessflow.ScheduleFlow) *ScheduleHandler {
	return &ScheduleHandler{
		base:         newBase(),
		scheduleFlow: scheduleFlow,
	}
}

// SynthesizeSchedule builds a shift plan from a staffing result
// @Summary Synthesize schedule
// @Description Distribute the sized team over shifts under a coverage policy
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.SynthesizeScheduleRequest true "Staffing result and coverage policy"
// @Success 200 {object} dto.APIResponse{data=dto.SynthesizeScheduleResponse} "Schedule synthesized successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 422 {object} dto.APIResponse "Unknown coverage policy"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/schedule/synthesize [post]
func (h *ScheduleHandler) SynthesizeSchedule(c fiber.Ctx) error {
	var req dto.SynthesizeScheduleRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.scheduleFlow.SynthesizeSchedule(h.createRequestContext(c, "/api/v1/schedule/synthesize"), &req)
	if err != nil {
		if businessflow.IsUnknownCoveragePolicy(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Unknown coverage policy", "UNKNOWN_COVERAGE_POLICY", err.Error())
		}
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid staffing input", "INVALID_STAFFING_INPUT", err.Error())
		}

		log.Println("Schedule synthesis failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Schedule synthesis failed", "SCHEDULE_SYNTHESIS_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Schedule synthesized successfully", result)
}
