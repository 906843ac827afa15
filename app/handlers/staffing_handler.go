// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"deskquote/app/dto"
	businessflow "deskquote/business_flow"

	"github.com/gofiber/fiber/v3"
)

// StaffingHandlerInterface defines the contract for staffing handlers
type StaffingHandlerInterface interface {
	ComputeStaffing(c fiber.Ctx) error
}

// StaffingHandler handles team dimensioning HTTP requests
type StaffingHandler struct {
	base
	staffingFlow businessflow.StaffingFlow
}

// NewStaffingHandler creates a new staffing handler
func NewStaffingHandler(staffingFlow businessflow.StaffingFlow) *StaffingHandler {
	return &StaffingHandler{
		base:         newBase(),
		staffingFlow: staffingFlow,
	}
}

// ComputeStaffing sizes the support team from a demand profile
// @Summary Compute staffing
// @Description Size tier 1 and tier 2 headcounts from contract demand parameters
// @Tags Staffing
// @Accept json
// @Produce json
// @Param request body dto.ComputeStaffingRequest true "Demand profile"
// @Success 200 {object} dto.APIResponse{data=dto.ComputeStaffingResponse} "Staffing computed successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/staffing/compute [post]
func (h *StaffingHandler) ComputeStaffing(c fiber.Ctx) error {
	var req dto.ComputeStaffingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.staffingFlow.ComputeStaffing(h.createRequestContext(c, "/api/v1/staffing/compute"), &req)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid demand profile", "INVALID_DEMAND_PROFILE", err.Error())
		}

		log.Println("Staffing computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Staffing computation failed", "STAFFING_COMPUTATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Staffing computed successfully", result)
}
