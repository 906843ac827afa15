// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"deskquote/app/dto"
	"deskquote/app/middleware"
	businessflow "deskquote/business_flow"

	"github.com/gofiber/fiber/v3"
)

// CostHandlerInterface defines the contract for cost handlers
type CostHandlerInterface interface {
	ComputeCosts(c fiber.Ctx) error
	ComputeROI(c fiber.Ctx) error
	ComputePayback(c fiber.Ctx) error
}

// CostHandler handles pricing HTTP requests
type CostHandler struct {
	base
	costFlow businessflow.CostFlow
}

// NewCostHandler creates a new cost handler
func NewCostHandler(costFlow businessflow.CostFlow) *CostHandler {
	return &CostHandler{
		base:     newBase(),
		costFlow: costFlow,
	}
}

// ComputeCosts derives the full monthly cost breakdown and sale price
// @Summary Compute costs
// @Description Derive team cost, tax load, margin, and sale price from the contract inputs
// @Tags Costs
// @Accept json
// @Produce json
// @Param request body dto.ComputeCostsRequest true "Team, rates, taxes, margin, and other costs"
// @Success 200 {object} dto.APIResponse{data=dto.ComputeCostsResponse} "Costs computed successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 422 {object} dto.APIResponse "Configuration error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/costs/compute [post]
func (h *CostHandler) ComputeCosts(c fiber.Ctx) error {
	var req dto.ComputeCostsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if handled, err := h.validateRequest(c, &req); handled {
		return err
	}

	result, err := h.costFlow.ComputeCosts(h.createRequestContext(c, "/api/v1/costs/compute"), &req)
	if err != nil {
		middleware.RecordPricingComputation(false)
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid cost input", "INVALID_COST_INPUT", err.Error())
		}
		if businessflow.IsConfigurationError(err) {
			return h.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Cost configuration error", "COST_CONFIGURATION_ERROR", err.Error())
		}

		log.Println("Cost computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Cost computation failed", "COST_COMPUTATION_FAILED", nil)
	}

	middleware.RecordPricingComputation(true)
	return h.SuccessResponse(c, fiber.StatusOK, "Costs computed successfully", result)
}

// ComputeROI computes the contract return on investment
// @Summary Compute ROI
// @Description Compute return on investment from an upfront investment and monthly returns
// @Tags Costs
// @Accept json
// @Produce json
// @Param request body dto.ROIRequest true "Investment and monthly returns"
// @Success 200 {object} dto.APIResponse{data=dto.ROIResponse} "ROI computed successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or zero investment"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/costs/roi [post]
func (h *CostHandler) ComputeROI(c fiber.Ctx) error {
	var req dto.ROIRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.costFlow.ComputeROI(h.createRequestContext(c, "/api/v1/costs/roi"), &req)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid ROI input", "INVALID_ROI_INPUT", err.Error())
		}

		log.Println("ROI computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "ROI computation failed", "ROI_COMPUTATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "ROI computed successfully", result)
}

// ComputePayback computes the simple payback horizon
// @Summary Compute payback
// @Description Compute how many months of returns recover the upfront investment
// @Tags Costs
// @Accept json
// @Produce json
// @Param request body dto.PaybackRequest true "Investment and monthly returns"
// @Success 200 {object} dto.APIResponse{data=dto.PaybackResponse} "Payback computed successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/costs/payback [post]
func (h *CostHandler) ComputePayback(c fiber.Ctx) error {
	var req dto.PaybackRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	result, err := h.costFlow.ComputePayback(h.createRequestContext(c, "/api/v1/costs/payback"), &req)
	if err != nil {
		if businessflow.IsInvalidInput(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid payback input", "INVALID_PAYBACK_INPUT", err.Error())
		}

		log.Println("Payback computation failed", err)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Payback computation failed", "PAYBACK_COMPUTATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Payback computed successfully", result)
}
