package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	revenueapp "github.com/pms/backend/internal/application/revenue"
	"github.com/pms/backend/internal/interfaces/http/dto"
)

// RevenueHandler handles revenue summary API endpoints
type RevenueHandler struct {
	BaseHandler
	summaryService *revenueapp.SummaryService
}

// NewRevenueHandler creates a new RevenueHandler
func NewRevenueHandler(summaryService *revenueapp.SummaryService) *RevenueHandler {
	return &RevenueHandler{
		summaryService: summaryService,
	}
}

// GetSummary returns the all-time revenue summary for a property
func (h *RevenueHandler) GetSummary(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	result, err := h.summaryService.GetSummary(c.Request.Context(), tctx, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetMonthlySummary returns the revenue summary for one calendar month of
// the property's local timezone.
func (h *RevenueHandler) GetMonthlySummary(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "Query parameter year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Query parameter month must be an integer")
		return
	}

	result, err := h.summaryService.GetMonthlySummary(c.Request.Context(), tctx, uuid.MustParse(uri.ID), year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers revenue routes
func (h *RevenueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties/:id/revenue/summary", h.GetSummary)
	rg.GET("/properties/:id/revenue/monthly", h.GetMonthlySummary)
}
