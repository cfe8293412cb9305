package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingapp "github.com/pms/backend/internal/application/booking"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/interfaces/http/dto"
)

// ReservationHandler handles reservation API endpoints
type ReservationHandler struct {
	BaseHandler
	reservationService *bookingapp.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationService *bookingapp.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
	}
}

// Create books a reservation against one of the caller's properties
func (h *ReservationHandler) Create(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req bookingapp.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reservationService.Create(c.Request.Context(), tctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns one of the caller's reservations
func (h *ReservationHandler) Get(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	result, err := h.reservationService.Get(c.Request.Context(), tctx, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListByProperty returns a property's reservations
func (h *ReservationHandler) ListByProperty(c *gin.Context) {
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

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	}

	result, err := h.reservationService.ListByProperty(c.Request.Context(), tctx, uuid.MustParse(uri.ID), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, filter.Page, filter.PageSize)
}

// Update modifies a reservation
func (h *ReservationHandler) Update(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	var req bookingapp.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reservationService.Update(c.Request.Context(), tctx, uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a reservation
func (h *ReservationHandler) Delete(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	if err := h.reservationService.Delete(c.Request.Context(), tctx, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers reservation routes
func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("/:id", h.Get)
		reservations.PUT("/:id", h.Update)
		reservations.DELETE("/:id", h.Delete)
	}

	rg.GET("/properties/:id/reservations", h.ListByProperty)
}
