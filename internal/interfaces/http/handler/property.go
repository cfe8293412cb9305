package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookingapp "github.com/pms/backend/internal/application/booking"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/interfaces/http/dto"
)

// PropertyHandler handles property API endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *bookingapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *bookingapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
	}
}

// Create creates a new property for the caller's tenant
func (h *PropertyHandler) Create(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req bookingapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.Create(c.Request.Context(), tctx, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns one of the caller's properties
func (h *PropertyHandler) Get(c *gin.Context) {
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

	result, err := h.propertyService.Get(c.Request.Context(), tctx, uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the caller's properties
func (h *PropertyHandler) List(c *gin.Context) {
	tctx, err := getTenantContext(c)
	if err != nil {
		h.HandleError(c, err)
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

	result, err := h.propertyService.List(c.Request.Context(), tctx, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result, filter.Page, filter.PageSize)
}

// Update updates a property
func (h *PropertyHandler) Update(c *gin.Context) {
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

	var req bookingapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.propertyService.Update(c.Request.Context(), tctx, uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a property
func (h *PropertyHandler) Delete(c *gin.Context) {
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

	if err := h.propertyService.Delete(c.Request.Context(), tctx, uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.List)
		properties.GET("/:id", h.Get)
		properties.PUT("/:id", h.Update)
		properties.DELETE("/:id", h.Delete)
	}
}
