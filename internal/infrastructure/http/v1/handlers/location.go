package handlers

import (
	"github.com/gin-gonic/gin"

	"nordlager/internal/domain/catalogs/location"
	"nordlager/internal/infrastructure/http/v1/dto"
	"nordlager/internal/infrastructure/storage/postgres"
	"nordlager/pkg/logger"
)

// LocationHandler handles location catalog requests.
type LocationHandler struct {
	*BaseHandler
	service *location.Service
	audit   *postgres.AuditService
}

// NewLocationHandler creates a new location handler.
func NewLocationHandler(base *BaseHandler, service *location.Service, audit *postgres.AuditService) *LocationHandler {
	return &LocationHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// Create handles POST /locations
//
// Provisioning also creates the default placement and batch and seeds
// zero inventory rows for the customer's active products.
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	l, err := h.service.Create(ctx, h.GetCustomerID(c), req.Name, req.Address)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.audit.LogChangeRef(ctx, "location", l.ID, postgres.AuditActionCreate, map[string]any{
		"name":    l.Name,
		"address": l.Address,
	}); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "location", "entity_id", l.ID, "error", err)
	}

	h.Created(c, l.ID)
}

// Get handles GET /locations/:id
func (h *LocationHandler) Get(c *gin.Context) {
	l, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromLocation(*l))
}

// List handles GET /locations
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.service.ListByCustomer(c.Request.Context(), h.GetCustomerID(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		items = append(items, dto.FromLocation(l))
	}
	h.OK(c, dto.NewListResponse(items))
}

// SetBarred handles PATCH /locations/:id/barred
func (h *LocationHandler) SetBarred(c *gin.Context) {
	var req dto.SetBarredRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	locationID := c.Param("id")
	if err := h.service.SetBarred(ctx, locationID, req.Barred); err != nil {
		h.Error(c, err)
		return
	}

	action := postgres.AuditActionBar
	if !req.Barred {
		action = postgres.AuditActionUnbar
	}
	if err := h.audit.LogChangeRef(ctx, "location", locationID, action, nil); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "location", "entity_id", locationID, "error", err)
	}

	h.Success(c, "location updated")
}
