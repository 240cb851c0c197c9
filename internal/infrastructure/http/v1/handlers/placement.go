package handlers

import (
	"github.com/gin-gonic/gin"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/id"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/infrastructure/http/v1/dto"
	"nordlager/internal/infrastructure/storage/postgres"
	"nordlager/pkg/logger"
)

// PlacementHandler handles placement catalog requests.
type PlacementHandler struct {
	*BaseHandler
	service *placement.Service
	audit   *postgres.AuditService
}

// NewPlacementHandler creates a new placement handler.
func NewPlacementHandler(base *BaseHandler, service *placement.Service, audit *postgres.AuditService) *PlacementHandler {
	return &PlacementHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// Create handles POST /placements
func (h *PlacementHandler) Create(c *gin.Context) {
	var req dto.CreatePlacementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	p, err := h.service.Create(ctx, req.LocationID, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.audit.LogChange(ctx, "placement", p.ID, postgres.AuditActionCreate, map[string]any{
		"location_id": p.LocationID,
		"name":        p.Name,
	}); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "placement", "entity_id", p.ID, "error", err)
	}

	h.Created(c, p.ID)
}

// List handles GET /locations/:id/placements
func (h *PlacementHandler) List(c *gin.Context) {
	placements, err := h.service.ListActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.PlacementResponse, 0, len(placements))
	for _, p := range placements {
		items = append(items, dto.FromPlacement(p))
	}
	h.OK(c, dto.NewListResponse(items))
}

// SetBarred handles PATCH /placements/:id/barred
func (h *PlacementHandler) SetBarred(c *gin.Context) {
	placementID, err := id.ParseRowID(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid placement id"))
		return
	}

	var req dto.SetBarredRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.service.SetBarred(ctx, placementID, req.Barred); err != nil {
		h.Error(c, err)
		return
	}

	action := postgres.AuditActionBar
	if !req.Barred {
		action = postgres.AuditActionUnbar
	}
	if err := h.audit.LogChange(ctx, "placement", placementID, action, nil); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "placement", "entity_id", placementID, "error", err)
	}

	h.Success(c, "placement updated")
}
