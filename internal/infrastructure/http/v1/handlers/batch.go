package handlers

import (
	"github.com/gin-gonic/gin"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/id"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/infrastructure/http/v1/dto"
	"nordlager/internal/infrastructure/storage/postgres"
	"nordlager/pkg/logger"
)

// BatchHandler handles batch catalog requests.
type BatchHandler struct {
	*BaseHandler
	service *batch.Service
	audit   *postgres.AuditService
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(base *BaseHandler, service *batch.Service, audit *postgres.AuditService) *BatchHandler {
	return &BatchHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// Create handles POST /batches
func (h *BatchHandler) Create(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	b, err := h.service.Create(ctx, req.LocationID, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.audit.LogChange(ctx, "batch", b.ID, postgres.AuditActionCreate, map[string]any{
		"location_id": b.LocationID,
		"batch":       b.Name,
	}); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "batch", "entity_id", b.ID, "error", err)
	}

	h.Created(c, b.ID)
}

// List handles GET /locations/:id/batches
func (h *BatchHandler) List(c *gin.Context) {
	batches, err := h.service.ListActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, dto.FromBatch(b))
	}
	h.OK(c, dto.NewListResponse(items))
}

// SetBarred handles PATCH /batches/:id/barred
func (h *BatchHandler) SetBarred(c *gin.Context) {
	batchID, err := id.ParseRowID(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid batch id"))
		return
	}

	var req dto.SetBarredRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.service.SetBarred(ctx, batchID, req.Barred); err != nil {
		h.Error(c, err)
		return
	}

	action := postgres.AuditActionBar
	if !req.Barred {
		action = postgres.AuditActionUnbar
	}
	if err := h.audit.LogChange(ctx, "batch", batchID, action, nil); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "batch", "entity_id", batchID, "error", err)
	}

	h.Success(c, "batch updated")
}
