package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/id"
	"nordlager/internal/domain/reorder"
	"nordlager/internal/infrastructure/http/v1/dto"
	"nordlager/internal/infrastructure/storage/postgres"
	"nordlager/pkg/logger"
)

// ReorderHandler handles reorder point requests.
type ReorderHandler struct {
	*BaseHandler
	service *reorder.Service
	audit   *postgres.AuditService
}

// NewReorderHandler creates a new reorder handler.
func NewReorderHandler(base *BaseHandler, service *reorder.Service, audit *postgres.AuditService) *ReorderHandler {
	return &ReorderHandler{
		BaseHandler: base,
		service:     service,
		audit:       audit,
	}
}

// Set handles PUT /reorders
func (h *ReorderHandler) Set(c *gin.Context) {
	var req dto.SetReorderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	r, err := h.service.Set(ctx,
		h.GetCustomerID(c), req.ProductID, req.LocationID,
		req.Minimum, req.Ordered, req.Buffer,
	)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.audit.LogChangeRef(ctx, "reorder", reorderAuditID(r.ProductID, r.LocationID),
		postgres.AuditActionUpdate, map[string]any{
			"minimum": r.Minimum,
			"ordered": r.Ordered,
			"buffer":  r.Buffer,
		}); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "reorder", "product_id", r.ProductID, "error", err)
	}

	h.OK(c, dto.ReorderResponse{
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
		Minimum:    r.Minimum,
		Ordered:    r.Ordered,
		Buffer:     r.Buffer * 100,
	})
}

// Remove handles DELETE /locations/:id/reorders/:productId
func (h *ReorderHandler) Remove(c *gin.Context) {
	productID, err := id.ParseRowID(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id"))
		return
	}
	locationID := c.Param("id")

	ctx := c.Request.Context()
	if err := h.service.Remove(ctx, productID, locationID); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.audit.LogChangeRef(ctx, "reorder", reorderAuditID(productID, locationID),
		postgres.AuditActionDelete, nil); err != nil {
		logger.Warn(ctx, "audit write failed", "entity_type", "reorder", "product_id", productID, "error", err)
	}

	h.NoContent(c)
}

// List handles GET /locations/:id/reorders
func (h *ReorderHandler) List(c *gin.Context) {
	statuses, err := h.service.ListByLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ReorderResponse, 0, len(statuses))
	for _, st := range statuses {
		items = append(items, dto.FromReorderStatus(st))
	}
	h.OK(c, dto.NewListResponse(items))
}

func reorderAuditID(productID int64, locationID string) string {
	return fmt.Sprintf("%d@%s", productID, locationID)
}
