package handlers

import (
	"github.com/gin-gonic/gin"

	"nordlager/internal/infrastructure/http/v1/dto"
	"nordlager/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the catalog change trail.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{BaseHandler: base, audit: audit}
}

// History handles GET /audit/:entityType/:entityId
func (h *AuditHandler) History(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", 50)
	if limit > 500 {
		limit = 500
	}

	entries, err := h.audit.GetEntityHistory(
		c.Request.Context(),
		c.Param("entityType"),
		c.Param("entityId"),
		limit,
	)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromAuditEntry(e))
	}
	h.OK(c, dto.NewListResponse(items))
}
