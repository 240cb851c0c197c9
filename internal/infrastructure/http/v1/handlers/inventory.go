package handlers

import (
	"github.com/gin-gonic/gin"

	appctx "nordlager/internal/core/context"
	"nordlager/internal/core/entity"
	"nordlager/internal/domain/history"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/domain/movement"
	"nordlager/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles stock movements and ledger queries.
type InventoryHandler struct {
	*BaseHandler
	engine   *movement.Engine
	ledger   *ledger.Service
	recorder *history.Recorder
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, engine *movement.Engine, ledgerSvc *ledger.Service, recorder *history.Recorder) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		engine:      engine,
		ledger:      ledgerSvc,
		recorder:    recorder,
	}
}

// Regulate handles POST /inventory/regulate
func (h *InventoryHandler) Regulate(c *gin.Context) {
	var req dto.RegulateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	rec, err := h.engine.Regulate(ctx, movement.RegulateInput{
		CustomerID: appctx.GetCustomerID(ctx),
		UserID:     appctx.GetUserID(ctx),
		LocationID: req.LocationID,
		ProductID:  req.ProductID,
		Placement:  req.Placement,
		Batch:      req.Batch,
		Kind:       entity.MovementKind(req.Type),
		Platform:   appctx.GetPlatform(ctx),
		Amount:     req.Quantity,
		Reference:  req.Reference,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewMovementResponse(rec))
}

// Move handles POST /inventory/move
func (h *InventoryHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	recs, err := h.engine.MoveWithinLocation(ctx, movement.MoveInput{
		CustomerID:    appctx.GetCustomerID(ctx),
		UserID:        appctx.GetUserID(ctx),
		LocationID:    req.LocationID,
		ProductID:     req.ProductID,
		FromPlacement: req.FromPlacement,
		ToPlacement:   req.ToPlacement,
		Batch:         req.Batch,
		Platform:      appctx.GetPlatform(ctx),
		Amount:        req.Quantity,
		Reference:     req.Reference,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewMovementResponse(recs...))
}

// MoveBetween handles POST /inventory/move-between
func (h *InventoryHandler) MoveBetween(c *gin.Context) {
	var req dto.CrossMoveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	recs, err := h.engine.MoveBetweenLocations(ctx, movement.CrossMoveInput{
		CustomerID:     appctx.GetCustomerID(ctx),
		UserID:         appctx.GetUserID(ctx),
		FromLocationID: req.FromLocationID,
		ToLocationID:   req.ToLocationID,
		ProductID:      req.ProductID,
		FromPlacement:  req.FromPlacement,
		FromBatch:      req.FromBatch,
		ToPlacement:    req.ToPlacement,
		ToBatch:        req.ToBatch,
		Platform:       appctx.GetPlatform(ctx),
		Amount:         req.Quantity,
		Reference:      req.Reference,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewMovementResponse(recs...))
}

// ListByLocation handles GET /locations/:id/inventory
func (h *InventoryHandler) ListByLocation(c *gin.Context) {
	rows, err := h.ledger.ListByLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.InventoryRowResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.FromInventoryRow(row))
	}
	h.OK(c, dto.NewListResponse(items))
}

// History handles GET /locations/:id/history
func (h *InventoryHandler) History(c *gin.Context) {
	var req dto.HistoryFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	records, err := h.recorder.ListByLocation(c.Request.Context(), c.Param("id"), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.HistoryResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.FromHistoryRecord(&records[i]))
	}
	h.OK(c, dto.NewListResponse(items))
}
