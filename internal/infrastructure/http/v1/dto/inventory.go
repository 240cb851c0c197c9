package dto

import (
	"time"

	"nordlager/internal/core/entity"
	"nordlager/internal/core/types"
	"nordlager/internal/domain/history"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/domain/movement"
)

// RegulateRequest is a direct quantity adjustment. Placement and batch
// accept null/"" (default resource), a string (create named) or a number
// (existing id).
type RegulateRequest struct {
	LocationID string         `json:"locationId" binding:"required"`
	ProductID  int64          `json:"productId" binding:"required"`
	Placement  movement.Ref   `json:"placementId"`
	Batch      movement.Ref   `json:"batchId"`
	Type       string         `json:"type" binding:"required"`
	Quantity   types.Quantity `json:"quantity"`
	Reference  string         `json:"reference"`
}

// MoveRequest transfers quantity between two placements in one location.
type MoveRequest struct {
	LocationID    string         `json:"locationId" binding:"required"`
	ProductID     int64          `json:"productId" binding:"required"`
	FromPlacement movement.Ref   `json:"fromPlacementId"`
	ToPlacement   movement.Ref   `json:"toPlacementId"`
	Batch         movement.Ref   `json:"batchId"`
	Quantity      types.Quantity `json:"quantity"`
	Reference     string         `json:"reference"`
}

// CrossMoveRequest transfers quantity between two locations.
type CrossMoveRequest struct {
	FromLocationID string         `json:"fromLocationId" binding:"required"`
	ToLocationID   string         `json:"toLocationId" binding:"required"`
	ProductID      int64          `json:"productId" binding:"required"`
	FromPlacement  movement.Ref   `json:"fromPlacementId"`
	FromBatch      movement.Ref   `json:"fromBatchId"`
	ToPlacement    movement.Ref   `json:"toPlacementId"`
	ToBatch        movement.Ref   `json:"toBatchId"`
	Quantity       types.Quantity `json:"quantity"`
	Reference      string         `json:"reference"`
}

// MovementResponse returns the history rows a movement produced.
type MovementResponse struct {
	Records []HistoryResponse `json:"records"`
}

// NewMovementResponse builds a movement response.
func NewMovementResponse(records ...*history.Record) MovementResponse {
	out := MovementResponse{Records: make([]HistoryResponse, 0, len(records))}
	for _, rec := range records {
		out.Records = append(out.Records, FromHistoryRecord(rec))
	}
	return out
}

// HistoryResponse is one history row with its snapshot labels.
type HistoryResponse struct {
	ID            int64          `json:"id"`
	LocationID    string         `json:"locationId"`
	UserID        int64          `json:"userId"`
	UserName      string         `json:"userName"`
	UserRole      string         `json:"userRole"`
	ProductID     int64          `json:"productId"`
	ProductSku    string         `json:"productSku"`
	ProductText1  string         `json:"productText1"`
	ProductGroup  string         `json:"productGroup"`
	ProductUnit   string         `json:"productUnit"`
	PlacementID   int64          `json:"placementId"`
	PlacementName string         `json:"placementName"`
	BatchID       int64          `json:"batchId"`
	BatchName     string         `json:"batchName"`
	Type          string         `json:"type"`
	Platform      string         `json:"platform"`
	Amount        types.Quantity `json:"amount"`
	Reference     string         `json:"reference"`
	Inserted      time.Time      `json:"inserted"`
}

// FromHistoryRecord maps a history record to its response shape.
func FromHistoryRecord(rec *history.Record) HistoryResponse {
	return HistoryResponse{
		ID:            rec.ID,
		LocationID:    rec.LocationID,
		UserID:        rec.UserID,
		UserName:      rec.UserName,
		UserRole:      rec.UserRole,
		ProductID:     rec.ProductID,
		ProductSku:    rec.ProductSku,
		ProductText1:  rec.ProductText1,
		ProductGroup:  rec.ProductGroupName,
		ProductUnit:   rec.ProductUnitName,
		PlacementID:   rec.PlacementID,
		PlacementName: rec.PlacementName,
		BatchID:       rec.BatchID,
		BatchName:     rec.BatchName,
		Type:          string(rec.Kind),
		Platform:      string(rec.Platform),
		Amount:        rec.Amount,
		Reference:     rec.Reference,
		Inserted:      rec.Inserted,
	}
}

// HistoryFilterRequest narrows history listings.
type HistoryFilterRequest struct {
	PaginationRequest
	ProductID *int64     `form:"productId"`
	Type      *string    `form:"type"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ToFilter converts the request to a history filter.
func (r *HistoryFilterRequest) ToFilter() history.Filter {
	r.Defaults()
	f := history.Filter{
		ProductID: r.ProductID,
		From:      r.From,
		To:        r.To,
		Limit:     r.PageSize,
		Offset:    r.Offset(),
	}
	if r.Type != nil {
		kind := entity.MovementKind(*r.Type)
		f.Kind = &kind
	}
	return f
}

// InventoryRowResponse is one ledger balance with live labels.
type InventoryRowResponse struct {
	ProductID     int64          `json:"productId"`
	ProductSku    string         `json:"productSku"`
	ProductText1  string         `json:"productText1"`
	ProductUnit   string         `json:"productUnit"`
	ProductGroup  string         `json:"productGroup"`
	PlacementID   int64          `json:"placementId"`
	PlacementName string         `json:"placementName"`
	BatchID       int64          `json:"batchId"`
	BatchName     string         `json:"batchName"`
	Quantity      types.Quantity `json:"quantity"`
	Updated       time.Time      `json:"updated"`
}

// FromInventoryRow maps a ledger detail row to its response shape.
func FromInventoryRow(row ledger.RowDetail) InventoryRowResponse {
	return InventoryRowResponse{
		ProductID:     row.ProductID,
		ProductSku:    row.ProductSku,
		ProductText1:  row.ProductText1,
		ProductUnit:   row.ProductUnit,
		ProductGroup:  row.ProductGroup,
		PlacementID:   row.PlacementID,
		PlacementName: row.PlacementName,
		BatchID:       row.BatchID,
		BatchName:     row.BatchName,
		Quantity:      row.Quantity,
		Updated:       row.Updated,
	}
}
