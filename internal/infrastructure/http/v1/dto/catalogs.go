package dto

import (
	"encoding/json"
	"time"

	"nordlager/internal/core/types"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/location"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/reorder"
	"nordlager/internal/infrastructure/storage/postgres"
)

// CreatePlacementRequest creates a named placement for a location.
type CreatePlacementRequest struct {
	LocationID string `json:"locationId" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// PlacementResponse is one placement.
type PlacementResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	IsBarred  bool   `json:"isBarred"`
}

// FromPlacement maps a placement to its response shape.
func FromPlacement(p placement.Placement) PlacementResponse {
	return PlacementResponse{
		ID:        p.ID,
		Name:      p.Name,
		IsDefault: p.IsDefault(),
		IsBarred:  p.IsBarred,
	}
}

// CreateBatchRequest creates a named batch for a location.
type CreateBatchRequest struct {
	LocationID string `json:"locationId" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// BatchResponse is one batch.
type BatchResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	IsDefault bool       `json:"isDefault"`
	IsBarred  bool       `json:"isBarred"`
}

// FromBatch maps a batch to its response shape.
func FromBatch(b batch.Batch) BatchResponse {
	return BatchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Expiry:    b.Expiry,
		IsDefault: b.IsDefault(),
		IsBarred:  b.IsBarred,
	}
}

// SetBarredRequest toggles a resource's barred flag.
type SetBarredRequest struct {
	Barred bool `json:"barred"`
}

// CreateLocationRequest provisions a new location.
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// LocationResponse is one location.
type LocationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsBarred bool   `json:"isBarred"`
}

// FromLocation maps a location to its response shape.
func FromLocation(l location.Location) LocationResponse {
	return LocationResponse{
		ID:       l.ID,
		Name:     l.Name,
		Address:  l.Address,
		IsBarred: l.IsBarred,
	}
}

// SetReorderRequest creates or replaces a reorder setting. Buffer is a
// percentage (25 == 25%).
type SetReorderRequest struct {
	ProductID  int64          `json:"productId" binding:"required"`
	LocationID string         `json:"locationId" binding:"required"`
	Minimum    types.Quantity `json:"minimum"`
	Ordered    types.Quantity `json:"ordered"`
	Buffer     float64        `json:"buffer" binding:"omitempty,min=0"`
}

// ReorderResponse is one reorder setting with derived quantities.
type ReorderResponse struct {
	ProductID   int64          `json:"productId"`
	LocationID  string         `json:"locationId"`
	Minimum     types.Quantity `json:"minimum"`
	Ordered     types.Quantity `json:"ordered"`
	Buffer      float64        `json:"buffer"`
	Quantity    types.Quantity `json:"quantity"`
	Disposable  types.Quantity `json:"disposable"`
	Recommended types.Quantity `json:"recommended"`
}

// FromReorderStatus maps a computed reorder status to its response shape.
// Buffer returns to the caller as a percentage, matching the request shape.
func FromReorderStatus(st reorder.Status) ReorderResponse {
	return ReorderResponse{
		ProductID:   st.ProductID,
		LocationID:  st.LocationID,
		Minimum:     st.Minimum,
		Ordered:     st.Ordered,
		Buffer:      st.Buffer * 100,
		Quantity:    st.Quantity,
		Disposable:  st.Disposable,
		Recommended: st.Recommended,
	}
}

// AuditEntryResponse is one audit trail entry.
type AuditEntryResponse struct {
	ID       int64           `json:"id"`
	Action   string          `json:"action"`
	UserID   int64           `json:"userId"`
	UserName string          `json:"userName,omitempty"`
	Changes  json.RawMessage `json:"changes,omitempty"`
	Inserted time.Time       `json:"inserted"`
}

// FromAuditEntry maps an audit entry to its response shape.
func FromAuditEntry(e postgres.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:       e.ID,
		Action:   string(e.Action),
		UserID:   e.UserID,
		UserName: e.UserName,
		Changes:  e.Changes,
		Inserted: e.Inserted,
	}
}
