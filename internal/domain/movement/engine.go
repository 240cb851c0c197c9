package movement

import (
	"context"
	"fmt"

	"nordlager/internal/core/apperror"
	"nordlager/internal/core/entity"
	"nordlager/internal/core/tx"
	"nordlager/internal/core/types"
	"nordlager/internal/domain/history"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/domain/reorder"
	"nordlager/pkg/logger"
)

// Engine orchestrates multi-row ledger plus history changes as single
// transactions. Fixed step order inside every transaction: reorder drain,
// then ledger delta, then history write. A failed history write must still
// be able to roll the ledger delta back, which is only possible while the
// transaction is open.
type Engine struct {
	txManager tx.Manager
	resolver  *Resolver
	ledger    *ledger.Service
	recorder  *history.Recorder
	reorders  reorder.Repository
}

// NewEngine creates a movement engine.
func NewEngine(
	txManager tx.Manager,
	resolver *Resolver,
	ledgerSvc *ledger.Service,
	recorder *history.Recorder,
	reorders reorder.Repository,
) *Engine {
	return &Engine{
		txManager: txManager,
		resolver:  resolver,
		ledger:    ledgerSvc,
		recorder:  recorder,
		reorders:  reorders,
	}
}

// RegulateInput is a direct quantity adjustment at one ledger key.
// Amount is signed and is the ledger truth: incoming stock is positive,
// outgoing negative. Zero amounts are permitted and still produce history.
type RegulateInput struct {
	CustomerID int64
	UserID     int64
	LocationID string
	ProductID  int64
	Placement  Ref
	Batch      Ref
	Kind       entity.MovementKind
	Platform   entity.Platform
	Amount     types.Quantity
	Reference  string
}

// MoveInput transfers quantity between two placements within one location.
// The batch dimension stays fixed. Amount is the transferred magnitude.
type MoveInput struct {
	CustomerID    int64
	UserID        int64
	LocationID    string
	ProductID     int64
	FromPlacement Ref
	ToPlacement   Ref
	Batch         Ref
	Platform      entity.Platform
	Amount        types.Quantity
	Reference     string
}

// CrossMoveInput transfers quantity between two locations. Placements and
// batches are scoped per location, so the origin and destination references
// resolve independently.
type CrossMoveInput struct {
	CustomerID     int64
	UserID         int64
	FromLocationID string
	ToLocationID   string
	ProductID      int64
	FromPlacement  Ref
	FromBatch      Ref
	ToPlacement    Ref
	ToBatch        Ref
	Platform       entity.Platform
	Amount         types.Quantity
	Reference      string
}

// Regulate applies one signed delta and records one history row.
func (e *Engine) Regulate(ctx context.Context, in RegulateInput) (*history.Record, error) {
	if !in.Kind.Regulating() {
		return nil, apperror.NewValidation(fmt.Sprintf("movement kind %q is not allowed on regulate", in.Kind))
	}
	if !in.Platform.Valid() {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown platform %q", in.Platform))
	}

	placementID, err := e.resolver.Placement(ctx, in.LocationID, in.Placement)
	if err != nil {
		return nil, err
	}
	batchID, err := e.resolver.Batch(ctx, in.LocationID, in.Batch)
	if err != nil {
		return nil, err
	}

	key := ledger.Key{
		ProductID:   in.ProductID,
		PlacementID: placementID,
		BatchID:     batchID,
		LocationID:  in.LocationID,
		CustomerID:  in.CustomerID,
	}

	var rec *history.Record
	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err = e.applyLeg(ctx, key, in.Kind, in.Platform, in.UserID, in.Amount, in.Reference)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement regulated",
		"type", string(in.Kind),
		"product_id", in.ProductID,
		"location_id", in.LocationID,
		"amount", in.Amount.Float64(),
	)
	return rec, nil
}

// MoveWithinLocation debits one placement and credits another in a single
// transaction, recording two flyt rows whose amounts sum to zero.
func (e *Engine) MoveWithinLocation(ctx context.Context, in MoveInput) ([]*history.Record, error) {
	if !in.Platform.Valid() {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown platform %q", in.Platform))
	}

	fromID, err := e.resolver.Placement(ctx, in.LocationID, in.FromPlacement)
	if err != nil {
		return nil, err
	}
	toID, err := e.resolver.Placement(ctx, in.LocationID, in.ToPlacement)
	if err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, apperror.NewValidation("move requires two distinct placements")
	}
	batchID, err := e.resolver.Batch(ctx, in.LocationID, in.Batch)
	if err != nil {
		return nil, err
	}

	source := ledger.Key{
		ProductID:   in.ProductID,
		PlacementID: fromID,
		BatchID:     batchID,
		LocationID:  in.LocationID,
		CustomerID:  in.CustomerID,
	}
	dest := source
	dest.PlacementID = toID

	var out, inRec *history.Record
	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := e.ledger.ApplyDelta(ctx, source, in.Amount.Neg()); err != nil {
			return err
		}
		if err := e.ledger.ApplyDelta(ctx, dest, in.Amount); err != nil {
			return err
		}

		out, err = e.record(ctx, source, entity.MovementFlyt, in.Platform, in.UserID, in.Amount.Neg(), in.Reference)
		if err != nil {
			return err
		}
		inRec, err = e.record(ctx, dest, entity.MovementFlyt, in.Platform, in.UserID, in.Amount, in.Reference)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement transferred within location",
		"product_id", in.ProductID,
		"location_id", in.LocationID,
		"from_placement_id", fromID,
		"to_placement_id", toID,
		"amount", in.Amount.Float64(),
	)
	return []*history.Record{out, inRec}, nil
}

// MoveBetweenLocations composes an outgoing leg at the origin with an
// incoming leg at the destination in one transaction. The incoming leg
// drains any open reorder at the destination, exactly as a direct receipt
// would.
func (e *Engine) MoveBetweenLocations(ctx context.Context, in CrossMoveInput) ([]*history.Record, error) {
	if !in.Platform.Valid() {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown platform %q", in.Platform))
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, apperror.NewValidation("cross-location move requires two distinct locations")
	}

	fromPlacementID, err := e.resolver.Placement(ctx, in.FromLocationID, in.FromPlacement)
	if err != nil {
		return nil, err
	}
	fromBatchID, err := e.resolver.Batch(ctx, in.FromLocationID, in.FromBatch)
	if err != nil {
		return nil, err
	}
	toPlacementID, err := e.resolver.Placement(ctx, in.ToLocationID, in.ToPlacement)
	if err != nil {
		return nil, err
	}
	toBatchID, err := e.resolver.Batch(ctx, in.ToLocationID, in.ToBatch)
	if err != nil {
		return nil, err
	}

	source := ledger.Key{
		ProductID:   in.ProductID,
		PlacementID: fromPlacementID,
		BatchID:     fromBatchID,
		LocationID:  in.FromLocationID,
		CustomerID:  in.CustomerID,
	}
	dest := ledger.Key{
		ProductID:   in.ProductID,
		PlacementID: toPlacementID,
		BatchID:     toBatchID,
		LocationID:  in.ToLocationID,
		CustomerID:  in.CustomerID,
	}

	var out, inRec *history.Record
	err = e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		out, err = e.applyLeg(ctx, source, entity.MovementAfgang, in.Platform, in.UserID, in.Amount.Neg(), in.Reference)
		if err != nil {
			return err
		}
		inRec, err = e.applyLeg(ctx, dest, entity.MovementTilgang, in.Platform, in.UserID, in.Amount, in.Reference)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "movement transferred between locations",
		"product_id", in.ProductID,
		"from_location_id", in.FromLocationID,
		"to_location_id", in.ToLocationID,
		"amount", in.Amount.Float64(),
	)
	return []*history.Record{out, inRec}, nil
}

// applyLeg runs one regulate leg inside an already-open transaction:
// reorder drain (tilgang only), ledger delta, history write, in that order.
func (e *Engine) applyLeg(ctx context.Context, key ledger.Key, kind entity.MovementKind, platform entity.Platform, userID int64, amount types.Quantity, reference string) (*history.Record, error) {
	if kind == entity.MovementAfgang {
		// Issuing from a key that never held stock is a caller mistake,
		// not an oversell.
		found, err := e.ledger.Exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, apperror.NewNotFound("inventory row", fmt.Sprintf("product %d at location %s", key.ProductID, key.LocationID))
		}
	}

	if kind == entity.MovementTilgang && amount.IsPositive() {
		if err := e.reorders.DecrementOrdered(ctx, key.ProductID, key.LocationID, amount); err != nil {
			return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule, fmt.Sprintf("drain reorder: %v", err))
		}
	}

	if err := e.ledger.ApplyDelta(ctx, key, amount); err != nil {
		return nil, err
	}

	return e.record(ctx, key, kind, platform, userID, amount, reference)
}

func (e *Engine) record(ctx context.Context, key ledger.Key, kind entity.MovementKind, platform entity.Platform, userID int64, amount types.Quantity, reference string) (*history.Record, error) {
	return e.recorder.Record(ctx, history.Event{
		CustomerID:  key.CustomerID,
		LocationID:  key.LocationID,
		UserID:      userID,
		ProductID:   key.ProductID,
		PlacementID: key.PlacementID,
		BatchID:     key.BatchID,
		Kind:        kind,
		Platform:    platform,
		Amount:      amount,
		Reference:   reference,
	})
}
