package location

import (
	"context"
	"fmt"

	"nordlager/internal/core/tx"
	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/catalogs/product"
	"nordlager/internal/domain/ledger"
	"nordlager/pkg/logger"
)

// Service provides business operations for locations, including
// provisioning of the default resources a fresh location needs.
type Service struct {
	txManager  tx.Manager
	repo       Repository
	placements placement.Repository
	batches    batch.Repository
	products   product.Repository
	ledger     *ledger.Service
}

// NewService creates a new location service.
func NewService(
	txManager tx.Manager,
	repo Repository,
	placements placement.Repository,
	batches batch.Repository,
	products product.Repository,
	ledgerSvc *ledger.Service,
) *Service {
	return &Service{
		txManager:  txManager,
		repo:       repo,
		placements: placements,
		batches:    batches,
		products:   products,
		ledger:     ledgerSvc,
	}
}

// Create provisions a location in one transaction: the location row, its
// "-" placement and batch, and zero-quantity ledger rows for every product
// of the customer. The zero rows make a fresh location immediately visible
// in stock overviews.
func (s *Service) Create(ctx context.Context, customerID int64, name, address string) (*Location, error) {
	l := New(customerID, name, address)
	if err := l.Validate(); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, l); err != nil {
			return fmt.Errorf("create location: %w", err)
		}

		defaultPlacement := placement.New(l.ID, placement.DefaultName)
		if err := s.placements.Create(ctx, defaultPlacement); err != nil {
			return fmt.Errorf("seed default placement: %w", err)
		}
		defaultBatch := batch.New(l.ID, batch.DefaultName)
		if err := s.batches.Create(ctx, defaultBatch); err != nil {
			return fmt.Errorf("seed default batch: %w", err)
		}

		products, err := s.products.ListActiveByCustomer(ctx, customerID)
		if err != nil {
			return fmt.Errorf("list customer products: %w", err)
		}
		productIDs := make([]int64, 0, len(products))
		for _, p := range products {
			productIDs = append(productIDs, p.ID)
		}
		return s.ledger.SeedZeroRows(ctx, customerID, productIDs, l.ID, defaultPlacement.ID, defaultBatch.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "location provisioned",
		"location_id", l.ID,
		"customer_id", customerID,
		"name", name,
	)
	return l, nil
}

// Get returns a location by id.
func (s *Service) Get(ctx context.Context, locationID string) (*Location, error) {
	return s.repo.GetByID(ctx, locationID)
}

// ListByCustomer returns all locations of a customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]Location, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// SetBarred toggles the barred flag.
func (s *Service) SetBarred(ctx context.Context, locationID string, barred bool) error {
	return s.repo.SetBarred(ctx, locationID, barred)
}
