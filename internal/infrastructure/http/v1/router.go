// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"nordlager/internal/domain/catalogs/batch"
	"nordlager/internal/domain/catalogs/location"
	"nordlager/internal/domain/catalogs/placement"
	"nordlager/internal/domain/history"
	"nordlager/internal/domain/ledger"
	"nordlager/internal/domain/movement"
	"nordlager/internal/domain/reorder"
	"nordlager/internal/infrastructure/http/v1/handlers"
	"nordlager/internal/infrastructure/http/v1/middleware"
	"nordlager/internal/infrastructure/storage/postgres"
	"nordlager/internal/infrastructure/storage/postgres/catalog_repo"
	"nordlager/internal/infrastructure/storage/postgres/ledger_repo"
	"nordlager/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager manages database transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// IdempotencyEnabled enables idempotency middleware
	IdempotencyEnabled bool

	// IdempotencyTTL is how long completed keys stay replayable.
	// Zero means the default of 10 minutes.
	IdempotencyTTL time.Duration
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no caller identity required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share the one TxManager so that service-level
	// transactions span every repo call made inside them.
	placementRepo := catalog_repo.NewPlacementRepo(cfg.TxManager)
	batchRepo := catalog_repo.NewBatchRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	userRepo := catalog_repo.NewUserRepo(cfg.TxManager)
	locationRepo := catalog_repo.NewLocationRepo(cfg.TxManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(cfg.TxManager)
	historyRepo := ledger_repo.NewHistoryRepo(cfg.TxManager)
	reorderRepo := ledger_repo.NewReorderRepo(cfg.TxManager)

	auditService, err := postgres.NewAuditService(cfg.TxManager)
	if err != nil {
		return nil, err
	}

	ledgerService := ledger.NewService(ledgerRepo)
	placementService := placement.NewService(placementRepo)
	batchService := batch.NewService(batchRepo)
	reorderService := reorder.NewService(reorderRepo)
	locationService := location.NewService(
		cfg.TxManager, locationRepo, placementRepo, batchRepo, productRepo, ledgerService,
	)

	resolver := movement.NewResolver(placementRepo, batchRepo)
	recorder := history.NewRecorder(historyRepo, cfg.TxManager, productRepo, userRepo, placementRepo, batchRepo)
	engine := movement.NewEngine(cfg.TxManager, resolver, ledgerService, recorder, reorderRepo)

	baseHandler := handlers.NewBaseHandler()
	inventoryHandler := handlers.NewInventoryHandler(baseHandler, engine, ledgerService, recorder)
	placementHandler := handlers.NewPlacementHandler(baseHandler, placementService, auditService)
	batchHandler := handlers.NewBatchHandler(baseHandler, batchService, auditService)
	locationHandler := handlers.NewLocationHandler(baseHandler, locationService, auditService)
	reorderHandler := handlers.NewReorderHandler(baseHandler, reorderService, auditService)
	auditHandler := handlers.NewAuditHandler(baseHandler, auditService)

	// API v1
	api := router.Group("/api/v1")
	api.Use(middleware.UserContext())

	if cfg.IdempotencyEnabled {
		ttl := cfg.IdempotencyTTL
		if ttl <= 0 {
			ttl = 10 * time.Minute
		}
		store := postgres.NewIdempotencyStore(cfg.TxManager, ttl)
		api.Use(middleware.Idempotency(store))
	}

	{
		inventory := api.Group("/inventory")
		inventory.POST("/regulate", inventoryHandler.Regulate)
		inventory.POST("/move", inventoryHandler.Move)
		inventory.POST("/move-between", inventoryHandler.MoveBetween)

		locations := api.Group("/locations")
		locations.POST("", locationHandler.Create)
		locations.GET("", locationHandler.List)
		locations.GET("/:id", locationHandler.Get)
		locations.PATCH("/:id/barred", locationHandler.SetBarred)
		locations.GET("/:id/inventory", inventoryHandler.ListByLocation)
		locations.GET("/:id/history", inventoryHandler.History)
		locations.GET("/:id/placements", placementHandler.List)
		locations.GET("/:id/batches", batchHandler.List)
		locations.GET("/:id/reorders", reorderHandler.List)
		locations.DELETE("/:id/reorders/:productId", reorderHandler.Remove)

		api.POST("/placements", placementHandler.Create)
		api.PATCH("/placements/:id/barred", placementHandler.SetBarred)

		api.POST("/batches", batchHandler.Create)
		api.PATCH("/batches/:id/barred", batchHandler.SetBarred)

		api.PUT("/reorders", reorderHandler.Set)

		api.GET("/audit/:entityType/:entityId", auditHandler.History)
	}

	return router, nil
}
