package service

import (
	"context"

	"pos-service/internal/models"
	"pos-service/internal/redisclient"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// InventoryLedger is the single source of truth for product stock.
// All stock mutations go through it; the cache is read-side only and is
// never consulted for reservation decisions.
type InventoryLedger struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewInventoryLedger creates a new inventory ledger
func NewInventoryLedger(store *store.Store, cache *redisclient.Client) *InventoryLedger {
	return &InventoryLedger{
		store:  store,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// GetProduct retrieves a product by ID
func (il *InventoryLedger) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	return il.store.GetProductByID(ctx, productID)
}

// Reserve decrements stock for a product inside the caller's transaction.
// The product row is locked first so concurrent reservations against the
// same product serialize; the locked product is returned so the caller
// can snapshot its price. Fails with models.ErrProductNotFound or a
// models.InsufficientStockError without mutating anything.
func (il *InventoryLedger) Reserve(ctx context.Context, tx *sqlx.Tx, productID int64, quantity int) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "InventoryLedger.Reserve")
	defer span.End()

	product, err := il.store.LockProduct(ctx, tx, productID)
	if err != nil {
		return nil, err
	}

	if err := il.store.ReserveStockTx(ctx, tx, productID, quantity); err != nil {
		util.StockReservationsFailed.WithLabelValues(reserveFailureReason(err)).Inc()
		return nil, err
	}

	product.Stock -= quantity
	return product, nil
}

// Release increments stock for a product inside the caller's transaction
// (compensation for a prior reservation).
func (il *InventoryLedger) Release(ctx context.Context, tx *sqlx.Tx, productID int64, quantity int) error {
	ctx, span := util.StartSpan(ctx, "InventoryLedger.Release")
	defer span.End()

	return il.store.ReleaseStockTx(ctx, tx, productID, quantity)
}

// AddStock restocks a product outside the sale workflow
func (il *InventoryLedger) AddStock(ctx context.Context, productID int64, quantity int) (*models.Product, error) {
	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	product, err := il.store.AddStock(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	il.refreshCache(ctx, product)
	return product, nil
}

// RefreshCache reloads a product's stock into the cache
func (il *InventoryLedger) RefreshCache(ctx context.Context, productID int64) error {
	product, err := il.store.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	il.refreshCache(ctx, product)
	return nil
}

func (il *InventoryLedger) refreshCache(ctx context.Context, product *models.Product) {
	if err := il.cache.SetStock(ctx, product.ID, product.Stock); err != nil {
		il.logger.Warn("Failed to refresh stock cache",
			zap.Int64("product_id", product.ID),
			zap.Error(err))
	}
}

// EvictCache drops a product's cached stock, e.g. after deletion
func (il *InventoryLedger) EvictCache(ctx context.Context, productID int64) {
	if err := il.cache.DeleteStock(ctx, productID); err != nil {
		il.logger.Warn("Failed to evict stock cache",
			zap.Int64("product_id", productID),
			zap.Error(err))
	}
}

// GetStockCached returns a product's stock from the cache, falling back
// to the database on a miss.
func (il *InventoryLedger) GetStockCached(ctx context.Context, productID int64) (int, error) {
	stock, err := il.cache.GetStock(ctx, productID)
	if err == nil {
		return stock, nil
	}

	product, err := il.store.GetProductByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	il.refreshCache(ctx, product)
	return product.Stock, nil
}

// LowStockProducts lists products with stock under the threshold
func (il *InventoryLedger) LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	return il.store.GetProductsBelowStock(ctx, threshold)
}

// SyncCacheFromStore loads every product's stock into the cache,
// typically at startup.
func (il *InventoryLedger) SyncCacheFromStore(ctx context.Context) error {
	products, err := il.store.GetProducts(ctx)
	if err != nil {
		return err
	}

	for i := range products {
		il.refreshCache(ctx, &products[i])
	}

	il.logger.Info("Stock cache synchronized", zap.Int("count", len(products)))
	return nil
}

func reserveFailureReason(err error) string {
	switch {
	case isNotFound(err):
		return "product_not_found"
	case isInsufficientStock(err):
		return "insufficient_stock"
	}
	return "error"
}
