package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SaleService converts carts into persisted sales and supports
// compensating cancellation. Creation and cancellation each run inside a
// single database transaction: on any failure the ledger and the sale
// store are left exactly as they were before the call.
type SaleService struct {
	store          *store.Store
	ledger         *InventoryLedger
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(store *store.Store, ledger *InventoryLedger, eventPublisher *broker.EventPublisher) *SaleService {
	return &SaleService{
		store:          store,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CartLine is a requested (product, quantity) pair prior to finalization
type CartLine struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	CustomerID    int64      `json:"customer_id" binding:"required"`
	EmployeeID    int64      `json:"employee_id" binding:"required"`
	PaymentMethod string     `json:"payment_method" binding:"required"`
	Lines         []CartLine `json:"lines"`
}

// validateCart rejects requests before any store access
func validateCart(req *CreateSaleRequest) error {
	if len(req.Lines) == 0 {
		return models.ErrEmptyCart
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%q: %w", req.PaymentMethod, models.ErrInvalidPaymentMethod)
	}
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("product %d: %w", line.ProductID, models.ErrInvalidQuantity)
		}
	}
	return nil
}

// CreateSale builds a sale from the cart: it reserves stock for every
// line in input order, snapshots unit prices, recomputes subtotals and
// the total, and commits the sale as completed. Any failure rolls the
// whole operation back.
func (s *SaleService) CreateSale(ctx context.Context, req *CreateSaleRequest) (*models.Sale, error) {
	ctx, span := util.StartSpan(ctx, "SaleService.CreateSale")
	defer span.End()

	start := time.Now()
	defer func() {
		util.SaleProcessingLatency.Observe(time.Since(start).Seconds())
	}()

	if err := validateCart(req); err != nil {
		util.SalesFailedTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	sale := &models.Sale{
		CustomerID:    req.CustomerID,
		EmployeeID:    req.EmployeeID,
		TotalAmount:   0,
		PaymentMethod: req.PaymentMethod,
		Status:        models.SaleStatusPending,
	}

	err := s.store.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.store.CreateSaleTx(ctx, tx, sale); err != nil {
			return fmt.Errorf("failed to create sale: %w", err)
		}

		var total int64
		items := make([]models.SaleItem, 0, len(req.Lines))

		for _, line := range req.Lines {
			product, err := s.ledger.Reserve(ctx, tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}

			// Snapshot the current price; the subtotal is always
			// recomputed here, never taken from the request.
			item := models.SaleItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
				Subtotal:  int64(line.Quantity) * product.Price,
			}

			if err := s.store.CreateSaleItemTx(ctx, tx, &item); err != nil {
				return fmt.Errorf("failed to create sale item: %w", err)
			}

			total += item.Subtotal
			items = append(items, item)
		}

		if err := s.store.FinalizeSaleTx(ctx, tx, sale.ID, total, models.SaleStatusCompleted); err != nil {
			return fmt.Errorf("failed to finalize sale: %w", err)
		}

		sale.TotalAmount = total
		sale.Status = models.SaleStatusCompleted
		sale.Items = items
		return nil
	})
	if err != nil {
		util.SalesFailedTotal.WithLabelValues(failureReason(err)).Inc()
		return nil, err
	}

	util.SalesCompletedTotal.Inc()
	s.logger.Info("Sale completed",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("customer_id", sale.CustomerID),
		zap.Int64("total_amount", sale.TotalAmount),
		zap.Int("items", len(sale.Items)))

	s.publishSaleCompleted(ctx, sale)

	return sale, nil
}

// CancelSale reverses a completed sale: every item's stock is released
// and the status flips to cancelled, atomically. Cancelling a missing or
// non-completed sale is a silent no-op returning false.
func (s *SaleService) CancelSale(ctx context.Context, saleID int64) (bool, error) {
	ctx, span := util.StartSpan(ctx, "SaleService.CancelSale")
	defer span.End()

	var cancelled *models.Sale

	err := s.store.RunInTx(ctx, func(tx *sqlx.Tx) error {
		sale, err := s.store.LockSale(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if sale == nil || sale.Status != models.SaleStatusCompleted {
			return nil
		}

		items, err := s.store.GetSaleItemsTx(ctx, tx, saleID)
		if err != nil {
			return fmt.Errorf("failed to load sale items: %w", err)
		}

		for _, item := range items {
			if err := s.ledger.Release(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.store.UpdateSaleStatusTx(ctx, tx, saleID, models.SaleStatusCancelled); err != nil {
			return fmt.Errorf("failed to update sale status: %w", err)
		}

		sale.Status = models.SaleStatusCancelled
		sale.Items = items
		cancelled = sale
		return nil
	})
	if err != nil {
		return false, err
	}
	if cancelled == nil {
		return false, nil
	}

	util.SalesCancelledTotal.Inc()
	s.logger.Info("Sale cancelled",
		zap.Int64("sale_id", cancelled.ID),
		zap.Int("items", len(cancelled.Items)))

	s.publishSaleCancelled(ctx, cancelled)

	return true, nil
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, saleID int64) (*models.Sale, error) {
	sale, err := s.store.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.GetSaleItemsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	sale.Items = items
	return sale, nil
}

// GetSalesByCustomer retrieves a customer's sales, newest first
func (s *SaleService) GetSalesByCustomer(ctx context.Context, customerID int64) ([]models.Sale, error) {
	return s.store.GetSalesByCustomerID(ctx, customerID)
}

// GetSalesInRange retrieves sales between start and end, inclusive
func (s *SaleService) GetSalesInRange(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	return s.store.GetSalesInRange(ctx, start, end)
}

// TotalAmountInRange sums sale totals between start and end, inclusive.
// Cancelled sales are included.
func (s *SaleService) TotalAmountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	return s.store.TotalAmountInRange(ctx, start, end)
}

func (s *SaleService) publishSaleCompleted(ctx context.Context, sale *models.Sale) {
	event := &models.SaleCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleCompleted,
			Timestamp: time.Now(),
		},
		SaleID:        sale.ID,
		CustomerID:    sale.CustomerID,
		EmployeeID:    sale.EmployeeID,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: sale.PaymentMethod,
		Items:         itemData(sale.Items),
	}

	if err := s.eventPublisher.PublishSaleCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleCompleted event", zap.Error(err))
	}
}

func (s *SaleService) publishSaleCancelled(ctx context.Context, sale *models.Sale) {
	event := &models.SaleCancelledEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleCancelled,
			Timestamp: time.Now(),
		},
		SaleID: sale.ID,
		Items:  itemData(sale.Items),
	}

	if err := s.eventPublisher.PublishSaleCancelled(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleCancelled event", zap.Error(err))
	}
}

func itemData(items []models.SaleItem) []models.SaleItemData {
	data := make([]models.SaleItemData, 0, len(items))
	for _, item := range items {
		data = append(data, models.SaleItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return data
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, models.ErrInvalidPaymentMethod):
		return "invalid_payment_method"
	case errors.Is(err, models.ErrInvalidQuantity):
		return "invalid_quantity"
	case isNotFound(err):
		return "product_not_found"
	case isInsufficientStock(err):
		return "insufficient_stock"
	}
	return "db_error"
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrProductNotFound)
}

func isInsufficientStock(err error) bool {
	return errors.Is(err, models.ErrInsufficientStock)
}
