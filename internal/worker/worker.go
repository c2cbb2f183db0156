package worker

import (
	"context"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/service"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockAlertWorker consumes sale events, refreshes the stock cache for
// the touched products and raises low-stock alerts.
type StockAlertWorker struct {
	consumer       *broker.Consumer
	eventHandler   *broker.EventHandler
	ledger         *service.InventoryLedger
	eventPublisher *broker.EventPublisher
	threshold      int
	logger         *zap.Logger
}

// NewStockAlertWorker creates a new stock alert worker
func NewStockAlertWorker(
	consumer *broker.Consumer,
	ledger *service.InventoryLedger,
	eventPublisher *broker.EventPublisher,
	threshold int,
) *StockAlertWorker {
	w := &StockAlertWorker{
		consumer:       consumer,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		threshold:      threshold,
		logger:         util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnSaleCompleted(w.handleSaleCompleted)
	eventHandler.OnSaleCancelled(w.handleSaleCancelled)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *StockAlertWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting stock alert worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *StockAlertWorker) Stop() error {
	w.logger.Info("Stopping stock alert worker")
	return w.consumer.Close()
}

func (w *StockAlertWorker) handleSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) error {
	for _, item := range event.Items {
		w.refreshAndCheck(ctx, item.ProductID)
	}
	return nil
}

func (w *StockAlertWorker) handleSaleCancelled(ctx context.Context, event *models.SaleCancelledEvent) error {
	for _, item := range event.Items {
		if err := w.ledger.RefreshCache(ctx, item.ProductID); err != nil {
			w.logger.Warn("Failed to refresh stock cache",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
		}
	}
	return nil
}

func (w *StockAlertWorker) refreshAndCheck(ctx context.Context, productID int64) {
	product, err := w.ledger.GetProduct(ctx, productID)
	if err != nil {
		w.logger.Warn("Failed to load product for stock check",
			zap.Int64("product_id", productID),
			zap.Error(err))
		return
	}

	if err := w.ledger.RefreshCache(ctx, productID); err != nil {
		w.logger.Warn("Failed to refresh stock cache",
			zap.Int64("product_id", productID),
			zap.Error(err))
	}

	if product.Stock >= w.threshold {
		return
	}

	util.StockLowAlertsTotal.Inc()
	w.logger.Warn("Product stock below threshold",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock),
		zap.Int("threshold", w.threshold))

	alert := &models.StockLowEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeStockLow,
			Timestamp: time.Now(),
		},
		ProductID: product.ID,
		Name:      product.Name,
		Stock:     product.Stock,
		Threshold: w.threshold,
	}

	if err := w.eventPublisher.PublishStockLow(ctx, alert); err != nil {
		w.logger.Error("Failed to publish StockLow event", zap.Error(err))
	}
}
