package models

import "time"

// Event types
const (
	EventTypeSaleCompleted = "SALE_COMPLETED"
	EventTypeSaleCancelled = "SALE_CANCELLED"
	EventTypeStockLow      = "STOCK_LOW"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleCompletedEvent published after a sale commits
type SaleCompletedEvent struct {
	BaseEvent
	SaleID        int64          `json:"sale_id"`
	CustomerID    int64          `json:"customer_id"`
	EmployeeID    int64          `json:"employee_id"`
	TotalAmount   int64          `json:"total_amount"`
	PaymentMethod string         `json:"payment_method"`
	Items         []SaleItemData `json:"items"`
}

// SaleCancelledEvent published after a cancellation commits
type SaleCancelledEvent struct {
	BaseEvent
	SaleID int64          `json:"sale_id"`
	Items  []SaleItemData `json:"items"`
}

// StockLowEvent published when a product drops below the alert threshold
type StockLowEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
}

// SaleItemData represents item data in events
type SaleItemData struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}
