package models

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to callers. All are recoverable user-input
// conditions; none leaves partial state behind.
var (
	ErrEmptyCart            = errors.New("cart must contain at least one line")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidPrice         = errors.New("price must be positive")
)

// InsufficientStockError carries the shortfall details for a failed
// reservation. It matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested=%d, available=%d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
