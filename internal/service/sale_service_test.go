package service

import (
	"context"
	"testing"

	"pos-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCartEmpty(t *testing.T) {
	req := &CreateSaleRequest{
		CustomerID:    1,
		EmployeeID:    1,
		PaymentMethod: models.PaymentMethodCash,
		Lines:         nil,
	}

	err := validateCart(req)
	assert.ErrorIs(t, err, models.ErrEmptyCart)
}

func TestValidateCartInvalidPaymentMethod(t *testing.T) {
	req := &CreateSaleRequest{
		CustomerID:    1,
		EmployeeID:    1,
		PaymentMethod: "bitcoin",
		Lines:         []CartLine{{ProductID: 1, Quantity: 1}},
	}

	err := validateCart(req)
	assert.ErrorIs(t, err, models.ErrInvalidPaymentMethod)
}

func TestValidateCartNonPositiveQuantity(t *testing.T) {
	req := &CreateSaleRequest{
		CustomerID:    1,
		EmployeeID:    1,
		PaymentMethod: models.PaymentMethodCard,
		Lines:         []CartLine{{ProductID: 1, Quantity: 0}},
	}

	err := validateCart(req)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestValidateCartOK(t *testing.T) {
	req := &CreateSaleRequest{
		CustomerID:    1,
		EmployeeID:    1,
		PaymentMethod: models.PaymentMethodTransfer,
		Lines: []CartLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}

	assert.NoError(t, validateCart(req))
}

// Validation failures must be returned before any store access; a service
// with no store wired proves the ledger is never touched.
func TestCreateSaleRejectsBeforeStore(t *testing.T) {
	s := &SaleService{}

	_, err := s.CreateSale(context.Background(), &CreateSaleRequest{
		CustomerID:    1,
		EmployeeID:    1,
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	_, err = s.CreateSale(context.Background(), &CreateSaleRequest{
		CustomerID:    1,
		EmployeeID:    1,
		PaymentMethod: "iou",
		Lines:         []CartLine{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, models.ErrInvalidPaymentMethod)
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "empty_cart", failureReason(models.ErrEmptyCart))
	assert.Equal(t, "invalid_payment_method", failureReason(models.ErrInvalidPaymentMethod))
	assert.Equal(t, "product_not_found", failureReason(models.ErrProductNotFound))
	assert.Equal(t, "insufficient_stock",
		failureReason(&models.InsufficientStockError{ProductID: 1, Requested: 3, Available: 1}))
	assert.Equal(t, "db_error", failureReason(assert.AnError))
}

func TestItemData(t *testing.T) {
	items := []models.SaleItem{
		{ProductID: 1, Quantity: 4, UnitPrice: 200, Subtotal: 800},
		{ProductID: 2, Quantity: 1, UnitPrice: 150, Subtotal: 150},
	}

	data := itemData(items)
	assert.Len(t, data, 2)
	assert.Equal(t, int64(1), data[0].ProductID)
	assert.Equal(t, int64(800), data[0].Subtotal)
	assert.Equal(t, int64(150), data[1].Subtotal)
}
