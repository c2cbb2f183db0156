package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCash))
	assert.True(t, ValidPaymentMethod(PaymentMethodCard))
	assert.True(t, ValidPaymentMethod(PaymentMethodTransfer))

	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("check"))
	assert.False(t, ValidPaymentMethod("CASH"))
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{ProductID: 7, Requested: 20, Available: 10}

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrProductNotFound))
	assert.Contains(t, err.Error(), "requested=20")
	assert.Contains(t, err.Error(), "available=10")
}
