package service

import (
	"context"
	"testing"

	"pos-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateProductValidation(t *testing.T) {
	cs := &CatalogService{}
	ctx := context.Background()

	_, err := cs.CreateProduct(ctx, &CreateProductRequest{Name: "  ", Price: 100})
	assert.Error(t, err)

	_, err = cs.CreateProduct(ctx, &CreateProductRequest{Name: "soap", Price: 0})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	_, err = cs.CreateProduct(ctx, &CreateProductRequest{Name: "soap", Price: -5})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)

	_, err = cs.CreateProduct(ctx, &CreateProductRequest{Name: "soap", Price: 100, InitialStock: -1})
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestUpdateProductValidation(t *testing.T) {
	cs := &CatalogService{}
	ctx := context.Background()

	empty := ""
	_, err := cs.UpdateProduct(ctx, 1, models.ProductUpdate{Name: &empty})
	assert.Error(t, err)

	zero := int64(0)
	_, err = cs.UpdateProduct(ctx, 1, models.ProductUpdate{Price: &zero})
	assert.ErrorIs(t, err, models.ErrInvalidPrice)
}

func TestAddStockRejectsNonPositiveQuantity(t *testing.T) {
	ledger := &InventoryLedger{}

	_, err := ledger.AddStock(context.Background(), 1, 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	_, err = ledger.AddStock(context.Background(), 1, -3)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}
