package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pos-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateSaleTx inserts a new sale within tx
func (s *Store) CreateSaleTx(ctx context.Context, tx *sqlx.Tx, sale *models.Sale) error {
	query := `
		INSERT INTO sales (customer_id, employee_id, total_amount, payment_method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return tx.GetContext(ctx, sale, query,
		sale.CustomerID, sale.EmployeeID, sale.TotalAmount, sale.PaymentMethod, sale.Status)
}

// CreateSaleItemTx inserts a sale line item within tx
func (s *Store) CreateSaleItemTx(ctx context.Context, tx *sqlx.Tx, item *models.SaleItem) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return tx.GetContext(ctx, &item.ID, query,
		item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
}

// FinalizeSaleTx sets the accumulated total and flips the sale to its
// final status within tx
func (s *Store) FinalizeSaleTx(ctx context.Context, tx *sqlx.Tx, saleID, totalAmount int64, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE sales SET total_amount = $1, status = $2, updated_at = NOW() WHERE id = $3",
		totalAmount, status, saleID)
	return err
}

// LockSale locks a sale row for update within tx. Returns nil (no error)
// when the sale does not exist so cancellation can treat it as a no-op.
func (s *Store) LockSale(ctx context.Context, tx *sqlx.Tx, saleID int64) (*models.Sale, error) {
	var sale models.Sale
	err := tx.GetContext(ctx, &sale,
		"SELECT * FROM sales WHERE id = $1 FOR UPDATE", saleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock sale %d: %w", saleID, err)
	}
	return &sale, nil
}

// UpdateSaleStatusTx updates a sale's status within tx
func (s *Store) UpdateSaleStatusTx(ctx context.Context, tx *sqlx.Tx, saleID int64, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE sales SET status = $1, updated_at = NOW() WHERE id = $2",
		status, saleID)
	return err
}

// GetSaleByID retrieves a sale by ID
func (s *Store) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.GetContext(ctx, &sale, "SELECT * FROM sales WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sale %d: %w", id, models.ErrSaleNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSaleItemsBySaleID retrieves all items for a sale
func (s *Store) GetSaleItemsBySaleID(ctx context.Context, saleID int64) ([]models.SaleItem, error) {
	var items []models.SaleItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM sale_items WHERE sale_id = $1 ORDER BY id", saleID)
	return items, err
}

// GetSaleItemsTx retrieves all items for a sale within tx
func (s *Store) GetSaleItemsTx(ctx context.Context, tx *sqlx.Tx, saleID int64) ([]models.SaleItem, error) {
	var items []models.SaleItem
	err := tx.SelectContext(ctx, &items,
		"SELECT * FROM sale_items WHERE sale_id = $1 ORDER BY id", saleID)
	return items, err
}

// GetSalesInRange retrieves sales with created_at inside [start, end],
// bounds inclusive
func (s *Store) GetSalesInRange(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.SelectContext(ctx, &sales,
		"SELECT * FROM sales WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at",
		start, end)
	return sales, err
}

// TotalAmountInRange sums total_amount over sales in [start, end].
// Cancelled sales are included; see GetSalesInRange for bounds.
func (s *Store) TotalAmountInRange(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := s.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at >= $1 AND created_at <= $2",
		start, end)
	return total, err
}

// GetSalesByCustomerID retrieves sales for a customer
func (s *Store) GetSalesByCustomerID(ctx context.Context, customerID int64) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.SelectContext(ctx, &sales,
		"SELECT * FROM sales WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return sales, err
}
