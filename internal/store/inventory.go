package store

import (
	"context"
	"database/sql"
	"fmt"

	"pos-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, models.ErrProductNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id")
	return products, err
}

// GetProductsBelowStock retrieves products with stock under the threshold
func (s *Store) GetProductsBelowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE stock < $1 ORDER BY stock, id", threshold)
	return products, err
}

// LockProduct locks a product row for update within tx and returns it.
// Concurrent reservations against the same product serialize on this lock.
func (s *Store) LockProduct(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Product, error) {
	var product models.Product
	err := tx.GetContext(ctx, &product,
		"SELECT * FROM products WHERE id = $1 FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, models.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock product %d: %w", id, err)
	}
	return &product, nil
}

// ReserveStockTx decrements stock within tx. The conditional update only
// matches when enough stock remains, so the check and the decrement are a
// single atomic statement; zero affected rows means insufficient stock.
func (s *Store) ReserveStockTx(ctx context.Context, tx *sqlx.Tx, productID int64, quantity int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1",
		quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check reservation result: %w", err)
	}
	if affected == 0 {
		var available int
		if err := tx.GetContext(ctx, &available,
			"SELECT stock FROM products WHERE id = $1", productID); err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("product %d: %w", productID, models.ErrProductNotFound)
			}
			return err
		}
		return &models.InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: available,
		}
	}
	return nil
}

// ReleaseStockTx increments stock within tx (compensation). The delta
// always matches a prior reservation, so no upper bound is checked.
func (s *Store) ReleaseStockTx(ctx context.Context, tx *sqlx.Tx, productID int64, quantity int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = stock + $1 WHERE id = $2",
		quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", productID, models.ErrProductNotFound)
	}
	return nil
}

// AddStock increments stock outside a sale transaction (restocking)
func (s *Store) AddStock(ctx context.Context, productID int64, quantity int) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"UPDATE products SET stock = stock + $1 WHERE id = $2 RETURNING *",
		quantity, productID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", productID, models.ErrProductNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add stock: %w", err)
	}
	return &product, nil
}
