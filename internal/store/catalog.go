package store

import (
	"context"
	"database/sql"
	"fmt"

	"pos-service/internal/models"
)

// CreateProduct inserts a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, price, stock)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, product, query,
		product.Name, product.Price, product.Stock)
}

// UpdateProduct applies the mutable catalog fields of a product
func (s *Store) UpdateProduct(ctx context.Context, id int64, upd models.ProductUpdate) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, `
		UPDATE products
		SET name = COALESCE($1, name), price = COALESCE($2, price)
		WHERE id = $3
		RETURNING *`,
		upd.Name, upd.Price, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, models.ErrProductNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", id, models.ErrProductNotFound)
	}
	return nil
}

// CreateCustomer inserts a new customer
func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, customer, query, customer.Name, customer.Email)
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %d: %w", id, models.ErrCustomerNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomerByEmail retrieves a customer by email
func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %s: %w", email, models.ErrCustomerNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomers retrieves all customers
func (s *Store) GetCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.SelectContext(ctx, &customers, "SELECT * FROM customers ORDER BY id")
	return customers, err
}

// UpdateCustomer applies the mutable fields of a customer
func (s *Store) UpdateCustomer(ctx context.Context, id int64, upd models.CustomerUpdate) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, `
		UPDATE customers
		SET name = COALESCE($1, name), email = COALESCE($2, email)
		WHERE id = $3
		RETURNING *`,
		upd.Name, upd.Email, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %d: %w", id, models.ErrCustomerNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer
func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("customer %d: %w", id, models.ErrCustomerNotFound)
	}
	return nil
}

// CreateSupplier inserts a new supplier
func (s *Store) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	query := `
		INSERT INTO suppliers (name, phone, email, address, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return s.db.GetContext(ctx, &supplier.ID, query,
		supplier.Name, supplier.Phone, supplier.Email, supplier.Address, supplier.Description)
}

// GetSupplierByID retrieves a supplier by ID
func (s *Store) GetSupplierByID(ctx context.Context, id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.GetContext(ctx, &supplier, "SELECT * FROM suppliers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier %d: %w", id, models.ErrSupplierNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliers retrieves all suppliers
func (s *Store) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.SelectContext(ctx, &suppliers, "SELECT * FROM suppliers ORDER BY id")
	return suppliers, err
}

// UpdateSupplier applies the mutable fields of a supplier
func (s *Store) UpdateSupplier(ctx context.Context, id int64, upd models.SupplierUpdate) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.GetContext(ctx, &supplier, `
		UPDATE suppliers
		SET name = COALESCE($1, name),
		    phone = COALESCE($2, phone),
		    email = COALESCE($3, email),
		    address = COALESCE($4, address),
		    description = COALESCE($5, description)
		WHERE id = $6
		RETURNING *`,
		upd.Name, upd.Phone, upd.Email, upd.Address, upd.Description, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("supplier %d: %w", id, models.ErrSupplierNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// DeleteSupplier removes a supplier
func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("supplier %d: %w", id, models.ErrSupplierNotFound)
	}
	return nil
}

// CreateUser inserts a new user (employee or admin)
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, role, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, user, query,
		user.Username, user.Email, user.Role, user.Active)
}

// GetUserByID retrieves a user (employee or admin) by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
