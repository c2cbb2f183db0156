package service

import (
	"context"
	"fmt"
	"strings"

	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService handles product, customer and supplier CRUD. Product
// stock is not a catalog field; it only moves through the ledger.
type CatalogService struct {
	store  *store.Store
	ledger *InventoryLedger
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, ledger *InventoryLedger) *CatalogService {
	return &CatalogService{
		store:  store,
		ledger: ledger,
		logger: util.GetLogger(),
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Price        int64  `json:"price" binding:"required"`
	InitialStock int    `json:"initial_stock"`
}

// CreateProduct creates a new product with optional initial stock
func (cs *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	if req.Price <= 0 {
		return nil, models.ErrInvalidPrice
	}
	if req.InitialStock < 0 {
		return nil, models.ErrInvalidQuantity
	}

	product := &models.Product{
		Name:  name,
		Price: req.Price,
		Stock: req.InitialStock,
	}

	if err := cs.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	cs.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name))

	if err := cs.ledger.RefreshCache(ctx, product.ID); err != nil {
		cs.logger.Warn("Failed to warm stock cache", zap.Error(err))
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (cs *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return cs.store.GetProductByID(ctx, id)
}

// ListProducts retrieves all products
func (cs *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return cs.store.GetProducts(ctx)
}

// UpdateProduct applies a typed update to a product
func (cs *CatalogService) UpdateProduct(ctx context.Context, id int64, upd models.ProductUpdate) (*models.Product, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	if upd.Price != nil && *upd.Price <= 0 {
		return nil, models.ErrInvalidPrice
	}
	return cs.store.UpdateProduct(ctx, id, upd)
}

// DeleteProduct removes a product and evicts its cached stock
func (cs *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := cs.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	cs.ledger.EvictCache(ctx, id)
	return nil
}

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreateCustomer creates a new customer. Email must be unique.
func (cs *CatalogService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := cs.store.GetCustomerByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%s: %w", email, models.ErrDuplicateEmail)
	}

	customer := &models.Customer{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
	}

	if err := cs.store.CreateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	cs.logger.Info("Customer created",
		zap.Int64("customer_id", customer.ID),
		zap.String("email", customer.Email))

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (cs *CatalogService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return cs.store.GetCustomerByID(ctx, id)
}

// ListCustomers retrieves all customers
func (cs *CatalogService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return cs.store.GetCustomers(ctx)
}

// UpdateCustomer applies a typed update to a customer
func (cs *CatalogService) UpdateCustomer(ctx context.Context, id int64, upd models.CustomerUpdate) (*models.Customer, error) {
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		upd.Email = &email
	}
	return cs.store.UpdateCustomer(ctx, id, upd)
}

// DeleteCustomer removes a customer
func (cs *CatalogService) DeleteCustomer(ctx context.Context, id int64) error {
	return cs.store.DeleteCustomer(ctx, id)
}

// CreateSupplier creates a new supplier
func (cs *CatalogService) CreateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, fmt.Errorf("supplier name must not be empty")
	}

	if err := cs.store.CreateSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (cs *CatalogService) GetSupplier(ctx context.Context, id int64) (*models.Supplier, error) {
	return cs.store.GetSupplierByID(ctx, id)
}

// ListSuppliers retrieves all suppliers
func (cs *CatalogService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return cs.store.GetSuppliers(ctx)
}

// UpdateSupplier applies a typed update to a supplier
func (cs *CatalogService) UpdateSupplier(ctx context.Context, id int64, upd models.SupplierUpdate) (*models.Supplier, error) {
	return cs.store.UpdateSupplier(ctx, id, upd)
}

// DeleteSupplier removes a supplier
func (cs *CatalogService) DeleteSupplier(ctx context.Context, id int64) error {
	return cs.store.DeleteSupplier(ctx, id)
}

// GetUser retrieves an employee or administrator by ID
func (cs *CatalogService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return cs.store.GetUserByID(ctx, id)
}
