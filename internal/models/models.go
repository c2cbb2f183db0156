package models

import "time"

// Product represents a product in the catalog. Price is in cents.
type Product struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Price     int64     `db:"price" json:"price"`
	Stock     int       `db:"stock" json:"stock"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Customer represents a registered customer
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Supplier represents a product supplier
type Supplier struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Email       string `db:"email" json:"email"`
	Address     string `db:"address" json:"address"`
	Description string `db:"description" json:"description,omitempty"`
}

// User represents an employee or administrator identity.
// The sale workflow only needs the opaque ID; role is informational.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Sale represents a sale transaction. TotalAmount is in cents and always
// equals the sum of its items' subtotals.
type Sale struct {
	ID            int64     `db:"id" json:"id"`
	CustomerID    int64     `db:"customer_id" json:"customer_id"`
	EmployeeID    int64     `db:"employee_id" json:"employee_id"`
	TotalAmount   int64     `db:"total_amount" json:"total_amount"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	Items []SaleItem `db:"-" json:"items,omitempty"`
}

// SaleItem represents one line of a sale. UnitPrice is a snapshot of the
// product price at sale time; Subtotal = Quantity * UnitPrice.
type SaleItem struct {
	ID        int64 `db:"id" json:"id"`
	SaleID    int64 `db:"sale_id" json:"sale_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	UnitPrice int64 `db:"unit_price" json:"unit_price"`
	Subtotal  int64 `db:"subtotal" json:"subtotal"`
}

// Sale statuses. A sale is pending only inside the creating transaction;
// callers only ever observe completed or cancelled.
const (
	SaleStatusPending   = "pending"
	SaleStatusCompleted = "completed"
	SaleStatusCancelled = "cancelled"
)

// Payment methods
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// User roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// ProductUpdate enumerates the mutable catalog fields of a product.
// Stock is deliberately absent: stock only moves through the ledger.
type ProductUpdate struct {
	Name  *string `json:"name,omitempty"`
	Price *int64  `json:"price,omitempty"`
}

// CustomerUpdate enumerates the mutable fields of a customer.
type CustomerUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// SupplierUpdate enumerates the mutable fields of a supplier.
type SupplierUpdate struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`
}
