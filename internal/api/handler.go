package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/service"
	"pos-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	sales   *service.SaleService
	catalog *service.CatalogService
	ledger  *service.InventoryLedger
	stats   *service.StatsService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	sales *service.SaleService,
	catalog *service.CatalogService,
	ledger *service.InventoryLedger,
	stats *service.StatsService,
) *Handler {
	return &Handler{
		sales:   sales,
		catalog: catalog,
		ledger:  ledger,
		stats:   stats,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sales", h.createSale)
		v1.GET("/sales", h.listSalesInRange)
		v1.GET("/sales/:id", h.getSale)
		v1.POST("/sales/:id/cancel", h.cancelSale)

		v1.GET("/reports/sales/total", h.totalAmountInRange)

		v1.POST("/products", h.createProduct)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.PATCH("/products/:id", h.updateProduct)
		v1.DELETE("/products/:id", h.deleteProduct)
		v1.GET("/products/:id/stock", h.getStock)
		v1.POST("/products/:id/restock", h.restockProduct)

		v1.POST("/customers", h.createCustomer)
		v1.GET("/customers", h.listCustomers)
		v1.GET("/customers/:id", h.getCustomer)
		v1.PATCH("/customers/:id", h.updateCustomer)
		v1.DELETE("/customers/:id", h.deleteCustomer)
		v1.GET("/customers/:id/sales", h.listCustomerSales)

		v1.GET("/users/:id", h.getUser)

		v1.POST("/suppliers", h.createSupplier)
		v1.GET("/suppliers", h.listSuppliers)
		v1.GET("/suppliers/:id", h.getSupplier)
		v1.PATCH("/suppliers/:id", h.updateSupplier)
		v1.DELETE("/suppliers/:id", h.deleteSupplier)

		v1.GET("/dashboard/stats", h.dashboardStats)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidPaymentMethod),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrSupplierNotFound),
		errors.Is(err, models.ErrSaleNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

// createSale handles sale creation
func (h *Handler) createSale(c *gin.Context) {
	var req service.CreateSaleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	sale, err := h.sales.CreateSale(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// getSale handles get sale by ID
func (h *Handler) getSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sale, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// cancelSale handles sale cancellation
func (h *Handler) cancelSale(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cancelled, err := h.sales.CancelSale(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

func rangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start (want RFC3339)"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end (want RFC3339)"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// listSalesInRange handles range queries over sales
func (h *Handler) listSalesInRange(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	sales, err := h.sales.GetSalesInRange(c.Request.Context(), start, end)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// totalAmountInRange handles sale total queries
func (h *Handler) totalAmountInRange(c *gin.Context) {
	start, end, ok := rangeParams(c)
	if !ok {
		return
	}

	total, err := h.sales.TotalAmountInRange(c.Request.Context(), start, end)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_amount": total})
}

// createProduct handles product creation
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// listProducts handles product listing
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// updateProduct handles product updates
func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var upd models.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, upd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct handles product deletion
func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getStock handles stock lookups (cache first)
func (h *Handler) getStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	stock, err := h.ledger.GetStockCached(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_id": id, "stock": stock})
}

// restockProduct handles adding stock to a product
func (h *Handler) restockProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.ledger.AddStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// createCustomer handles customer creation
func (h *Handler) createCustomer(c *gin.Context) {
	var req service.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.catalog.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// listCustomers handles customer listing
func (h *Handler) listCustomers(c *gin.Context) {
	customers, err := h.catalog.ListCustomers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// getCustomer handles get customer by ID
func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.catalog.GetCustomer(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// updateCustomer handles customer updates
func (h *Handler) updateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var upd models.CustomerUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.catalog.UpdateCustomer(c.Request.Context(), id, upd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// deleteCustomer handles customer deletion
func (h *Handler) deleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteCustomer(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listCustomerSales handles listing a customer's sales
func (h *Handler) listCustomerSales(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sales, err := h.sales.GetSalesByCustomer(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// getUser handles get user by ID
func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.catalog.GetUser(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// createSupplier handles supplier creation
func (h *Handler) createSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	created, err := h.catalog.CreateSupplier(c.Request.Context(), &supplier)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// listSuppliers handles supplier listing
func (h *Handler) listSuppliers(c *gin.Context) {
	suppliers, err := h.catalog.ListSuppliers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// getSupplier handles get supplier by ID
func (h *Handler) getSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	supplier, err := h.catalog.GetSupplier(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// updateSupplier handles supplier updates
func (h *Handler) updateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var upd models.SupplierUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	supplier, err := h.catalog.UpdateSupplier(c.Request.Context(), id, upd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// deleteSupplier handles supplier deletion
func (h *Handler) deleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteSupplier(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// dashboardStats handles dashboard stat queries
func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.stats.TodayStats(c.Request.Context(), time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
