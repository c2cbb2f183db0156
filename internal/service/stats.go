package service

import (
	"context"
	"encoding/json"
	"time"

	"pos-service/internal/redisclient"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// DashboardStats summarizes the day for the storefront dashboard
type DashboardStats struct {
	Date          string `json:"date"`
	SalesTotal    int64  `json:"sales_total"`
	SalesCount    int    `json:"sales_count"`
	LowStockCount int    `json:"low_stock_count"`
}

// StatsService aggregates dashboard figures from sales and inventory.
// Results are cached briefly in redis; the figures tolerate being a few
// seconds stale.
type StatsService struct {
	sales             *SaleService
	ledger            *InventoryLedger
	cache             *redisclient.Client
	lowStockThreshold int
	cacheTTL          time.Duration
	logger            *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(sales *SaleService, ledger *InventoryLedger, cache *redisclient.Client, lowStockThreshold int) *StatsService {
	return &StatsService{
		sales:             sales,
		ledger:            ledger,
		cache:             cache,
		lowStockThreshold: lowStockThreshold,
		cacheTTL:          30 * time.Second,
		logger:            util.GetLogger(),
	}
}

// TodayStats computes today's sales total and count plus the number of
// products under the low-stock threshold.
func (ss *StatsService) TodayStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	date := start.Format("2006-01-02")

	if cached, err := ss.cache.GetDashboardStats(ctx, date); err == nil && cached != nil {
		var stats DashboardStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	sales, err := ss.sales.GetSalesInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, sale := range sales {
		total += sale.TotalAmount
	}

	lowStock, err := ss.ledger.LowStockProducts(ctx, ss.lowStockThreshold)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		Date:          date,
		SalesTotal:    total,
		SalesCount:    len(sales),
		LowStockCount: len(lowStock),
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := ss.cache.CacheDashboardStats(ctx, date, payload, ss.cacheTTL); err != nil {
			ss.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
		}
	}

	return stats, nil
}
