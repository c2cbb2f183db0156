package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_completed_total",
		Help: "Total number of completed sales",
	})

	SalesCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_cancelled_total",
		Help: "Total number of cancelled sales",
	})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_failed_total",
		Help: "Total number of failed sale attempts",
	}, []string{"reason"})

	SaleProcessingLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sale_processing_latency_seconds",
		Help:    "Latency of sale creation",
		Buckets: prometheus.DefBuckets,
	})

	StockReservationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_reservations_failed_total",
		Help: "Total number of failed stock reservations",
	}, []string{"reason"})

	StockLowAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_low_alerts_total",
		Help: "Total number of low-stock alerts raised",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
