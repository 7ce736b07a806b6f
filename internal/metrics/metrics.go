package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "pos"

var (
	// ScansTotal counts barcode scans by mode (receive, sale) and outcome.
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_scans_total",
			Help: "Total number of barcode scans",
		},
		[]string{"mode", "result"},
	)

	SettlementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_settlements_total",
			Help: "Total number of settlement attempts",
		},
		[]string{"result"},
	)

	SaleRevenueTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sale_revenue_total",
			Help: "Revenue recorded by settled sales",
		},
	)

	ProductsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_products_registered_total",
			Help: "Total number of products registered from unknown barcodes",
		},
	)
)
