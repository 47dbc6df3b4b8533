// Package metrics exposes Prometheus counters for the business
// operations, scraped through the ops listener.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type StoreMetrics struct {
	ItemsAdded      prometheus.Counter
	ItemsDeleted    prometheus.Counter
	OrdersCommitted prometheus.Counter
	OrdersRejected  prometheus.Counter
	CatalogItems    prometheus.Gauge

	snapshotDuration *prometheus.HistogramVec
}

func New(reg *prometheus.Registry) *StoreMetrics {
	m := &StoreMetrics{
		ItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_items_added_total",
			Help: "Catalog items added or merged",
		}),
		ItemsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_items_deleted_total",
			Help: "Catalog items deleted",
		}),
		OrdersCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_orders_committed_total",
			Help: "Orders that passed validation and were committed",
		}),
		OrdersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_orders_rejected_total",
			Help: "Orders rejected during the validate phase",
		}),
		CatalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "store_catalog_items",
			Help: "Items currently in the catalog",
		}),
		snapshotDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "store_snapshot_duration_seconds",
			Help: "Duration of persistence save/load operations",
		}, []string{"op"}),
	}

	reg.MustRegister(
		m.ItemsAdded,
		m.ItemsDeleted,
		m.OrdersCommitted,
		m.OrdersRejected,
		m.CatalogItems,
		m.snapshotDuration,
	)
	return m
}

// ObserveSnapshot records the duration of one save or load.
func (m *StoreMetrics) ObserveSnapshot(op string, d time.Duration) {
	m.snapshotDuration.WithLabelValues(op).Observe(d.Seconds())
}
