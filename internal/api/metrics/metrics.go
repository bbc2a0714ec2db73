// Package metrics defines and registers the custom Prometheus metrics for the
// webshop API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Call Register() once per registry at startup (before the HTTP server starts).
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "webshop"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts Basic credential checks.
// Label:
//   - result: "success", "invalid" (unknown email or wrong password), "missing", or "error"
var AuthAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductWritesTotal counts catalogue writes.
// Label:
//   - op: "create", "update", or "delete"
var ProductWritesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_writes_total",
		Help:      "Total number of product writes, by operation.",
	},
	[]string{"op"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts stored orders.
var OrdersCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrderLineItems observes how many line items each stored order has.
var OrderLineItems = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "order_line_items",
		Help:      "Number of line items per created order.",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
	},
)

// Register adds every custom metric to reg. Metrics already present in reg
// are skipped, so several routers may share one registry.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		AuthAttemptsTotal,
		UsersRegisteredTotal,
		ProductWritesTotal,
		OrdersCreatedTotal,
		OrderLineItems,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
