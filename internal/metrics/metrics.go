package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OrdersPlaced counts orders created, labelled by checkout path
	// (buy_now or cart).
	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "craftique",
		Name:      "orders_placed_total",
		Help:      "Total number of orders created.",
	}, []string{"path"})

	// CheckoutsInitiated counts confirmation codes handed out.
	CheckoutsInitiated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "craftique",
		Name:      "checkouts_initiated_total",
		Help:      "Total number of cart checkouts initiated.",
	})

	// CheckoutFailures counts rejected confirm attempts by reason.
	CheckoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "craftique",
		Name:      "checkout_failures_total",
		Help:      "Total number of failed checkout confirmations.",
	}, []string{"reason"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
