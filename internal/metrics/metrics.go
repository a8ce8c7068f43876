package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "romlerk"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Number of HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency by method and route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	PaymentsInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "payments_initiated_total", Help: "Number of payment initiations by result."},
		[]string{"result"},
	)
	PaymentCallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "payment_callbacks_total", Help: "Number of reconciled gateway callbacks by redirect state."},
		[]string{"state"},
	)
	PaymentOwnerFallback = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "payment_owner_fallback_total", Help: "Number of callbacks written to the top-level payments collection because no owner was found."},
	)
)

// Initiation results.
const (
	ResultOK          = "ok"
	ResultInvalid     = "invalid"
	ResultGatewayFail = "gateway_error"
	ResultStoreFail   = "store_error"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(PaymentsInitiated)
	reg.MustRegister(PaymentCallbacks)
	reg.MustRegister(PaymentOwnerFallback)
}
