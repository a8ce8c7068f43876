package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	PaymentCallbacks.WithLabelValues("success").Inc()
	PaymentOwnerFallback.Inc()

	n, err := testutil.GatherAndCount(reg, "romlerk_payment_callbacks_total", "romlerk_payment_owner_fallback_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	require.Panics(t, func() { RegisterCollectors(reg) }, "double registration must fail")
}
