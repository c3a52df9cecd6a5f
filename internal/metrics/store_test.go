package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))
}

func TestObserve(t *testing.T) {
	before := testutil.ToFloat64(StoreOps.WithLabelValues("get", OutcomeMiss))

	Observe("get", OutcomeMiss, time.Now())

	after := testutil.ToFloat64(StoreOps.WithLabelValues("get", OutcomeMiss))
	assert.InDelta(t, before+1, after, 0.0001)
}
