// FILE: bbconfig/metrics_test.go
package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	store := &countingStore{SharedStore: NopStore{}}
	cfg := New(
		WithSource(StaticSource{"a.config": "mode = sandbox\nloop = {$loop}\n"}),
		WithSharedStore(store),
		WithMetrics(m),
	)

	require.ErrorIs(t, cfg.Configure("missing.config", false), ErrFileUnavailable)
	require.NoError(t, cfg.Configure("a.config", true))

	_, err := cfg.Get("mode")
	require.NoError(t, err)
	_, err = cfg.Get("loop")
	require.Error(t, err)
	_, err = cfg.Get("absent")
	require.Error(t, err)

	store.failSet.Store(true)
	require.Error(t, cfg.Override("mode", "x"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues(resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues(resultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(resultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues(resultError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.MirrorPulls.WithLabelValues(resultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MirrorPushes.WithLabelValues(resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MirrorPushes.WithLabelValues(resultError)))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.load(nil)
		m.pull(resultHit)
		m.push(nil)
		m.lookup(nil)
	})
}
