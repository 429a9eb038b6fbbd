// FILE: bbconfig/register_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDefaults(t *testing.T) {
	type ServerDefaults struct {
		Host    string  `config:"redis_server_ip"`
		Workers int     `config:"workers"`
		Ratio   float64 `config:"ratio"`
		Debug   bool
	}

	t.Run("Struct", func(t *testing.T) {
		cfg := newStaticConfig(t, "a.config", "workers = 16\n")
		require.NoError(t, cfg.AddDefaults(&ServerDefaults{Host: "10.0.0.1", Workers: 4, Ratio: 0.5, Debug: true}))

		workers, err := cfg.Int64("workers")
		require.NoError(t, err)
		assert.Equal(t, int64(16), workers)

		host, err := cfg.String(KeyRedisHost)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.1", host)

		ratio, err := cfg.Float64("ratio")
		require.NoError(t, err)
		assert.Equal(t, 0.5, ratio)

		debug, err := cfg.Bool("Debug")
		require.NoError(t, err)
		assert.True(t, debug)
	})

	t.Run("MirroredDefaultsSurvivePull", func(t *testing.T) {
		mr, redisStore := setupMiniRedis(t)
		store := &countingStore{SharedStore: redisStore}
		cfg := New(WithSource(StaticSource{"a.config": "workers = 16\n"}), WithSharedStore(store))
		require.NoError(t, cfg.Configure("a.config", true))

		require.NoError(t, cfg.AddDefaults(map[string]any{"workers": 4, "timeout": "5s"}))
		assert.Equal(t, int32(2), store.sets.Load())

		timeout, err := cfg.String("timeout")
		require.NoError(t, err)
		assert.Equal(t, "5s", timeout)

		decoded := mustSnapshot(t, mr.Get)
		assert.Equal(t, "5s", decoded["timeout"].String())
		assert.Equal(t, "16", decoded["workers"].String())

		require.NoError(t, cfg.AddDefaults(map[string]any{"timeout": "9s"}))
		assert.Equal(t, int32(2), store.sets.Load(), "nothing added, nothing pushed")
	})

	t.Run("MirroredDefaultsPushFailure", func(t *testing.T) {
		store := &countingStore{SharedStore: NopStore{}}
		cfg := New(WithSource(StaticSource{"a.config": "workers = 16\n"}), WithSharedStore(store))
		require.NoError(t, cfg.Configure("a.config", true))

		store.failSet.Store(true)
		assert.ErrorIs(t, cfg.AddDefaults(map[string]any{"timeout": "5s"}), ErrMirrorWrite)
	})

	t.Run("InvalidDefaults", func(t *testing.T) {
		cfg := newStaticConfig(t, "a.config", "workers = 16\n")
		assert.Error(t, cfg.AddDefaults(42))
		assert.Error(t, cfg.AddDefaults((*ServerDefaults)(nil)))

		err := cfg.AddDefaults(map[string]any{"ok": 1, "bad": struct{}{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key bad")
		assert.True(t, cfg.Has("ok"))
	})
}
