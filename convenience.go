// FILE: bbconfig/convenience.go
package config

import (
	"fmt"
	"os"
	"strings"
)

// Quick creates a Config and loads path with a single call. With mirror the
// table is pushed to the Redis server named by the file's redis keys.
func Quick(path string, mirror bool, opts ...Option) (*Config, error) {
	cfg := New(opts...)
	if err := cfg.Configure(path, mirror); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustQuick is like Quick but panics on error
func MustQuick(path string, mirror bool, opts ...Option) *Config {
	cfg, err := Quick(path, mirror, opts...)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return cfg
}

// Debug returns a formatted string showing every key with its raw value, its
// resolved value and whether it is overridden
func (c *Config) Debug() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	b.WriteString(fmt.Sprintf("Source: %s\n", c.path))
	b.WriteString(fmt.Sprintf("Mirroring: %v\n", c.mirror.Load()))
	b.WriteString("Current values:\n")

	for _, key := range c.keysLocked() {
		raw, _ := c.rawLocked(key)
		b.WriteString(fmt.Sprintf("  %s:\n", key))
		b.WriteString(fmt.Sprintf("    Raw: %s (%s)\n", raw.String(), raw.Kind()))
		if v, err := c.lookupLocked(key, true, map[string]struct{}{key: {}}); err != nil {
			b.WriteString(fmt.Sprintf("    Error: %v\n", err))
		} else {
			b.WriteString(fmt.Sprintf("    Resolved: %s (%s)\n", v.String(), v.Kind()))
		}
		if _, ok := c.overrides[key]; ok {
			b.WriteString("    Overridden: true\n")
		}
	}

	return b.String()
}

// Dump writes the resolved configuration to stdout in the native line format
func (c *Config) Dump() error {
	return c.Export(os.Stdout, FormatNative, true)
}

// Clone creates a copy of the configuration tables and settings. The clone uses
// the same shared store as c but never closes it, and dials its own Redis client
// when mirroring from the table address.
func (c *Config) Clone() *Config {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	clone := &Config{
		table:           copyTable(c.table),
		overrides:       copyTable(c.overrides),
		path:            c.path,
		source:          c.source,
		shared:          c.shared,
		mirrorTimeout:   c.mirrorTimeout,
		refreshInterval: c.refreshInterval,
		logger:          c.logger,
		metrics:         c.metrics,
	}
	clone.mirror.Store(c.mirror.Load())
	return clone
}
