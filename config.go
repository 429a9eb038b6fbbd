// FILE: bbconfig/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// reservedDefaults are returned for keys absent from both tables.
var reservedDefaults = map[string]string{
	KeyRedisHost: DefaultRedisHost,
	KeyRedisPort: DefaultRedisPort,
}

// Config is a configuration store. It holds the raw table loaded from a line
// source, the in-memory overrides applied since, and optionally mirrors the table
// through a SharedStore.
type Config struct {
	table     map[string]Value // Raw entries; string values are resolved on read
	overrides map[string]Value // Keys overridden since the last load
	path      string           // Active source descriptor
	mutex     sync.RWMutex     // Protects table, overrides and path

	source          LineSource
	mirror          atomic.Bool
	shared          SharedStore // Injected store; nil dials Redis from the table
	ownsShared      bool        // Close releases shared
	mirrorTimeout   time.Duration
	refreshInterval time.Duration

	mirrorMu   sync.Mutex // Protects ownsShared, dialed, dialedAddr and lastPull
	dialed     *RedisStore
	dialedAddr string
	lastPull   time.Time
	pulls      singleflight.Group

	logger  zerolog.Logger
	metrics *Metrics
}

// Option configures a Config created by New.
type Option func(*Config)

// WithSource sets the line source used by Load and Configure.
func WithSource(src LineSource) Option {
	return func(c *Config) {
		if src != nil {
			c.source = src
		}
	}
}

// WithPath sets the initial source descriptor read by Load.
func WithPath(path string) Option {
	return func(c *Config) { c.path = path }
}

// WithMirror enables mirroring through the shared store from construction on.
func WithMirror(enabled bool) Option {
	return func(c *Config) { c.mirror.Store(enabled) }
}

// WithSharedStore injects the shared store used when mirroring.
func WithSharedStore(store SharedStore) Option {
	return func(c *Config) { c.shared = store }
}

// withOwnedSharedStore injects a store that Close releases.
func withOwnedSharedStore(store SharedStore) Option {
	return func(c *Config) {
		c.shared = store
		c.ownsShared = true
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) { c.logger = logger.With().Str("component", "bbconfig").Logger() }
}

// WithMirrorTimeout bounds each shared store call.
func WithMirrorTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.mirrorTimeout = d
		}
	}
}

// WithMirrorRefreshInterval skips snapshot pulls younger than d. Zero pulls on every Get.
func WithMirrorRefreshInterval(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.refreshInterval = d
		}
	}
}

// WithMetrics records store activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) { c.metrics = m }
}

// New creates an unloaded Config reading DefaultConfigFile from the filesystem
// unless options say otherwise.
func New(opts ...Option) *Config {
	c := &Config{
		table:           make(map[string]Value),
		overrides:       make(map[string]Value),
		path:            DefaultConfigFile,
		source:          FileSource{},
		mirrorTimeout:   DefaultMirrorTimeout,
		refreshInterval: DefaultMirrorRefreshInterval,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load re-reads the active source, replacing the table and discarding overrides.
func (c *Config) Load() error {
	c.mutex.RLock()
	path := c.path
	c.mutex.RUnlock()

	table, err := c.read(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	c.table = table
	c.overrides = make(map[string]Value)
	c.mutex.Unlock()
	return nil
}

// Configure switches to the source at path and loads it. When mirror is true the
// loaded table is pushed to the shared store and later reads pull from it.
func (c *Config) Configure(path string, mirror bool) error {
	return c.ConfigureContext(context.Background(), path, mirror)
}

// ConfigureContext is Configure with a context bounding the shared store push.
func (c *Config) ConfigureContext(ctx context.Context, path string, mirror bool) error {
	table, err := c.read(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	c.path = path
	c.table = table
	c.overrides = make(map[string]Value)
	c.mutex.Unlock()

	c.logger.Info().Str("path", path).Int("keys", len(table)).Bool("mirror", mirror).Msg("configuration loaded")

	if mirror {
		return c.enableMirror(ctx)
	}
	c.mirror.Store(false)
	return nil
}

// enableMirror turns mirroring on and pushes the current table, so later reads
// pull a snapshot holding everything added so far.
func (c *Config) enableMirror(ctx context.Context) error {
	c.mirrorMu.Lock()
	c.lastPull = time.Time{}
	c.mirrorMu.Unlock()
	c.mirror.Store(true)
	return c.push(ctx)
}

// Get returns the resolved, coerced value of key.
func (c *Config) Get(key string) (Value, error) {
	return c.GetContext(context.Background(), key, true)
}

// GetRaw returns the value stored for key with no placeholder resolution and no
// coercion. Reserved defaults apply.
func (c *Config) GetRaw(key string) (Value, error) {
	c.refresh(context.Background())
	if err := c.ensureLoaded(); err != nil {
		return Value{}, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.rawLocked(key)
}

// GetContext returns the value of key. Placeholders are expanded when resolve is
// true; string values are always coerced, splitting top-level commas into lists.
//
// With mirroring enabled, the table is first refreshed from the shared store.
// A failed refresh is logged and the in-memory table is used.
func (c *Config) GetContext(ctx context.Context, key string, resolve bool) (Value, error) {
	c.refresh(ctx)
	if err := c.ensureLoaded(); err != nil {
		return Value{}, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	active := map[string]struct{}{key: {}}
	v, err := c.lookupLocked(key, resolve, active)
	c.metrics.lookup(err)
	return v, err
}

// Sandbox reports whether the "mode" key resolves to the string "sandbox".
func (c *Config) Sandbox() (bool, error) {
	v, err := c.Get("mode")
	if err != nil {
		return false, err
	}
	s, err := v.AsString()
	return err == nil && s == "sandbox", nil
}

// Override sets key to value in memory, taking precedence over the loaded table
// until the next load. value may be a string (resolved on read) or any Go scalar
// or slice accepted by ValueOf.
func (c *Config) Override(key string, value any) error {
	return c.OverrideContext(context.Background(), key, value)
}

// OverrideContext is Override with a context bounding the shared store push.
// With mirroring enabled a failed push is returned wrapping ErrMirrorWrite; the
// in-memory override stays applied.
func (c *Config) OverrideContext(ctx context.Context, key string, value any) error {
	v, err := ValueOf(value)
	if err != nil {
		return fmt.Errorf("override %q: %w", key, err)
	}
	if err := c.ensureLoaded(); err != nil {
		return err
	}

	c.mutex.Lock()
	c.overrides[key] = v
	c.table[key] = v
	c.mutex.Unlock()

	c.logger.Info().Str("key", key).Stringer("value", v).Msg("configuration key overridden")

	if c.mirror.Load() {
		return c.push(ctx)
	}
	return nil
}

// AddIfAbsent inserts key only when the table has no entry for it. An existing key
// is left untouched and logged as a warning; added reports which case occurred.
func (c *Config) AddIfAbsent(key string, value any) (added bool, err error) {
	v, err := ValueOf(value)
	if err != nil {
		return false, fmt.Errorf("add %q: %w", key, err)
	}
	if err := c.ensureLoaded(); err != nil {
		return false, err
	}

	c.mutex.Lock()
	_, exists := c.table[key]
	if !exists {
		c.table[key] = v
	}
	c.mutex.Unlock()

	if exists {
		c.logger.Warn().Str("key", key).Msg("key already exists in the configuration, no changes were made")
		return false, nil
	}
	return true, nil
}

// Keys returns the keys of the loaded table and the overrides in lexical order.
func (c *Config) Keys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.keysLocked()
}

// keysLocked returns the union of table and override keys. Caller holds the read lock.
func (c *Config) keysLocked() []string {
	if len(c.overrides) == 0 {
		return sortedKeys(c.table)
	}
	all := copyTable(c.table)
	for k, v := range c.overrides {
		all[k] = v
	}
	return sortedKeys(all)
}

// Has reports whether key is present in the overrides or the loaded table.
func (c *Config) Has(key string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if _, ok := c.overrides[key]; ok {
		return true
	}
	_, ok := c.table[key]
	return ok
}

// Overrides returns a copy of the values overridden since the last load.
func (c *Config) Overrides() map[string]Value {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return copyTable(c.overrides)
}

// Loaded reports whether the table holds any entries.
func (c *Config) Loaded() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.table) > 0
}

// Path returns the active source descriptor.
func (c *Config) Path() string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.path
}

// Mirroring reports whether the table is mirrored through the shared store.
func (c *Config) Mirroring() bool {
	return c.mirror.Load()
}

// Close releases the Redis client dialed for mirroring and the store created by
// Builder.WithRedis. Stores injected with WithSharedStore belong to the caller
// and stay open.
func (c *Config) Close() error {
	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()

	var errs []error
	if closer, ok := c.shared.(io.Closer); ok && c.ownsShared {
		errs = append(errs, closer.Close())
		c.ownsShared = false
	}
	if c.dialed != nil {
		errs = append(errs, c.dialed.Close())
		c.dialed = nil
		c.dialedAddr = ""
	}
	return errors.Join(errs...)
}

// read opens path through the line source and parses it.
func (c *Config) read(path string) (map[string]Value, error) {
	lines, err := c.source.Open(path)
	if err != nil && !errors.Is(err, ErrFileUnavailable) {
		err = fmt.Errorf("%w: %w", ErrFileUnavailable, err)
	}
	c.metrics.load(err)
	if err != nil {
		return nil, err
	}

	table := ParseLines(lines)
	c.logger.Debug().Str("path", path).Int("keys", len(table)).Msg("configuration source parsed")
	return table, nil
}

// ensureLoaded loads the active source when the table is empty.
func (c *Config) ensureLoaded() error {
	c.mutex.RLock()
	loaded := len(c.table) > 0
	path := c.path
	c.mutex.RUnlock()
	if loaded {
		return nil
	}

	table, err := c.read(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	if len(c.table) == 0 {
		c.table = table
		c.overrides = make(map[string]Value)
	}
	return nil
}

// rawLocked returns the stored value for key. Caller holds the read lock.
func (c *Config) rawLocked(key string) (Value, error) {
	if v, ok := c.overrides[key]; ok {
		return v, nil
	}
	if v, ok := c.table[key]; ok {
		return v, nil
	}
	if def, ok := reservedDefaults[key]; ok {
		return StringValue(def), nil
	}
	return Value{}, fmt.Errorf("%w: key %q not found in configuration", ErrKeyNotFound, key)
}

// lookupLocked resolves and coerces key. Caller holds the read lock; placeholder
// recursion re-enters here without locking again.
func (c *Config) lookupLocked(key string, resolve bool, active map[string]struct{}) (Value, error) {
	raw, err := c.rawLocked(key)
	if err != nil {
		return Value{}, err
	}
	if raw.Kind() != KindString {
		return raw, nil
	}

	text := raw.s
	if resolve {
		text, err = expand(text, active, func(ref string, active map[string]struct{}) (Value, error) {
			return c.lookupLocked(ref, true, active)
		})
		if err != nil {
			return Value{}, err
		}
	}
	return CoerceList(text), nil
}

// refresh replaces the table with the shared snapshot when mirroring is enabled.
// Concurrent callers share one pull. Failures are logged and ignored.
func (c *Config) refresh(ctx context.Context) {
	if !c.mirror.Load() {
		return
	}
	if c.refreshInterval > 0 {
		c.mirrorMu.Lock()
		fresh := !c.lastPull.IsZero() && time.Since(c.lastPull) < c.refreshInterval
		c.mirrorMu.Unlock()
		if fresh {
			return
		}
	}

	_, _, _ = c.pulls.Do(SnapshotKey, func() (any, error) {
		c.pull(ctx)
		return nil, nil
	})
}

func (c *Config) pull(ctx context.Context) {
	store, err := c.sharedStore()
	if err != nil {
		c.metrics.pull(resultError)
		c.logger.Warn().Err(err).Msg("error reading configuration from shared store")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
	defer cancel()

	data, found, err := store.Get(ctx, SnapshotKey)
	if err != nil {
		c.metrics.pull(resultError)
		c.logger.Warn().Err(err).Str("key", SnapshotKey).Msg("error reading configuration from shared store")
		return
	}
	if !found {
		c.metrics.pull(resultMiss)
		c.logger.Debug().Str("key", SnapshotKey).Msg("no configuration in shared store, using local configuration")
		return
	}

	table, err := DecodeSnapshot(data)
	if err != nil {
		c.metrics.pull(resultError)
		c.logger.Warn().Err(err).Str("key", SnapshotKey).Msg("error reading configuration from shared store")
		return
	}

	c.mutex.Lock()
	c.table = table
	c.mutex.Unlock()

	c.mirrorMu.Lock()
	c.lastPull = time.Now()
	c.mirrorMu.Unlock()

	c.metrics.pull(resultHit)
	c.logger.Debug().Str("key", SnapshotKey).Int("keys", len(table)).Msg("configuration retrieved from shared store")
}

// push writes the current table to the shared store.
func (c *Config) push(ctx context.Context) error {
	c.mutex.RLock()
	data, err := EncodeSnapshot(c.table)
	c.mutex.RUnlock()
	if err != nil {
		c.metrics.push(err)
		return fmt.Errorf("%w: %w", ErrMirrorWrite, err)
	}

	store, err := c.sharedStore()
	if err != nil {
		c.metrics.push(err)
		return fmt.Errorf("%w: %w", ErrMirrorWrite, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.mirrorTimeout)
	defer cancel()

	err = store.Set(ctx, SnapshotKey, data)
	c.metrics.push(err)
	if err != nil {
		return fmt.Errorf("%w: failed to update configuration under key %q: %w", ErrMirrorWrite, SnapshotKey, err)
	}

	c.logger.Info().Str("key", SnapshotKey).Msg("configuration updated in shared store")
	return nil
}

// sharedStore returns the injected store, or a Redis client for the address
// held in the table itself. The client is reused while the address is unchanged.
func (c *Config) sharedStore() (SharedStore, error) {
	if c.shared != nil {
		return c.shared, nil
	}

	c.mutex.RLock()
	host := c.tableText(KeyRedisHost)
	port := c.tableText(KeyRedisPort)
	c.mutex.RUnlock()

	if _, err := Coerce(port).AsInt(); err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", KeyRedisPort, port, err)
	}
	addr := net.JoinHostPort(host, port)

	c.mirrorMu.Lock()
	defer c.mirrorMu.Unlock()
	if c.dialed != nil && c.dialedAddr == addr {
		return c.dialed, nil
	}
	if c.dialed != nil {
		if err := c.dialed.Close(); err != nil {
			c.logger.Debug().Err(err).Str("addr", c.dialedAddr).Msg("closing previous redis client")
		}
	}
	c.dialed = NewRedisStore(RedisConfig{Addr: addr, Timeout: c.mirrorTimeout}, c.logger)
	c.dialedAddr = addr
	return c.dialed, nil
}

// tableText returns the stored text for a reserved key. Caller holds the read lock.
func (c *Config) tableText(key string) string {
	if v, ok := c.table[key]; ok {
		return v.String()
	}
	return reservedDefaults[key]
}
