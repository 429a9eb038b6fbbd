// FILE: bbconfig/timing.go
package config

import "time"

// Network timing for the shared store mirror.
// The mirror has no retry logic, so these bound how long one call may block.
const (
	DefaultDialTimeout   = 5 * time.Second // Redis connection establishment
	DefaultMirrorTimeout = 3 * time.Second // One snapshot get or set round trip
	DefaultPingTimeout   = 2 * time.Second // Health probe against the shared store
)

// DefaultMirrorRefreshInterval pulls the shared snapshot on every Get.
const DefaultMirrorRefreshInterval time.Duration = 0
