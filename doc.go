// FILE: bbconfig/doc.go

// Package config provides a thread-safe key/value configuration store for Go
// applications, loaded from flat `key = value` files, with placeholder
// references between keys, typed values and an optional Redis mirror.
//
// Features:
//   - Flat text format: one `key = value` per line, `#` comments
//   - Placeholders: `{$other_key}` expands to the resolved value of other_key,
//     recursively, with circular reference detection
//   - Typed values: True/False, integers, floats, strings and comma lists
//   - In-memory overrides taking precedence over the loaded file
//   - Optional mirroring of the whole table through Redis so several processes
//     share one snapshot
//   - Thread-safe operations using sync.RWMutex
//   - Struct decoding via mapstructure, export to JSON/TOML/YAML
//
// Quick Start:
//
//	cfg, err := config.Quick("/brainboost/global.config", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	logPath, _ := cfg.String("log_path")   // "{$userdata_path}/logs" resolved
//	pageSize, _ := cfg.Int64("log_page_size")
//	ports, _ := cfg.List("ports")          // "80, 443" -> [80 443]
//
// Value coercion (first match wins):
//  1. True / False -> bool
//  2. ASCII digits -> int64
//  3. decimal number -> float64
//  4. anything else -> string
//
// A resolved value containing a comma becomes a list, each piece coerced alone.
//
// Precedence (highest to lowest):
//  1. Overrides (Override)
//  2. Loaded table (file, or the shared snapshot when mirroring)
//  3. Reserved defaults for redis_server_ip / redis_server_port
//
// Mirroring:
//
//	cfg := config.New(config.WithLogger(logger))
//	if err := cfg.Configure(path, true); err != nil { // pushes the table
//	    log.Fatal(err)
//	}
//	defer cfg.Close()
//
// Reads then pull the snapshot stored under SnapshotKey; a failed pull is logged
// and the in-memory table is used. Failed pushes return ErrMirrorWrite.
package config
