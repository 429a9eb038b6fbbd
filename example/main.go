// FILE: bbconfig/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	config "github.com/brainboost/bbconfig"
)

// AppConfig is decoded from the flat configuration with Scan.
type AppConfig struct {
	Mode         string        `config:"mode"`
	UserdataPath string        `config:"userdata_path"`
	LogPath      string        `config:"log_path"`
	PageSize     int           `config:"log_page_size"`
	Ports        []int         `config:"ports"`
	Timeout      time.Duration `config:"timeout"`
	Debug        bool          `config:"log_debug_mode"`
}

const configText = `# Example configuration
mode = production
userdata_path = com_worktwins_userdata
log_path = {$userdata_path}/com_worktwins_logs
log_page_size = 100
log_debug_mode = True
ports = 80, 443, 8080
timeout = 5s
`

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Write a configuration file for the program to read.
	// =========================================================================
	dir, err := os.MkdirTemp("", "bbconfig-example")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "global.config")
	if err := os.WriteFile(path, []byte(configText), 0644); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// =========================================================================
	// PART 2: LOAD AND READ
	// =========================================================================
	cfg, err := config.NewBuilder().
		WithFile(path).
		WithLogger(logger).
		WithDefaults(map[string]any{"timeout": "10s", "retries": 3}).
		Build()
	if err != nil {
		log.Fatalf("failed to build config: %v", err)
	}
	defer cfg.Close()

	logPath, err := cfg.String("log_path")
	if err != nil {
		log.Fatalf("log_path: %v", err)
	}
	fmt.Println("log_path:", logPath)

	ports, err := cfg.List("ports")
	if err != nil {
		log.Fatalf("ports: %v", err)
	}
	fmt.Println("ports:", ports)

	// =========================================================================
	// PART 3: OVERRIDES
	// =========================================================================
	if err := cfg.Override("mode", "sandbox"); err != nil {
		log.Fatalf("override: %v", err)
	}
	sandbox, err := cfg.Sandbox()
	if err != nil {
		log.Fatalf("sandbox: %v", err)
	}
	fmt.Println("sandbox:", sandbox)

	// =========================================================================
	// PART 4: DECODE AND EXPORT
	// =========================================================================
	var app AppConfig
	if err := cfg.Scan(&app); err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("scanned: %+v\n", app)

	if err := cfg.Export(os.Stdout, config.FormatTOML, true); err != nil {
		log.Fatalf("export: %v", err)
	}
}
