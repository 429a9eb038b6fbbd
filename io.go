// FILE: bbconfig/io.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Export and Save.
type Format string

const (
	// FormatNative is the `key = value` line format read by ParseLines
	FormatNative Format = "native"
	// FormatJSON is a flat JSON object
	FormatJSON Format = "json"
	// FormatTOML is a flat TOML document
	FormatTOML Format = "toml"
	// FormatYAML is a flat YAML mapping
	FormatYAML Format = "yaml"
)

// Export writes the configuration to w. With resolve, values are resolved and
// coerced; otherwise the stored values are written, placeholders intact.
func (c *Config) Export(w io.Writer, format Format, resolve bool) error {
	table, err := c.exportTable(resolve)
	if err != nil {
		return err
	}
	return encodeTable(w, format, table)
}

// Save writes the stored (unresolved) configuration to path atomically. The format
// follows the file extension and defaults to the native line format.
func (c *Config) Save(path string) error {
	table, err := c.exportTable(false)
	if err != nil {
		return err
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("failed to create pending config file '%s': %w", path, err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			c.logger.Debug().Err(err).Str("path", path).Msg("cleanup pending config file")
		}
	}()

	if err := encodeTable(pendingFile, detectFileFormat(path), table); err != nil {
		return err
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace config file '%s': %w", path, err)
	}
	return nil
}

func (c *Config) exportTable(resolve bool) (map[string]Value, error) {
	if resolve {
		return c.Resolved(context.Background())
	}

	c.refresh(context.Background())
	if err := c.ensureLoaded(); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()
	out := copyTable(c.table)
	for k, v := range c.overrides {
		out[k] = v
	}
	return out, nil
}

// encodeTable writes table to w in the requested format.
func encodeTable(w io.Writer, format Format, table map[string]Value) error {
	switch format {
	case FormatNative, "":
		for _, key := range sortedKeys(table) {
			if _, err := fmt.Fprintf(w, "%s = %s\n", key, table[key].String()); err != nil {
				return fmt.Errorf("failed to write config data: %w", err)
			}
		}
		return nil

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(table); err != nil {
			return fmt.Errorf("failed to marshal config data to JSON: %w", err)
		}
		return nil

	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(plainTable(table)); err != nil {
			return fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
		return nil

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(plainTable(table)); err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func plainTable(table map[string]Value) map[string]any {
	out := make(map[string]any, len(table))
	for k, v := range table {
		out[k] = v.Interface()
	}
	return out
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatNative
	}
}
