// FILE: bbconfig/register.go
package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// AddDefaults adds a value for every key the table does not already hold.
// defaults is either a map[string]any or a struct; struct fields are keyed by their
// `config` tag, or the field name when untagged, and `config:"-"` skips a field.
// Existing keys are left untouched.
//
// With mirroring enabled, the table is pushed once when any default was added;
// a failed push wraps ErrMirrorWrite.
func (c *Config) AddDefaults(defaults any) error {
	values, err := defaultsMap(defaults)
	if err != nil {
		return err
	}

	var errors []string
	added := 0
	for _, key := range sortedKeys(values) {
		ok, err := c.AddIfAbsent(key, values[key])
		if err != nil {
			errors = append(errors, fmt.Sprintf("key %s: %v", key, err))
			continue
		}
		if ok {
			added++
		}
	}

	if added > 0 && c.mirror.Load() {
		if err := c.push(context.Background()); err != nil {
			return err
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("failed to add %d default(s): %s", len(errors), strings.Join(errors, "; "))
	}
	return nil
}

// defaultsMap flattens a defaults struct or map into key -> value pairs.
func defaultsMap(defaults any) (map[string]any, error) {
	if m, ok := defaults.(map[string]any); ok {
		return m, nil
	}

	v := reflect.ValueOf(defaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("AddDefaults requires a non-nil struct pointer or value")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("AddDefaults requires a struct or map[string]any, got %T", defaults)
	}

	out := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: tagName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(v.Interface()); err != nil {
		return nil, fmt.Errorf("failed to read defaults from %T: %w", defaults, err)
	}
	return out, nil
}
