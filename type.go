// FILE: bbconfig/type.go
package config

import "fmt"

// String retrieves a string configuration value for key.
// A resolved value of any other kind yields ErrTypeMismatch.
func (c *Config) String(key string) (string, error) {
	val, err := c.Get(key)
	if err != nil {
		return "", err
	}
	s, err := val.AsString()
	if err != nil {
		return "", fmt.Errorf("key %s: %w", key, err)
	}
	return s, nil
}

// Text retrieves the text form of any configuration value for key.
// Unlike String it never fails on kind: lists are joined with ", ".
func (c *Config) Text(key string) (string, error) {
	val, err := c.Get(key)
	if err != nil {
		return "", err
	}
	return val.String(), nil
}

// Int64 retrieves an integer configuration value for key.
func (c *Config) Int64(key string) (int64, error) {
	val, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	i, err := val.AsInt()
	if err != nil {
		return 0, fmt.Errorf("key %s: %w", key, err)
	}
	return i, nil
}

// Float64 retrieves a float configuration value for key. Integer values widen.
func (c *Config) Float64(key string) (float64, error) {
	val, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	f, err := val.AsFloat()
	if err != nil {
		return 0, fmt.Errorf("key %s: %w", key, err)
	}
	return f, nil
}

// Bool retrieves a boolean configuration value for key.
func (c *Config) Bool(key string) (bool, error) {
	val, err := c.Get(key)
	if err != nil {
		return false, err
	}
	b, err := val.AsBool()
	if err != nil {
		return false, fmt.Errorf("key %s: %w", key, err)
	}
	return b, nil
}

// List retrieves the items of a comma-separated configuration value for key.
// A single scalar is returned as a one-item list.
func (c *Config) List(key string) ([]Value, error) {
	val, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	if val.Kind() != KindList {
		return []Value{val}, nil
	}
	return val.AsList()
}

// Strings retrieves the text form of each item of a configuration value for key.
func (c *Config) Strings(key string) ([]string, error) {
	items, err := c.List(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out, nil
}
