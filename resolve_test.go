// FILE: bbconfig/resolve_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableLookup resolves references against a fixed table of raw strings.
func tableLookup(table map[string]string) lookupFunc {
	var lookup lookupFunc
	lookup = func(key string, active map[string]struct{}) (Value, error) {
		raw, ok := table[key]
		if !ok {
			return Value{}, ErrKeyNotFound
		}
		text, err := expand(raw, active, lookup)
		if err != nil {
			return Value{}, err
		}
		return CoerceList(text), nil
	}
	return lookup
}

func TestExpand(t *testing.T) {
	table := map[string]string{
		"root":   "/srv",
		"data":   "{$root}/data",
		"logs":   "{$data}/logs",
		"flag":   "True",
		"ports":  "80,443",
		"ref":    "{$target}",
		"target": "{$",
		"tail":   "root}",
		"a":      "{$b}",
		"b":      "{$a}",
	}
	lookup := tableLookup(table)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"NoPlaceholder", "plain text", "plain text"},
		{"Single", "{$root}", "/srv"},
		{"Nested", "{$logs}/app.log", "/srv/data/logs/app.log"},
		{"Repeated", "{$root}:{$root}", "/srv:/srv"},
		{"TypedText", "debug={$flag}", "debug=True"},
		{"ListText", "[{$ports}]", "[80, 443]"},
		{"SpliceFormsNewPlaceholder", "{$target}{$tail}", "/srv"},
		{"InvalidIdentifier", "{$with-dash}", "{$with-dash}"},
		{"EmptyIdentifier", "{$}", "{$}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := map[string]struct{}{}
			got, err := expand(tt.raw, active, lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, active, "active set is restored after expansion")
		})
	}

	t.Run("Circular", func(t *testing.T) {
		_, err := expand("{$a}", map[string]struct{}{}, lookup)
		require.ErrorIs(t, err, ErrCircularReference)
		assert.Contains(t, err.Error(), "for key: a")
	})

	t.Run("SeededActiveKey", func(t *testing.T) {
		_, err := expand("{$a}", map[string]struct{}{"b": {}}, lookup)
		require.ErrorIs(t, err, ErrCircularReference)
		assert.Contains(t, err.Error(), "for key: b")
	})

	t.Run("MissingReference", func(t *testing.T) {
		_, err := expand("{$nowhere}", map[string]struct{}{}, lookup)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})
}
