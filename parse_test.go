// FILE: bbconfig/parse_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseLines tests the line rules of the configuration format
func TestParseLines(t *testing.T) {
	lines := []string{
		"    # Custom configuration for WorkTwins",
		"    mode = sandbox",
		"",
		"x=1",
		"ab=",
		"abc=",
		"no equals sign here",
		"url = http://host:8080/path?a=b",
		"log_sqlite3_storage_path =  {$userdata_path}/logs.db",
		"#commented = out",
		"empty_value =",
		"mode = production",
	}

	table := ParseLines(lines)

	t.Run("TrimmedValues", func(t *testing.T) {
		assert.Equal(t, "{$userdata_path}/logs.db", table["log_sqlite3_storage_path"].String())
	})

	t.Run("SplitAtFirstEquals", func(t *testing.T) {
		assert.Equal(t, "http://host:8080/path?a=b", table["url"].String())
	})

	t.Run("LaterDuplicateWins", func(t *testing.T) {
		assert.Equal(t, "production", table["mode"].String())
	})

	t.Run("ShortLinesSkipped", func(t *testing.T) {
		assert.NotContains(t, table, "x")
		assert.NotContains(t, table, "ab")
		assert.Contains(t, table, "abc")
	})

	t.Run("CommentsAndGarbageSkipped", func(t *testing.T) {
		assert.NotContains(t, table, "#commented")
		assert.NotContains(t, table, "no equals sign here")
		assert.Len(t, table, 5)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		v, ok := table["empty_value"]
		assert.True(t, ok)
		assert.Equal(t, KindString, v.Kind())
		assert.Equal(t, "", v.String())
	})

	t.Run("ValuesStayRaw", func(t *testing.T) {
		raw := ParseLines([]string{"port = 8080", "flag = True"})
		assert.Equal(t, KindString, raw["port"].Kind())
		assert.Equal(t, KindString, raw["flag"].Kind())
	})
}
