// FILE: bbconfig/source_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("ReadsLines", func(t *testing.T) {
		path := filepath.Join(tmpDir, "global.config")
		require.NoError(t, os.WriteFile(path, []byte("mode = sandbox\n# comment\nport = 80\n"), 0644))

		lines, err := FileSource{}.Open(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"mode = sandbox", "# comment", "port = 80"}, lines)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := FileSource{}.Open(filepath.Join(tmpDir, "missing.config"))
		assert.ErrorIs(t, err, ErrFileUnavailable)
		assert.Contains(t, err.Error(), "missing.config")
	})

	t.Run("Directory", func(t *testing.T) {
		_, err := FileSource{}.Open(tmpDir)
		assert.ErrorIs(t, err, ErrFileUnavailable)
	})

	t.Run("MaxFileSize", func(t *testing.T) {
		path := filepath.Join(tmpDir, "big.config")
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("key = value\n", 100)), 0644))

		_, err := FileSource{MaxFileSize: 64}.Open(path)
		assert.ErrorIs(t, err, ErrFileUnavailable)
		assert.Contains(t, err.Error(), "exceeds maximum size")

		lines, err := FileSource{MaxFileSize: 1 << 20}.Open(path)
		require.NoError(t, err)
		assert.Len(t, lines, 100)
	})

	t.Run("LongLine", func(t *testing.T) {
		long := strings.Repeat("x", 2<<20)
		path := filepath.Join(tmpDir, "long.config")
		require.NoError(t, os.WriteFile(path, []byte("mode = sandbox\nblob = "+long+"\n"), 0644))

		lines, err := FileSource{}.Open(path)
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "blob = "+long, lines[1])

		cfg, err := Quick(path, false)
		require.NoError(t, err)
		blob, err := cfg.String("blob")
		require.NoError(t, err)
		assert.Len(t, blob, len(long))
	})

	t.Run("LineEndings", func(t *testing.T) {
		path := filepath.Join(tmpDir, "crlf.config")
		require.NoError(t, os.WriteFile(path, []byte("a = 1\r\n\r\nb = 2"), 0644))

		lines, err := FileSource{}.Open(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a = 1", "", "b = 2"}, lines)
	})

	t.Run("OwnershipOfOwnFile", func(t *testing.T) {
		path := filepath.Join(tmpDir, "owned.config")
		require.NoError(t, os.WriteFile(path, []byte("mode = x\n"), 0644))

		_, err := FileSource{EnforceFileOwnership: true}.Open(path)
		assert.NoError(t, err)
	})
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{"app.config": "a = 1\nb = {$a}\n"}

	lines, err := src.Open("app.config")
	require.NoError(t, err)
	assert.Equal(t, []string{"a = 1", "b = {$a}"}, lines)

	_, err = src.Open("other.config")
	assert.ErrorIs(t, err, ErrFileUnavailable)
}
