// FILE: bbconfig/source.go
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"syscall"
)

// DefaultConfigFile is read when no other path has been configured.
const DefaultConfigFile = "/brainboost/global.config"

// LineSource produces the ordered lines of a named configuration resource.
// Implementations return an error wrapping ErrFileUnavailable when the resource
// cannot be opened or read.
type LineSource interface {
	Open(descriptor string) ([]string, error)
}

// FileSource reads lines from the local filesystem.
type FileSource struct {
	// MaxFileSize rejects larger files when positive.
	MaxFileSize int64

	// EnforceFileOwnership rejects files not owned by the effective user (Unix only).
	EnforceFileOwnership bool
}

// Open reads all lines of the file at path.
func (s FileSource) Open(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: configuration file '%s' not found", ErrFileUnavailable, path)
		}
		return nil, fmt.Errorf("%w: failed to stat configuration file '%s': %w", ErrFileUnavailable, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: configuration path '%s' is a directory", ErrFileUnavailable, path)
	}

	// Security: File size check
	if s.MaxFileSize > 0 && info.Size() > s.MaxFileSize {
		return nil, fmt.Errorf("%w: configuration file '%s' exceeds maximum size %d bytes", ErrFileUnavailable, path, s.MaxFileSize)
	}

	// Security: File ownership check (Unix only)
	if s.EnforceFileOwnership && runtime.GOOS != "windows" {
		if stat, ok := info.Sys().(*syscall.Stat_t); ok {
			if stat.Uid != uint32(os.Geteuid()) {
				return nil, fmt.Errorf("%w: configuration file '%s' is not owned by current user (file UID: %d, process UID: %d)",
					ErrFileUnavailable, path, stat.Uid, os.Geteuid())
			}
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open configuration file '%s': %w", ErrFileUnavailable, path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if s.MaxFileSize > 0 {
		reader = io.LimitReader(file, s.MaxFileSize)
	}

	lines, err := readLines(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read configuration file '%s': %w", ErrFileUnavailable, path, err)
	}
	return lines, nil
}

// StaticSource serves configuration text from memory, keyed by descriptor.
type StaticSource map[string]string

// Open returns the lines registered under descriptor.
func (s StaticSource) Open(descriptor string) ([]string, error) {
	content, ok := s[descriptor]
	if !ok {
		return nil, fmt.Errorf("%w: configuration '%s' not found", ErrFileUnavailable, descriptor)
	}
	return readLines(strings.NewReader(content))
}

// readLines returns the lines of r without their line endings. Lines may be of
// any length; FileSource.MaxFileSize is the only bound on input size.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
