// FILE: bbconfig/discovery.go
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions lists where WithFileDiscovery looks for the configuration file
type FileDiscoveryOptions struct {
	AppName   string   // Subdirectory searched under the XDG config roots
	FileNames []string // Names tried in each directory, in order
	Dirs      []string // Directories searched first

	EnvVar  string // Variable holding an explicit path
	CLIFlag string // Accepts "--config path" and "--config=path"

	UseCurrentDir bool
	UseXDG        bool
}

// DefaultDiscoveryOptions looks for global.config or <appName>.config in
// /brainboost, the working directory and the XDG config directories.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		AppName:       appName,
		FileNames:     []string{filepath.Base(DefaultConfigFile), appName + ".config"},
		Dirs:          []string{filepath.Dir(DefaultConfigFile)},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseCurrentDir: true,
		UseXDG:        true,
	}
}

// WithFileDiscovery picks the configuration file: CLI flag first, then the
// environment variable, then the first existing file on the search paths.
// When nothing is found the current file setting is kept.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	if path, ok := DiscoverFile(opts, b.args); ok {
		b.file = path
	}
	return b
}

// DiscoverFile resolves a configuration file path using opts and args.
// Explicit paths from the flag or environment are returned without checking
// that they exist, so a typo surfaces as ErrFileUnavailable on load.
func DiscoverFile(opts FileDiscoveryOptions, args []string) (string, bool) {
	if path, ok := flagValue(args, opts.CLIFlag); ok {
		return path, true
	}
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}

	for _, dir := range opts.searchDirs() {
		for _, name := range opts.FileNames {
			if path := filepath.Join(dir, name); isRegularFile(path) {
				return path, true
			}
		}
	}
	return "", false
}

// flagValue returns the value given to flag in args.
func flagValue(args []string, flag string) (string, bool) {
	if flag == "" {
		return "", false
	}
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value, value != ""
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

// searchDirs returns the directories to search, in priority order.
func (o FileDiscoveryOptions) searchDirs() []string {
	dirs := append([]string{}, o.Dirs...)
	if o.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if o.UseXDG && o.AppName != "" {
		dirs = append(dirs, xdgConfigDirs(o.AppName)...)
	}
	return dirs
}

// xdgConfigDirs returns <root>/<appName> for the user config root followed by
// the system roots in XDG_CONFIG_DIRS (default /etc/xdg).
func xdgConfigDirs(appName string) []string {
	var roots []string
	if userRoot := os.Getenv("XDG_CONFIG_HOME"); userRoot != "" {
		roots = append(roots, userRoot)
	} else if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, ".config"))
	}

	system := os.Getenv("XDG_CONFIG_DIRS")
	if system == "" {
		system = "/etc/xdg"
	}
	roots = append(roots, filepath.SplitList(system)...)

	dirs := make([]string, len(roots))
	for i, root := range roots {
		dirs[i] = filepath.Join(root, appName)
	}
	return dirs
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
