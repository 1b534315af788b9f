// Package xdg resolves per-user base directories following the XDG Base
// Directory layout, used for default cache and workspace locations.
package xdg

import (
	"os"
	"path/filepath"
	"strconv"
)

// Dirs holds the resolved base directories.
type Dirs struct {
	configHome string
	cacheHome  string
	runtimeDir string
}

// New reads XDG_* variables, falling back to the documented defaults.
func New() *Dirs {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv("HOME")
		if homeDir == "" {
			homeDir = os.TempDir()
		}
	}

	d := &Dirs{}

	d.configHome = os.Getenv("XDG_CONFIG_HOME")
	if d.configHome == "" {
		d.configHome = filepath.Join(homeDir, ".config")
	}

	d.cacheHome = os.Getenv("XDG_CACHE_HOME")
	if d.cacheHome == "" {
		d.cacheHome = filepath.Join(homeDir, ".cache")
	}

	// Without XDG_RUNTIME_DIR a per-user directory under the system temp dir
	// stands in.
	d.runtimeDir = os.Getenv("XDG_RUNTIME_DIR")
	if d.runtimeDir == "" {
		d.runtimeDir = filepath.Join(os.TempDir(), "runtime-"+strconv.Itoa(os.Getuid()))
	}

	return d
}

func (d *Dirs) ConfigHome() string { return d.configHome }
func (d *Dirs) CacheHome() string  { return d.cacheHome }
func (d *Dirs) RuntimeDir() string { return d.runtimeDir }

// AppConfigDir returns the application-specific config directory
func (d *Dirs) AppConfigDir(appName string) string {
	return filepath.Join(d.configHome, appName)
}

// AppCacheDir returns the application-specific cache directory
func (d *Dirs) AppCacheDir(appName string) string {
	return filepath.Join(d.cacheHome, appName)
}

// AppRuntimeDir returns the application-specific runtime directory
func (d *Dirs) AppRuntimeDir(appName string) string {
	return filepath.Join(d.runtimeDir, appName)
}
