package xdg_test

import (
	"path/filepath"
	"testing"

	"github.com/oa-drill/evaluator/internal/xdg"
	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache/x")
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("XDG_CONFIG_HOME", "/etc/x")

	d := xdg.New()
	assert.Equal(t, "/var/cache/x/app", d.AppCacheDir("app"))
	assert.Equal(t, "/run/user/1000/app", d.AppRuntimeDir("app"))
	assert.Equal(t, "/etc/x/app", d.AppConfigDir("app"))
}

func TestDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_RUNTIME_DIR", "")

	d := xdg.New()
	assert.Equal(t, filepath.Join(home, ".cache"), d.CacheHome())
	assert.Equal(t, filepath.Join(home, ".config"), d.ConfigHome())
	assert.NotEmpty(t, d.RuntimeDir())
}
