package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", backendFile, false, "*cache.FileCache"},
		{"none", backendNone, false, "*cache.NullCache"},
		{"no-cache flag wins", backendFile, true, "*cache.NullCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			c.Config.Cache.Backend = tt.backend
			cc, err := c.newCache(t.Context(), tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer cc.Close()
			if got := fmt.Sprintf("%T", cc); got != tt.want {
				t.Errorf("cache type = %s, want %s", got, tt.want)
			}
		})
	}
}
