package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestServeCacheSelection(t *testing.T) {
	c, _, _ := newTestCLI(t)
	ctx := t.Context()

	tests := []struct {
		name string
		opts serveOpts
		want string
	}{
		{"disabled", serveOpts{noCache: true}, "cache.NullCache"},
		{"memory", serveOpts{memoryCache: 8}, "*cache.MemoryCache"},
		{"file", serveOpts{}, "*cache.FileCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc, err := c.serveCache(ctx, tt.opts)
			if err != nil {
				t.Fatalf("serveCache: %v", err)
			}
			defer cc.Close()
			if got := typeName(cc); got != tt.want {
				t.Errorf("cache type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
