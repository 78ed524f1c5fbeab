package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheCommands(t *testing.T) {
	home := t.TempDir()

	output, err := runCLIHome(t, home, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(output, "Cache is empty") {
		t.Errorf("clear on empty cache printed %q", output)
	}

	dest := filepath.Join(t.TempDir(), "b")
	if _, err := runCLIHome(t, home, "generate", "4", "-o", dest, "-f", "json,dot"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if entries, err := os.ReadDir(dir); err != nil || len(entries) == 0 {
		t.Fatalf("generate left no cache entries in %s: %v", dir, err)
	}

	output, err = runCLIHome(t, home, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(output, "Cleared") {
		t.Errorf("clear printed %q", output)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("%d entries left after clear", len(entries))
	}

	output, err = runCLIHome(t, home, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if !strings.Contains(output, dir) {
		t.Errorf("cache path printed %q, want %q", output, dir)
	}
}
