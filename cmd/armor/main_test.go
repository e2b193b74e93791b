package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestHeader(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRunExitsZeroOnCleanComparison(t *testing.T) {
	dir := t.TempDir()
	base := writeTestHeader(t, dir, "base.h", "int f();\n")
	head := writeTestHeader(t, dir, "head.h", "int f();\n")

	wd, _ := os.Getwd()
	t.Chdir(dir)
	defer os.Chdir(wd)

	code := run([]string{base, head, "--dry-run"})
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestRunExitsNonZeroOnMissingArgs(t *testing.T) {
	code := run([]string{"only-one-arg"})
	if code != exitInvoke {
		t.Fatalf("expected exitInvoke, got %d", code)
	}
}
