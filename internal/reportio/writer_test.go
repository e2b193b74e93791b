package reportio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiskWriterWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")

	w := NewDiskWriter()
	if err := w.WriteFile(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "<html></html>" {
		t.Fatalf("unexpected content: %q", content)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.Name() != "report.html" {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestDryRunWriterDoesNotTouchDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")

	w := NewDryRunWriter()
	if err := w.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no file to be created in dry-run mode")
	}
	if w.Summary() == "No report files would be written." {
		t.Fatalf("expected summary to mention the simulated write")
	}
}
