// Package reportio implements C13: writing report files to disk, with a
// dry-run mode that reports what would be written without touching the
// filesystem. Grounded on internal/writer/writer.go's Writer interface
// (DryRunWriter/DiskWriter) and internal/util/file.go's WriteFileAtomic
// (temp file + rename).
package reportio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Writer is the abstraction the CLI (C14) writes report bytes through.
type Writer interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	Summary() string
}

// fileWrite records one path that was (or would be) written, for the
// final run summary.
type fileWrite struct {
	Path string
	Size int
}

// DryRunWriter tracks what would be written without touching disk.
type DryRunWriter struct {
	writes []fileWrite
}

// NewDryRunWriter returns a Writer that performs no I/O.
func NewDryRunWriter() *DryRunWriter { return &DryRunWriter{} }

func (w *DryRunWriter) WriteFile(path string, content []byte, _ os.FileMode) error {
	w.writes = append(w.writes, fileWrite{Path: path, Size: len(content)})
	return nil
}

func (w *DryRunWriter) Summary() string {
	if len(w.writes) == 0 {
		return "No report files would be written."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Would write %d report file(s):\n", len(w.writes))
	for _, fw := range w.writes {
		fmt.Fprintf(&sb, "  %s (%d bytes)\n", fw.Path, fw.Size)
	}
	return sb.String()
}

// DiskWriter writes report files atomically to disk.
type DiskWriter struct {
	written []string
}

// NewDiskWriter returns a Writer that commits to disk.
func NewDiskWriter() *DiskWriter { return &DiskWriter{} }

func (w *DiskWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := writeFileAtomic(path, content, perm); err != nil {
		return fmt.Errorf("reportio: write %s: %w", path, err)
	}
	w.written = append(w.written, path)
	return nil
}

func (w *DiskWriter) Summary() string {
	if len(w.written) == 0 {
		return "No report files were written."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Wrote %d report file(s):\n", len(w.written))
	for _, p := range w.written {
		fmt.Fprintf(&sb, "  %s\n", p)
	}
	return sb.String()
}

// writeFileAtomic writes data to a temp file in the same directory, then
// renames it into place, so a reader never observes a partially written
// report.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
