package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oxhq/armor/internal/config"
	"github.com/oxhq/armor/internal/exclude"
	"github.com/oxhq/armor/internal/frontend"
	"github.com/oxhq/armor/internal/frontend/cpp"
	"github.com/oxhq/armor/internal/reportio"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *reportio.DryRunWriter) {
	t.Helper()
	reg := frontend.NewRegistry()
	if err := reg.Register(cpp.New()); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	writer := reportio.NewDryRunWriter()
	cfg := &config.Config{Report: config.ReportJSON}
	o := New(cfg, reg, exclude.New(nil), nil, writer, nil)
	return o, writer
}

func writeHeader(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRunProducesReportsForAddedFunction(t *testing.T) {
	dir := t.TempDir()
	basePath := writeHeader(t, dir, "base.h", "int f();\n")
	headPath := writeHeader(t, dir, "head.h", "int f();\nint g();\n")

	o, writer := newTestOrchestrator(t)
	results := o.Run([]HeaderPair{{Name: "api.h", Base: basePath, Head: headPath}})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if len(r.Grouped) == 0 {
		t.Fatalf("expected at least one grouped record for the added function")
	}

	summary := writer.Summary()
	if summary == "No report files would be written." {
		t.Fatalf("expected report files to be simulated")
	}
}

func TestRunSkipsMissingHeaderPair(t *testing.T) {
	dir := t.TempDir()
	basePath := writeHeader(t, dir, "base.h", "int f();\n")

	o, _ := newTestOrchestrator(t)
	results := o.Run([]HeaderPair{{Name: "api.h", Base: basePath, Head: filepath.Join(dir, "missing.h")}})

	if len(results) != 0 {
		t.Fatalf("expected missing pair to be dropped by discovery, got %d results", len(results))
	}
}

func TestResolveSingleHeaderPair(t *testing.T) {
	cfg := &config.Config{BaseHeaderPath: "a/api.h", HeadHeaderPath: "b/api.h"}
	pairs := Resolve(cfg)
	if len(pairs) != 1 || pairs[0].Name != "api.h" {
		t.Fatalf("unexpected resolved pairs: %+v", pairs)
	}
}

func TestResolveMultipleHeaderNames(t *testing.T) {
	cfg := &config.Config{
		BaseHeaderPath: "v1",
		HeadHeaderPath: "v2",
		HeaderDir:      "headers",
		HeaderNames:    []string{"a.h", "b.h"},
	}
	pairs := Resolve(cfg)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Base != filepath.Join("v1", "headers", "a.h") {
		t.Fatalf("unexpected base path: %s", pairs[0].Base)
	}
	if pairs[0].Head != filepath.Join("v2", "headers", "a.h") {
		t.Fatalf("unexpected head path: %s", pairs[0].Head)
	}
	if pairs[0].Base == pairs[0].Head {
		t.Fatalf("expected base and head to resolve to distinct roots, got %s for both", pairs[0].Base)
	}
}
