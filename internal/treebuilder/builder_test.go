package treebuilder

import (
	"testing"

	"github.com/oxhq/armor/internal/frontend/cpp"
)

func TestBuildSimpleFunction(t *testing.T) {
	src := []byte(`
int add(int a, int b);
`)
	ctx, diags, err := Build(cpp.New(), "test.h", src, nil, nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(ctx.Roots) != 1 {
		t.Fatalf("expected 1 root declaration, got %d", len(ctx.Roots))
	}
	fn := ctx.Roots[0]
	if fn.QualifiedName != "add" {
		t.Fatalf("QualifiedName = %q, want \"add\"", fn.QualifiedName)
	}
	// returnType + 2 parameters
	if len(fn.Children) != 3 {
		t.Fatalf("expected 3 children (returnType + 2 params), got %d", len(fn.Children))
	}
}

func TestBuildStructWithFields(t *testing.T) {
	src := []byte(`
struct Point {
    int x;
    int y;
};
`)
	ctx, _, err := Build(cpp.New(), "test.h", src, nil, nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(ctx.Roots) != 1 {
		t.Fatalf("expected 1 root declaration, got %d", len(ctx.Roots))
	}
	st := ctx.Roots[0]
	if len(st.Children) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(st.Children))
	}
}

func TestBuildRespectsExclusions(t *testing.T) {
	src := []byte(`int internalOnly();`)
	ctx, _, err := Build(cpp.New(), "test.h", src, nil, nil, []string{"internalOnly"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !ctx.IsExcluded("internalOnly") {
		t.Fatalf("expected internalOnly to be excluded")
	}
}
