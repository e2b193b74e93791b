package diffengine

import (
	"testing"

	"github.com/oxhq/armor/internal/apinode"
)

func noneExcluded(string) bool { return false }

func TestDiffRootsReflexive(t *testing.T) {
	n := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	n.DataType = "int(int)"
	result := DiffRoots([]*apinode.Node{n}, []*apinode.Node{n}, noneExcluded)
	if len(result) != 0 {
		t.Fatalf("diff(H,H) should be empty, got %d entries", len(result))
	}
}

func TestDiffRootsDetectsRemoved(t *testing.T) {
	n := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	n.DataType = "int(int)"
	result := DiffRoots([]*apinode.Node{n}, nil, noneExcluded)
	if len(result) != 1 || result[0].Tag != TagRemoved {
		t.Fatalf("expected a single removed root, got %+v", result)
	}
}

func TestDiffRootsDetectsAdded(t *testing.T) {
	n := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	n.DataType = "int(int)"
	result := DiffRoots(nil, []*apinode.Node{n}, noneExcluded)
	if len(result) != 1 || result[0].Tag != TagAdded {
		t.Fatalf("expected a single added root, got %+v", result)
	}
}

func TestDiffRootsOverloadsAreDistinctByDataType(t *testing.T) {
	baseFn := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	baseFn.DataType = "int(int)"

	headFn1 := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	headFn1.DataType = "int(int)"
	headFn2 := apinode.NewNode(apinode.KindFunction, "foo", "u2")
	headFn2.DataType = "int(int,int)"

	result := DiffRoots([]*apinode.Node{baseFn}, []*apinode.Node{headFn1, headFn2}, noneExcluded)
	if len(result) != 1 || result[0].Tag != TagAdded {
		t.Fatalf("adding a second overload should report one added root, got %+v", result)
	}
}

func TestDiffNodesModifiedReturnsFieldChanges(t *testing.T) {
	base := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	base.DataType = "int(int)"
	base.TypeName = "int"

	head := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	head.DataType = "int(int)"
	head.TypeName = "long"

	result := DiffRoots([]*apinode.Node{base}, []*apinode.Node{head}, noneExcluded)
	if len(result) != 1 || result[0].Tag != TagModified {
		t.Fatalf("expected a single modified root, got %+v", result)
	}
	if len(result[0].FieldChanges) == 0 {
		t.Fatalf("expected return-type field change to be recorded")
	}
}

func TestDiffRootsAntiSymmetric(t *testing.T) {
	base := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	base.DataType = "int(int)"
	head := apinode.NewNode(apinode.KindFunction, "foo", "u1")
	head.DataType = "int(long)"

	fwd := DiffRoots([]*apinode.Node{base}, []*apinode.Node{head}, noneExcluded)
	rev := DiffRoots([]*apinode.Node{head}, []*apinode.Node{base}, noneExcluded)

	if len(fwd) != 2 || len(rev) != 2 {
		t.Fatalf("changing the overload key should split into removed+added both ways, got fwd=%+v rev=%+v", fwd, rev)
	}
}
