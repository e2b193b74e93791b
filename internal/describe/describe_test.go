package describe

import (
	"strings"
	"testing"

	"github.com/oxhq/armor/internal/apinode"
	"github.com/oxhq/armor/internal/diffengine"
)

func TestDescribeTopLevelAddedIsFunctionalityChanged(t *testing.T) {
	d := &diffengine.DiffNode{QualifiedName: "newFn", NodeType: apinode.KindFunction, Tag: diffengine.TagAdded}
	recs := Describe("api.h", []*diffengine.DiffNode{d})
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].ChangeType != FunctionalityChanged {
		t.Fatalf("ChangeType = %q, want Functionality_changed", recs[0].ChangeType)
	}
	if recs[0].Compatibility != BackwardCompatible {
		t.Fatalf("Compatibility = %q, want backward_compatible", recs[0].Compatibility)
	}
}

func TestDescribeRemovedIsCompatibilityChanged(t *testing.T) {
	d := &diffengine.DiffNode{QualifiedName: "oldFn", NodeType: apinode.KindFunction, Tag: diffengine.TagRemoved}
	recs := Describe("api.h", []*diffengine.DiffNode{d})
	if recs[0].ChangeType != CompatibilityChanged || recs[0].Compatibility != BackwardIncompatible {
		t.Fatalf("removed record should be Compatibility_changed/backward_incompatible, got %+v", recs[0])
	}
}

func TestDescribeParameterRenamePairing(t *testing.T) {
	removed := &diffengine.DiffNode{QualifiedName: "f.oldName", NodeType: apinode.KindParameter, Tag: diffengine.TagRemoved, DataType: "int", TypeName: "int"}
	added := &diffengine.DiffNode{QualifiedName: "f.newName", NodeType: apinode.KindParameter, Tag: diffengine.TagAdded, DataType: "int", TypeName: "int"}
	fn := &diffengine.DiffNode{
		QualifiedName: "f", NodeType: apinode.KindFunction, Tag: diffengine.TagModified,
		Children: []*diffengine.DiffNode{removed, added},
	}
	recs := Describe("api.h", []*diffengine.DiffNode{fn})
	if !strings.Contains(recs[0].Description, "Parameter renamed from 'oldName' to 'newName'") {
		t.Fatalf("expected rename pairing in description, got %q", recs[0].Description)
	}
}

func TestDescribeFunctionModifiedFallback(t *testing.T) {
	fn := &diffengine.DiffNode{QualifiedName: "f", NodeType: apinode.KindFunction, Tag: diffengine.TagModified}
	recs := Describe("api.h", []*diffengine.DiffNode{fn})
	if recs[0].Description != "Function modified" {
		t.Fatalf("expected fallback description, got %q", recs[0].Description)
	}
}
