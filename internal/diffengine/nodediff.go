// Package diffengine implements C6 (per-node field diff) and C7 (tree
// diff). It compares two NormalizedContexts built from the same header at
// two revisions and produces a tagged difference tree.
//
// Grounded on other_examples' hercules TreeDiff (added/removed/modified
// three-way partitioning of two trees) and crossplane-diff's
// StructuredDiffRenderer (DiffType enum + per-field buildDiffDetail
// shape), generalized from "one flat resource" to a recursive node tree.
package diffengine

import "github.com/oxhq/armor/internal/apinode"

// FieldChange is one field-level difference between two otherwise-matched
// nodes: the field's name and its value before and after.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// diffFields compares the attributes spec.md §4.4 names as significant for
// a per-node diff. For Function/Method nodes the comparison is restricted
// to return type (TypeName), calling convention, storage and inline;
// const/virtual are not compared for them. For every other kind the full
// attribute set is compared.
func diffFields(old, new *apinode.Node) []FieldChange {
	var changes []FieldChange

	add := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, FieldChange{Field: field, Old: oldVal, New: newVal})
		}
	}

	if old.IsFunctionLike() {
		add("returnType", old.TypeName, new.TypeName)
		add("callingConvention", old.CallingConvention, new.CallingConvention)
		add("storage", string(old.Storage), string(new.Storage))
		add("inline", boolStr(old.IsInline), boolStr(new.IsInline))
		return changes
	}

	add("typeName", old.TypeName, new.TypeName)
	add("dataType", old.DataType, new.DataType)
	add("value", old.Value, new.Value)
	add("access", string(old.Access), string(new.Access))
	add("storage", string(old.Storage), string(new.Storage))
	add("const", string(old.Const), string(new.Const))
	add("virtual", string(old.Virtual), string(new.Virtual))
	add("callingConvention", old.CallingConvention, new.CallingConvention)
	add("pointer", boolStr(old.IsPointer), boolStr(new.IsPointer))
	add("reference", boolStr(old.IsReference), boolStr(new.IsReference))
	add("rvalueRef", boolStr(old.IsRValueRef), boolStr(new.IsRValueRef))
	add("packed", boolStr(old.IsPacked), boolStr(new.IsPacked))

	return changes
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
