package diffengine

import "github.com/oxhq/armor/internal/apinode"

// Tag marks how a DiffNode relates its base and head counterparts.
type Tag string

const (
	TagAdded    Tag = "added"
	TagRemoved  Tag = "removed"
	TagModified Tag = "modified"
)

// DiffNode is one entry of the tagged difference tree spec.md §4.5
// describes: either a full added/removed subtree, or a modified node
// carrying the accumulated child diffs and field-level attribute changes
// between its base and head counterparts.
type DiffNode struct {
	QualifiedName string
	NodeType      apinode.Kind
	Tag           Tag

	// DataType and TypeName are copied from the underlying node(s) so the
	// describer (C8) can phrase "with type '<dt>'"/"type changed from 'a'
	// to 'b'" without re-walking the original trees. For TagModified,
	// these are the base side's values (the head side lives in
	// FieldChanges when they differ).
	DataType string
	TypeName string

	// FieldChanges holds C6's per-node attribute diff, populated only on
	// Tag == TagModified nodes whose base/head counterparts differ in
	// some scalar attribute (return type, storage, inline, etc).
	FieldChanges []FieldChange

	// Children holds nested DiffNodes: for TagAdded/TagRemoved, the full
	// subtree (every descendant carries the same tag); for TagModified,
	// the accumulated removed/added/modified entries from the recursive
	// partition.
	Children []*DiffNode
}

// DiffRoots runs C7's two-phase root diff between a base and head
// NormalizedContext's roots. excluded reports whether a qualified name
// (or any ancestor of it, per C11's propagation rule — the caller's
// predicate is expected to already walk the ancestor chain) should be
// suppressed from the output entirely; it is consulted at every level of
// the recursion, not just at the roots, so an excluded inner declaration
// never surfaces even when its enclosing scope is otherwise reported.
//
// Roots are matched by qualified name; function-like roots are matched by
// qualified name and DataType signature together, so top-level overloads
// stay distinct.
func DiffRoots(baseRoots, headRoots []*apinode.Node, excluded func(qualifiedName string) bool) []*DiffNode {
	headByQN := indexByRootKey(headRoots)
	baseByQN := indexByRootKey(baseRoots)

	var out []*DiffNode

	for _, r1 := range baseRoots {
		if excluded(r1.QualifiedName) {
			continue
		}
		r2, ok := headByQN[rootKey(r1)]
		if !ok {
			out = append(out, toSubtree(r1, TagRemoved, excluded))
			continue
		}
		if d := diffNodes(r1, r2, excluded); d != nil {
			out = append(out, d)
		}
	}

	for _, r2 := range headRoots {
		if excluded(r2.QualifiedName) {
			continue
		}
		if _, ok := baseByQN[rootKey(r2)]; !ok {
			out = append(out, toSubtree(r2, TagAdded, excluded))
		}
	}

	return out
}

// rootKey is a root's identity in Phase 1: its qualified name, plus its
// DataType signature for function-like nodes.
func rootKey(n *apinode.Node) string {
	if n.IsFunctionLike() {
		return n.QualifiedName + "\x00" + n.DataType
	}
	return n.QualifiedName
}

func indexByRootKey(nodes []*apinode.Node) map[string]*apinode.Node {
	m := make(map[string]*apinode.Node, len(nodes))
	for _, n := range nodes {
		m[rootKey(n)] = n
	}
	return m
}

// toSubtree copies n and every descendant into a DiffNode tree, all
// carrying the same tag — the "full subtree via toJson" emission spec.md
// §4.5 describes for an unmatched root or child.
func toSubtree(n *apinode.Node, tag Tag, excluded func(string) bool) *DiffNode {
	d := &DiffNode{
		QualifiedName: n.QualifiedName, NodeType: n.Kind, Tag: tag,
		DataType: n.DataType, TypeName: n.TypeName,
	}
	for _, c := range n.Children {
		if excluded(c.QualifiedName) {
			continue
		}
		d.Children = append(d.Children, toSubtree(c, tag, excluded))
	}
	return d
}

// diffKey returns the matching key for a node per §4.5's key extractor:
// dataType for Function/Method (overload discrimination), qualifiedName
// otherwise.
func diffKey(n *apinode.Node) string {
	return n.DiffKey()
}

// checkLayoutChange reports whether a.kind's child ordering matters for
// binary compatibility. Enum is excluded: its children (enumerators)
// carry their own ordinal value, so pure reordering is not itself a
// layout change (spec.md §4.5 "Layout-change sentinel"). Gated for future
// use; today no layout-change record is emitted either way.
func checkLayoutChange(n *apinode.Node) bool {
	return n.Kind != apinode.KindEnum
}

// diffNodes implements Phase 2: the recursive per-node diff between two
// matched nodes a (base) and b (head).
func diffNodes(a, b *apinode.Node, excluded func(string) bool) *DiffNode {
	fieldChanges := diffFields(a, b)

	// Either side being childless skips partitioning entirely (spec.md §4.5):
	// the result is only the parent's own field diff, with no add/remove
	// subtree per surviving or vanished child. A struct losing all its fields
	// is therefore reported only if its own attributes also differ; when
	// they are equal, no diff is returned.
	if len(a.Children) == 0 || len(b.Children) == 0 {
		if len(fieldChanges) == 0 {
			return nil
		}
		return &DiffNode{
			QualifiedName: a.QualifiedName, NodeType: a.Kind, Tag: TagModified,
			DataType: a.DataType, TypeName: a.TypeName, FieldChanges: fieldChanges,
		}
	}

	var accumulated []*DiffNode

	bByKey := indexByKey(b.Children)
	aByKey := indexByKey(a.Children)

	for _, ac := range a.Children {
		if excluded(ac.QualifiedName) {
			continue
		}
		key := diffKey(ac)
		bc, ok := bByKey[key]
		if !ok {
			accumulated = append(accumulated, toSubtree(ac, TagRemoved, excluded))
			continue
		}
		if d := diffNodes(ac, bc, excluded); d != nil {
			accumulated = append(accumulated, d)
		}
	}

	for _, bc := range b.Children {
		if excluded(bc.QualifiedName) {
			continue
		}
		key := diffKey(bc)
		if _, ok := aByKey[key]; !ok {
			accumulated = append(accumulated, toSubtree(bc, TagAdded, excluded))
		}
	}
	_ = checkLayoutChange(a)

	if len(accumulated) == 0 && len(fieldChanges) == 0 {
		return nil
	}

	return &DiffNode{
		QualifiedName: a.QualifiedName, NodeType: a.Kind, Tag: TagModified,
		DataType: a.DataType, TypeName: a.TypeName,
		FieldChanges: fieldChanges, Children: accumulated,
	}
}

func indexByKey(nodes []*apinode.Node) map[string]*apinode.Node {
	m := make(map[string]*apinode.Node, len(nodes))
	for _, n := range nodes {
		m[diffKey(n)] = n
	}
	return m
}
