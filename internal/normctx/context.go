// Package normctx holds C4, the Normalized Context: the per-header
// collection of API nodes the tree builder populates and the diff engine
// consumes.
package normctx

import "github.com/oxhq/armor/internal/apinode"

// Context groups all nodes parsed from one header. It is created empty,
// populated by a single tree-building traversal, then becomes read-only.
type Context struct {
	// tree maps USR to node. Every node reachable from Roots is present
	// here; lookup is O(1) expected.
	tree map[string]*apinode.Node

	// Roots is the ordered sequence of top-level declarations (free
	// functions, typedefs, records, variables, macros) declared directly
	// in the header, in source order.
	Roots []*apinode.Node

	// Excluded holds qualified names explicitly excluded from diff
	// reporting (spec.md §6 "Exclusion list").
	Excluded map[string]bool

	// HeaderFile is the path of the header this context was built from.
	HeaderFile string
}

// New returns an empty context with the given exclusion set. A nil or empty
// exclusions slice means nothing is excluded.
func New(headerFile string, exclusions []string) *Context {
	excl := make(map[string]bool, len(exclusions))
	for _, q := range exclusions {
		excl[q] = true
	}
	return &Context{
		tree:       make(map[string]*apinode.Node),
		Excluded:   excl,
		HeaderFile: headerFile,
	}
}

// Register indexes a node by its USR. A node with an empty USR is not
// indexed; the tree builder synthesizes a USR for every node it builds.
func (c *Context) Register(n *apinode.Node) {
	if n.USR == "" {
		return
	}
	c.tree[n.USR] = n
}

// AddRoot registers n and appends it to Roots.
func (c *Context) AddRoot(n *apinode.Node) {
	c.Register(n)
	c.Roots = append(c.Roots, n)
}

// Lookup returns the node for a USR, and whether it was found.
func (c *Context) Lookup(usr string) (*apinode.Node, bool) {
	n, ok := c.tree[usr]
	return n, ok
}

// RootByQualifiedName finds the first root node with the given qualified
// name. Overloaded functions share a qualified name, so only the first of
// them is returned. The tree diff engine does not use this lookup; it
// indexes the roots it is given itself.
func (c *Context) RootByQualifiedName(qualifiedName string) (*apinode.Node, bool) {
	for _, r := range c.Roots {
		if r.QualifiedName == qualifiedName {
			return r, true
		}
	}
	return nil, false
}

// IsExcluded reports whether qualifiedName is in the exclusion set.
func (c *Context) IsExcluded(qualifiedName string) bool {
	return c.Excluded[qualifiedName]
}

// Len returns the number of indexed nodes.
func (c *Context) Len() int {
	return len(c.tree)
}
