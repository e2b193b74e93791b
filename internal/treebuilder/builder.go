// Package treebuilder implements C5: it walks the Declarations a
// frontend.Provider hands back and populates a normctx.Context with
// apinode.Node records, pushing/popping a QualifiedNameBuilder scope stack
// as it recurses. It is the only place in ARMOR that turns front-end
// output into the normalized tree the diff engine operates on.
//
// Grounded on the teacher's internal/evaluator/universal.go Evaluate/
// createUniversalResult shape: a universal walker that owns no
// language-specific logic and delegates every per-node decision (kind,
// name, attributes) to an injected provider. Here the provider has
// already done its own walk (frontend.Declaration trees) so treebuilder's
// job is strictly "declaration tree -> normalized node tree", not
// tree-sitter traversal itself.
package treebuilder

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/oxhq/armor/internal/apinode"
	"github.com/oxhq/armor/internal/frontend"
	"github.com/oxhq/armor/internal/normctx"
)

// Diagnostic records a declaration the builder could not place in the
// tree. An unparseable or unrecognized declaration is skipped with a
// diagnostic, never retried and never fatal to the run.
type Diagnostic struct {
	HeaderFile string
	Line, Col  int
	Message    string
}

// Build parses headerFile with provider and returns the populated context
// plus any per-declaration diagnostics.
func Build(provider frontend.Provider, headerFile string, source []byte, includeDirs []string, macroDefs map[string]string, exclusions []string) (*normctx.Context, []Diagnostic, error) {
	decls, err := provider.Parse(headerFile, source, includeDirs, macroDefs)
	if err != nil {
		return nil, nil, fmt.Errorf("treebuilder: %s: %w", headerFile, err)
	}

	ctx := normctx.New(headerFile, exclusions)
	b := &builder{ctx: ctx, scope: apinode.NewQualifiedNameBuilder(), headerFile: headerFile}

	for i, d := range decls {
		n, ok := b.build(d, i)
		if !ok {
			continue
		}
		ctx.AddRoot(n)
	}

	return ctx, b.diagnostics, nil
}

type builder struct {
	ctx         *normctx.Context
	scope       *apinode.QualifiedNameBuilder
	headerFile  string
	diagnostics []Diagnostic
}

// build converts one Declaration (and its Children) into a Node tree. The
// declOrderIndex is the declaration's position among its siblings, used
// only for USR synthesis and for naming anonymous members; it is never
// part of the diff key.
func (b *builder) build(d frontend.Declaration, declOrderIndex int) (*apinode.Node, bool) {
	if d.Kind == "" {
		b.diag(d, "declaration has no recognized kind, skipped")
		return nil, false
	}

	name := d.Name
	if name == "" {
		name = fmt.Sprintf("#%d", declOrderIndex)
	}

	qn := b.scope.Join(name)
	usr := synthesizeUSR(qn, d.DataType, declOrderIndex)

	n := apinode.NewNode(d.Kind, qn, usr)
	n.TypeName = d.TypeSpelling
	n.DataType = d.DataType
	n.Value = d.Value
	n.Access = d.Access
	n.Storage = d.Storage
	n.Const = d.Const
	n.Virtual = d.Virtual
	n.IsInline = d.IsInline
	if d.CallingConvention != "" {
		n.CallingConvention = d.CallingConvention
	}

	if d.DataType == "" && n.TypeName != "" {
		prefix, terminal := apinode.Unwrap(n.TypeName)
		n.IsPointer = containsRune(prefix, '*')
		n.IsReference = hasSuffixToken(prefix, "&") && !hasSuffixToken(prefix, "&&")
		n.IsRValueRef = hasSuffixToken(prefix, "&&")
		_ = terminal
	}

	// Scopes that introduce a naming context push onto the scope stack for
	// their children; Parameter/Enumerator/Field never do (they have no
	// descendants that would nest under them).
	introducesScope := d.Kind == apinode.KindNamespace || d.Kind == apinode.KindClass ||
		d.Kind == apinode.KindStruct || d.Kind == apinode.KindUnion ||
		d.Kind == apinode.KindEnum || d.Kind == apinode.KindFunction ||
		d.Kind == apinode.KindMethod

	if introducesScope {
		b.scope.Push(name)
	}

	if n.IsFunctionLike() {
		rtQN := b.scope.Join("returnType")
		rt := apinode.NewNode(apinode.KindReturnType, rtQN, synthesizeUSR(rtQN, d.TypeSpelling, -1))
		rt.TypeName = d.TypeSpelling
		rt.DataType = d.TypeSpelling
		n.AddChild(rt)
		b.ctx.Register(rt)
	}

	for i, child := range d.Children {
		childNode, ok := b.build(child, i)
		if !ok {
			continue
		}
		n.AddChild(childNode)
		b.ctx.Register(childNode)
	}

	if introducesScope {
		b.scope.Pop()
	}

	return n, true
}

func (b *builder) diag(d frontend.Declaration, msg string) {
	b.diagnostics = append(b.diagnostics, Diagnostic{
		HeaderFile: b.headerFile, Line: d.Line, Col: d.Column, Message: msg,
	})
}

// synthesizeUSR builds a stable key for a declaration that has none of its
// own (the C/C++ front-end has no clang-USR equivalent to hand back): a
// SHA1 of the qualified name, its signature (for function overloads), and
// its declaration-order index (so two sibling anonymous members, e.g. two
// unnamed bit-fields, still get distinct keys), per SPEC_FULL.md §4.8.
func synthesizeUSR(qualifiedName, dataType string, declOrderIndex int) string {
	h := sha1.New()
	h.Write([]byte(qualifiedName))
	h.Write([]byte{0})
	h.Write([]byte(dataType))
	h.Write([]byte{0})
	fmt.Fprintf(h, "%d", declOrderIndex)
	return hex.EncodeToString(h.Sum(nil))
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

func hasSuffixToken(s, tok string) bool {
	if len(s) < len(tok) {
		return false
	}
	return s[len(s)-len(tok):] == tok
}
