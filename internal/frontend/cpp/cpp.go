// Package cpp implements frontend.Provider for C and C++ public headers,
// backed by github.com/smacker/go-tree-sitter's cpp grammar. This is the
// reference front-end named by SPEC_FULL.md §4.8 (C10); it mirrors the
// teacher's provider-per-language shape (internal/lang/golang) but walks
// the parse tree directly rather than translating a DSL query, since
// ARMOR has no query language — it wants every public declaration, not a
// filtered subset.
package cpp

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tscpp "github.com/smacker/go-tree-sitter/cpp"

	"github.com/oxhq/armor/internal/apinode"
	"github.com/oxhq/armor/internal/frontend"
)

// Provider is the C/C++ front-end.
type Provider struct{}

// New returns a ready-to-use C/C++ front-end.
func New() *Provider { return &Provider{} }

func (p *Provider) Name() string { return "cpp" }

func (p *Provider) Extensions() []string {
	return []string{".h", ".hh", ".hpp", ".hxx", ".h++"}
}

// Parse parses one header and returns its top-level declarations.
//
// includeDirs and macroDefs are accepted for interface completeness and
// forwarded to nothing today: the reference front-end parses exactly the
// bytes it is given and never textually substitutes a macro or opens an
// included file, per SPEC_FULL.md §4.8.
func (p *Provider) Parse(path string, source []byte, includeDirs []string, macroDefs map[string]string) ([]frontend.Declaration, error) {
	_ = path
	_ = includeDirs
	_ = macroDefs

	parser := sitter.NewParser()
	parser.SetLanguage(tscpp.GetLanguage())

	tree := parser.Parse(nil, source)
	if tree == nil {
		return nil, fmt.Errorf("cpp: failed to parse source")
	}
	defer tree.Close()

	w := &walker{src: source}
	return w.walkBlock(tree.RootNode(), apinode.AccessNone), nil
}

// walker carries the source buffer shared by every text() call during one
// parse; it holds no per-call state otherwise.
type walker struct {
	src []byte
}

func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content(w.src))
}

func (w *walker) pos(n *sitter.Node) (line, col int) {
	p := n.StartPoint()
	return int(p.Row) + 1, int(p.Column) + 1
}

// walkBlock iterates the named children of a translation unit, namespace,
// or record body and returns the declarations found directly inside it.
// defaultAccess is None at namespace/translation-unit scope (no access
// specifier applies there, so functions found there stay KindFunction),
// "private" inside a class body, and "public" inside a struct/union body,
// per C++'s own default-access rules; access_specifier nodes update it as
// they are encountered.
func (w *walker) walkBlock(n *sitter.Node, defaultAccess apinode.Access) []frontend.Declaration {
	var decls []frontend.Declaration
	access := defaultAccess

	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "access_specifier":
			access = parseAccess(w.text(child))
		case "namespace_definition":
			decls = append(decls, w.namespaceDecl(child))
		case "class_specifier", "struct_specifier", "union_specifier":
			decls = append(decls, w.recordDecl(child, access))
		case "enum_specifier":
			decls = append(decls, w.enumDecl(child, access))
		case "function_definition":
			if d, ok := w.functionDecl(child, access); ok {
				decls = append(decls, d)
			}
		case "declaration":
			decls = append(decls, w.plainDeclaration(child, access)...)
		case "field_declaration":
			decls = append(decls, w.fieldDeclaration(child, access)...)
		case "type_definition":
			decls = append(decls, w.typedefDecl(child, access)...)
		case "alias_declaration":
			decls = append(decls, w.aliasDecl(child, access))
		case "template_declaration":
			decls = append(decls, w.walkBlock(child, access)...)
		case "preproc_ifdef", "preproc_if", "preproc_else", "preproc_elif":
			// Conditional compilation: flatten both branches, per C10's
			// documented scope (macro-diff is out of scope; ARMOR reports
			// whichever declarations the grammar exposes unconditionally).
			decls = append(decls, w.walkBlock(child, access)...)
		case "linkage_specification":
			// extern "C" { ... } — recurse into its declaration_list.
			if body := fieldOrLast(child, "body"); body != nil {
				decls = append(decls, w.walkBlock(body, access)...)
			}
		}
	}
	return decls
}

func parseAccess(spelling string) apinode.Access {
	switch strings.TrimSuffix(strings.TrimSpace(spelling), ":") {
	case "public":
		return apinode.AccessPublic
	case "protected":
		return apinode.AccessProtected
	case "private":
		return apinode.AccessPrivate
	default:
		return apinode.AccessNone
	}
}

func fieldOrLast(n *sitter.Node, field string) *sitter.Node {
	if f := n.ChildByFieldName(field); f != nil {
		return f
	}
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(int(n.NamedChildCount()) - 1)
}

func (w *walker) namespaceDecl(n *sitter.Node) frontend.Declaration {
	name := w.text(n.ChildByFieldName("name"))
	line, col := w.pos(n)
	var children []frontend.Declaration
	if body := n.ChildByFieldName("body"); body != nil {
		children = w.walkBlock(body, apinode.AccessNone)
	}
	return frontend.Declaration{
		Kind: apinode.KindNamespace, Name: name,
		Line: line, Column: col, Children: children,
	}
}

func recordKind(nodeType string) apinode.Kind {
	switch nodeType {
	case "class_specifier":
		return apinode.KindClass
	case "union_specifier":
		return apinode.KindUnion
	default:
		return apinode.KindStruct
	}
}

func (w *walker) recordDecl(n *sitter.Node, access apinode.Access) frontend.Declaration {
	name := w.text(n.ChildByFieldName("name"))
	line, col := w.pos(n)
	kind := recordKind(n.Type())

	defaultMemberAccess := apinode.AccessPublic
	if kind == apinode.KindClass {
		defaultMemberAccess = apinode.AccessPrivate
	}

	var children []frontend.Declaration
	if body := n.ChildByFieldName("body"); body != nil {
		children = w.walkBlock(body, defaultMemberAccess)
	}

	return frontend.Declaration{
		Kind: kind, Name: name, Access: access,
		Line: line, Column: col, Children: children,
	}
}

func (w *walker) enumDecl(n *sitter.Node, access apinode.Access) frontend.Declaration {
	name := w.text(n.ChildByFieldName("name"))
	line, col := w.pos(n)

	var children []frontend.Declaration
	body := n.ChildByFieldName("body")
	if body != nil {
		idx := 0
		count := int(body.NamedChildCount())
		for i := 0; i < count; i++ {
			enumerator := body.NamedChild(i)
			if enumerator.Type() != "enumerator" {
				continue
			}
			eName := w.text(enumerator.ChildByFieldName("name"))
			value := ""
			if v := enumerator.ChildByFieldName("value"); v != nil {
				value = w.text(v)
			}
			eLine, eCol := w.pos(enumerator)
			qn := eName
			if qn == "" {
				qn = fmt.Sprintf("#%d", idx)
			}
			children = append(children, frontend.Declaration{
				Kind: apinode.KindEnumerator, Name: qn, Value: value,
				Line: eLine, Column: eCol,
			})
			idx++
		}
	}

	return frontend.Declaration{
		Kind: apinode.KindEnum, Name: name, Access: access,
		Line: line, Column: col, Children: children,
	}
}

// functionDecl handles a full function_definition (has a body). Returns ok
// = false when the definition has no declarator or no function_declarator
// is found beneath its pointer/reference/parenthesized/qualified wrappers;
// such a definition is skipped.
func (w *walker) functionDecl(n *sitter.Node, access apinode.Access) (frontend.Declaration, bool) {
	declarator := n.ChildByFieldName("declarator")
	if declarator == nil {
		return frontend.Declaration{}, false
	}
	name, params, isFunctionLike := unwrapFunctionDeclarator(w, declarator)
	if !isFunctionLike {
		return frontend.Declaration{}, false
	}

	returnType := w.text(n.ChildByFieldName("type"))
	line, col := w.pos(n)

	kind := apinode.KindFunction
	if access != apinode.AccessNone {
		kind = apinode.KindMethod
	}

	storage := apinode.StorageNone
	constQ := apinode.ConstNone
	virtualQ := apinode.VirtualNone
	isInline := false

	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		switch w.text(c) {
		case "static":
			storage = apinode.StorageStatic
		case "extern":
			storage = apinode.StorageExtern
		case "inline":
			isInline = true
		case "virtual":
			virtualQ = apinode.VirtualVirtual
		case "constexpr":
			constQ = apinode.ConstExpr
		}
	}
	if strings.Contains(w.text(declarator), "const") {
		constQ = apinode.ConstConst
	}
	if strings.Contains(w.text(declarator), "override") {
		virtualQ = apinode.VirtualOverride
	}
	if strings.Contains(w.text(declarator), "= 0") {
		virtualQ = apinode.VirtualPureVirtual
	}

	return frontend.Declaration{
		Kind: kind, Name: name, Access: access,
		TypeSpelling: returnType, DataType: signature(returnType, params),
		Storage: storage, Const: constQ, Virtual: virtualQ, IsInline: isInline,
		Line: line, Column: col, Children: params,
	}, true
}

// unwrapFunctionDeclarator descends through pointer/reference declarator
// wrappers (as C2's Unwrap does for types) to find the innermost
// function_declarator, and returns the declared name plus its Parameter
// children.
func unwrapFunctionDeclarator(w *walker, n *sitter.Node) (name string, params []frontend.Declaration, ok bool) {
	cur := n
	for cur != nil {
		switch cur.Type() {
		case "function_declarator":
			declNode := cur.ChildByFieldName("declarator")
			name = w.text(declNode)
			params = w.parameterList(cur.ChildByFieldName("parameters"))
			return name, params, true
		case "pointer_declarator", "reference_declarator", "parenthesized_declarator",
			"qualified_identifier":
			if d := cur.ChildByFieldName("declarator"); d != nil {
				cur = d
				continue
			}
			if cur.NamedChildCount() > 0 {
				cur = cur.NamedChild(0)
				continue
			}
			return "", nil, false
		default:
			return "", nil, false
		}
	}
	return "", nil, false
}

func (w *walker) parameterList(n *sitter.Node) []frontend.Declaration {
	if n == nil {
		return nil
	}
	var params []frontend.Declaration
	count := int(n.NamedChildCount())
	idx := 0
	for i := 0; i < count; i++ {
		p := n.NamedChild(i)
		if p.Type() != "parameter_declaration" && p.Type() != "optional_parameter_declaration" {
			continue
		}
		typeSpelling := w.text(p.ChildByFieldName("type"))
		name := ""
		if d := p.ChildByFieldName("declarator"); d != nil {
			name = w.text(d)
		}
		if name == "" {
			name = fmt.Sprintf("#%d", idx)
		}
		value := ""
		if v := p.ChildByFieldName("default_value"); v != nil {
			value = w.text(v)
		}
		line, col := w.pos(p)
		params = append(params, frontend.Declaration{
			Kind: apinode.KindParameter, Name: name, TypeSpelling: typeSpelling,
			Value: value, Line: line, Column: col,
		})
		idx++
	}
	return params
}

// signature builds the dataType used for function-overload discrimination
// (C3's DiffKey): the return type plus each parameter's type spelling,
// joined stably so two declarations with identical signatures produce an
// identical key regardless of parameter names.
func signature(returnType string, params []frontend.Declaration) string {
	var b strings.Builder
	b.WriteString(returnType)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.TypeSpelling)
	}
	b.WriteByte(')')
	return b.String()
}

// plainDeclaration handles a non-function `declaration` node: either a
// prototype-only function (most header declarations) or a variable.
func (w *walker) plainDeclaration(n *sitter.Node, access apinode.Access) []frontend.Declaration {
	returnType := w.text(n.ChildByFieldName("type"))

	var decls []frontend.Declaration
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "function_declarator", "pointer_declarator", "reference_declarator":
			name, params, ok := unwrapFunctionDeclarator(w, c)
			if !ok {
				continue
			}
			line, col := w.pos(c)
			kind := apinode.KindFunction
			if access != apinode.AccessNone {
				kind = apinode.KindMethod
			}
			storage := declarationStorage(w, n)
			decls = append(decls, frontend.Declaration{
				Kind: kind, Name: name, Access: access,
				TypeSpelling: returnType, DataType: signature(returnType, params),
				Storage: storage, Line: line, Column: col, Children: params,
			})
		case "identifier", "init_declarator":
			name := c.Content(w.src)
			valueNode := c
			if c.Type() == "init_declarator" {
				name = w.text(c.ChildByFieldName("declarator"))
				if v := c.ChildByFieldName("value"); v != nil {
					valueNode = v
				}
			}
			line, col := w.pos(c)
			storage := declarationStorage(w, n)
			decls = append(decls, frontend.Declaration{
				Kind: apinode.KindVariable, Name: strings.TrimSpace(name),
				TypeSpelling: returnType, Storage: storage,
				Value: valueText(w, valueNode, c),
				Line:  line, Column: col,
			})
		}
	}
	return decls
}

func valueText(w *walker, valueNode, declNode *sitter.Node) string {
	if valueNode == declNode {
		return ""
	}
	return w.text(valueNode)
}

func declarationStorage(w *walker, n *sitter.Node) apinode.Storage {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		switch w.text(n.Child(i)) {
		case "static":
			return apinode.StorageStatic
		case "extern":
			return apinode.StorageExtern
		}
	}
	return apinode.StorageNone
}

// fieldDeclaration handles a class/struct/union member field, which may
// also be a method prototype inside a class body (tree-sitter-cpp parses
// in-class method declarations as field_declaration, not declaration).
func (w *walker) fieldDeclaration(n *sitter.Node, access apinode.Access) []frontend.Declaration {
	returnType := w.text(n.ChildByFieldName("type"))
	declarator := n.ChildByFieldName("declarator")
	line, col := w.pos(n)

	if declarator != nil {
		if name, params, ok := unwrapFunctionDeclarator(w, declarator); ok {
			constQ := apinode.ConstNone
			virtualQ := apinode.VirtualNone
			if strings.Contains(w.text(declarator), "const") {
				constQ = apinode.ConstConst
			}
			if strings.Contains(w.text(n), "virtual") {
				virtualQ = apinode.VirtualVirtual
			}
			if strings.Contains(w.text(n), "= 0") {
				virtualQ = apinode.VirtualPureVirtual
			}
			if strings.Contains(w.text(n), "override") {
				virtualQ = apinode.VirtualOverride
			}
			return []frontend.Declaration{{
				Kind: apinode.KindMethod, Name: name, Access: access,
				TypeSpelling: returnType, DataType: signature(returnType, params),
				Const: constQ, Virtual: virtualQ, Line: line, Column: col, Children: params,
			}}
		}
	}

	name := ""
	var bitWidth string
	if declarator != nil {
		name = w.text(declarator)
	}
	if bf := n.ChildByFieldName("bitfield_clause"); bf != nil {
		bitWidth = w.text(bf)
	}
	value := bitWidth
	// Leave an unnamed field/bit-field's Name empty: treebuilder.build
	// assigns it "#<declOrderIndex>" from its position among parent
	// siblings, the same positional-index convention enumDecl uses for
	// unnamed enumerators.
	return []frontend.Declaration{{
		Kind: apinode.KindField, Name: name, Access: access,
		TypeSpelling: returnType, Value: value, Line: line, Column: col,
	}}
}

func (w *walker) typedefDecl(n *sitter.Node, access apinode.Access) []frontend.Declaration {
	underlying := w.text(n.ChildByFieldName("type"))
	line, col := w.pos(n)

	var decls []frontend.Declaration
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "type_identifier", "identifier":
			decls = append(decls, frontend.Declaration{
				Kind: apinode.KindTypedef, Name: w.text(c), Access: access,
				TypeSpelling: underlying, Line: line, Column: col,
			})
		case "pointer_declarator":
			name, _, _ := unwrapFunctionDeclarator(w, c)
			if name == "" {
				name = w.text(c)
			}
			decls = append(decls, frontend.Declaration{
				Kind: apinode.KindTypedef, Name: name, Access: access,
				TypeSpelling: underlying, Line: line, Column: col,
			})
		}
	}
	return decls
}

func (w *walker) aliasDecl(n *sitter.Node, access apinode.Access) frontend.Declaration {
	name := w.text(n.ChildByFieldName("name"))
	underlying := w.text(n.ChildByFieldName("type"))
	line, col := w.pos(n)
	return frontend.Declaration{
		Kind: apinode.KindTypeAlias, Name: name, Access: access,
		TypeSpelling: underlying, Line: line, Column: col,
	}
}
