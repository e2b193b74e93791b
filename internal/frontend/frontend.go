// Package frontend declares the contract a language front-end must satisfy
// to feed the tree builder (C5). ARMOR's universal tree builder never
// references a parser or grammar directly: it walks whatever Declarations a
// Provider hands it and asks the same Provider to classify each one. This
// is C10 from SPEC_FULL.md §4.8, generalizing the teacher's
// provider.LanguageProvider dependency-injection pattern from a DSL-query
// translator to a declaration extractor.
package frontend

import "github.com/oxhq/armor/internal/apinode"

// Declaration is one raw declaration site the front-end found while walking
// a parsed source file: enough for the tree builder to classify it and
// recurse into any nested declarations (a record's members, a namespace's
// contents) without the builder ever touching a tree-sitter node itself.
type Declaration struct {
	// Kind is the normalized node kind this declaration maps to.
	Kind apinode.Kind

	// Name is the declared identifier, unqualified. Empty for anonymous
	// unions/structs and unnamed bit-fields; the tree builder assigns a
	// positional placeholder in that case.
	Name string

	// DataType is the type signature used for function overload
	// discrimination (C3): for a function, its return type followed by
	// the parenthesized, comma-separated parameter types; empty for
	// non-function declarations.
	DataType string

	// TypeSpelling is the source-level spelling of the declaration's own
	// type (a variable's type, a function's return type, a field's
	// type). Empty for declarations with no associated type (namespace,
	// enum constant list).
	TypeSpelling string

	// Value is the literal initializer/default-value text, if any
	// (enumerator value, default parameter, field initializer).
	Value string

	// Access is the access specifier in effect at this declaration.
	Access apinode.Access

	// Storage is the storage-class specifier, if any.
	Storage apinode.Storage

	// Const is the const/constexpr qualifier, if any.
	Const apinode.ConstQualifier

	// Virtual is the virtual/override qualifier, if any (methods only).
	Virtual apinode.VirtualQualifier

	// CallingConvention is the calling-convention attribute spelling
	// (e.g. "__cdecl"), empty when unspecified.
	CallingConvention string

	// IsInline reports a function/method declared inline.
	IsInline bool

	// IsDefault reports a special member function defaulted with `= default`.
	IsDefault bool

	// IsDeleted reports a function declared `= deleted`.
	IsDeleted bool

	// Line and Column are 1-based source positions in the file currently
	// being walked, for diagnostics only (never part of the diff key).
	Line, Column int

	// Children are nested declarations (namespace members, record
	// members, enumerators, function parameters). The tree builder
	// recurses into these after constructing this declaration's node.
	Children []Declaration
}

// Provider is the interface a language front-end implements. Exactly one
// Provider is selected per header file, by its Extensions list.
type Provider interface {
	// Name identifies the front-end (e.g. "cpp").
	Name() string

	// Extensions lists the file extensions (including the leading dot)
	// this provider claims, e.g. []string{".h", ".hpp", ".hh"}.
	Extensions() []string

	// Parse reads and parses source (a single header file's bytes) and
	// returns its top-level declarations in source order. includeDirs
	// and macroDefs are forwarded verbatim from the CLI (-I/-m); per
	// SPEC_FULL.md §4.8 the reference front-end ignores both: it does not
	// expand macros or resolve includes. They are part of the interface
	// for other front-ends.
	Parse(path string, source []byte, includeDirs []string, macroDefs map[string]string) ([]Declaration, error)
}
