// Package apinode defines the language-neutral API node: the unit the tree
// builder populates and the diff engine compares. Nothing in this package
// imports a parser; it is the pure contract both sides agree on.
package apinode

// Kind is the closed set of declaration kinds an API node can represent.
type Kind string

const (
	KindNamespace              Kind = "Namespace"
	KindClass                  Kind = "Class"
	KindStruct                 Kind = "Struct"
	KindUnion                  Kind = "Union"
	KindEnum                   Kind = "Enum"
	KindFunction               Kind = "Function"
	KindMethod                 Kind = "Method"
	KindField                  Kind = "Field"
	KindTypedef                Kind = "Typedef"
	KindTypeAlias              Kind = "TypeAlias"
	KindParameter              Kind = "Parameter"
	KindTemplateParam          Kind = "TemplateParam"
	KindBaseClass              Kind = "BaseClass"
	KindVariable               Kind = "Variable"
	KindReturnType             Kind = "ReturnType"
	KindFunctionPointer        Kind = "FunctionPointer"
	KindEnumerator             Kind = "Enumerator"
	KindMacro                  Kind = "Macro"
	KindConditionalCompilation Kind = "ConditionalCompilation"
	KindUnknown                Kind = "Unknown"

	// Preprocessor-directive kinds. Carried for forward compatibility per
	// spec.md §9; the tree builder never emits them.
	KindIf       Kind = "If"
	KindElif     Kind = "Elif"
	KindIfdef    Kind = "Ifdef"
	KindIfndef   Kind = "Ifndef"
	KindElse     Kind = "Else"
	KindElifdef  Kind = "Elifdef"
	KindElifndef Kind = "Elifndef"
	KindEndif    Kind = "Endif"
	KindDefine   Kind = "Define"
)

// Access is the visibility of a declared member.
type Access string

const (
	AccessNone      Access = "None"
	AccessPublic    Access = "Public"
	AccessProtected Access = "Protected"
	AccessPrivate   Access = "Private"
)

// Storage is the storage-class specifier of a declaration.
type Storage string

const (
	StorageNone     Storage = "None"
	StorageStatic   Storage = "Static"
	StorageExtern   Storage = "Extern"
	StorageRegister Storage = "Register"
	StorageAuto     Storage = "Auto"
)

// ConstQualifier is the const-ness of a declaration.
type ConstQualifier string

const (
	ConstNone     ConstQualifier = "None"
	ConstConst    ConstQualifier = "Const"
	ConstExpr     ConstQualifier = "ConstExpr"
)

// VirtualQualifier is the virtual-dispatch qualifier of a method.
type VirtualQualifier string

const (
	VirtualNone        VirtualQualifier = "None"
	VirtualVirtual     VirtualQualifier = "Virtual"
	VirtualPureVirtual VirtualQualifier = "PureVirtual"
	VirtualOverride    VirtualQualifier = "Override"
)

// recognized calling conventions. Anything else parsed from source is kept
// verbatim in CallingConvention without validation against this list; the
// list exists so the front-end has a canonical spelling to normalize to.
var recognizedCallingConventions = map[string]bool{
	"":          true, // none specified
	"__cdecl":   true,
	"__stdcall": true,
	"__fastcall": true,
	"__thiscall": true,
	"__vectorcall": true,
}

// IsRecognizedCallingConvention reports whether cc is one ARMOR normalizes,
// as opposed to an unrecognized attribute string kept verbatim.
func IsRecognizedCallingConvention(cc string) bool {
	return recognizedCallingConventions[cc]
}
