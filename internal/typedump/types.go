// Package typedump builds the typed dumps (TypeDescriptor, StructDescriptor,
// ArgumentDescriptor, FunctionDescriptor) that the rest of fuzzgen's pipeline
// reasons about, resolving them from github.com/llir/llvm IR types.
package typedump

// Kind is the base_kind discriminant of a Descriptor.
type Kind int

const (
	Unknown Kind = iota
	Void
	Int8
	Int16
	Int32
	Int64
	IntUnknown
	Float
	Double
	Struct
	Func
	Array
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case IntUnknown:
		return "int_unknown"
	case Float:
		return "float"
	case Double:
		return "double"
	case Struct:
		return "struct"
	case Func:
		return "func"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Field is one (offset, type) pair inside a struct body.
type Field struct {
	OffsetBytes uint64
	Type        Descriptor
}

// StructBody carries the layout of a struct definition. An opaque struct has
// a present-but-empty body (Fields is nil, Size and Alignment are 0).
type StructBody struct {
	SizeBytes uint64
	Alignment uint64
	Fields    []Field
}

// Descriptor is the tagged-variant TypeDescriptor from the data model: a
// plain descriptor carries only the common header (BaseKind, PointerDepth,
// AllocSizeBytes); the Struct kind carries the extra fields below. The Func
// kind carries only the common header.
// Modeling it as one struct with a Kind discriminant, rather than an
// interface hierarchy, matches the "tagged variant over three cases" note —
// there is exactly one place this type is produced (resolve) and one
// consumer shape (harness lowering + analyzer dumps), so an open extension
// point would add indirection without a second implementation to justify it.
type Descriptor struct {
	BaseKind       Kind
	PointerDepth   uint8
	AllocSizeBytes uint64

	// Struct-only fields. Name and IsDefinition are also set for a struct
	// reference; Body is non-nil only on the definition occurrence.
	StructName   string
	IsDefinition bool
	Body         *StructBody
}

// Argument is ArgumentDescriptor: index equals the argument's position in
// the IR signature.
type Argument struct {
	Index uint16
	Type  Descriptor
}

// Linkage mirrors the subset of LLVM linkage the analyzer cares about.
type Linkage int

const (
	LinkageUnknown Linkage = iota
	LinkageInternal
	LinkageExternal
)

// Function is FunctionDescriptor.
type Function struct {
	Name           string
	ReturnType     Descriptor
	Arguments      []Argument
	ArgumentsFixed bool // negation of variadic
	IsLocal        bool // has a definition in this module
	IsStandalone   bool
	Linkage        Linkage
}
