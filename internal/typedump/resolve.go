package typedump

import (
	"github.com/llir/llvm/ir/types"
)

// Resolver resolves github.com/llir/llvm/ir/types values into Descriptors.
// It is pure and deterministic (spec.md 4.1): the same (type, layout) pair
// always produces the same Descriptor. The struct-definition/reference
// split lives outside the Resolver itself (see ResolveStructDefinition vs.
// Resolve) rather than inside a "have I seen this name before" set, because
// the spec ties "definition" to the position in a specific enumeration (the
// module-level struct sweep), not to call order.
type Resolver struct {
	layout DataLayout
}

// NewResolver builds a Resolver over the given data layout.
func NewResolver(layout DataLayout) *Resolver {
	return &Resolver{layout: layout}
}

// Resolve resolves t as it appears inside a function signature or a struct
// field. Struct types, direct or pointer-to, always come back as reference
// descriptors (name + alloc size + pointer depth, no body) — per spec.md
// 4.1's edge case, this is what prevents cyclic struct graphs (A holding a
// *B field, B holding an *A field) from recursing forever.
func (r *Resolver) Resolve(t types.Type) Descriptor {
	depth, base := unwrapPointers(t)
	d := r.resolveBase(base)
	d.PointerDepth = depth
	return d
}

// ResolveStructDefinition produces the single full StructDescriptor (with
// body) for a named or literal struct type, recursing into field types via
// Resolve so nested struct fields come back as references, never bodies.
// Callers are expected to call this once per distinct struct type, in
// module declaration order, to populate ModuleDump.structs.
func (r *Resolver) ResolveStructDefinition(st *types.StructType) Descriptor {
	d := Descriptor{
		BaseKind:     Struct,
		StructName:   st.TypeName,
		IsDefinition: true,
	}
	if st.Opaque {
		d.Body = &StructBody{}
		return d
	}

	body := &StructBody{}
	offset := uint64(0)
	maxAlign := uint64(1)
	for _, ft := range st.Fields {
		fieldAlign := r.alignOf(ft)
		if fieldAlign == 0 {
			fieldAlign = 1
		}
		offset = alignUp(offset, fieldAlign)
		body.Fields = append(body.Fields, Field{OffsetBytes: offset, Type: r.Resolve(ft)})
		offset += r.sizeOf(ft)
		if fieldAlign > maxAlign {
			maxAlign = fieldAlign
		}
	}
	body.Alignment = maxAlign
	body.SizeBytes = alignUp(offset, maxAlign)

	d.Body = body
	d.AllocSizeBytes = body.SizeBytes
	return d
}

func unwrapPointers(t types.Type) (uint8, types.Type) {
	depth := uint8(0)
	for {
		pt, ok := t.(*types.PointerType)
		if !ok {
			return depth, t
		}
		depth++
		t = pt.ElemType
	}
}

func (r *Resolver) resolveBase(base types.Type) Descriptor {
	switch bt := base.(type) {
	case *types.VoidType:
		return Descriptor{BaseKind: Void}
	case *types.IntType:
		bits := int64(bt.BitSize)
		return Descriptor{BaseKind: intKind(bt.BitSize), AllocSizeBytes: r.layout.IntSizeBytes(bits)}
	case *types.FloatType:
		switch bt.Kind {
		case types.FloatKindFloat:
			return Descriptor{BaseKind: Float, AllocSizeBytes: r.layout.FloatSizeBytes}
		case types.FloatKindDouble:
			return Descriptor{BaseKind: Double, AllocSizeBytes: r.layout.DoubleSizeBytes}
		default:
			return Descriptor{BaseKind: Unknown}
		}
	case *types.StructType:
		return Descriptor{
			BaseKind:       Struct,
			AllocSizeBytes: r.sizeOf(bt),
			StructName:     bt.TypeName,
			IsDefinition:   false,
		}
	case *types.FuncType:
		return Descriptor{BaseKind: Func}
	case *types.ArrayType:
		// Array contents are not recursed (spec.md 4.1 step 2, inherited
		// TODO from the original implementation): size is reported as 0
		// rather than len*elemSize, matching the spec-level non-goal.
		return Descriptor{BaseKind: Array}
	default:
		return Descriptor{BaseKind: Unknown}
	}
}

func intKind(bitSize uint64) Kind {
	switch bitSize {
	case 1, 8:
		return Int8
	case 16:
		return Int16
	case 32:
		return Int32
	case 64:
		return Int64
	default:
		return IntUnknown
	}
}

// sizeOf and alignOf compute a struct's byte layout from its field types.
// github.com/llir/llvm/ir/types models IR shape, not a target's byte
// layout, so fuzzgen computes this itself from the DataLayout scalar sizes
// (see datalayout.go) using the natural-alignment rule (a type's alignment
// equals its size, pointers and scalars both), which matches every data
// layout clang emits for the platforms fuzzgen targets.
func (r *Resolver) sizeOf(t types.Type) uint64 {
	switch bt := t.(type) {
	case *types.VoidType:
		return 0
	case *types.PointerType:
		return r.layout.PointerSizeBytes
	case *types.IntType:
		return r.layout.IntSizeBytes(int64(bt.BitSize))
	case *types.FloatType:
		if bt.Kind == types.FloatKindDouble {
			return r.layout.DoubleSizeBytes
		}
		return r.layout.FloatSizeBytes
	case *types.ArrayType:
		return bt.Len * r.sizeOf(bt.ElemType)
	case *types.StructType:
		if bt.Opaque {
			return 0
		}
		offset := uint64(0)
		maxAlign := uint64(1)
		for _, ft := range bt.Fields {
			a := r.alignOf(ft)
			if a == 0 {
				a = 1
			}
			offset = alignUp(offset, a)
			offset += r.sizeOf(ft)
			if a > maxAlign {
				maxAlign = a
			}
		}
		return alignUp(offset, maxAlign)
	default:
		return 0
	}
}

func (r *Resolver) alignOf(t types.Type) uint64 {
	switch bt := t.(type) {
	case *types.StructType:
		if bt.Opaque || len(bt.Fields) == 0 {
			return 1
		}
		maxAlign := uint64(1)
		for _, ft := range bt.Fields {
			if a := r.alignOf(ft); a > maxAlign {
				maxAlign = a
			}
		}
		return maxAlign
	case *types.ArrayType:
		return r.alignOf(bt.ElemType)
	default:
		return r.sizeOf(t)
	}
}

func alignUp(offset, align uint64) uint64 {
	if align <= 1 {
		return offset
	}
	if rem := offset % align; rem != 0 {
		return offset + (align - rem)
	}
	return offset
}
