package typedump

import (
	"testing"

	"github.com/llir/llvm/ir/types"
)

func TestResolveScalars(t *testing.T) {
	r := NewResolver(DefaultDataLayout())

	tests := []struct {
		name string
		in   types.Type
		want Descriptor
	}{
		{"void", types.Void, Descriptor{BaseKind: Void}},
		{"i8", types.I8, Descriptor{BaseKind: Int8, AllocSizeBytes: 1}},
		{"i16", types.I16, Descriptor{BaseKind: Int16, AllocSizeBytes: 2}},
		{"i32", types.I32, Descriptor{BaseKind: Int32, AllocSizeBytes: 4}},
		{"i64", types.I64, Descriptor{BaseKind: Int64, AllocSizeBytes: 8}},
		{"i128", types.NewInt(128), Descriptor{BaseKind: IntUnknown, AllocSizeBytes: 16}},
		{"float", types.Float, Descriptor{BaseKind: Float, AllocSizeBytes: 4}},
		{"double", types.Double, Descriptor{BaseKind: Double, AllocSizeBytes: 8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(tc.in)
			if got.BaseKind != tc.want.BaseKind || got.AllocSizeBytes != tc.want.AllocSizeBytes {
				t.Fatalf("Resolve(%v) = %+v, want %+v", tc.in, got, tc.want)
			}
			if got.PointerDepth != 0 {
				t.Fatalf("expected pointer depth 0, got %d", got.PointerDepth)
			}
		})
	}
}

func TestResolvePointerDepth(t *testing.T) {
	r := NewResolver(DefaultDataLayout())

	plain := r.Resolve(types.I8)
	ptr := r.Resolve(types.NewPointer(types.I8))
	ptrptr := r.Resolve(types.NewPointer(types.NewPointer(types.I8)))

	if ptr.PointerDepth != plain.PointerDepth+1 {
		t.Fatalf("resolve-of-resolve law violated: plain=%d ptr=%d", plain.PointerDepth, ptr.PointerDepth)
	}
	if ptrptr.PointerDepth != ptr.PointerDepth+1 {
		t.Fatalf("resolve-of-resolve law violated: ptr=%d ptrptr=%d", ptr.PointerDepth, ptrptr.PointerDepth)
	}
	if ptr.BaseKind != plain.BaseKind {
		t.Fatalf("base kind should be unaffected by pointer depth: %v vs %v", ptr.BaseKind, plain.BaseKind)
	}
}

func TestResolveStructFieldIsReference(t *testing.T) {
	r := NewResolver(DefaultDataLayout())

	inner := types.NewStruct()
	inner.TypeName = "inner"
	inner.Fields = []types.Type{types.I32}

	outer := types.NewStruct()
	outer.TypeName = "outer"
	outer.Fields = []types.Type{types.NewPointer(inner), types.I8}

	def := r.ResolveStructDefinition(outer)
	if !def.IsDefinition {
		t.Fatalf("expected module-level resolve to be a definition")
	}
	if def.Body == nil || len(def.Body.Fields) != 2 {
		t.Fatalf("expected 2 fields in outer body, got %+v", def.Body)
	}

	fieldDesc := def.Body.Fields[0].Type
	if fieldDesc.IsDefinition {
		t.Fatalf("nested struct field must be a reference, not a definition")
	}
	if fieldDesc.StructName != "inner" {
		t.Fatalf("expected field to reference struct %q, got %q", "inner", fieldDesc.StructName)
	}
}

func TestResolveOpaqueStruct(t *testing.T) {
	r := NewResolver(DefaultDataLayout())

	opaque := types.NewStruct()
	opaque.TypeName = "Opaque"
	opaque.Opaque = true

	def := r.ResolveStructDefinition(opaque)
	if !def.IsDefinition {
		t.Fatalf("opaque struct should still be a definition")
	}
	if def.Body == nil {
		t.Fatalf("opaque struct body must be present")
	}
	if len(def.Body.Fields) != 0 || def.Body.SizeBytes != 0 {
		t.Fatalf("opaque struct body must be empty, got %+v", def.Body)
	}
}

func TestStructFieldOffsets(t *testing.T) {
	r := NewResolver(DefaultDataLayout())

	// struct { i8; i32; i8*; } on LP64: offsets 0, 4, 8; size 16, align 8.
	st := types.NewStruct()
	st.TypeName = "Packed"
	st.Fields = []types.Type{types.I8, types.I32, types.NewPointer(types.I8)}

	def := r.ResolveStructDefinition(st)
	wantOffsets := []uint64{0, 4, 8}
	for i, f := range def.Body.Fields {
		if f.OffsetBytes != wantOffsets[i] {
			t.Fatalf("field %d: offset = %d, want %d", i, f.OffsetBytes, wantOffsets[i])
		}
	}
	if def.Body.SizeBytes != 16 {
		t.Fatalf("struct size = %d, want 16", def.Body.SizeBytes)
	}
	if def.Body.Alignment != 8 {
		t.Fatalf("struct alignment = %d, want 8", def.Body.Alignment)
	}
}
