package typedump

import (
	"strconv"
	"strings"
)

// DataLayout carries the byte sizes the type resolver needs that
// github.com/llir/llvm/ir/types does not model (the types package
// describes IR shape, not a target's layout). The zero value is unusable;
// use DefaultDataLayout.
type DataLayout struct {
	PointerSizeBytes uint64
	Int8SizeBytes    uint64
	Int16SizeBytes   uint64
	Int32SizeBytes   uint64
	Int64SizeBytes   uint64
	FloatSizeBytes   uint64
	DoubleSizeBytes  uint64
}

// DefaultDataLayout is the scalar-size table clang emits by default for
// x86_64-pc-linux-gnu (LP64: 8-byte pointers, IEEE single/double floats).
func DefaultDataLayout() DataLayout {
	return DataLayout{
		PointerSizeBytes: 8,
		Int8SizeBytes:    1,
		Int16SizeBytes:   2,
		Int32SizeBytes:   4,
		Int64SizeBytes:   8,
		FloatSizeBytes:   4,
		DoubleSizeBytes:  8,
	}
}

// IntSizeBytes returns the byte size for an integer of the given bit width,
// per the size-class table in spec.md 4.1: 1 or 8 bits -> Int8, 16 -> Int16,
// 32 -> Int32, 64 -> Int64, otherwise unknown (size reported as the
// ceil-to-byte width, since that's the best a generic layout can say about
// a non-standard-width integer).
func (d DataLayout) IntSizeBytes(bitWidth int64) uint64 {
	switch bitWidth {
	case 1, 8:
		return d.Int8SizeBytes
	case 16:
		return d.Int16SizeBytes
	case 32:
		return d.Int32SizeBytes
	case 64:
		return d.Int64SizeBytes
	default:
		return uint64((bitWidth + 7) / 8)
	}
}

// ParseDataLayout is the minimal data-layout-string parser SPEC_FULL.md's
// data layout section calls for: it starts from DefaultDataLayout and
// overrides only the default address space's pointer size, the one field
// that actually varies across the targets clang emits IR for (i8/i16/
// i32/i64/float/double are fixed-width by construction, whatever the
// target). A module's `target datalayout` directive is a '-'-separated
// list of tokens; the one this cares about is the default address space's
// pointer spec, "p:<size>:<abi>[:<pref>]" (LLVM's DataLayout reference
// syntax) — "p0:..." and other explicit address spaces are address-space
// specific and left alone, since typedump has no notion of address
// spaces. An empty or unrecognized layout string leaves the default
// untouched.
func ParseDataLayout(layout string) DataLayout {
	d := DefaultDataLayout()
	for _, token := range strings.Split(layout, "-") {
		if !strings.HasPrefix(token, "p:") {
			continue
		}
		fields := strings.Split(token, ":")
		if len(fields) < 2 {
			continue
		}
		bits, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil || bits == 0 {
			continue
		}
		d.PointerSizeBytes = (bits + 7) / 8
	}
	return d
}
