// Package rt implements the MysoreScript object model: tagged values,
// classes, selectors, method dispatch, closures, and the heap they live on.
package rt

// Value is a tagged, pointer-sized word: either a small integer or a
// reference to a heap object. The low three bits are the tag.
//
//   - low bit set (…1): a small integer; the integer's value is the word
//     arithmetic-shifted right by 3 (§4.1).
//   - all low three bits zero: an object reference, or null if the whole
//     word is zero.
//
// Unlike the reference C++ implementation this spec is grounded on (which
// packs an actual machine pointer into the low bits via a Boehm-GC-visible
// intptr_t), a Value's non-integer bits are an index into a Heap's object
// table rather than a raw address. Indices are multiplied by 8 before
// storage, so the zero-low-three-bits invariant holds exactly as specified
// while every object stays reachable through the table a normal Go pointer
// — letting Go's own collector manage the heap safely instead of reaching
// for unsafe.Pointer tricks the Go garbage collector makes no long-term
// guarantees about.
type Value uintptr

// Null is the empty object reference: zero word, zero low bits, not an
// integer.
const Null Value = 0

// Box converts a 61-bit signed integer into its tagged representation.
// Values outside the 61-bit range wrap silently, matching host integer
// overflow semantics (§4.1).
func Box(i int64) Value {
	return Value(uintptr(i)<<3 | 1)
}

// Unbox recovers the integer an IsInteger Value carries. Calling it on an
// object reference is a programming error in the interpreter, not a
// MysoreScript-level one; callers must check IsInteger first.
func Unbox(v Value) int64 {
	return int64(v) >> 3
}

// IsInteger reports whether v is a small integer (tag bit set).
func IsInteger(v Value) bool {
	return v&1 == 1
}

// IsObject reports whether v is a non-null object reference.
func IsObject(v Value) bool {
	return v != 0 && v&7 == 0
}

// IsTruthy implements the truth test used by if/while (§4.8): a value is
// true iff it is a non-zero small integer or a non-null object.
func IsTruthy(v Value) bool {
	return v&^7 != 0
}

// objectHandle packs a Heap object-table index into a Value. Index 0 is
// never issued (Heap reserves it) so that an object handle is never
// confused with Null.
func objectHandle(index int) Value {
	return Value(uintptr(index) << 3)
}

func handleIndex(v Value) int {
	return int(uintptr(v) >> 3)
}
