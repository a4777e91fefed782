// Package pvdata implements the dynamic structured-value core of a
// network data-access library: a recursive type-description tree
// (TypeDesc), a parallel storage tree of typed leaf cells, a
// borrowed-sub-view Value handle over the two, and the mutable/frozen
// lifecycle that lets a Value move safely between a single-writer
// builder and a many-reader shared view.
//
// # Data model
//
// A TypeDesc describes the shape of a value: scalars, strings,
// variable-length arrays of those, nested Struct/Union/Any, and
// arrays of the three composite kinds. It is built once with a
// TypeDef, then shared by reference for the rest of its life.
//
// Build(desc) allocates a StorageTop — one FieldStorage cell per
// TypeDesc node — and returns a root Value. Value.Field navigates to
// any descendant by dotted name, union arrow, or array index; leaves
// are read and written with CopyIn/CopyOut; Freeze/Thaw move a Value
// between mutable and immutable.
//
// The wire codec for TypeDesc and Value (full and delta/bitmask
// forms, plus the per-connection type cache) lives in the sibling
// package pvxs-go/wire, which depends on pvdata but not vice versa.
package pvdata
