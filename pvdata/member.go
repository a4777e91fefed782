package pvdata

// Member describes one field in a TypeDef under construction. It is
// the mutable, not-yet-finalized counterpart of a TypeDesc node: a
// TypeDef is built up as a tree of Members and then Finalize()d into
// an immutable, shared TypeDesc.
//
// For Struct/StructA, Children are the direct fields (for StructA,
// the fields of the implied per-element struct, carrying ID as that
// struct's id). For Union/UnionA, Children are the tagged variants
// (for UnionA, the variants of the implied per-element union). Any
// and AnyA take no children.
type Member struct {
	Code     TypeCode
	Name     string
	ID       string
	Children []Member
}

// M builds a leaf or array-of-scalar member: M(Int32, "value").
func M(code TypeCode, name string) Member {
	return Member{Code: code, Name: name}
}

// MStruct builds a struct member with a type id and fields.
func MStruct(name, id string, children ...Member) Member {
	return Member{Code: Struct, Name: name, ID: id, Children: children}
}

// MUnion builds a tagged-union member with named variants.
func MUnion(name, id string, variants ...Member) Member {
	return Member{Code: Union, Name: name, ID: id, Children: variants}
}

// MAny builds an Any ("variant") member.
func MAny(name string) Member {
	return Member{Code: Any, Name: name}
}

// MStructA builds an array-of-struct member; children describe the
// per-element struct's fields.
func MStructA(name, id string, children ...Member) Member {
	return Member{Code: StructA, Name: name, ID: id, Children: children}
}

// MUnionA builds an array-of-union member; children are the
// per-element union's variants.
func MUnionA(name, id string, variants ...Member) Member {
	return Member{Code: UnionA, Name: name, ID: id, Children: variants}
}

// MAnyA builds an array-of-Any member.
func MAnyA(name string) Member {
	return Member{Code: AnyA, Name: name}
}

// Scalar and scalar-array convenience constructors, one per leaf
// TypeCode, mirroring the one-helper-per-code style of pvxs's
// members:: namespace (Go lacks that namespacing trick, so these are
// plain top-level functions with an M prefix instead).
func MBool(name string) Member    { return M(Bool, name) }
func MBoolA(name string) Member   { return M(BoolA, name) }
func MInt8(name string) Member    { return M(Int8, name) }
func MInt16(name string) Member   { return M(Int16, name) }
func MInt32(name string) Member   { return M(Int32, name) }
func MInt64(name string) Member   { return M(Int64, name) }
func MUInt8(name string) Member   { return M(UInt8, name) }
func MUInt16(name string) Member  { return M(UInt16, name) }
func MUInt32(name string) Member  { return M(UInt32, name) }
func MUInt64(name string) Member  { return M(UInt64, name) }
func MInt8A(name string) Member   { return M(Int8A, name) }
func MInt16A(name string) Member  { return M(Int16A, name) }
func MInt32A(name string) Member  { return M(Int32A, name) }
func MInt64A(name string) Member  { return M(Int64A, name) }
func MUInt8A(name string) Member  { return M(UInt8A, name) }
func MUInt16A(name string) Member { return M(UInt16A, name) }
func MUInt32A(name string) Member { return M(UInt32A, name) }
func MUInt64A(name string) Member { return M(UInt64A, name) }
func MFloat32(name string) Member { return M(Float32, name) }
func MFloat64(name string) Member { return M(Float64, name) }
func MFloat32A(name string) Member { return M(Float32A, name) }
func MFloat64A(name string) Member { return M(Float64A, name) }
func MString(name string) Member  { return M(String, name) }
func MStringA(name string) Member { return M(StringA, name) }
