package pvdata

import "fmt"

// Kind groups related TypeCodes. The bit values match the top three
// bits of the TypeCode byte so Kind() is a mask, not a table.
type Kind uint8

const (
	KindBool     Kind = 0x00
	KindInteger  Kind = 0x20
	KindReal     Kind = 0x40
	KindString   Kind = 0x60
	KindCompound Kind = 0x80
	KindNull     Kind = 0xe0
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInteger:
		return "Integer"
	case KindReal:
		return "Real"
	case KindString:
		return "String"
	case KindCompound:
		return "Compound"
	case KindNull:
		return "Null"
	default:
		return "Unknown"
	}
}

// TypeCode identifies one leaf or composite category of a TypeDesc
// node. The byte layout is kind(bits 7:5) | array(bit 3) |
// unsigned(bit 2) | order(bits 1:0), so size()==1<<order() and the
// array/scalar forms of a code differ only in bit 3.
type TypeCode uint8

const (
	Bool  TypeCode = 0x00
	BoolA TypeCode = 0x08

	Int8   TypeCode = 0x20
	Int16  TypeCode = 0x21
	Int32  TypeCode = 0x22
	Int64  TypeCode = 0x23
	UInt8  TypeCode = 0x24
	UInt16 TypeCode = 0x25
	UInt32 TypeCode = 0x26
	UInt64 TypeCode = 0x27

	Int8A   TypeCode = 0x28
	Int16A  TypeCode = 0x29
	Int32A  TypeCode = 0x2a
	Int64A  TypeCode = 0x2b
	UInt8A  TypeCode = 0x2c
	UInt16A TypeCode = 0x2d
	UInt32A TypeCode = 0x2e
	UInt64A TypeCode = 0x2f

	Float32  TypeCode = 0x42
	Float64  TypeCode = 0x43
	Float32A TypeCode = 0x4a
	Float64A TypeCode = 0x4b

	String  TypeCode = 0x60
	StringA TypeCode = 0x68

	Struct  TypeCode = 0x80
	Union   TypeCode = 0x81
	Any     TypeCode = 0x82
	StructA TypeCode = 0x88
	UnionA  TypeCode = 0x89
	AnyA    TypeCode = 0x8a

	TypeNull TypeCode = 0xff
)

// Kind returns the coarse category this code belongs to.
func (c TypeCode) Kind() Kind {
	if c == TypeNull {
		return KindNull
	}
	return Kind(c & 0xe0)
}

// Order returns the log2 byte width for scalar kinds; Size() is
// 1<<Order().
func (c TypeCode) Order() uint8 { return uint8(c) & 0x03 }

// Size returns the natural storage width in bytes for Bool/Integer/Real
// codes (their scalar or array-element form); 0 for String/Compound/Null.
func (c TypeCode) Size() uint8 {
	switch c.Kind() {
	case KindBool, KindInteger, KindReal:
		return 1 << c.Order()
	default:
		return 0
	}
}

// IsUnsigned reports whether this is one of the unsigned integer
// codes (scalar or array).
func (c TypeCode) IsUnsigned() bool {
	return c.Kind() == KindInteger && uint8(c)&0x04 != 0
}

// IsArray reports whether this code denotes an array of its scalar
// form (StringA, StructA, UnionA, AnyA included).
func (c TypeCode) IsArray() bool {
	if c == TypeNull {
		return false
	}
	return uint8(c)&0x08 != 0
}

// IsCompound reports whether the code is Struct, Union, or Any (in
// either scalar or array form).
func (c TypeCode) IsCompound() bool { return c.Kind() == KindCompound }

// ArrayOf returns the array form of a scalar code. Panics if c is
// already an array or is TypeNull.
func (c TypeCode) ArrayOf() TypeCode {
	if c == TypeNull || c.IsArray() {
		panic(fmt.Sprintf("pvdata: ArrayOf of invalid code %v", c))
	}
	return TypeCode(uint8(c) | 0x08)
}

// ScalarOf returns the non-array form of an array code. Panics if c
// is not an array code.
func (c TypeCode) ScalarOf() TypeCode {
	if !c.IsArray() {
		panic(fmt.Sprintf("pvdata: ScalarOf of non-array code %v", c))
	}
	return TypeCode(uint8(c) &^ 0x08)
}

// String returns the conventional name used in text dumps and error
// messages, e.g. "int32", "int32[]", "struct", "struct[]".
func (c TypeCode) String() string {
	if name, ok := typeCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("TypeCode(0x%02x)", uint8(c))
}

var typeCodeNames = map[TypeCode]string{
	Bool:  "bool",
	BoolA: "bool[]",

	Int8:   "int8",
	Int16:  "int16",
	Int32:  "int32",
	Int64:  "int64",
	UInt8:  "uint8",
	UInt16: "uint16",
	UInt32: "uint32",
	UInt64: "uint64",

	Int8A:   "int8[]",
	Int16A:  "int16[]",
	Int32A:  "int32[]",
	Int64A:  "int64[]",
	UInt8A:  "uint8[]",
	UInt16A: "uint16[]",
	UInt32A: "uint32[]",
	UInt64A: "uint64[]",

	Float32:  "float32",
	Float64:  "float64",
	Float32A: "float32[]",
	Float64A: "float64[]",

	String:  "string",
	StringA: "string[]",

	Struct:  "struct",
	Union:   "union",
	Any:     "any",
	StructA: "struct[]",
	UnionA:  "union[]",
	AnyA:    "any[]",

	TypeNull: "null",
}

// IsValidTypeCode reports whether c is one of the known TypeCode
// values, the set the wire codec checks a decoded TypeCode byte
// against before trusting it to build a TypeDesc node.
func IsValidTypeCode(c TypeCode) bool {
	_, ok := typeCodeNames[c]
	return ok
}

// StoreCode identifies the storage category a FieldStorage cell uses,
// distinct from TypeCode: many TypeCodes widen to the same storage
// representation (all signed integer widths store as Integer; all
// unsigned widen to UInteger; Bool and Real are their own categories).
type StoreCode uint8

const (
	StoreNull StoreCode = iota
	StoreInteger
	StoreUInteger
	StoreReal
	StoreBool
	StoreString
	StoreArray
	StoreCompound
)

func (s StoreCode) String() string {
	switch s {
	case StoreNull:
		return "Null"
	case StoreInteger:
		return "Integer"
	case StoreUInteger:
		return "UInteger"
	case StoreReal:
		return "Real"
	case StoreBool:
		return "Bool"
	case StoreString:
		return "String"
	case StoreArray:
		return "Array"
	case StoreCompound:
		return "Compound"
	default:
		return "Unknown"
	}
}

// storeCodeOf maps a TypeCode to the storage category its leaf cell
// uses. Struct nodes map to StoreNull: their data lives in their own
// leaf descendants, the struct node itself carries nothing.
func storeCodeOf(c TypeCode) StoreCode {
	switch c {
	case TypeNull, Struct:
		return StoreNull
	case Bool:
		return StoreBool
	case String:
		return StoreString
	case Union, Any:
		return StoreCompound
	}
	if c.IsArray() {
		return StoreArray
	}
	switch c.Kind() {
	case KindInteger:
		if c.IsUnsigned() {
			return StoreUInteger
		}
		return StoreInteger
	case KindReal:
		return StoreReal
	}
	return StoreNull
}
