package pvdata

import (
	"fmt"

	"go.uber.org/atomic"
)

// SharedArray is a reference-counted contiguous buffer parameterized
// by an element TypeCode. It backs every array leaf (scalar arrays,
// StringA, and the per-element data of StructA/UnionA/AnyA) and every
// inbound wire array buffer.
//
// The refcount tracks explicit aliasing (Ref/Release), the same way
// StorageTop's does: it exists to make Freeze's uniqueness test
// meaningful, not for memory reclamation — Go's GC already keeps the
// backing slice alive for as long as any SharedArray or FieldStorage
// references it.
type SharedArray struct {
	elem     TypeCode  // concrete element code; TypeNull means "untyped, empty"
	elemDesc *TypeDesc // element template for StructA/UnionA (nil otherwise)

	bools     []bool
	ints      []int64
	uints     []uint64
	reals     []float64
	strs      []string
	compounds []*Value // elements of StructA/UnionA/AnyA

	frozen bool
	owners *atomic.Int32
}

// NewSharedArray allocates a zero-valued array of n elements of the
// given element code. elemDesc is required (and must describe a
// Struct or Union) for StructA/UnionA element codes, ignored
// otherwise.
func NewSharedArray(elem TypeCode, elemDesc *TypeDesc, n int) *SharedArray {
	a := &SharedArray{elem: elem, elemDesc: elemDesc, owners: atomic.NewInt32(1)}
	switch elem.Kind() {
	case KindBool:
		a.bools = make([]bool, n)
	case KindInteger:
		if elem.IsUnsigned() {
			a.uints = make([]uint64, n)
		} else {
			a.ints = make([]int64, n)
		}
	case KindReal:
		a.reals = make([]float64, n)
	case KindString:
		a.strs = make([]string, n)
	case KindCompound:
		a.compounds = make([]*Value, n)
		if elemDesc != nil {
			// StructA/UnionA: every element shares the same template
			// shape, built up front.
			for i := range a.compounds {
				a.compounds[i] = Build(elemDesc)
			}
		}
		// AnyA: elem == Any, elemDesc == nil — each element's type is
		// dynamic and chosen per-value via SetAny, so slots start nil.
	}
	return a
}

// EmptySharedArray returns an untyped, zero-length array — the
// "void-array" that copy_in's Array<-Array rule treats as compatible
// with any concrete element type.
func EmptySharedArray() *SharedArray {
	return &SharedArray{elem: TypeNull, owners: atomic.NewInt32(1)}
}

// Elem returns the element TypeCode (TypeNull for an untyped/empty
// array).
func (a *SharedArray) Elem() TypeCode { return a.elem }

// Len returns the element count.
func (a *SharedArray) Len() int {
	switch {
	case a.bools != nil:
		return len(a.bools)
	case a.ints != nil:
		return len(a.ints)
	case a.uints != nil:
		return len(a.uints)
	case a.reals != nil:
		return len(a.reals)
	case a.strs != nil:
		return len(a.strs)
	case a.compounds != nil:
		return len(a.compounds)
	default:
		return 0
	}
}

// Bools, Ints, Uints, Reals, Strings, and Compounds expose the
// active backing slice for wire encoding and other cross-package
// readers; exactly one is non-nil for any given array, matching Elem.
func (a *SharedArray) Bools() []bool       { return a.bools }
func (a *SharedArray) Ints() []int64       { return a.ints }
func (a *SharedArray) Uints() []uint64     { return a.uints }
func (a *SharedArray) Reals() []float64    { return a.reals }
func (a *SharedArray) Strings() []string   { return a.strs }
func (a *SharedArray) Compounds() []*Value { return a.compounds }

// SetBools, SetInts, SetUints, SetReals, and SetStrings overwrite the
// backing slice in place, used by the wire codec when decoding into a
// pre-sized array.
func (a *SharedArray) SetBools(v []bool)     { a.bools = v }
func (a *SharedArray) SetInts(v []int64)     { a.ints = v }
func (a *SharedArray) SetUints(v []uint64)   { a.uints = v }
func (a *SharedArray) SetReals(v []float64)  { a.reals = v }
func (a *SharedArray) SetStrings(v []string) { a.strs = v }

// IsUnique reports whether this array has exactly one owner.
func (a *SharedArray) IsUnique() bool { return a.owners.Load() == 1 }

// IsUntyped reports whether this is the void/empty array, compatible
// with any concrete element type.
func (a *SharedArray) IsUntyped() bool { return a.elem == TypeNull && a.Len() == 0 }

// Ref returns a new handle sharing this array's backing storage,
// incrementing the owner count.
func (a *SharedArray) Ref() *SharedArray {
	a.owners.Inc()
	return a
}

// Release decrements the owner count. Call it when a Ref()'d handle
// is no longer needed.
func (a *SharedArray) Release() {
	if a == nil {
		return
	}
	a.owners.Dec()
}

// Freeze converts a uniquely-owned array into an immutable one.
// Returns ErrFreeze if another owner is live.
func (a *SharedArray) Freeze() error {
	if !a.IsUnique() {
		return ErrFreeze
	}
	a.frozen = true
	return nil
}

// IsFrozen reports whether the array is immutable.
func (a *SharedArray) IsFrozen() bool { return a.frozen }

// Clone deep-copies the array into a fresh, uniquely-owned,
// unfrozen array of the same shape.
func (a *SharedArray) Clone() *SharedArray {
	out := &SharedArray{elem: a.elem, elemDesc: a.elemDesc, owners: atomic.NewInt32(1)}
	if a.bools != nil {
		out.bools = append([]bool(nil), a.bools...)
	}
	if a.ints != nil {
		out.ints = append([]int64(nil), a.ints...)
	}
	if a.uints != nil {
		out.uints = append([]uint64(nil), a.uints...)
	}
	if a.reals != nil {
		out.reals = append([]float64(nil), a.reals...)
	}
	if a.strs != nil {
		out.strs = append([]string(nil), a.strs...)
	}
	if a.compounds != nil {
		out.compounds = make([]*Value, len(a.compounds))
		for i, v := range a.compounds {
			if v == nil {
				continue
			}
			out.compounds[i] = v.Clone()
		}
	}
	return out
}

// Retype reinterprets an untyped/empty array as a concrete element
// type, the "void-array reinterpreted as its concrete element type"
// operation SharedArray supports. Only valid on an untyped array.
func (a *SharedArray) Retype(elem TypeCode, elemDesc *TypeDesc) (*SharedArray, error) {
	if !a.IsUntyped() {
		return nil, fmt.Errorf("pvdata: Retype requires an untyped array, got element %v", a.elem)
	}
	return NewSharedArray(elem, elemDesc, 0), nil
}

// compatibleWith implements the element-compatibility half of the
// copy_in Array<-Array rule (§4.4): empty/untyped source is always
// compatible; StructA/UnionA require exact element TypeDesc match
// (by hash); AnyA accepts any element; scalar/StringA arrays require
// an exact element TypeCode match.
func (a *SharedArray) compatibleWith(target TypeCode, targetElemDesc *TypeDesc) bool {
	if a.IsUntyped() {
		return true
	}
	switch target {
	case StructA, UnionA:
		return a.elemDesc != nil && targetElemDesc != nil && a.elemDesc.Equal(targetElemDesc)
	case AnyA:
		return true
	default:
		return a.elem == target.ScalarOf()
	}
}
