package pvdata

import (
	"fmt"
	"strconv"
)

// CopyIn writes a Go value into a leaf cell, converting between
// storage kinds (integer widening/narrowing, bool<->0/1, numeric<->
// string) the way pvxs's Value::from does. CopyIn on an array leaf
// accepts a *SharedArray (assigned by reference, not copied, when
// compatible — see SharedArray.compatibleWith) or a plain Go slice
// (copied element-by-element into a freshly allocated SharedArray).
func (v *Value) CopyIn(src interface{}) error {
	if !v.mutable {
		return fieldErr(ErrNoConvert, v.pathHint())
	}
	c := v.cell()
	switch c.store {
	case StoreBool:
		b, err := toBool(src)
		if err != nil {
			return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
		}
		c.b, c.valid = b, true
	case StoreInteger:
		i, err := toInt64(src)
		if err != nil {
			return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
		}
		c.i64, c.valid = i, true
	case StoreUInteger:
		u, err := toUint64(src)
		if err != nil {
			return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
		}
		c.u64, c.valid = u, true
	case StoreReal:
		f, err := toFloat64(src)
		if err != nil {
			return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
		}
		c.f64, c.valid = f, true
	case StoreString:
		s, err := toString(src)
		if err != nil {
			return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
		}
		c.str, c.valid = s, true
	case StoreArray:
		if err := v.copyInArray(src); err != nil {
			return err
		}
		v.Mark(false, false)
		return nil
	default:
		return fieldErr(ErrNoConvert, v.pathHint())
	}
	v.Mark(false, false)
	return nil
}

func (v *Value) copyInArray(src interface{}) error {
	c := v.cell()
	code := v.desc().Code()
	if sa, ok := src.(*SharedArray); ok {
		if err := checkArrayLen(sa.Len()); err != nil {
			return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
		}
		var elemDesc *TypeDesc
		if code == StructA || code == UnionA {
			elemDesc = v.desc().Members()[0]
		}
		if !sa.compatibleWith(code, elemDesc) {
			return fieldErr(ErrNoConvert, v.pathHint())
		}
		if sa.IsUntyped() {
			retyped, err := sa.Retype(code.ScalarOf(), elemDesc)
			if err != nil {
				return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
			}
			sa = retyped
		}
		c.arr, c.valid = sa, true
		return nil
	}
	out, err := buildArrayFrom(code, v.desc(), src)
	if err != nil {
		return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
	}
	if err := checkArrayLen(out.Len()); err != nil {
		return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
	}
	c.arr, c.valid = out, true
	return nil
}

// buildArrayFrom allocates a SharedArray shaped for code's element
// (which, for an unsigned scalar code, backs onto a.uints rather than
// a.ints) and fills it from src, converting element-by-element rather
// than assuming src's Go slice signedness already matches the target:
// a []int64 source feeding a UInt32A field must land in a.uints, not
// silently no-op into the nil a.ints.
func buildArrayFrom(code TypeCode, desc *TypeDesc, src interface{}) (*SharedArray, error) {
	elem := code.ScalarOf()
	switch s := src.(type) {
	case []bool:
		a := NewSharedArray(elem, nil, len(s))
		copy(a.bools, s)
		return a, nil
	case []int64:
		a := NewSharedArray(elem, nil, len(s))
		if a.uints != nil {
			for i, x := range s {
				a.uints[i] = uint64(x)
			}
		} else {
			copy(a.ints, s)
		}
		return a, nil
	case []int:
		a := NewSharedArray(elem, nil, len(s))
		if a.uints != nil {
			for i, x := range s {
				a.uints[i] = uint64(x)
			}
		} else {
			for i, x := range s {
				a.ints[i] = int64(x)
			}
		}
		return a, nil
	case []uint64:
		a := NewSharedArray(elem, nil, len(s))
		if a.ints != nil {
			for i, x := range s {
				a.ints[i] = int64(x)
			}
		} else {
			copy(a.uints, s)
		}
		return a, nil
	case []float64:
		a := NewSharedArray(elem, nil, len(s))
		copy(a.reals, s)
		return a, nil
	case []string:
		a := NewSharedArray(elem, nil, len(s))
		copy(a.strs, s)
		return a, nil
	default:
		return nil, fmt.Errorf("pvdata: no array conversion from %T", src)
	}
}

// CopyOut reads a leaf cell's value out as the closest-matching Go
// type (bool, int64, uint64, float64, string, or *SharedArray for
// array leaves). Returns ErrNoField if the cell has never been
// written.
func (v *Value) CopyOut() (interface{}, error) {
	c := v.cell()
	if !c.valid {
		return nil, fieldErr(ErrNoField, v.pathHint())
	}
	switch c.store {
	case StoreBool:
		return c.b, nil
	case StoreInteger:
		return c.i64, nil
	case StoreUInteger:
		return c.u64, nil
	case StoreReal:
		return c.f64, nil
	case StoreString:
		return c.str, nil
	case StoreArray:
		return c.arr, nil
	default:
		return nil, fieldErr(ErrNoConvert, v.pathHint())
	}
}

func toBool(src interface{}) (bool, error) {
	switch s := src.(type) {
	case bool:
		return s, nil
	case int64:
		return s != 0, nil
	case uint64:
		return s != 0, nil
	case int:
		return s != 0, nil
	case float64:
		return s != 0, nil
	case string:
		switch s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			// Only "true"/"false" convert; unlike strconv.ParseBool this
			// rejects "1"/"t"/"TRUE" and the like, and the source's
			// historical "flase" typo for false.
			return false, fmt.Errorf("pvdata: %q is not a valid bool literal", s)
		}
	default:
		return false, fmt.Errorf("pvdata: no bool conversion from %T", src)
	}
}

func toInt64(src interface{}) (int64, error) {
	switch s := src.(type) {
	case int64:
		return s, nil
	case int:
		return int64(s), nil
	case int32:
		return int64(s), nil
	case uint64:
		return int64(s), nil
	case float64:
		return int64(s), nil
	case bool:
		if s {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(s, 10, 64)
	default:
		return 0, fmt.Errorf("pvdata: no integer conversion from %T", src)
	}
}

func toUint64(src interface{}) (uint64, error) {
	switch s := src.(type) {
	case uint64:
		return s, nil
	case int64:
		return uint64(s), nil
	case int:
		return uint64(s), nil
	case float64:
		return uint64(s), nil
	case bool:
		if s {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseUint(s, 10, 64)
	default:
		return 0, fmt.Errorf("pvdata: no unsigned integer conversion from %T", src)
	}
}

func toFloat64(src interface{}) (float64, error) {
	switch s := src.(type) {
	case float64:
		return s, nil
	case float32:
		return float64(s), nil
	case int64:
		return float64(s), nil
	case int:
		return float64(s), nil
	case uint64:
		return float64(s), nil
	case bool:
		if s {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("pvdata: no real conversion from %T", src)
	}
}

func toString(src interface{}) (string, error) {
	switch s := src.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("pvdata: no string conversion from %T", src)
	}
}
