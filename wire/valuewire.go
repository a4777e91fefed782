package wire

import (
	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// EncodeValueFull serializes every leaf of v in depth-first order,
// independent of marks (§4.7.2). v must be fully built (e.g. by
// pvdata.Build or a prior DecodeValueFull) — every node visited is
// expected, not optional.
func EncodeValueFull(w *Writer, store *TypeStore, v *pvdata.Value) error {
	return encodeNode(w, store, v)
}

func encodeNode(w *Writer, store *TypeStore, v *pvdata.Value) error {
	switch v.Type().Code() {
	case pvdata.Struct:
		for _, m := range v.Type().Iter() {
			child, err := v.Field(m.Name)
			if err != nil {
				return err
			}
			if err := encodeNode(w, store, child); err != nil {
				return err
			}
		}
		return nil
	case pvdata.Union:
		idx := v.SelectedIndex()
		PutSize(w, uint64(idx))
		if idx == 0 {
			return nil
		}
		return encodeNode(w, store, v.ActiveVariant())
	case pvdata.Any:
		return encodeAny(w, store, v.AnyValue())
	case pvdata.StructA, pvdata.UnionA:
		n := v.ArrayLen()
		PutSize(w, uint64(n))
		for i := 0; i < n; i++ {
			elem, err := v.Index(i)
			if err != nil {
				return err
			}
			if err := encodeNode(w, store, elem); err != nil {
				return err
			}
		}
		return nil
	case pvdata.AnyA:
		n := v.ArrayLen()
		PutSize(w, uint64(n))
		for i := 0; i < n; i++ {
			elem, _ := v.Index(i)
			if err := encodeAny(w, store, elem); err != nil {
				return err
			}
		}
		return nil
	case pvdata.BoolA, pvdata.Int8A, pvdata.Int16A, pvdata.Int32A, pvdata.Int64A,
		pvdata.UInt8A, pvdata.UInt16A, pvdata.UInt32A, pvdata.UInt64A,
		pvdata.Float32A, pvdata.Float64A, pvdata.StringA:
		return encodeScalarArray(w, v)
	default:
		return encodeScalar(w, v)
	}
}

func encodeAny(w *Writer, store *TypeStore, sub *pvdata.Value) error {
	if sub == nil {
		store.EncodeType(w, nil)
		return nil
	}
	store.EncodeType(w, sub.Type())
	return encodeNode(w, store, sub)
}

func encodeScalar(w *Writer, v *pvdata.Value) error {
	out, err := v.CopyOut()
	if err != nil {
		// Unset leaf: write the zero value so the full form stays
		// positionally well-formed.
		out = zeroFor(v.Type().Code())
	}
	switch x := out.(type) {
	case bool:
		w.PutBool(x)
	case int64:
		putIntByWidth(w, v.Type().Code(), x)
	case uint64:
		putUintByWidth(w, v.Type().Code(), x)
	case float64:
		if v.Type().Code() == pvdata.Float32 {
			w.PutFloat32(float32(x))
		} else {
			w.PutFloat64(x)
		}
	case string:
		w.PutString(x)
	}
	return nil
}

func encodeScalarArray(w *Writer, v *pvdata.Value) error {
	a := v.Array()
	n := a.Len()
	if v.Type().Code() == pvdata.UInt8A {
		raw := make([]byte, n)
		for i, x := range a.Uints() {
			raw[i] = byte(x)
		}
		putCompressibleBytes(w, raw)
		return nil
	}
	PutSize(w, uint64(n))
	switch {
	case a.Bools() != nil:
		for _, b := range a.Bools() {
			w.PutBool(b)
		}
	case a.Ints() != nil:
		for _, x := range a.Ints() {
			putIntByWidth(w, v.Type().Code().ScalarOf(), x)
		}
	case a.Uints() != nil:
		for _, x := range a.Uints() {
			putUintByWidth(w, v.Type().Code().ScalarOf(), x)
		}
	case a.Reals() != nil:
		for _, x := range a.Reals() {
			if v.Type().Code() == pvdata.Float32A {
				w.PutFloat32(float32(x))
			} else {
				w.PutFloat64(x)
			}
		}
	case a.Strings() != nil:
		for _, s := range a.Strings() {
			w.PutString(s)
		}
	}
	return nil
}

func putIntByWidth(w *Writer, code pvdata.TypeCode, v int64) {
	switch code.Size() {
	case 1:
		w.PutUint8(uint8(v))
	case 2:
		w.PutUint16(uint16(v))
	case 4:
		w.PutUint32(uint32(v))
	default:
		w.PutUint64(uint64(v))
	}
}

func putUintByWidth(w *Writer, code pvdata.TypeCode, v uint64) {
	switch code.Size() {
	case 1:
		w.PutUint8(uint8(v))
	case 2:
		w.PutUint16(uint16(v))
	case 4:
		w.PutUint32(uint32(v))
	default:
		w.PutUint64(v)
	}
}

func getIntByWidth(r *Reader, code pvdata.TypeCode) (int64, error) {
	switch code.Size() {
	case 1:
		v, err := r.GetUint8()
		return int64(int8(v)), err
	case 2:
		v, err := r.GetUint16()
		return int64(int16(v)), err
	case 4:
		v, err := r.GetUint32()
		return int64(int32(v)), err
	default:
		v, err := r.GetUint64()
		return int64(v), err
	}
}

func getUintByWidth(r *Reader, code pvdata.TypeCode) (uint64, error) {
	switch code.Size() {
	case 1:
		v, err := r.GetUint8()
		return uint64(v), err
	case 2:
		v, err := r.GetUint16()
		return uint64(v), err
	case 4:
		v, err := r.GetUint32()
		return uint64(v), err
	default:
		return r.GetUint64()
	}
}

func zeroFor(code pvdata.TypeCode) interface{} {
	switch code.Kind() {
	case pvdata.KindBool:
		return false
	case pvdata.KindInteger:
		if code.IsUnsigned() {
			return uint64(0)
		}
		return int64(0)
	case pvdata.KindReal:
		return float64(0)
	case pvdata.KindString:
		return ""
	default:
		return nil
	}
}

// DecodeValueFull fills a pre-built Value (of the expected shape) from
// r in depth-first order, the inverse of EncodeValueFull.
func DecodeValueFull(r *Reader, store *TypeStore, v *pvdata.Value) error {
	return decodeNode(r, store, v)
}

// DecodeNewValue reads a TypeStore-encoded TypeDesc from r and
// allocates a fresh, empty mutable Value of that shape, without
// reading any value payload. The spec's from_wire_type: useful on its
// own for a receiver that just wants to learn a peer's advertised
// type (e.g. a pvRequest echo), ahead of a separate DecodeValueFull or
// DecodeValueDelta call against the same bytes.
func DecodeNewValue(r *Reader, store *TypeStore) (*pvdata.Value, error) {
	desc, err := store.DecodeType(r)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, errNoTypeForValue)
	}
	return pvdata.Build(desc), nil
}

// DecodeTypeValue reads a TypeStore-encoded TypeDesc followed by a
// full-form value payload and returns a freshly built, fully
// populated Value, the spec's from_wire_type_value (the combined form
// §4.7.4 motivates for pvRequest-style messages that carry their own
// shape). Equivalent to DecodeNewValue followed by DecodeValueFull,
// provided as a single entry point so callers don't have to
// reconstruct the composition themselves.
func DecodeTypeValue(r *Reader, store *TypeStore) (*pvdata.Value, error) {
	v, err := DecodeNewValue(r, store)
	if err != nil {
		return nil, err
	}
	if err := DecodeValueFull(r, store, v); err != nil {
		return nil, err
	}
	return v, nil
}

var errNoTypeForValue = simpleError("from_wire_type_value: no type for value")

func decodeNode(r *Reader, store *TypeStore, v *pvdata.Value) error {
	switch v.Type().Code() {
	case pvdata.Struct:
		for _, m := range v.Type().Iter() {
			child, err := v.Field(m.Name)
			if err != nil {
				return err
			}
			if err := decodeNode(r, store, child); err != nil {
				return err
			}
		}
		return nil
	case pvdata.Union:
		idx, err := GetSize(r)
		if err != nil {
			return err
		}
		if idx == 0 {
			return nil
		}
		sub, err := v.SelectIndex(int(idx))
		if err != nil {
			return pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, err)
		}
		return decodeNode(r, store, sub)
	case pvdata.Any:
		sub, err := decodeAny(r, store, v)
		if err != nil {
			return err
		}
		_ = sub
		return nil
	case pvdata.StructA, pvdata.UnionA:
		n, err := GetSize(r)
		if err != nil {
			return err
		}
		if err := v.Resize(int(n)); err != nil {
			return err
		}
		for i := 0; i < int(n); i++ {
			elem, err := v.Index(i)
			if err != nil {
				return err
			}
			if err := decodeNode(r, store, elem); err != nil {
				return err
			}
		}
		v.Validate()
		return nil
	case pvdata.AnyA:
		n, err := GetSize(r)
		if err != nil {
			return err
		}
		if err := v.Resize(int(n)); err != nil {
			return err
		}
		for i := 0; i < int(n); i++ {
			desc, err := store.DecodeType(r)
			if err != nil {
				return err
			}
			if desc == nil {
				continue
			}
			elem, err := v.SetAnyAt(i, desc)
			if err != nil {
				return err
			}
			if err := decodeNode(r, store, elem); err != nil {
				return err
			}
		}
		v.Validate()
		return nil
	case pvdata.BoolA, pvdata.Int8A, pvdata.Int16A, pvdata.Int32A, pvdata.Int64A,
		pvdata.UInt8A, pvdata.UInt16A, pvdata.UInt32A, pvdata.UInt64A,
		pvdata.Float32A, pvdata.Float64A, pvdata.StringA:
		return decodeScalarArray(r, v)
	default:
		return decodeScalar(r, v)
	}
}

func decodeAny(r *Reader, store *TypeStore, v *pvdata.Value) (*pvdata.Value, error) {
	desc, err := store.DecodeType(r)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, nil
	}
	sub := v.SetAny(desc)
	if err := decodeNode(r, store, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func decodeScalar(r *Reader, v *pvdata.Value) error {
	code := v.Type().Code()
	switch code.Kind() {
	case pvdata.KindBool:
		b, err := r.GetBool()
		if err != nil {
			return err
		}
		return v.CopyIn(b)
	case pvdata.KindInteger:
		if code.IsUnsigned() {
			u, err := getUintByWidth(r, code)
			if err != nil {
				return err
			}
			return v.CopyIn(u)
		}
		i, err := getIntByWidth(r, code)
		if err != nil {
			return err
		}
		return v.CopyIn(i)
	case pvdata.KindReal:
		if code == pvdata.Float32 {
			f, err := r.GetFloat32()
			if err != nil {
				return err
			}
			return v.CopyIn(float64(f))
		}
		f, err := r.GetFloat64()
		if err != nil {
			return err
		}
		return v.CopyIn(f)
	case pvdata.KindString:
		s, err := r.GetString()
		if err != nil {
			return err
		}
		return v.CopyIn(s)
	default:
		return nil
	}
}

func decodeScalarArray(r *Reader, v *pvdata.Value) error {
	if v.Type().Code() == pvdata.UInt8A {
		raw, err := getCompressibleBytes(r)
		if err != nil {
			return err
		}
		if err := v.Resize(len(raw)); err != nil {
			return err
		}
		out := make([]uint64, len(raw))
		for i, b := range raw {
			out[i] = uint64(b)
		}
		v.Array().SetUints(out)
		v.Validate()
		return nil
	}

	n, err := GetSize(r)
	if err != nil {
		return err
	}
	code := v.Type().Code().ScalarOf()
	if err := v.Resize(int(n)); err != nil {
		return err
	}
	a := v.Array()
	switch code.Kind() {
	case pvdata.KindBool:
		out := make([]bool, n)
		for i := range out {
			if out[i], err = r.GetBool(); err != nil {
				return err
			}
		}
		a.SetBools(out)
	case pvdata.KindInteger:
		if code.IsUnsigned() {
			out := make([]uint64, n)
			for i := range out {
				if out[i], err = getUintByWidth(r, code); err != nil {
					return err
				}
			}
			a.SetUints(out)
		} else {
			out := make([]int64, n)
			for i := range out {
				if out[i], err = getIntByWidth(r, code); err != nil {
					return err
				}
			}
			a.SetInts(out)
		}
	case pvdata.KindReal:
		out := make([]float64, n)
		for i := range out {
			if code == pvdata.Float32 {
				f, err := r.GetFloat32()
				if err != nil {
					return err
				}
				out[i] = float64(f)
			} else {
				if out[i], err = r.GetFloat64(); err != nil {
					return err
				}
			}
		}
		a.SetReals(out)
	case pvdata.KindString:
		out := make([]string, n)
		for i := range out {
			if out[i], err = r.GetString(); err != nil {
				return err
			}
		}
		a.SetStrings(out)
	}
	v.Validate()
	return nil
}
