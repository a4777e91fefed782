package wire

import (
	"fmt"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// encodeTypeDesc writes d's shape depth-first: a TypeCode byte, then
// (for Struct/Union) the id and a count of (name, recursive child)
// pairs, or (for StructA/UnionA) the single element TypeDesc written
// the same recursive way. Scalars, scalar arrays, Any, and AnyA carry
// no further payload.
func encodeTypeDesc(w *Writer, d *pvdata.TypeDesc) {
	w.PutUint8(uint8(d.Code()))
	switch d.Code() {
	case pvdata.Struct:
		w.PutString(d.ID())
		children := d.Iter()
		PutSize(w, uint64(len(children)))
		for _, c := range children {
			w.PutString(c.Name)
			encodeTypeDesc(w, c.Desc)
		}
	case pvdata.Union:
		w.PutString(d.ID())
		names := d.MemberNames()
		members := d.Members()
		PutSize(w, uint64(len(members)))
		for i, m := range members {
			w.PutString(names[i])
			encodeTypeDesc(w, m)
		}
	case pvdata.StructA, pvdata.UnionA:
		encodeTypeDesc(w, d.Members()[0])
	}
}

// decodeTypeDesc is encodeTypeDesc's inverse, building a pvdata.Member
// tree (not yet finalized into a TypeDesc — the caller owns that, so
// a Union/StructA element decoded here can be finalized with the
// rest of its containing tree).
func decodeTypeDesc(r *Reader) (pvdata.Member, error) {
	codeByte, err := r.GetUint8()
	if err != nil {
		return pvdata.Member{}, err
	}
	code := pvdata.TypeCode(codeByte)
	switch code {
	case pvdata.Struct:
		id, err := r.GetString()
		if err != nil {
			return pvdata.Member{}, err
		}
		n, err := GetSize(r)
		if err != nil {
			return pvdata.Member{}, err
		}
		children := make([]pvdata.Member, 0, n)
		for i := uint64(0); i < n; i++ {
			name, err := r.GetString()
			if err != nil {
				return pvdata.Member{}, err
			}
			child, err := decodeTypeDesc(r)
			if err != nil {
				return pvdata.Member{}, err
			}
			child.Name = name
			children = append(children, child)
		}
		return pvdata.MStruct("", id, children...), nil
	case pvdata.Union:
		id, err := r.GetString()
		if err != nil {
			return pvdata.Member{}, err
		}
		n, err := GetSize(r)
		if err != nil {
			return pvdata.Member{}, err
		}
		variants := make([]pvdata.Member, 0, n)
		for i := uint64(0); i < n; i++ {
			name, err := r.GetString()
			if err != nil {
				return pvdata.Member{}, err
			}
			v, err := decodeTypeDesc(r)
			if err != nil {
				return pvdata.Member{}, err
			}
			v.Name = name
			variants = append(variants, v)
		}
		return pvdata.MUnion("", id, variants...), nil
	case pvdata.StructA:
		elem, err := decodeTypeDesc(r)
		if err != nil {
			return pvdata.Member{}, err
		}
		return pvdata.MStructA("", elem.ID, elem.Children...), nil
	case pvdata.UnionA:
		elem, err := decodeTypeDesc(r)
		if err != nil {
			return pvdata.Member{}, err
		}
		return pvdata.MUnionA("", elem.ID, elem.Children...), nil
	default:
		if !pvdata.IsValidTypeCode(code) {
			return pvdata.Member{}, pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire,
				fmt.Errorf("pvdata: unknown TypeCode 0x%02x", codeByte))
		}
		return pvdata.M(code, ""), nil
	}
}

// finalizeRoot turns a decoded root Member into a TypeDesc.
func finalizeRoot(m pvdata.Member) (*pvdata.TypeDesc, error) {
	switch m.Code {
	case pvdata.Struct, pvdata.Union, pvdata.StructA, pvdata.UnionA:
		return pvdata.NewTypeDef(m.Code, m.ID, m.Children...).Finalize()
	default:
		return pvdata.NewScalarTypeDef(m.Code).Finalize()
	}
}
