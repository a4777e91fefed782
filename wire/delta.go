package wire

import (
	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// walkCells visits every depth-first storage cell of v's tree exactly
// once, in the same order pvdata's TypeDesc flattening assigned them:
// a Struct node is visited then its fields are visited recursively;
// every other kind (leaf, scalar array, Union, Any, StructA, UnionA,
// AnyA) is visited once and not descended into, since their own
// internal data lives on independent storage, not more cells of this
// flattened array.
func walkCells(v *pvdata.Value, visit func(*pvdata.Value)) {
	visit(v)
	if v.Type().Code() != pvdata.Struct {
		return
	}
	for _, m := range v.Type().Iter() {
		child, err := v.Field(m.Name)
		if err != nil {
			continue
		}
		walkCells(child, visit)
	}
}

// EncodeValueDelta writes v's changed cells as a BitMask followed by
// each set bit's payload, in depth-first cell order (§4.7.3). A bit is
// set exactly when that cell's own mark is set (IsMarked(false,
// false)) — not when some ancestor or descendant happens to be marked
// — so the mask records precisely what was written, no more.
func EncodeValueDelta(w *Writer, store *TypeStore, v *pvdata.Value) error {
	var cells []*pvdata.Value
	walkCells(v, func(c *pvdata.Value) { cells = append(cells, c) })

	mask := NewBitMask(len(cells))
	for i, c := range cells {
		if c.IsMarked(false, false) {
			mask.Set(i)
		}
	}
	mask.Encode(w)

	for i, c := range cells {
		if !mask.Get(i) {
			continue
		}
		if c.Type().Code() == pvdata.Struct {
			continue // no payload of its own; its fields have their own bits
		}
		if err := encodeNode(w, store, c); err != nil {
			return err
		}
	}
	return nil
}

// DecodeValueDelta is EncodeValueDelta's inverse: it overlays the
// cells named by the incoming BitMask onto v, raising their valid bit,
// and leaves every other cell of v untouched.
func DecodeValueDelta(r *Reader, store *TypeStore, v *pvdata.Value) error {
	var cells []*pvdata.Value
	walkCells(v, func(c *pvdata.Value) { cells = append(cells, c) })

	mask, err := DecodeBitMask(r)
	if err != nil {
		return err
	}
	if mask.Len() != len(cells) {
		return pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, errMaskLengthMismatch)
	}

	for i, c := range cells {
		if !mask.Get(i) {
			continue
		}
		if c.Type().Code() == pvdata.Struct {
			continue
		}
		if err := decodeNode(r, store, c); err != nil {
			return err
		}
	}
	return nil
}

var errMaskLengthMismatch = simpleError("delta BitMask length does not match target shape")
