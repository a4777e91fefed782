package pvdata

import "go.uber.org/atomic"

// Value is a borrowed view of one node of a StorageTop: a (tree
// index, top) pair plus a mutable/immutable role. Both the root Value
// returned by Build and every sub-Value reached by navigation share
// the same StorageTop — they differ only in which index they look at
// and whether mutation is permitted through them.
type Value struct {
	top     *StorageTop
	index   int
	mutable bool
}

// Build allocates a fresh StorageTop for desc and returns its root
// Value, mutable and uniquely owned.
func Build(desc *TypeDesc) *Value {
	top := newStorageTop(desc)
	return &Value{top: top, index: desc.index, mutable: true}
}

func (v *Value) desc() *TypeDesc { return &TypeDesc{tree: v.top.tree, index: v.index} }
func (v *Value) cell() *FieldStorage { return &v.top.cells[v.index] }

// Type returns the TypeDesc node this Value currently views.
func (v *Value) Type() *TypeDesc { return v.desc() }

// IsMutable reports whether this handle permits CopyIn/Mark/Freeze.
func (v *Value) IsMutable() bool { return v.mutable }

// IsValid reports whether a value has been written to this leaf.
func (v *Value) IsValid() bool { return v.cell().valid }

// sub constructs a new Value over the same top at a different index,
// inheriting this Value's mutability.
func (v *Value) sub(index int) *Value {
	return &Value{top: v.top, index: index, mutable: v.mutable}
}

// Ref returns a new handle sharing this Value's StorageTop, bumping
// its owner count. Release the returned handle (or the original) when
// you no longer need independent aliasing — e.g. to let a concurrent
// reader hold an immutable snapshot while the writer continues past
// it, or to exercise Freeze's uniqueness check directly.
func (v *Value) Ref() *Value {
	v.top.owners.Inc()
	return &Value{top: v.top, index: v.index, mutable: v.mutable}
}

// Release drops this handle's share of the StorageTop's owner count.
// Call it exactly once per Ref() you no longer need; it is a no-op on
// a nil Value.
func (v *Value) Release() {
	if v == nil {
		return
	}
	v.top.owners.Dec()
}

// Clone deep-copies the entire StorageTop this Value's root belongs
// to into a fresh, uniquely-owned, mutable tree, and returns a Value
// at the same relative position within it.
func (v *Value) Clone() *Value {
	src := v.top
	dst := &StorageTop{tree: src.tree, cells: make([]FieldStorage, len(src.cells))}
	dst.owners = atomic.NewInt32(1)
	for i := range src.cells {
		c := src.cells[i]
		if c.arr != nil {
			c.arr = c.arr.Clone()
		}
		if c.sub != nil {
			c.sub = c.sub.Clone()
		}
		dst.cells[i] = c
	}
	return &Value{top: dst, index: v.index, mutable: true}
}

// CloneEmpty returns a fresh, unpopulated, uniquely-owned mutable
// Value sharing this Value's root TypeDesc — equivalent to
// Build(v.Type()) when v is the root, but always rebuilds a root-sized
// StorageTop regardless of which sub-node v views.
func (v *Value) CloneEmpty() *Value {
	root := &TypeDesc{tree: v.top.tree, index: 0}
	return Build(root)
}

// Assign copies every valid leaf from other into v in place (other and
// v must describe the same shape by Hash()), setting marks on the
// destination as it goes. v keeps its own StorageTop: a leaf other
// never wrote is left exactly as it was. Returns ErrTypeMismatch on a
// shape mismatch.
func (v *Value) Assign(other *Value) error {
	if !v.desc().Equal(other.desc()) {
		return fieldErr(ErrTypeMismatch, v.pathHint())
	}
	assignLeaves(v, other)
	return nil
}

// assignLeaves walks dst/src in lockstep over the same shape, copying
// every valid leaf of src into the corresponding cell of dst.
func assignLeaves(dst, src *Value) {
	switch dst.desc().Code() {
	case Struct:
		// Hash is field-order independent, so src may lay the same
		// fields out in a different order: match children by name.
		for _, m := range dst.desc().Iter() {
			sd, ok := src.desc().Lookup(m.Name)
			if !ok {
				continue
			}
			assignLeaves(dst.sub(m.Desc.index), src.sub(sd.index))
		}
	case Union:
		sc := src.cell()
		if sc.variant < 0 {
			return
		}
		_, idx, ok := dst.desc().VariantByTag(src.SelectedTag())
		if !ok {
			return
		}
		dc := dst.cell()
		dc.variant, dc.sub, dc.valid = idx, sc.sub.Clone(), true
		dst.Mark(false, false)
	case Any:
		sc := src.cell()
		if sc.sub == nil {
			return
		}
		dc := dst.cell()
		dc.anyDesc, dc.sub, dc.valid = sc.anyDesc, sc.sub.Clone(), true
		dst.Mark(false, false)
	case StructA, UnionA, AnyA:
		sc := src.cell()
		if sc.arr == nil || !sc.valid {
			return
		}
		dst.cell().arr, dst.cell().valid = sc.arr.Clone(), true
		dst.Mark(false, false)
	default:
		sc := src.cell()
		if !sc.valid {
			return
		}
		dc := dst.cell()
		switch dc.store {
		case StoreBool:
			dc.b = sc.b
		case StoreInteger:
			dc.i64 = sc.i64
		case StoreUInteger:
			dc.u64 = sc.u64
		case StoreReal:
			dc.f64 = sc.f64
		case StoreString:
			dc.str = sc.str
		case StoreArray:
			dc.arr = sc.arr.Clone()
		}
		dc.valid = true
		dst.Mark(false, false)
	}
}

func (v *Value) pathHint() string { return v.desc().String() }
