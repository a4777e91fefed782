package pvdata

import "go.uber.org/atomic"

// FieldStorage is one leaf cell of a StorageTop, parallel by index to
// a typeTree's flattened depth-first array. A Struct node's own cell
// carries no payload (its fields live in sibling cells); every other
// node kind stores exactly one of the typed fields below, selected by
// store.
type FieldStorage struct {
	desc  *TypeDesc
	store StoreCode

	valid  bool // a value has been written via CopyIn/set
	marked bool // selected by Mark, independent of valid

	i64 int64
	u64 uint64
	f64 float64
	b   bool
	str string
	arr *SharedArray

	// Union: selected variant, or -1 if none selected yet.
	variant int
	// Any: the dynamic type chosen for the current value, nil if none.
	anyDesc *TypeDesc
	// Union/Any: the active sub-value, rooted at its own StorageTop
	// since variants/Any payloads are independently-rooted trees.
	sub *Value
}

// StorageTop owns one FieldStorage cell per node of a TypeDesc's
// flattened tree. It is the unit of ownership Freeze's uniqueness
// test applies to.
//
// owners counts explicit aliases of this StorageTop (see Value.Ref),
// not sub-Value navigation: Go's GC already keeps cells reachable for
// as long as any Value (root or sub) references top, so the refcount
// only needs to model the thing Freeze actually cares about — whether
// some other independently-held handle could still mutate this data
// out from under a reader who just froze it.
type StorageTop struct {
	tree   *typeTree
	cells  []FieldStorage
	owners *atomic.Int32
	frozen bool
}

func newStorageTop(desc *TypeDesc) *StorageTop {
	top := &StorageTop{
		tree:   desc.tree,
		cells:  make([]FieldStorage, len(desc.tree.nodes)),
		owners: atomic.NewInt32(1),
	}
	for i := range top.cells {
		d := &TypeDesc{tree: desc.tree, index: i}
		top.cells[i] = FieldStorage{desc: d, store: storeCodeOf(d.Code()), variant: -1}
		if d.Code() == StructA || d.Code() == UnionA {
			elem := d.Members()[0]
			top.cells[i].arr = NewSharedArray(d.Code(), elem, 0)
		} else if d.Code().IsArray() {
			top.cells[i].arr = NewSharedArray(d.Code().ScalarOf(), nil, 0)
		}
	}
	return top
}

// isUnique reports whether exactly one owner holds this StorageTop.
func (t *StorageTop) isUnique() bool { return t.owners.Load() == 1 }
