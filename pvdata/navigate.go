package pvdata

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Field resolves a dotted member path against a Struct Value and
// returns the sub-Value at that path. Trailing "->tag" (Union) or
// "->" (Any) segments are handled by Select/AnyValue instead; Field
// itself only walks plain Struct member names.
func (v *Value) Field(path string) (*Value, error) {
	if path == "" {
		return v, nil
	}
	d := v.desc()
	rel, ok := d.Lookup(path)
	if !ok {
		return nil, fieldErr(ErrNoField, path)
	}
	return v.sub(rel.index), nil
}

// Parent ascends from a Struct member back to its enclosing Struct
// Value, the "<" navigation operator. ok is false at the root of a
// flattened tree (parentIndex == 0).
func (v *Value) Parent() (*Value, bool) {
	n := v.desc().ParentIndex()
	if n == 0 {
		return nil, false
	}
	return v.sub(v.index - n), true
}

// Select switches a Union (or UnionA element) Value to the named
// variant, allocating fresh storage for it if it is not already the
// active selection, and returns the sub-Value over that variant.
// Selecting a different variant than the one currently active
// discards the previous variant's value.
func (v *Value) Select(tag string) (*Value, error) {
	d := v.desc()
	variant, idx, ok := d.VariantByTag(tag)
	if !ok {
		return nil, fieldErr(ErrNoField, tag)
	}
	c := v.cell()
	if c.variant != idx || c.sub == nil {
		if c.variant >= 0 && c.variant != idx {
			logger.Debug("pvdata: union variant switched, discarding previous value",
				zap.String("tag", tag))
		}
		c.variant = idx
		c.sub = Build(variant)
		c.valid = true
		v.Mark(false, false)
	}
	return c.sub, nil
}

// SelectIndex switches a Union Value to its idx-th variant (1-based,
// matching the wire selector convention where 0 means unselected),
// the index-addressed counterpart of Select.
func (v *Value) SelectIndex(idx int) (*Value, error) {
	members := v.desc().Members()
	if idx < 1 || idx > len(members) {
		return nil, fieldErr(ErrNoField, v.pathHint())
	}
	tag := v.desc().MemberNames()[idx-1]
	return v.Select(tag)
}

// SelectedIndex returns the 1-based wire selector index of a Union's
// active variant, or 0 if none is selected.
func (v *Value) SelectedIndex() int {
	c := v.cell()
	if c.variant < 0 {
		return 0
	}
	return c.variant + 1
}

// SelectedTag returns the tag name of a Union's currently active
// variant, or "" if none has been selected.
func (v *Value) SelectedTag() string {
	c := v.cell()
	if c.variant < 0 {
		return ""
	}
	return v.desc().MemberNames()[c.variant]
}

// SetAny stores a value of the given shape into an Any (or AnyA
// element) Value, replacing whatever was there before, and returns
// the fresh sub-Value to populate.
func (v *Value) SetAny(desc *TypeDesc) *Value {
	c := v.cell()
	c.anyDesc = desc
	c.sub = Build(desc)
	c.valid = true
	v.Mark(false, false)
	return c.sub
}

// AnyValue returns the sub-Value currently held by an Any, or nil if
// empty.
func (v *Value) AnyValue() *Value {
	return v.cell().sub
}

// Validate marks this cell's current contents as valid and marked,
// without going through CopyIn's conversion logic — used by the wire
// codec after it has filled an array's backing SharedArray in place.
func (v *Value) Validate() {
	v.cell().valid = true
	v.Mark(false, false)
}

// Array returns the current SharedArray backing an array-kind Value,
// regardless of whether it has been marked valid yet.
func (v *Value) Array() *SharedArray { return v.cell().arr }

// ArrayLen returns the element count of an array-kind Value.
func (v *Value) ArrayLen() int {
	a := v.cell().arr
	if a == nil {
		return 0
	}
	return a.Len()
}

// Resize reallocates an array-kind Value's backing SharedArray to
// hold exactly n elements, discarding any previous contents. Used by
// the wire codec, which learns an inbound array's length only as it
// decodes.
func (v *Value) Resize(n int) error {
	c := v.cell()
	if c.store != StoreArray {
		return fieldErr(ErrNoConvert, v.pathHint())
	}
	if err := checkArrayLen(n); err != nil {
		return fieldErrWrap(ErrNoConvert, v.pathHint(), err)
	}
	code := v.desc().Code()
	var elemDesc *TypeDesc
	if code == StructA || code == UnionA {
		elemDesc = v.desc().Members()[0]
	}
	c.arr = NewSharedArray(code.ScalarOf(), elemDesc, n)
	c.valid = true
	return nil
}

// Index resolves element i of a StructA/UnionA Value and returns the
// per-element Value. Out-of-range i returns ErrNoField.
func (v *Value) Index(i int) (*Value, error) {
	c := v.cell()
	if c.arr == nil || i < 0 || i >= len(c.arr.compounds) {
		return nil, fieldErr(ErrNoField, indexPath(v, i))
	}
	return c.arr.compounds[i], nil
}

// SetAnyAt assigns the dynamic type+value of element i of an AnyA
// array, replacing whatever was there, and returns the fresh
// sub-Value to populate.
func (v *Value) SetAnyAt(i int, desc *TypeDesc) (*Value, error) {
	c := v.cell()
	if c.arr == nil || i < 0 || i >= len(c.arr.compounds) {
		return nil, fieldErr(ErrNoField, indexPath(v, i))
	}
	sub := Build(desc)
	c.arr.compounds[i] = sub
	v.Mark(false, false)
	return sub, nil
}

// ActiveVariant returns a Union's currently selected sub-Value
// without allocating one, or nil if no variant has been selected yet.
func (v *Value) ActiveVariant() *Value { return v.cell().sub }

// IDStartsWith reports whether this Value's struct/union/any id begins
// with prefix, the way higher layers (NTScalar/NTEnum detection) probe
// a wire-decoded Value's conventional type id without parsing it fully.
func (v *Value) IDStartsWith(prefix string) bool {
	return strings.HasPrefix(v.desc().ID(), prefix)
}

// SameType reports whether v and other describe the same shape
// (TypeDesc.Equal), regardless of which StorageTop either is backed
// by.
func (v *Value) SameType(other *Value) bool {
	return v.desc().Equal(other.desc())
}

// Equal reports instance identity: whether v and other are handles
// onto the exact same storage cell, as opposed to SameType's
// structural comparison.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.top == other.top && v.index == other.index
}

// NameOf recovers the dotted path from v to descendant, the reverse of
// Field. Both must share the same StorageTop (descendant must have
// been reached from v, or from a common ancestor, by ordinary Struct
// navigation). It does not cross into a Union/Any's independently
// allocated sub-Value. ok is false if descendant isn't reachable from
// v at all.
func (v *Value) NameOf(descendant *Value) (path string, ok bool) {
	if descendant.top != v.top {
		return "", false
	}
	tree := v.top.tree
	var parts []string
	idx := descendant.index
	for idx != v.index {
		node := &TypeDesc{tree: tree, index: idx}
		dist := node.ParentIndex()
		if dist == 0 {
			return "", false
		}
		parentIdx := idx - dist
		name, found := nameForChild(&TypeDesc{tree: tree, index: parentIdx}, idx-parentIdx)
		if !found {
			return "", false
		}
		parts = append(parts, name)
		idx = parentIdx
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "."), true
}

func nameForChild(parent *TypeDesc, rel int) (string, bool) {
	for _, m := range parent.node().miter {
		if m.RelIndex == rel {
			return m.Name, true
		}
	}
	return "", false
}

func indexPath(v *Value, i int) string {
	var sb strings.Builder
	sb.WriteString(v.desc().String())
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(i))
	sb.WriteByte(']')
	return sb.String()
}
