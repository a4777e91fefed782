package pvdata

// Freeze converts a uniquely-owned mutable Value into an immutable
// one. It must be called on the root of a StorageTop; it fails with
// ErrFreeze if any alias taken with Ref and not yet Released still
// shares ownership of the top; sub-Values reached by navigation do
// not count.
//
// On success v itself is left empty (mutable is cleared and its top
// detached) and the returned Value is the new immutable handle —
// mirroring pvxs's Value::freeze(), which consumes the source handle.
func (v *Value) Freeze() (*Value, error) {
	if !v.mutable {
		return nil, fieldErr(ErrFreeze, v.pathHint())
	}
	if !v.top.isUnique() {
		return nil, fieldErr(ErrFreeze, v.pathHint())
	}
	v.top.frozen = true
	frozen := &Value{top: v.top, index: v.index, mutable: false}
	v.top = nil
	v.mutable = false
	return frozen, nil
}

// Thaw converts an immutable Value back into a mutable one. If v is
// still the sole owner of its StorageTop, the conversion is in place
// (O(1)); otherwise Thaw clones the data first so the mutation cannot
// be observed by any other holder of the frozen Value.
func (v *Value) Thaw() *Value {
	if v.mutable {
		return v
	}
	if v.top.isUnique() {
		v.top.frozen = false
		return &Value{top: v.top, index: v.index, mutable: true}
	}
	return v.Clone()
}

// IsFrozen reports whether this Value's StorageTop is immutable.
func (v *Value) IsFrozen() bool { return v.top.frozen }
