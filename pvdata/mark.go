package pvdata

// Mark sets v's own bit. If propagateParents, every enclosing Struct's
// own bit is also set; if propagateChildren, every descendant's own
// bit is also set (including into Union/Any sub-values and
// StructA/UnionA/AnyA elements, which live on independent StorageTops).
// CopyIn and Union/Any selection call Mark(false, false) automatically
// — only the written cell's own bit, no propagation — so a delta built
// from the raw per-cell bits matches exactly what was written, not
// every ancestor on the path to it (see IsMarked for the aggregate
// query that walks the tree instead of relying on propagation).
func (v *Value) Mark(propagateParents, propagateChildren bool) *Value {
	v.cell().marked = true
	if propagateParents {
		cur := v
		for {
			p, ok := cur.Parent()
			if !ok {
				break
			}
			p.cell().marked = true
			cur = p
		}
	}
	if propagateChildren {
		setMarkSubtree(v, true)
	}
	return v
}

// Unmark clears v's own bit, with the same optional propagation as
// Mark.
func (v *Value) Unmark(propagateParents, propagateChildren bool) *Value {
	v.cell().marked = false
	if propagateParents {
		cur := v
		for {
			p, ok := cur.Parent()
			if !ok {
				break
			}
			p.cell().marked = false
			cur = p
		}
	}
	if propagateChildren {
		setMarkSubtree(v, false)
	}
	return v
}

// IsMarked reports whether v's own bit is set, or (when checkParents)
// any ancestor's is, or (when checkChildren) any descendant's is —
// walked dynamically rather than relying on propagation having
// physically set those other bits.
func (v *Value) IsMarked(checkParents, checkChildren bool) bool {
	if v.cell().marked {
		return true
	}
	if checkParents {
		cur := v
		for {
			p, ok := cur.Parent()
			if !ok {
				break
			}
			if p.cell().marked {
				return true
			}
			cur = p
		}
	}
	if checkChildren && anyMarkedSubtree(v) {
		return true
	}
	return false
}

func setMarkSubtree(v *Value, mark bool) {
	c := v.cell()
	c.marked = mark
	if c.sub != nil {
		setMarkSubtree(&Value{top: c.sub.top, index: c.sub.index, mutable: c.sub.mutable}, mark)
	}
	if c.arr != nil {
		for _, elem := range c.arr.compounds {
			if elem != nil {
				setMarkSubtree(elem, mark)
			}
		}
	}
	for _, m := range v.desc().Iter() {
		setMarkSubtree(v.sub(m.Desc.index), mark)
	}
}

func anyMarkedSubtree(v *Value) bool {
	c := v.cell()
	if c.sub != nil {
		sub := &Value{top: c.sub.top, index: c.sub.index, mutable: c.sub.mutable}
		if sub.cell().marked || anyMarkedSubtree(sub) {
			return true
		}
	}
	if c.arr != nil {
		for _, elem := range c.arr.compounds {
			if elem == nil {
				continue
			}
			if elem.cell().marked || anyMarkedSubtree(elem) {
				return true
			}
		}
	}
	for _, m := range v.desc().Iter() {
		child := v.sub(m.Desc.index)
		if child.cell().marked || anyMarkedSubtree(child) {
			return true
		}
	}
	return false
}
