package pvdata

import (
	"fmt"
	"sort"
	"strings"
)

// miterEntry is one (immediate_child_name, relative_index) pair, in
// declaration order, for a Struct node.
type miterEntry struct {
	Name     string
	RelIndex int
}

// typeNode is one entry of a typeTree's flattened depth-first array.
// Leaf and scalar-array nodes use none of the Struct-only fields.
// Union/UnionA/StructA nodes instead populate members: each
// alternative (or, for the *A forms, the single element template) is
// itself an independently-rooted TypeDesc, not part of this node's
// own flattened array, because only one of them is ever materialized
// in storage at a time.
type typeNode struct {
	code TypeCode
	id   string

	// Struct only: children flattened inline into the same array.
	mlookup map[string]int // dotted path -> relative index
	miter   []miterEntry   // immediate children, declaration order

	// Union only: tag -> index into members.
	variantIndex map[string]int

	parentIndex  int // distance to the enclosing Struct node; 0 at root
	subtreeSize  int // 1 + count of all flattened descendants
	hash         uint64

	members     []*TypeDesc // Union alternatives, or the singleton element template for *A compound arrays
	memberNames []string    // parallel to members for Union; nil otherwise
}

// typeTree owns one flattened depth-first array of typeNodes. A
// TypeDesc is a (tree, index) view into one such array.
type typeTree struct {
	nodes []typeNode
}

// TypeDesc is an immutable, shared, recursive description of a
// value's shape: one node of a flattened depth-first array. TypeDescs
// are built with TypeDef and, once Finalize()d, are safe to read from
// any number of goroutines without synchronization.
type TypeDesc struct {
	tree  *typeTree
	index int
}

func (d *TypeDesc) node() *typeNode { return &d.tree.nodes[d.index] }

// Code returns this node's TypeCode.
func (d *TypeDesc) Code() TypeCode { return d.node().code }

// ID returns the struct/union/any type id, or "" if this node is not
// one of those kinds (or carries no id).
func (d *TypeDesc) ID() string { return d.node().id }

// Size returns the total number of nodes in this subtree (always
// >= 1); for Union/Any/StructA/UnionA/AnyA this is always exactly 1,
// since their alternatives/elements are independently rooted trees,
// not flattened into this one.
func (d *TypeDesc) Size() int { return d.node().subtreeSize }

// ParentIndex returns the number of nodes between this node and its
// enclosing Struct node (0 at the root of a flattened array).
func (d *TypeDesc) ParentIndex() int { return d.node().parentIndex }

// Hash returns the structural fingerprint of this subtree: two
// TypeDescs built by different code paths that produce identical
// structure and names produce identical Hash().
func (d *TypeDesc) Hash() uint64 { return d.node().hash }

// Members returns the alternatives of a Union, or the singleton
// element template of a StructA/UnionA. Nil for any other kind.
func (d *TypeDesc) Members() []*TypeDesc { return d.node().members }

// MemberNames returns the tag names parallel to Members(), for Union
// only.
func (d *TypeDesc) MemberNames() []string { return d.node().memberNames }

// Iter returns the ordered (name, descendant) pairs of this Struct's
// immediate children. Empty for non-Struct nodes.
func (d *TypeDesc) Iter() []struct {
	Name string
	Desc *TypeDesc
} {
	n := d.node()
	out := make([]struct {
		Name string
		Desc *TypeDesc
	}, len(n.miter))
	for i, m := range n.miter {
		out[i] = struct {
			Name string
			Desc *TypeDesc
		}{Name: m.Name, Desc: d.childAt(m.RelIndex)}
	}
	return out
}

// Lookup resolves a dotted member path against this Struct's mlookup
// and returns the descendant TypeDesc. ok is false if this node is
// not a Struct or the path is unknown.
func (d *TypeDesc) Lookup(path string) (desc *TypeDesc, ok bool) {
	n := d.node()
	if n.mlookup == nil {
		return nil, false
	}
	rel, found := n.mlookup[path]
	if !found {
		return nil, false
	}
	return d.childAt(rel), true
}

// VariantByTag resolves a Union's alternative by tag name.
func (d *TypeDesc) VariantByTag(tag string) (desc *TypeDesc, index int, ok bool) {
	n := d.node()
	idx, found := n.variantIndex[tag]
	if !found {
		return nil, -1, false
	}
	return n.members[idx], idx, true
}

func (d *TypeDesc) childAt(relIndex int) *TypeDesc {
	return &TypeDesc{tree: d.tree, index: d.index + relIndex}
}

// Equal reports whether two TypeDescs describe identical shapes (same
// Hash()). It does not require them to share the same underlying
// tree allocation.
func (d *TypeDesc) Equal(o *TypeDesc) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Hash() == o.Hash()
}

// String renders a compact, human-readable rendering of the shape,
// e.g. "struct{value:int32 alarm:struct{severity:int32}}". This is
// for logs and error messages, not a parseable format.
func (d *TypeDesc) String() string {
	var sb strings.Builder
	writeTypeDesc(&sb, d)
	return sb.String()
}

func writeTypeDesc(sb *strings.Builder, d *TypeDesc) {
	n := d.node()
	sb.WriteString(n.code.String())
	if n.id != "" {
		sb.WriteString(" \"")
		sb.WriteString(n.id)
		sb.WriteString("\"")
	}
	switch n.code {
	case Struct:
		sb.WriteByte('{')
		for i, m := range n.miter {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(m.Name)
			sb.WriteByte(':')
			writeTypeDesc(sb, d.childAt(m.RelIndex))
		}
		sb.WriteByte('}')
	case Union:
		sb.WriteByte('{')
		for i, name := range n.memberNames {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(name)
			sb.WriteByte(':')
			writeTypeDesc(sb, n.members[i])
		}
		sb.WriteByte('}')
	case StructA, UnionA:
		sb.WriteByte('<')
		writeTypeDesc(sb, n.members[0])
		sb.WriteByte('>')
	}
}

// ============================================================
// Builder
// ============================================================

// TypeDef builds a TypeDesc from a root Member (or a bare scalar
// TypeCode) and finalizes it into an immutable, shareable TypeDesc
// tree. Mirrors pvxs's TypeDef: construct, optionally append more
// children with Append, then Build() a Value directly or Finalize()
// to just get the TypeDesc.
type TypeDef struct {
	root Member
}

// NewTypeDef starts a definition from a composite root (Struct,
// Union, StructA, UnionA) with an id and children.
func NewTypeDef(code TypeCode, id string, children ...Member) *TypeDef {
	return &TypeDef{root: Member{Code: code, ID: id, Children: children}}
}

// NewScalarTypeDef starts a definition for a single scalar/array/Any
// root field (no struct wrapper).
func NewScalarTypeDef(code TypeCode) *TypeDef {
	return &TypeDef{root: Member{Code: code}}
}

// Append adds additional children to the root; valid only when the
// root is Struct or Union.
func (t *TypeDef) Append(children ...Member) *TypeDef {
	t.root.Children = append(t.root.Children, children...)
	return t
}

// Finalize walks the member tree once and produces the immutable
// TypeDesc root. Duplicate field/variant names resolve to a single
// aggregated error via multierr so a builder with several duplicates
// reports all of them at once. Empty Struct/Union ids are accepted.
func (t *TypeDef) Finalize() (*TypeDesc, error) {
	var errs error
	root, err := buildNode(t.root, &errs)
	if err != nil {
		errs = multierrAppend(errs, err)
	}
	if errs != nil {
		return nil, errs
	}
	return root, nil
}

// Build finalizes the definition and allocates storage for it,
// returning the root mutable Value. Equivalent to Finalize()
// followed by pvdata.Build(desc).
func (t *TypeDef) Build() (*Value, error) {
	desc, err := t.Finalize()
	if err != nil {
		return nil, err
	}
	return Build(desc), nil
}

// buildNode compiles one Member (and, for Struct, everything beneath
// it) into a fresh, independently-owned typeTree and returns its
// root TypeDesc.
func buildNode(m Member, errs *error) (*TypeDesc, error) {
	tree := &typeTree{}
	idx := flatten(tree, m, -1, errs)
	root := &TypeDesc{tree: tree, index: idx}
	computeHashes(tree)
	return root, nil
}

// flatten appends m (and, if m is a Struct, its fields recursively)
// to tree in depth-first order, returning the index m landed at.
// structIndex is the index of the nearest enclosing Struct node, or
// -1 if m has none (the top of a tree). Union/StructA/UnionA/AnyA
// children are compiled as separate trees and hung off node.members
// instead of being flattened inline.
func flatten(tree *typeTree, m Member, structIndex int, errs *error) int {
	myIdx := len(tree.nodes)
	parentIndex := 0
	if structIndex >= 0 {
		parentIndex = myIdx - structIndex
	}
	tree.nodes = append(tree.nodes, typeNode{code: m.Code, id: m.ID, parentIndex: parentIndex})

	switch m.Code {
	case Struct:
		seen := make(map[string]bool, len(m.Children))
		mlookup := make(map[string]int)
		miter := make([]miterEntry, 0, len(m.Children))
		for _, child := range m.Children {
			if seen[child.Name] {
				*errs = multierrAppend(*errs, fmt.Errorf("pvdata: duplicate field %q in struct %q", child.Name, m.ID))
				continue
			}
			seen[child.Name] = true
			childIdx := flatten(tree, child, myIdx, errs)
			rel := childIdx - myIdx
			mlookup[child.Name] = rel
			miter = append(miter, miterEntry{Name: child.Name, RelIndex: rel})

			// Transitively-dotted paths: every descendant of this
			// child struct is also reachable from here as
			// "child.name...".
			if child.Code == Struct {
				childNode := &tree.nodes[childIdx]
				for path, crel := range childNode.mlookup {
					mlookup[child.Name+"."+path] = rel + crel
				}
			}
		}
		tree.nodes[myIdx].mlookup = mlookup
		tree.nodes[myIdx].miter = miter
		tree.nodes[myIdx].subtreeSize = len(tree.nodes) - myIdx

	case Union:
		members := make([]*TypeDesc, 0, len(m.Children))
		names := make([]string, 0, len(m.Children))
		variantIndex := make(map[string]int, len(m.Children))
		for _, variant := range m.Children {
			if _, dup := variantIndex[variant.Name]; dup {
				*errs = multierrAppend(*errs, fmt.Errorf("pvdata: duplicate variant %q in union %q", variant.Name, m.ID))
				continue
			}
			sub, _ := buildNode(variant, errs)
			variantIndex[variant.Name] = len(members)
			names = append(names, variant.Name)
			members = append(members, sub)
		}
		tree.nodes[myIdx].members = members
		tree.nodes[myIdx].memberNames = names
		tree.nodes[myIdx].variantIndex = variantIndex
		tree.nodes[myIdx].subtreeSize = 1

	case StructA:
		elem, _ := buildNode(Member{Code: Struct, ID: m.ID, Children: m.Children}, errs)
		tree.nodes[myIdx].members = []*TypeDesc{elem}
		tree.nodes[myIdx].subtreeSize = 1

	case UnionA:
		elem, _ := buildNode(Member{Code: Union, ID: m.ID, Children: m.Children}, errs)
		tree.nodes[myIdx].members = []*TypeDesc{elem}
		tree.nodes[myIdx].subtreeSize = 1

	default:
		// Leaf, scalar array, Any, AnyA: a single node, no members.
		tree.nodes[myIdx].subtreeSize = 1
	}

	return myIdx
}

// computeHashes fills in node.hash for every node of tree,
// bottom-up, via mixHash(code, id, sum-of-mix(child_name, child.hash)).
func computeHashes(tree *typeTree) {
	// Children always occur after their parent at a higher index and
	// recursion into Union/StructA/UnionA members already computed
	// their hashes (independent trees, computed by their own
	// buildNode call) — so a single reverse pass over this tree's own
	// flattened array suffices for Struct nodes.
	for i := len(tree.nodes) - 1; i >= 0; i-- {
		n := &tree.nodes[i]
		h := mixHash(mixSeed, uint64(n.code))
		h = mixString(h, n.id)
		switch n.code {
		case Struct:
			names := make([]string, 0, len(n.miter))
			for _, e := range n.miter {
				names = append(names, e.Name)
			}
			sort.Strings(names) // name/hash pairs combine order-independently
			byName := make(map[string]uint64, len(n.miter))
			for _, e := range n.miter {
				byName[e.Name] = tree.nodes[i+e.RelIndex].hash
			}
			for _, name := range names {
				h = mixString(h, name)
				h = mixHash(h, byName[name])
			}
		case Union:
			names := append([]string(nil), n.memberNames...)
			sort.Strings(names)
			byName := make(map[string]uint64, len(n.members))
			for idx, name := range n.memberNames {
				byName[name] = n.members[idx].Hash()
			}
			for _, name := range names {
				h = mixString(h, name)
				h = mixHash(h, byName[name])
			}
		case StructA, UnionA:
			h = mixHash(h, n.members[0].Hash())
		}
		n.hash = h
	}
}

const mixSeed = 0xcbf29ce484222325 // fnv-1a 64-bit offset basis

// mixHash combines an accumulator with a 64-bit value, fnv-1a style.
func mixHash(acc, v uint64) uint64 {
	const prime = 0x100000001b3
	acc ^= v
	acc *= prime
	return acc
}

func mixString(acc uint64, s string) uint64 {
	const prime = 0x100000001b3
	for i := 0; i < len(s); i++ {
		acc ^= uint64(s[i])
		acc *= prime
	}
	return acc
}
