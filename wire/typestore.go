package wire

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// ControlCode precedes every TypeDesc sent on the wire, telling the
// receiver how to resolve it against the connection's TypeStore.
type ControlCode uint8

const (
	// CtrlFullTypeWithTag introduces a new cached TypeDesc under a
	// fresh (or reused) tag; the full shape follows.
	CtrlFullTypeWithTag ControlCode = iota
	// CtrlOnlyIdTag references a tag already cached by an earlier
	// CtrlFullTypeWithTag on this connection.
	CtrlOnlyIdTag
	// CtrlEmbeddedTypeTag references a tag already cached earlier in
	// the same message (e.g. a pvRequest echoed back inside a
	// combined type+value reply); decodes the same way as
	// CtrlOnlyIdTag.
	CtrlEmbeddedTypeTag
	// CtrlNull marks an absent TypeDesc (e.g. an unset Any).
	CtrlNull
)

// TypeStore is a per-connection cache mapping a 16-bit tag to a
// TypeDesc, kept in both directions: EncodeType looks up an existing tag by structural
// hash before minting a new one, and DecodeType resolves a tag back
// to the TypeDesc that CtrlFullTypeWithTag cached under it.
type TypeStore struct {
	mu      sync.RWMutex
	ConnID  uuid.UUID
	byTag   map[uint16]*pvdata.TypeDesc
	tagOf   map[uint64]uint16
	nextTag uint16
}

// NewTypeStore allocates an empty cache tagged with a fresh
// connection id, for correlating log lines to a specific connection's
// cache state.
func NewTypeStore() *TypeStore {
	return &TypeStore{
		ConnID: uuid.New(),
		byTag:  make(map[uint16]*pvdata.TypeDesc),
		tagOf:  make(map[uint64]uint16),
	}
}

// EncodeType writes desc preceded by its control code, minting a new
// tag (evicting whatever the tag previously held) the first time this
// shape is seen on the connection and sending only the tag afterward.
// A nil desc writes CtrlNull.
func (s *TypeStore) EncodeType(w *Writer, desc *pvdata.TypeDesc) {
	if desc == nil {
		w.PutUint8(uint8(CtrlNull))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tag, ok := s.tagOf[desc.Hash()]; ok {
		w.PutUint8(uint8(CtrlOnlyIdTag))
		w.PutUint16(tag)
		return
	}
	tag := s.nextTag
	s.nextTag++
	if old, existed := s.byTag[tag]; existed {
		delete(s.tagOf, old.Hash())
	}
	s.byTag[tag] = desc
	s.tagOf[desc.Hash()] = tag

	w.PutUint8(uint8(CtrlFullTypeWithTag))
	w.PutUint16(tag)
	encodeTypeDesc(w, desc)
	logger.Debug("wire: cached new TypeDesc tag", zapField("tag", int(tag)))
}

// DecodeType reads a TypeDesc control code and resolves it against
// the cache, reporting BadWire on an unresolved tag.
func (s *TypeStore) DecodeType(r *Reader) (*pvdata.TypeDesc, error) {
	ctrl, err := r.GetUint8()
	if err != nil {
		return nil, err
	}
	switch ControlCode(ctrl) {
	case CtrlNull:
		return nil, nil
	case CtrlFullTypeWithTag:
		tag, err := r.GetUint16()
		if err != nil {
			return nil, err
		}
		m, err := decodeTypeDesc(r)
		if err != nil {
			return nil, err
		}
		desc, err := finalizeRoot(m)
		if err != nil {
			return nil, pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, err)
		}
		s.mu.Lock()
		if old, existed := s.byTag[tag]; existed {
			delete(s.tagOf, old.Hash())
		}
		s.byTag[tag] = desc
		s.tagOf[desc.Hash()] = tag
		s.mu.Unlock()
		return desc, nil
	case CtrlOnlyIdTag, CtrlEmbeddedTypeTag:
		tag, err := r.GetUint16()
		if err != nil {
			return nil, err
		}
		s.mu.RLock()
		desc, ok := s.byTag[tag]
		s.mu.RUnlock()
		if !ok {
			return nil, pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, errUnresolvedTag)
		}
		return desc, nil
	default:
		return nil, pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, errBadControlCode)
	}
}

var (
	errUnresolvedTag  = simpleError("unresolved TypeStore tag")
	errBadControlCode = simpleError("unknown TypeDesc control code")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }
