// Package wire implements the binary codec for pvdata's TypeDesc and
// Value trees: byte-order-tagged buffers, the compact size encoding,
// the depth-first TypeDesc wire form with its per-connection
// TypeStore cache, and the full and delta Value wire forms.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// Order is the wire byte order, fixed for the life of a connection.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) impl() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Writer accumulates an outbound byte-order-tagged buffer.
type Writer struct {
	order Order
	buf   []byte
}

// NewWriter returns an empty Writer for the given byte order.
func NewWriter(order Order) *Writer { return &Writer{order: order} }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) PutUint8(v uint8)  { w.buf = append(w.buf, v) }
func (w *Writer) PutBool(v bool) {
	if v {
		w.PutUint8(1)
	} else {
		w.PutUint8(0)
	}
}

func (w *Writer) PutUint16(v uint16) {
	var b [2]byte
	w.order.impl().PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	w.order.impl().PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutUint64(v uint64) {
	var b [8]byte
	w.order.impl().PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) PutFloat32(v float32) { w.PutUint32(math.Float32bits(v)) }
func (w *Writer) PutFloat64(v float64) { w.PutUint64(math.Float64bits(v)) }

func (w *Writer) PutBytes(b []byte) { w.buf = append(w.buf, b...) }

// PutString writes a size-prefixed UTF-8 string.
func (w *Writer) PutString(s string) {
	PutSize(w, uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// Reader consumes an inbound byte-order-tagged buffer, tracking a
// cursor and failing closed (ErrBadWire) on underrun.
type Reader struct {
	order Order
	buf   []byte
	pos   int
}

// NewReader wraps buf for sequential decoding in the given byte
// order.
func NewReader(buf []byte, order Order) *Reader { return &Reader{order: order, buf: buf} }

// Pos returns the current read offset, used to tag WireErrors.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return pvdata.NewWireError(r.pos, pvdata.ErrBadWire, errShortBuffer)
	}
	return nil
}

func (r *Reader) GetUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) GetBool() (bool, error) {
	v, err := r.GetUint8()
	return v != 0, err
}

func (r *Reader) GetUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.impl().Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) GetUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.impl().Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) GetUint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := r.order.impl().Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

func (r *Reader) GetFloat32() (float32, error) {
	v, err := r.GetUint32()
	return math.Float32frombits(v), err
}

func (r *Reader) GetFloat64() (float64, error) {
	v, err := r.GetUint64()
	return math.Float64frombits(v), err
}

func (r *Reader) GetBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// GetString reads a size-prefixed UTF-8 string.
func (r *Reader) GetString() (string, error) {
	n, err := GetSize(r)
	if err != nil {
		return "", err
	}
	b, err := r.GetBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var errShortBuffer = shortBufferError{}

type shortBufferError struct{}

func (shortBufferError) Error() string { return "buffer too short" }
