package wire

// PutSize writes v using the compact size encoding: 0-253 as a single
// byte, 254 introduces a 32-bit length, 255 introduces a 64-bit
// length.
func PutSize(w *Writer, v uint64) {
	switch {
	case v < 254:
		w.PutUint8(uint8(v))
	case v <= 0xffffffff:
		w.PutUint8(254)
		w.PutUint32(uint32(v))
	default:
		w.PutUint8(255)
		w.PutUint64(v)
	}
}

// GetSize reads a compact-size-encoded value.
func GetSize(r *Reader) (uint64, error) {
	b, err := r.GetUint8()
	if err != nil {
		return 0, err
	}
	switch b {
	case 254:
		v, err := r.GetUint32()
		return uint64(v), err
	case 255:
		return r.GetUint64()
	default:
		return uint64(b), nil
	}
}
