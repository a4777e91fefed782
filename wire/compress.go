package wire

import (
	"github.com/klauspost/compress/s2"

	"github.com/ISISComputingGroup/pvxs-go/pvdata"
)

// config controls whether large array payloads are s2-compressed on
// the wire. It defaults to pvdata.DefaultCodecConfig(), which leaves
// compression off.
var config = pvdata.DefaultCodecConfig()

// SetConfig replaces the package-wide codec configuration.
func SetConfig(cfg pvdata.CodecConfig) { config = cfg }

// putCompressibleBytes writes raw preceded by a one-byte flag: 0 for
// raw bytes, 1 for s2-compressed. Compression only kicks in at or above
// config.CompressMinLen, and only when config.CompressArrays is set —
// UInt8A is the one array kind whose natural wire form is already a
// flat byte run, so it is the one this is wired into (see
// encodeScalarArray/decodeScalarArray).
func putCompressibleBytes(w *Writer, raw []byte) {
	if !config.CompressArrays || len(raw) < config.CompressMinLen {
		w.PutUint8(0)
		PutSize(w, uint64(len(raw)))
		w.PutBytes(raw)
		return
	}
	compressed := s2.Encode(nil, raw)
	w.PutUint8(1)
	PutSize(w, uint64(len(compressed)))
	w.PutBytes(compressed)
}

func getCompressibleBytes(r *Reader) ([]byte, error) {
	flag, err := r.GetUint8()
	if err != nil {
		return nil, err
	}
	n, err := GetSize(r)
	if err != nil {
		return nil, err
	}
	raw, err := r.GetBytes(int(n))
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		return raw, nil
	}
	out, err := s2.Decode(nil, raw)
	if err != nil {
		return nil, pvdata.NewWireError(r.Pos(), pvdata.ErrBadWire, err)
	}
	return out, nil
}
