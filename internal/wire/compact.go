// Package wire implements the CompactSize variable-length integer
// encoding used to length-prefix variable-sized fields (script bytes,
// vout counts) in transaction and block serialization, adapted from the
// corpus's own internal/networking/utils/compact package.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// GetCompactSizeBytes encodes size using the corpus's own CompactSize
// convention: a length-class marker byte followed by the value at a
// width the marker implies, all big-endian.
func GetCompactSizeBytes(size uint64) ([]byte, error) {
	var buf bytes.Buffer

	switch {
	case size < 0xFD:
		if err := binary.Write(&buf, binary.BigEndian, uint8(size)); err != nil {
			return nil, err
		}
	case size <= 0xFFFF:
		if err := binary.Write(&buf, binary.BigEndian, uint8(0xFD)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, uint16(size)); err != nil {
			return nil, err
		}
	case size <= 0xFFFFFFFF:
		if err := binary.Write(&buf, binary.BigEndian, uint8(0xFE)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, uint32(size)); err != nil {
			return nil, err
		}
	default:
		if err := binary.Write(&buf, binary.BigEndian, uint8(0xFF)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, uint64(size)); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// ReadCompactSize decodes a CompactSize value from buf, consuming
// exactly as many bytes as GetCompactSizeBytes would have written.
func ReadCompactSize(buf *bytes.Reader) (uint64, error) {
	var marker byte
	if err := binary.Read(buf, binary.BigEndian, &marker); err != nil {
		return 0, err
	}

	switch {
	case marker < 0xFD:
		return uint64(marker), nil
	case marker == 0xFD:
		var v uint16
		if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
			return 0, err
		}
		return uint64(v), nil
	case marker == 0xFE:
		var v uint32
		if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
			return 0, err
		}
		return uint64(v), nil
	case marker == 0xFF:
		var v uint64
		if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
			return 0, err
		}
		return v, nil
	default:
		return 0, fmt.Errorf("wire: invalid CompactSize marker %#x", marker)
	}
}
