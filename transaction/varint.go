package transaction

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/humblenginr/blockminer/errors"
)

// WriteVarBytes serializes a variable length byte array to w as a varInt
// containing the number of bytes, followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	slen := uint64(len(bytes))
	err := WriteVarInt(w, slen)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return err
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}

// WriteVarInt serializes val to w using a variable number of bytes depending
// on its value.
func WriteVarInt(w io.Writer, val uint64) error {
	var buf [9]byte

	switch {
	case val < 0xfd:
		buf[0] = uint8(val)
		_, err := w.Write(buf[:1])
		return err
	case val <= math.MaxUint16:
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(val))
		_, err := w.Write(buf[:3])
		return err
	case val <= math.MaxUint32:
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(val))
		_, err := w.Write(buf[:5])
		return err
	default:
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], val)
		_, err := w.Write(buf[:9])
		return err
	}
}

// ReadVarInt reads a variable length integer and rejects non-canonical encodings.
func ReadVarInt(r io.Reader) (uint64, error) {
	var buf [8]byte

	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}

	var (
		rv     uint64
		minVal uint64
	)

	discriminant := buf[0]
	switch discriminant {
	case 0xff:
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return 0, err
		}
		rv = binary.LittleEndian.Uint64(buf[:8])
		minVal = 0x100000000
	case 0xfe:
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return 0, err
		}
		rv = uint64(binary.LittleEndian.Uint32(buf[:4]))
		minVal = 0x10000
	case 0xfd:
		if _, err := io.ReadFull(r, buf[:2]); err != nil {
			return 0, err
		}
		rv = uint64(binary.LittleEndian.Uint16(buf[:2]))
		minVal = 0xfd
	default:
		return uint64(discriminant), nil
	}

	if rv < minVal {
		return 0, errors.NewTxInvalidError("non-canonical varint %x - discriminant %x must encode a value greater than %x", rv, discriminant, minVal)
	}

	return rv, nil
}

// ReadVarBytes reads a varint length followed by that many bytes, refusing
// lengths above maxAllowed.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	if count > maxAllowed {
		return nil, errors.NewTxInvalidError("%s is larger than the max allowed size [count %d, max %d]", fieldName, count, maxAllowed)
	}

	b := make([]byte, count)
	if _, err = io.ReadFull(r, b); err != nil {
		return nil, err
	}

	return b, nil
}
