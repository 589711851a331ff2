// Package byteutil provides bounds-checked little-endian slice readers and
// hex formatting shared by the lwp3 and spike decoders.
package byteutil

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// ErrShort is returned by the read helpers when the slice is too small for
// the requested field.
var ErrShort = fmt.Errorf("byteutil: slice too short")

// U16LE reads a little-endian uint16 at offset off, bounds-checked.
func U16LE(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, ErrShort
	}
	return binary.LittleEndian.Uint16(b[off : off+2]), nil
}

// U32LE reads a little-endian uint32 at offset off, bounds-checked.
func U32LE(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, ErrShort
	}
	return binary.LittleEndian.Uint32(b[off : off+4]), nil
}

// I16LE reads a little-endian int16 at offset off, bounds-checked.
func I16LE(b []byte, off int) (int16, error) {
	u, err := U16LE(b, off)
	if err != nil {
		return 0, err
	}
	return int16(u), nil
}

// I32LE reads a little-endian int32 at offset off, bounds-checked.
func I32LE(b []byte, off int) (int32, error) {
	u, err := U32LE(b, off)
	if err != nil {
		return 0, err
	}
	return int32(u), nil
}

// Byte reads a single byte at offset off, bounds-checked.
func Byte(b []byte, off int) (byte, error) {
	if off < 0 || off >= len(b) {
		return 0, ErrShort
	}
	return b[off], nil
}

// PutU16LE appends the little-endian encoding of v to dst.
func PutU16LE(dst []byte, v uint16) []byte {
	return append(dst, byte(v), byte(v>>8))
}

// PutU32LE appends the little-endian encoding of v to dst.
func PutU32LE(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// HexDump renders b as space-separated uppercase hex pairs, e.g. "06 00 01".
func HexDump(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = strings.ToUpper(hex.EncodeToString([]byte{v}))
	}
	return strings.Join(parts, " ")
}
