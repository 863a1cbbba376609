package recoder

import (
	"encoding/binary"
	"strings"

	"github.com/recoderlab/recoder/errors"
)

// scalarEncoding is the canonical fixed-width intermediate form used by the
// scalar decoder: 32-bit little-endian code units, one per scalar value.
const scalarEncoding = "UTF-32LE"

// DecodeBytes converts b from the named source encoding into text. The
// bytes are transcoded into 32-bit little-endian code units first and each
// unit is then validated as a Unicode scalar value, which keeps byte-order
// marks and variable-width boundaries out of the assembly step. Code units
// in the surrogate range or beyond U+10FFFF fail with an illegal_sequence
// error; a unit stream whose length is not a multiple of four fails with an
// incomplete_sequence error.
func DecodeBytes(b []byte, from string) (string, error) {
	s, err := NewSession(from, scalarEncoding)
	if err != nil {
		return "", err
	}
	defer s.Close()

	units, _, err := s.Convert(nil, NewCursor(b), Unbounded)
	if err != nil {
		return "", err
	}
	units, err = s.Flush(units)
	if err != nil {
		return "", err
	}
	return assembleScalars(units)
}

// DecodeString is DecodeBytes for string input.
func DecodeString(text, from string) (string, error) {
	return DecodeBytes([]byte(text), from)
}

// assembleScalars reads the unit stream four bytes at a time, assembles
// each little-endian 32-bit code unit without reinterpreting the buffer's
// memory layout, and validates every unit before appending it.
func assembleScalars(units []byte) (string, error) {
	if len(units)%4 != 0 {
		return "", errors.TruncatedUnits(len(units))
	}
	var b strings.Builder
	b.Grow(len(units) / 4)
	for i := 0; i < len(units); i += 4 {
		u := binary.LittleEndian.Uint32(units[i : i+4])
		if !validScalar(u) {
			return "", errors.IllegalScalar(u, i/4)
		}
		b.WriteRune(rune(u))
	}
	return b.String(), nil
}

// validScalar reports whether u is a Unicode scalar value: a code point
// outside the surrogate range 0xD800-0xDFFF and no greater than U+10FFFF.
func validScalar(u uint32) bool {
	return u < 0xD800 || (u > 0xDFFF && u <= 0x10FFFF)
}
