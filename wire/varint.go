package wire

import (
	"fmt"
	"io"

	"github.com/poundbot/gamewatch/types"
)

// MaxVarIntLen is the longest legal VarInt encoding of a 32-bit value.
const MaxVarIntLen = 5

// ErrVarIntTooLong is returned for encodings longer than MaxVarIntLen.
var ErrVarIntTooLong = fmt.Errorf("%w: varint longer than %d bytes", types.ErrDecode, MaxVarIntLen)

// AppendVarInt appends the VarInt encoding of v to b. Negative values use
// their two's complement and always take five bytes.
func AppendVarInt(b []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		b = append(b, byte(u)|0x80)
		u >>= 7
	}
	return append(b, byte(u))
}

// VarIntSize is the number of bytes AppendVarInt writes for v.
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// ReadVarInt decodes a VarInt from a stream. io.EOF is only returned when no
// byte could be read; a stream ending mid-value yields io.ErrUnexpectedEOF.
func ReadVarInt(r io.ByteReader) (int32, error) {
	var v uint32
	for i := 0; i < MaxVarIntLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i > 0 {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		v |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return int32(v), nil
		}
	}
	return 0, ErrVarIntTooLong
}
