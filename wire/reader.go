// Package wire holds the byte-level primitives shared by the game query
// codecs: a bounds-checked little-endian reader and the VarInt encoding.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/poundbot/gamewatch/types"
)

var (
	// ErrShortBuffer is returned when a read needs more bytes than remain.
	ErrShortBuffer = fmt.Errorf("%w: unexpected end of buffer", types.ErrDecode)
	// ErrUnterminated is returned when a string has no 0x00 terminator.
	ErrUnterminated = fmt.Errorf("%w: unterminated string", types.ErrDecode)
)

// A Reader consumes a byte slice from the front. Every read is bounds
// checked and returns ErrShortBuffer instead of a partial value.
//
// A failed read poisons the Reader. Reading again after an error is a bug in
// the caller and panics.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader returns a Reader over b. b is not copied.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Err returns the error of the first failed read, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.err != nil {
		panic(fmt.Sprintf("wire: read after failed read: %v", r.err))
	}
	if n < 0 || r.Remaining() < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, r.off, r.Remaining())
		return nil, r.err
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Byte reads a single byte.
func (r *Reader) Byte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint16BE reads a big-endian uint16.
func (r *Reader) Uint16BE() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Float32 reads a little-endian IEEE 754 float32.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// Bytes reads exactly n bytes. The result aliases the underlying buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// CString reads bytes up to and including a 0x00 terminator and returns them
// without the terminator.
func (r *Reader) CString() (string, error) {
	if r.err != nil {
		panic(fmt.Sprintf("wire: read after failed read: %v", r.err))
	}
	i := bytes.IndexByte(r.buf[r.off:], 0)
	if i < 0 {
		r.err = fmt.Errorf("%w at offset %d", ErrUnterminated, r.off)
		return "", r.err
	}
	s := string(r.buf[r.off : r.off+i])
	r.off += i + 1
	return s, nil
}

// VarInt reads a Minecraft style VarInt.
func (r *Reader) VarInt() (int32, error) {
	var v uint32
	for i := 0; ; i++ {
		if i == MaxVarIntLen {
			r.err = fmt.Errorf("%w at offset %d", ErrVarIntTooLong, r.off)
			return 0, r.err
		}
		b, err := r.Byte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return int32(v), nil
		}
	}
}
