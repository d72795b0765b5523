package wire

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/poundbot/gamewatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarInt_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value int32
		want  []byte
	}{
		{value: 0, want: []byte{0x00}},
		{value: 1, want: []byte{0x01}},
		{value: 127, want: []byte{0x7f}},
		{value: 128, want: []byte{0x80, 0x01}},
		{value: 300, want: []byte{0xac, 0x02}},
		{value: 2097151, want: []byte{0xff, 0xff, 0x7f}},
		{value: math.MaxInt32, want: []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{value: -1, want: []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.value), func(t *testing.T) {
			got := AppendVarInt(nil, tt.value)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), VarIntSize(tt.value))

			v, err := NewReader(got).VarInt()
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)

			v, err = ReadVarInt(bytes.NewReader(got))
			require.NoError(t, err)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestVarInt_TooLong(t *testing.T) {
	t.Parallel()

	six := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}

	_, err := NewReader(six).VarInt()
	assert.True(t, errors.Is(err, ErrVarIntTooLong))
	assert.True(t, errors.Is(err, types.ErrDecode))

	_, err = ReadVarInt(bufio.NewReader(bytes.NewReader(six)))
	assert.True(t, errors.Is(err, ErrVarIntTooLong))
}

func TestVarInt_Truncated(t *testing.T) {
	t.Parallel()

	_, err := NewReader([]byte{0x80, 0x80}).VarInt()
	assert.True(t, errors.Is(err, ErrShortBuffer))

	_, err = ReadVarInt(bytes.NewReader([]byte{0x80}))
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	_, err = ReadVarInt(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)
}
