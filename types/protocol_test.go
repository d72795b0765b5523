package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProtocolKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ProtocolKind
		wantErr bool
	}{
		{in: "source", want: ProtocolSource},
		{in: "A2S", want: ProtocolSource},
		{in: " minecraft ", want: ProtocolMinecraft},
		{in: "mc", want: ProtocolMinecraft},
		{in: "quake", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProtocolKind(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrConfiguration))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProtocolKind_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		Kind ProtocolKind `json:"kind"`
	}{ProtocolMinecraft})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"minecraft"}`, string(b))

	var got struct {
		Kind ProtocolKind `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"source"}`), &got))
	assert.Equal(t, ProtocolSource, got.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"doom"}`), &got))
}

func TestProtocolKind_DefaultPort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 27015, ProtocolSource.DefaultPort())
	assert.Equal(t, 25565, ProtocolMinecraft.DefaultPort())
	assert.Equal(t, 0, ProtocolKind(9).DefaultPort())
	assert.Equal(t, "ProtocolKind(9)", ProtocolKind(9).String())
}
