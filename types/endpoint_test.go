package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		address     string
		defaultPort int
		want        Endpoint
		wantErr     bool
	}{
		{name: "host and port", address: "203.0.113.5:27015", defaultPort: 1, want: Endpoint{Host: "203.0.113.5", Port: 27015}},
		{name: "default port", address: "mc.example.com", defaultPort: 25565, want: Endpoint{Host: "mc.example.com", Port: 25565}},
		{name: "lowercased", address: "MC.Example.COM:25566", defaultPort: 25565, want: Endpoint{Host: "mc.example.com", Port: 25566}},
		{name: "ipv6", address: "[2001:db8::1]:27016", defaultPort: 27015, want: Endpoint{Host: "2001:db8::1", Port: 27016}},
		{name: "trimmed", address: "  10.0.0.1:27015 ", defaultPort: 27015, want: Endpoint{Host: "10.0.0.1", Port: 27015}},
		{name: "empty", address: "", defaultPort: 27015, wantErr: true},
		{name: "bad port", address: "10.0.0.1:abc", defaultPort: 27015, wantErr: true},
		{name: "port out of range", address: "10.0.0.1:70000", defaultPort: 27015, wantErr: true},
		{name: "zero port", address: "10.0.0.1:0", defaultPort: 27015, wantErr: true},
		{name: "missing host", address: ":27015", defaultPort: 27015, wantErr: true},
		{name: "spaces in host", address: "bad host:27015", defaultPort: 27015, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.address, tt.defaultPort)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrConfiguration), "want ErrConfiguration, got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEndpoint_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "203.0.113.5:27015", Endpoint{Host: "203.0.113.5", Port: 27015}.String())
	assert.Equal(t, "[2001:db8::1]:27015", Endpoint{Host: "2001:db8::1", Port: 27015}.String())
}

func TestEndpoint_SampleID(t *testing.T) {
	t.Parallel()

	e := Endpoint{Host: "203.0.113.5", Port: 27015}
	id := e.SampleID(ProtocolSource)

	assert.Len(t, id, 16)
	assert.Equal(t, id, e.SampleID(ProtocolSource), "ids must be stable")
	assert.NotEqual(t, id, e.SampleID(ProtocolMinecraft), "kinds must not share history")
	assert.NotEqual(t, id, Endpoint{Host: "203.0.113.5", Port: 27016}.SampleID(ProtocolSource))
}
