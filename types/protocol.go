package types

import (
	"fmt"
	"strings"
)

// A ProtocolKind is the query protocol used to monitor a server.
type ProtocolKind int

const (
	ProtocolSource ProtocolKind = iota + 1
	ProtocolMinecraft
)

// ProtocolKinds lists every supported kind in polling order.
var ProtocolKinds = []ProtocolKind{ProtocolSource, ProtocolMinecraft}

func (k ProtocolKind) String() string {
	switch k {
	case ProtocolSource:
		return "source"
	case ProtocolMinecraft:
		return "minecraft"
	}
	return fmt.Sprintf("ProtocolKind(%d)", int(k))
}

// DisplayName is the human readable protocol name used in report titles.
func (k ProtocolKind) DisplayName() string {
	switch k {
	case ProtocolSource:
		return "Source"
	case ProtocolMinecraft:
		return "Minecraft"
	}
	return "Unknown"
}

// DefaultPort is the port assumed when an address carries none.
func (k ProtocolKind) DefaultPort() int {
	switch k {
	case ProtocolSource:
		return 27015
	case ProtocolMinecraft:
		return 25565
	}
	return 0
}

// Valid reports whether k is one of the supported kinds.
func (k ProtocolKind) Valid() bool {
	return k == ProtocolSource || k == ProtocolMinecraft
}

// ParseProtocolKind accepts the String() form plus a few common aliases.
func ParseProtocolKind(s string) (ProtocolKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", "a2s", "steam":
		return ProtocolSource, nil
	case "minecraft", "mc", "mcping":
		return ProtocolMinecraft, nil
	}
	return 0, fmt.Errorf("unknown protocol %q: %w", s, ErrConfiguration)
}

// MarshalText implements encoding.TextMarshaler.
func (k ProtocolKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid protocol kind %d: %w", int(k), ErrConfiguration)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ProtocolKind) UnmarshalText(b []byte) error {
	pk, err := ParseProtocolKind(string(b))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}
