// Package mcping implements the Minecraft Server List Ping over TCP.
package mcping

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/poundbot/gamewatch/types"
	"github.com/poundbot/gamewatch/wire"
)

const (
	// ProtocolVersion is sent in the handshake. Servers answer status
	// requests for any version.
	ProtocolVersion = 47

	packetHandshake = 0x00
	packetStatus    = 0x00
	nextStateStatus = 1
)

// Status is the JSON document of a status response.
type Status struct {
	Description Description `json:"description"`
	Players     Players     `json:"players"`
	Version     Version     `json:"version"`
	Favicon     string      `json:"favicon,omitempty"`
	ModInfo     *ModInfo    `json:"modinfo,omitempty"`
	ForgeData   *ForgeData  `json:"forgeData,omitempty"`
}

// Players is the player section of a status response.
type Players struct {
	Online int            `json:"online"`
	Max    int            `json:"max"`
	Sample []SamplePlayer `json:"sample,omitempty"`
}

// SamplePlayer is one entry of the player sample.
type SamplePlayer struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Version names the server software and its protocol number.
type Version struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

// ModInfo is sent by legacy Forge servers.
type ModInfo struct {
	Type    string `json:"type"`
	ModList []Mod  `json:"modList"`
}

// ForgeData is sent by Forge 1.13 and later.
type ForgeData struct {
	Mods []Mod `json:"mods"`
}

// Mod is an installed mod. Field names differ between Forge versions.
type Mod struct {
	ModID     string `json:"modid,omitempty"`
	ModMarker string `json:"modmarker,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ModCount is the number of mods the server advertises.
func (s Status) ModCount() int {
	switch {
	case s.ForgeData != nil:
		return len(s.ForgeData.Mods)
	case s.ModInfo != nil:
		return len(s.ModInfo.ModList)
	}
	return 0
}

// PlayerNames returns the names in the player sample.
func (s Status) PlayerNames() []string {
	names := make([]string, 0, len(s.Players.Sample))
	for _, p := range s.Players.Sample {
		names = append(names, p.Name)
	}
	return names
}

// Description is the server MOTD. It arrives either as a plain string or as
// a chat component whose text and extra parts are flattened into Text.
type Description struct {
	Text string
}

type chatComponent struct {
	Text  string            `json:"text"`
	Extra []json.RawMessage `json:"extra"`
}

// UnmarshalJSON accepts a string or a chat component.
func (d *Description) UnmarshalJSON(b []byte) error {
	var sb strings.Builder
	if err := flattenChat(b, &sb, 0); err != nil {
		return err
	}
	d.Text = sb.String()
	return nil
}

// MarshalJSON writes the flattened text as a plain string.
func (d Description) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Text)
}

const maxChatDepth = 32

func flattenChat(b []byte, sb *strings.Builder, depth int) error {
	if depth > maxChatDepth {
		return fmt.Errorf("%w: chat component nested too deep", types.ErrDecode)
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		sb.WriteString(s)
		return nil
	}

	var c chatComponent
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	sb.WriteString(c.Text)
	for _, e := range c.Extra {
		if err := flattenChat(e, sb, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Plain returns the text with § formatting codes removed.
func (d Description) Plain() string {
	if !strings.ContainsRune(d.Text, '§') {
		return d.Text
	}
	var sb strings.Builder
	skip := false
	for _, r := range d.Text {
		switch {
		case skip:
			skip = false
		case r == '§':
			skip = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// frame prefixes a packet id and body with their VarInt length.
func frame(id int32, body []byte) []byte {
	n := wire.VarIntSize(id) + len(body)
	b := make([]byte, 0, wire.VarIntSize(int32(n))+n)
	b = wire.AppendVarInt(b, int32(n))
	b = wire.AppendVarInt(b, id)
	return append(b, body...)
}

// EncodeHandshake builds the handshake packet announcing a status request
// for host:port.
func EncodeHandshake(host string, port uint16) []byte {
	body := make([]byte, 0, 2*wire.MaxVarIntLen+len(host)+3)
	body = wire.AppendVarInt(body, ProtocolVersion)
	body = wire.AppendVarInt(body, int32(len(host)))
	body = append(body, host...)
	body = binary.BigEndian.AppendUint16(body, port)
	body = wire.AppendVarInt(body, nextStateStatus)
	return frame(packetHandshake, body)
}

// EncodeStatusRequest builds the empty status request packet.
func EncodeStatusRequest() []byte {
	return frame(packetStatus, nil)
}

// DecodeStatus decodes a complete status response packet, length prefix
// included.
func DecodeStatus(b []byte) (Status, error) {
	r := wire.NewReader(b)

	length, err := r.VarInt()
	if err != nil {
		return Status{}, err
	}
	if length < 0 || int(length) > r.Remaining() {
		return Status{}, fmt.Errorf("%w: packet length %d, have %d bytes", types.ErrDecode, length, r.Remaining())
	}

	id, err := r.VarInt()
	if err != nil {
		return Status{}, err
	}
	if id != packetStatus {
		return Status{}, fmt.Errorf("%w: unexpected packet id 0x%02x", types.ErrDecode, id)
	}

	jsonLen, err := r.VarInt()
	if err != nil {
		return Status{}, err
	}
	if jsonLen < 0 || int(jsonLen) > r.Remaining() {
		return Status{}, fmt.Errorf("%w: json length %d, have %d bytes", types.ErrDecode, jsonLen, r.Remaining())
	}

	doc, err := r.Bytes(int(jsonLen))
	if err != nil {
		return Status{}, err
	}

	var s Status
	if err := json.Unmarshal(doc, &s); err != nil {
		return Status{}, fmt.Errorf("%w: %v", types.ErrDecode, err)
	}
	return s, nil
}
