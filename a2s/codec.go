// Package a2s implements the Source engine server query protocol (A2S) over
// UDP: the INFO and PLAYER queries with their challenge handshakes.
package a2s

import (
	"bytes"
	"fmt"
	"time"

	"github.com/poundbot/gamewatch/types"
	"github.com/poundbot/gamewatch/wire"
)

const (
	headerInfo      = 'T'
	headerPlayer    = 'U'
	replyInfo       = 'I'
	replyPlayer     = 'D'
	replyChallenge  = 'A'
	infoQueryString = "Source Engine Query"

	// maxPlayersPlaceholder is reported by some servers as the only player
	// when the real list is hidden.
	maxPlayersPlaceholder = "Max Players"
)

var (
	simpleHeader = []byte{0xFF, 0xFF, 0xFF, 0xFF}
	splitHeader  = []byte{0xFE, 0xFF, 0xFF, 0xFF}

	// noChallenge asks the server to hand out a challenge token.
	noChallenge = []byte{0xFF, 0xFF, 0xFF, 0xFF}
)

// ErrSplitPacket is returned for multi-packet replies, which are not
// reassembled.
var ErrSplitPacket = fmt.Errorf("%w: split packet replies are not supported", types.ErrDecode)

// ServerType is the kind of server reported by INFO.
type ServerType int

const (
	ServerTypeInvalid ServerType = iota
	ServerTypeDedicated
	ServerTypeListen
	ServerTypeSourceTV
)

func (t ServerType) String() string {
	switch t {
	case ServerTypeDedicated:
		return "dedicated"
	case ServerTypeListen:
		return "listen"
	case ServerTypeSourceTV:
		return "sourcetv"
	}
	return "invalid"
}

func parseServerType(b byte) ServerType {
	switch b {
	case 'd', 'D':
		return ServerTypeDedicated
	case 'l', 'L':
		return ServerTypeListen
	case 'p', 'P':
		return ServerTypeSourceTV
	}
	return ServerTypeInvalid
}

// Environment is the host operating system reported by INFO.
type Environment int

const (
	EnvironmentInvalid Environment = iota
	EnvironmentLinux
	EnvironmentWindows
	EnvironmentMac
)

func (e Environment) String() string {
	switch e {
	case EnvironmentLinux:
		return "linux"
	case EnvironmentWindows:
		return "windows"
	case EnvironmentMac:
		return "mac"
	}
	return "invalid"
}

func parseEnvironment(b byte) Environment {
	switch b {
	case 'l', 'L':
		return EnvironmentLinux
	case 'w', 'W':
		return EnvironmentWindows
	case 'm', 'M', 'o', 'O':
		return EnvironmentMac
	}
	return EnvironmentInvalid
}

// Extra data flag bits.
const (
	edfGameID   = 0x01
	edfSteamID  = 0x10
	edfKeywords = 0x20
	edfSourceTV = 0x40
	edfPort     = 0x80
)

// Info is a decoded A2S_INFO reply.
type Info struct {
	Protocol    byte
	Name        string
	Map         string
	Folder      string
	Game        string
	AppID       uint16
	Players     int
	MaxPlayers  int
	Bots        int
	ServerType  ServerType
	Environment Environment
	IsPrivate   bool
	IsSecure    bool
	Version     string

	// Present only when the matching extra data flag is set.
	Port         uint16
	SteamID      uint64
	SourceTVPort uint16
	SourceTVName string
	Keywords     string
	GameID       uint64
}

// Player is one entry of an A2S_PLAYER reply.
type Player struct {
	Index    byte
	Name     string
	Score    int32
	Duration time.Duration
}

// InfoRequest builds an A2S_INFO request. A nil challenge builds the plain
// request; servers that answer with a challenge expect it appended.
func InfoRequest(challenge []byte) []byte {
	b := make([]byte, 0, 4+1+len(infoQueryString)+1+len(challenge))
	b = append(b, simpleHeader...)
	b = append(b, headerInfo)
	b = append(b, infoQueryString...)
	b = append(b, 0)
	return append(b, challenge...)
}

// PlayerRequest builds an A2S_PLAYER request. A nil challenge asks for a
// challenge token.
func PlayerRequest(challenge []byte) []byte {
	if challenge == nil {
		challenge = noChallenge
	}
	b := make([]byte, 0, 4+1+len(challenge))
	b = append(b, simpleHeader...)
	b = append(b, headerPlayer)
	return append(b, challenge...)
}

// replyHeader strips the simple header and returns the reply type byte with
// a reader positioned on the payload.
func replyHeader(b []byte) (byte, *wire.Reader, error) {
	if bytes.HasPrefix(b, splitHeader) {
		return 0, nil, ErrSplitPacket
	}
	r := wire.NewReader(b)
	h, err := r.Bytes(4)
	if err != nil {
		return 0, nil, err
	}
	if !bytes.Equal(h, simpleHeader) {
		return 0, nil, fmt.Errorf("%w: bad packet header % x", types.ErrDecode, h)
	}
	kind, err := r.Byte()
	if err != nil {
		return 0, nil, err
	}
	return kind, r, nil
}

// DecodeChallenge returns the 4 byte token carried by a challenge reply.
// ok is false when b is not a challenge reply.
func DecodeChallenge(b []byte) (token []byte, ok bool, err error) {
	kind, r, err := replyHeader(b)
	if err != nil {
		return nil, false, err
	}
	if kind != replyChallenge {
		return nil, false, nil
	}
	t, err := r.Bytes(4)
	if err != nil {
		return nil, false, err
	}
	token = make([]byte, 4)
	copy(token, t)
	return token, true, nil
}

// DecodeInfo decodes an A2S_INFO reply.
func DecodeInfo(b []byte) (Info, error) {
	kind, r, err := replyHeader(b)
	if err != nil {
		return Info{}, err
	}
	if kind != replyInfo {
		return Info{}, fmt.Errorf("%w: expected info reply, got 0x%02x", types.ErrDecode, kind)
	}

	var info Info
	d := decoder{r: r}
	info.Protocol = d.u8()
	info.Name = d.str()
	info.Map = d.str()
	info.Folder = d.str()
	info.Game = d.str()
	info.AppID = d.u16()
	info.Players = int(d.u8())
	info.MaxPlayers = int(d.u8())
	info.Bots = int(d.u8())
	info.ServerType = parseServerType(d.u8())
	info.Environment = parseEnvironment(d.u8())
	info.IsPrivate = d.flag()
	info.IsSecure = d.flag()
	info.Version = d.str()
	if d.err != nil {
		return Info{}, d.err
	}

	if r.Remaining() == 0 {
		return info, nil
	}

	edf := d.u8()
	if edf&edfPort != 0 {
		info.Port = d.u16()
	}
	if edf&edfSteamID != 0 {
		info.SteamID = d.u64()
	}
	if edf&edfSourceTV != 0 {
		info.SourceTVPort = d.u16()
		info.SourceTVName = d.str()
	}
	if edf&edfKeywords != 0 {
		info.Keywords = d.str()
	}
	if edf&edfGameID != 0 {
		info.GameID = d.u64()
	}
	if d.err != nil {
		return Info{}, d.err
	}
	return info, nil
}

// DecodePlayers decodes an A2S_PLAYER reply. A lone "Max Players" entry is a
// placeholder and yields an empty list.
func DecodePlayers(b []byte) ([]Player, error) {
	kind, r, err := replyHeader(b)
	if err != nil {
		return nil, err
	}
	if kind != replyPlayer {
		return nil, fmt.Errorf("%w: expected player reply, got 0x%02x", types.ErrDecode, kind)
	}

	d := decoder{r: r}
	count := int(d.u8())
	players := make([]Player, 0, count)
	for i := 0; i < count && d.err == nil; i++ {
		var p Player
		p.Index = d.u8()
		p.Name = d.str()
		p.Score = d.i32()
		p.Duration = time.Duration(float64(d.f32()) * float64(time.Second))
		players = append(players, p)
	}
	if d.err != nil {
		return nil, d.err
	}

	if len(players) == 1 && players[0].Name == maxPlayersPlaceholder {
		return []Player{}, nil
	}
	return players, nil
}

// decoder keeps the first error of a run of reads so the field lists above
// stay flat. Reads after a failure are skipped.
type decoder struct {
	r   *wire.Reader
	err error
}

func (d *decoder) u8() byte {
	if d.err != nil {
		return 0
	}
	var v byte
	v, d.err = d.r.Byte()
	return v
}

func (d *decoder) flag() bool {
	return d.u8() > 0
}

func (d *decoder) u16() uint16 {
	if d.err != nil {
		return 0
	}
	var v uint16
	v, d.err = d.r.Uint16()
	return v
}

func (d *decoder) i32() int32 {
	if d.err != nil {
		return 0
	}
	var v int32
	v, d.err = d.r.Int32()
	return v
}

func (d *decoder) u64() uint64 {
	if d.err != nil {
		return 0
	}
	var v uint64
	v, d.err = d.r.Uint64()
	return v
}

func (d *decoder) f32() float32 {
	if d.err != nil {
		return 0
	}
	var v float32
	v, d.err = d.r.Float32()
	return v
}

func (d *decoder) str() string {
	if d.err != nil {
		return ""
	}
	var v string
	v, d.err = d.r.CString()
	return v
}
