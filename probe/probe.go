// Package probe maps each protocol kind onto the client that queries it and
// normalises the replies into a types.Snapshot.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/poundbot/gamewatch/a2s"
	"github.com/poundbot/gamewatch/mcping"
	"github.com/poundbot/gamewatch/types"
)

// A Prober queries one server and returns what it reported.
type Prober interface {
	Probe(ctx context.Context, ep types.Endpoint) (types.Snapshot, error)
}

// ProberFunc adapts a function to a Prober.
type ProberFunc func(ctx context.Context, ep types.Endpoint) (types.Snapshot, error)

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, ep types.Endpoint) (types.Snapshot, error) {
	return f(ctx, ep)
}

// Set holds the Prober for each protocol kind.
type Set map[types.ProtocolKind]Prober

// NewSet returns a Set with the network clients for every protocol kind.
func NewSet(sourceTimeout, minecraftTimeout time.Duration) Set {
	return Set{
		types.ProtocolSource:    Source{Client: a2s.NewClient(sourceTimeout)},
		types.ProtocolMinecraft: Minecraft{Client: mcping.NewClient(minecraftTimeout)},
	}
}

// Probe dispatches to the Prober registered for kind.
func (s Set) Probe(ctx context.Context, kind types.ProtocolKind, ep types.Endpoint) (types.Snapshot, error) {
	p, ok := s[kind]
	if !ok {
		return types.Snapshot{}, fmt.Errorf("%w: no prober for protocol %s", types.ErrConfiguration, kind)
	}
	return p.Probe(ctx, ep)
}

type sourceQuerier interface {
	Query(ctx context.Context, address string) (a2s.Info, []a2s.Player, error)
}

// Source probes servers over A2S.
type Source struct {
	Client sourceQuerier
}

// Probe fetches INFO and PLAYER.
func (s Source) Probe(ctx context.Context, ep types.Endpoint) (types.Snapshot, error) {
	info, players, err := s.Client.Query(ctx, ep.String())
	if err != nil {
		return types.Snapshot{}, err
	}
	return FromInfo(info, players), nil
}

// FromInfo converts A2S replies into a Snapshot.
func FromInfo(info a2s.Info, players []a2s.Player) types.Snapshot {
	snap := types.Snapshot{
		Name:    info.Name,
		Map:     info.Map,
		Version: info.Version,
		Online:  info.Players,
		Max:     info.MaxPlayers,
		Bots:    info.Bots,
		Players: make([]types.Player, 0, len(players)),
	}
	for _, p := range players {
		snap.Players = append(snap.Players, types.Player{
			Name:     p.Name,
			Score:    p.Score,
			Duration: p.Duration,
		})
	}
	return snap
}

type minecraftPinger interface {
	Status(ctx context.Context, host string, port uint16) (mcping.Status, error)
}

// Minecraft probes servers with the Server List Ping.
type Minecraft struct {
	Client minecraftPinger
}

// Probe runs one status exchange.
func (m Minecraft) Probe(ctx context.Context, ep types.Endpoint) (types.Snapshot, error) {
	status, err := m.Client.Status(ctx, ep.Host, uint16(ep.Port))
	if err != nil {
		return types.Snapshot{}, err
	}
	return FromStatus(status), nil
}

// FromStatus converts a status response into a Snapshot.
func FromStatus(status mcping.Status) types.Snapshot {
	snap := types.Snapshot{
		Description: status.Description.Plain(),
		Version:     status.Version.Name,
		Online:      status.Players.Online,
		Max:         status.Players.Max,
		Mods:        status.ModCount(),
		Players:     make([]types.Player, 0, len(status.Players.Sample)),
	}
	for _, p := range status.Players.Sample {
		snap.Players = append(snap.Players, types.Player{Name: p.Name, ID: p.ID})
	}
	return snap
}
