// Package watch keeps the registry of monitored servers and polls them.
package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/poundbot/gamewatch/report"
	"github.com/poundbot/gamewatch/storage"
	"github.com/poundbot/gamewatch/types"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

type prober interface {
	Probe(ctx context.Context, kind types.ProtocolKind, ep types.Endpoint) (types.Snapshot, error)
}

type recorder interface {
	Record(id string, online, max int) (types.HistoricSample, error)
}

type reportBuilder interface {
	Build(ctx context.Context, server types.MonitoredServer, snap types.Snapshot) types.StatusReport
}

// A Registry adds, removes and polls monitored servers.
type Registry struct {
	servers   storage.ServersStore
	probes    prober
	samples   recorder
	reports   reportBuilder
	messenger report.Messenger
	clock     clock.Clock
}

// NewRegistry returns a Registry.
func NewRegistry(servers storage.ServersStore, probes prober, samples recorder, reports reportBuilder,
	messenger report.Messenger, clk clock.Clock) *Registry {
	return &Registry{
		servers:   servers,
		probes:    probes,
		samples:   samples,
		reports:   reports,
		messenger: messenger,
		clock:     clk,
	}
}

func serverLog(s types.MonitoredServer) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"kind":     s.Kind.String(),
		"endpoint": s.Endpoint.String(),
		"gID":      s.GuildID,
		"cID":      s.ChannelID,
	})
}

// Add validates address, queries the server once and publishes its first
// status message. The registration is stored only when all of that
// succeeded.
func (r *Registry) Add(ctx context.Context, kind types.ProtocolKind, address, guildID, channelID string) (types.MonitoredServer, error) {
	if !kind.Valid() {
		return types.MonitoredServer{}, fmt.Errorf("protocol %s: %w", kind, types.ErrConfiguration)
	}
	if guildID == "" || channelID == "" {
		return types.MonitoredServer{}, fmt.Errorf("guild and channel are required: %w", types.ErrConfiguration)
	}
	ep, err := types.ParseEndpoint(address, kind.DefaultPort())
	if err != nil {
		return types.MonitoredServer{}, err
	}

	now := r.clock.Now().UTC()
	server := types.MonitoredServer{
		Kind:      kind,
		Endpoint:  ep,
		GuildID:   guildID,
		ChannelID: channelID,
		Timestamp: types.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	slog := serverLog(server)

	_, err = r.servers.Get(server.Key())
	switch {
	case err == nil:
		return types.MonitoredServer{}, fmt.Errorf("%s %s: %w", kind, ep, types.ErrAlreadyRegistered)
	case !errors.Is(err, types.ErrNotFound):
		return types.MonitoredServer{}, err
	}

	if _, err := r.poll(ctx, &server); err != nil {
		slog.WithError(err).Info("add: first poll failed")
		return types.MonitoredServer{}, err
	}

	if err := r.servers.Insert(server); err != nil {
		slog.WithError(err).Warn("add: could not store registration")
		r.deleteMessage(ctx, server)
		return types.MonitoredServer{}, err
	}

	slog.WithField("mID", server.Message.MessageID).Info("added")
	return server, nil
}

// Remove stops monitoring every server of the guild at address and deletes
// their status messages. An address without a port matches each protocol's
// default port.
func (r *Registry) Remove(ctx context.Context, guildID, address string) ([]types.MonitoredServer, error) {
	matches, err := r.find(guildID, address)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s in guild %s: %w", address, guildID, types.ErrNotFound)
	}

	removed := make([]types.MonitoredServer, 0, len(matches))
	for _, server := range matches {
		r.deleteMessage(ctx, server)

		if err := r.servers.Remove(server.Key()); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				continue
			}
			return removed, err
		}
		serverLog(server).Info("removed")
		removed = append(removed, server)
	}
	if len(removed) == 0 {
		return nil, fmt.Errorf("%s in guild %s: %w", address, guildID, types.ErrNotFound)
	}
	return removed, nil
}

func (r *Registry) find(guildID, address string) ([]types.MonitoredServer, error) {
	var (
		found []types.MonitoredServer
		seen  = map[types.Endpoint]bool{}
	)

	explicitPort := true
	var first types.Endpoint
	for i, kind := range types.ProtocolKinds {
		ep, err := types.ParseEndpoint(address, kind.DefaultPort())
		if err != nil {
			return nil, err
		}
		if i == 0 {
			first = ep
		} else if ep != first {
			explicitPort = false
		}
	}

	for _, kind := range types.ProtocolKinds {
		ep, _ := types.ParseEndpoint(address, kind.DefaultPort())
		if seen[ep] {
			continue
		}
		seen[ep] = true

		servers, err := r.servers.FindByGuildEndpoint(guildID, ep)
		if err != nil {
			return nil, err
		}
		for _, s := range servers {
			if explicitPort || s.Kind.DefaultPort() == ep.Port {
				found = append(found, s)
			}
		}
	}
	return found, nil
}

// List returns the servers monitored in a guild.
func (r *Registry) List(guildID string) ([]types.MonitoredServer, error) {
	return r.servers.ListByGuild(guildID)
}

// RemoveGuild drops every registration of a guild the bot has left. Its
// messages are out of reach and stay untouched.
func (r *Registry) RemoveGuild(guildID string) (int, error) {
	n, err := r.servers.RemoveGuild(guildID)
	if err != nil {
		return 0, err
	}
	log.WithFields(logrus.Fields{"gID": guildID, "count": n}).Info("guild registrations removed")
	return n, nil
}

func (r *Registry) deleteMessage(ctx context.Context, server types.MonitoredServer) {
	if server.Message.IsZero() {
		return
	}
	if err := r.messenger.Delete(ctx, server.Message); err != nil && !errors.Is(err, types.ErrNotFound) {
		serverLog(server).WithField("mID", server.Message.MessageID).WithError(err).Warn("could not delete status message")
	}
}
