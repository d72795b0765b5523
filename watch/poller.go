package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poundbot/gamewatch/messages"
	"github.com/poundbot/gamewatch/report"
	"github.com/poundbot/gamewatch/scheduler"
	"github.com/poundbot/gamewatch/types"

	"github.com/sirupsen/logrus"
)

// Poll defaults.
const (
	DefaultPollInterval = 60 * time.Second
	DefaultPollDelay    = 10 * time.Second
)

// A PollConfig sets the timer of one protocol kind.
type PollConfig struct {
	Interval time.Duration
	Delay    time.Duration
}

type jobScheduler interface {
	Schedule(name string, interval, initialDelay time.Duration, fn scheduler.Job) error
}

// SchedulePolls registers one recurring PollKind job per protocol kind.
// Kinds missing from polls use the defaults.
func (r *Registry) SchedulePolls(s jobScheduler, polls map[types.ProtocolKind]PollConfig) error {
	for _, kind := range types.ProtocolKinds {
		pc, ok := polls[kind]
		if !ok || pc.Interval <= 0 {
			pc.Interval = DefaultPollInterval
		}
		if !ok {
			pc.Delay = DefaultPollDelay
		}

		kind := kind
		if err := s.Schedule("poll-"+kind.String(), pc.Interval, pc.Delay, func(ctx context.Context) {
			r.PollKind(ctx, kind)
		}); err != nil {
			return err
		}
	}
	return nil
}

// PollKind polls every registered server of kind, one after the other. A
// failing server is logged and skipped.
func (r *Registry) PollKind(ctx context.Context, kind types.ProtocolKind) {
	klog := log.WithField("kind", kind.String())

	servers, err := r.servers.ListByKind(kind)
	if err != nil {
		klog.WithError(err).Error("could not list servers")
		return
	}
	klog.WithField("count", len(servers)).Debug("tick")

	for _, server := range servers {
		if ctx.Err() != nil {
			klog.Debug("tick cancelled")
			return
		}
		r.pollServer(ctx, server)
	}
}

func (r *Registry) pollServer(ctx context.Context, server types.MonitoredServer) {
	slog := serverLog(server)
	defer func() {
		if p := recover(); p != nil {
			slog.WithField("panic", p).Error("poll panicked")
		}
	}()

	fresh, err := r.poll(ctx, &server)
	switch {
	case errors.Is(err, types.ErrDesync):
		slog.WithError(err).Warn("status message is gone")
		r.desync(ctx, server)
		return
	case errors.Is(err, types.ErrTimeout), errors.Is(err, types.ErrUnreachable):
		slog.WithError(err).Warn("poll failed")
		return
	case err != nil:
		slog.WithError(err).Error("poll failed")
		return
	}

	if err := r.servers.Update(server); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			slog.Info("removed while polling")
		} else {
			slog.WithError(err).Error("could not store poll result")
		}
		if fresh {
			r.deleteMessage(ctx, server)
		}
		return
	}
	slog.WithField("mID", server.Message.MessageID).Trace("polled")
}

// poll queries the server, records the sample and brings its status message
// up to date. fresh reports a newly published message.
func (r *Registry) poll(ctx context.Context, server *types.MonitoredServer) (fresh bool, err error) {
	snap, err := r.probes.Probe(ctx, server.Kind, server.Endpoint)
	if err != nil {
		return false, fmt.Errorf("probe: %w", err)
	}

	now := r.clock.Now().UTC()
	if _, err := r.samples.Record(server.SampleID(), snap.Online, snap.Max); err != nil {
		serverLog(*server).WithError(err).Error("could not record sample")
	}

	if report.TrackVersion(server, snap.Version, now) {
		serverLog(*server).WithFields(logrus.Fields{"version": server.Version}).Info("version changed")
	}

	rep := r.reports.Build(ctx, *server, snap)
	fresh, err = report.Reconcile(ctx, r.messenger, server, rep)
	if err != nil {
		return false, err
	}
	server.UpdatedAt = now
	return fresh, nil
}

// desync drops a server whose status message was deleted and tells the
// channel once.
func (r *Registry) desync(ctx context.Context, server types.MonitoredServer) {
	slog := serverLog(server)

	if err := r.servers.Remove(server.Key()); err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			slog.WithError(err).Error("could not remove desynced server")
		}
		return
	}

	notice := messages.DesyncNotice(server.Kind.DisplayName(), server.Endpoint.String())
	if err := r.messenger.Notify(ctx, server.GuildID, server.ChannelID, notice); err != nil {
		slog.WithError(err).Warn("could not send desync notice")
	}
	slog.Info("desynced server removed")
}
