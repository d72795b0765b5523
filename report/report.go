// Package report turns poll results into status reports and keeps the one
// published message per server in step with them.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/poundbot/gamewatch/history"
	"github.com/poundbot/gamewatch/types"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
)

type sampleSource interface {
	Samples(id string, window time.Duration) ([]types.HistoricSample, error)
}

type chartSource interface {
	URL(ctx context.Context, id string, samples []types.HistoricSample, max int) string
}

// A Builder assembles status reports.
type Builder struct {
	samples    sampleSource
	charts     chartSource
	textWindow time.Duration
	clock      clock.Clock
}

// NewBuilder returns a Builder. charts may be nil when no image upload is
// configured.
func NewBuilder(samples sampleSource, charts chartSource, textWindow time.Duration, clk clock.Clock) *Builder {
	if textWindow <= 0 {
		textWindow = history.DefaultTextWindow
	}
	return &Builder{samples: samples, charts: charts, textWindow: textWindow, clock: clk}
}

// Build creates the report for server from snap. server should already
// carry the version tracked from snap.
func (b *Builder) Build(ctx context.Context, server types.MonitoredServer, snap types.Snapshot) types.StatusReport {
	now := b.clock.Now().UTC()
	id := server.SampleID()
	blog := log.WithFields(logrus.Fields{
		"kind":     server.Kind,
		"endpoint": server.Endpoint.String(),
		"gID":      server.GuildID,
	})

	r := types.StatusReport{
		Kind:             server.Kind,
		Title:            Title(server.Kind, server.Endpoint),
		Description:      snap.Description,
		Players:          PlayerSummary(snap.Online, snap.Max),
		PlayerNames:      snap.PlayerNames(),
		Map:              snap.Map,
		Version:          snap.Version,
		VersionChangedAt: server.VersionChangedAt,
		Online:           true,
		Timestamp:        now,
	}
	if r.Description == "" {
		r.Description = snap.Name
	}

	text, err := b.samples.Samples(id, b.textWindow)
	if err != nil {
		blog.WithError(err).Error("could not read history")
	} else {
		r.History = history.RenderText(text, now, snap.Max, b.textWindow)
	}

	if b.charts != nil {
		full, err := b.samples.Samples(id, 0)
		if err != nil {
			blog.WithError(err).Error("could not read chart history")
		} else {
			r.ChartURL = b.charts.URL(ctx, id, full, snap.Max)
		}
	}

	return r
}

// Title names the server in its report.
func Title(kind types.ProtocolKind, ep types.Endpoint) string {
	return fmt.Sprintf("%s server %s", kind.DisplayName(), ep)
}

// PlayerSummary formats online/max, showing players beyond max as an
// overflow: 12 online of 10 is "10(+2)/10".
func PlayerSummary(online, max int) string {
	if online < 0 {
		online = 0
	}
	if max < 0 {
		max = 0
	}
	if online > max {
		return fmt.Sprintf("%d(+%d)/%d", max, online-max, max)
	}
	return fmt.Sprintf("%d/%d", online, max)
}

// TrackVersion records version on server. The first observation is only
// stored; a later change also stamps VersionChangedAt. It reports whether
// the version changed.
func TrackVersion(server *types.MonitoredServer, version string, now time.Time) bool {
	switch {
	case version == "" || version == server.Version:
		return false
	case server.Version == "":
		server.Version = version
		return false
	}
	server.Version = version
	server.VersionChangedAt = now
	return true
}
