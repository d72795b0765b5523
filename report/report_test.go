package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poundbot/gamewatch/types"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestPlayerSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		online, max int
		want        string
	}{
		{online: 3, max: 10, want: "3/10"},
		{online: 10, max: 10, want: "10/10"},
		{online: 12, max: 10, want: "10(+2)/10"},
		{online: 1, max: 0, want: "0(+1)/0"},
		{online: -1, max: 5, want: "0/5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayerSummary(tt.online, tt.max))
		})
	}
}

func TestTrackVersion(t *testing.T) {
	t.Parallel()

	changedAt := t0.Add(-time.Hour)
	tests := []struct {
		name        string
		server      types.MonitoredServer
		version     string
		want        types.MonitoredServer
		wantChanged bool
	}{
		{
			name:    "first observation only stores",
			version: "1.0",
			want:    types.MonitoredServer{Version: "1.0"},
		},
		{
			name:    "unchanged",
			server:  types.MonitoredServer{Version: "1.0", VersionChangedAt: changedAt},
			version: "1.0",
			want:    types.MonitoredServer{Version: "1.0", VersionChangedAt: changedAt},
		},
		{
			name:        "changed",
			server:      types.MonitoredServer{Version: "1.0"},
			version:     "1.1",
			want:        types.MonitoredServer{Version: "1.1", VersionChangedAt: t0},
			wantChanged: true,
		},
		{
			name:    "empty version ignored",
			server:  types.MonitoredServer{Version: "1.0"},
			version: "",
			want:    types.MonitoredServer{Version: "1.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := tt.server
			assert.Equal(t, tt.wantChanged, TrackVersion(&server, tt.version, t0))
			assert.Equal(t, tt.want, server)
		})
	}
}

type fakeSamples struct {
	samples []types.HistoricSample
	err     error
	windows []time.Duration
}

func (f *fakeSamples) Samples(id string, window time.Duration) ([]types.HistoricSample, error) {
	f.windows = append(f.windows, window)
	return f.samples, f.err
}

type fakeCharts struct {
	id string
}

func (f *fakeCharts) URL(ctx context.Context, id string, samples []types.HistoricSample, max int) string {
	f.id = id
	return "https://cdn.example.com/chart.png"
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	clk.Set(t0)

	server := types.MonitoredServer{
		Kind:             types.ProtocolSource,
		Endpoint:         types.Endpoint{Host: "203.0.113.5", Port: 27015},
		GuildID:          "g",
		ChannelID:        "c",
		VersionChangedAt: t0.Add(-time.Hour),
	}
	snap := types.Snapshot{
		Name:    "My Server",
		Map:     "de_dust2",
		Version: "1.38",
		Online:  12,
		Max:     10,
		Players: []types.Player{{Name: "alice"}, {Name: ""}, {Name: "bob"}},
	}

	samples := &fakeSamples{samples: []types.HistoricSample{{At: t0, Players: 10}}}
	charts := &fakeCharts{}

	got := NewBuilder(samples, charts, 0, clk).Build(context.Background(), server, snap)

	assert.Equal(t, types.ProtocolSource, got.Kind)
	assert.Equal(t, "Source server 203.0.113.5:27015", got.Title)
	assert.Equal(t, "My Server", got.Description)
	assert.Equal(t, "10(+2)/10", got.Players)
	assert.Equal(t, []string{"alice", "bob"}, got.PlayerNames)
	assert.Equal(t, "de_dust2", got.Map)
	assert.Equal(t, "1.38", got.Version)
	assert.Equal(t, t0.Add(-time.Hour), got.VersionChangedAt)
	assert.True(t, got.Online)
	assert.Equal(t, t0, got.Timestamp)
	assert.Contains(t, got.History, "█")
	assert.Equal(t, "https://cdn.example.com/chart.png", got.ChartURL)
	assert.Equal(t, server.SampleID(), charts.id)
	assert.Equal(t, []time.Duration{90 * time.Minute, 0}, samples.windows)
}

func TestBuilder_Build_MinecraftNoCharts(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	samples := &fakeSamples{err: errors.New("db down")}

	got := NewBuilder(samples, nil, time.Hour, clk).Build(context.Background(), types.MonitoredServer{
		Kind:     types.ProtocolMinecraft,
		Endpoint: types.Endpoint{Host: "mc.example.com", Port: 25565},
	}, types.Snapshot{Description: "A Minecraft Server", Online: 1, Max: 20})

	assert.Equal(t, "Minecraft server mc.example.com:25565", got.Title)
	assert.Equal(t, "A Minecraft Server", got.Description)
	assert.Equal(t, "1/20", got.Players)
	assert.Empty(t, got.History)
	assert.Empty(t, got.ChartURL)
	assert.Equal(t, []time.Duration{time.Hour}, samples.windows)
}
