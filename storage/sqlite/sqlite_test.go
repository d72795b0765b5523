package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/poundbot/gamewatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := NewSQLite(Config{Path: filepath.Join(t.TempDir(), "gamewatch.db")})
	require.NoError(t, err)
	require.NoError(t, db.Init())
	t.Cleanup(db.Close)
	return db
}

var (
	t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	baseServer = types.MonitoredServer{
		Kind:      types.ProtocolSource,
		Endpoint:  types.Endpoint{Host: "203.0.113.5", Port: 27015},
		GuildID:   "g1",
		ChannelID: "c1",
		Timestamp: types.Timestamp{CreatedAt: t0, UpdatedAt: t0},
	}
)

func TestInit_Idempotent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	require.NoError(t, db.Init())

	var n int
	require.NoError(t, db.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestServers_InsertGet(t *testing.T) {
	t.Parallel()

	servers := newTestDB(t).Servers()

	require.NoError(t, servers.Insert(baseServer))

	got, err := servers.Get(baseServer.Key())
	require.NoError(t, err)
	assert.Equal(t, baseServer, got)

	err = servers.Insert(baseServer)
	assert.True(t, errors.Is(err, types.ErrAlreadyRegistered), "got %v", err)

	other := baseServer.Key()
	other.ChannelID = "c2"
	_, err = servers.Get(other)
	assert.True(t, errors.Is(err, types.ErrNotFound), "got %v", err)
}

func TestServers_Lists(t *testing.T) {
	t.Parallel()

	servers := newTestDB(t).Servers()

	mc := baseServer
	mc.Kind = types.ProtocolMinecraft
	mc.Endpoint = types.Endpoint{Host: "mc.example.com", Port: 25565}

	otherChannel := baseServer
	otherChannel.ChannelID = "c2"

	otherGuild := baseServer
	otherGuild.GuildID = "g2"

	for _, s := range []types.MonitoredServer{baseServer, mc, otherChannel, otherGuild} {
		require.NoError(t, servers.Insert(s))
	}

	tests := []struct {
		name string
		list func() ([]types.MonitoredServer, error)
		want int
	}{
		{name: "by kind source", list: func() ([]types.MonitoredServer, error) { return servers.ListByKind(types.ProtocolSource) }, want: 3},
		{name: "by kind minecraft", list: func() ([]types.MonitoredServer, error) { return servers.ListByKind(types.ProtocolMinecraft) }, want: 1},
		{name: "by guild", list: func() ([]types.MonitoredServer, error) { return servers.ListByGuild("g1") }, want: 3},
		{name: "by guild endpoint", list: func() ([]types.MonitoredServer, error) {
			return servers.FindByGuildEndpoint("g1", baseServer.Endpoint)
		}, want: 2},
		{name: "unknown guild", list: func() ([]types.MonitoredServer, error) { return servers.ListByGuild("nope") }, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list()
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestServers_Update(t *testing.T) {
	t.Parallel()

	servers := newTestDB(t).Servers()
	require.NoError(t, servers.Insert(baseServer))

	updated := baseServer
	updated.Message = types.MessageRef{ChannelID: "c1", MessageID: "m1"}
	updated.Version = "1.2.3"
	updated.VersionChangedAt = t0.Add(time.Hour)
	updated.UpdatedAt = t0.Add(time.Hour)

	require.NoError(t, servers.Update(updated))

	got, err := servers.Get(baseServer.Key())
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, servers.Remove(baseServer.Key()))
	err = servers.Update(updated)
	assert.True(t, errors.Is(err, types.ErrNotFound), "got %v", err)

	_, err = servers.Get(baseServer.Key())
	assert.True(t, errors.Is(err, types.ErrNotFound), "update must not recreate the row")
}

func TestServers_Remove(t *testing.T) {
	t.Parallel()

	servers := newTestDB(t).Servers()
	require.NoError(t, servers.Insert(baseServer))

	require.NoError(t, servers.Remove(baseServer.Key()))
	err := servers.Remove(baseServer.Key())
	assert.True(t, errors.Is(err, types.ErrNotFound), "got %v", err)
}

func TestServers_RemoveGuild(t *testing.T) {
	t.Parallel()

	servers := newTestDB(t).Servers()

	second := baseServer
	second.ChannelID = "c2"
	kept := baseServer
	kept.GuildID = "g2"
	for _, s := range []types.MonitoredServer{baseServer, second, kept} {
		require.NoError(t, servers.Insert(s))
	}

	n, err := servers.RemoveGuild("g1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := servers.ListByKind(types.ProtocolSource)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "g2", left[0].GuildID)
}

func TestSamples_AppendRead(t *testing.T) {
	t.Parallel()

	samples := newTestDB(t).Samples()
	window := 12 * time.Hour

	// Appended out of order.
	ats := []time.Duration{2 * time.Hour, 0, time.Hour}
	for i, d := range ats {
		at := t0.Add(d)
		require.NoError(t, samples.Append("id", types.HistoricSample{At: at, Players: i}, at.Add(-window)))
	}
	require.NoError(t, samples.Append("other", types.HistoricSample{At: t0, Players: 9}, t0.Add(-window)))

	got, err := samples.Read("id", t0.Add(2*time.Hour).Add(-window))
	require.NoError(t, err)
	assert.Equal(t, []types.HistoricSample{
		{At: t0, Players: 1},
		{At: t0.Add(time.Hour), Players: 2},
		{At: t0.Add(2 * time.Hour), Players: 0},
	}, got)
}

func TestSamples_Prune(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	samples := db.Samples()
	window := 12 * time.Hour

	require.NoError(t, samples.Append("id", types.HistoricSample{At: t0, Players: 1}, t0.Add(-window)))

	later := t0.Add(13 * time.Hour)
	require.NoError(t, samples.Append("id", types.HistoricSample{At: later, Players: 2}, later.Add(-window)))

	var n int
	require.NoError(t, db.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE id = ?`, "id").Scan(&n))
	assert.Equal(t, 1, n)

	got, err := samples.Read("id", later.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, got)
}
