package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/poundbot/gamewatch/types"
)

const serverColumns = `kind, guild_id, channel_id, host, port,
	message_channel_id, message_id, version, version_changed_at,
	created_at, updated_at`

// Servers implements storage.ServersStore
type Servers struct {
	db *sql.DB
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanServer(row scanner) (types.MonitoredServer, error) {
	var (
		s                         types.MonitoredServer
		kind                      string
		changed, created, updated int64
	)
	err := row.Scan(
		&kind, &s.GuildID, &s.ChannelID, &s.Endpoint.Host, &s.Endpoint.Port,
		&s.Message.ChannelID, &s.Message.MessageID, &s.Version, &changed,
		&created, &updated,
	)
	if err != nil {
		return types.MonitoredServer{}, err
	}
	if s.Kind, err = types.ParseProtocolKind(kind); err != nil {
		return types.MonitoredServer{}, err
	}
	s.VersionChangedAt = fromUnixNano(changed)
	s.CreatedAt = fromUnixNano(created)
	s.UpdatedAt = fromUnixNano(updated)
	return s, nil
}

func (s Servers) list(where string, args ...interface{}) ([]types.MonitoredServer, error) {
	rows, err := s.db.Query(
		`SELECT `+serverColumns+` FROM servers WHERE `+where+` ORDER BY created_at, host, port`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	servers := []types.MonitoredServer{}
	for rows.Next() {
		server, err := scanServer(rows)
		if err != nil {
			log.WithError(err).Warn("skipping unreadable server row")
			continue
		}
		servers = append(servers, server)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return servers, nil
}

// Insert implements storage.ServersStore.Insert
func (s Servers) Insert(server types.MonitoredServer) error {
	res, err := s.db.Exec(`
	INSERT INTO servers (`+serverColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(kind, guild_id, channel_id, host, port) DO NOTHING`,
		server.Kind.String(), server.GuildID, server.ChannelID, server.Endpoint.Host, server.Endpoint.Port,
		server.Message.ChannelID, server.Message.MessageID, server.Version, unixNano(server.VersionChangedAt),
		unixNano(server.CreatedAt), unixNano(server.UpdatedAt),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", server.Kind, server.Endpoint, types.ErrAlreadyRegistered)
	}
	return nil
}

// Get implements storage.ServersStore.Get
func (s Servers) Get(key types.ServerKey) (types.MonitoredServer, error) {
	row := s.db.QueryRow(
		`SELECT `+serverColumns+` FROM servers
		WHERE kind = ? AND guild_id = ? AND channel_id = ? AND host = ? AND port = ?`,
		key.Kind.String(), key.GuildID, key.ChannelID, key.Endpoint.Host, key.Endpoint.Port,
	)
	server, err := scanServer(row)
	if err == sql.ErrNoRows {
		return types.MonitoredServer{}, fmt.Errorf("%s %s: %w", key.Kind, key.Endpoint, types.ErrNotFound)
	}
	return server, err
}

// ListByKind implements storage.ServersStore.ListByKind
func (s Servers) ListByKind(kind types.ProtocolKind) ([]types.MonitoredServer, error) {
	return s.list(`kind = ?`, kind.String())
}

// ListByGuild implements storage.ServersStore.ListByGuild
func (s Servers) ListByGuild(guildID string) ([]types.MonitoredServer, error) {
	return s.list(`guild_id = ?`, guildID)
}

// FindByGuildEndpoint implements storage.ServersStore.FindByGuildEndpoint
func (s Servers) FindByGuildEndpoint(guildID string, ep types.Endpoint) ([]types.MonitoredServer, error) {
	return s.list(`guild_id = ? AND host = ? AND port = ?`, guildID, ep.Host, ep.Port)
}

// Update implements storage.ServersStore.Update
func (s Servers) Update(server types.MonitoredServer) error {
	res, err := s.db.Exec(`
	UPDATE servers SET
		message_channel_id = ?,
		message_id = ?,
		version = ?,
		version_changed_at = ?,
		updated_at = ?
	WHERE kind = ? AND guild_id = ? AND channel_id = ? AND host = ? AND port = ?`,
		server.Message.ChannelID, server.Message.MessageID, server.Version,
		unixNano(server.VersionChangedAt), unixNano(server.UpdatedAt),
		server.Kind.String(), server.GuildID, server.ChannelID, server.Endpoint.Host, server.Endpoint.Port,
	)
	return affected(res, err, server.Key())
}

// Remove implements storage.ServersStore.Remove
func (s Servers) Remove(key types.ServerKey) error {
	res, err := s.db.Exec(
		`DELETE FROM servers WHERE kind = ? AND guild_id = ? AND channel_id = ? AND host = ? AND port = ?`,
		key.Kind.String(), key.GuildID, key.ChannelID, key.Endpoint.Host, key.Endpoint.Port,
	)
	return affected(res, err, key)
}

// RemoveGuild implements storage.ServersStore.RemoveGuild
func (s Servers) RemoveGuild(guildID string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM servers WHERE guild_id = ?`, guildID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func affected(res sql.Result, err error, key types.ServerKey) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", key.Kind, key.Endpoint, types.ErrNotFound)
	}
	return nil
}
