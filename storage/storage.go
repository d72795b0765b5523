package storage

import (
	"time"

	"github.com/poundbot/gamewatch/types"
)

// ServersStore is for accessing monitored server registrations.
//
// Insert adds a new registration and fails with types.ErrAlreadyRegistered
// when the key is taken.
//
// Get, Update and Remove fail with types.ErrNotFound when the registration
// is gone. Update never recreates a removed registration.
//
// RemoveGuild deletes every registration of a guild and returns how many
// were removed.
type ServersStore interface {
	Insert(server types.MonitoredServer) error
	Get(key types.ServerKey) (types.MonitoredServer, error)
	ListByKind(kind types.ProtocolKind) ([]types.MonitoredServer, error)
	ListByGuild(guildID string) ([]types.MonitoredServer, error)
	FindByGuildEndpoint(guildID string, ep types.Endpoint) ([]types.MonitoredServer, error)
	Update(server types.MonitoredServer) error
	Remove(key types.ServerKey) error
	RemoveGuild(guildID string) (int, error)
}

// SamplesStore keeps the player count history of each sample id.
//
// Append stores a sample and drops every sample of id older than cutoff.
//
// Read returns the samples of id at or after cutoff, oldest first.
type SamplesStore interface {
	Append(id string, sample types.HistoricSample, cutoff time.Time) error
	Read(id string, cutoff time.Time) ([]types.HistoricSample, error)
}

// Storage is a complete implementation of the data store.
//
// Init prepares the schema and indexes, and should always be called when
// gamewatch first starts.
//
// Close releases the connection.
type Storage interface {
	Init() error
	Close()
	Servers() ServersStore
	Samples() SamplesStore
}
