package types

import "time"

// A MessageRef points at a message published by the bot.
type MessageRef struct {
	ChannelID string `json:"channel_id" bson:"channel_id"`
	MessageID string `json:"message_id" bson:"message_id"`
}

// IsZero is true until the first status message has been published.
func (m MessageRef) IsZero() bool {
	return m.MessageID == ""
}

// A MonitoredServer is a game server registered for status reports in a
// guild channel.
type MonitoredServer struct {
	Kind             ProtocolKind `json:"kind" bson:"kind"`
	Endpoint         Endpoint     `json:"endpoint" bson:"endpoint"`
	GuildID          string       `json:"guild_id" bson:"guild_id"`
	ChannelID        string       `json:"channel_id" bson:"channel_id"`
	Message          MessageRef   `json:"message" bson:"message"`
	Version          string       `json:"version" bson:"version"`
	VersionChangedAt time.Time    `json:"version_changed_at" bson:"version_changed_at"`
	Timestamp        `bson:",inline" json:",inline"`
}

// Key identifies the server in storage.
func (s MonitoredServer) Key() ServerKey {
	return ServerKey{Kind: s.Kind, GuildID: s.GuildID, ChannelID: s.ChannelID, Endpoint: s.Endpoint}
}

// SampleID is the history key for the server's endpoint.
func (s MonitoredServer) SampleID() string {
	return s.Endpoint.SampleID(s.Kind)
}

// A ServerKey is the unique identity of a MonitoredServer.
type ServerKey struct {
	Kind      ProtocolKind
	GuildID   string
	ChannelID string
	Endpoint  Endpoint
}
