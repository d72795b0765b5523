package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/poundbot/gamewatch/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	kindField    = "kind"
	guildField   = "guild_id"
	channelField = "channel_id"
	hostField    = "endpoint.host"
	portField    = "endpoint.port"
)

// A Servers implements storage.ServersStore
type Servers struct {
	collection *mongo.Collection
}

func keyFilter(key types.ServerKey) bson.M {
	return bson.M{
		kindField:    key.Kind,
		guildField:   key.GuildID,
		channelField: key.ChannelID,
		hostField:    key.Endpoint.Host,
		portField:    key.Endpoint.Port,
	}
}

func (s Servers) find(filter bson.M) ([]types.MonitoredServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	servers := []types.MonitoredServer{}
	if err := cursor.All(ctx, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// Insert implements storage.ServersStore.Insert
func (s Servers) Insert(server types.MonitoredServer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.collection.InsertOne(ctx, server)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", server.Kind, server.Endpoint, types.ErrAlreadyRegistered)
	}
	return err
}

// Get implements storage.ServersStore.Get
func (s Servers) Get(key types.ServerKey) (types.MonitoredServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var server types.MonitoredServer
	err := s.collection.FindOne(ctx, keyFilter(key)).Decode(&server)
	if err == mongo.ErrNoDocuments {
		return types.MonitoredServer{}, fmt.Errorf("%s %s: %w", key.Kind, key.Endpoint, types.ErrNotFound)
	}
	return server, err
}

// ListByKind implements storage.ServersStore.ListByKind
func (s Servers) ListByKind(kind types.ProtocolKind) ([]types.MonitoredServer, error) {
	return s.find(bson.M{kindField: kind})
}

// ListByGuild implements storage.ServersStore.ListByGuild
func (s Servers) ListByGuild(guildID string) ([]types.MonitoredServer, error) {
	return s.find(bson.M{guildField: guildID})
}

// FindByGuildEndpoint implements storage.ServersStore.FindByGuildEndpoint
func (s Servers) FindByGuildEndpoint(guildID string, ep types.Endpoint) ([]types.MonitoredServer, error) {
	return s.find(bson.M{guildField: guildID, hostField: ep.Host, portField: ep.Port})
}

// Update implements storage.ServersStore.Update
func (s Servers) Update(server types.MonitoredServer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.collection.UpdateOne(
		ctx,
		keyFilter(server.Key()),
		bson.M{"$set": bson.M{
			"message":            server.Message,
			"version":            server.Version,
			"version_changed_at": server.VersionChangedAt,
			"updated_at":         server.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s: %w", server.Kind, server.Endpoint, types.ErrNotFound)
	}
	return nil
}

// Remove implements storage.ServersStore.Remove
func (s Servers) Remove(key types.ServerKey) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.collection.DeleteOne(ctx, keyFilter(key))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", key.Kind, key.Endpoint, types.ErrNotFound)
	}
	return nil
}

// RemoveGuild implements storage.ServersStore.RemoveGuild
func (s Servers) RemoveGuild(guildID string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := s.collection.DeleteMany(ctx, bson.M{guildField: guildID})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
