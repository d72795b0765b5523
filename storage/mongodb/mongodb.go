package mongodb

import (
	"context"
	"time"

	pblog "github.com/poundbot/gamewatch/log"
	"github.com/poundbot/gamewatch/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var log = pblog.Log.WithField("sys", "MONGO")

const (
	serversCollection = "servers"
	samplesCollection = "samples"
)

// A Config is exactly what it sounds like.
type Config struct {
	DialAddress string // the mongo dial address
	Database    string // the database name
}

// NewMongoDB returns a connected MongoDB
func NewMongoDB(mc Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mc.DialAddress))
	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &MongoDB{client: client, dbname: mc.Database, address: mc.DialAddress}, nil
}

// An MongoDB implements storage for MongoDB
type MongoDB struct {
	dbname  string
	address string
	client  *mongo.Client
}

// Close implements storage.Storage.Close
func (m *MongoDB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		log.WithError(err).Warn("disconnect failed")
	}
}

// Servers implements storage.Storage.Servers
func (m *MongoDB) Servers() storage.ServersStore {
	return Servers{collection: m.client.Database(m.dbname).Collection(serversCollection)}
}

// Samples implements storage.Storage.Samples
func (m *MongoDB) Samples() storage.SamplesStore {
	return Samples{collection: m.client.Database(m.dbname).Collection(samplesCollection)}
}

// Init implements storage.Storage.Init
func (m *MongoDB) Init() error {
	log.Printf("Database is %s", m.dbname)
	return ensureIndexes(m.client.Database(m.dbname))
}

func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection(serversCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: kindField, Value: 1},
				{Key: guildField, Value: 1},
				{Key: channelField, Value: 1},
				{Key: hostField, Value: 1},
				{Key: portField, Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: guildField, Value: 1}, {Key: hostField, Value: 1}, {Key: portField, Value: 1}},
		},
	})
	return err
}
