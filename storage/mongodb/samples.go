package mongodb

import (
	"context"
	"sort"
	"time"

	"github.com/poundbot/gamewatch/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// samplesDoc holds the whole history of one sample id.
type samplesDoc struct {
	ID      string                 `bson:"_id"`
	Samples []types.HistoricSample `bson:"samples"`
}

// A Samples implements storage.SamplesStore
type Samples struct {
	collection *mongo.Collection
}

// Append implements storage.SamplesStore.Append. The push and the prune run
// as one pipeline update so readers never see an unpruned history.
func (s Samples) Append(id string, sample types.HistoricSample, cutoff time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		mongo.Pipeline{
			{{Key: "$set", Value: bson.M{"samples": bson.M{"$filter": bson.M{
				"input": bson.M{"$concatArrays": bson.A{
					bson.M{"$ifNull": bson.A{"$samples", bson.A{}}},
					bson.M{"$literal": []types.HistoricSample{sample}},
				}},
				"as":   "s",
				"cond": bson.M{"$gte": bson.A{"$$s.at", cutoff}},
			}}}}},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Read implements storage.SamplesStore.Read
func (s Samples) Read(id string, cutoff time.Time) ([]types.HistoricSample, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc samplesDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []types.HistoricSample{}, nil
	}
	if err != nil {
		return nil, err
	}

	samples := make([]types.HistoricSample, 0, len(doc.Samples))
	for _, sample := range doc.Samples {
		if sample.At.Before(cutoff) {
			continue
		}
		sample.At = sample.At.UTC()
		samples = append(samples, sample)
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].At.Before(samples[j].At) })
	return samples, nil
}
