//go:build integration
// +build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/poundbot/gamewatch/storage/mongodb/mongotest"
	"github.com/poundbot/gamewatch/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func NewSamples(t *testing.T) (*Samples, *mongotest.Collection) {
	coll, err := mongotest.NewCollection(samplesCollection)
	if err != nil {
		t.Fatal(err)
	}
	return &Samples{collection: coll.C}, coll
}

func TestSamples_AppendRead(t *testing.T) {
	t.Parallel()

	samples, coll := NewSamples(t)
	defer coll.Close()

	window := 12 * time.Hour
	for i, d := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		at := t0.Add(d)
		require.NoError(t, samples.Append("id", types.HistoricSample{At: at, Players: i}, at.Add(-window)))
	}

	got, err := samples.Read("id", t0.Add(-window))
	require.NoError(t, err)
	assert.Equal(t, []types.HistoricSample{
		{At: t0, Players: 1},
		{At: t0.Add(time.Hour), Players: 2},
		{At: t0.Add(2 * time.Hour), Players: 0},
	}, got)

	later := t0.Add(14 * time.Hour)
	require.NoError(t, samples.Append("id", types.HistoricSample{At: later, Players: 3}, later.Add(-window)))

	got, err = samples.Read("id", later.Add(-window))
	require.NoError(t, err)
	assert.Equal(t, []types.HistoricSample{
		{At: t0.Add(2 * time.Hour), Players: 0},
		{At: later, Players: 3},
	}, got)
}

func TestSamples_ReadMissing(t *testing.T) {
	t.Parallel()

	samples, coll := NewSamples(t)
	defer coll.Close()

	got, err := samples.Read("nothing", t0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSamples_AppendPrunesStoredDocument(t *testing.T) {
	t.Parallel()

	samples, coll := NewSamples(t)
	defer coll.Close()

	require.NoError(t, samples.Append("id", types.HistoricSample{At: t0, Players: 1}, t0.Add(-time.Hour)))
	later := t0.Add(3 * time.Hour)
	require.NoError(t, samples.Append("id", types.HistoricSample{At: later, Players: 2}, later.Add(-time.Hour)))

	var doc samplesDoc
	require.NoError(t, coll.C.FindOne(context.Background(), bson.M{"_id": "id"}).Decode(&doc))
	require.Len(t, doc.Samples, 1)
	assert.Equal(t, 2, doc.Samples[0].Players)
	assert.True(t, later.Equal(doc.Samples[0].At))
}
