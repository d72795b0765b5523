package mongodb

import (
	"testing"

	"github.com/poundbot/gamewatch/types"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func Test_keyFilter(t *testing.T) {
	t.Parallel()

	got := keyFilter(types.ServerKey{
		Kind:      types.ProtocolMinecraft,
		GuildID:   "g",
		ChannelID: "c",
		Endpoint:  types.Endpoint{Host: "mc.example.com", Port: 25565},
	})
	assert.Equal(t, bson.M{
		"kind":          types.ProtocolMinecraft,
		"guild_id":      "g",
		"channel_id":    "c",
		"endpoint.host": "mc.example.com",
		"endpoint.port": 25565,
	}, got)
}
