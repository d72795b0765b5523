package discord

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/poundbot/gamewatch/history"
	"github.com/poundbot/gamewatch/types"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldNames(e *discordgo.MessageEmbed) []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Name
	}
	return names
}

func Test_statusEmbed(t *testing.T) {
	t.Parallel()

	changed := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	r := types.StatusReport{
		Kind:             types.ProtocolSource,
		Title:            "Source server 203.0.113.5:27015",
		Description:      "*Best* server",
		Players:          "2/10",
		PlayerNames:      []string{"alice", "bob_"},
		Map:              "de_dust2",
		Version:          "1.38.2.2",
		VersionChangedAt: changed,
		History:          " 1┤█\n 0└──",
		ChartURL:         "https://cdn.example.com/c.png",
		Online:           true,
		Timestamp:        changed.Add(time.Hour),
	}

	e := statusEmbed(r)
	assert.Equal(t, r.Title, e.Title)
	assert.Equal(t, "\\*Best\\* server", e.Description)
	assert.Equal(t, types.ColorInt(colorOnline), e.Color)
	assert.Equal(t, "2024-05-01T12:00:00Z", e.Timestamp)
	assert.Equal(t, []string{"Players", "Map", "Version", "Online now", "Player history"}, fieldNames(e))
	assert.Equal(t, "de\\_dust2", e.Fields[1].Value)
	assert.Equal(t, fmt.Sprintf("1.38.2.2\nsince <t:%d:R>", changed.Unix()), e.Fields[2].Value)
	assert.Equal(t, "alice, bob\\_", e.Fields[3].Value)
	assert.Equal(t, "```\n 1┤█\n 0└──\n```", e.Fields[4].Value)
	require.NotNil(t, e.Image)
	assert.Equal(t, r.ChartURL, e.Image.URL)
}

func Test_statusEmbedMinimal(t *testing.T) {
	t.Parallel()

	e := statusEmbed(types.StatusReport{Title: "Minecraft server mc:25565", Players: "0/20"})
	assert.Equal(t, []string{"Players"}, fieldNames(e))
	assert.Equal(t, types.ColorInt(colorOffline), e.Color)
	assert.Nil(t, e.Image)
	assert.Empty(t, e.Timestamp)
}

func Test_playerList(t *testing.T) {
	t.Parallel()

	names := make([]string, maxListedPlayers+5)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
	}

	got := playerList(names)
	assert.True(t, strings.HasPrefix(got, "p0, p1, "))
	assert.True(t, strings.HasSuffix(got, fmt.Sprintf("p%d and more", maxListedPlayers-1)))
}

func Test_statusEmbedHistoryFits(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, max := range []int{10, 128, 1000, 100000} {
		t.Run(fmt.Sprint(max), func(t *testing.T) {
			samples := []types.HistoricSample{{At: now, Players: max}}
			e := statusEmbed(types.StatusReport{
				Players: fmt.Sprintf("%d/%d", max, max),
				History: history.RenderText(samples, now, max, 90*time.Minute),
			})

			require.Len(t, e.Fields, 2)
			assert.LessOrEqual(t, utf8.RuneCountInString(e.Fields[1].Value), maxFieldLen)
		})
	}
}

func Test_statusEmbedDropsOversizedHistory(t *testing.T) {
	t.Parallel()

	e := statusEmbed(types.StatusReport{Players: "1/1", History: strings.Repeat("█", maxFieldLen)})
	assert.Equal(t, []string{"Players"}, fieldNames(e))
}
