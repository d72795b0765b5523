package discord

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/poundbot/gamewatch/types"

	"github.com/bwmarrin/discordgo"
)

const (
	colorOnline  = "seagreen"
	colorOffline = "firebrick"

	maxListedPlayers = 30
)

// statusEmbed renders a status report as a Discord embed.
func statusEmbed(r types.StatusReport) *discordgo.MessageEmbed {
	color := colorOnline
	if !r.Online {
		color = colorOffline
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncateString(r.Title, maxTitleLen),
		Description: truncateString(escapeDiscordString(r.Description), maxDescriptionLen),
		Color:       types.ColorInt(color),
		Footer: &discordgo.MessageEmbedFooter{
			Text: localize("EmbedFooter", "Last updated"),
		},
	}
	if !r.Timestamp.IsZero() {
		embed.Timestamp = r.Timestamp.UTC().Format(time.RFC3339)
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   localize("EmbedPlayers", "Players"),
		Value:  r.Players,
		Inline: true,
	})
	if r.Map != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   localize("EmbedMap", "Map"),
			Value:  truncateString(escapeDiscordString(r.Map), maxFieldLen),
			Inline: true,
		})
	}
	if r.Version != "" {
		version := escapeDiscordString(r.Version)
		if !r.VersionChangedAt.IsZero() {
			version += "\n" + localize("EmbedVersionSince", "since") + " " + discordTimestamp(r.VersionChangedAt)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   localize("EmbedVersion", "Version"),
			Value:  truncateString(version, maxFieldLen),
			Inline: true,
		})
	}
	if len(r.PlayerNames) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  localize("EmbedPlayerList", "Online now"),
			Value: truncateString(playerList(r.PlayerNames), maxFieldLen),
		})
	}
	if history := codeBlock(r.History); r.History != "" && utf8.RuneCountInString(history) <= maxFieldLen {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  localize("EmbedHistory", "Player history"),
			Value: history,
		})
	}
	if r.ChartURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: r.ChartURL}
	}

	return embed
}

func playerList(names []string) string {
	extra := 0
	if len(names) > maxListedPlayers {
		extra = len(names) - maxListedPlayers
		names = names[:maxListedPlayers]
	}

	escaped := make([]string, len(names))
	for i, n := range names {
		escaped[i] = escapeDiscordString(n)
	}
	list := strings.Join(escaped, ", ")
	if extra > 0 {
		list += " " + localize("EmbedPlayersMore", "and more")
	}
	return list
}

// discordTimestamp renders t in each reader's own timezone.
func discordTimestamp(t time.Time) string {
	return "<t:" + strconv.FormatInt(t.Unix(), 10) + ":R>"
}
