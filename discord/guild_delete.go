package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// A GuildRemover forgets every registration of a guild.
type GuildRemover interface {
	RemoveGuild(guildID string) (int, error)
}

func newGuildDelete(gr GuildRemover) func(*discordgo.Session, *discordgo.GuildDelete) {
	return func(s *discordgo.Session, gd *discordgo.GuildDelete) {
		if gd.Guild == nil {
			return
		}
		guildDelete(gr, gd.ID, gd.Unavailable)
	}
}

// guildDelete forgets a guild the bot was removed from. Guilds that only
// became unavailable during an outage are kept.
func guildDelete(gr GuildRemover, gID string, unavailable bool) {
	gdLog := log.WithFields(logrus.Fields{"ssys": "guildDelete", "gID": gID})
	if unavailable {
		gdLog.Info("Guild unavailable, keeping registrations")
		return
	}

	n, err := gr.RemoveGuild(gID)
	if err != nil {
		gdLog.WithError(err).Error("Could not remove guild registrations")
		return
	}
	gdLog.WithField("count", n).Info("Left guild")
}
