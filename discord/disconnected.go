package discord

import (
	"github.com/bwmarrin/discordgo"
)

// disconnected reports lost gateway connections on status.
func disconnected(status chan<- bool, stop <-chan struct{}) func(s *discordgo.Session, event *discordgo.Disconnect) {
	return func(s *discordgo.Session, event *discordgo.Disconnect) {
		log.WithField("ssys", "CONN").Warn("Disconnected!")
		select {
		case status <- false:
		case <-stop:
		}
	}
}
