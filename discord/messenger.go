package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/poundbot/gamewatch/types"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type messageSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// A Messenger publishes status reports as channel embeds.
type Messenger struct {
	session messageSession
}

// NewMessenger returns a Messenger sending through session.
func NewMessenger(session messageSession) Messenger {
	return Messenger{session: session}
}

// Publish implements report.Messenger.Publish
func (m Messenger) Publish(ctx context.Context, guildID, channelID string, r types.StatusReport) (types.MessageRef, error) {
	msg, err := m.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{statusEmbed(r)},
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return types.MessageRef{}, restError(err)
	}

	log.WithFields(logrus.Fields{"gID": guildID, "cID": channelID, "mID": msg.ID}).Trace("status message published")
	return types.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// Fetch implements report.Messenger.Fetch
func (m Messenger) Fetch(ctx context.Context, guildID string, ref types.MessageRef) error {
	msg, err := m.session.ChannelMessage(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx))
	if err != nil {
		return restError(err)
	}
	if msg.GuildID != "" && guildID != "" && msg.GuildID != guildID {
		return fmt.Errorf("message %s belongs to guild %s: %w", ref.MessageID, msg.GuildID, types.ErrNotFound)
	}
	return nil
}

// Edit implements report.Messenger.Edit
func (m Messenger) Edit(ctx context.Context, ref types.MessageRef, r types.StatusReport) error {
	embeds := []*discordgo.MessageEmbed{statusEmbed(r)}
	_, err := m.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      ref.MessageID,
		Channel: ref.ChannelID,
		Embeds:  &embeds,
	}, discordgo.WithContext(ctx))
	return restError(err)
}

// Delete implements report.Messenger.Delete
func (m Messenger) Delete(ctx context.Context, ref types.MessageRef) error {
	return restError(m.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID, discordgo.WithContext(ctx)))
}

// Notify implements report.Messenger.Notify
func (m Messenger) Notify(ctx context.Context, guildID, channelID, text string) error {
	_, err := m.session.ChannelMessageSend(channelID, truncateString(text, maxContentLen), discordgo.WithContext(ctx))
	return restError(err)
}

// restError maps Discord's unknown message and unknown channel replies to
// types.ErrNotFound.
func restError(err error) error {
	if err == nil {
		return nil
	}

	var rErr *discordgo.RESTError
	if !errors.As(err, &rErr) {
		return err
	}

	if rErr.Message != nil {
		switch rErr.Message.Code {
		case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("discord: %w: %v", types.ErrNotFound, err)
		}
	}
	if rErr.Response != nil && rErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("discord: %w: %v", types.ErrNotFound, err)
	}
	return err
}
