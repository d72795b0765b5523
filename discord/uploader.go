package discord

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

type fileSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// An ImageUploader posts chart images to an upload channel and hands back
// the attachment URL for use in embeds.
type ImageUploader struct {
	session   fileSender
	channelID string
}

// NewImageUploader returns an ImageUploader posting to channelID.
func NewImageUploader(session fileSender, channelID string) ImageUploader {
	return ImageUploader{session: session, channelID: channelID}
}

// Upload implements history.Uploader.Upload
func (u ImageUploader) Upload(ctx context.Context, filePath, id string) (string, error) {
	if u.channelID == "" {
		return "", nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	msg, err := u.session.ChannelMessageSendComplex(u.channelID, &discordgo.MessageSend{
		Content: id,
		Files: []*discordgo.File{{
			Name:        id + filepath.Ext(filePath),
			ContentType: "image/png",
			Reader:      f,
		}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", restError(err)
	}
	if len(msg.Attachments) == 0 {
		return "", errors.New("upload: message has no attachment")
	}

	url := msg.Attachments[0].URL
	log.WithFields(logrus.Fields{"cID": u.channelID, "id": id}).Trace("chart uploaded")
	return url, nil
}
