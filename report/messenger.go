package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/poundbot/gamewatch/types"
)

// A Messenger publishes status reports to chat channels.
//
// Fetch fails with types.ErrNotFound when the message no longer exists.
type Messenger interface {
	Publish(ctx context.Context, guildID, channelID string, r types.StatusReport) (types.MessageRef, error)
	Fetch(ctx context.Context, guildID string, ref types.MessageRef) error
	Edit(ctx context.Context, ref types.MessageRef, r types.StatusReport) error
	Delete(ctx context.Context, ref types.MessageRef) error
	Notify(ctx context.Context, guildID, channelID, text string) error
}

// Reconcile makes the published message of server show r. Without a stored
// reference a new message is published and its reference stored on server;
// fresh reports that case. Otherwise the stored message is edited in place.
// A stored message that no longer exists yields types.ErrDesync.
func Reconcile(ctx context.Context, m Messenger, server *types.MonitoredServer, r types.StatusReport) (fresh bool, err error) {
	if server.Message.IsZero() {
		ref, err := m.Publish(ctx, server.GuildID, server.ChannelID, r)
		if err != nil {
			return false, fmt.Errorf("publish: %w", err)
		}
		server.Message = ref
		return true, nil
	}

	if err := m.Fetch(ctx, server.GuildID, server.Message); err != nil {
		return false, desync(err, server.Message)
	}
	if err := m.Edit(ctx, server.Message, r); err != nil {
		return false, desync(err, server.Message)
	}
	return false, nil
}

func desync(err error, ref types.MessageRef) error {
	if errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("message %s/%s: %w: %v", ref.ChannelID, ref.MessageID, types.ErrDesync, err)
	}
	return err
}
