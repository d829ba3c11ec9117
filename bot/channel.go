package bot

import (
	"fmt"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/telegram/message/styling"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/database"
)

// ChannelHandler shows the watched channels as telegram sees them, with
// member counts when the bot can fetch the full channel.
func ChannelHandler(ctx *ext.Context, update *ext.Update) error {
	channels, err := database.GetAllIndexChannels(ctx)
	if err != nil {
		log.FromContext(ctx).Error("Failed to list channels", "error", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to list channels"), nil)
		return dispatcher.EndGroups
	}
	if len(channels) == 0 {
		ctx.Reply(update, ext.ReplyTextString("No channels"), nil)
		return dispatcher.EndGroups
	}
	logger := log.FromContext(ctx)

	var text []styling.StyledTextOption
	text = append(text, styling.Bold("Watched channels\n\n"))
	for _, channel := range channels {
		title := channel.Title
		members := ""
		peer := ctx.PeerStorage.GetInputPeerById(channel.ChatID)
		if inp, ok := peer.(*tg.InputPeerChannel); ok {
			full, err := ctx.Raw.ChannelsGetFullChannel(ctx, &tg.InputChannel{
				ChannelID:  inp.ChannelID,
				AccessHash: inp.AccessHash,
			})
			if err != nil {
				logger.Warnf("Failed to fetch channel %d: %v", channel.ChatID, err)
			} else {
				if cf, ok := full.FullChat.(*tg.ChannelFull); ok {
					members = fmt.Sprintf(", %d members", cf.ParticipantsCount)
				}
				for _, chat := range full.Chats {
					if c, ok := chat.(*tg.Channel); ok && c.GetID() == channel.ChatID {
						title = c.Title
					}
				}
			}
		}
		if title == "" {
			title = fmt.Sprintf("%d", channel.ChatID)
		}
		text = append(text, styling.Plain(fmt.Sprintf("%s (%d%s)\n", title, channel.ChatID, members)))
	}
	ctx.Reply(update, ext.ReplyTextStyledTextArray(text), nil)
	return dispatcher.EndGroups
}
