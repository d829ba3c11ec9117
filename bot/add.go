package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/telegram/message/styling"
	"github.com/krau/mediadex/database"
)

func AddHandler(ctx *ext.Context, update *ext.Update) error {
	args := update.Args()
	if len(args) < 2 {
		ctx.Reply(update, ext.ReplyTextString("Usage: /add <channel id or @username>"), nil)
		return dispatcher.EndGroups
	}
	chatArg := args[1]
	logger := log.FromContext(ctx)

	channel := &database.IndexChannel{Enabled: true}
	chatID, err := strconv.ParseInt(chatArg, 10, 64)
	if err != nil {
		effChat, err := ctx.ResolveUsername(strings.TrimPrefix(chatArg, "@"))
		if err != nil {
			ctx.Reply(update, ext.ReplyTextString("Failed to resolve username: "+err.Error()), nil)
			return dispatcher.EndGroups
		}
		channel.ChatID = effChat.GetID()
		channel.Username = strings.TrimPrefix(chatArg, "@")
	} else {
		channel.ChatID = chatID
	}
	if channel.ChatID == 0 {
		ctx.Reply(update, ext.ReplyTextString("Channel not found"), nil)
		return dispatcher.EndGroups
	}
	if existing, err := database.GetIndexChannel(ctx, channel.ChatID); err == nil {
		existing.Enabled = true
		channel = existing
	}
	if err := database.UpsertIndexChannel(ctx, channel); err != nil {
		logger.Errorf("Failed to add channel: %v", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to add channel"), nil)
		return dispatcher.EndGroups
	}
	logger.Infof("Added channel %d", channel.ChatID)
	ctx.Reply(update, ext.ReplyTextString(fmt.Sprintf(
		"Watching channel %d. New posts get indexed as they arrive; run the backfill command to index the history.",
		channel.ChatID)), nil)
	return dispatcher.EndGroups
}

func RemoveHandler(ctx *ext.Context, update *ext.Update) error {
	args := update.Args()
	if len(args) < 2 {
		ctx.Reply(update, ext.ReplyTextString("Usage: /rm <channel id>"), nil)
		return dispatcher.EndGroups
	}
	chatID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		ctx.Reply(update, ext.ReplyTextString("Invalid channel ID"), nil)
		return dispatcher.EndGroups
	}
	if err := database.DeleteIndexChannel(ctx, chatID); err != nil {
		log.FromContext(ctx).Error("Failed to delete channel", "chat_id", chatID, "error", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to delete channel"), nil)
		return dispatcher.EndGroups
	}
	if err := BotInstance.Engine.DeleteChat(ctx, chatID); err != nil {
		log.FromContext(ctx).Error("Failed to purge index", "chat_id", chatID, "error", err)
		ctx.Reply(update, ext.ReplyTextString("Channel removed, but purging its index failed"), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString("Removed channel and purged its index"), nil)
	return dispatcher.EndGroups
}

func ListHandler(ctx *ext.Context, update *ext.Update) error {
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
	var text []styling.StyledTextOption
	text = append(text, styling.Plain(fmt.Sprintf("%d indexed channels\n\n", len(channels))))
	for _, channel := range channels {
		text = append(text, styling.Code(strconv.FormatInt(channel.ChatID, 10)))
		title := channel.Title
		if title == "" && channel.Username != "" {
			title = "@" + channel.Username
		}
		text = append(text, styling.Plain(fmt.Sprintf(" - %s\n", title)))
		text = append(text, styling.Plain(fmt.Sprintf("Watching: %t\n\n", channel.Enabled)))
	}
	ctx.Reply(update, ext.ReplyTextStyledTextArray(text), nil)
	return dispatcher.EndGroups
}
