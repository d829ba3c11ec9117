package bot

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
)

// IndexMessageHandler indexes new posts of watched channels as they
// arrive, so the bot only needs the backfill command once per channel.
func IndexMessageHandler(ctx *ext.Context, u *ext.Update) error {
	if u.EffectiveMessage == nil || u.EffectiveMessage.Message == nil {
		return dispatcher.SkipCurrentGroup
	}
	if u.EffectiveMessage.IsService {
		return dispatcher.SkipCurrentGroup
	}
	channel := u.GetChannel()
	if channel == nil {
		return dispatcher.SkipCurrentGroup
	}
	chatID := channel.GetID()
	if !database.Watching(chatID) {
		return dispatcher.SkipCurrentGroup
	}
	logger := log.FromContext(ctx)

	// keep the stored title and username current, links depend on them
	channelDB, err := database.GetIndexChannel(ctx, chatID)
	if err == nil && (channelDB.Title != channel.Title || channelDB.Username != channel.Username) {
		channelDB.Title = channel.Title
		channelDB.Username = channel.Username
		if err := database.UpsertIndexChannel(ctx, channelDB); err != nil {
			logger.Warnf("Failed to update channel info: %v", err)
		}
	}

	doc, ok := utils.DocumentFromMessage(chatID, u.EffectiveMessage.Message)
	if !ok {
		return dispatcher.SkipCurrentGroup
	}
	if err := BotInstance.Engine.AddDocuments(ctx, chatID, []*types.FileDocument{doc}); err != nil {
		logger.Errorf("Failed to index message %d of %d: %v", doc.MessageID, chatID, err)
	}
	return dispatcher.SkipCurrentGroup
}

// DeletedMessagesHandler drops index documents of deleted channel posts.
func DeletedMessagesHandler(ctx *ext.Context, u *ext.Update) error {
	update, ok := u.UpdateClass.(*tg.UpdateDeleteChannelMessages)
	if !ok {
		return dispatcher.SkipCurrentGroup
	}
	chatID := update.GetChannelID()
	if !database.Watching(chatID) {
		return dispatcher.SkipCurrentGroup
	}
	if err := BotInstance.Engine.DeleteDocuments(ctx, chatID, update.GetMessages()); err != nil {
		log.FromContext(ctx).Errorf("Failed to delete documents of %d: %v", chatID, err)
	}
	return dispatcher.SkipCurrentGroup
}
