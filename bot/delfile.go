package bot

import (
	"fmt"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/krau/mediadex/utils"
)

// DelFileHandler removes a file from the index. Reply to a forwarded copy
// of the file with /del; every indexed message carrying the same file id
// gets dropped.
func DelFileHandler(ctx *ext.Context, update *ext.Update) error {
	reply := update.EffectiveMessage.ReplyToMessage
	if reply == nil {
		ctx.Reply(update, ext.ReplyTextString("Reply to a file with /del to remove it from the index"), nil)
		return dispatcher.EndGroups
	}
	media, ok := reply.GetMedia()
	if !ok {
		ctx.Reply(update, ext.ReplyTextString("The replied message has no file"), nil)
		return dispatcher.EndGroups
	}
	meta, ok := utils.ExtractFileMeta(media)
	if !ok {
		ctx.Reply(update, ext.ReplyTextString("This media type is not indexed"), nil)
		return dispatcher.EndGroups
	}
	deleted, err := BotInstance.Engine.DeleteByFileID(ctx, meta.FileID)
	if err != nil {
		log.FromContext(ctx).Error("Failed to delete file", "file_id", meta.FileID, "error", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to delete file"), nil)
		return dispatcher.EndGroups
	}
	if deleted == 0 {
		ctx.Reply(update, ext.ReplyTextString("File not found in the index"), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(fmt.Sprintf("Deleted %d indexed copies", deleted)), nil)
	return dispatcher.EndGroups
}
