package bot

import (
	"os"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/telegram/uploader"
	"github.com/gotd/td/tg"
)

// LogFilePath is where the run command tees its log output.
const LogFilePath = "data/logs/mediadex.log"

// LoggerHandler sends the current log file to the admin.
func LoggerHandler(ctx *ext.Context, update *ext.Update) error {
	if _, err := os.Stat(LogFilePath); err != nil {
		ctx.Reply(update, ext.ReplyTextString("No log file yet"), nil)
		return dispatcher.EndGroups
	}
	file, err := uploader.NewUploader(ctx.Raw).FromPath(ctx, LogFilePath)
	if err != nil {
		log.FromContext(ctx).Error("Failed to upload log file", "error", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to upload log file"), nil)
		return dispatcher.EndGroups
	}
	media := &tg.InputMediaUploadedDocument{
		File:     file,
		MimeType: "text/plain",
		Attributes: []tg.DocumentAttributeClass{
			&tg.DocumentAttributeFilename{FileName: "mediadex.log"},
		},
	}
	if _, err := ctx.SendMedia(update.EffectiveChat().GetID(), &tg.MessagesSendMediaRequest{
		Media: media,
	}); err != nil {
		log.FromContext(ctx).Error("Failed to send log file", "error", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to send log file"), nil)
	}
	return dispatcher.EndGroups
}
