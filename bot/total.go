package bot

import (
	"fmt"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
)

// TotalHandler reports the index size. Open to everyone.
func TotalHandler(ctx *ext.Context, update *ext.Update) error {
	total, err := BotInstance.Engine.Count(ctx)
	if err != nil {
		log.FromContext(ctx).Error("Failed to count documents", "error", err)
		ctx.Reply(update, ext.ReplyTextString("Failed to count documents"), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(fmt.Sprintf("Total indexed files: %d", total)), nil)
	return dispatcher.EndGroups
}
