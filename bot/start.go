package bot

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/config"
)

func StartHandler(ctx *ext.Context, update *ext.Update) error {
	rows := []tg.KeyboardButtonRow{
		{
			Buttons: []tg.KeyboardButtonClass{
				&tg.KeyboardButtonSwitchInline{
					Text:     "Search here",
					Query:    "",
					SamePeer: true,
				},
				&tg.KeyboardButtonSwitchInline{
					Text:  "Search in a chat",
					Query: "",
				},
			},
		},
	}
	if config.C.ChannelLink != "" {
		rows = append(rows, tg.KeyboardButtonRow{
			Buttons: []tg.KeyboardButtonClass{
				&tg.KeyboardButtonURL{
					Text: "Updates channel",
					URL:  config.C.ChannelLink,
				},
			},
		})
	}
	ctx.Reply(update, ext.ReplyTextString(config.C.StartMessage), &ext.ReplyOpts{
		Markup: &tg.ReplyInlineMarkup{Rows: rows},
	})
	return dispatcher.EndGroups
}
