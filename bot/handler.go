package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/config"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/dispatcher/handlers"
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/ext"
)

func CheckPermission(ctx *ext.Context, update *ext.Update) bool {
	chat := update.GetUserChat()
	if chat == nil {
		return false
	}
	return slice.Contain(config.C.Admins, chat.GetID())
}

// CheckInlineAllowed gates inline mode on the auth_users list. An empty
// list makes inline search public.
func CheckInlineAllowed(userID int64) bool {
	if len(config.C.AuthUsers) == 0 {
		return true
	}
	return slice.Contain(config.C.AuthUsers, userID) || slice.Contain(config.C.Admins, userID)
}

type botCommand struct {
	Name        string
	Description string
	AdminOnly   bool
	Handler     func(ctx *ext.Context, update *ext.Update) error
}

// botCommands is the single source of truth for command registration,
// the bot command menu scopes and admin gating.
var botCommands = []botCommand{
	{"start", "About this bot", false, StartHandler},
	{"help", "Help", false, StartHandler},
	{"search", "Search indexed files", false, SearchHandler},
	{"total", "Total indexed files", false, TotalHandler},
	{"channel", "Show channel info", true, ChannelHandler},
	{"logger", "Send the log file", true, LoggerHandler},
	{"del", "Delete a file from the index (reply)", true, DelFileHandler},
	{"add", "Add a channel to the index", true, AddHandler},
	{"rm", "Remove a channel and its index", true, RemoveHandler},
	{"ls", "List indexed channels", true, ListHandler},
}

func requireAdmin(next func(ctx *ext.Context, update *ext.Update) error) func(ctx *ext.Context, update *ext.Update) error {
	return func(ctx *ext.Context, update *ext.Update) error {
		if !CheckPermission(ctx, update) {
			return dispatcher.EndGroups
		}
		return next(ctx, update)
	}
}

func (b *Bot) RegisterHandlers(ctx context.Context) {
	disp := b.Client.Dispatcher
	disp.AddHandlerToGroup(handlers.NewAnyUpdate(DeletedMessagesHandler), 1)
	disp.AddHandlerToGroup(handlers.NewMessage(filters.Message.All, IndexMessageHandler), 2)
	disp.AddHandler(handlers.NewInlineQuery(func(iq *tg.UpdateBotInlineQuery) bool { return true }, InlineQueryHandler))
	for _, cmd := range botCommands {
		handler := cmd.Handler
		if cmd.AdminOnly {
			handler = requireAdmin(handler)
		}
		disp.AddHandler(handlers.NewCommand(cmd.Name, handler))
	}
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix("search"), SearchCallbackHandler))
	disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix("filter"), FilterCallbackHandler))

	publicCommands := make([]tg.BotCommand, 0, len(botCommands))
	allCommands := make([]tg.BotCommand, 0, len(botCommands))
	for _, cmd := range botCommands {
		entry := tg.BotCommand{Command: cmd.Name, Description: cmd.Description}
		allCommands = append(allCommands, entry)
		if !cmd.AdminOnly {
			publicCommands = append(publicCommands, entry)
		}
	}
	_, err := b.Client.API().BotsSetBotCommands(ctx, &tg.BotsSetBotCommandsRequest{
		Scope:    &tg.BotCommandScopeDefault{},
		Commands: publicCommands,
	})
	if err != nil {
		log.FromContext(ctx).Error("Failed to set bot commands", "error", err)
	}
	for _, adminID := range config.C.Admins {
		peer := b.Client.PeerStorage.GetInputPeerById(adminID)
		if peer == nil {
			continue
		}
		if _, err = b.Client.API().BotsSetBotCommands(ctx, &tg.BotsSetBotCommandsRequest{
			Scope: &tg.BotCommandScopePeer{
				Peer: peer,
			},
			Commands: allCommands,
		}); err != nil {
			log.FromContext(ctx).Error("Failed to set bot commands", "error", err)
		}
	}
}
