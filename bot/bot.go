package bot

import (
	"context"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/charmbracelet/log"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/engine"
	"github.com/krau/mediadex/middlewares"
	"github.com/ncruces/go-sqlite3/gormlite"
)

var BotInstance *Bot

type Bot struct {
	Client *gotgproto.Client
	Engine engine.Searcher
}

func (b *Bot) Start(ctx context.Context) {
	log := log.FromContext(ctx)
	log.Info("Starting bot...", "username", b.Client.Self.Username)

	b.RegisterHandlers(ctx)
	b.seedChannels(ctx)

	<-ctx.Done()
	log.Info("Exiting...")
}

// seedChannels registers the channels listed in the config so their new
// posts get indexed without an explicit /add.
func (b *Bot) seedChannels(ctx context.Context) {
	log := log.FromContext(ctx)
	for _, chatID := range config.C.Channels {
		if _, err := database.GetIndexChannel(ctx, chatID); err == nil {
			continue
		}
		if err := database.UpsertIndexChannel(ctx, &database.IndexChannel{
			ChatID:  chatID,
			Enabled: true,
		}); err != nil {
			log.Errorf("Failed to register channel %d: %v", chatID, err)
		}
	}
}

func NewBot(ctx context.Context, engine engine.Searcher) (*Bot, error) {
	log := log.FromContext(ctx)
	log.Debug("Initializing bot")
	if BotInstance != nil {
		return BotInstance, nil
	}
	res := make(chan struct {
		client *gotgproto.Client
		err    error
	})
	go func() {
		tclient, err := gotgproto.NewClient(
			config.C.AppID,
			config.C.AppHash,
			gotgproto.ClientTypeBot(config.C.BotToken),
			&gotgproto.ClientOpts{
				Session:          sessionMaker.SqlSession(gormlite.Open("data/session_bot.db")),
				DisableCopyright: true,
				Middlewares:      middlewares.FloodWait(),
				Context:          ctx,
			},
		)
		res <- struct {
			client *gotgproto.Client
			err    error
		}{client: tclient, err: err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-res:
		if r.err != nil {
			return nil, r.err
		}
		b := &Bot{
			Client: r.client,
			Engine: engine,
		}
		BotInstance = b
		return BotInstance, nil
	}
}
