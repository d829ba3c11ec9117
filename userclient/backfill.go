package userclient

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram/query"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/engine"
)

// BackfillChannel indexes the whole history of one channel. The chat
// argument is either a numeric ID known to the session or a username.
func (u *UserClient) BackfillChannel(ctx context.Context, searcher engine.Searcher, chatArg string) error {
	logger := log.FromContext(ctx)
	ectx := u.GetContext()

	channel := &database.IndexChannel{Enabled: true}
	var inputPeer tg.InputPeerClass
	chatID, err := strconv.ParseInt(chatArg, 10, 64)
	if err != nil {
		effChat, err := ectx.ResolveUsername(strings.TrimPrefix(chatArg, "@"))
		if err != nil {
			return errors.Wrapf(err, "resolve %s", chatArg)
		}
		inputPeer = effChat.GetInputPeer()
		channel.ChatID = effChat.GetID()
		channel.Username = strings.TrimPrefix(chatArg, "@")
	} else {
		inputPeer = u.TClient.PeerStorage.GetInputPeerById(chatID)
		channel.ChatID = chatID
	}
	if inputPeer == nil || channel.ChatID == 0 {
		return errors.Errorf("chat %s not found", chatArg)
	}
	if _, ok := inputPeer.(*tg.InputPeerChannel); !ok {
		return errors.Errorf("%s is not a channel", chatArg)
	}
	if existing, err := database.GetIndexChannel(ctx, channel.ChatID); err == nil {
		existing.Enabled = true
		if channel.Username != "" {
			existing.Username = channel.Username
		}
		channel = existing
	}
	if err := database.UpsertIndexChannel(ctx, channel); err != nil {
		return errors.Wrap(err, "register channel")
	}

	builder := query.Messages(u.TClient.API()).GetHistory(inputPeer).BatchSize(100)
	total, err := builder.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "count history")
	}
	logger.Info("Backfilling channel", "chat_id", channel.ChatID, "total_messages", total)

	batch := make([]*tg.Message, 0, 100)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		docs := engine.DocumentsFromMessages(ctx, channel.ChatID, batch)
		if err := searcher.AddDocuments(ctx, channel.ChatID, docs); err != nil {
			logger.Errorf("Failed to add documents: %v", err)
		}
		batch = batch[:0]
	}
	processed := 0
	iter := builder.Iter()
	for iter.Next(ctx) {
		switch msg := iter.Value().Msg.(type) {
		case *tg.Message:
			batch = append(batch, msg)
			processed++
			if len(batch) >= 100 {
				logger.Debugf("Indexing batch %d/%d", processed, total)
				flush()
			}
		default:
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "iterate history")
	}
	flush()
	logger.Info("Backfill done", "chat_id", channel.ChatID, "messages_seen", processed)
	return nil
}

// BackfillAll runs BackfillChannel over every registered channel.
func (u *UserClient) BackfillAll(ctx context.Context, searcher engine.Searcher) error {
	channels, err := database.GetAllIndexChannels(ctx)
	if err != nil {
		return err
	}
	if len(channels) == 0 {
		return errors.New("no channels registered, pass one or set channels in the config")
	}
	for _, channel := range channels {
		if !channel.Enabled {
			continue
		}
		if err := u.BackfillChannel(ctx, searcher, strconv.FormatInt(channel.ChatID, 10)); err != nil {
			log.FromContext(ctx).Error("Backfill failed", "chat_id", channel.ChatID, "error", err)
		}
	}
	return nil
}
