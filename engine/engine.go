package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/engine/bleve"
	"github.com/krau/mediadex/engine/meili"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
	"github.com/meilisearch/meilisearch-go"
)

type Searcher interface {
	// EnsureIndex creates the index with the expected settings if needed.
	EnsureIndex(ctx context.Context) error
	// AddDocuments upserts documents; re-indexing a message replaces it.
	AddDocuments(ctx context.Context, chatID int64, docs []*types.FileDocument) error
	// DeleteDocuments removes the documents of the given channel messages.
	DeleteDocuments(ctx context.Context, chatID int64, messageIDs []int) error
	// DeleteByFileID removes every document referencing a telegram file.
	DeleteByFileID(ctx context.Context, fileID int64) (int64, error)
	// DeleteChat purges all documents of one channel.
	DeleteChat(ctx context.Context, chatID int64) error
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}

var (
	_ Searcher = (*meili.Meilisearch)(nil)
	_ Searcher = (*bleve.BleveSearcher)(nil)
)

var instance Searcher

func GetEngine() Searcher {
	if instance == nil {
		panic("Engine not initialized, call NewEngine first")
	}
	return instance
}

func NewEngine(ctx context.Context) (Searcher, error) {
	if instance != nil {
		return instance, nil
	}
	log.FromContext(ctx).Debug("Initializing searcher", "engine_type", config.C.Engine.Type)

	engineType := strings.ToLower(config.C.Engine.Type)
	if engineType == "" {
		engineType = "meilisearch"
	}

	switch engineType {
	case "meilisearch":
		sm := meilisearch.New(config.C.Engine.Url, meilisearch.WithAPIKey(config.C.Engine.Key))
		// meilisearch usually starts alongside us, give it a moment
		err := backoff.Retry(func() error {
			_, err := sm.HealthWithContext(ctx)
			return err
		}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
			backoff.WithMaxInterval(5*time.Second)), 5), ctx))
		if err != nil {
			return nil, fmt.Errorf("meilisearch health check failed: %w", err)
		}
		instance = &meili.Meilisearch{
			Client: sm,
			Index:  config.C.Engine.Index,
		}
		log.FromContext(ctx).Info("Meilisearch engine initialized")

	case "bleve":
		searcher, err := bleve.NewBleveSearcher(config.C.Engine.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize bleve: %w", err)
		}
		instance = searcher
		log.FromContext(ctx).Info("Bleve engine initialized", "index_path", config.C.Engine.Path)

	default:
		return nil, fmt.Errorf("unsupported engine type: %s (supported: meilisearch, bleve)", config.C.Engine.Type)
	}

	if err := instance.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index: %w", err)
	}
	return instance, nil
}

// DocumentsFromMessages converts a history batch, dropping everything that
// carries no indexable file.
func DocumentsFromMessages(ctx context.Context, chatID int64, messages []*tg.Message) []*types.FileDocument {
	docs := make([]*types.FileDocument, 0, len(messages))
	for _, message := range messages {
		doc, ok := utils.DocumentFromMessage(chatID, message)
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}
