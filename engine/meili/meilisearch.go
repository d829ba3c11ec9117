package meili

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
	"github.com/meilisearch/meilisearch-go"
)

type Meilisearch struct {
	Client meilisearch.ServiceManager
	Index  string
	mu     sync.Mutex
}

// EnsureIndex implements engine.Searcher.
func (m *Meilisearch) EnsureIndex(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	index := m.Client.Index(m.Index)
	_, err := index.FetchInfoWithContext(ctx)
	if err == nil {
		return nil
	}
	_, err = m.Client.CreateIndexWithContext(ctx, &meilisearch.IndexConfig{
		Uid:        m.Index,
		PrimaryKey: "id",
	})
	if err != nil {
		return err
	}
	_, err = index.UpdateSettingsWithContext(ctx, &meilisearch.Settings{
		FilterableAttributes: []string{
			"chat_id",
			"type",
			"file_id",
			"timestamp",
		},
		SortableAttributes: []string{
			"timestamp",
			"id",
		},
		SearchableAttributes: []string{
			"file_name", "caption",
		},
	})
	return err
}

// AddDocuments implements engine.Searcher.
func (m *Meilisearch) AddDocuments(ctx context.Context, chatID int64, docs []*types.FileDocument) error {
	docs = slice.Compact(docs)
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		docs[i].ChatID = chatID
		docs[i].ID = utils.DocumentID(chatID, int(docs[i].MessageID))
	}
	jsonData, err := sonic.Marshal(docs)
	if err != nil {
		return err
	}
	primaryKey := "id"
	_, err = m.Client.Index(m.Index).UpdateDocumentsWithContext(ctx, jsonData, &primaryKey)
	return err
}

// DeleteDocuments implements engine.Searcher.
func (m *Meilisearch) DeleteDocuments(ctx context.Context, chatID int64, messageIDs []int) error {
	messageIDs = slice.Compact(messageIDs)
	idsStr := make([]string, len(messageIDs))
	for i, id := range messageIDs {
		idsStr[i] = fmt.Sprintf("%d", utils.DocumentID(chatID, id))
	}
	_, err := m.Client.Index(m.Index).DeleteDocumentsWithContext(ctx, idsStr)
	return err
}

// DeleteByFileID implements engine.Searcher.
func (m *Meilisearch) DeleteByFileID(ctx context.Context, fileID int64) (int64, error) {
	req := types.SearchRequest{AllChats: true, Limit: 1}
	matched, err := m.searchByFileID(ctx, fileID, req)
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, nil
	}
	_, err = m.Client.Index(m.Index).DeleteDocumentsByFilterWithContext(ctx, fmt.Sprintf("file_id = %d", fileID))
	return matched, err
}

func (m *Meilisearch) searchByFileID(ctx context.Context, fileID int64, req types.SearchRequest) (int64, error) {
	resp, err := m.Client.Index(m.Index).SearchWithContext(ctx, "", &meilisearch.SearchRequest{
		Filter: fmt.Sprintf("file_id = %d", fileID),
		Limit:  req.Limit,
	})
	if err != nil {
		return 0, err
	}
	return resp.EstimatedTotalHits, nil
}

// DeleteChat implements engine.Searcher.
func (m *Meilisearch) DeleteChat(ctx context.Context, chatID int64) error {
	// deleting a channel index means deleting all of its documents
	if _, err := m.Client.Index(m.Index).DeleteDocumentsByFilterWithContext(ctx, fmt.Sprintf("chat_id = %d", chatID)); err != nil {
		return err
	}
	return nil
}

// Search implements engine.Searcher.
func (m *Meilisearch) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	if !req.AllChats && req.ChatID == 0 && len(req.ChatIDs) == 0 {
		return nil, fmt.Errorf("ChatID is required")
	}
	limit := req.Limit
	if limit == 0 {
		limit = types.PerSearchLimit
	}
	searchOnAttrs := []string{"file_name"}
	if req.WithCaption {
		searchOnAttrs = append(searchOnAttrs, "caption")
	}
	request := &meilisearch.SearchRequest{
		Offset:               req.Offset,
		Limit:                limit,
		AttributesToSearchOn: searchOnAttrs,
		AttributesToCrop:     []string{"caption"},
		Sort:                 []string{"timestamp:desc"},
	}
	if expr := req.FilterExpression(); expr != "" {
		request.Filter = expr
	}
	log.FromContext(ctx).Debug("Searching", "query", req.Query, "offset", req.Offset, "filter", request.Filter)
	resp, err := m.Client.Index(m.Index).SearchWithContext(ctx, req.Query, request)
	if err != nil {
		return nil, err
	}
	hitBytes, err := sonic.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var hits []types.SearchHit
	if err := sonic.Unmarshal(hitBytes, &hits); err != nil {
		return nil, err
	}
	return &types.SearchResponse{
		Raw:                resp,
		Hits:               hits,
		EstimatedTotalHits: resp.EstimatedTotalHits,
		ProcessingTimeMs:   resp.ProcessingTimeMs,
		Offset:             resp.Offset,
		Limit:              resp.Limit,
	}, nil
}

// Count implements engine.Searcher.
func (m *Meilisearch) Count(ctx context.Context) (int64, error) {
	stats, err := m.Client.Index(m.Index).GetStatsWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return stats.NumberOfDocuments, nil
}

// Close implements engine.Searcher.
func (m *Meilisearch) Close() error {
	return nil
}
