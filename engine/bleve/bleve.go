package bleve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
)

// BleveSearcher keeps the whole file index in a single local bleve index,
// mirroring the single-collection layout of the meilisearch backend.
type BleveSearcher struct {
	indexPath string
	index     bleve.Index
}

func NewBleveSearcher(indexPath string) (*BleveSearcher, error) {
	if err := os.MkdirAll(indexPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	return &BleveSearcher{indexPath: indexPath}, nil
}

func createIndexMapping() *mapping.IndexMappingImpl {
	fileMapping := bleve.NewDocumentMapping()

	fileNameMapping := bleve.NewTextFieldMapping()
	fileMapping.AddFieldMappingsAt("file_name", fileNameMapping)

	captionMapping := bleve.NewTextFieldMapping()
	fileMapping.AddFieldMappingsAt("caption", captionMapping)

	// int64 document/access identifiers are stored as keyword text:
	// bleve numerics are float64 and would mangle them
	for _, field := range []string{"file_id", "access_hash", "file_ref", "mime_type"} {
		keywordMapping := bleve.NewTextFieldMapping()
		keywordMapping.Analyzer = keyword.Name
		fileMapping.AddFieldMappingsAt(field, keywordMapping)
	}

	for _, field := range []string{"chat_id", "message_id", "type", "file_size", "timestamp"} {
		fileMapping.AddFieldMappingsAt(field, bleve.NewNumericFieldMapping())
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("file", fileMapping)
	indexMapping.DefaultMapping = fileMapping
	return indexMapping
}

// EnsureIndex implements engine.Searcher.
func (b *BleveSearcher) EnsureIndex(ctx context.Context) error {
	if b.index != nil {
		return nil
	}
	indexFullPath := b.indexFile()
	if _, err := os.Stat(indexFullPath); err == nil {
		idx, err := bleve.Open(indexFullPath)
		if err != nil {
			return fmt.Errorf("failed to open index: %w", err)
		}
		b.index = idx
		return nil
	}
	idx, err := bleve.New(indexFullPath, createIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	b.index = idx
	log.FromContext(ctx).Debug("Created new index", "path", indexFullPath)
	return nil
}

func (b *BleveSearcher) indexFile() string {
	return filepath.Join(b.indexPath, "mediadex.bleve")
}

// AddDocuments implements engine.Searcher.
func (b *BleveSearcher) AddDocuments(ctx context.Context, chatID int64, docs []*types.FileDocument) error {
	docs = slice.Compact(docs)
	if len(docs) == 0 {
		return nil
	}
	batch := b.index.NewBatch()
	for _, doc := range docs {
		doc.ChatID = chatID
		doc.ID = utils.DocumentID(chatID, int(doc.MessageID))
		docID := strconv.FormatInt(doc.ID, 10)
		if err := batch.Index(docID, map[string]any{
			"file_name":   doc.FileName,
			"caption":     doc.Caption,
			"file_id":     strconv.FormatInt(doc.FileID, 10),
			"access_hash": strconv.FormatInt(doc.AccessHash, 10),
			"file_ref":    doc.FileRef,
			"mime_type":   doc.MimeType,
			"chat_id":     doc.ChatID,
			"message_id":  doc.MessageID,
			"type":        doc.Type,
			"file_size":   doc.FileSize,
			"timestamp":   doc.Timestamp,
		}); err != nil {
			log.FromContext(ctx).Warn("Failed to add document to batch", "doc_id", docID, "error", err)
			continue
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	return nil
}

// DeleteDocuments implements engine.Searcher.
func (b *BleveSearcher) DeleteDocuments(ctx context.Context, chatID int64, messageIDs []int) error {
	messageIDs = slice.Compact(messageIDs)
	if len(messageIDs) == 0 {
		return nil
	}
	batch := b.index.NewBatch()
	for _, id := range messageIDs {
		batch.Delete(strconv.FormatInt(utils.DocumentID(chatID, id), 10))
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}
	log.FromContext(ctx).Debug("Deleted documents", "chat_id", chatID, "count", len(messageIDs))
	return nil
}

// DeleteByFileID implements engine.Searcher.
func (b *BleveSearcher) DeleteByFileID(ctx context.Context, fileID int64) (int64, error) {
	q := query.NewTermQuery(strconv.FormatInt(fileID, 10))
	q.SetField("file_id")
	req := bleve.NewSearchRequest(q)
	req.Size = 1000
	result, err := b.index.Search(req)
	if err != nil {
		return 0, err
	}
	if len(result.Hits) == 0 {
		return 0, nil
	}
	batch := b.index.NewBatch()
	for _, hit := range result.Hits {
		batch.Delete(hit.ID)
	}
	if err := b.index.Batch(batch); err != nil {
		return 0, fmt.Errorf("failed to execute batch: %w", err)
	}
	return int64(len(result.Hits)), nil
}

// DeleteChat implements engine.Searcher.
func (b *BleveSearcher) DeleteChat(ctx context.Context, chatID int64) error {
	chatFloat := float64(chatID)
	q := query.NewNumericRangeInclusiveQuery(&chatFloat, &chatFloat, boolPtr(true), boolPtr(true))
	q.SetField("chat_id")
	for {
		req := bleve.NewSearchRequest(q)
		req.Size = 1000
		result, err := b.index.Search(req)
		if err != nil {
			return err
		}
		if len(result.Hits) == 0 {
			return nil
		}
		batch := b.index.NewBatch()
		for _, hit := range result.Hits {
			batch.Delete(hit.ID)
		}
		if err := b.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute batch: %w", err)
		}
	}
}

func (b *BleveSearcher) buildQuery(req types.SearchRequest) query.Query {
	var mustQueries []query.Query

	if req.Query != "" {
		textQueries := make([]query.Query, 0, 2)
		nameQuery := query.NewMatchQuery(req.Query)
		nameQuery.SetField("file_name")
		textQueries = append(textQueries, nameQuery)
		if req.WithCaption {
			captionQuery := query.NewMatchQuery(req.Query)
			captionQuery.SetField("caption")
			textQueries = append(textQueries, captionQuery)
		}
		if len(textQueries) == 1 {
			mustQueries = append(mustQueries, textQueries[0])
		} else {
			mustQueries = append(mustQueries, query.NewDisjunctionQuery(textQueries))
		}
	}

	if !req.AllChats {
		chatIDs := req.ChatIDs
		if req.ChatID != 0 {
			chatIDs = []int64{req.ChatID}
		}
		if len(chatIDs) > 0 {
			chatQueries := make([]query.Query, 0, len(chatIDs))
			for _, chatID := range chatIDs {
				chatFloat := float64(chatID)
				numQuery := query.NewNumericRangeInclusiveQuery(&chatFloat, &chatFloat, boolPtr(true), boolPtr(true))
				numQuery.SetField("chat_id")
				chatQueries = append(chatQueries, numQuery)
			}
			mustQueries = append(mustQueries, query.NewDisjunctionQuery(chatQueries))
		}
	}

	if len(req.TypeFilters) > 0 {
		typeQueries := make([]query.Query, 0, len(req.TypeFilters))
		for _, fileType := range req.TypeFilters {
			typeFloat := float64(fileType)
			numQuery := query.NewNumericRangeInclusiveQuery(&typeFloat, &typeFloat, boolPtr(true), boolPtr(true))
			numQuery.SetField("type")
			typeQueries = append(typeQueries, numQuery)
		}
		mustQueries = append(mustQueries, query.NewDisjunctionQuery(typeQueries))
	}

	switch len(mustQueries) {
	case 0:
		return query.NewMatchAllQuery()
	case 1:
		return mustQueries[0]
	default:
		return query.NewConjunctionQuery(mustQueries)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

// Search implements engine.Searcher.
func (b *BleveSearcher) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResponse, error) {
	if !req.AllChats && req.ChatID == 0 && len(req.ChatIDs) == 0 {
		return nil, fmt.Errorf("ChatID is required")
	}
	limit := req.Limit
	if limit == 0 {
		limit = types.PerSearchLimit
	}

	searchRequest := bleve.NewSearchRequest(b.buildQuery(req))
	searchRequest.Size = int(limit)
	searchRequest.From = int(req.Offset)
	searchRequest.SortBy([]string{"-timestamp", "-message_id"})
	searchRequest.Fields = []string{"*"}

	log.FromContext(ctx).Debug("Searching",
		"query", req.Query,
		"type_filters", req.TypeFilters,
		"with_caption", req.WithCaption,
		"offset", req.Offset)

	searchResult, err := b.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]types.SearchHit, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		searchHit := types.SearchHit{}
		searchHit.ChatID = fieldInt64(hit.Fields["chat_id"])
		searchHit.MessageID = fieldInt64(hit.Fields["message_id"])
		searchHit.ID = utils.DocumentID(searchHit.ChatID, int(searchHit.MessageID))
		searchHit.Type = int(fieldInt64(hit.Fields["type"]))
		searchHit.FileSize = fieldInt64(hit.Fields["file_size"])
		searchHit.Timestamp = fieldInt64(hit.Fields["timestamp"])
		searchHit.FileID = fieldInt64(hit.Fields["file_id"])
		searchHit.AccessHash = fieldInt64(hit.Fields["access_hash"])
		if s, ok := hit.Fields["file_ref"].(string); ok {
			searchHit.FileRef = s
		}
		if s, ok := hit.Fields["mime_type"].(string); ok {
			searchHit.MimeType = s
		}
		if s, ok := hit.Fields["file_name"].(string); ok {
			searchHit.FileName = s
		}
		if s, ok := hit.Fields["caption"].(string); ok {
			searchHit.Caption = s
		}
		searchHit.Formatted.FileName = searchHit.FileName
		searchHit.Formatted.Caption = snippet(searchHit.Caption, req.Query)
		hits = append(hits, searchHit)
	}

	return &types.SearchResponse{
		Raw:                searchResult,
		Hits:               hits,
		EstimatedTotalHits: int64(searchResult.Total),
		ProcessingTimeMs:   searchResult.Took.Milliseconds(),
		Offset:             req.Offset,
		Limit:              limit,
	}, nil
}

// Count implements engine.Searcher.
func (b *BleveSearcher) Count(ctx context.Context) (int64, error) {
	count, err := b.index.DocCount()
	if err != nil {
		return 0, err
	}
	return int64(count), nil
}

// Close implements engine.Searcher.
func (b *BleveSearcher) Close() error {
	if b.index == nil {
		return nil
	}
	err := b.index.Close()
	b.index = nil
	return err
}

// fieldInt64 reads a stored field that bleve returns either as float64
// (numeric mappings) or string (the keyword-mapped identifiers).
func fieldInt64(v any) int64 {
	switch v := v.(type) {
	case float64:
		return int64(v)
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// snippet crops the caption around the first query keyword occurrence.
func snippet(caption, q string) string {
	const maxLen = 120
	caption = strings.TrimSpace(caption)
	if caption == "" || utf8.RuneCountInString(caption) <= maxLen {
		return caption
	}
	runes := []rune(caption)
	start := 0
	if q != "" {
		lower := strings.ToLower(caption)
		for _, word := range strings.Fields(strings.ToLower(q)) {
			if idx := strings.Index(lower, word); idx != -1 {
				start = utf8.RuneCountInString(caption[:idx])
				break
			}
		}
	}
	if start > 20 {
		start -= 20
	} else {
		start = 0
	}
	end := start + maxLen
	if end > len(runes) {
		end = len(runes)
	}
	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}
