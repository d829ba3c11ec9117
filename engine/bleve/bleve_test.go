package bleve

import (
	"context"
	"os"
	"testing"

	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
)

func newTestSearcher(t *testing.T) *BleveSearcher {
	t.Helper()
	tmpDir := t.TempDir()
	searcher, err := NewBleveSearcher(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create searcher: %v", err)
	}
	if err := searcher.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("Failed to ensure index: %v", err)
	}
	t.Cleanup(func() {
		searcher.Close()
		os.RemoveAll(tmpDir)
	})
	return searcher
}

func TestBleveSearchAndTypeFilter(t *testing.T) {
	searcher := newTestSearcher(t)
	ctx := context.Background()
	chatID := int64(12345)

	docs := []*types.FileDocument{
		{
			MessageID:  1,
			FileID:     9007199254740993, // above 2^53, must survive round-trip
			AccessHash: -7234567890123456789,
			FileRef:    "AQID",
			FileName:   "The.Matrix.1999.mkv",
			FileSize:   1 << 30,
			MimeType:   "video/x-matroska",
			Type:       int(types.FileTypeVideo),
			Timestamp:  1000,
		},
		{
			MessageID: 2,
			FileID:    200,
			FileName:  "matrix-soundtrack.mp3",
			MimeType:  "audio/mpeg",
			Type:      int(types.FileTypeAudio),
			Timestamp: 2000,
		},
		{
			MessageID: 3,
			FileID:    300,
			FileName:  "report.pdf",
			MimeType:  "application/pdf",
			Type:      int(types.FileTypeDocument),
			Timestamp: 3000,
		},
	}
	if err := searcher.AddDocuments(ctx, chatID, docs); err != nil {
		t.Fatalf("Failed to add documents: %v", err)
	}

	t.Run("KeywordMatchesFileName", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{ChatID: chatID, Query: "matrix"})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 2 {
			t.Fatalf("Expected 2 hits, got %d", len(resp.Hits))
		}
		// newest first
		if resp.Hits[0].MessageID != 2 || resp.Hits[1].MessageID != 1 {
			t.Errorf("Unexpected order: %d, %d", resp.Hits[0].MessageID, resp.Hits[1].MessageID)
		}
	})

	t.Run("TypeFilterNarrowsKeyword", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{
			ChatID:      chatID,
			Query:       "matrix",
			TypeFilters: []types.FileType{types.FileTypeVideo},
		})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 1 {
			t.Fatalf("Expected 1 hit, got %d", len(resp.Hits))
		}
		if resp.Hits[0].FileName != "The.Matrix.1999.mkv" {
			t.Errorf("Unexpected hit: %s", resp.Hits[0].FileName)
		}
	})

	t.Run("EmptyQueryListsByRecency", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{ChatID: chatID})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 3 {
			t.Fatalf("Expected 3 hits, got %d", len(resp.Hits))
		}
		if resp.Hits[0].MessageID != 3 {
			t.Errorf("Expected newest message first, got %d", resp.Hits[0].MessageID)
		}
	})

	t.Run("IdentifiersSurviveRoundTrip", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{
			ChatID:      chatID,
			Query:       "matrix",
			TypeFilters: []types.FileType{types.FileTypeVideo},
		})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		hit := resp.Hits[0]
		if hit.FileID != 9007199254740993 {
			t.Errorf("FileID = %d, want 9007199254740993", hit.FileID)
		}
		if hit.AccessHash != -7234567890123456789 {
			t.Errorf("AccessHash = %d", hit.AccessHash)
		}
		if hit.FileRef != "AQID" {
			t.Errorf("FileRef = %q", hit.FileRef)
		}
		if hit.ID != utils.DocumentID(chatID, int(hit.MessageID)) {
			t.Errorf("ID = %d not derived from (%d, %d)", hit.ID, chatID, hit.MessageID)
		}
	})

	t.Run("OtherChatSeesNothing", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{ChatID: 999, Query: "matrix"})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 0 {
			t.Errorf("Expected 0 hits, got %d", len(resp.Hits))
		}
	})

	t.Run("ChatIDRequired", func(t *testing.T) {
		if _, err := searcher.Search(ctx, types.SearchRequest{Query: "matrix"}); err == nil {
			t.Error("Expected error for request without chat scope")
		}
	})
}

func TestBlevePagination(t *testing.T) {
	searcher := newTestSearcher(t)
	ctx := context.Background()
	chatID := int64(777)

	docs := make([]*types.FileDocument, 0, 25)
	for i := 1; i <= 25; i++ {
		docs = append(docs, &types.FileDocument{
			MessageID: int64(i),
			FileID:    int64(i),
			FileName:  "episode.mkv",
			Type:      int(types.FileTypeVideo),
			Timestamp: int64(i * 10),
		})
	}
	if err := searcher.AddDocuments(ctx, chatID, docs); err != nil {
		t.Fatalf("Failed to add documents: %v", err)
	}

	var seen []int64
	for offset := int64(0); ; offset += 10 {
		resp, err := searcher.Search(ctx, types.SearchRequest{
			ChatID: chatID,
			Query:  "episode",
			Limit:  10,
			Offset: offset,
		})
		if err != nil {
			t.Fatalf("Search failed at offset %d: %v", offset, err)
		}
		if resp.EstimatedTotalHits != 25 {
			t.Errorf("EstimatedTotalHits = %d, want 25", resp.EstimatedTotalHits)
		}
		for _, hit := range resp.Hits {
			seen = append(seen, hit.MessageID)
		}
		if !resp.HasMore() {
			break
		}
	}
	if len(seen) != 25 {
		t.Fatalf("Paged through %d hits, want 25", len(seen))
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] >= seen[i-1] {
			t.Fatalf("Hits not in recency order: %v", seen)
		}
	}
}
