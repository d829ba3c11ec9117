package bleve

import (
	"context"
	"strings"
	"testing"

	"github.com/krau/mediadex/types"
)

func TestBleveCaptionMatching(t *testing.T) {
	searcher := newTestSearcher(t)
	ctx := context.Background()
	chatID := int64(555)

	docs := []*types.FileDocument{
		{
			MessageID: 1,
			FileID:    1,
			FileName:  "lecture-01.mp4",
			Caption:   "introduction to compilers",
			Type:      int(types.FileTypeVideo),
			Timestamp: 100,
		},
		{
			MessageID: 2,
			FileID:    2,
			FileName:  "compilers-handbook.pdf",
			Type:      int(types.FileTypeDocument),
			Timestamp: 200,
		},
	}
	if err := searcher.AddDocuments(ctx, chatID, docs); err != nil {
		t.Fatalf("Failed to add documents: %v", err)
	}

	t.Run("WithoutCaptionOnlyFileNames", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{
			ChatID: chatID,
			Query:  "compilers",
		})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 1 {
			t.Fatalf("Expected 1 hit, got %d", len(resp.Hits))
		}
		if resp.Hits[0].FileName != "compilers-handbook.pdf" {
			t.Errorf("Unexpected hit: %s", resp.Hits[0].FileName)
		}
	})

	t.Run("WithCaptionMatchesBoth", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{
			ChatID:      chatID,
			Query:       "compilers",
			WithCaption: true,
		})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 2 {
			t.Fatalf("Expected 2 hits, got %d", len(resp.Hits))
		}
	})

	t.Run("CaptionOnlyTermNeedsCaptionFilter", func(t *testing.T) {
		resp, err := searcher.Search(ctx, types.SearchRequest{
			ChatID: chatID,
			Query:  "introduction",
		})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(resp.Hits) != 0 {
			t.Errorf("Expected 0 hits without caption matching, got %d", len(resp.Hits))
		}
	})
}

func TestSnippet(t *testing.T) {
	if got := snippet("short caption", "caption"); got != "short caption" {
		t.Errorf("snippet() = %q", got)
	}
	long := ""
	for range 30 {
		long += "padding words here "
	}
	long += "needle in the haystack"
	got := snippet(long, "needle")
	if len(got) == 0 || len([]rune(got)) > 130 {
		t.Errorf("snippet too long: %q", got)
	}
	if !strings.Contains(got, "needle") {
		t.Errorf("snippet lost the match: %q", got)
	}
}
