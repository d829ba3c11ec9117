package bleve

import (
	"context"
	"testing"

	"github.com/krau/mediadex/types"
)

func TestBleveDeletes(t *testing.T) {
	searcher := newTestSearcher(t)
	ctx := context.Background()
	chatA := int64(100)
	chatB := int64(200)

	add := func(chatID int64, msgID int64, fileID int64) {
		t.Helper()
		err := searcher.AddDocuments(ctx, chatID, []*types.FileDocument{{
			MessageID: msgID,
			FileID:    fileID,
			FileName:  "shared.zip",
			Type:      int(types.FileTypeDocument),
			Timestamp: msgID,
		}})
		if err != nil {
			t.Fatalf("Failed to add document: %v", err)
		}
	}
	add(chatA, 1, 111)
	add(chatA, 2, 222)
	add(chatA, 3, 222) // same file re-posted
	add(chatB, 1, 333)

	count := func() int64 {
		t.Helper()
		n, err := searcher.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		return n
	}
	if count() != 4 {
		t.Fatalf("Count = %d, want 4", count())
	}

	t.Run("ReindexIsUpsert", func(t *testing.T) {
		add(chatA, 1, 111)
		if count() != 4 {
			t.Errorf("Count after re-index = %d, want 4", count())
		}
	})

	t.Run("DeleteByMessageIDs", func(t *testing.T) {
		if err := searcher.DeleteDocuments(ctx, chatA, []int{1}); err != nil {
			t.Fatalf("DeleteDocuments failed: %v", err)
		}
		if count() != 3 {
			t.Errorf("Count = %d, want 3", count())
		}
	})

	t.Run("DeleteByFileIDRemovesAllCopies", func(t *testing.T) {
		n, err := searcher.DeleteByFileID(ctx, 222)
		if err != nil {
			t.Fatalf("DeleteByFileID failed: %v", err)
		}
		if n != 2 {
			t.Errorf("Deleted %d documents, want 2", n)
		}
		if count() != 1 {
			t.Errorf("Count = %d, want 1", count())
		}
	})

	t.Run("DeleteByFileIDMissing", func(t *testing.T) {
		n, err := searcher.DeleteByFileID(ctx, 999)
		if err != nil {
			t.Fatalf("DeleteByFileID failed: %v", err)
		}
		if n != 0 {
			t.Errorf("Deleted %d documents, want 0", n)
		}
	})

	t.Run("DeleteChatPurges", func(t *testing.T) {
		if err := searcher.DeleteChat(ctx, chatB); err != nil {
			t.Fatalf("DeleteChat failed: %v", err)
		}
		if count() != 0 {
			t.Errorf("Count = %d, want 0", count())
		}
	})
}
