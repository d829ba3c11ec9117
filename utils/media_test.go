package utils

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/types"
)

func mediaDocument(attrs ...tg.DocumentAttributeClass) *tg.MessageMediaDocument {
	doc := &tg.Document{
		ID:            12345,
		AccessHash:    67890,
		FileReference: []byte{1, 2, 3},
		MimeType:      "application/pdf",
		Size:          2048,
		Attributes:    attrs,
	}
	media := &tg.MessageMediaDocument{}
	media.SetDocument(doc)
	return media
}

func TestExtractFileMeta(t *testing.T) {
	t.Run("Document", func(t *testing.T) {
		meta, ok := ExtractFileMeta(mediaDocument(&tg.DocumentAttributeFilename{FileName: "report.pdf"}))
		if !ok {
			t.Fatal("Expected media to be indexable")
		}
		if meta.FileName != "report.pdf" {
			t.Errorf("FileName = %q", meta.FileName)
		}
		if meta.Type != types.FileTypeDocument {
			t.Errorf("Type = %v", meta.Type)
		}
		if meta.FileID != 12345 || meta.AccessHash != 67890 || meta.FileSize != 2048 {
			t.Errorf("Identifiers not extracted: %+v", meta)
		}
	})

	t.Run("VideoAttribute", func(t *testing.T) {
		meta, ok := ExtractFileMeta(mediaDocument(
			&tg.DocumentAttributeFilename{FileName: "clip.mp4"},
			&tg.DocumentAttributeVideo{},
		))
		if !ok {
			t.Fatal("Expected media to be indexable")
		}
		if meta.Type != types.FileTypeVideo {
			t.Errorf("Type = %v, want video", meta.Type)
		}
	})

	t.Run("AnimatedBeatsVideo", func(t *testing.T) {
		meta, ok := ExtractFileMeta(mediaDocument(
			&tg.DocumentAttributeVideo{},
			&tg.DocumentAttributeAnimated{},
		))
		if !ok {
			t.Fatal("Expected media to be indexable")
		}
		if meta.Type != types.FileTypeAnimation {
			t.Errorf("Type = %v, want animation", meta.Type)
		}
	})

	t.Run("VoiceNote", func(t *testing.T) {
		meta, ok := ExtractFileMeta(mediaDocument(&tg.DocumentAttributeAudio{Voice: true}))
		if !ok {
			t.Fatal("Expected media to be indexable")
		}
		if meta.Type != types.FileTypeVoice {
			t.Errorf("Type = %v, want voice", meta.Type)
		}
	})

	t.Run("AudioTitleAsFallbackName", func(t *testing.T) {
		attr := &tg.DocumentAttributeAudio{}
		attr.SetPerformer("Aphex Twin")
		attr.SetTitle("Avril 14th")
		meta, ok := ExtractFileMeta(mediaDocument(attr))
		if !ok {
			t.Fatal("Expected media to be indexable")
		}
		if meta.FileName != "Aphex Twin - Avril 14th" {
			t.Errorf("FileName = %q", meta.FileName)
		}
		if meta.Type != types.FileTypeAudio {
			t.Errorf("Type = %v, want audio", meta.Type)
		}
	})

	t.Run("NoFilenameAttribute", func(t *testing.T) {
		meta, ok := ExtractFileMeta(mediaDocument())
		if !ok {
			t.Fatal("Expected media to be indexable")
		}
		if meta.FileName != "" {
			t.Errorf("FileName = %q, want empty", meta.FileName)
		}
	})

	t.Run("StickerSkipped", func(t *testing.T) {
		if _, ok := ExtractFileMeta(mediaDocument(&tg.DocumentAttributeSticker{})); ok {
			t.Error("Expected sticker to be skipped")
		}
		if _, ok := ExtractFileMeta(mediaDocument(&tg.DocumentAttributeFilename{FileName: "sticker.webp"})); ok {
			t.Error("Expected sticker file to be skipped")
		}
	})

	t.Run("Photo", func(t *testing.T) {
		media := &tg.MessageMediaPhoto{}
		media.SetPhoto(&tg.Photo{
			ID:            555,
			AccessHash:    666,
			FileReference: []byte{9},
			Sizes: []tg.PhotoSizeClass{
				&tg.PhotoSize{Type: "m", Size: 1000},
				&tg.PhotoSize{Type: "x", Size: 5000},
			},
		})
		meta, ok := ExtractFileMeta(media)
		if !ok {
			t.Fatal("Expected photo to be indexable")
		}
		if meta.Type != types.FileTypePhoto {
			t.Errorf("Type = %v, want photo", meta.Type)
		}
		if meta.FileID != 555 || meta.FileSize != 5000 {
			t.Errorf("Photo meta not extracted: %+v", meta)
		}
	})

	t.Run("EmptyPhotoSkipped", func(t *testing.T) {
		if _, ok := ExtractFileMeta(&tg.MessageMediaPhoto{}); ok {
			t.Error("Expected empty photo media to be skipped")
		}
	})
}

func TestDocumentFromMessage(t *testing.T) {
	chatID := int64(1234567890)

	msg := &tg.Message{ID: 42, Date: 1700000000}
	msg.SetMedia(mediaDocument(&tg.DocumentAttributeFilename{FileName: "report.pdf"}))
	msg.Message = "quarterly numbers"

	doc, ok := DocumentFromMessage(chatID, msg)
	if !ok {
		t.Fatal("Expected message to produce a document")
	}
	if doc.ID != DocumentID(chatID, 42) {
		t.Errorf("ID = %d", doc.ID)
	}
	if doc.ChatID != chatID || doc.MessageID != 42 {
		t.Errorf("Chat/message not recorded: %+v", doc)
	}
	if doc.Caption != "quarterly numbers" {
		t.Errorf("Caption = %q", doc.Caption)
	}
	if doc.FileRef == "" {
		t.Error("FileRef not recorded")
	}

	t.Run("TextOnlySkipped", func(t *testing.T) {
		plain := &tg.Message{ID: 43, Message: "no media here"}
		if _, ok := DocumentFromMessage(chatID, plain); ok {
			t.Error("Expected text message to be skipped")
		}
	})

	t.Run("NoNameNoCaptionSkipped", func(t *testing.T) {
		bare := &tg.Message{ID: 44}
		bare.SetMedia(mediaDocument())
		if _, ok := DocumentFromMessage(chatID, bare); ok {
			t.Error("Expected nameless captionless file to be skipped")
		}
	})

	t.Run("FallbackNameFromMime", func(t *testing.T) {
		captioned := &tg.Message{ID: 45, Message: "the missing manual"}
		captioned.SetMedia(mediaDocument())
		doc, ok := DocumentFromMessage(chatID, captioned)
		if !ok {
			t.Fatal("Expected captioned file to be indexed")
		}
		if doc.FileName != "document_12345.pdf" {
			t.Errorf("FileName = %q", doc.FileName)
		}
	})

	t.Run("PhotoNeedsCaption", func(t *testing.T) {
		photoMedia := func() *tg.MessageMediaPhoto {
			media := &tg.MessageMediaPhoto{}
			media.SetPhoto(&tg.Photo{ID: 555, AccessHash: 666, FileReference: []byte{9}})
			return media
		}
		bare := &tg.Message{ID: 46}
		bare.SetMedia(photoMedia())
		if _, ok := DocumentFromMessage(chatID, bare); ok {
			t.Error("Expected captionless photo to be skipped")
		}
		captioned := &tg.Message{ID: 47, Message: "sunset over the bay"}
		captioned.SetMedia(photoMedia())
		doc, ok := DocumentFromMessage(chatID, captioned)
		if !ok {
			t.Fatal("Expected captioned photo to be indexed")
		}
		if doc.Type != int(types.FileTypePhoto) {
			t.Errorf("Type = %d, want photo", doc.Type)
		}
	})
}

func TestCantorPairRoundTrip(t *testing.T) {
	cases := [][2]uint64{{0, 0}, {1, 2}, {2000000000, 100000000}, {1234567890, 42}}
	for _, c := range cases {
		z := CantorPair(c[0], c[1])
		a, b := CantorUnpair(z)
		if a != c[0] || b != c[1] {
			t.Errorf("CantorUnpair(CantorPair(%d, %d)) = (%d, %d)", c[0], c[1], a, b)
		}
	}
}
