package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/types"
)

// FileMeta is what gets extracted from a channel post before it becomes a
// FileDocument.
type FileMeta struct {
	FileID     int64
	AccessHash int64
	FileRef    []byte
	FileName   string
	FileSize   int64
	MimeType   string
	Type       types.FileType
}

// ExtractFileMeta pulls file metadata out of message media. It returns
// false for media that cannot be indexed: stickers, web pages, polls.
func ExtractFileMeta(media tg.MessageMediaClass) (*FileMeta, bool) {
	var m *tg.MessageMediaDocument
	switch media := media.(type) {
	case *tg.MessageMediaPhoto:
		return extractPhotoMeta(media)
	case *tg.MessageMediaDocument:
		m = media
	default:
		return nil, false
	}
	doc, ok := m.Document.AsNotEmpty()
	if !ok {
		return nil, false
	}
	meta := &FileMeta{
		FileID:     doc.GetID(),
		AccessHash: doc.GetAccessHash(),
		FileRef:    doc.GetFileReference(),
		FileSize:   doc.GetSize(),
		MimeType:   doc.GetMimeType(),
		Type:       types.FileTypeDocument,
	}
	for _, attr := range doc.GetAttributes() {
		switch attr := attr.(type) {
		case *tg.DocumentAttributeSticker, *tg.DocumentAttributeHasStickers:
			return nil, false
		case *tg.DocumentAttributeFilename:
			filename := attr.GetFileName()
			if slice.Contain(types.StickerFileNames, filename) {
				return nil, false
			}
			meta.FileName = filename
		case *tg.DocumentAttributeAudio:
			if attr.Voice {
				meta.Type = types.FileTypeVoice
				continue
			}
			meta.Type = types.FileTypeAudio
			if meta.FileName == "" {
				var sb strings.Builder
				if performer, ok := attr.GetPerformer(); ok {
					sb.WriteString(performer)
				}
				if title, ok := attr.GetTitle(); ok {
					if sb.Len() > 0 {
						sb.WriteString(" - ")
					}
					sb.WriteString(title)
				}
				meta.FileName = sb.String()
			}
		case *tg.DocumentAttributeVideo:
			if meta.Type == types.FileTypeDocument {
				meta.Type = types.FileTypeVideo
			}
		case *tg.DocumentAttributeAnimated:
			meta.Type = types.FileTypeAnimation
		}
	}
	return meta, true
}

// extractPhotoMeta indexes a photo post. Photos never carry a file name,
// so the caller's no-name-no-caption skip rule admits only captioned ones.
func extractPhotoMeta(media *tg.MessageMediaPhoto) (*FileMeta, bool) {
	pc, ok := media.GetPhoto()
	if !ok {
		return nil, false
	}
	p, ok := pc.AsNotEmpty()
	if !ok {
		return nil, false
	}
	meta := &FileMeta{
		FileID:     p.GetID(),
		AccessHash: p.GetAccessHash(),
		FileRef:    p.GetFileReference(),
		MimeType:   "image/jpeg",
		Type:       types.FileTypePhoto,
	}
	for _, size := range p.GetSizes() {
		if s, ok := size.(*tg.PhotoSize); ok && int64(s.Size) > meta.FileSize {
			meta.FileSize = int64(s.Size)
		}
	}
	return meta, true
}

// fallbackFileName makes up a name for documents posted without a filename
// attribute, so they remain searchable by type keyword at least.
func fallbackFileName(t types.FileType, fileID int64, mime string) string {
	ext := ""
	if m := mimetype.Lookup(mime); m != nil {
		ext = m.Extension()
	}
	return fmt.Sprintf("%s_%d%s", strings.ToLower(types.FileTypeToDisplayString[t]), fileID, ext)
}

func (m *FileMeta) InputDocument() *tg.InputDocument {
	return &tg.InputDocument{
		ID:            m.FileID,
		AccessHash:    m.AccessHash,
		FileReference: m.FileRef,
	}
}

// InputDocumentFromHit rebuilds the cached document reference stored in
// the index.
func InputDocumentFromHit(hit types.SearchHit) (*tg.InputDocument, error) {
	ref, err := base64.StdEncoding.DecodeString(hit.FileRef)
	if err != nil {
		return nil, fmt.Errorf("decode file reference: %w", err)
	}
	return &tg.InputDocument{
		ID:            hit.FileID,
		AccessHash:    hit.AccessHash,
		FileReference: ref,
	}, nil
}

// InputPhotoFromHit is InputDocumentFromHit for photo hits.
func InputPhotoFromHit(hit types.SearchHit) (*tg.InputPhoto, error) {
	ref, err := base64.StdEncoding.DecodeString(hit.FileRef)
	if err != nil {
		return nil, fmt.Errorf("decode file reference: %w", err)
	}
	return &tg.InputPhoto{
		ID:            hit.FileID,
		AccessHash:    hit.AccessHash,
		FileReference: ref,
	}, nil
}

// DocumentFromMessage converts a channel post into an index document.
// Posts without indexable media, or with neither file name nor caption,
// are skipped.
func DocumentFromMessage(chatID int64, msg *tg.Message) (*types.FileDocument, bool) {
	media, ok := msg.GetMedia()
	if !ok {
		return nil, false
	}
	meta, ok := ExtractFileMeta(media)
	if !ok {
		return nil, false
	}
	caption := strings.TrimSpace(msg.GetMessage())
	if meta.FileName == "" && caption == "" {
		// nothing to search on
		return nil, false
	}
	if meta.FileName == "" {
		meta.FileName = fallbackFileName(meta.Type, meta.FileID, meta.MimeType)
	}
	return &types.FileDocument{
		ID:         DocumentID(chatID, msg.GetID()),
		ChatID:     chatID,
		MessageID:  int64(msg.GetID()),
		FileID:     meta.FileID,
		AccessHash: meta.AccessHash,
		FileRef:    base64.StdEncoding.EncodeToString(meta.FileRef),
		FileName:   meta.FileName,
		FileSize:   meta.FileSize,
		MimeType:   meta.MimeType,
		Caption:    caption,
		Type:       int(meta.Type),
		Timestamp:  int64(msg.GetDate()),
	}, true
}
