package types

import "fmt"

type FileType int

const (
	FileTypeDocument FileType = iota
	FileTypeVideo
	FileTypeAudio
	FileTypeVoice
	FileTypeAnimation
	FileTypePhoto
)

var FileTypeToDisplayString = map[FileType]string{
	FileTypeDocument:  "Document",
	FileTypeVideo:     "Video",
	FileTypeAudio:     "Audio",
	FileTypeVoice:     "Voice",
	FileTypeAnimation: "GIF",
	FileTypePhoto:     "Photo",
}

var FileTypeToEmoji = map[FileType]string{
	FileTypeDocument:  "📄",
	FileTypeVideo:     "🎬",
	FileTypeAudio:     "🎵",
	FileTypeVoice:     "🎤",
	FileTypeAnimation: "🎞",
	FileTypePhoto:     "🖼",
}

// Accepted tokens for the "query | type" inline filter syntax.
var FileTypeFromString = map[string]FileType{
	"document":  FileTypeDocument,
	"doc":       FileTypeDocument,
	"file":      FileTypeDocument,
	"video":     FileTypeVideo,
	"audio":     FileTypeAudio,
	"music":     FileTypeAudio,
	"voice":     FileTypeVoice,
	"animation": FileTypeAnimation,
	"gif":       FileTypeAnimation,
	"photo":     FileTypePhoto,
	"image":     FileTypePhoto,
}

// InlineResultType maps a FileType to the result type string telegram
// expects in inputBotInlineResultDocument.
var InlineResultType = map[FileType]string{
	FileTypeDocument:  "file",
	FileTypeVideo:     "video",
	FileTypeAudio:     "audio",
	FileTypeVoice:     "voice",
	FileTypeAnimation: "gif",
	FileTypePhoto:     "photo",
}

var StickerFileNames = []string{"sticker.webp", "sticker.webm"}

type FileDocument struct {
	// Cantor paired ID of (chat_id, message_id)
	// [NOTE] Cantor 需要两个非负整数
	ID        int64 `json:"id"`
	ChatID    int64 `json:"chat_id"`
	MessageID int64 `json:"message_id"`
	// Telegram document ID, access hash and file reference; enough to
	// re-send the file as a cached inline result.
	FileID     int64  `json:"file_id"`
	AccessHash int64  `json:"access_hash"`
	FileRef    string `json:"file_ref"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	MimeType   string `json:"mime_type"`
	Caption    string `json:"caption"`
	Type       int    `json:"type"`
	Timestamp  int64  `json:"timestamp"`
}

func (d *FileDocument) DisplayName() string {
	if d.FileName != "" {
		return d.FileName
	}
	if d.Caption != "" {
		return d.Caption
	}
	return fmt.Sprintf("%s %d", FileTypeToDisplayString[FileType(d.Type)], d.MessageID)
}

type SearchHit struct {
	FileDocument
	Formatted struct {
		FileName string `json:"file_name"`
		Caption  string `json:"caption"`
	} `json:"_formatted"`
}

func (s SearchHit) MessageLink() string {
	return fmt.Sprintf("https://t.me/c/%d/%d", s.ChatID, s.MessageID)
}

type SearchResponse struct {
	Hits               []SearchHit `json:"hits,omitempty"`
	ProcessingTimeMs   int64       `json:"processingTimeMs,omitempty"`
	Offset             int64       `json:"offset,omitempty"`
	Limit              int64       `json:"limit,omitempty"`
	EstimatedTotalHits int64       `json:"estimatedTotalHits,omitempty"`
	Raw                any         `json:"-"`
}

// HasMore reports whether another page exists past the one in the response.
func (r *SearchResponse) HasMore() bool {
	return r.Offset+int64(len(r.Hits)) < r.EstimatedTotalHits
}
