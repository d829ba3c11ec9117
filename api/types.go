package api

type SearchPostRequest struct {
	Query       string   `json:"query" validate:"required"`
	ChatID      int64    `json:"chat_id,omitempty"`
	ChatIDs     []int64  `json:"chat_ids,omitempty"`
	Offset      int64    `json:"offset" default:"0"`
	Limit       int64    `json:"limit" default:"10"`
	WithCaption bool     `json:"with_caption"`
	Types       []string `json:"types,omitempty"`
}
