package types

import (
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
)

// PerSearchLimit is the page size used by /search replies. Inline pages
// use config max_results instead.
const PerSearchLimit = 10

type SearchRequest struct {
	Query       string     `json:"query"`
	ChatID      int64      `json:"chat_id"`
	ChatIDs     []int64    `json:"chat_ids"`
	TypeFilters []FileType `json:"type_filters"`
	// WithCaption also matches the post caption, not only the file name.
	WithCaption bool  `json:"with_caption"`
	AllChats    bool  `json:"all_chats"`
	Limit       int64 `json:"limit"`
	Offset      int64 `json:"offset"`
}

// FilterExpression renders the request filters in meilisearch filter syntax.
func (r *SearchRequest) FilterExpression() string {
	var filters []string

	addInt64Filter := func(field string, ids []int64) {
		if len(ids) == 0 {
			return
		}
		if len(ids) == 1 {
			filters = append(filters, fmt.Sprintf("%s = %d", field, ids[0]))
			return
		}
		idStrs := slice.Map(ids, func(_ int, item int64) string { return fmt.Sprintf("%d", item) })
		filters = append(filters, fmt.Sprintf("%s IN [%s]", field, slice.Join(idStrs, ",")))
	}

	if !r.AllChats {
		if r.ChatID != 0 {
			filters = append(filters, fmt.Sprintf("chat_id = %d", r.ChatID))
		} else {
			addInt64Filter("chat_id", r.ChatIDs)
		}
	}

	if len(r.TypeFilters) > 0 {
		typeStrs := slice.Map(r.TypeFilters, func(_ int, item FileType) string { return fmt.Sprintf("%d", item) })
		filters = append(filters, fmt.Sprintf("type IN [%s]", slice.Join(typeStrs, ",")))
	}

	switch len(filters) {
	case 0:
		return ""
	case 1:
		return filters[0]
	default:
		return slice.Join(filters, " AND ")
	}
}

// ParseInlineQuery splits the raw inline query into keywords and an
// optional type filter, using the "keywords | type" syntax. An unknown
// type token is treated as part of the keywords.
func ParseInlineQuery(raw string) (string, []FileType) {
	raw = strings.TrimSpace(raw)
	idx := strings.LastIndex(raw, "|")
	if idx < 0 {
		return raw, nil
	}
	token := strings.ToLower(strings.TrimSpace(raw[idx+1:]))
	ft, ok := FileTypeFromString[token]
	if !ok {
		return raw, nil
	}
	return strings.TrimSpace(raw[:idx]), []FileType{ft}
}
