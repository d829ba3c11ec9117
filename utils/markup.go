package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/duke-git/lancet/v2/strutil"
	"github.com/dustin/go-humanize"
	"github.com/gotd/td/telegram/message/styling"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils/cache"
	"github.com/rs/xid"
)

// BuildSearchReplyMarkup builds the type filter rows and the pager row for
// a /search reply. The request is cached so callback handlers can resume it.
func BuildSearchReplyMarkup(ctx context.Context, currentPage int64, data types.SearchRequest) (*tg.ReplyInlineMarkup, error) {
	cacheid := xid.New().String()
	if err := cache.Set(cacheid, data, cache.DefaultTTL); err != nil {
		return nil, err
	}
	ftbuttons := make([]tg.KeyboardButtonClass, 0, len(types.FileTypeToEmoji))
	for i := range len(types.FileTypeToEmoji) {
		text := types.FileTypeToEmoji[types.FileType(i)]
		if slice.Contain(data.TypeFilters, types.FileType(i)) {
			text += " ✓"
		}
		ftbuttons = append(ftbuttons, &tg.KeyboardButtonCallback{
			Text: text,
			Data: fmt.Appendf(nil, "filter %d %s", i, cacheid),
		})
	}

	return &tg.ReplyInlineMarkup{
		Rows: []tg.KeyboardButtonRow{
			{Buttons: ftbuttons},
			{
				Buttons: []tg.KeyboardButtonClass{
					&tg.KeyboardButtonCallback{
						Text: "⬅️",
						Data: fmt.Appendf(nil, "search %d %s", currentPage-1, cacheid),
					},
					&tg.KeyboardButtonCallback{
						Text: fmt.Sprintf("Page %d", currentPage),
						Data: fmt.Append(nil, "noop"),
					},
					&tg.KeyboardButtonCallback{
						Text: "➡️",
						Data: fmt.Appendf(nil, "search %d %s", currentPage+1, cacheid),
					},
				},
			},
		},
	}, nil
}

// BuildResultStyling renders a search response as a styled /search reply.
func BuildResultStyling(ctx context.Context, resp *types.SearchResponse) []styling.StyledTextOption {
	var result []styling.StyledTextOption
	result = append(result, styling.Plain(fmt.Sprintf("About %d results in %dms\n\n", resp.EstimatedTotalHits, resp.ProcessingTimeMs)))

	for _, hit := range resp.Hits {
		emoji := types.FileTypeToEmoji[types.FileType(hit.Type)]
		result = append(result, styling.Plain(emoji+" "))
		result = append(result, styling.TextURL(strutil.Ellipsis(hit.DisplayName(), 50), MessageLink(ctx, hit)))
		result = append(result, styling.Plain(fmt.Sprintf("  %s\n", humanize.Bytes(uint64(hit.FileSize)))))
		caption := hit.Formatted.Caption
		if caption == "" {
			caption = hit.Caption
		}
		if caption != "" {
			result = append(result, styling.Italic(strutil.Ellipsis(caption, 100)))
		}
		result = append(result, styling.Plain("\n"))
	}
	return result
}

// MessageLink prefers the public t.me link when the channel has a username.
func MessageLink(ctx context.Context, hit types.SearchHit) string {
	channel, err := database.GetIndexChannel(ctx, hit.ChatID)
	if err == nil && channel.Username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", strings.TrimPrefix(channel.Username, "@"), hit.MessageID)
	}
	return hit.MessageLink()
}
