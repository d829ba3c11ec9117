package bot

import (
	"fmt"
	"strconv"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/strutil"
	"github.com/dustin/go-humanize"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
)

func InlineQueryHandler(ctx *ext.Context, update *ext.Update) error {
	iq := update.InlineQuery
	logger := log.FromContext(ctx)

	answer := &tg.MessagesSetInlineBotResultsRequest{
		QueryID:   iq.GetQueryID(),
		CacheTime: config.C.CacheTime,
		Private:   true,
	}
	if !CheckInlineAllowed(iq.UserID) {
		answer.SetSwitchPm(tg.InlineBotSwitchPM{
			Text:       "You are not allowed to use this bot",
			StartParam: "unauthorized",
		})
		if _, err := ctx.Raw.MessagesSetInlineBotResults(ctx, answer); err != nil {
			logger.Errorf("Failed to answer inline query: %v", err)
		}
		return dispatcher.EndGroups
	}

	offset := int64(0)
	if iq.Offset != "" {
		parsed, err := strconv.ParseInt(iq.Offset, 10, 64)
		if err != nil {
			return dispatcher.EndGroups
		}
		offset = parsed
	}

	query, typeFilters := types.ParseInlineQuery(iq.GetQuery())
	chatIDs := database.WatchedChatIDs()
	if len(chatIDs) == 0 {
		answer.SetSwitchPm(tg.InlineBotSwitchPM{
			Text:       "No channels indexed yet",
			StartParam: "start",
		})
		if _, err := ctx.Raw.MessagesSetInlineBotResults(ctx, answer); err != nil {
			logger.Errorf("Failed to answer inline query: %v", err)
		}
		return dispatcher.EndGroups
	}

	resp, err := BotInstance.Engine.Search(ctx, types.SearchRequest{
		Query:       query,
		ChatIDs:     chatIDs,
		TypeFilters: typeFilters,
		WithCaption: config.C.UseCaptionFilter,
		Limit:       int64(config.C.MaxResults),
		Offset:      offset,
	})
	if err != nil {
		logger.Errorf("Inline search failed: %v", err)
		return dispatcher.EndGroups
	}

	results := make([]tg.InputBotInlineResultClass, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		sendMessage := &tg.InputBotInlineMessageMediaAuto{
			Message: hit.Caption,
		}
		if sendMessage.Message == "" {
			sendMessage.Message = hit.DisplayName()
		}
		description := humanize.Bytes(uint64(hit.FileSize))
		if hit.Caption != "" {
			description += " | " + strutil.Ellipsis(hit.Caption, 60)
		}
		if types.FileType(hit.Type) == types.FileTypePhoto {
			photo, err := utils.InputPhotoFromHit(hit)
			if err != nil {
				logger.Warnf("Skipping hit %d: %v", hit.ID, err)
				continue
			}
			results = append(results, &tg.InputBotInlineResultPhoto{
				ID:          strconv.FormatInt(hit.ID, 36),
				Type:        types.InlineResultType[types.FileTypePhoto],
				Photo:       photo,
				SendMessage: sendMessage,
			})
			continue
		}
		document, err := utils.InputDocumentFromHit(hit)
		if err != nil {
			logger.Warnf("Skipping hit %d: %v", hit.ID, err)
			continue
		}
		result := &tg.InputBotInlineResultDocument{
			ID:          strconv.FormatInt(hit.ID, 36),
			Type:        types.InlineResultType[types.FileType(hit.Type)],
			Document:    document,
			SendMessage: sendMessage,
		}
		result.SetTitle(hit.DisplayName())
		result.SetDescription(description)
		results = append(results, result)
	}

	if len(results) == 0 {
		answer.SetSwitchPm(tg.InlineBotSwitchPM{
			Text:       fmt.Sprintf("No results for '%s'", strutil.Ellipsis(iq.GetQuery(), 20)),
			StartParam: "start",
		})
	} else if resp.HasMore() {
		answer.SetNextOffset(strconv.FormatInt(offset+int64(len(resp.Hits)), 10))
	}
	answer.Results = results
	if _, err := ctx.Raw.MessagesSetInlineBotResults(ctx, answer); err != nil {
		logger.Errorf("Failed to answer inline query: %v", err)
	}
	return dispatcher.EndGroups
}
