package bot

import (
	"strconv"
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/telegram/message/entity"
	"github.com/gotd/td/telegram/message/styling"
	"github.com/gotd/td/tg"
	"github.com/krau/mediadex/config"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/types"
	"github.com/krau/mediadex/utils"
	"github.com/krau/mediadex/utils/cache"
)

func SearchHandler(ctx *ext.Context, update *ext.Update) error {
	raw := strings.TrimPrefix(strings.TrimPrefix(update.EffectiveMessage.GetMessage(), "/search"), "@"+ctx.Self.Username)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		ctx.Reply(update, ext.ReplyTextString("Usage: /search <query>, optionally with '| type' (video, audio, voice, gif, doc)"), nil)
		return dispatcher.EndGroups
	}
	if update.GetUserChat() != nil && !CheckInlineAllowed(update.GetUserChat().GetID()) {
		ctx.Reply(update, ext.ReplyTextString("You are not allowed to search"), nil)
		return dispatcher.EndGroups
	}

	query, typeFilters := types.ParseInlineQuery(raw)
	chatIDs := database.WatchedChatIDs()
	if len(chatIDs) == 0 {
		ctx.Reply(update, ext.ReplyTextString("No channels indexed"), nil)
		return dispatcher.EndGroups
	}
	data := types.SearchRequest{
		Query:       query,
		ChatIDs:     chatIDs,
		TypeFilters: typeFilters,
		WithCaption: config.C.UseCaptionFilter,
	}
	resp, err := BotInstance.Engine.Search(ctx, data)
	if err != nil {
		log.FromContext(ctx).Errorf("Failed to search: %v", err)
		ctx.Reply(update, ext.ReplyTextString("Error Happened"), nil)
		return dispatcher.EndGroups
	}
	if len(resp.Hits) == 0 {
		ctx.Reply(update, ext.ReplyTextString("No results found"), nil)
		return dispatcher.EndGroups
	}
	markup, err := utils.BuildSearchReplyMarkup(ctx, 1, data)
	if err != nil {
		log.FromContext(ctx).Errorf("Failed to build reply markup: %v", err)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextStyledTextArray(utils.BuildResultStyling(ctx, resp)), &ext.ReplyOpts{
		Markup: markup,
	})
	return dispatcher.EndGroups
}

func answerCallback(ctx *ext.Context, update *ext.Update, message string, alert bool) error {
	cacheTime := 5
	if alert {
		cacheTime = 60
	}
	ctx.AnswerCallback(&tg.MessagesSetBotCallbackAnswerRequest{
		QueryID:   update.CallbackQuery.GetQueryID(),
		Message:   message,
		Alert:     alert,
		CacheTime: cacheTime,
	})
	return dispatcher.EndGroups
}

func editSearchResults(ctx *ext.Context, update *ext.Update, page int64, data types.SearchRequest, resp *types.SearchResponse) error {
	eb := entity.Builder{}
	if err := styling.Perform(&eb, utils.BuildResultStyling(ctx, resp)...); err != nil {
		log.FromContext(ctx).Errorf("Failed to build styling: %v", err)
		return answerCallback(ctx, update, "Styling Error", true)
	}
	editReq := &tg.MessagesEditMessageRequest{
		ID: update.CallbackQuery.MsgID,
	}
	text, entities := eb.Complete()
	editReq.SetEntities(entities)
	editReq.SetMessage(text)
	markup, err := utils.BuildSearchReplyMarkup(ctx, page, data)
	if err != nil {
		log.FromContext(ctx).Errorf("Failed to build reply markup: %v", err)
		return answerCallback(ctx, update, "Failed to build reply markup", true)
	}
	editReq.SetReplyMarkup(markup)
	if _, err := ctx.EditMessage(update.EffectiveChat().GetID(), editReq); err != nil {
		log.FromContext(ctx).Errorf("Failed to edit message: %v", err)
	}
	return dispatcher.EndGroups
}

// parseCallbackArgs splits pager/filter callback data of the form
// "<prefix> <arg> <cacheid>". Data is client-supplied, so short payloads
// must be rejected rather than trusted.
func parseCallbackArgs(args []string) (arg string, cacheid string, ok bool) {
	if len(args) < 3 {
		return "", "", false
	}
	return args[1], args[2], true
}

func SearchCallbackHandler(ctx *ext.Context, update *ext.Update) error {
	pageArg, cacheid, ok := parseCallbackArgs(update.Args())
	if !ok {
		return answerCallback(ctx, update, "Invalid query", true)
	}
	data, ok := cache.Get[types.SearchRequest](cacheid)
	if !ok {
		return answerCallback(ctx, update, "Query expired", true)
	}
	page, err := strconv.ParseInt(pageArg, 10, 64)
	if err != nil {
		return answerCallback(ctx, update, "Invalid page number", true)
	}
	if page < 1 {
		return answerCallback(ctx, update, "No more results", false)
	}
	data.Offset = (page - 1) * types.PerSearchLimit
	resp, err := BotInstance.Engine.Search(ctx, data)
	if err != nil {
		log.FromContext(ctx).Errorf("Failed to search: %v", err)
		return answerCallback(ctx, update, "Search Error", true)
	}
	if len(resp.Hits) == 0 {
		return answerCallback(ctx, update, "No more results", false)
	}
	return editSearchResults(ctx, update, page, data, resp)
}

func FilterCallbackHandler(ctx *ext.Context, update *ext.Update) error {
	filterArg, cacheid, ok := parseCallbackArgs(update.Args())
	if !ok {
		return answerCallback(ctx, update, "Invalid query", true)
	}
	data, ok := cache.Get[types.SearchRequest](cacheid)
	if !ok {
		return answerCallback(ctx, update, "Query expired", true)
	}
	toswitch, err := strconv.Atoi(filterArg)
	if err != nil {
		return answerCallback(ctx, update, "Invalid filter", true)
	}

	// toggle the tapped type filter
	toSwitchType := types.FileType(toswitch)
	newFilter := make([]types.FileType, 0, len(data.TypeFilters)+1)
	found := false
	for _, filter := range data.TypeFilters {
		if filter == toSwitchType {
			found = true
			continue
		}
		newFilter = append(newFilter, filter)
	}
	if !found {
		newFilter = append(newFilter, toSwitchType)
	}
	data.TypeFilters = newFilter

	// restart from the first page
	data.Offset = 0
	resp, err := BotInstance.Engine.Search(ctx, data)
	if err != nil {
		log.FromContext(ctx).Errorf("Failed to search: %v", err)
		return answerCallback(ctx, update, "Search Error", true)
	}
	if len(resp.Hits) == 0 {
		return answerCallback(ctx, update, "No results", false)
	}
	if err := cache.Set(cacheid, data, cache.DefaultTTL); err != nil {
		log.FromContext(ctx).Warnf("Failed to update cached query: %v", err)
	}
	return editSearchResults(ctx, update, 1, data, resp)
}
