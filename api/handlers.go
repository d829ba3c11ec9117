package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/krau/mediadex/database"
	"github.com/krau/mediadex/engine"
	"github.com/krau/mediadex/types"
)

func GetChannels(c *fiber.Ctx) error {
	channels, err := database.GetAllIndexChannels(c.Context())
	if err != nil {
		return &fiber.Error{Code: fiber.StatusInternalServerError, Message: err.Error()}
	}
	if len(channels) == 0 {
		return &fiber.Error{Code: fiber.StatusNotFound, Message: "No indexed channels found"}
	}
	return c.JSON(fiber.Map{
		"status":   "success",
		"channels": channels,
	})
}

func parseTypeFilters(typeStrs []string) []types.FileType {
	filters := make([]types.FileType, 0, len(typeStrs))
	for _, name := range typeStrs {
		if ft, ok := types.FileTypeFromString[strings.ToLower(strings.TrimSpace(name))]; ok {
			filters = append(filters, ft)
		}
	}
	return filters
}

func runSearch(c *fiber.Ctx, req types.SearchRequest) error {
	if len(req.ChatIDs) == 0 && req.ChatID == 0 {
		req.ChatIDs = database.WatchedChatIDs()
		if len(req.ChatIDs) == 0 {
			return &fiber.Error{Code: fiber.StatusNotFound, Message: "No indexed channels"}
		}
	}
	results, err := engine.GetEngine().Search(c.Context(), req)
	if err != nil {
		return &fiber.Error{Code: fiber.StatusInternalServerError, Message: err.Error()}
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"results": results,
	})
}

func SearchByGet(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return &fiber.Error{Code: fiber.StatusBadRequest, Message: "Query parameter 'q' is required"}
	}
	req := types.SearchRequest{
		Query:       query,
		Offset:      int64(c.QueryInt("offset")),
		Limit:       int64(c.QueryInt("limit", 10)),
		WithCaption: c.QueryBool("caption", true),
	}
	if chatID, err := strconv.ParseInt(c.Query("chat_id"), 10, 64); err == nil {
		req.ChatID = chatID
	}
	if typeStr := c.Query("types"); typeStr != "" {
		req.TypeFilters = parseTypeFilters(strings.Split(typeStr, ","))
	}
	return runSearch(c, req)
}

func SearchByPost(c *fiber.Ctx) error {
	request := new(SearchPostRequest)
	if err := c.BodyParser(request); err != nil {
		return &fiber.Error{Code: fiber.StatusBadRequest, Message: "Invalid request body"}
	}
	if err := validate.StructCtx(c.Context(), request); err != nil {
		return &fiber.Error{Code: fiber.StatusBadRequest, Message: "Validation failed: " + err.Error()}
	}
	req := types.SearchRequest{
		Query:       request.Query,
		ChatID:      request.ChatID,
		ChatIDs:     request.ChatIDs,
		Offset:      request.Offset,
		Limit:       request.Limit,
		WithCaption: request.WithCaption,
		TypeFilters: parseTypeFilters(request.Types),
	}
	return runSearch(c, req)
}

func GetStats(c *fiber.Ctx) error {
	total, err := engine.GetEngine().Count(c.Context())
	if err != nil {
		return &fiber.Error{Code: fiber.StatusInternalServerError, Message: err.Error()}
	}
	channels, err := database.GetAllIndexChannels(c.Context())
	if err != nil {
		return &fiber.Error{Code: fiber.StatusInternalServerError, Message: err.Error()}
	}
	return c.JSON(fiber.Map{
		"status":   "success",
		"total":    total,
		"channels": len(channels),
	})
}
