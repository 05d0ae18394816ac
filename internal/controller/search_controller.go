package controller

import (
	"time"

	"intent-search-be/internal/dto"
	"intent-search-be/internal/pkg/serverutils"
	"intent-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	GetPreferences(ctx *fiber.Ctx) error
	UpdatePreferences(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Metrics(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService          service.ISearchService
	personalizationService service.IPersonalizationService
	conversationService    service.IConversationService
	telemetryService       service.ITelemetryService
}

func NewSearchController(
	searchService service.ISearchService,
	personalizationService service.IPersonalizationService,
	conversationService service.IConversationService,
	telemetryService service.ITelemetryService,
) ISearchController {
	return &searchController{
		searchService:          searchService,
		personalizationService: personalizationService,
		conversationService:    conversationService,
		telemetryService:       telemetryService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Post("", c.Search)
	h.Get("preferences/:user_id", c.GetPreferences)
	h.Put("preferences/:user_id", c.UpdatePreferences)
	h.Delete("session/:session_id", c.ClearSession)
	h.Get("health", c.Health)
	h.Get("metrics", c.Metrics)
	h.Post("feedback", c.Feedback)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	userId := ctx.Get("X-User-Id")
	sessionId := ctx.Get("X-Session-Id")
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	opts := service.SearchOptions{
		UserId:                userId,
		SessionId:             sessionId,
		RequestId:             uuid.NewString(),
		EnableConversation:    boolOrDefault(req.EnableConversation, true),
		EnablePersonalization: boolOrDefault(req.EnablePersonalization, true),
	}

	res := c.searchService.Search(ctx.Context(), req.Query, opts)

	ctx.Set("X-Session-Id", sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Search executed", res))
}

func (c *searchController) GetPreferences(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	if userId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id is required"))
	}

	prefs, err := c.personalizationService.GetPreferences(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("User preferences", dto.PreferencesResponse{
		UserId:      userId,
		Preferences: prefs,
	}))
}

func (c *searchController) UpdatePreferences(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	if userId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id is required"))
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	prefs, err := c.personalizationService.UpdatePreferences(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Preferences updated", dto.PreferencesResponse{
		UserId:      userId,
		Preferences: prefs,
	}))
}

func (c *searchController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "session_id is required"))
	}

	c.conversationService.ClearSession(sessionId)

	return ctx.JSON(serverutils.SuccessResponse("Session cleared", dto.ClearSessionResponse{
		Message: "Session " + sessionId + " cleared successfully",
	}))
}

func (c *searchController) Health(ctx *fiber.Ctx) error {
	health := c.telemetryService.GetSystemHealth()
	health["status"] = "healthy"
	health["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	return ctx.JSON(serverutils.SuccessResponse("System health", health))
}

func (c *searchController) Metrics(ctx *fiber.Ctx) error {
	report := c.telemetryService.GetPerformanceReport()

	// Persistence-backed sections are best-effort, the counters above are not
	if stats, err := c.telemetryService.GetFeedbackStatistics(ctx.Context()); err == nil {
		report["feedback"] = stats
	}
	if recent, err := c.telemetryService.GetRecentErrors(ctx.Context(), 10); err == nil {
		report["recent_errors"] = recent
	}

	return ctx.JSON(serverutils.SuccessResponse("Performance report", report))
}

func (c *searchController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	userId := ctx.Get("X-User-Id")
	sessionId := ctx.Get("X-Session-Id")
	requestId := ctx.Query("request_id", uuid.NewString())

	err := c.telemetryService.LogFeedback(ctx.Context(), requestId, req.Rating, userId, sessionId, req.FeedbackText, req.SelectedProductId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback recorded", dto.FeedbackResponse{
		Status: "recorded",
	}))
}

func boolOrDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
