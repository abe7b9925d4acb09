package chat

import (
	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecommendationRequest carries the conversation to suggest replies for.
type RecommendationRequest struct {
	Messages []HistoryMessage `json:"messages"`
}

// Handler handles HTTP requests for AI reply suggestions.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/chat", coreauth.RequireUser(h.db, h.authCfg))
	group.Post("/recommendations", h.HandleRecommendations)
}

// HandleRecommendations suggests up to three replies for the conversation.
// @Summary Chat Recommendations
// @Tags chat
// @Accept json
// @Produce json
// @Param context body RecommendationRequest true "Chat history"
// @Success 200 {object} map[string][]string
// @Failure 500 {object} map[string]string "Generation failed"
// @Router /chat/recommendations [post]
func (h *Handler) HandleRecommendations(c *fiber.Ctx) error {
	var req RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	therapist := coreauth.UserFromCtx(c)
	options, err := h.service.Recommendations(c.Context(), therapist, req.Messages)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("failed to generate recommendations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate recommendations"})
	}
	return c.JSON(fiber.Map{"recommendations": options})
}
