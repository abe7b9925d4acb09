package dashboard

import (
	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dashboard", coreauth.RequireUser(h.db, h.authCfg))
	group.Get("/stats", h.HandleStats)
}

// HandleStats returns the practitioner dashboard summary. Non-admins always
// get their own numbers; admins may filter with psychologist_id or see the
// whole platform.
// @Summary Dashboard Stats
// @Tags dashboard
// @Produce json
// @Param psychologist_id query int false "Filter by psychologist (admin only)"
// @Success 200 {object} Stats
// @Router /dashboard/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	caller := coreauth.UserFromCtx(c)

	psychologistID := c.QueryInt("psychologist_id", 0)
	if caller.Role != models.RoleAdmin {
		psychologistID = caller.ID
	}

	stats, err := h.service.Build(psychologistID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}
