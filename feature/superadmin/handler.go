package superadmin

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateUserRequest is the payload for account creation.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Handler handles HTTP requests for platform administration.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the superadmin routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/superadmin", coreauth.RequireSuperadmin(h.db, h.authCfg))
	group.Get("/stats", h.HandleStats)
	group.Get("/stats/daily-messages", h.HandleDailyMessages)
	group.Get("/users", h.HandleListUsers)
	group.Post("/users", h.HandleCreateUser)
}

// HandleStats returns platform-wide totals.
// @Summary Platform Stats
// @Tags superadmin
// @Produce json
// @Success 200 {object} PlatformStats
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /superadmin/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleDailyMessages returns message volume per day over the last month.
// @Summary Daily Message Stats
// @Tags superadmin
// @Produce json
// @Success 200 {array} DailyMessageStat
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /superadmin/stats/daily-messages [get]
func (h *Handler) HandleDailyMessages(c *fiber.Ctx) error {
	rows, err := h.service.DailyMessages()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleListUsers returns every psychologist and admin account.
// @Summary List Users
// @Tags superadmin
// @Produce json
// @Success 200 {array} models.Psychologist
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /superadmin/users [get]
func (h *Handler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(users)
}

// HandleCreateUser registers a psychologist or admin account.
// @Summary Create User
// @Tags superadmin
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "Account"
// @Success 200 {object} models.Psychologist
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /superadmin/users [post]
func (h *Handler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.service.CreateUser(req.Name, req.Email, req.Role)
	if err != nil {
		if errors.Is(err, ErrInvalidRole) || errors.Is(err, ErrEmailRegistered) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}
