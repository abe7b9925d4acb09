package questionnaires

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for the questionnaire catalog.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the questionnaire routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/questionnaires", coreauth.RequireUser(h.db, h.authCfg))
	group.Post("", h.HandleCreate)
	group.Get("", h.HandleList)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleCreate stores a new questionnaire.
// @Summary Create Questionnaire
// @Tags questionnaires
// @Accept json
// @Produce json
// @Param questionnaire body models.Questionnaire true "Questionnaire"
// @Success 200 {object} models.Questionnaire
// @Router /questionnaires [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var q models.Questionnaire
	if err := c.BodyParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := h.service.Create(&q, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(q)
}

// HandleList returns the questionnaire catalog.
// @Summary List Questionnaires
// @Tags questionnaires
// @Produce json
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {array} models.Questionnaire
// @Router /questionnaires [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	rows, err := h.service.List(c.QueryInt("offset", 0), c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleUpdate replaces a questionnaire's title, description and questions.
// @Summary Update Questionnaire
// @Tags questionnaires
// @Accept json
// @Produce json
// @Param id path int true "Questionnaire ID"
// @Param questionnaire body models.Questionnaire true "Questionnaire"
// @Success 200 {object} models.Questionnaire
// @Failure 404 {object} map[string]string "Not Found"
// @Router /questionnaires/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var updated models.Questionnaire
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	q, err := h.service.Update(id, updated, actor, c.IP())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Questionnaire not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(q)
}

// HandleDelete removes a questionnaire.
// @Summary Delete Questionnaire
// @Tags questionnaires
// @Produce json
// @Param id path int true "Questionnaire ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /questionnaires/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := h.service.Delete(id, actor, c.IP()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Questionnaire not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
