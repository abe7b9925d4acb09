package sessions

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for therapy sessions.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sessions", coreauth.RequireUser(h.db, h.authCfg))
	group.Post("", h.HandleCreate)
	group.Get("/:patient_id", h.HandleList)
	group.Put("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

func (h *Handler) accessError(c *fiber.Ctx, err error) error {
	if errors.Is(err, coreauth.ErrPatientNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
}

// HandleCreate records a therapy session.
// @Summary Create Session
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body models.TherapySession true "Session"
// @Success 200 {object} models.TherapySession
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /sessions [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var session models.TherapySession
	if err := c.BodyParser(&session); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, session.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Create(&session, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(session)
}

// HandleList returns the caller's sessions with a patient.
// @Summary List Sessions
// @Tags sessions
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {array} models.TherapySession
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /sessions/{patient_id} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, patientID); err != nil {
		return h.accessError(c, err)
	}

	rows, err := h.service.List(patientID, actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleUpdate applies a partial session edit.
// @Summary Update Session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param session body Update true "Fields to update"
// @Success 200 {object} models.TherapySession
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	session, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, session.PatientID); err != nil {
		return h.accessError(c, err)
	}

	var update Update
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.Apply(session, update, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(session)
}

// HandleDelete removes a session.
// @Summary Delete Session
// @Tags sessions
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /sessions/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	session, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, session.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Delete(session, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
