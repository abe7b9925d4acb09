package notes

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for clinical notes.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the note routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/notes", coreauth.RequireUser(h.db, h.authCfg))
	group.Post("", h.HandleCreate)
	group.Get("/:patient_id", h.HandleList)
	group.Delete("/:id", h.HandleDelete)
}

func (h *Handler) accessError(c *fiber.Ctx, err error) error {
	if errors.Is(err, coreauth.ErrPatientNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
}

// HandleCreate stores a note about a patient.
// @Summary Create Note
// @Tags notes
// @Accept json
// @Produce json
// @Param note body models.Note true "Note"
// @Success 200 {object} models.Note
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /notes [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var note models.Note
	if err := c.BodyParser(&note); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, note.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Create(&note, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(note)
}

// HandleList returns a patient's notes.
// @Summary List Notes
// @Tags notes
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {array} models.Note
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /notes/{patient_id} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, patientID); err != nil {
		return h.accessError(c, err)
	}

	rows, err := h.service.List(patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleDelete removes a note.
// @Summary Delete Note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /notes/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	note, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Note not found"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, note.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Delete(note, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
