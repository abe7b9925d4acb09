package stats

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for assessment stats.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the assessment stat routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assessment-stats", coreauth.RequireUser(h.db, h.authCfg))
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

// HandleCreate stores an assessment score.
// @Summary Create Assessment Stat
// @Tags assessment-stats
// @Accept json
// @Produce json
// @Param stat body models.AssessmentStat true "Stat"
// @Success 200 {object} models.AssessmentStat
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /assessment-stats [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var stat models.AssessmentStat
	if err := c.BodyParser(&stat); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, stat.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Create(&stat, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stat)
}

// HandleList returns a patient's assessment scores.
// @Summary List Assessment Stats
// @Tags assessment-stats
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {array} models.AssessmentStat
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /assessment-stats/{patient_id} [get]
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

// HandleUpdate replaces an assessment score.
// @Summary Update Assessment Stat
// @Tags assessment-stats
// @Accept json
// @Produce json
// @Param id path int true "Stat ID"
// @Param stat body models.AssessmentStat true "Stat"
// @Success 200 {object} models.AssessmentStat
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assessment-stats/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	stat, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment stat not found"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, stat.PatientID); err != nil {
		return h.accessError(c, err)
	}

	var updated models.AssessmentStat
	if err := c.BodyParser(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.service.Update(stat, updated, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stat)
}

// HandleDelete removes an assessment score.
// @Summary Delete Assessment Stat
// @Tags assessment-stats
// @Produce json
// @Param id path int true "Stat ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assessment-stats/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	stat, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment stat not found"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, stat.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Delete(stat, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
