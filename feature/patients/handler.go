package patients

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/logger"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssignRequest selects the psychologist a patient is reassigned to.
type AssignRequest struct {
	PsychologistID int `json:"psychologist_id"`
}

// SummaryRequest carries a clinical summary update.
type SummaryRequest struct {
	ClinicalSummary string `json:"clinical_summary"`
}

// Handler handles HTTP requests for patients.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the patient routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	user := coreauth.RequireUser(h.db, h.authCfg)
	admin := coreauth.RequireAdmin(h.db, h.authCfg)
	patient := coreauth.RequirePatient(h.db, h.authCfg)

	app.Post("/patients", user, h.HandleCreate)
	app.Get("/patients", user, h.HandleList)
	app.Patch("/patients/:id/assign", admin, h.HandleAssign)
	app.Patch("/patients/:id/clinical-summary", user, h.HandleClinicalSummary)
	app.Get("/patient/me", patient, h.HandleMe)
}

// HandleCreate registers a new patient.
// @Summary Create Patient
// @Description Create a patient with generated codes, assigned to the creating psychologist by default.
// @Tags patients
// @Accept json
// @Produce json
// @Param patient body models.Patient true "Patient"
// @Success 200 {object} models.Patient
// @Router /patients [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var patient models.Patient
	if err := c.BodyParser(&patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	creator := coreauth.UserFromCtx(c)
	if err := h.service.Create(&patient, creator); err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("failed to create patient", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":                    patient.ID,
		"patient_code":          patient.PatientCode,
		"access_code":           patient.AccessCode,
		"email":                 patient.Email,
		"psychologist_id":       patient.PsychologistID,
		"psychologist_name":     patient.PsychologistName,
		"psychologist_schedule": patient.PsychologistSchedule,
		"created_at":            patient.CreatedAt,
		"clinical_summary":      patient.ClinicalSummary,
	})
}

// HandleList returns the caller's patients with assignments and unread counts.
// @Summary List Patients
// @Tags patients
// @Produce json
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Param psychologist_id query int false "Filter by psychologist (admin only)"
// @Success 200 {array} ListItem
// @Router /patients [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	caller := coreauth.UserFromCtx(c)
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)

	var psychologistID *int
	if v := c.QueryInt("psychologist_id", 0); v > 0 {
		psychologistID = &v
	}

	items, err := h.service.List(caller, offset, limit, psychologistID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

// HandleAssign reassigns a patient to another psychologist.
// @Summary Assign Patient
// @Tags patients
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param assignment body AssignRequest true "Target psychologist"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /patients/{id}/assign [patch]
func (h *Handler) HandleAssign(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := h.service.Assign(id, req.PsychologistID, actor, c.IP()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient or Psychologist not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleClinicalSummary updates a patient's clinical summary.
// @Summary Update Clinical Summary
// @Tags patients
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param summary body SummaryRequest true "Summary"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /patients/{id}/clinical-summary [patch]
func (h *Handler) HandleClinicalSummary(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, id); err != nil {
		if errors.Is(err, coreauth.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	var req SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	patient, err := h.service.UpdateClinicalSummary(id, req.ClinicalSummary, actor, c.IP())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "clinical_summary": patient.ClinicalSummary})
}

// HandleMe returns the authenticated patient's own profile.
// @Summary Get Own Patient Profile
// @Tags patients
// @Produce json
// @Success 200 {object} models.Patient
// @Router /patient/me [get]
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(coreauth.PatientFromCtx(c))
}
