package assignments

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StatusUpdate carries an assignment status change.
type StatusUpdate struct {
	Status string `json:"status"`
}

// Handler handles HTTP requests for assignments.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the assignment routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	user := coreauth.RequireUser(h.db, h.authCfg)
	patient := coreauth.RequirePatient(h.db, h.authCfg)
	actor := coreauth.RequireActor(h.db, h.authCfg)

	group := app.Group("/assignments")
	group.Post("", user, h.HandleCreate)
	group.Get("", user, h.HandleList)
	group.Get("/patient/:access_code", actor, h.HandleForAccessCode)
	group.Get("/patient-admin/:patient_id", user, h.HandleForPatient)
	group.Get("/completions/:patient_id", user, h.HandleCompletions)
	group.Post("/:id/submit", patient, h.HandleSubmit)
	group.Patch("/:id", user, h.HandleUpdateStatus)
	group.Delete("/:id", user, h.HandleDelete)
}

func (h *Handler) accessError(c *fiber.Ctx, err error) error {
	if errors.Is(err, coreauth.ErrPatientNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
}

// HandleCreate assigns a questionnaire to a patient.
// @Summary Assign Questionnaire
// @Description Create an assignment and compute its first randomized delivery time.
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body models.Assignment true "Assignment"
// @Success 200 {object} models.Assignment
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assignments [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var a models.Assignment
	if err := c.BodyParser(&a); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, a.PatientID); err != nil {
		return h.accessError(c, err)
	}

	if err := h.service.Create(&a, actor, c.IP()); err != nil {
		if errors.Is(err, ErrPatientNotFound) || errors.Is(err, ErrQuestionnaireNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(a)
}

// HandleList returns assignments visible to the caller.
// @Summary List Assignments
// @Tags assignments
// @Produce json
// @Param offset query int false "Offset"
// @Param limit query int false "Limit (max 100)"
// @Success 200 {array} models.Assignment
// @Router /assignments [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	caller := coreauth.UserFromCtx(c)
	rows, err := h.service.List(caller, c.QueryInt("offset", 0), c.QueryInt("limit", 100))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleForAccessCode returns a patient's assignments by access code. Patient
// tokens may only read their own code.
// @Summary List Assignments By Access Code
// @Tags assignments
// @Produce json
// @Param access_code path string true "Patient access code"
// @Success 200 {array} models.Assignment
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assignments/patient/{access_code} [get]
func (h *Handler) HandleForAccessCode(c *fiber.Ctx) error {
	accessCode := c.Params("access_code")
	if patient := coreauth.PatientFromCtx(c); patient != nil && patient.AccessCode != accessCode {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	rows, err := h.service.ForAccessCode(accessCode)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleForPatient returns a patient's assignments for the practitioner view.
// @Summary List Assignments By Patient
// @Tags assignments
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {array} models.Assignment
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /assignments/patient-admin/{patient_id} [get]
func (h *Handler) HandleForPatient(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, patientID); err != nil {
		return h.accessError(c, err)
	}

	rows, err := h.service.ForPatient(patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleSubmit records a patient's answers for an assignment.
// @Summary Submit Assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param answers body models.JSONList true "Answers"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assignments/{id}/submit [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var answers models.JSONList
	if err := c.BodyParser(&answers); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	a, err := h.service.Submit(id, answers)
	if err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(a)
}

// HandleCompletions returns a patient's completion history.
// @Summary List Questionnaire Completions
// @Tags assignments
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {array} models.QuestionnaireCompletion
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /assignments/completions/{patient_id} [get]
func (h *Handler) HandleCompletions(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, patientID); err != nil {
		return h.accessError(c, err)
	}

	rows, err := h.service.Completions(patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleUpdateStatus changes an assignment's lifecycle status.
// @Summary Update Assignment Status
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param status body StatusUpdate true "New status"
// @Success 200 {object} models.Assignment
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assignments/{id} [patch]
func (h *Handler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	patientID, err := h.service.PatientID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	actor := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, actor, patientID); err != nil {
		return h.accessError(c, err)
	}

	var update StatusUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	a, err := h.service.UpdateStatus(id, update.Status, actor, c.IP())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(a)
}

// HandleDelete removes an assignment.
// @Summary Delete Assignment
// @Tags assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /assignments/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	if err := h.service.Delete(id, c.IP()); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
