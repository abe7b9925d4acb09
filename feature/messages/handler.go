package messages

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for chat messages.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the message routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	user := coreauth.RequireUser(h.db, h.authCfg)
	actor := coreauth.RequireActor(h.db, h.authCfg)

	group := app.Group("/messages")
	group.Post("", actor, h.HandleCreate)
	group.Post("/mark-read/:patient_id", user, h.HandleMarkRead)
	group.Get("/:patient_id", actor, h.HandleList)
	group.Delete("/:patient_id", user, h.HandleDeleteAll)
}

// denyConversation checks the caller may touch the conversation:
// psychologists need ownership, patients can only reach their own. When
// access is denied it renders the error response and reports handled=true.
func (h *Handler) denyConversation(c *fiber.Ctx, patientID int) (bool, error) {
	if user := coreauth.UserFromCtx(c); user != nil {
		if err := coreauth.VerifyPatientAccess(h.db, user, patientID); err != nil {
			if errors.Is(err, coreauth.ErrPatientNotFound) {
				return true, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			return true, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		return false, nil
	}
	if patient := coreauth.PatientFromCtx(c); patient != nil && patient.ID != patientID {
		return true, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}
	return false, nil
}

// HandleCreate stores a chat message.
// @Summary Send Message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.Message true "Message"
// @Success 200 {object} models.Message
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /messages [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var msg models.Message
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if handled, err := h.denyConversation(c, msg.PatientID); handled {
		return err
	}

	actor, _ := coreauth.ActorFromCtx(c)
	if err := h.service.Create(&msg, actor, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(msg)
}

// HandleList returns a patient's conversation.
// @Summary List Messages
// @Tags messages
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {array} models.Message
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /messages/{patient_id} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	if handled, err := h.denyConversation(c, patientID); handled {
		return err
	}

	rows, err := h.service.List(patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(rows)
}

// HandleMarkRead flags a patient's unread messages as read.
// @Summary Mark Messages Read
// @Tags messages
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /messages/mark-read/{patient_id} [post]
func (h *Handler) HandleMarkRead(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	user := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, user, patientID); err != nil {
		if errors.Is(err, coreauth.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	count, err := h.service.MarkRead(patientID, user, c.IP())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "count": count})
}

// HandleDeleteAll removes a patient's whole conversation.
// @Summary Delete Messages
// @Tags messages
// @Produce json
// @Param patient_id path int true "Patient ID"
// @Success 200 {object} map[string]bool
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /messages/{patient_id} [delete]
func (h *Handler) HandleDeleteAll(c *fiber.Ctx) error {
	patientID, err := c.ParamsInt("patient_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid patient id"})
	}

	user := coreauth.UserFromCtx(c)
	if err := coreauth.VerifyPatientAccess(h.db, user, patientID); err != nil {
		if errors.Is(err, coreauth.ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.DeleteAll(patientID, user, c.IP()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true, "deleted": true})
}
