package notifications

import (
	"errors"
	"fmt"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenRequest carries a device token to register or unregister.
type TokenRequest struct {
	Token string `json:"token"`
}

// SendRequest is a push notification addressed to one patient.
type SendRequest struct {
	PatientID int    `json:"patient_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

// Handler handles HTTP requests for push notifications.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config, logger *zap.Logger) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg, logger: logger}
}

// RegisterRoutes registers the notification routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/notifications")
	group.Post("/register-token", coreauth.RequirePatient(h.db, h.authCfg), h.HandleRegisterToken)
	group.Delete("/unregister-token", coreauth.RequirePatient(h.db, h.authCfg), h.HandleUnregisterToken)
	group.Post("/send", coreauth.RequireUser(h.db, h.authCfg), h.HandleSend)
	group.Post("/test", coreauth.RequirePatient(h.db, h.authCfg), h.HandleTest)
}

// HandleRegisterToken stores a device token for the calling patient.
// @Summary Register Device Token
// @Tags notifications
// @Accept json
// @Produce json
// @Param token body TokenRequest true "Device token"
// @Success 200 {object} map[string]any
// @Router /notifications/register-token [post]
func (h *Handler) HandleRegisterToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
	}

	patient := coreauth.PatientFromCtx(c)
	id, updated, err := h.service.RegisterToken(patient.ID, req.Token)
	if err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("failed to register device token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register token"})
	}

	message := "Token registered"
	if updated {
		message = "Token updated"
	}
	return c.JSON(fiber.Map{"message": message, "token_id": id})
}

// HandleUnregisterToken removes a device token of the calling patient.
// @Summary Unregister Device Token
// @Tags notifications
// @Accept json
// @Produce json
// @Param token body TokenRequest true "Device token"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Token not found"
// @Router /notifications/unregister-token [delete]
func (h *Handler) HandleUnregisterToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
	}

	patient := coreauth.PatientFromCtx(c)
	if err := h.service.UnregisterToken(patient.ID, req.Token); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Token not found"})
		}
		l := logger.WithRayID(h.logger, c)
		l.Error("failed to unregister device token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to unregister token"})
	}
	return c.JSON(fiber.Map{"message": "Token unregistered"})
}

// HandleSend pushes a notification to all devices of a patient.
// @Summary Send Push Notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body SendRequest true "Notification"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string "Patient not found"
// @Router /notifications/send [post]
func (h *Handler) HandleSend(c *fiber.Ctx) error {
	var req SendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	count, err := h.service.SendToPatient(c.Context(), req.PatientID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		l := logger.WithRayID(h.logger, c)
		l.Error("failed to send notification", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send notification"})
	}
	return c.JSON(fiber.Map{
		"message":       fmt.Sprintf("Notification sent to %d devices", count),
		"success_count": count,
	})
}

// HandleTest sends a test notification to the calling patient's devices.
// @Summary Test Push Notification
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]any
// @Router /notifications/test [post]
func (h *Handler) HandleTest(c *fiber.Ctx) error {
	patient := coreauth.PatientFromCtx(c)

	tokens, err := h.service.TokenCount(patient.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send notification"})
	}

	count, err := h.service.SendToPatient(c.Context(), patient.ID,
		"Notificación de Prueba",
		"Esta es una notificación de prueba. ¡Las notificaciones push funcionan correctamente!")
	if err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("failed to send test notification", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send notification"})
	}
	return c.JSON(fiber.Map{
		"message":       fmt.Sprintf("Test notification sent to %d devices", count),
		"success_count": count,
		"patient_id":    patient.ID,
		"tokens_found":  tokens,
	})
}
