package auth

import (
	"errors"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoginRequest is the psychologist login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PatientLoginRequest is the patient login payload.
type PatientLoginRequest struct {
	PatientCode string `json:"patient_code"`
	AccessCode  string `json:"access_code"`
}

// Handler handles authentication HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the authentication routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/login", h.HandleLogin)
	app.Post("/auth", h.HandlePatientLogin)
	app.Post("/logout", coreauth.RequireActor(h.service.db, h.service.authCfg), h.HandleLogout)
	app.Post("/heartbeat", coreauth.RequireActor(h.service.db, h.service.authCfg), h.HandleHeartbeat)
	app.Get("/patient/status", coreauth.RequirePatient(h.service.db, h.service.authCfg), h.HandlePatientStatus)
}

// HandleLogin authenticates a psychologist.
// @Summary Psychologist Login
// @Description Authenticate with email and password, returns an access token.
// @Tags authentication
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Account summary plus access_token"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, token, err := h.service.LoginPsychologist(req.Email, req.Password, c.IP())
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		l := logger.WithRayID(h.service.logger, c)
		l.Error("login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"role":         user.Role,
		"email":        user.Email,
		"access_token": token,
	})
}

// HandlePatientLogin authenticates a patient by code pair.
// @Summary Patient Login
// @Description Authenticate with patient_code and access_code, returns an access token.
// @Tags authentication
// @Accept json
// @Produce json
// @Param credentials body PatientLoginRequest true "Code pair"
// @Success 200 {object} map[string]interface{} "Patient summary plus access_token"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth [post]
func (h *Handler) HandlePatientLogin(c *fiber.Ctx) error {
	var req PatientLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	patient, token, err := h.service.LoginPatient(req.PatientCode, req.AccessCode)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		l := logger.WithRayID(h.service.logger, c)
		l.Error("patient login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":                    patient.ID,
		"patient_code":          patient.PatientCode,
		"access_code":           patient.AccessCode,
		"psychologist_id":       patient.PsychologistID,
		"psychologist_name":     patient.PsychologistName,
		"psychologist_schedule": patient.PsychologistSchedule,
		"access_token":          token,
	})
}

// HandleLogout marks the authenticated actor offline.
// @Summary Logout
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /logout [post]
func (h *Handler) HandleLogout(c *fiber.Ctx) error {
	actor, ok := coreauth.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Could not validate credentials"})
	}
	if err := h.service.Logout(actor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleHeartbeat refreshes the actor's presence.
// @Summary Heartbeat
// @Description Refresh the caller's online status and accumulate session time.
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /heartbeat [post]
func (h *Handler) HandleHeartbeat(c *fiber.Ctx) error {
	actor, ok := coreauth.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Could not validate credentials"})
	}
	if err := h.service.Heartbeat(actor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandlePatientStatus reports patient and psychologist liveness.
// @Summary Patient Status
// @Tags authentication
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /patient/status [get]
func (h *Handler) HandlePatientStatus(c *fiber.Ctx) error {
	patient := coreauth.PatientFromCtx(c)
	if patient == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Could not validate credentials"})
	}
	patientOnline, psychOnline, err := h.service.PatientStatus(patient)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"is_online":              patientOnline,
		"psychologist_is_online": psychOnline,
	})
}
