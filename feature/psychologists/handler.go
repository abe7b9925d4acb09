package psychologists

import (
	"bytes"
	"errors"
	"net/http"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/logger"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for psychologist accounts.
type Handler struct {
	service *Service
	db      *gorm.DB
	authCfg coreauth.Config
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, db *gorm.DB, authCfg coreauth.Config) *Handler {
	return &Handler{service: service, db: db, authCfg: authCfg}
}

// RegisterRoutes registers the psychologist routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	admin := coreauth.RequireAdmin(h.db, h.authCfg)
	user := coreauth.RequireUser(h.db, h.authCfg)

	app.Get("/psychologists", admin, h.HandleList)
	app.Post("/psychologists", admin, h.HandleCreate)
	app.Delete("/psychologists/:id", admin, h.HandleDelete)
	app.Get("/profile/:id", user, h.HandleGetProfile)
	app.Put("/profile/:id", user, h.HandleUpdateProfile)
	app.Put("/profile/:id/photo", user, h.HandleUploadPhoto)
	// Public media serving under the bucket path, so stored photo_url values
	// resolve directly.
	app.Get("/"+h.service.bucket+"/*", h.HandleServeMedia)
}

// HandleList returns all practitioner accounts.
// @Summary List Psychologists
// @Tags psychologists
// @Produce json
// @Success 200 {array} models.Psychologist
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /psychologists [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(users)
}

// HandleCreate registers a new psychologist account.
// @Summary Create Psychologist
// @Description Create an account with a generated password, emailed to the new user.
// @Tags psychologists
// @Accept json
// @Produce json
// @Param psychologist body models.Psychologist true "Account"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /psychologists [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var user models.Psychologist
	if err := c.BodyParser(&user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := h.service.Create(&user, actor); err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("failed to create psychologist", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"role":     user.Role,
		"schedule": user.Schedule,
		"phone":    user.Phone,
	})
}

// HandleDelete removes an account and unassigns its patients.
// @Summary Delete Psychologist
// @Tags psychologists
// @Produce json
// @Param id path int true "Psychologist ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Router /psychologists/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	actor := coreauth.UserFromCtx(c)
	if err := h.service.Delete(c.Context(), id, actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandleGetProfile returns a profile, restricted to self or admin.
// @Summary Get Profile
// @Tags psychologists
// @Produce json
// @Param id path int true "Psychologist ID"
// @Success 200 {object} models.Psychologist
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /profile/{id} [get]
func (h *Handler) HandleGetProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	actor := coreauth.UserFromCtx(c)
	if actor.Role != models.RoleAdmin && actor.ID != id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	user, err := h.service.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// HandleUpdateProfile applies a partial profile update, self or admin.
// @Summary Update Profile
// @Tags psychologists
// @Accept json
// @Produce json
// @Param id path int true "Psychologist ID"
// @Param profile body ProfileUpdate true "Fields to update"
// @Success 200 {object} models.Psychologist
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /profile/{id} [put]
func (h *Handler) HandleUpdateProfile(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	actor := coreauth.UserFromCtx(c)
	if actor.Role != models.RoleAdmin && actor.ID != id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	var update ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.service.UpdateProfile(id, update, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(user)
}

// HandleUploadPhoto stores a profile photo, self or admin.
// @Summary Upload Profile Photo
// @Tags psychologists
// @Accept octet-stream
// @Produce json
// @Param id path int true "Psychologist ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /profile/{id}/photo [put]
func (h *Handler) HandleUploadPhoto(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}

	actor := coreauth.UserFromCtx(c)
	if actor.Role != models.RoleAdmin && actor.ID != id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty photo"})
	}

	contentType := c.Get(fiber.HeaderContentType, "image/jpeg")
	url, err := h.service.UploadPhoto(c.Context(), id, bytes.NewReader(body), int64(len(body)), contentType)
	if err != nil {
		l := logger.WithRayID(h.service.logger, c)
		l.Error("photo upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"photo_url": url})
}

// HandleServeMedia streams a stored media object (profile photos).
// @Summary Serve Media Object
// @Tags psychologists
// @Produce octet-stream
// @Param object path string true "Object path"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /terauja-media/{object} [get]
func (h *Handler) HandleServeMedia(c *fiber.Ctx) error {
	objectName := c.Params("*")
	if objectName == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Object not found"})
	}

	data, err := h.service.Media(c.Context(), objectName)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Object not found"})
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}
