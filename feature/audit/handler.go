package audit

import (
	"github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/logger"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler exposes the audit log listing.
type Handler struct {
	db      *gorm.DB
	authCfg auth.Config
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(db *gorm.DB, authCfg auth.Config, log *zap.Logger) *Handler {
	return &Handler{db: db, authCfg: authCfg, logger: log}
}

// RegisterRoutes registers the audit log routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit-logs")
	group.Get("", auth.RequireAdmin(h.db, h.authCfg), h.HandleList)
}

// HandleList returns recent audit entries, newest first.
// @Summary List Audit Logs
// @Description List recent audit log entries. Admin only.
// @Tags audit-logs
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {array} models.AuditLog
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /audit-logs [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 100)
	if limit > 200 {
		limit = 200
	}

	var logs []models.AuditLog
	if err := h.db.Order("timestamp desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		l := logger.WithRayID(h.logger, c)
		l.Error("failed to list audit logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(logs)
}
