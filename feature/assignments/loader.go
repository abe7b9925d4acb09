package assignments

import (
	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the assignments feature.
func NewFeature(db *gorm.DB, authCfg coreauth.Config, recorder *audit.Recorder, logger *zap.Logger) *Feature {
	svc := NewService(db, recorder, logger)
	return &Feature{service: svc, handler: NewHandler(svc, db, authCfg)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "assignments"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
