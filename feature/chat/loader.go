package chat

import (
	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/llm"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the chat feature. It stays disabled without an LLM
// client.
func NewFeature(db *gorm.DB, authCfg coreauth.Config, client llm.Client, logger *zap.Logger) *Feature {
	svc := NewService(db, client, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, db, authCfg),
		enabled: client != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "chat"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
