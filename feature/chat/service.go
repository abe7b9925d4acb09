package chat

import (
	"context"

	"github.com/fsm00037/terauja-backend/core/llm"
	"github.com/fsm00037/terauja-backend/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service generates reply suggestions for psychologists.
type Service struct {
	db     *gorm.DB
	client llm.Client
	logger *zap.Logger
}

// NewService creates a new chat service.
func NewService(db *gorm.DB, client llm.Client, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, logger: logger}
}

// Recommendations asks the model for up to three reply options, flavored
// with the therapist's configured style, tone and instructions.
func (s *Service) Recommendations(ctx context.Context, therapist *models.Psychologist, history []HistoryMessage) ([]string, error) {
	prompt := buildPrompt(history, therapist.AIStyle, therapist.AITone, therapist.AIInstructions)

	content, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseOptions(content), nil
}
