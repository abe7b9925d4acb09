package questionnaires

import (
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements questionnaire catalog management.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new questionnaires service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// Create stores a new questionnaire.
func (s *Service) Create(q *models.Questionnaire, actor *models.Psychologist, ip string) error {
	if err := s.db.Create(q).Error; err != nil {
		return err
	}
	s.recorder.Record(actor.ID, "psychologist", actor.Name, "CREATE_QUESTIONNAIRE",
		map[string]any{"title": q.Title}, ip)
	return nil
}

// List returns the questionnaire catalog, paged.
func (s *Service) List(offset, limit int) ([]models.Questionnaire, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var rows []models.Questionnaire
	err := s.db.Offset(offset).Limit(limit).Find(&rows).Error
	return rows, err
}

// Update replaces the editable fields of a questionnaire.
func (s *Service) Update(id int, updated models.Questionnaire, actor *models.Psychologist, ip string) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := s.db.First(&q, id).Error; err != nil {
		return nil, err
	}

	q.Title = updated.Title
	q.Description = updated.Description
	q.Questions = updated.Questions
	if err := s.db.Save(&q).Error; err != nil {
		return nil, err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "UPDATE_QUESTIONNAIRE",
		map[string]any{"questionnaire_id": id}, ip)
	return &q, nil
}

// Delete removes a questionnaire.
func (s *Service) Delete(id int, actor *models.Psychologist, ip string) error {
	var q models.Questionnaire
	if err := s.db.First(&q, id).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&q).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "DELETE_QUESTIONNAIRE",
		map[string]any{"questionnaire_id": id}, ip)
	return nil
}
