package stats

import (
	"time"

	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements per-patient assessment score tracking.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new stats service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// List returns a patient's assessment scores, newest first.
func (s *Service) List(patientID int) ([]models.AssessmentStat, error) {
	var rows []models.AssessmentStat
	err := s.db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Get returns one score row.
func (s *Service) Get(id int) (*models.AssessmentStat, error) {
	var stat models.AssessmentStat
	if err := s.db.First(&stat, id).Error; err != nil {
		return nil, err
	}
	return &stat, nil
}

// Create stores an assessment score.
func (s *Service) Create(stat *models.AssessmentStat, actor *models.Psychologist, ip string) error {
	if err := s.db.Create(stat).Error; err != nil {
		return err
	}
	s.recorder.Record(actor.ID, "psychologist", actor.Name, "CREATE_STAT",
		map[string]any{"patient_id": stat.PatientID, "label": stat.Label}, ip)
	return nil
}

// Update replaces the score fields and bumps the update timestamp.
func (s *Service) Update(stat *models.AssessmentStat, updated models.AssessmentStat, actor *models.Psychologist, ip string) error {
	stat.Label = updated.Label
	stat.Value = updated.Value
	stat.Status = updated.Status
	stat.Color = updated.Color
	stat.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(stat).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "UPDATE_STAT",
		map[string]any{"stat_id": stat.ID}, ip)
	return nil
}

// Delete removes a score row.
func (s *Service) Delete(stat *models.AssessmentStat, actor *models.Psychologist, ip string) error {
	if err := s.db.Delete(stat).Error; err != nil {
		return err
	}
	s.recorder.Record(actor.ID, "psychologist", actor.Name, "DELETE_STAT",
		map[string]any{"stat_id": stat.ID}, ip)
	return nil
}
