package notes

import (
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements clinical note keeping.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new notes service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// Create stores a note about a patient.
func (s *Service) Create(note *models.Note, actor *models.Psychologist, ip string) error {
	if err := s.db.Create(note).Error; err != nil {
		return err
	}
	s.recorder.Record(actor.ID, "psychologist", actor.Name, "CREATE_NOTE",
		map[string]any{"patient_id": note.PatientID, "title": note.Title}, ip)
	return nil
}

// List returns a patient's notes, newest first.
func (s *Service) List(patientID int) ([]models.Note, error) {
	var rows []models.Note
	err := s.db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Get returns one note.
func (s *Service) Get(id int) (*models.Note, error) {
	var note models.Note
	if err := s.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete removes a note.
func (s *Service) Delete(note *models.Note, actor *models.Psychologist, ip string) error {
	if err := s.db.Delete(note).Error; err != nil {
		return err
	}
	s.recorder.Record(actor.ID, "psychologist", actor.Name, "DELETE_NOTE",
		map[string]any{"note_id": note.ID}, ip)
	return nil
}
