package sessions

import (
	"time"

	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements therapy session records.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new sessions service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// Update carries a partial session edit. Nil fields are left untouched.
type Update struct {
	Date        *time.Time `json:"date"`
	Duration    *string    `json:"duration"`
	Description *string    `json:"description"`
	Notes       *string    `json:"notes"`
}

// Create stores a session, stamped with the creating psychologist.
func (s *Service) Create(session *models.TherapySession, actor *models.Psychologist, ip string) error {
	session.PsychologistID = actor.ID
	if err := s.db.Create(session).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "CREATE_SESSION",
		map[string]any{"patient_id": session.PatientID, "date": session.Date}, ip)
	return nil
}

// List returns sessions between this patient and this psychologist, newest
// first.
func (s *Service) List(patientID, psychologistID int) ([]models.TherapySession, error) {
	var rows []models.TherapySession
	err := s.db.Where("patient_id = ? AND psychologist_id = ?", patientID, psychologistID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

// Get returns one session.
func (s *Service) Get(id int) (*models.TherapySession, error) {
	var session models.TherapySession
	if err := s.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Apply updates the set fields of a session.
func (s *Service) Apply(session *models.TherapySession, update Update, actor *models.Psychologist, ip string) error {
	if update.Date != nil {
		session.Date = *update.Date
	}
	if update.Duration != nil {
		session.Duration = *update.Duration
	}
	if update.Description != nil {
		session.Description = *update.Description
	}
	if update.Notes != nil {
		session.Notes = *update.Notes
	}
	if err := s.db.Save(session).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "UPDATE_SESSION",
		map[string]any{"session_id": session.ID}, ip)
	return nil
}

// Delete removes a session.
func (s *Service) Delete(session *models.TherapySession, actor *models.Psychologist, ip string) error {
	if err := s.db.Delete(session).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "DELETE_SESSION",
		map[string]any{"session_id": session.ID}, ip)
	return nil
}
