package messages

import (
	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements the patient/psychologist chat.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new messages service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// Create stores a chat message from either actor.
func (s *Service) Create(msg *models.Message, actor coreauth.Actor, ip string) error {
	if err := s.db.Create(msg).Error; err != nil {
		return err
	}

	actorType := "psychologist"
	if msg.IsFromPatient {
		actorType = "patient"
	}
	s.recorder.Record(actor.ID(), actorType, actor.Name(), "CREATE_MESSAGE",
		map[string]any{"patient_id": msg.PatientID, "is_from_patient": msg.IsFromPatient}, ip)
	return nil
}

// List returns a patient's conversation in chronological order.
func (s *Service) List(patientID int) ([]models.Message, error) {
	var rows []models.Message
	err := s.db.Where("patient_id = ?", patientID).Order("created_at").Find(&rows).Error
	return rows, err
}

// MarkRead flags all unread patient messages as read and returns how many
// were flagged.
func (s *Service) MarkRead(patientID int, actor *models.Psychologist, ip string) (int64, error) {
	result := s.db.Model(&models.Message{}).
		Where("patient_id = ? AND is_from_patient = ? AND read = ?", patientID, true, false).
		Update("read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "MARK_MESSAGES_READ",
		map[string]any{"patient_id": patientID, "count": result.RowsAffected}, ip)
	return result.RowsAffected, nil
}

// DeleteAll removes a patient's whole conversation.
func (s *Service) DeleteAll(patientID int, actor *models.Psychologist, ip string) error {
	if err := s.db.Where("patient_id = ?", patientID).Delete(&models.Message{}).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "DELETE_MESSAGES",
		map[string]any{"patient_id": patientID}, ip)
	return nil
}
