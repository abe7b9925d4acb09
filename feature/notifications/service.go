package notifications

import (
	"context"
	"errors"

	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/core/push"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrTokenNotFound is returned when unregistering a token the patient never
// registered.
var ErrTokenNotFound = errors.New("device token not found")

// ErrPatientNotFound is returned when pushing to an unknown patient.
var ErrPatientNotFound = errors.New("patient not found")

// Service manages device tokens and delivers push notifications.
type Service struct {
	db     *gorm.DB
	sender push.Sender
	logger *zap.Logger
}

// NewService creates a new notifications service.
func NewService(db *gorm.DB, sender push.Sender, logger *zap.Logger) *Service {
	return &Service{db: db, sender: sender, logger: logger}
}

// RegisterToken stores a device token for the patient. A token already known
// from any patient is reassigned instead of duplicated.
func (s *Service) RegisterToken(patientID int, token string) (int, bool, error) {
	var existing models.DeviceToken
	err := s.db.Where("token = ?", token).First(&existing).Error
	switch {
	case err == nil:
		existing.PatientID = patientID
		if err := s.db.Save(&existing).Error; err != nil {
			return 0, false, err
		}
		return existing.ID, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created := models.DeviceToken{PatientID: patientID, Token: token}
		if err := s.db.Create(&created).Error; err != nil {
			return 0, false, err
		}
		return created.ID, false, nil
	default:
		return 0, false, err
	}
}

// UnregisterToken removes one of the patient's device tokens.
func (s *Service) UnregisterToken(patientID int, token string) error {
	res := s.db.Where("token = ? AND patient_id = ?", token, patientID).Delete(&models.DeviceToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// TokenCount returns how many device tokens the patient has registered.
func (s *Service) TokenCount(patientID int) (int64, error) {
	var count int64
	err := s.db.Model(&models.DeviceToken{}).Where("patient_id = ?", patientID).Count(&count).Error
	return count, err
}

// SendToPatient pushes a notification to every device of the patient and
// returns how many deliveries succeeded. Tokens the gateway reports as
// unregistered are pruned.
func (s *Service) SendToPatient(ctx context.Context, patientID int, title, body string) (int, error) {
	var patient models.Patient
	if err := s.db.First(&patient, patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPatientNotFound
		}
		return 0, err
	}

	var tokens []models.DeviceToken
	if err := s.db.Where("patient_id = ?", patientID).Find(&tokens).Error; err != nil {
		return 0, err
	}

	success := 0
	for _, dt := range tokens {
		err := s.sender.Send(ctx, push.Notification{Token: dt.Token, Title: title, Body: body})
		switch {
		case err == nil:
			success++
		case errors.Is(err, push.ErrInvalidToken):
			s.logger.Info("pruning unregistered device token",
				zap.Int("patient_id", patientID), zap.Int("token_id", dt.ID))
			if err := s.db.Delete(&models.DeviceToken{}, dt.ID).Error; err != nil {
				s.logger.Warn("failed to prune device token", zap.Error(err))
			}
		default:
			s.logger.Warn("push delivery failed",
				zap.Int("patient_id", patientID), zap.Error(err))
		}
	}
	return success, nil
}
