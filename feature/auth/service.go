package auth

import (
	"fmt"
	"time"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for any failed login attempt.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// heartbeatWindow is the largest gap between beats that still counts as
// continuous presence. Larger gaps start a new session.
const heartbeatWindow = 120 * time.Second

// Service implements login, logout and presence tracking.
type Service struct {
	db       *gorm.DB
	authCfg  coreauth.Config
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, authCfg coreauth.Config, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, authCfg: authCfg, recorder: recorder, logger: logger}
}

// LoginPsychologist verifies email/password and issues an access token.
func (s *Service) LoginPsychologist(email, password, ip string) (*models.Psychologist, string, error) {
	var user models.Psychologist
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !coreauth.VerifyPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := coreauth.CreateAccessToken(s.authCfg, map[string]any{
		"sub":  fmt.Sprintf("%d", user.ID),
		"role": user.Role,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	s.recorder.Record(user.ID, "psychologist", user.Name, "LOGIN", "Successful login", ip)

	now := time.Now().UTC()
	user.IsOnline = true
	user.LastActive = &now
	if err := s.db.Save(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to update online status: %w", err)
	}
	return &user, token, nil
}

// LoginPatient verifies the patient_code/access_code pair and issues a token
// carrying the patient's current token version.
func (s *Service) LoginPatient(patientCode, accessCode string) (*models.Patient, string, error) {
	var patient models.Patient
	err := s.db.Where("access_code = ? AND patient_code = ?", accessCode, patientCode).First(&patient).Error
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := coreauth.CreateAccessToken(s.authCfg, map[string]any{
		"sub":           fmt.Sprintf("%d", patient.ID),
		"role":          "patient",
		"token_version": patient.TokenVersion,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create token: %w", err)
	}

	now := time.Now().UTC()
	patient.IsOnline = true
	patient.LastActive = &now
	if err := s.db.Save(&patient).Error; err != nil {
		return nil, "", fmt.Errorf("failed to update online status: %w", err)
	}
	return &patient, token, nil
}

// Logout marks the actor offline. Psychologist logouts are audited.
func (s *Service) Logout(actor coreauth.Actor) error {
	if actor.Psychologist != nil {
		actor.Psychologist.IsOnline = false
		if err := s.db.Save(actor.Psychologist).Error; err != nil {
			return err
		}
		s.recorder.Record(actor.Psychologist.ID, "psychologist", actor.Psychologist.Name, "LOGOUT", nil, "")
		return nil
	}
	actor.Patient.IsOnline = false
	return s.db.Save(actor.Patient).Error
}

// Heartbeat refreshes presence and accumulates online time. Time between
// beats only counts when it is below the heartbeat window.
func (s *Service) Heartbeat(actor coreauth.Actor) error {
	now := time.Now().UTC()

	var wasOnline bool
	var lastActive *time.Time
	if actor.Psychologist != nil {
		wasOnline, lastActive = actor.Psychologist.IsOnline, actor.Psychologist.LastActive
	} else {
		wasOnline, lastActive = actor.Patient.IsOnline, actor.Patient.LastActive
	}

	var delta int64
	if wasOnline && lastActive != nil {
		diff := now.Sub(*lastActive)
		if diff < heartbeatWindow {
			delta = int64(diff.Seconds())
		}
	}

	if actor.Psychologist != nil {
		actor.Psychologist.LastActive = &now
		actor.Psychologist.IsOnline = true
		actor.Psychologist.TotalOnlineSeconds += delta
		return s.db.Save(actor.Psychologist).Error
	}
	actor.Patient.LastActive = &now
	actor.Patient.IsOnline = true
	actor.Patient.TotalOnlineSeconds += delta
	return s.db.Save(actor.Patient).Error
}

// PatientStatus reports the patient's effective online state and that of
// their psychologist. A stale is_online flag on the psychologist is cleaned
// up reactively.
func (s *Service) PatientStatus(patient *models.Patient) (patientOnline, psychologistOnline bool, err error) {
	if patient.PsychologistID != nil {
		var psych models.Psychologist
		if err := s.db.First(&psych, *patient.PsychologistID).Error; err == nil {
			psychologistOnline = psych.IsActiveNow()
			if !psychologistOnline && psych.IsOnline {
				psych.IsOnline = false
				if err := s.db.Save(&psych).Error; err != nil {
					s.logger.Warn("failed to clear stale online flag", zap.Error(err))
				}
			}
		}
	}
	return patient.IsActiveNow(), psychologistOnline, nil
}
