package auth

import (
	"errors"

	"github.com/fsm00037/terauja-backend/core/models"

	"gorm.io/gorm"
)

// Access check failures, mapped to HTTP statuses by the handlers.
var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrAccessDenied    = errors.New("access denied: patient not assigned to you")
)

// VerifyPatientAccess checks that the given psychologist may act on the
// patient. Admins can access every patient, psychologists only their own.
func VerifyPatientAccess(db *gorm.DB, user *models.Psychologist, patientID int) error {
	if user.Role == models.RoleAdmin {
		return nil
	}

	var patient models.Patient
	if err := db.First(&patient, patientID).Error; err != nil {
		return ErrPatientNotFound
	}
	if patient.PsychologistID == nil || *patient.PsychologistID != user.ID {
		return ErrAccessDenied
	}
	return nil
}
