package patients

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service implements patient account management.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new patients service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// ListItem is a patient row enriched for the practitioner list view.
type ListItem struct {
	models.Patient
	IsOnline       bool  `json:"is_online"`
	UnreadMessages int64 `json:"unread_messages"`
}

func generateAccessCode() string {
	buf := make([]byte, 6)
	rand.Read(buf)
	return strings.ToUpper(base64.RawURLEncoding.EncodeToString(buf))
}

func generatePatientCode() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	return "P-" + strings.ToUpper(hex.EncodeToString(buf))
}

// Create registers a new patient. Missing codes are generated, and the
// psychologist snapshot fields are filled from the assigned practitioner,
// defaulting to the creating user.
func (s *Service) Create(patient *models.Patient, creator *models.Psychologist) error {
	if creator.Role != models.RoleAdmin && patient.PsychologistID == nil {
		id := creator.ID
		patient.PsychologistID = &id
	}
	if patient.PatientCode == "" {
		patient.PatientCode = generatePatientCode()
	}
	if patient.AccessCode == "" {
		patient.AccessCode = generateAccessCode()
	}

	if patient.PsychologistID != nil {
		var psych models.Psychologist
		if err := s.db.First(&psych, *patient.PsychologistID).Error; err == nil {
			patient.PsychologistName = psych.Name
			patient.PsychologistSchedule = psych.Schedule
			patient.PsychologistPhoto = psych.PhotoURL
		}
	} else {
		id := creator.ID
		patient.PsychologistID = &id
		patient.PsychologistName = creator.Name
		patient.PsychologistSchedule = creator.Schedule
	}

	return s.db.Create(patient).Error
}

// List returns patients visible to the caller, each with its assignments
// preloaded and the count of unread patient messages. Admins see everyone
// and may filter by psychologist; other users only see their own patients.
func (s *Service) List(caller *models.Psychologist, offset, limit int, psychologistID *int) ([]ListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.db.Preload("Assignments.Questionnaire")
	if caller.Role != models.RoleAdmin {
		query = query.Where("psychologist_id = ?", caller.ID)
	} else if psychologistID != nil {
		query = query.Where("psychologist_id = ?", *psychologistID)
	}

	var rows []models.Patient
	if err := query.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(rows))
	for _, p := range rows {
		var unread int64
		err := s.db.Model(&models.Message{}).
			Where("patient_id = ? AND is_from_patient = ? AND read = ?", p.ID, true, false).
			Count(&unread).Error
		if err != nil {
			return nil, err
		}
		items = append(items, ListItem{Patient: p, IsOnline: p.IsActiveNow(), UnreadMessages: unread})
	}
	return items, nil
}

// Assign moves a patient to another psychologist and refreshes the snapshot
// fields the patient app renders.
func (s *Service) Assign(patientID, psychologistID int, actor *models.Psychologist, ip string) error {
	var patient models.Patient
	if err := s.db.First(&patient, patientID).Error; err != nil {
		return err
	}
	var psych models.Psychologist
	if err := s.db.First(&psych, psychologistID).Error; err != nil {
		return err
	}

	updates := map[string]any{
		"psychologist_id":       psych.ID,
		"psychologist_name":     psych.Name,
		"psychologist_schedule": psych.Schedule,
		"psychologist_photo":    psych.PhotoURL,
	}
	if err := s.db.Model(&patient).Updates(updates).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "ASSIGN_PATIENT",
		map[string]any{"patient_id": patient.ID, "assigned_to": psych.Email}, ip)
	return nil
}

// UpdateClinicalSummary replaces the patient's clinical summary text.
func (s *Service) UpdateClinicalSummary(patientID int, summary string, actor *models.Psychologist, ip string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.First(&patient, patientID).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&patient).Update("clinical_summary", summary).Error; err != nil {
		return nil, err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "UPDATE_CLINICAL_SUMMARY",
		map[string]any{"patient_id": patientID}, ip)
	return &patient, nil
}
