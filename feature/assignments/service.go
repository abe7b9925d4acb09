package assignments

import (
	"errors"
	"time"

	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Lookup failures surfaced as 404s by the handlers.
var (
	ErrPatientNotFound       = errors.New("patient not found")
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	ErrAssignmentNotFound    = errors.New("assignment not found")
)

// delayThreshold is how long past the scheduled time a submission counts as
// delayed.
const delayThreshold = 2 * time.Hour

// Service implements questionnaire assignment and delivery tracking.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	logger   *zap.Logger
}

// NewService creates a new assignments service.
func NewService(db *gorm.DB, recorder *audit.Recorder, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, logger: logger}
}

// Create stores a new assignment with its initial delivery schedule.
func (s *Service) Create(a *models.Assignment, actor *models.Psychologist, ip string) error {
	var patient models.Patient
	if err := s.db.First(&patient, a.PatientID).Error; err != nil {
		return ErrPatientNotFound
	}
	var questionnaire models.Questionnaire
	if err := s.db.First(&questionnaire, a.QuestionnaireID).Error; err != nil {
		return ErrQuestionnaireNotFound
	}

	now := time.Now().UTC()
	next := NextScheduledTime(a, nil, now)
	a.NextScheduledAt = &next
	if a.FrequencyType != nil && *a.FrequencyType != "" {
		a.Status = models.AssignmentActive
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = now
	}

	if err := s.db.Create(a).Error; err != nil {
		return err
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "ASSIGN_QUESTIONNAIRE",
		map[string]any{"patient_id": a.PatientID, "questionnaire_id": a.QuestionnaireID}, ip)
	return nil
}

// ExpirePastEnd completes any assignment whose end date has passed,
// persisting the transition. Listings call this so stale rows never reach a
// client.
func ExpirePastEnd(db *gorm.DB, rows []models.Assignment) error {
	now := time.Now().UTC()
	for i := range rows {
		if expired(&rows[i], now) {
			rows[i].Status = models.AssignmentCompleted
			if err := db.Model(&rows[i]).Update("status", models.AssignmentCompleted).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// List returns assignments visible to the caller with questionnaires
// preloaded. Non-admins only see assignments of their own patients.
func (s *Service) List(caller *models.Psychologist, offset, limit int) ([]models.Assignment, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.db.Preload("Questionnaire")
	if caller.Role != models.RoleAdmin {
		query = query.
			Joins("JOIN patients ON patients.id = assignments.patient_id").
			Where("patients.psychologist_id = ?", caller.ID)
	}

	var rows []models.Assignment
	if err := query.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	if err := ExpirePastEnd(s.db, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ForAccessCode returns a patient's assignments looked up by access code.
func (s *Service) ForAccessCode(accessCode string) ([]models.Assignment, error) {
	var patient models.Patient
	if err := s.db.Where("access_code = ?", accessCode).First(&patient).Error; err != nil {
		return nil, ErrPatientNotFound
	}

	var rows []models.Assignment
	err := s.db.Preload("Questionnaire").Where("patient_id = ?", patient.ID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := ExpirePastEnd(s.db, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ForPatient returns a patient's assignments newest first.
func (s *Service) ForPatient(patientID int) ([]models.Assignment, error) {
	var rows []models.Assignment
	err := s.db.Preload("Questionnaire").
		Where("patient_id = ?", patientID).
		Order("assigned_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := ExpirePastEnd(s.db, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Submit records a completed questionnaire delivery. One-shot assignments are
// completed in place; recurring ones get their next delivery scheduled and
// complete once past their end date.
func (s *Service) Submit(assignmentID int, answers models.JSONList) (*models.Assignment, error) {
	var a models.Assignment
	if err := s.db.First(&a, assignmentID).Error; err != nil {
		return nil, ErrAssignmentNotFound
	}

	now := time.Now().UTC()
	isDelayed := a.NextScheduledAt != nil && now.After(a.NextScheduledAt.Add(delayThreshold))

	completion := models.QuestionnaireCompletion{
		AssignmentID:    a.ID,
		PatientID:       a.PatientID,
		QuestionnaireID: a.QuestionnaireID,
		Answers:         answers,
		Status:          models.CompletionSent,
		ScheduledAt:     a.NextScheduledAt,
		CompletedAt:     &now,
		IsDelayed:       isDelayed,
	}
	if err := s.db.Create(&completion).Error; err != nil {
		return nil, err
	}

	oneShot := a.FrequencyType == nil || *a.FrequencyType == "" ||
		(a.FrequencyCount != nil && *a.FrequencyCount == 0)
	if oneShot {
		a.Status = models.AssignmentCompleted
		a.Answers = answers
	} else {
		next := NextScheduledTime(&a, nil, now)
		a.NextScheduledAt = &next
		if a.EndDate != nil {
			if end, err := parseEndDate(*a.EndDate); err == nil && now.After(end) {
				a.Status = models.AssignmentCompleted
			}
		}
	}

	if err := s.db.Save(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Completions returns a patient's completion history, newest first.
func (s *Service) Completions(patientID int) ([]models.QuestionnaireCompletion, error) {
	var rows []models.QuestionnaireCompletion
	err := s.db.Preload("Questionnaire").
		Where("patient_id = ?", patientID).
		Order("completed_at DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateStatus sets an assignment's lifecycle status.
func (s *Service) UpdateStatus(id int, status string, actor *models.Psychologist, ip string) (*models.Assignment, error) {
	var a models.Assignment
	if err := s.db.First(&a, id).Error; err != nil {
		return nil, ErrAssignmentNotFound
	}
	if status != "" {
		a.Status = status
		if err := s.db.Save(&a).Error; err != nil {
			return nil, err
		}
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "UPDATE_ASSIGNMENT_STATUS",
		map[string]any{"assignment_id": id, "status": a.Status}, ip)
	return &a, nil
}

// Delete removes an assignment, recorded as a system action.
func (s *Service) Delete(id int, ip string) error {
	var a models.Assignment
	if err := s.db.First(&a, id).Error; err != nil {
		return ErrAssignmentNotFound
	}
	if err := s.db.Delete(&a).Error; err != nil {
		return err
	}

	s.recorder.Record(0, "system", "Unknown", "DELETE_ASSIGNMENT",
		map[string]any{"assignment_id": id}, ip)
	return nil
}

// PatientID returns which patient an assignment belongs to, for ownership
// checks before mutating it.
func (s *Service) PatientID(assignmentID int) (int, error) {
	var a models.Assignment
	if err := s.db.Select("patient_id").First(&a, assignmentID).Error; err != nil {
		return 0, ErrAssignmentNotFound
	}
	return a.PatientID, nil
}
