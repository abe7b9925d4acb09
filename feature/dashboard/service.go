package dashboard

import (
	"sort"
	"time"

	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/assignments"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recentPerSource is how many items each activity source contributes before
// the merged feed is trimmed.
const recentPerSource = 5

// activityFeedSize is the length of the merged feed.
const activityFeedSize = 10

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type      string    `json:"type"`
	Patient   string    `json:"patient"`
	PatientID *int      `json:"patient_id"`
	Action    string    `json:"action"`
	Time      time.Time `json:"time"`
	Timestamp int64     `json:"timestamp"`
}

// Stats is the dashboard summary for one practitioner, or the whole platform
// for admins.
type Stats struct {
	TotalPatients          int64      `json:"total_patients"`
	TotalMessages          int64      `json:"total_messages"`
	CompletedQuestionaries int64      `json:"completed_questionaries"`
	PendingQuestionaries   int        `json:"pending_questionaries"`
	RecentActivity         []Activity `json:"recent_activity"`
	OnlinePatients         int64      `json:"online_patients"`
}

// Service assembles the dashboard summary.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new dashboard service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

func (s *Service) patientLabel(patientID int) (string, *int) {
	var patient models.Patient
	if err := s.db.First(&patient, patientID).Error; err != nil {
		return "Unknown", nil
	}
	return patient.PatientCode, &patient.ID
}

// Build computes the dashboard numbers and the merged activity feed. A zero
// psychologistID means platform-wide (admins only, enforced by the handler).
func (s *Service) Build(psychologistID int) (*Stats, error) {
	scopePatients := func(q *gorm.DB) *gorm.DB {
		if psychologistID != 0 {
			return q.Where("psychologist_id = ?", psychologistID)
		}
		return q
	}
	scopeJoined := func(q *gorm.DB, table string) *gorm.DB {
		if psychologistID != 0 {
			return q.Joins("JOIN patients ON patients.id = "+table+".patient_id").
				Where("patients.psychologist_id = ?", psychologistID)
		}
		return q
	}

	stats := &Stats{RecentActivity: []Activity{}}

	if err := scopePatients(s.db.Model(&models.Patient{})).Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}
	if err := scopeJoined(s.db.Model(&models.Message{}), "messages").Count(&stats.TotalMessages).Error; err != nil {
		return nil, err
	}
	if err := scopeJoined(s.db.Model(&models.QuestionnaireCompletion{}), "questionnaire_completions").
		Count(&stats.CompletedQuestionaries).Error; err != nil {
		return nil, err
	}

	var recentMessages []models.Message
	if err := scopeJoined(s.db.Model(&models.Message{}), "messages").
		Order("messages.created_at DESC").Limit(recentPerSource).
		Find(&recentMessages).Error; err != nil {
		return nil, err
	}
	for _, msg := range recentMessages {
		name, id := s.patientLabel(msg.PatientID)
		action := "Nuevo mensaje enviado"
		if msg.IsFromPatient {
			action = "Nuevo mensaje recibido"
		}
		stats.RecentActivity = append(stats.RecentActivity, Activity{
			Type: "message", Patient: name, PatientID: id,
			Action: action, Time: msg.CreatedAt, Timestamp: msg.CreatedAt.Unix(),
		})
	}

	var recentAssignments []models.Assignment
	if err := scopeJoined(s.db.Model(&models.Assignment{}), "assignments").
		Preload("Questionnaire").
		Order("assignments.assigned_at DESC").Limit(recentPerSource).
		Find(&recentAssignments).Error; err != nil {
		return nil, err
	}
	for _, a := range recentAssignments {
		name, id := s.patientLabel(a.PatientID)
		title := "Cuestionario"
		if a.Questionnaire != nil {
			title = a.Questionnaire.Title
		}
		action := "Asignada " + title
		if a.Status == models.AssignmentCompleted {
			action = "Completada " + title
		}
		stats.RecentActivity = append(stats.RecentActivity, Activity{
			Type: "assignment", Patient: name, PatientID: id,
			Action: action, Time: a.AssignedAt, Timestamp: a.AssignedAt.Unix(),
		})
	}

	sort.SliceStable(stats.RecentActivity, func(i, j int) bool {
		return stats.RecentActivity[i].Time.After(stats.RecentActivity[j].Time)
	})
	if len(stats.RecentActivity) > activityFeedSize {
		stats.RecentActivity = stats.RecentActivity[:activityFeedSize]
	}

	// Pending assignments, expiring stale ones before counting.
	var pending []models.Assignment
	if err := scopeJoined(s.db.Model(&models.Assignment{}), "assignments").
		Where("assignments.status <> ?", models.AssignmentCompleted).
		Find(&pending).Error; err != nil {
		return nil, err
	}
	if err := assignments.ExpirePastEnd(s.db, pending); err != nil {
		return nil, err
	}
	for _, a := range pending {
		if a.Status != models.AssignmentCompleted {
			stats.PendingQuestionaries++
		}
	}

	if err := scopePatients(s.db.Model(&models.Patient{})).
		Where("is_online = ?", true).
		Count(&stats.OnlinePatients).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
