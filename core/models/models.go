package models

import (
	"time"
)

// Roles assignable to a Psychologist account.
const (
	RolePsychologist = "psychologist"
	RoleAdmin        = "admin"
	RoleSuperadmin   = "superadmin"
)

// Assignment lifecycle states.
const (
	AssignmentActive    = "active"
	AssignmentPaused    = "paused"
	AssignmentCompleted = "completed"
)

// QuestionnaireCompletion delivery states.
const (
	CompletionPending = "pending"
	CompletionSent    = "sent"
	CompletionMissed  = "missed"
	CompletionPaused  = "paused"
)

// onlineWindow is how recent a heartbeat must be for an actor to count as
// online, regardless of the stored is_online flag.
const onlineWindow = 2 * time.Minute

// Psychologist is a practitioner (or admin) account.
type Psychologist struct {
	ID                 int        `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"default:Tu Psicólogo" json:"name"`
	Email              string     `gorm:"uniqueIndex" json:"email"`
	Password           string     `json:"-"`
	Role               string     `gorm:"default:psychologist" json:"role"`
	Schedule           string     `gorm:"default:Lunes a Viernes, 9:00 - 18:00" json:"schedule"`
	Phone              *string    `json:"phone,omitempty"`
	PhotoURL           string     `json:"photo_url,omitempty"`
	AIStyle            string     `json:"ai_style,omitempty"`
	AITone             string     `json:"ai_tone,omitempty"`
	AIInstructions     string     `json:"ai_instructions,omitempty"`
	IsOnline           bool       `json:"is_online"`
	LastActive         *time.Time `json:"last_active,omitempty"`
	TotalOnlineSeconds int64      `json:"total_online_seconds"`
	CreatedAt          time.Time  `json:"created_at"`
}

// IsActiveNow reports whether the account has a recent enough heartbeat to be
// considered online right now.
func (p Psychologist) IsActiveNow() bool {
	return p.IsOnline && p.LastActive != nil && time.Since(*p.LastActive) < onlineWindow
}

// Patient is a therapy client. Patients authenticate with a public
// patient_code plus a private access_code instead of email/password.
type Patient struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	PatientCode string `gorm:"uniqueIndex" json:"patient_code"`
	AccessCode  string `gorm:"uniqueIndex" json:"access_code"`
	Email       string `json:"email,omitempty"`

	PsychologistID *int `json:"psychologist_id,omitempty"`

	// Snapshots of the assigned psychologist, kept so the patient app still
	// renders something sensible if the psychologist is removed.
	PsychologistName     string `gorm:"default:Tu Psicólogo" json:"psychologist_name"`
	PsychologistSchedule string `gorm:"default:Lunes a Viernes, 9:00 - 18:00" json:"psychologist_schedule"`
	PsychologistPhoto    string `json:"psychologist_photo,omitempty"`

	ClinicalSummary *string `json:"clinical_summary,omitempty"`

	// TokenVersion invalidates previously issued patient tokens when bumped.
	TokenVersion int `gorm:"default:0" json:"-"`

	IsOnline           bool       `json:"is_online"`
	LastActive         *time.Time `json:"last_active,omitempty"`
	TotalOnlineSeconds int64      `json:"total_online_seconds"`
	CreatedAt          time.Time  `json:"created_at"`

	Assignments []Assignment `json:"assignments,omitempty"`
}

// IsActiveNow reports whether the patient has a recent enough heartbeat.
func (p Patient) IsActiveNow() bool {
	return p.IsOnline && p.LastActive != nil && time.Since(*p.LastActive) < onlineWindow
}

// Questionnaire is a reusable instrument (PHQ-9, GAD-7, custom forms).
type Questionnaire struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title"`
	Icon        string    `gorm:"default:FileQuestion" json:"icon"`
	Description *string   `json:"description,omitempty"`
	Questions   JSONList  `gorm:"type:json" json:"questions"`
	CreatedAt   time.Time `json:"created_at"`
}

// Assignment links a questionnaire to a patient with a delivery schedule.
type Assignment struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	PatientID       int       `gorm:"index" json:"patient_id"`
	QuestionnaireID int       `gorm:"index" json:"questionnaire_id"`
	Status          string    `gorm:"default:active" json:"status"`
	Answers         JSONList  `gorm:"type:json" json:"answers,omitempty"`
	AssignedAt      time.Time `json:"assigned_at"`

	// Scheduling window. Dates are ISO strings as sent by the frontend.
	StartDate       *string    `json:"start_date,omitempty"`
	EndDate         *string    `json:"end_date,omitempty"`
	FrequencyType   *string    `json:"frequency_type,omitempty"`
	FrequencyCount  *int       `json:"frequency_count,omitempty"`
	WindowStart     *string    `json:"window_start,omitempty"`
	WindowEnd       *string    `json:"window_end,omitempty"`
	DeadlineHours   *int       `json:"deadline_hours,omitempty"`
	MinHoursBetween *int       `json:"min_hours_between,omitempty"`
	NextScheduledAt *time.Time `json:"next_scheduled_at,omitempty"`

	Questionnaire *Questionnaire `json:"questionnaire,omitempty"`
}

// QuestionnaireCompletion records one delivery cycle of an assignment.
type QuestionnaireCompletion struct {
	ID              int        `gorm:"primaryKey" json:"id"`
	AssignmentID    int        `gorm:"index" json:"assignment_id"`
	PatientID       int        `gorm:"index" json:"patient_id"`
	QuestionnaireID int        `json:"questionnaire_id"`
	Answers         JSONList   `gorm:"type:json" json:"answers,omitempty"`
	Status          string     `gorm:"default:pending" json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	IsDelayed       bool       `json:"is_delayed"`

	Questionnaire *Questionnaire `json:"questionnaire,omitempty"`
}

// TherapySession is an in-person or remote session record.
type TherapySession struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	PatientID      int       `gorm:"index" json:"patient_id"`
	PsychologistID int       `gorm:"index" json:"psychologist_id"`
	Date           time.Time `json:"date"`
	Duration       string    `gorm:"default:0 min" json:"duration"`
	Description    string    `json:"description"`
	Notes          string    `json:"notes"`
	ChatSnapshot   JSONList  `gorm:"type:json" json:"chat_snapshot,omitempty"`
}

// TableName keeps the table name distinct from HTTP sessions.
func (TherapySession) TableName() string {
	return "therapy_sessions"
}

// AssessmentStat is a scored instrument result shown on the patient card.
type AssessmentStat struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PatientID int       `gorm:"index" json:"patient_id"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	Status    string    `gorm:"default:mild" json:"status"`
	Color     string    `gorm:"default:teal" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a free-form clinical note about a patient.
type Note struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PatientID int       `gorm:"index" json:"patient_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     string    `gorm:"default:bg-white" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one chat message between a patient and their psychologist.
type Message struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	PatientID     int       `gorm:"index" json:"patient_id"`
	Content       string    `json:"content"`
	IsFromPatient bool      `gorm:"default:true" json:"is_from_patient"`
	Read          bool      `gorm:"default:false" json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

// AuditLog records a user or system action for compliance review.
type AuditLog struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	ActorID   int       `json:"actor_id"`
	ActorType string    `json:"actor_type"` // psychologist, patient, system
	ActorName string    `json:"actor_name"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DeviceToken is a registered push notification token for a patient device.
type DeviceToken struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PatientID int       `gorm:"index" json:"patient_id"`
	Token     string    `gorm:"uniqueIndex" json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every model for AutoMigrate.
func All() []any {
	return []any{
		&Psychologist{},
		&Patient{},
		&Questionnaire{},
		&Assignment{},
		&QuestionnaireCompletion{},
		&TherapySession{},
		&AssessmentStat{},
		&Note{},
		&Message{},
		&AuditLog{},
		&DeviceToken{},
	}
}

// TableNames returns the expected table names, used by the doctor command.
func TableNames() []string {
	return []string{
		"psychologists",
		"patients",
		"questionnaires",
		"assignments",
		"questionnaire_completions",
		"therapy_sessions",
		"assessment_stats",
		"notes",
		"messages",
		"audit_logs",
		"device_tokens",
	}
}
