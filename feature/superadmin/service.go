package superadmin

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/mail"
	"github.com/fsm00037/terauja-backend/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Validation failures surfaced as 400s by the handler.
var (
	ErrInvalidRole     = errors.New("invalid role, must be 'admin' or 'psychologist'")
	ErrEmailRegistered = errors.New("email already registered")
)

// PlatformStats is the superadmin overview of the whole installation.
type PlatformStats struct {
	TotalPsychologists        int64 `json:"total_psychologists"`
	TotalPatients             int64 `json:"total_patients"`
	OnlinePsychologists       int64 `json:"online_psychologists"`
	OnlinePatients            int64 `json:"online_patients"`
	TotalMessagesPsychologist int64 `json:"total_messages_psychologist"`
	TotalMessagesPatient      int64 `json:"total_messages_patient"`
}

// DailyMessageStat is one day's message volume split by sender type.
type DailyMessageStat struct {
	Date              string `json:"date"`
	PatientCount      int    `json:"patient_count"`
	PsychologistCount int    `json:"psychologist_count"`
}

// Service implements platform administration.
type Service struct {
	db     *gorm.DB
	mailer mail.Mailer
	logger *zap.Logger
}

// NewService creates a new superadmin service.
func NewService(db *gorm.DB, mailer mail.Mailer, logger *zap.Logger) *Service {
	return &Service{db: db, mailer: mailer, logger: logger}
}

// Stats counts accounts, online presence and message volume. Superadmin
// accounts are excluded from the psychologist numbers.
func (s *Service) Stats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalPsychologists, s.db.Model(&models.Psychologist{}).Where("role <> ?", models.RoleSuperadmin)},
		{&stats.TotalPatients, s.db.Model(&models.Patient{})},
		{&stats.OnlinePsychologists, s.db.Model(&models.Psychologist{}).
			Where("is_online = ? AND role <> ?", true, models.RoleSuperadmin)},
		{&stats.OnlinePatients, s.db.Model(&models.Patient{}).Where("is_online = ?", true)},
		{&stats.TotalMessagesPsychologist, s.db.Model(&models.Message{}).Where("is_from_patient = ?", false)},
		{&stats.TotalMessagesPatient, s.db.Model(&models.Message{}).Where("is_from_patient = ?", true)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// ListUsers returns every psychologist and admin account.
func (s *Service) ListUsers() ([]models.Psychologist, error) {
	var users []models.Psychologist
	err := s.db.Find(&users).Error
	return users, err
}

func generatePassword() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// CreateUser registers a psychologist or admin with a generated password
// that is emailed to the new account.
func (s *Service) CreateUser(name, email, role string) (*models.Psychologist, error) {
	if role == "" {
		role = models.RolePsychologist
	}
	if role != models.RoleAdmin && role != models.RolePsychologist {
		return nil, ErrInvalidRole
	}

	var existing models.Psychologist
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailRegistered
	}

	password := generatePassword()
	hashed, err := coreauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.Psychologist{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: hashed,
		Schedule: "Lunes a Viernes, 9:00 - 18:00",
	}

	if err := s.mailer.SendCredentials(email, password); err != nil {
		s.logger.Warn("failed to send credentials email", zap.String("email", email), zap.Error(err))
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DailyMessages aggregates message volume per day over the last 30 days.
// Aggregation happens in Go so the query works the same on sqlite and mysql.
func (s *Service) DailyMessages() ([]DailyMessageStat, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)

	var messages []models.Message
	if err := s.db.Where("created_at >= ?", since).Find(&messages).Error; err != nil {
		return nil, err
	}

	const day = "2006-01-02"
	byDate := make(map[string]*DailyMessageStat, 31)
	order := make([]string, 0, 31)
	for i := 0; i <= 30; i++ {
		date := since.AddDate(0, 0, i).Format(day)
		byDate[date] = &DailyMessageStat{Date: date}
		order = append(order, date)
	}

	for _, msg := range messages {
		stat, ok := byDate[msg.CreatedAt.Format(day)]
		if !ok {
			continue
		}
		if msg.IsFromPatient {
			stat.PatientCount++
		} else {
			stat.PsychologistCount++
		}
	}

	out := make([]DailyMessageStat, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out, nil
}
