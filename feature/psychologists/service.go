package psychologists

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/mail"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/core/storage"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages psychologist accounts.
type Service struct {
	db       *gorm.DB
	recorder *audit.Recorder
	mailer   mail.Mailer
	store    storage.Client
	bucket   string
	logger   *zap.Logger
}

// NewService creates a new psychologists service.
func NewService(db *gorm.DB, recorder *audit.Recorder, mailer mail.Mailer, store storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, recorder: recorder, mailer: mailer, store: store, bucket: bucket, logger: logger}
}

// generatePassword returns a URL-safe random password for a new account.
func generatePassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// List returns all practitioner accounts, excluding superadmins.
func (s *Service) List() ([]models.Psychologist, error) {
	var users []models.Psychologist
	err := s.db.Where("role <> ?", models.RoleSuperadmin).Find(&users).Error
	return users, err
}

// Create registers a new psychologist with a generated password and emails
// the credentials to the new account.
func (s *Service) Create(user *models.Psychologist, actor *models.Psychologist) error {
	rawPassword, err := generatePassword()
	if err != nil {
		return err
	}
	hash, err := coreauth.HashPassword(rawPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	if err := s.mailer.SendCredentials(user.Email, rawPassword); err != nil {
		s.logger.Warn("failed to send credentials email", zap.Error(err), zap.String("email", user.Email))
	}

	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create psychologist: %w", err)
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "CREATE_PSYCHOLOGIST",
		map[string]any{"created_email": user.Email, "role": user.Role}, "")
	return nil
}

// Delete removes an account, first unassigning all of its patients so they
// remain reachable for reassignment. The stored profile photo is removed
// from the media bucket alongside.
func (s *Service) Delete(ctx context.Context, userID int, actor *models.Psychologist) error {
	var user models.Psychologist
	if err := s.db.First(&user, userID).Error; err != nil {
		return gorm.ErrRecordNotFound
	}

	err := s.db.Model(&models.Patient{}).Where("psychologist_id = ?", userID).Updates(map[string]any{
		"psychologist_id":       nil,
		"psychologist_name":     "Sin Asignar",
		"psychologist_schedule": "",
	}).Error
	if err != nil {
		return fmt.Errorf("failed to unassign patients: %w", err)
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete psychologist: %w", err)
	}

	if s.store != nil && user.PhotoURL != "" {
		objectName := strings.TrimPrefix(user.PhotoURL, "/"+s.bucket+"/")
		if err := s.store.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("failed to remove profile photo", zap.Error(err), zap.String("object", objectName))
		}
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "DELETE_PSYCHOLOGIST",
		map[string]any{"deleted_user_id": userID}, "")
	return nil
}

// Get returns a single account.
func (s *Service) Get(userID int) (*models.Psychologist, error) {
	var user models.Psychologist
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the updatable profile fields.
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Schedule       *string `json:"schedule"`
	Phone          *string `json:"phone"`
	AIStyle        *string `json:"ai_style"`
	AITone         *string `json:"ai_tone"`
	AIInstructions *string `json:"ai_instructions"`
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(userID int, update ProfileUpdate, actor *models.Psychologist) (*models.Psychologist, error) {
	var user models.Psychologist
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Schedule != nil {
		user.Schedule = *update.Schedule
	}
	if update.Phone != nil {
		user.Phone = update.Phone
	}
	if update.AIStyle != nil {
		user.AIStyle = *update.AIStyle
	}
	if update.AITone != nil {
		user.AITone = *update.AITone
	}
	if update.AIInstructions != nil {
		user.AIInstructions = *update.AIInstructions
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.recorder.Record(actor.ID, "psychologist", actor.Name, "UPDATE_PROFILE",
		map[string]any{"user_id": userID}, "")
	return &user, nil
}

// UploadPhoto stores a profile photo in object storage and records its URL.
func (s *Service) UploadPhoto(ctx context.Context, userID int, reader io.Reader, size int64, contentType string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	var user models.Psychologist
	if err := s.db.First(&user, userID).Error; err != nil {
		return "", err
	}

	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check media bucket: %w", err)
	}
	if !exists {
		if err := s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create media bucket: %w", err)
		}
	}

	objectName := fmt.Sprintf("photos/psychologist_%d", userID)
	_, err = s.store.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	photoURL := fmt.Sprintf("/%s/%s", s.bucket, objectName)
	if err := s.db.Model(&user).Update("photo_url", photoURL).Error; err != nil {
		return "", fmt.Errorf("failed to record photo url: %w", err)
	}

	// Keep the snapshot on assigned patients in sync.
	if err := s.db.Model(&models.Patient{}).Where("psychologist_id = ?", userID).
		Update("psychologist_photo", photoURL).Error; err != nil {
		s.logger.Warn("failed to refresh patient photo snapshots", zap.Error(err))
	}
	return photoURL, nil
}

// Media reads a stored object from the media bucket, so the photo_url values
// recorded by UploadPhoto resolve against this server.
func (s *Service) Media(ctx context.Context, objectName string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("media storage is not configured")
	}

	rc, err := s.store.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media object: %w", err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
