package psychologists_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/core/storage/mocks"
	"github.com/fsm00037/terauja-backend/feature/audit"
	"github.com/fsm00037/terauja-backend/feature/psychologists"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testAuthCfg = coreauth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

// fakeMailer records the credentials it was asked to deliver.
type fakeMailer struct {
	to   []string
	code []string
}

func (m *fakeMailer) SendCredentials(to, accessCode string) error {
	m.to = append(m.to, to)
	m.code = append(m.code, accessCode)
	return nil
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, *fakeMailer, *mocks.Client) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	mailer := &fakeMailer{}
	store := new(mocks.Client)
	recorder := audit.NewRecorder(db, zap.NewNop())

	app := fiber.New()
	feature := psychologists.NewFeature(db, testAuthCfg, recorder, mailer, store, "terauja-media", zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, db, mailer, store
}

func adminToken(t *testing.T, db *gorm.DB) (string, models.Psychologist) {
	t.Helper()
	admin := models.Psychologist{Name: "Admin", Email: "admin@x.com", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": admin.ID, "role": "admin"})
	require.NoError(t, err)
	return token, admin
}

func TestCreateSendsCredentials(t *testing.T) {
	app, db, mailer, _ := setup(t)
	token, _ := adminToken(t, db)

	body, _ := json.Marshal(map[string]any{"name": "Dra. Ruiz", "email": "ruiz@x.com"})
	req := httptest.NewRequest("POST", "/psychologists", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, mailer.to, 1)
	assert.Equal(t, "ruiz@x.com", mailer.to[0])
	assert.NotEmpty(t, mailer.code[0])

	// Stored password is a hash of the mailed one.
	var created models.Psychologist
	require.NoError(t, db.Where("email = ?", "ruiz@x.com").First(&created).Error)
	assert.True(t, coreauth.VerifyPassword(mailer.code[0], created.Password))
}

func TestDeleteUnassignsPatients(t *testing.T) {
	app, db, _, _ := setup(t)
	token, _ := adminToken(t, db)

	victim := models.Psychologist{Name: "Leaving", Email: "bye@x.com"}
	require.NoError(t, db.Create(&victim).Error)
	patient := models.Patient{PatientCode: "P-1111", AccessCode: "AAAA", PsychologistID: &victim.ID, PsychologistName: victim.Name}
	require.NoError(t, db.Create(&patient).Error)

	req := httptest.NewRequest("DELETE", "/psychologists/2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed models.Patient
	require.NoError(t, db.First(&refreshed, patient.ID).Error)
	assert.Nil(t, refreshed.PsychologistID)
	assert.Equal(t, "Sin Asignar", refreshed.PsychologistName)
}

func TestProfileAccessControl(t *testing.T) {
	app, db, _, _ := setup(t)

	a := models.Psychologist{Name: "A", Email: "a@x.com"}
	b := models.Psychologist{Name: "B", Email: "b@x.com"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	tokenA, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": a.ID, "role": "psychologist"})
	require.NoError(t, err)

	// Own profile is readable.
	req := httptest.NewRequest("GET", "/profile/1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Someone else's is not.
	req = httptest.NewRequest("GET", "/profile/2", nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	resp, err = app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateProfilePartial(t *testing.T) {
	app, db, _, _ := setup(t)

	user := models.Psychologist{Name: "Before", Email: "u@x.com", Schedule: "old"}
	require.NoError(t, db.Create(&user).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": user.ID, "role": "psychologist"})
	require.NoError(t, err)

	body, _ := json.Marshal(map[string]any{"name": "After", "ai_style": "CBT"})
	req := httptest.NewRequest("PUT", "/profile/1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed models.Psychologist
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Equal(t, "After", refreshed.Name)
	assert.Equal(t, "CBT", refreshed.AIStyle)
	assert.Equal(t, "old", refreshed.Schedule, "unset fields are untouched")
}

func TestUploadPhoto(t *testing.T) {
	app, db, _, store := setup(t)

	user := models.Psychologist{Name: "Pic", Email: "pic@x.com"}
	require.NoError(t, db.Create(&user).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": user.ID, "role": "psychologist"})
	require.NoError(t, err)

	store.On("BucketExists", mock.Anything, "terauja-media").Return(true, nil)
	store.On("PutObject", mock.Anything, "terauja-media", "photos/psychologist_1",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	req := httptest.NewRequest("PUT", "/profile/1/photo", bytes.NewReader([]byte("jpegdata")))
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed models.Psychologist
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.Equal(t, "/terauja-media/photos/psychologist_1", refreshed.PhotoURL)
	store.AssertExpectations(t)
}

func TestUploadPhotoCreatesMissingBucket(t *testing.T) {
	app, db, _, store := setup(t)

	user := models.Psychologist{Name: "Pic", Email: "pic@x.com"}
	require.NoError(t, db.Create(&user).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": user.ID, "role": "psychologist"})
	require.NoError(t, err)

	store.On("BucketExists", mock.Anything, "terauja-media").Return(false, nil)
	store.On("MakeBucket", mock.Anything, "terauja-media", mock.Anything).Return(nil)
	store.On("PutObject", mock.Anything, "terauja-media", "photos/psychologist_1",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	req := httptest.NewRequest("PUT", "/profile/1/photo", bytes.NewReader([]byte("jpegdata")))
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	store.AssertExpectations(t)
}

func TestDeleteRemovesProfilePhoto(t *testing.T) {
	app, db, _, store := setup(t)
	token, _ := adminToken(t, db)

	victim := models.Psychologist{Name: "Leaving", Email: "bye@x.com",
		PhotoURL: "/terauja-media/photos/psychologist_2"}
	require.NoError(t, db.Create(&victim).Error)

	store.On("RemoveObject", mock.Anything, "terauja-media", "photos/psychologist_2",
		mock.Anything).Return(nil)

	req := httptest.NewRequest("DELETE", "/psychologists/2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	store.AssertExpectations(t)
}

func TestServeMedia(t *testing.T) {
	app, _, _, store := setup(t)

	photo := []byte("jpegdata")
	store.On("GetObject", mock.Anything, "terauja-media", "photos/psychologist_1",
		mock.Anything).Return(io.NopCloser(bytes.NewReader(photo)), nil)

	req := httptest.NewRequest("GET", "/terauja-media/photos/psychologist_1", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, photo, body)
}

func TestServeMediaMissingObject(t *testing.T) {
	app, _, _, store := setup(t)

	store.On("GetObject", mock.Anything, "terauja-media", "photos/unknown",
		mock.Anything).Return(nil, errors.New("object does not exist"))

	req := httptest.NewRequest("GET", "/terauja-media/photos/unknown", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
