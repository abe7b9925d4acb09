package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"
	"github.com/fsm00037/terauja-backend/feature/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testAuthCfg = coreauth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	recorder := audit.NewRecorder(db, zap.NewNop())
	app := fiber.New()
	feature := auth.NewFeature(db, testAuthCfg, recorder, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body any, token string) (int, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func TestLoginSuccess(t *testing.T) {
	app, db := setup(t)

	hash, err := coreauth.HashPassword("admin")
	require.NoError(t, err)
	user := models.Psychologist{Name: "Super Admin", Email: "admin@psicouja.com", Password: hash, Role: models.RoleAdmin}
	require.NoError(t, db.Create(&user).Error)

	code, raw := postJSON(t, app, "/login", auth.LoginRequest{Email: "admin@psicouja.com", Password: "admin"}, "")
	assert.Equal(t, fiber.StatusOK, code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "admin", body["role"])
	assert.NotEmpty(t, body["access_token"])

	// Login is audited and the account is marked online.
	var count int64
	db.Model(&models.AuditLog{}).Where("action = ?", "LOGIN").Count(&count)
	assert.EqualValues(t, 1, count)

	var refreshed models.Psychologist
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.True(t, refreshed.IsOnline)
}

func TestLoginWrongPassword(t *testing.T) {
	app, db := setup(t)

	hash, err := coreauth.HashPassword("correct")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Psychologist{Email: "p@x.com", Password: hash}).Error)

	code, _ := postJSON(t, app, "/login", auth.LoginRequest{Email: "p@x.com", Password: "wrong"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestPatientLoginAndStatus(t *testing.T) {
	app, db := setup(t)

	psychID := 1
	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.Psychologist{ID: psychID, Email: "dr@x.com", IsOnline: true, LastActive: &now}).Error)
	patient := models.Patient{PatientCode: "P-AB12", AccessCode: "SECRET", PsychologistID: &psychID}
	require.NoError(t, db.Create(&patient).Error)

	code, raw := postJSON(t, app, "/auth", auth.PatientLoginRequest{PatientCode: "P-AB12", AccessCode: "SECRET"}, "")
	assert.Equal(t, fiber.StatusOK, code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	// Token works against a patient-guarded endpoint.
	req := httptest.NewRequest("GET", "/patient/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status["is_online"])
	assert.True(t, status["psychologist_is_online"])
}

func TestPatientTokenVersionMismatch(t *testing.T) {
	app, db := setup(t)

	patient := models.Patient{PatientCode: "P-CD34", AccessCode: "CODE", TokenVersion: 0}
	require.NoError(t, db.Create(&patient).Error)

	code, raw := postJSON(t, app, "/auth", auth.PatientLoginRequest{PatientCode: "P-CD34", AccessCode: "CODE"}, "")
	require.Equal(t, fiber.StatusOK, code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	token, _ := body["access_token"].(string)

	// Bumping the token version invalidates the issued token.
	require.NoError(t, db.Model(&models.Patient{}).Where("id = ?", patient.ID).Update("token_version", 1).Error)

	req := httptest.NewRequest("GET", "/patient/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHeartbeatAccumulatesTime(t *testing.T) {
	app, db := setup(t)

	past := time.Now().UTC().Add(-30 * time.Second)
	hash, err := coreauth.HashPassword("pw")
	require.NoError(t, err)
	user := models.Psychologist{Email: "beat@x.com", Password: hash, IsOnline: true, LastActive: &past}
	require.NoError(t, db.Create(&user).Error)

	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": user.ID, "role": "psychologist"})
	require.NoError(t, err)

	code, _ := postJSON(t, app, "/heartbeat", nil, token)
	assert.Equal(t, fiber.StatusOK, code)

	var refreshed models.Psychologist
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.InDelta(t, 30, refreshed.TotalOnlineSeconds, 2)
}

func TestLogout(t *testing.T) {
	app, db := setup(t)

	hash, err := coreauth.HashPassword("pw")
	require.NoError(t, err)
	user := models.Psychologist{Email: "out@x.com", Password: hash, IsOnline: true}
	require.NoError(t, db.Create(&user).Error)

	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": user.ID, "role": "psychologist"})
	require.NoError(t, err)

	code, _ := postJSON(t, app, "/logout", nil, token)
	assert.Equal(t, fiber.StatusOK, code)

	var refreshed models.Psychologist
	require.NoError(t, db.First(&refreshed, user.ID).Error)
	assert.False(t, refreshed.IsOnline)
}
