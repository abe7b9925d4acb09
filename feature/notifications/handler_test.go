package notifications_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/core/push"
	"github.com/fsm00037/terauja-backend/feature/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testAuthCfg = coreauth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

// fakeSender records deliveries and can mark tokens as unregistered.
type fakeSender struct {
	sent    []push.Notification
	invalid map[string]bool
}

func (f *fakeSender) Send(_ context.Context, n push.Notification) error {
	if f.invalid[n.Token] {
		return push.ErrInvalidToken
	}
	f.sent = append(f.sent, n)
	return nil
}

type fixture struct {
	app        *fiber.App
	db         *gorm.DB
	sender     *fakeSender
	patient    models.Patient
	userToken  string
	patientTok string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sender := &fakeSender{invalid: map[string]bool{}}
	app := fiber.New()
	require.NoError(t, notifications.NewFeature(db, testAuthCfg, sender, zap.NewNop()).Load(app))

	user := models.Psychologist{Name: "Dr. X", Email: "x@x.com", Role: models.RolePsychologist}
	require.NoError(t, db.Create(&user).Error)
	patient := models.Patient{PatientCode: "P-0001", AccessCode: "ABC123", PsychologistID: &user.ID}
	require.NoError(t, db.Create(&patient).Error)

	userToken, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": user.ID, "role": user.Role})
	require.NoError(t, err)
	patientTok, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{
		"sub": patient.ID, "role": "patient", "token_version": patient.TokenVersion,
	})
	require.NoError(t, err)

	return &fixture{app: app, db: db, sender: sender, patient: patient, userToken: userToken, patientTok: patientTok}
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestRegisterTokenUpsert(t *testing.T) {
	f := setup(t)

	status, body := doJSON(t, f.app, "POST", "/notifications/register-token", f.patientTok,
		map[string]string{"token": "device-a"})
	require.Equal(t, fiber.StatusOK, status)
	var first map[string]any
	require.NoError(t, json.Unmarshal(body, &first))
	assert.Equal(t, "Token registered", first["message"])

	// Registering the same token again updates instead of duplicating.
	status, body = doJSON(t, f.app, "POST", "/notifications/register-token", f.patientTok,
		map[string]string{"token": "device-a"})
	require.Equal(t, fiber.StatusOK, status)
	var second map[string]any
	require.NoError(t, json.Unmarshal(body, &second))
	assert.Equal(t, "Token updated", second["message"])
	assert.Equal(t, first["token_id"], second["token_id"])

	var count int64
	require.NoError(t, f.db.Model(&models.DeviceToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnregisterToken(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&models.DeviceToken{PatientID: f.patient.ID, Token: "device-b"}).Error)

	status, _ := doJSON(t, f.app, "DELETE", "/notifications/unregister-token", f.patientTok,
		map[string]string{"token": "device-b"})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, f.app, "DELETE", "/notifications/unregister-token", f.patientTok,
		map[string]string{"token": "device-b"})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSendToPatientPrunesInvalidTokens(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&models.DeviceToken{PatientID: f.patient.ID, Token: "good"}).Error)
	require.NoError(t, f.db.Create(&models.DeviceToken{PatientID: f.patient.ID, Token: "stale"}).Error)
	f.sender.invalid["stale"] = true

	status, body := doJSON(t, f.app, "POST", "/notifications/send", f.userToken, map[string]any{
		"patient_id": f.patient.ID, "title": "Hola", "body": "Nuevo cuestionario",
	})
	require.Equal(t, fiber.StatusOK, status)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 1, out["success_count"])
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "good", f.sender.sent[0].Token)
	assert.Equal(t, "Hola", f.sender.sent[0].Title)

	// The stale token was removed from the database.
	var count int64
	require.NoError(t, f.db.Model(&models.DeviceToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSendUnknownPatient(t *testing.T) {
	f := setup(t)
	status, _ := doJSON(t, f.app, "POST", "/notifications/send", f.userToken, map[string]any{
		"patient_id": 9999, "title": "x", "body": "y",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestTestEndpointReportsTokens(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&models.DeviceToken{PatientID: f.patient.ID, Token: "device-c"}).Error)

	status, body := doJSON(t, f.app, "POST", "/notifications/test", f.patientTok, nil)
	require.Equal(t, fiber.StatusOK, status)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 1, out["success_count"])
	assert.EqualValues(t, 1, out["tokens_found"])
	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "Notificación de Prueba", f.sender.sent[0].Title)
}

func TestRegisterRequiresPatientRole(t *testing.T) {
	f := setup(t)
	status, _ := doJSON(t, f.app, "POST", "/notifications/register-token", f.userToken,
		map[string]string{"token": "device-d"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
