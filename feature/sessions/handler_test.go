package sessions_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"
	"github.com/fsm00037/terauja-backend/feature/sessions"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testAuthCfg = coreauth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

func setup(t *testing.T) (*fiber.App, *gorm.DB, string, models.Psychologist, models.Patient) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	app := fiber.New()
	feature := sessions.NewFeature(db, testAuthCfg, audit.NewRecorder(db, zap.NewNop()), zap.NewNop())
	require.NoError(t, feature.Load(app))

	owner := models.Psychologist{Name: "Dra. Rio", Email: "rio@x.com", Role: models.RolePsychologist}
	require.NoError(t, db.Create(&owner).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": owner.ID, "role": owner.Role})
	require.NoError(t, err)

	patient := models.Patient{PatientCode: "P-0001", AccessCode: "AAA", PsychologistID: &owner.ID}
	require.NoError(t, db.Create(&patient).Error)
	return app, db, token, owner, patient
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestCreateStampsPsychologist(t *testing.T) {
	app, _, token, owner, patient := setup(t)

	status, body := doJSON(t, app, "POST", "/sessions", token, map[string]any{
		"patient_id":      patient.ID,
		"psychologist_id": 999,
		"date":            time.Now().UTC().Format(time.RFC3339),
		"duration":        "50 min",
		"description":     "Primera sesión",
	})
	require.Equal(t, fiber.StatusOK, status)

	var created models.TherapySession
	require.NoError(t, json.Unmarshal(body, &created))
	// The creator, not the posted id, owns the session.
	assert.Equal(t, owner.ID, created.PsychologistID)
}

func TestListScopedToOwnSessions(t *testing.T) {
	app, db, token, owner, patient := setup(t)

	other := models.Psychologist{Name: "Other", Email: "o@x.com"}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, db.Create(&models.TherapySession{
		PatientID: patient.ID, PsychologistID: owner.ID, Date: time.Now().UTC(), Description: "mine",
	}).Error)
	require.NoError(t, db.Create(&models.TherapySession{
		PatientID: patient.ID, PsychologistID: other.ID, Date: time.Now().UTC(), Description: "theirs",
	}).Error)

	status, body := doJSON(t, app, "GET", fmt.Sprintf("/sessions/%d", patient.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)
	var rows []models.TherapySession
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "mine", rows[0].Description)
}

func TestPartialUpdate(t *testing.T) {
	app, db, token, owner, patient := setup(t)

	session := models.TherapySession{
		PatientID: patient.ID, PsychologistID: owner.ID,
		Date: time.Now().UTC(), Duration: "50 min", Description: "before",
	}
	require.NoError(t, db.Create(&session).Error)

	status, body := doJSON(t, app, "PUT", fmt.Sprintf("/sessions/%d", session.ID), token, map[string]any{
		"notes": "homework assigned",
	})
	require.Equal(t, fiber.StatusOK, status)

	var updated models.TherapySession
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "homework assigned", updated.Notes)
	assert.Equal(t, "before", updated.Description, "unset fields are untouched")
	assert.Equal(t, "50 min", updated.Duration)
}

func TestDeleteSession(t *testing.T) {
	app, db, token, owner, patient := setup(t)

	session := models.TherapySession{PatientID: patient.ID, PsychologistID: owner.ID, Date: time.Now().UTC()}
	require.NoError(t, db.Create(&session).Error)

	status, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/sessions/%d", session.ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)

	var count int64
	require.NoError(t, db.Model(&models.TherapySession{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	status, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/sessions/%d", session.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
