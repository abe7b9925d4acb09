package messages_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"
	"github.com/fsm00037/terauja-backend/feature/messages"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testAuthCfg = coreauth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

type fixture struct {
	app          *fiber.App
	db           *gorm.DB
	owner        models.Psychologist
	ownerToken   string
	patient      models.Patient
	patientToken string
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	app := fiber.New()
	feature := messages.NewFeature(db, testAuthCfg, audit.NewRecorder(db, zap.NewNop()), zap.NewNop())
	require.NoError(t, feature.Load(app))

	owner := models.Psychologist{Name: "Dra. Paz", Email: "paz@x.com", Role: models.RolePsychologist}
	require.NoError(t, db.Create(&owner).Error)
	ownerToken, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": owner.ID, "role": owner.Role})
	require.NoError(t, err)

	patient := models.Patient{PatientCode: "P-0001", AccessCode: "AAA", PsychologistID: &owner.ID}
	require.NoError(t, db.Create(&patient).Error)
	patientToken, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{
		"sub": patient.ID, "role": "patient", "token_version": patient.TokenVersion,
	})
	require.NoError(t, err)

	return fixture{app, db, owner, ownerToken, patient, patientToken}
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

func TestConversationRoundTrip(t *testing.T) {
	f := setup(t)

	status, _ := doJSON(t, f.app, "POST", "/messages", f.patientToken, map[string]any{
		"patient_id": f.patient.ID, "content": "hola", "is_from_patient": true,
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, f.app, "POST", "/messages", f.ownerToken, map[string]any{
		"patient_id": f.patient.ID, "content": "buenas", "is_from_patient": false,
	})
	require.Equal(t, fiber.StatusOK, status)

	status, body := doJSON(t, f.app, "GET", fmt.Sprintf("/messages/%d", f.patient.ID), f.ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var rows []models.Message
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "hola", rows[0].Content)
	assert.Equal(t, "buenas", rows[1].Content)
}

func TestPatientCannotWriteToOtherConversation(t *testing.T) {
	f := setup(t)

	other := models.Patient{PatientCode: "P-0002", AccessCode: "BBB", PsychologistID: &f.owner.ID}
	require.NoError(t, f.db.Create(&other).Error)

	status, _ := doJSON(t, f.app, "POST", "/messages", f.patientToken, map[string]any{
		"patient_id": other.ID, "content": "intruso", "is_from_patient": true,
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, f.app, "GET", fmt.Sprintf("/messages/%d", other.ID), f.patientToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestPsychologistNeedsOwnership(t *testing.T) {
	f := setup(t)

	stranger := models.Psychologist{Name: "Stranger", Email: "s@x.com"}
	require.NoError(t, f.db.Create(&stranger).Error)
	token, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": stranger.ID, "role": stranger.Role})
	require.NoError(t, err)

	status, _ := doJSON(t, f.app, "GET", fmt.Sprintf("/messages/%d", f.patient.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestMarkReadReturnsCount(t *testing.T) {
	f := setup(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.db.Create(&models.Message{
			PatientID: f.patient.ID, Content: "msg", IsFromPatient: true,
		}).Error)
	}
	// Already-read and outgoing messages are not counted.
	require.NoError(t, f.db.Create(&models.Message{
		PatientID: f.patient.ID, Content: "seen", IsFromPatient: true, Read: true,
	}).Error)
	require.NoError(t, f.db.Create(&models.Message{
		PatientID: f.patient.ID, Content: "mine", IsFromPatient: false,
	}).Error)

	status, body := doJSON(t, f.app, "POST", fmt.Sprintf("/messages/mark-read/%d", f.patient.ID), f.ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, float64(3), out["count"])

	var unread int64
	require.NoError(t, f.db.Model(&models.Message{}).
		Where("is_from_patient = ? AND read = ?", true, false).Count(&unread).Error)
	assert.EqualValues(t, 0, unread)
}

func TestDeleteConversation(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.db.Create(&models.Message{PatientID: f.patient.ID, Content: "bye"}).Error)

	status, _ := doJSON(t, f.app, "DELETE", fmt.Sprintf("/messages/%d", f.patient.ID), f.ownerToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	var count int64
	require.NoError(t, f.db.Model(&models.Message{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
