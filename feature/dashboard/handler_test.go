package dashboard_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	coreauth "github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/dashboard"

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

	app := fiber.New()
	feature := dashboard.NewFeature(db, testAuthCfg, zap.NewNop())
	require.NoError(t, feature.Load(app))
	return app, db
}

func getStats(t *testing.T, app *fiber.App, token, query string) dashboard.Stats {
	t.Helper()
	req := httptest.NewRequest("GET", "/dashboard/stats"+query, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var stats dashboard.Stats
	require.NoError(t, json.Unmarshal(body, &stats))
	return stats
}

func seed(t *testing.T, db *gorm.DB) (models.Psychologist, string, models.Psychologist, string) {
	t.Helper()
	owner := models.Psychologist{Name: "Dra. Eva", Email: "eva@x.com", Role: models.RolePsychologist}
	require.NoError(t, db.Create(&owner).Error)
	ownerToken, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": owner.ID, "role": owner.Role})
	require.NoError(t, err)

	admin := models.Psychologist{Name: "Admin", Email: "admin@x.com", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	adminToken, err := coreauth.CreateAccessToken(testAuthCfg, map[string]any{"sub": admin.ID, "role": admin.Role})
	require.NoError(t, err)
	return owner, ownerToken, admin, adminToken
}

func TestStatsScopedAndCounted(t *testing.T) {
	app, db := setup(t)
	owner, ownerToken, _, adminToken := seed(t, db)

	other := models.Psychologist{Name: "Other", Email: "other@x.com"}
	require.NoError(t, db.Create(&other).Error)

	mine := models.Patient{PatientCode: "P-0001", AccessCode: "A", PsychologistID: &owner.ID, IsOnline: true}
	theirs := models.Patient{PatientCode: "P-0002", AccessCode: "B", PsychologistID: &other.ID}
	require.NoError(t, db.Create(&mine).Error)
	require.NoError(t, db.Create(&theirs).Error)

	require.NoError(t, db.Create(&models.Message{PatientID: mine.ID, Content: "hola", IsFromPatient: true}).Error)
	require.NoError(t, db.Create(&models.Message{PatientID: theirs.ID, Content: "ajena"}).Error)

	q := models.Questionnaire{Title: "PHQ-9"}
	require.NoError(t, db.Create(&q).Error)
	require.NoError(t, db.Create(&models.Assignment{
		PatientID: mine.ID, QuestionnaireID: q.ID, Status: models.AssignmentActive, AssignedAt: time.Now().UTC(),
	}).Error)
	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.QuestionnaireCompletion{
		PatientID: mine.ID, AssignmentID: 1, QuestionnaireID: q.ID, CompletedAt: &now,
	}).Error)

	stats := getStats(t, app, ownerToken, "")
	assert.EqualValues(t, 1, stats.TotalPatients)
	assert.EqualValues(t, 1, stats.TotalMessages)
	assert.EqualValues(t, 1, stats.CompletedQuestionaries)
	assert.Equal(t, 1, stats.PendingQuestionaries)
	assert.EqualValues(t, 1, stats.OnlinePatients)

	// Feed mixes messages and assignments, newest first.
	require.Len(t, stats.RecentActivity, 2)
	types := []string{stats.RecentActivity[0].Type, stats.RecentActivity[1].Type}
	assert.Contains(t, types, "message")
	assert.Contains(t, types, "assignment")
	assert.Equal(t, "Nuevo mensaje recibido", activityByType(stats.RecentActivity, "message").Action)
	assert.Equal(t, "Asignada PHQ-9", activityByType(stats.RecentActivity, "assignment").Action)

	// Admins see the whole platform.
	adminStats := getStats(t, app, adminToken, "")
	assert.EqualValues(t, 2, adminStats.TotalPatients)
	assert.EqualValues(t, 2, adminStats.TotalMessages)

	// And can narrow to one practitioner.
	scoped := getStats(t, app, adminToken, "?psychologist_id=1")
	assert.EqualValues(t, 1, scoped.TotalPatients)
}

func activityByType(feed []dashboard.Activity, typ string) dashboard.Activity {
	for _, a := range feed {
		if a.Type == typ {
			return a
		}
	}
	return dashboard.Activity{}
}

func TestStatsExpiresStaleAssignments(t *testing.T) {
	app, db := setup(t)
	owner, ownerToken, _, _ := seed(t, db)

	patient := models.Patient{PatientCode: "P-0003", AccessCode: "C", PsychologistID: &owner.ID}
	require.NoError(t, db.Create(&patient).Error)
	q := models.Questionnaire{Title: "GAD-7"}
	require.NoError(t, db.Create(&q).Error)

	past := "2020-01-01"
	stale := models.Assignment{
		PatientID: patient.ID, QuestionnaireID: q.ID,
		Status: models.AssignmentActive, EndDate: &past, AssignedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&stale).Error)

	stats := getStats(t, app, ownerToken, "")
	assert.Equal(t, 0, stats.PendingQuestionaries)

	var stored models.Assignment
	require.NoError(t, db.First(&stored, stale.ID).Error)
	assert.Equal(t, models.AssignmentCompleted, stored.Status)
}
