package audit_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/audit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestRecorderPersistsEntry(t *testing.T) {
	db := setupDB(t)
	rec := audit.NewRecorder(db, zap.NewNop())

	rec.Record(7, "psychologist", "Dr. Test", "LOGIN", "Successful login", "127.0.0.1")
	rec.Record(7, "psychologist", "Dr. Test", "CREATE_NOTE", map[string]any{"patient_id": 3}, "")

	var logs []models.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, "LOGIN", logs[0].Action)
	assert.Equal(t, "Successful login", logs[0].Details)
	assert.Equal(t, "127.0.0.1", logs[0].IPAddress)

	var details map[string]any
	require.NoError(t, json.Unmarshal([]byte(logs[1].Details), &details))
	assert.Equal(t, float64(3), details["patient_id"])
}

func TestHandleListRequiresAdmin(t *testing.T) {
	db := setupDB(t)
	authCfg := auth.Config{SecretKey: "test-secret", TokenTTLHours: 1}

	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)
	psych := models.Psychologist{Name: "Plain", Email: "p@x.com", Password: hash, Role: models.RolePsychologist}
	admin := models.Psychologist{Name: "Admin", Email: "a@x.com", Password: hash, Role: models.RoleAdmin}
	require.NoError(t, db.Create(&psych).Error)
	require.NoError(t, db.Create(&admin).Error)

	rec := audit.NewRecorder(db, zap.NewNop())
	rec.Record(admin.ID, "psychologist", admin.Name, "LOGIN", nil, "")

	app := fiber.New()
	audit.NewHandler(db, authCfg, zap.NewNop()).RegisterRoutes(app)

	token := func(id int) string {
		tok, err := auth.CreateAccessToken(authCfg, map[string]any{"sub": id, "role": "psychologist"})
		require.NoError(t, err)
		return tok
	}

	// Non-admin is rejected.
	req := httptest.NewRequest("GET", "/audit-logs", nil)
	req.Header.Set("Authorization", "Bearer "+token(psych.ID))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admin sees the log.
	req = httptest.NewRequest("GET", "/audit-logs", nil)
	req.Header.Set("Authorization", "Bearer "+token(admin.ID))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var logs []models.AuditLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logs))
	assert.Len(t, logs, 1)
	assert.Equal(t, "LOGIN", logs[0].Action)
}
