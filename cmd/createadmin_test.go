package cmd

import (
	"path/filepath"
	"testing"

	"github.com/fsm00037/terauja-backend/core/auth"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAdminRequiresEmailArgument(t *testing.T) {
	RootCmd.SetArgs([]string{"create-admin"})
	err := RootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestCreateAdminUsesPositionalEmail(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "terauja.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_NAME", dbPath)

	RootCmd.SetArgs([]string{"create-admin", "ops@clinic.example", "--password", "s3cret", "--name", "Ops"})
	require.NoError(t, RootCmd.Execute())

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: dbPath})
	require.NoError(t, err)

	var created models.Psychologist
	require.NoError(t, db.Where("role = ?", models.RoleSuperadmin).First(&created).Error)
	assert.Equal(t, "ops@clinic.example", created.Email)
	assert.Equal(t, "Ops", created.Name)
	assert.True(t, auth.VerifyPassword("s3cret", created.Password))

	// A second run must not create another superadmin.
	RootCmd.SetArgs([]string{"create-admin", "other@clinic.example"})
	require.NoError(t, RootCmd.Execute())

	var count int64
	require.NoError(t, db.Model(&models.Psychologist{}).
		Where("role = ?", models.RoleSuperadmin).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
