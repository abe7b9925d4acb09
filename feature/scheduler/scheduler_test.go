package scheduler_test

import (
	"testing"
	"time"

	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"
	"github.com/fsm00037/terauja-backend/feature/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *scheduler.Scheduler) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db, scheduler.New(db, zap.NewNop())
}

func seedAssignment(t *testing.T, db *gorm.DB, status string) models.Assignment {
	t.Helper()
	patient := models.Patient{PatientCode: "P-0001", AccessCode: "ABC123"}
	require.NoError(t, db.Create(&patient).Error)
	q := models.Questionnaire{Title: "PHQ-9"}
	require.NoError(t, db.Create(&q).Error)
	a := models.Assignment{PatientID: patient.ID, QuestionnaireID: q.ID, Status: status}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedCompletion(t *testing.T, db *gorm.DB, a models.Assignment, status string, scheduledAt time.Time) models.QuestionnaireCompletion {
	t.Helper()
	c := models.QuestionnaireCompletion{
		AssignmentID:    a.ID,
		PatientID:       a.PatientID,
		QuestionnaireID: a.QuestionnaireID,
		Status:          status,
		ScheduledAt:     &scheduledAt,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func completionStatus(t *testing.T, db *gorm.DB, id int) string {
	t.Helper()
	var c models.QuestionnaireCompletion
	require.NoError(t, db.First(&c, id).Error)
	return c.Status
}

func TestTickSendsDuePending(t *testing.T) {
	db, s := setup(t)
	a := seedAssignment(t, db, models.AssignmentActive)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	due := seedCompletion(t, db, a, models.CompletionPending, now.Add(-time.Minute))
	future := seedCompletion(t, db, a, models.CompletionPending, now.Add(time.Hour))

	res, err := s.Tick(now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, models.CompletionSent, completionStatus(t, db, due.ID))
	assert.Equal(t, models.CompletionPending, completionStatus(t, db, future.ID))
}

func TestTickPausesWhenAssignmentPaused(t *testing.T) {
	db, s := setup(t)
	a := seedAssignment(t, db, models.AssignmentPaused)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	due := seedCompletion(t, db, a, models.CompletionPending, now.Add(-time.Minute))

	res, err := s.Tick(now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Equal(t, 1, res.Paused)
	assert.Equal(t, models.CompletionPaused, completionStatus(t, db, due.ID))
}

func TestTickMarksMissedAfterWindow(t *testing.T) {
	db, s := setup(t)
	a := seedAssignment(t, db, models.AssignmentActive)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	stale := seedCompletion(t, db, a, models.CompletionSent, now.Add(-25*time.Hour))
	fresh := seedCompletion(t, db, a, models.CompletionSent, now.Add(-23*time.Hour))

	res, err := s.Tick(now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Missed)
	assert.Equal(t, models.CompletionMissed, completionStatus(t, db, stale.ID))
	assert.Equal(t, models.CompletionSent, completionStatus(t, db, fresh.ID))
}

func TestTickLongOverduePendingGoesMissed(t *testing.T) {
	db, s := setup(t)
	a := seedAssignment(t, db, models.AssignmentActive)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	// A pending item scheduled a week ago is delivered and immediately
	// expired on the same pass.
	old := seedCompletion(t, db, a, models.CompletionPending, now.Add(-7*24*time.Hour))

	res, err := s.Tick(now)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Missed)
	assert.Equal(t, models.CompletionMissed, completionStatus(t, db, old.ID))
}

func TestStartStop(t *testing.T) {
	_, s := setup(t)
	require.NoError(t, s.Start())
	s.Stop()
}
