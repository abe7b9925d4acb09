package scheduler

import (
	"time"

	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// missedAfter is how long a delivered questionnaire stays answerable before
// it is marked missed.
const missedAfter = 24 * time.Hour

// TickResult summarizes one scheduler pass.
type TickResult struct {
	Sent   int
	Paused int
	Missed int
}

// Scheduler advances questionnaire completions through their lifecycle on a
// fixed interval.
type Scheduler struct {
	db     *gorm.DB
	logger *zap.Logger
	cron   *cron.Cron
}

// New creates a scheduler bound to the database.
func New(db *gorm.DB, logger *zap.Logger) *Scheduler {
	return &Scheduler{db: db, logger: logger}
}

// Start runs a tick every minute until Stop is called.
func (s *Scheduler) Start() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc("@every 1m", func() {
		res, err := s.Tick(time.Now().UTC())
		if err != nil {
			s.logger.Error("scheduler tick failed", zap.Error(err))
			return
		}
		if res.Sent > 0 || res.Missed > 0 {
			s.logger.Info("scheduler update",
				zap.Int("sent", res.Sent),
				zap.Int("paused", res.Paused),
				zap.Int("missed", res.Missed))
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("background scheduler started")
	return nil
}

// Stop halts the cron loop. Safe to call when never started.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Tick performs one pass: due pending completions become sent (or paused
// when their assignment is paused), and sent completions past the answer
// window become missed.
func (s *Scheduler) Tick(now time.Time) (TickResult, error) {
	var res TickResult

	type dueRow struct {
		CompletionID     int
		AssignmentStatus string
	}
	var due []dueRow
	err := s.db.Model(&models.QuestionnaireCompletion{}).
		Select("questionnaire_completions.id AS completion_id, assignments.status AS assignment_status").
		Joins("JOIN assignments ON assignments.id = questionnaire_completions.assignment_id").
		Where("questionnaire_completions.status = ?", models.CompletionPending).
		Where("questionnaire_completions.scheduled_at <= ?", now).
		Scan(&due).Error
	if err != nil {
		return res, err
	}

	var toSend, toPause []int
	for _, row := range due {
		if row.AssignmentStatus == models.AssignmentPaused {
			toPause = append(toPause, row.CompletionID)
		} else {
			toSend = append(toSend, row.CompletionID)
		}
	}
	if len(toSend) > 0 {
		if err := s.db.Model(&models.QuestionnaireCompletion{}).
			Where("id IN ?", toSend).
			Update("status", models.CompletionSent).Error; err != nil {
			return res, err
		}
		res.Sent = len(toSend)
	}
	if len(toPause) > 0 {
		if err := s.db.Model(&models.QuestionnaireCompletion{}).
			Where("id IN ?", toPause).
			Update("status", models.CompletionPaused).Error; err != nil {
			return res, err
		}
		res.Paused = len(toPause)
	}

	expired := s.db.Model(&models.QuestionnaireCompletion{}).
		Where("status = ?", models.CompletionSent).
		Where("scheduled_at <= ?", now.Add(-missedAfter)).
		Update("status", models.CompletionMissed)
	if expired.Error != nil {
		return res, expired.Error
	}
	res.Missed = int(expired.RowsAffected)

	return res, nil
}
