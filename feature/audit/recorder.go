package audit

import (
	"encoding/json"
	"time"

	"github.com/fsm00037/terauja-backend/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder writes audit log entries. Recording never fails the calling
// handler: persistence errors are logged and swallowed.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates an audit recorder.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Record persists one audit entry and mirrors it to the application log.
// details may be a string or any JSON-encodable value.
func (r *Recorder) Record(actorID int, actorType, actorName, action string, details any, ip string) {
	detailsStr := ""
	switch d := details.(type) {
	case nil:
	case string:
		detailsStr = d
	default:
		if raw, err := json.Marshal(d); err == nil {
			detailsStr = string(raw)
		}
	}

	entry := models.AuditLog{
		ActorID:   actorID,
		ActorType: actorType,
		ActorName: actorName,
		Action:    action,
		Details:   detailsStr,
		IPAddress: ip,
		Timestamp: time.Now().UTC(),
	}

	if err := r.db.Create(&entry).Error; err != nil {
		r.logger.Error("failed to write audit log", zap.Error(err), zap.String("action", action))
		return
	}

	r.logger.Info("audit",
		zap.String("actor_type", actorType),
		zap.String("actor_name", actorName),
		zap.Int("actor_id", actorID),
		zap.String("action", action),
		zap.String("details", detailsStr),
	)
}
