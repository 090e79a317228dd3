package activitylog

import (
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Record writes an audit entry for the authenticated user. Failures are logged, never surfaced.
func Record(c *gin.Context, r Recorder, subject string, subjectID uint, action, message string, properties any) {
	if r == nil {
		return
	}

	entry := ActivityLog{
		Level:   LevelInfo,
		Subject: subject,
		Action:  action,
		Message: message,
	}
	if subjectID != 0 {
		id := subjectID
		entry.SubjectID = &id
	}
	if uid, ok := middlewares.CurrentUserID(c); ok {
		entry.UserID = &uid
	}

	if err := r.Log(entry, properties); err != nil {
		zap.L().Warn("failed to insert activity log",
			zap.String("subject", subject),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
