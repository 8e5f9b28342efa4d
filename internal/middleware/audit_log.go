package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/model"
)

// AuditLog records a user action (one of the model.Action* constants).
func AuditLog(sink *AsyncLogger, c *gin.Context, action, message string, fields map[string]any) {
	if sink == nil {
		return
	}
	entry := newLogEntry(c, model.LogLevelInfo, message)
	entry.ActionType = action
	entry.WithFields(fields)
	sink.Log(entry)
}

// AuditLogError records a failed user action.
func AuditLogError(sink *AsyncLogger, c *gin.Context, action, message string, err error, fields map[string]any) {
	if sink == nil {
		return
	}
	entry := newLogEntry(c, model.LogLevelError, message)
	entry.ActionType = action
	if err != nil {
		entry.Error = err.Error()
	}
	entry.WithFields(fields)
	sink.Log(entry)
}
