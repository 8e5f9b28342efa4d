package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action types recorded in LogEntry.ActionType.
const (
	ActionOptimize     = "optimize"
	ActionOptimizeList = "optimize_list"
	ActionCreateList   = "create_list"
	ActionUpdateList   = "update_list"
	ActionDeleteList   = "delete_list"
	ActionLogin        = "login"
	ActionRegister     = "register"
)

// Log levels stored in LogEntry.Level.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogEntry is a request or audit log document. Context-specific data goes in Fields.
type LogEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
	Level      string             `bson:"level" json:"level"`
	Message    string             `bson:"message" json:"message"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string             `bson:"method,omitempty" json:"method,omitempty"`
	Path       string             `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string             `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	UserID     string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	UserEmail  string             `bson:"user_email,omitempty" json:"user_email,omitempty"`
	ActionType string             `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]any     `bson:"fields,omitempty" json:"fields,omitempty"`
}

// LevelForStatus maps an HTTP status to a log level.
func LevelForStatus(status int) string {
	switch {
	case status >= 500:
		return LogLevelError
	case status >= 400:
		return LogLevelWarn
	default:
		return LogLevelInfo
	}
}

// WithFields merges fields into Fields. A nil or empty map leaves Fields
// untouched, so entries without extra data are stored without the key.
func (e *LogEntry) WithFields(fields map[string]any) *LogEntry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions filters log queries. Zero values mean "any".
type LogQueryOptions struct {
	RequestID  string
	Level      string
	Method     string
	Path       string
	UserID     string
	ActionType string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
