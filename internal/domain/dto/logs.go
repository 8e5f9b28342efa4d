package dto

import (
	"time"

	"github.com/guttosm/balance-service/internal/domain/model"
)

// DefaultLogsLimit is the page size of GET /api/logs when limit is omitted.
const DefaultLogsLimit = 100

// LogsQuery holds the query parameters of GET /api/logs.
type LogsQuery struct {
	Action string `form:"action" binding:"omitempty,oneof=optimize optimize_list create_list update_list delete_list login register"`
	Level  string `form:"level" binding:"omitempty,oneof=info warn error"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Skip   int    `form:"skip" binding:"omitempty,min=0"`
}

// Options turns the query into repository filters for userID.
func (q LogsQuery) Options(userID string) model.LogQueryOptions {
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLogsLimit
	}
	return model.LogQueryOptions{
		UserID:     userID,
		ActionType: q.Action,
		Level:      q.Level,
		Limit:      limit,
		Skip:       q.Skip,
	}
}

// LogEntryResponse is one request or audit entry of the caller.
type LogEntryResponse struct {
	ID         string         `json:"id" example:"65b2f0c8e4b0a1a2b3c4d5e6"`
	Timestamp  time.Time      `json:"timestamp"`
	Level      string         `json:"level" example:"info"`
	Message    string         `json:"message" example:"saved list created"`
	RequestID  string         `json:"request_id,omitempty"`
	Method     string         `json:"method,omitempty" example:"POST"`
	Path       string         `json:"path,omitempty" example:"/api/lists"`
	StatusCode int            `json:"status_code,omitempty" example:"201"`
	DurationMS int64          `json:"duration_ms,omitempty" example:"3"`
	ActionType string         `json:"action_type,omitempty" example:"create_list"`
	Fields     map[string]any `json:"fields,omitempty"`
} // @name LogEntryResponse

// LogsResponse is a page of log entries, newest first. Total counts every
// matching entry, not just this page.
type LogsResponse struct {
	Entries []LogEntryResponse `json:"entries"`
	Total   int64              `json:"total" example:"1"`
	Limit   int                `json:"limit" example:"100"`
	Skip    int                `json:"skip" example:"0"`
} // @name LogsResponse

// NewLogsResponse renders a page of entries.
func NewLogsResponse(entries []model.LogEntry, total int64, opts model.LogQueryOptions) LogsResponse {
	out := make([]LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogEntryResponse{
			ID:         e.ID.Hex(),
			Timestamp:  e.Timestamp,
			Level:      e.Level,
			Message:    e.Message,
			RequestID:  e.RequestID,
			Method:     e.Method,
			Path:       e.Path,
			StatusCode: e.StatusCode,
			DurationMS: e.Duration,
			ActionType: e.ActionType,
			Fields:     e.Fields,
		})
	}
	return LogsResponse{Entries: out, Total: total, Limit: opts.Limit, Skip: opts.Skip}
}
