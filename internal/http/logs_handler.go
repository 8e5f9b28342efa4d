package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/service"
)

// LogsHandler lets an authenticated user read their own request and audit log.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a logs handler.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// List handles GET /api/logs.
//
// @Summary      List the caller's log entries
// @Description  Request and audit entries recorded for the authenticated user, newest first.
// @Tags         Logs
// @Produce      json
// @Param        action query string false "Audit action" Enums(optimize, optimize_list, create_list, update_list, delete_list, login, register)
// @Param        level  query string false "Log level" Enums(info, warn, error)
// @Param        limit  query int    false "Page size" default(100) minimum(1) maximum(1000)
// @Param        skip   query int    false "Entries to skip" default(0) minimum(0)
// @Success      200 {object} dto.SuccessResponse{data=dto.LogsResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse "Storage not available"
// @Security     BearerAuth
// @Router       /api/logs [get]
func (h *LogsHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var query dto.LogsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		builder.BindError(err)
		return
	}

	ctx := c.Request.Context()
	opts := query.Options(middleware.GetUserID(c))
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		storageError(builder, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		storageError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewLogsResponse(entries, total, opts))
}
