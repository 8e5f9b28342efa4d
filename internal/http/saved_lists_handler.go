package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/circuitbreaker"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/repository"
	"github.com/guttosm/balance-service/internal/service"
)

// SavedListsHandler serves the saved item list routes. Lists are scoped to
// the authenticated user; without JWT auth every caller shares the
// anonymous owner.
type SavedListsHandler struct {
	lists     service.SavedListsService
	optimizer service.BalanceOptimizer
	symbol    string
	maxItems  int
	audit     *middleware.AsyncLogger
}

// NewSavedListsHandler creates a handler; options are those of NewHandler.
func NewSavedListsHandler(lists service.SavedListsService, optimizer service.BalanceOptimizer, opts ...HandlerOption) *SavedListsHandler {
	base := NewHandler(optimizer, opts...)
	return &SavedListsHandler{
		lists:     lists,
		optimizer: optimizer,
		symbol:    base.symbol,
		maxItems:  base.maxItems,
		audit:     base.audit,
	}
}

// storageError maps service and repository failures to HTTP answers.
func storageError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
	case errors.Is(err, service.ErrRepositoryNotConfigured),
		errors.Is(err, circuitbreaker.ErrCircuitOpen):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func (h *SavedListsHandler) bindList(c *gin.Context, builder *ResponseBuilder) (*dto.SavedListRequest, []model.CatalogItem, bool) {
	req, err := BindJSON[dto.SavedListRequest](c)
	if err != nil {
		builder.BindError(err)
		return nil, nil, false
	}
	if len(req.Items) > h.maxItems {
		builder.Errorf(http.StatusBadRequest, i18n.ErrKeyTooManyItems, nil, h.maxItems)
		return nil, nil, false
	}
	items, err := dto.ToCatalog(req.Items)
	if err != nil {
		builder.CatalogError(err)
		return nil, nil, false
	}
	return req, items, true
}

// Create handles POST /api/lists.
//
// @Summary      Save an item list
// @Tags         Lists
// @Accept       json
// @Produce      json
// @Param        request body dto.SavedListRequest true "List name and items"
// @Success      201 {object} dto.SuccessResponse{data=dto.SavedListResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse "Request body too large"
// @Failure      503 {object} dto.ErrorResponse "Storage not available"
// @Security     BearerAuth
// @Router       /api/lists [post]
func (h *SavedListsHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, items, ok := h.bindList(c, builder)
	if !ok {
		return
	}

	list, err := h.lists.Create(c.Request.Context(), middleware.GetUserID(c), req.Name, items)
	if err != nil {
		storageError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionCreateList, "saved list created", map[string]any{
		"list_id": list.ID.Hex(),
		"items":   len(list.Items),
	})
	builder.SuccessCreated(dto.NewSavedListResponse(list, h.symbol))
}

// List handles GET /api/lists.
//
// @Summary      List saved item lists
// @Description  Newest first.
// @Tags         Lists
// @Produce      json
// @Param        limit query int false "Maximum number of lists" default(100)
// @Success      200 {object} dto.SuccessResponse{data=dto.SavedListsResponse}
// @Failure      401 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/lists [get]
func (h *SavedListsHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := repository.DefaultListLimit
	if s := c.Query("limit"); s != "" {
		if l, err := strconv.Atoi(s); err == nil && l > 0 && l < limit {
			limit = l
		}
	}

	lists, err := h.lists.List(c.Request.Context(), middleware.GetUserID(c), limit)
	if err != nil {
		storageError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewSavedListsResponse(lists, h.symbol))
}

// Get handles GET /api/lists/:id.
//
// @Summary      Get a saved item list
// @Tags         Lists
// @Produce      json
// @Param        id path string true "List ID"
// @Success      200 {object} dto.SuccessResponse{data=dto.SavedListResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/lists/{id} [get]
func (h *SavedListsHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	list, err := h.lists.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		storageError(builder, err)
		return
	}
	builder.SuccessOK(dto.NewSavedListResponse(list, h.symbol))
}

// Update handles PUT /api/lists/:id.
//
// @Summary      Rename a list and replace its items
// @Tags         Lists
// @Accept       json
// @Produce      json
// @Param        id path string true "List ID"
// @Param        request body dto.SavedListRequest true "New name and items"
// @Success      200 {object} dto.SuccessResponse{data=dto.SavedListResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse "Request body too large"
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/lists/{id} [put]
func (h *SavedListsHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)
	req, items, ok := h.bindList(c, builder)
	if !ok {
		return
	}

	list, err := h.lists.Update(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Name, items)
	if err != nil {
		storageError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionUpdateList, "saved list updated", map[string]any{
		"list_id": list.ID.Hex(),
		"items":   len(list.Items),
	})
	builder.SuccessOK(dto.NewSavedListResponse(list, h.symbol))
}

// Delete handles DELETE /api/lists/:id.
//
// @Summary      Delete a list and its items
// @Tags         Lists
// @Param        id path string true "List ID"
// @Success      204
// @Failure      404 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/lists/{id} [delete]
func (h *SavedListsHandler) Delete(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id := c.Param("id")

	if err := h.lists.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		storageError(builder, err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionDeleteList, "saved list deleted", map[string]any{
		"list_id": id,
	})
	builder.NoContent()
}

// Optimize handles POST /api/lists/:id/optimize.
//
// @Summary      Spend a balance on a saved list
// @Tags         Lists
// @Accept       json
// @Produce      json
// @Param        id path string true "List ID"
// @Param        Accept-Language header string false "Response language (en, pt, nl)"
// @Param        request body dto.OptimizeListRequest true "Budget"
// @Success      200 {object} dto.SuccessResponse{data=dto.OptimizationResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse "Request body too large"
// @Failure      422 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Failure      504 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/lists/{id}/optimize [post]
func (h *SavedListsHandler) Optimize(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.OptimizeListRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	budget, err := req.Resolve()
	if err != nil {
		builder.CatalogError(err)
		return
	}

	type outcome struct {
		result    model.OptimizationResult
		rejection service.Rejection
		err       error
	}
	ctx := c.Request.Context()
	owner, id := middleware.GetUserID(c), c.Param("id")
	out, err := middleware.WaitFor(ctx, func() outcome {
		r, rej, err := h.lists.Optimize(ctx, owner, id, budget)
		return outcome{r, rej, err}
	})
	if err != nil {
		return
	}
	if out.err != nil {
		storageError(builder, out.err)
		return
	}

	fields := map[string]any{"list_id": id, "budget_minor_units": budget}
	if out.rejection != service.RejectionNone {
		fields["rejection"] = string(out.rejection)
		middleware.AuditLog(h.audit, c, model.ActionOptimizeList, "list optimization rejected", fields)
		writeRejection(builder, out.rejection, h.optimizer.MaxBudgetMinorUnits(), h.symbol)
		return
	}

	fields["match"] = string(out.result.MatchQuality.Kind)
	middleware.AuditLog(h.audit, c, model.ActionOptimizeList, "list optimization finished", fields)
	builder.SuccessOK(dto.NewOptimizationResponse(out.result, h.symbol, i18n.GetLocale(c)))
}
