package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/pkg/httpcontext"
	"github.com/studentos/backend/pkg/optional"
	"github.com/studentos/backend/repository"
	taskUC "github.com/studentos/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// List handles GET /api/tasks. Filter values are passed through to the store
// as-is; an unknown status simply matches nothing.
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	args := ctx.QueryArgs()
	filter := repository.TaskFilter{
		Status: domain.TaskStatus(args.Peek("status")),
		Type:   domain.CandidateType(args.Peek("type")),
	}
	if raw := string(args.Peek("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Limit = parsed
		}
	}
	if raw := string(args.Peek("offset")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			filter.Offset = parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, ident.ID, filter)
	if err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Get(stdCtx, id, ident.ID)
	if err != nil {
		h.respondError(ctx, err, zap.String("task_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"task": task})
}

// Patch handles PATCH /api/tasks/{id}.
func (h *TaskHandler) Patch(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.TaskPatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "request body is not valid JSON", nil)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Update(stdCtx, id, ident.ID, taskPatch(req))
	if err != nil {
		h.respondError(ctx, err, zap.String("task_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"task": task})
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, ident.ID); err != nil {
		h.respondError(ctx, err, zap.String("task_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SuccessBody{Success: true})
}

// Complete handles POST /api/tasks/{id}/complete.
func (h *TaskHandler) Complete(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Complete(stdCtx, id, ident.ID)
	if err != nil {
		h.respondError(ctx, err, zap.String("task_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"task": task})
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "missing task id", nil)
		return "", false
	}
	return id, true
}

func taskPatch(req transport.TaskPatchRequest) taskUC.Patch {
	patch := taskUC.Patch{
		Title:  req.Title,
		Type:   req.Type,
		Module: req.Module,
		Notes:  req.Notes,
		Links:  req.Links,
		Status: req.Status,
	}
	if req.DueDate.IsNull() {
		patch.DueDate = optional.Null[time.Time]()
	} else if raw, ok := req.DueDate.Get(); ok {
		if due, valid := transport.ParseDate(raw); valid {
			patch.DueDate = optional.Of(due)
		}
	}
	return patch
}
