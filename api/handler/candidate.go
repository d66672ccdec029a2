package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/pkg/httpcontext"
	"github.com/studentos/backend/pkg/optional"
	"github.com/studentos/backend/repository"
	candidateUC "github.com/studentos/backend/usecase/candidate"
)

type CandidateHandler struct {
	baseHandler
	uc *candidateUC.UseCase
}

func NewCandidateHandler(uc *candidateUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CandidateHandler {
	return &CandidateHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Confirm handles POST /api/candidates/{id}/confirm.
func (h *CandidateHandler) Confirm(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.candidateID(ctx)
	if !ok {
		return
	}

	var req transport.ConfirmRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "request body is not valid JSON", nil)
			return
		}
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.Confirm(stdCtx, id, ident.ID, confirmOverrides(req))
	if err != nil {
		h.respondError(ctx, err, zap.String("candidate_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"task": result.Task})
}

// Edit handles POST /api/candidates/{id}/edit.
func (h *CandidateHandler) Edit(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.candidateID(ctx)
	if !ok {
		return
	}

	var req transport.EditRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "request body is not valid JSON", nil)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	edit := repository.CandidateEdit{
		Title:    req.Title,
		Type:     req.Type,
		Module:   req.Module,
		Location: req.Location,
	}
	if req.DueDate != nil {
		if due, valid := transport.ParseDate(*req.DueDate); valid {
			edit.DueDate = &due
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	candidate, err := h.uc.Edit(stdCtx, id, ident.ID, edit)
	if err != nil {
		h.respondError(ctx, err, zap.String("candidate_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"candidate": candidate})
}

// Ignore handles POST /api/candidates/{id}/ignore.
func (h *CandidateHandler) Ignore(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.candidateID(ctx)
	if !ok {
		return
	}

	var req transport.IgnoreRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "request body is not valid JSON", nil)
			return
		}
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Ignore(stdCtx, id, ident.ID, req.Reason); err != nil {
		h.respondError(ctx, err, zap.String("candidate_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SuccessBody{Success: true})
}

// Source handles GET /api/candidates/{id}/source.
func (h *CandidateHandler) Source(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}
	id, ok := h.candidateID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	source, err := h.uc.Source(stdCtx, id, ident.ID)
	if err != nil {
		h.respondError(ctx, err, zap.String("candidate_id", id))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"source": source})
}

func (h *CandidateHandler) candidateID(ctx *fasthttp.RequestCtx) (string, bool) {
	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "missing candidate id", nil)
		return "", false
	}
	return id, true
}

func confirmOverrides(req transport.ConfirmRequest) candidateUC.ConfirmOverrides {
	overrides := candidateUC.ConfirmOverrides{
		Title:  req.Title,
		Type:   req.Type,
		Module: req.Module,
		Notes:  req.Notes,
	}
	if req.DueDate.IsNull() {
		overrides.DueDate = optional.Null[time.Time]()
	} else if raw, ok := req.DueDate.Get(); ok {
		if due, valid := transport.ParseDate(raw); valid {
			overrides.DueDate = optional.Of(due)
		}
	}
	return overrides
}
