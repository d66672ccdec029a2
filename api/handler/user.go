package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/pkg/httpcontext"
	profileUC "github.com/studentos/backend/usecase/profile"
)

type UserHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewUserHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.Get(stdCtx, ident.ID)
	if err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"profile": profile})
}

// DeleteMe handles DELETE /api/users/me. Dependent rows are removed by the
// store's cascade.
func (h *UserHandler) DeleteMe(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, ident.ID); err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.SuccessBody{Success: true})
}

// UpdateMe handles PATCH /api/users/me.
func (h *UserHandler) UpdateMe(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	var req transport.ProfilePatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "request body is not valid JSON", nil)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}
	email, _ := req.Email.Get()

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	profile, err := h.uc.UpdateEmail(stdCtx, ident.ID, email)
	if err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"profile": profile})
}
