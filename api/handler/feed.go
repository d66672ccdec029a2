package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/pkg/httpcontext"
	feedUC "github.com/studentos/backend/usecase/feed"
)

type FeedHandler struct {
	baseHandler
	uc *feedUC.UseCase
}

func NewFeedHandler(uc *feedUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// Get handles GET /api/feed?status=new|confirmed|all.
func (h *FeedHandler) Get(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	status := string(ctx.QueryArgs().Peek("status"))
	switch status {
	case "", "all", string(domain.CandidateNew), string(domain.CandidateConfirmed):
	default:
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "invalid status filter", map[string]string{
			"status": "must be one of new, confirmed, all",
		})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	feed, err := h.uc.Get(stdCtx, ident.ID, status)
	if err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	h.respondJSON(ctx, http.StatusOK, feed)
}

// New handles GET /api/feed/new.
func (h *FeedHandler) New(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	candidates, err := h.uc.NewCandidates(stdCtx, ident.ID)
	if err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	if candidates == nil {
		candidates = []domain.TaskCandidate{}
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"candidates": candidates})
}

// Upcoming handles GET /api/feed/upcoming.
func (h *FeedHandler) Upcoming(ctx *fasthttp.RequestCtx) {
	ident, ok := h.identity(ctx)
	if !ok {
		return
	}

	limit := 0
	if raw := string(ctx.QueryArgs().Peek("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.UpcomingTasks(stdCtx, ident.ID, limit)
	if err != nil {
		h.respondError(ctx, err, zap.String("user_id", ident.ID))
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{"tasks": tasks})
}
