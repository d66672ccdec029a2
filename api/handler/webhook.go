package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/internal/infrastructure/inbox"
	"github.com/studentos/backend/pkg/httpcontext"
	profileUC "github.com/studentos/backend/usecase/profile"
)

const (
	sourcePubSub  = "pubsub"
	sourceForward = "forward"
)

// WebhookHandler serves the machine-to-machine surface. Deliveries carry a
// shared secret instead of a user bearer token.
type WebhookHandler struct {
	baseHandler
	inbox    *inbox.Inbox
	profiles *profileUC.UseCase
	secret   string
}

func NewWebhookHandler(ibx *inbox.Inbox, profiles *profileUC.UseCase, secret string, adapter *httpcontext.Adapter, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		baseHandler: newBaseHandler(adapter, logger),
		inbox:       ibx,
		profiles:    profiles,
		secret:      secret,
	}
}

// IngestPubSub handles POST /webhooks/ingest/pubsub: push deliveries from the
// mail-notification topic. Routing lives inside the payload.
func (h *WebhookHandler) IngestPubSub(ctx *fasthttp.RequestCtx) {
	if !h.verifySecret(ctx) {
		return
	}
	h.enqueue(ctx, sourcePubSub, "")
}

// Forward handles POST /webhooks/forward/{userID}: mail forwarded straight to
// a per-user ingest address.
func (h *WebhookHandler) Forward(ctx *fasthttp.RequestCtx) {
	if !h.verifySecret(ctx) {
		return
	}
	userID, _ := ctx.UserValue("userID").(string)
	if userID == "" {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "missing user id", nil)
		return
	}
	h.enqueue(ctx, sourceForward, userID)
}

// AuthEvent handles POST /webhooks/auth: identity-provider signup events that
// provision the app-local profile row.
func (h *WebhookHandler) AuthEvent(ctx *fasthttp.RequestCtx) {
	if !h.verifySecret(ctx) {
		return
	}

	var req transport.ProvisionRequest
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

	if _, err := h.profiles.Provision(stdCtx, domain.Identity{ID: req.User.ID, Email: req.User.Email}); err != nil {
		h.respondError(ctx, err, zap.String("user_id", req.User.ID))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.ReceivedBody{Received: true})
}

func (h *WebhookHandler) enqueue(ctx *fasthttp.RequestCtx, source, userID string) {
	body := ctx.PostBody()
	if len(body) == 0 || !json.Valid(body) {
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", "request body is not valid JSON", nil)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.inbox.Enqueue(stdCtx, source, userID, json.RawMessage(body)); err != nil {
		h.respondError(ctx, err, zap.String("source", source))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.ReceivedBody{Received: true})
}

func (h *WebhookHandler) verifySecret(ctx *fasthttp.RequestCtx) bool {
	supplied := ctx.Request.Header.Peek("X-Webhook-Secret")
	if h.secret == "" || subtle.ConstantTimeCompare(supplied, []byte(h.secret)) != 1 {
		h.respondErrorBody(ctx, http.StatusUnauthorized, "Unauthorized", "invalid webhook secret", nil)
		return false
	}
	return true
}
