package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/internal/middleware"
	"github.com/studentos/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

// identity returns the verified caller, responding 401 when the auth
// middleware did not attach one.
func (h baseHandler) identity(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	ident, ok := middleware.IdentityFrom(ctx)
	if !ok {
		h.respondErrorBody(ctx, http.StatusUnauthorized, "Unauthorized", "missing credentials", nil)
	}
	return ident, ok
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		ctx.SetStatusCode(http.StatusInternalServerError)
		ctx.SetBody(transport.MarshalError("Internal Server Error", "response encoding failed", nil))
		return
	}
	ctx.SetBody(body)
}

func (h baseHandler) respondErrorBody(ctx *fasthttp.RequestCtx, status int, errName, message string, details map[string]string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(transport.MarshalError(errName, message, details))
}

// respondError classifies a service failure by its error code, never by
// message text. Internal failures are logged with context and answered with
// a generic description.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error, fields ...zap.Field) {
	var details map[string]string
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		details = dErr.Details
	}

	switch domain.CodeOf(err) {
	case domain.ErrCodeUnauthorized:
		h.respondErrorBody(ctx, http.StatusUnauthorized, "Unauthorized", publicMessage(err), nil)
	case domain.ErrCodeValidation:
		h.respondErrorBody(ctx, http.StatusBadRequest, "Validation Error", publicMessage(err), details)
	case domain.ErrCodeInvalidState:
		h.respondErrorBody(ctx, http.StatusBadRequest, "Invalid State", publicMessage(err), nil)
	case domain.ErrCodeNotFound:
		h.respondErrorBody(ctx, http.StatusNotFound, "Not Found", publicMessage(err), nil)
	default:
		fields = append(fields,
			zap.String("request_id", httpcontext.RequestIDFrom(ctx)),
			zap.Error(err))
		h.logger.Error("request failed", fields...)
		h.respondErrorBody(ctx, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred", nil)
	}
}

// publicMessage strips the wrapped cause so store internals never reach the
// client.
func publicMessage(err error) string {
	var dErr *domain.Error
	if errors.As(err, &dErr) {
		return dErr.Message
	}
	return ""
}
