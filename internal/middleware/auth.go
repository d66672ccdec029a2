package middleware

import (
	"context"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/domain"
)

const identityKey = "identity"

// TokenVerifier resolves a bearer credential to a caller identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// Auth verifies the Authorization header on every request and attaches the
// resolved identity to the request context. The identity is request-scoped;
// nothing is cached between requests.
func Auth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token, ok := bearerToken(ctx)
			if !ok {
				unauthorized(ctx, "missing or invalid authorization header")
				return
			}

			ident, err := verifier.Verify(ctx, token)
			if err != nil {
				logger.Debug("credential rejected", zap.Error(err))
				unauthorized(ctx, "invalid or expired token")
				return
			}

			ctx.SetUserValue(identityKey, *ident)
			next(ctx)
		}
	}
}

// IdentityFrom returns the identity attached by Auth, if any.
func IdentityFrom(ctx *fasthttp.RequestCtx) (domain.Identity, bool) {
	ident, ok := ctx.UserValue(identityKey).(domain.Identity)
	return ident, ok
}

// SetIdentity attaches an identity directly; used by handler tests to bypass
// the verifier.
func SetIdentity(ctx *fasthttp.RequestCtx, ident domain.Identity) {
	ctx.SetUserValue(identityKey, ident)
}

func bearerToken(ctx *fasthttp.RequestCtx) (string, bool) {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

func unauthorized(ctx *fasthttp.RequestCtx, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBody(transport.MarshalError("Unauthorized", message, nil))
}
