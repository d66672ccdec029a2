// Package identity resolves bearer credentials against the external identity
// provider. Verification results live for a single request and are never
// cached.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/domain"
)

// Config controls how tokens are verified. When JWTSecret is set, tokens are
// validated locally; otherwise every request round-trips to the provider's
// user endpoint with the anon-key credential tier.
type Config struct {
	ProviderURL string
	AnonKey     string
	JWTSecret   string
	Timeout     time.Duration
}

type Verifier struct {
	cfg    Config
	client *fasthttp.Client
	logger *zap.Logger
}

func NewVerifier(cfg Config, logger *zap.Logger) *Verifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		cfg: cfg,
		client: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Verify resolves a bearer token to the caller's identity. Every failure
// mode (missing, malformed, expired, rejected) is UNAUTHORIZED.
func (v *Verifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	if v.cfg.JWTSecret != "" {
		return v.verifyLocal(token)
	}
	return v.verifyRemote(ctx, token)
}

func (v *Verifier) verifyLocal(raw string) (*domain.Identity, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(v.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		v.logger.Debug("token rejected", zap.Error(err))
		return nil, domain.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	return &domain.Identity{ID: sub, Email: email}, nil
}

func (v *Verifier) verifyRemote(ctx context.Context, token string) (*domain.Identity, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(strings.TrimRight(v.cfg.ProviderURL, "/") + "/auth/v1/user")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.cfg.AnonKey)

	timeout := v.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := v.client.DoTimeout(req, resp, timeout); err != nil {
		v.logger.Warn("identity provider unreachable", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUnauthorized, "unauthorized", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, domain.ErrUnauthorized
	}

	var body struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil || body.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{ID: body.ID, Email: body.Email}, nil
}
