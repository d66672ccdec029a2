package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/studentos/backend/domain"
)

type staticVerifier struct {
	accept string
	ident  domain.Identity
}

func (v *staticVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	if token != v.accept {
		return nil, domain.ErrUnauthorized
	}
	out := v.ident
	return &out, nil
}

func TestAuth_AttachesIdentity(t *testing.T) {
	verifier := &staticVerifier{
		accept: "good-token",
		ident:  domain.Identity{ID: "u1", Email: "a@uni.example"},
	}

	var seen domain.Identity
	called := false
	handler := Auth(verifier, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
		seen, _ = IdentityFrom(ctx)
	})

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.Set("Authorization", "Bearer good-token")
	handler(ctx)

	if !called {
		t.Fatal("next handler not invoked")
	}
	if seen.ID != "u1" {
		t.Errorf("identity = %+v", seen)
	}
}

func TestAuth_RejectsBadCredentials(t *testing.T) {
	verifier := &staticVerifier{accept: "good-token"}
	handler := Auth(verifier, nil)(func(ctx *fasthttp.RequestCtx) {
		t.Error("next handler must not run")
	})

	cases := map[string]string{
		"missing header": "",
		"no bearer":      "Basic abc",
		"empty token":    "Bearer ",
		"wrong token":    "Bearer evil",
	}
	for name, header := range cases {
		ctx := &fasthttp.RequestCtx{}
		if header != "" {
			ctx.Request.Header.Set("Authorization", header)
		}
		handler(ctx)
		if ctx.Response.StatusCode() != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, ctx.Response.StatusCode())
		}
	}
}
