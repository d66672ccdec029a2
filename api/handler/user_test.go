package handler

import (
	"net/http"
	"testing"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository/repositorytest"
	profileUC "github.com/studentos/backend/usecase/profile"
)

func newUserHandler(users *repositorytest.UserStore) *UserHandler {
	return NewUserHandler(profileUC.New(users, nil), nil, nil)
}

func TestUserHandler_Me(t *testing.T) {
	users := repositorytest.NewUserStore(domain.UserProfile{ID: testOwner, Email: "a@uni.example"})
	h := newUserHandler(users)

	ctx := authedRequest(http.MethodGet, "/api/users/me", nil)
	h.Me(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var body struct {
		Profile domain.UserProfile `json:"profile"`
	}
	decodeBody(t, ctx, &body)
	if body.Profile.Email != "a@uni.example" {
		t.Errorf("profile = %+v", body.Profile)
	}
}

func TestUserHandler_MeNotProvisioned(t *testing.T) {
	h := newUserHandler(repositorytest.NewUserStore())

	ctx := authedRequest(http.MethodGet, "/api/users/me", nil)
	h.Me(ctx)

	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Errorf("status = %d, want 404", ctx.Response.StatusCode())
	}
}

func TestUserHandler_UpdateMe(t *testing.T) {
	users := repositorytest.NewUserStore(domain.UserProfile{ID: testOwner, Email: "a@uni.example"})
	h := newUserHandler(users)

	ctx := authedRequest(http.MethodPatch, "/api/users/me", []byte(`{"email":"b@uni.example"}`))
	h.UpdateMe(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var body struct {
		Profile domain.UserProfile `json:"profile"`
	}
	decodeBody(t, ctx, &body)
	if body.Profile.Email != "b@uni.example" {
		t.Errorf("profile = %+v", body.Profile)
	}
}

func TestUserHandler_UpdateMeRejectsEmptyPatch(t *testing.T) {
	h := newUserHandler(repositorytest.NewUserStore())

	ctx := authedRequest(http.MethodPatch, "/api/users/me", []byte(`{}`))
	h.UpdateMe(ctx)

	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", ctx.Response.StatusCode())
	}
}
