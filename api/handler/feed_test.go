package handler

import (
	"net/http"
	"testing"

	"github.com/studentos/backend/domain"
	"github.com/studentos/backend/repository/repositorytest"
	feedUC "github.com/studentos/backend/usecase/feed"
)

func newFeedHandler(candidates *repositorytest.CandidateStore, tasks *repositorytest.TaskStore) *FeedHandler {
	return NewFeedHandler(feedUC.New(candidates, tasks, nil), nil, nil)
}

func TestFeedHandler_Get(t *testing.T) {
	h := newFeedHandler(
		repositorytest.NewCandidateStore(seedCandidate("c1")),
		repositorytest.NewTaskStore(seedTask("t1", domain.TaskPending)),
	)

	ctx := authedRequest(http.MethodGet, "/api/feed", nil)
	h.Get(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d, body = %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var body struct {
		Candidates []domain.TaskCandidate `json:"candidates"`
		Tasks      []domain.Task          `json:"tasks"`
	}
	decodeBody(t, ctx, &body)
	if len(body.Candidates) != 1 || len(body.Tasks) != 1 {
		t.Errorf("feed = %d candidates, %d tasks", len(body.Candidates), len(body.Tasks))
	}
}

func TestFeedHandler_RejectsUnknownStatus(t *testing.T) {
	h := newFeedHandler(repositorytest.NewCandidateStore(), repositorytest.NewTaskStore())

	ctx := authedRequest(http.MethodGet, "/api/feed?status=bogus", nil)
	h.Get(ctx)

	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", ctx.Response.StatusCode())
	}
}

func TestFeedHandler_New(t *testing.T) {
	h := newFeedHandler(repositorytest.NewCandidateStore(), repositorytest.NewTaskStore())

	ctx := authedRequest(http.MethodGet, "/api/feed/new", nil)
	h.New(ctx)

	if string(ctx.Response.Body()) != `{"candidates":[]}` {
		t.Errorf("body = %s, want {\"candidates\":[]}", ctx.Response.Body())
	}
}

func TestFeedHandler_Upcoming(t *testing.T) {
	h := newFeedHandler(
		repositorytest.NewCandidateStore(),
		repositorytest.NewTaskStore(seedTask("t1", domain.TaskPending)),
	)

	ctx := authedRequest(http.MethodGet, "/api/feed/upcoming?limit=5", nil)
	h.Upcoming(ctx)

	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	var body struct {
		Tasks []domain.Task `json:"tasks"`
	}
	decodeBody(t, ctx, &body)
	if len(body.Tasks) != 1 {
		t.Errorf("tasks = %+v", body.Tasks)
	}
}
