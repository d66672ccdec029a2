package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/studentos/backend/api/handler"
)

type Handlers struct {
	Feed      *apiHandler.FeedHandler
	Candidate *apiHandler.CandidateHandler
	Task      *apiHandler.TaskHandler
	User      *apiHandler.UserHandler
	Webhook   *apiHandler.WebhookHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, auth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Feed
	r.GET("/api/feed", auth(handlers.Feed.Get))
	r.GET("/api/feed/new", auth(handlers.Feed.New))
	r.GET("/api/feed/upcoming", auth(handlers.Feed.Upcoming))

	// Candidate lifecycle
	r.POST("/api/candidates/{id}/confirm", auth(handlers.Candidate.Confirm))
	r.POST("/api/candidates/{id}/edit", auth(handlers.Candidate.Edit))
	r.POST("/api/candidates/{id}/ignore", auth(handlers.Candidate.Ignore))
	r.GET("/api/candidates/{id}/source", auth(handlers.Candidate.Source))

	// Tasks
	r.GET("/api/tasks", auth(handlers.Task.List))
	r.GET("/api/tasks/{id}", auth(handlers.Task.Get))
	r.PATCH("/api/tasks/{id}", auth(handlers.Task.Patch))
	r.DELETE("/api/tasks/{id}", auth(handlers.Task.Delete))
	r.POST("/api/tasks/{id}/complete", auth(handlers.Task.Complete))

	// Users
	r.GET("/api/users/me", auth(handlers.User.Me))
	r.PATCH("/api/users/me", auth(handlers.User.UpdateMe))
	r.DELETE("/api/users/me", auth(handlers.User.DeleteMe))

	// Webhooks carry their own secret; no bearer auth.
	r.POST("/webhooks/ingest/pubsub", handlers.Webhook.IngestPubSub)
	r.POST("/webhooks/forward/{userID}", handlers.Webhook.Forward)
	r.POST("/webhooks/auth", handlers.Webhook.AuthEvent)

	return r
}
