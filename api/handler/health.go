package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studentos/backend/api/transport"
	"github.com/studentos/backend/internal/infrastructure/monitor"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(m *monitor.Monitor, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(nil, logger),
		monitor:     m,
	}
}

// Check handles GET /health. The endpoint always answers 200; "degraded"
// signals that an auxiliary dependency is down without failing the probe.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	body := transport.HealthBody{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	}
	if h.monitor != nil {
		status := h.monitor.GetStatus()
		body.Services = status
		if !h.monitor.Healthy() {
			body.Status = "degraded"
		}
	}
	h.respondJSON(ctx, http.StatusOK, body)
}
