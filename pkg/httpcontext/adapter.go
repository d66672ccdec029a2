// Package httpcontext bridges fasthttp requests into stdlib contexts: every
// request gets a deadline and a request id, and the id is echoed on the
// response so clients and logs can be correlated.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// HeaderRequestID carries the request id on both request and response.
const HeaderRequestID = "X-Request-ID"

type ctxKey int

const keyRequestID ctxKey = iota

// Adapter derives deadline-bound stdlib contexts from fasthttp requests.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds the context for one request. A client-supplied request id is
// kept, otherwise one is minted; either way the id is set on the response
// header before any handler output.
func (a *Adapter) Attach(reqCtx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	id := RequestIDFrom(reqCtx)
	reqCtx.Response.Header.Set(HeaderRequestID, id)
	return context.WithValue(stdCtx, keyRequestID, id), cancel
}

// RequestID returns the id Attach stored, or "" outside a request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// RequestIDFrom resolves the request id for a fasthttp request: the echoed
// response header if Attach already ran, then the client's request header,
// then a fresh id.
func RequestIDFrom(reqCtx *fasthttp.RequestCtx) string {
	if reqCtx == nil {
		return uuid.NewString()
	}
	if id := string(reqCtx.Response.Header.Peek(HeaderRequestID)); id != "" {
		return id
	}
	if id := strings.TrimSpace(string(reqCtx.Request.Header.Peek(HeaderRequestID))); id != "" {
		return id
	}
	return uuid.NewString()
}
