package httpcontext

import (
	"testing"
	"time"

	"github.com/valyala/fasthttp"
)

func TestAttach_KeepsClientRequestID(t *testing.T) {
	var reqCtx fasthttp.RequestCtx
	reqCtx.Request.Header.Set(HeaderRequestID, "client-supplied-id")

	ctx, cancel := NewAdapter(time.Second).Attach(&reqCtx)
	defer cancel()

	if got := RequestID(ctx); got != "client-supplied-id" {
		t.Errorf("RequestID = %q, want the client's id", got)
	}
	if got := string(reqCtx.Response.Header.Peek(HeaderRequestID)); got != "client-supplied-id" {
		t.Errorf("response header = %q, want the client's id echoed", got)
	}
}

func TestAttach_MintsRequestID(t *testing.T) {
	var reqCtx fasthttp.RequestCtx

	ctx, cancel := NewAdapter(time.Second).Attach(&reqCtx)
	defer cancel()

	id := RequestID(ctx)
	if id == "" {
		t.Fatal("a request without an id must get one minted")
	}
	if got := RequestIDFrom(&reqCtx); got != id {
		t.Errorf("RequestIDFrom = %q, want the attached id %q", got, id)
	}
}

func TestAttach_SetsDeadline(t *testing.T) {
	var reqCtx fasthttp.RequestCtx

	ctx, cancel := NewAdapter(50 * time.Millisecond).Attach(&reqCtx)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("attached context must carry a deadline")
	}
	if remaining := time.Until(deadline); remaining > 50*time.Millisecond {
		t.Errorf("deadline %v exceeds the configured timeout", remaining)
	}
}

func TestRequestID_OutsideRequest(t *testing.T) {
	if got := RequestID(t.Context()); got != "" {
		t.Errorf("RequestID outside a request = %q, want empty", got)
	}
}
