package eventsource

import (
	"context"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/opentracing/opentracing-go"
)

// NewTracingClient returns a new instance of a tracing Client.
func NewTracingClient(c Client) Client {
	return &tracingClient{c, "eventsource"}
}

type tracingClient struct {
	Client Client
	prefix string
}

// Connect only traces setting up the stream; the connection itself outlives the span
func (c *tracingClient) Connect(ctx context.Context) (stream *Stream, err error) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, api.GetSpanName(c.prefix, "Connect"))
	defer func() { api.FinishSpanWithError(span, err) }()

	return c.Client.Connect(spanCtx)
}
