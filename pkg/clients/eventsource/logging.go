package eventsource

import (
	"context"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
)

// NewLoggingClient returns a new instance of a logging Client.
func NewLoggingClient(c Client) Client {
	return &loggingClient{c, "eventsource"}
}

type loggingClient struct {
	Client Client
	prefix string
}

func (c *loggingClient) Connect(ctx context.Context) (stream *Stream, err error) {
	defer func() { api.HandleLogError(c.prefix, "Client", "Connect", err, context.Canceled) }()

	return c.Client.Connect(ctx)
}
