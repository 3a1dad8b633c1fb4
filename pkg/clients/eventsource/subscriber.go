package eventsource

import (
	"context"
	"io"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Handler receives messages and connection changes of the event stream
type Handler interface {
	HandleMessage(ctx context.Context, data []byte)
	HandleStatus(ctx context.Context, connected bool, err error)
}

// Run keeps the event stream connected until ctx is done, passing every message to handler in order.
// After the stream breaks it waits reconnectDelay before connecting again; events sent in between are lost.
func Run(ctx context.Context, client Client, handler Handler, config *api.EventsConfig) {
	for {
		err := runOnce(ctx, client, handler, config)
		if ctx.Err() != nil {
			return
		}

		handler.HandleStatus(ctx, false, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(config.ReconnectDelay):
		}
	}
}

func runOnce(ctx context.Context, client Client, handler Handler, config *api.EventsConfig) (err error) {

	var stream *Stream
	err = foundation.Retry(func() error {
		stream, err = client.Connect(ctx)
		return err
	}, foundation.Attempts(uint(config.ConnectAttempts)), foundation.DelayMillisecond(int(config.ReconnectDelay/time.Millisecond)), foundation.Fixed())
	if err != nil {
		return err
	}
	defer stream.Close()

	// closing the body unblocks a pending read
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			stream.Close()
		case <-stop:
		}
	}()

	handler.HandleStatus(ctx, true, nil)

	for {
		data, err := stream.Next()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err == io.EOF {
				return errors.Wrap(api.ErrTransport, "event stream closed by server")
			}
			return errors.Wrapf(api.ErrTransport, "reading event stream: %v", err)
		}

		log.Trace().Str("data", string(data)).Msg("Received event")
		handler.HandleMessage(ctx, data)
	}
}
