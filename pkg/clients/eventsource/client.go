package eventsource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/opentracing-contrib/go-stdlib/nethttp"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
)

// Client is the interface for connecting to the event stream of the ci server
//
//go:generate mockgen -package=eventsource -destination ./mock.go -source=client.go
type Client interface {
	Connect(ctx context.Context) (stream *Stream, err error)
}

// NewClient returns an eventsource.Client to connect to the event stream of the ci server
func NewClient(config *api.APIConfig) Client {
	// no timeout, the response body stays open for as long as the server keeps sending
	httpClient := pester.NewExtendedClient(&http.Client{Transport: &nethttp.Transport{}})
	httpClient.MaxRetries = 1
	httpClient.Backoff = pester.ExponentialJitterBackoff
	httpClient.KeepLog = true

	return &client{
		config:     config,
		httpClient: httpClient,
	}
}

type client struct {
	config     *api.APIConfig
	httpClient *pester.Client
}

// Connect opens the event stream; the stream stays valid until ctx is done or the server closes it
func (c *client) Connect(ctx context.Context) (stream *Stream, err error) {

	url := c.config.Server.BaseURL + c.config.Events.Path

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(api.ErrTransport, "creating request for %v: %v", url, err)
	}

	span := opentracing.SpanFromContext(ctx)
	var ht *nethttp.Tracer
	if span != nil {
		// collect additional information on setting up connections
		request, ht = nethttp.TraceRequest(span.Tracer(), request)
	}

	// add headers
	request.Header.Set("Accept", "text/event-stream")
	request.Header.Set("Cache-Control", "no-cache")

	// perform actual request
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Wrapf(api.ErrTransport, "connecting to %v: %v", url, err)
	}
	if response == nil {
		return nil, errors.Wrapf(api.ErrTransport, "connecting to %v: no response", url)
	}
	if ht != nil {
		ht.Finish()
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, errors.Wrap(api.ErrTransport, fmt.Sprintf("%v responded with status code %v", url, response.StatusCode))
	}

	return NewStream(response.Body), nil
}
