package queue

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/estafette/estafette-ci-dashboard/pkg/livestate"
	"github.com/nats-io/nats.go"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned when relaying before a connection has been created
var ErrNotConnected = errors.New("no connection to queue")

// MessageHandler receives raw events consumed from the queue
type MessageHandler interface {
	HandleMessage(ctx context.Context, data []byte)
}

//go:generate mockgen -package=queue -destination ./mock.go -source=service.go
type Service interface {
	CreateConnection(ctx context.Context) (err error)
	CloseConnection(ctx context.Context)
	InitSubscriptions(ctx context.Context, handler MessageHandler) (err error)
	Relay(ctx context.Context, ev livestate.Event) (err error)
}

// NewService returns a new queue.Service
func NewService(config *api.APIConfig) Service {
	return &service{
		config: config,
	}
}

type service struct {
	config                *api.APIConfig
	natsConnection        *nats.Conn
	natsEncodedConnection *nats.EncodedConn
}

func (s *service) CreateConnection(ctx context.Context) (err error) {
	s.natsConnection, err = nats.Connect(strings.Join(s.config.Queue.Hosts, ","), nats.Name("estafette-ci-dashboard"))
	if err != nil {
		return
	}

	s.natsEncodedConnection, err = nats.NewEncodedConn(s.natsConnection, nats.JSON_ENCODER)
	if err != nil {
		return
	}

	return nil
}

func (s *service) CloseConnection(ctx context.Context) {
	if s.natsEncodedConnection != nil {
		s.natsEncodedConnection.Close()
	}
	if s.natsConnection != nil {
		s.natsConnection.Close()
	}
}

// InitSubscriptions passes events relayed by another dashboard instance to handler, in the same
// format as the ci server's event stream
func (s *service) InitSubscriptions(ctx context.Context, handler MessageHandler) (err error) {
	if s.natsConnection == nil {
		return ErrNotConnected
	}

	_, err = s.natsConnection.QueueSubscribe(s.config.Queue.WildcardSubject(), s.config.Queue.QueueGroup, func(msg *nats.Msg) {
		span, ctx := opentracing.StartSpanFromContext(context.Background(), api.GetSpanName("queue", "ReceiveEvent"))
		defer func() { api.FinishSpan(span) }()

		log.Trace().Str("subject", msg.Subject).Msg("Received event from queue")
		handler.HandleMessage(ctx, msg.Data)
	})
	if err != nil {
		return
	}

	return nil
}

// Relay publishes an event on the subject for its kind
func (s *service) Relay(ctx context.Context, ev livestate.Event) (err error) {
	span, _ := opentracing.StartSpanFromContext(ctx, api.GetSpanName("queue", "Relay"))
	defer func() { api.FinishSpanWithError(span, err) }()

	if s.natsEncodedConnection == nil {
		return ErrNotConnected
	}

	envelope, err := toEnvelope(ev)
	if err != nil {
		return
	}

	return s.natsEncodedConnection.Publish(s.config.Queue.Subject(string(ev.Kind())), envelope)
}

// toEnvelope returns the event with its kind, as sent on the ci server's event stream
func toEnvelope(ev livestate.Event) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, errors.Wrapf(err, "marshalling %v event", ev.Kind())
	}

	envelope := map[string]json.RawMessage{}
	err = json.Unmarshal(data, &envelope)
	if err != nil {
		return nil, errors.Wrapf(err, "unmarshalling %v event", ev.Kind())
	}

	kind, err := json.Marshal(ev.Kind())
	if err != nil {
		return nil, err
	}
	envelope["kind"] = kind

	return envelope, nil
}
