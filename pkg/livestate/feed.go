package livestate

import (
	"context"
	"errors"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/go-kit/kit/metrics"
	"github.com/rs/zerolog/log"
)

// Relay forwards decoded events to another consumer
type Relay interface {
	Relay(ctx context.Context, ev Event) error
}

// Feed decodes raw messages from the event stream and publishes them on the event topic
type Feed struct {
	topic   *EventTopic
	counter metrics.Counter
	relays  []Relay
	now     func() time.Time
}

// NewFeed returns a feed publishing on topic and forwarding every event to relays
func NewFeed(topic *EventTopic, counter metrics.Counter, relays ...Relay) *Feed {
	return &Feed{
		topic:   topic,
		counter: counter,
		relays:  relays,
		now:     time.Now,
	}
}

// HandleMessage decodes and publishes one message; undecodable messages are logged and dropped
func (f *Feed) HandleMessage(ctx context.Context, data []byte) {
	ev, err := Decode(data)
	if err != nil {
		if errors.Is(err, api.ErrUnknownKind) {
			log.Debug().Err(err).Msg("Ignoring event of unknown kind")
			f.count("unknown", "ignored")
			return
		}
		log.Warn().Err(err).Str("data", string(data)).Msg("Dropping malformed event")
		f.count("unknown", "malformed")
		return
	}

	f.count(string(ev.Kind()), "published")
	f.topic.Publish("feed", EventTopicMessage{Ctx: ctx, Event: ev})

	for _, r := range f.relays {
		if err := r.Relay(ctx, ev); err != nil {
			log.Warn().Err(err).Str("kind", string(ev.Kind())).Msg("Failed relaying event")
		}
	}
}

// HandleStatus publishes a change of the event stream connection to all sessions
func (f *Feed) HandleStatus(ctx context.Context, connected bool, err error) {
	status := Disconnected(f.now().UTC())
	if connected {
		status = Connected(f.now().UTC())
		log.Info().Msg("Receiving live updates from ci server")
	} else {
		log.Warn().Err(err).Msg("Lost live updates from ci server")
	}
	f.topic.Publish("feed", EventTopicMessage{Ctx: ctx, Status: &status})
}

func (f *Feed) count(kind, outcome string) {
	if f.counter != nil {
		f.counter.With("kind", kind, "outcome", outcome).Add(1)
	}
}
