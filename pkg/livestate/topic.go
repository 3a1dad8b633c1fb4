package livestate

import (
	"context"
	"sync"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	"github.com/opentracing/opentracing-go"
	opentracinglog "github.com/opentracing/opentracing-go/log"
	"github.com/rs/zerolog/log"
)

// LiveStatus tells whether live updates from the ci server are flowing
type LiveStatus struct {
	Available bool      `json:"available"`
	Message   string    `json:"message,omitempty"`
	Since     time.Time `json:"since"`
}

const (
	connectionErrorMessage = "Connection error, no live updates."
	missedUpdatesMessage   = "Missed live updates, reopen the view to refresh."
)

// Connected returns the status of a working event stream
func Connected(since time.Time) LiveStatus {
	return LiveStatus{Available: true, Since: since}
}

// Disconnected returns the status of a broken event stream
func Disconnected(since time.Time) LiveStatus {
	return LiveStatus{Available: false, Message: connectionErrorMessage, Since: since}
}

// EventTopicMessage carries either an event or a change of the live status; Dropped counts the
// messages lost by the receiving subscriber since its previous delivery
type EventTopicMessage struct {
	Ctx     context.Context
	Event   Event
	Status  *LiveStatus
	Dropped int
}

type eventTopicSubscriber struct {
	ch      chan EventTopicMessage
	dropped int
}

// EventTopic fans out messages from the single event stream to every session. Sends never block:
// a subscriber whose buffer is full loses the message and is told how many it lost on the next delivery.
type EventTopic struct {
	name        string
	mu          sync.Mutex
	subscribers map[string]*eventTopicSubscriber
	status      LiveStatus
	closed      bool
}

func NewEventTopic(name string) *EventTopic {
	return &EventTopic{
		name:        name,
		subscribers: make(map[string]*eventTopicSubscriber, 0),
		status:      Disconnected(time.Now().UTC()),
	}
}

// Subscribe returns a channel receiving all messages published after the call, starting with the current live status
func (t *EventTopic) Subscribe(name string, bufferSize int) <-chan EventTopicMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	log.Debug().Msgf("Subscribing %v to EventTopic %v", name, t.name)

	if bufferSize < 1 {
		bufferSize = 1
	}
	subscriber := &eventTopicSubscriber{ch: make(chan EventTopicMessage, bufferSize)}

	if existing, ok := t.subscribers[name]; ok {
		close(existing.ch)
	}
	if t.closed {
		close(subscriber.ch)
		return subscriber.ch
	}

	status := t.status
	subscriber.ch <- EventTopicMessage{Ctx: context.Background(), Status: &status}
	t.subscribers[name] = subscriber

	return subscriber.ch
}

// Unsubscribe removes a subscriber and closes its channel
func (t *EventTopic) Unsubscribe(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if subscriber, ok := t.subscribers[name]; ok {
		log.Debug().Msgf("Unsubscribing %v from EventTopic %v", name, t.name)
		delete(t.subscribers, name)
		close(subscriber.ch)
	}
}

// Publish delivers an event to all subscribers in publish order
func (t *EventTopic) Publish(publisher string, message EventTopicMessage) {
	if message.Ctx == nil {
		message.Ctx = context.Background()
	}

	span, ctx := opentracing.StartSpanFromContext(message.Ctx, api.GetSpanName("livestate.EventTopic", "Publish"))
	message.Ctx = ctx
	defer func() { api.FinishSpan(span) }()

	t.mu.Lock()
	defer t.mu.Unlock()

	span.LogFields(opentracinglog.String("event", "LockAcquired"))

	if t.closed {
		return
	}

	if message.Status != nil {
		t.status = *message.Status
	}

	log.Debug().Msgf("Publishing message from %v to %v subscribers in EventTopic %v", publisher, len(t.subscribers), t.name)

	for name, subscriber := range t.subscribers {
		if subscriber.dropped > 0 {
			notice := EventTopicMessage{Ctx: ctx, Dropped: subscriber.dropped}
			select {
			case subscriber.ch <- notice:
				subscriber.dropped = 0
			default:
			}
		}

		if subscriber.dropped > 0 {
			subscriber.dropped++
			continue
		}

		select {
		case subscriber.ch <- message:
		default:
			subscriber.dropped++
			log.Warn().Msgf("Subscriber %v in EventTopic %v is not keeping up, dropping message from %v", name, t.name, publisher)
		}
	}
}

// Status returns the last published live status
func (t *EventTopic) Status() LiveStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.status
}

// Len returns the number of subscribers
func (t *EventTopic) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.subscribers)
}

func (t *EventTopic) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	log.Info().Msgf("Closing channels for %v subscribers in EventTopic %v", len(t.subscribers), t.name)

	if !t.closed {
		t.closed = true
		for name, subscriber := range t.subscribers {
			log.Debug().Msgf("Closing channel for subscriber %v in EventTopic %v", name, t.name)
			close(subscriber.ch)
		}
		t.subscribers = map[string]*eventTopicSubscriber{}
	}
}
