package livestate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type relayRecorder struct {
	events []Event
	err    error
}

func (r *relayRecorder) Relay(ctx context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestFeedHandleMessage(t *testing.T) {

	t.Run("PublishesDecodedEventAndRelaysIt", func(t *testing.T) {

		topic := NewEventTopic("test")
		ch := topic.Subscribe("session", 4)
		<-ch
		relay := &relayRecorder{err: errors.New("queue down")}
		feed := NewFeed(topic, nil, relay)

		// act
		feed.HandleMessage(context.Background(), []byte(`{"kind":"removeBuild","build_id":3}`))

		assert.Equal(t, RemoveBuildEvent{BuildID: 3}, (<-ch).Event)
		assert.Equal(t, []Event{RemoveBuildEvent{BuildID: 3}}, relay.events)
	})

	t.Run("DropsMalformedAndUnknownEvents", func(t *testing.T) {

		topic := NewEventTopic("test")
		ch := topic.Subscribe("session", 4)
		<-ch
		relay := &relayRecorder{}
		feed := NewFeed(topic, nil, relay)

		// act
		feed.HandleMessage(context.Background(), []byte(`{"kind":`))
		feed.HandleMessage(context.Background(), []byte(`{"kind":"release"}`))

		assert.Equal(t, 0, len(ch))
		assert.Equal(t, 0, len(relay.events))
	})
}

func TestFeedHandleStatus(t *testing.T) {

	t.Run("PublishesConnectionState", func(t *testing.T) {

		topic := NewEventTopic("test")
		feed := NewFeed(topic, nil)

		// act
		feed.HandleStatus(context.Background(), true, nil)

		assert.True(t, topic.Status().Available)

		feed.HandleStatus(context.Background(), false, errors.New("connection reset"))
		assert.False(t, topic.Status().Available)
	})
}
