package livestate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventTopicSubscribe(t *testing.T) {

	t.Run("DeliversCurrentStatusFirst", func(t *testing.T) {

		topic := NewEventTopic("test")
		status := Connected(time.Now().UTC())
		topic.Publish("test", EventTopicMessage{Ctx: context.Background(), Status: &status})

		// act
		ch := topic.Subscribe("session", 4)

		message := <-ch
		if assert.NotNil(t, message.Status) {
			assert.True(t, message.Status.Available)
		}
	})

	t.Run("ReturnsClosedChannelAfterClose", func(t *testing.T) {

		topic := NewEventTopic("test")
		topic.Close()

		// act
		ch := topic.Subscribe("session", 4)

		_, ok := <-ch
		assert.False(t, ok)
	})
}

func TestEventTopicPublish(t *testing.T) {

	t.Run("DeliversEventsInPublishOrder", func(t *testing.T) {

		topic := NewEventTopic("test")
		ch := topic.Subscribe("session", 8)
		<-ch

		// act
		for i := 1; i <= 5; i++ {
			topic.Publish("test", EventTopicMessage{Ctx: context.Background(), Event: RemoveBuildEvent{BuildID: i}})
		}

		for i := 1; i <= 5; i++ {
			message := <-ch
			assert.Equal(t, RemoveBuildEvent{BuildID: i}, message.Event)
		}
	})

	t.Run("DropsMessagesForFullSubscriberAndReportsCount", func(t *testing.T) {

		topic := NewEventTopic("test")
		ch := topic.Subscribe("session", 1)

		// act
		topic.Publish("test", EventTopicMessage{Event: RemoveBuildEvent{BuildID: 1}})
		topic.Publish("test", EventTopicMessage{Event: RemoveBuildEvent{BuildID: 2}})

		first := <-ch
		assert.NotNil(t, first.Status)

		topic.Publish("test", EventTopicMessage{Event: RemoveBuildEvent{BuildID: 3}})

		notice := <-ch
		assert.Equal(t, 2, notice.Dropped)
		assert.Nil(t, notice.Event)
	})

	t.Run("DoesNotBlockOtherSubscribers", func(t *testing.T) {

		topic := NewEventTopic("test")
		_ = topic.Subscribe("slow", 1)
		fast := topic.Subscribe("fast", 8)
		<-fast

		// act
		topic.Publish("test", EventTopicMessage{Event: RemoveBuildEvent{BuildID: 1}})
		topic.Publish("test", EventTopicMessage{Event: RemoveBuildEvent{BuildID: 2}})

		assert.Equal(t, RemoveBuildEvent{BuildID: 1}, (<-fast).Event)
		assert.Equal(t, RemoveBuildEvent{BuildID: 2}, (<-fast).Event)
	})

	t.Run("RemembersLastStatus", func(t *testing.T) {

		topic := NewEventTopic("test")
		status := Disconnected(time.Now().UTC())

		// act
		topic.Publish("test", EventTopicMessage{Status: &status})

		assert.False(t, topic.Status().Available)
		assert.Equal(t, "Connection error, no live updates.", topic.Status().Message)
	})
}

func TestEventTopicUnsubscribe(t *testing.T) {

	t.Run("ClosesChannel", func(t *testing.T) {

		topic := NewEventTopic("test")
		ch := topic.Subscribe("session", 2)
		<-ch

		// act
		topic.Unsubscribe("session")

		_, ok := <-ch
		assert.False(t, ok)
		assert.Equal(t, 0, topic.Len())
	})
}
