package eventsource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/estafette/estafette-ci-dashboard/pkg/api"
	gomock "github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	mu       sync.Mutex
	messages []string
	statuses []bool
	errs     []error
	onStatus func(connected bool)
}

func (h *recordingHandler) HandleMessage(ctx context.Context, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, string(data))
}

func (h *recordingHandler) HandleStatus(ctx context.Context, connected bool, err error) {
	h.mu.Lock()
	h.statuses = append(h.statuses, connected)
	h.errs = append(h.errs, err)
	h.mu.Unlock()
	if h.onStatus != nil {
		h.onStatus(connected)
	}
}

func getEventsConfig() *api.EventsConfig {
	return &api.EventsConfig{
		Path:            "/events",
		ReconnectDelay:  10 * time.Millisecond,
		ConnectAttempts: 1,
	}
}

func TestRun(t *testing.T) {

	t.Run("PassesMessagesInOrderAndReportsBrokenStream", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := NewMockClient(ctrl)
		client.
			EXPECT().
			Connect(gomock.Any()).
			Return(getStream("data: a\n\n: keepalive\n\ndata: b\n\n"), nil).
			Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		handler := &recordingHandler{onStatus: func(connected bool) {
			if !connected {
				cancel()
			}
		}}

		// act
		Run(ctx, client, handler, getEventsConfig())

		assert.Equal(t, []string{"a", "b"}, handler.messages)
		assert.Equal(t, []bool{true, false}, handler.statuses)
		assert.True(t, errors.Is(handler.errs[1], api.ErrTransport))
	})

	t.Run("ReconnectsAfterFailedConnect", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		client := NewMockClient(ctrl)
		gomock.InOrder(
			client.EXPECT().Connect(gomock.Any()).Return(nil, api.ErrTransport).Times(1),
			client.EXPECT().Connect(gomock.Any()).Return(getStream("data: a\n\n"), nil).Times(1),
		)

		handler := &recordingHandler{}
		handler.onStatus = func(connected bool) {
			handler.mu.Lock()
			count := len(handler.statuses)
			handler.mu.Unlock()
			if count == 3 {
				cancel()
			}
		}

		// act
		Run(ctx, client, handler, getEventsConfig())

		assert.Equal(t, []string{"a"}, handler.messages)
		assert.Equal(t, []bool{false, true, false}, handler.statuses)
	})

	t.Run("ReturnsWhenContextIsDone", func(t *testing.T) {

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := NewMockClient(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		client.EXPECT().Connect(gomock.Any()).Return(nil, context.Canceled).AnyTimes()

		handler := &recordingHandler{}

		// act
		Run(ctx, client, handler, getEventsConfig())

		assert.Equal(t, 0, len(handler.statuses))
	})
}
