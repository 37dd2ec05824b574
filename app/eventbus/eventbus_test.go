package eventbus

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/events"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventBus_PublishSubscribe(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := NewInMemoryEventBus(logger)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := bus.Subscribe(ctx, events.UserCreatedV1)
	require.NoError(t, err)

	pubCtx := context.WithValue(ctx, middleware.RequestIDKey, "req-7")
	require.NoError(t, bus.Publish(pubCtx, events.UserCreatedV1, events.UserCreatedPayload{UserID: "u1", Name: "Ann", Email: "ann@example.com"}))

	select {
	case msg := <-messages:
		var got events.UserCreatedPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, "req-7", msg.Metadata.Get(CorrelationIDKey))
		assert.Equal(t, events.UserCreatedV1, msg.Metadata.Get("topic"))
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestInMemoryEventBus_UnmarshalablePayload(t *testing.T) {
	bus := NewInMemoryEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer bus.Close()
	err := bus.Publish(context.Background(), "bad.topic", make(chan int))
	require.Error(t, err)
}
