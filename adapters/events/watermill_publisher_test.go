package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishLogin(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubsub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	messages, err := pubsub.Subscribe(ctx, LoginTopic)
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubsub)
	require.NoError(t, publisher.PublishLogin(ctx, "0x742d35Cc6634C0532925a3b8D5c1b9E9C4F5e5A1", "token-1"))

	select {
	case msg := <-messages:
		msg.Ack()

		var event AuthEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "0x742d35Cc6634C0532925a3b8D5c1b9E9C4F5e5A1", event.Address)
		assert.Equal(t, "token-1", event.TokenID)
		assert.Equal(t, "token-1", msg.UUID)
	case <-time.After(time.Second):
		t.Fatal("no login event received")
	}
}

func TestPublishRevoke(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubsub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	messages, err := pubsub.Subscribe(ctx, RevokedTopic)
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubsub)
	require.NoError(t, publisher.PublishRevoke(ctx, "0x0000000000000000000000000000000000000001", "token-2"))

	select {
	case msg := <-messages:
		msg.Ack()

		var event AuthEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &event))
		assert.Equal(t, "token-2", event.TokenID)
	case <-time.After(time.Second):
		t.Fatal("no revoke event received")
	}
}
