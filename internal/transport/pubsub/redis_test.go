package pubsub

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitDelivery = 5 * time.Second

func receive(t *testing.T, sub Subscription) Delivery {
	t.Helper()

	select {
	case delivery, ok := <-sub.Messages():
		require.True(t, ok, "subscription closed")
		return delivery
	case <-time.After(waitDelivery):
		t.Fatal("no delivery received")
		return Delivery{}
	}
}

func TestRedisBroker_PublishSubscribe(t *testing.T) {
	t.Run("Delivers published payloads to subscribers", func(t *testing.T) {
		ctx, st := suite.New(t)
		broker := NewRedisBroker(st.Redis)

		// Given: a subscription on the global topic
		sub, err := broker.Subscribe(ctx, "/topic/game.state")
		require.NoError(t, err)
		t.Cleanup(func() { _ = sub.Close() })

		// When: a payload is published on it
		err = broker.Publish(ctx, "/topic/game.state", []byte(`{"type":"game.joined"}`))
		require.NoError(t, err)

		// Then: the subscriber receives it with the channel name
		delivery := receive(t, sub)
		assert.Equal(t, "/topic/game.state", delivery.Channel)
		assert.JSONEq(t, `{"type":"game.joined"}`, string(delivery.Payload))
	})

	t.Run("Adds channels to an existing subscription", func(t *testing.T) {
		ctx, st := suite.New(t)
		broker := NewRedisBroker(st.Redis)

		// Given: a subscription extended with a game topic
		sub, err := broker.Subscribe(ctx, "/topic/game.state")
		require.NoError(t, err)
		t.Cleanup(func() { _ = sub.Close() })

		require.NoError(t, sub.Subscribe(ctx, "/topic/game.g1"))

		// When: publishing on the game topic once redis acknowledged it
		require.Eventually(t, func() bool {
			subscribers, err := st.Redis.PubSubNumSub(ctx, "/topic/game.g1").Result()
			return err == nil && subscribers["/topic/game.g1"] == 1
		}, waitDelivery, 50*time.Millisecond)

		require.NoError(t, broker.Publish(ctx, "/topic/game.g1", []byte(`{"type":"game.move"}`)))

		// Then: it arrives on the same stream
		delivery := receive(t, sub)
		assert.Equal(t, "/topic/game.g1", delivery.Channel)
	})

	t.Run("Drops channels from an existing subscription", func(t *testing.T) {
		ctx, st := suite.New(t)
		broker := NewRedisBroker(st.Redis)

		// Given: a subscription following a game topic
		sub, err := broker.Subscribe(ctx, "/topic/game.state", "/topic/game.g1")
		require.NoError(t, err)
		t.Cleanup(func() { _ = sub.Close() })

		// When: the game topic is dropped
		require.NoError(t, sub.Unsubscribe(ctx, "/topic/game.g1"))

		// Then: redis no longer counts a subscriber on it, the global topic stays
		require.Eventually(t, func() bool {
			subscribers, err := st.Redis.PubSubNumSub(ctx, "/topic/game.g1", "/topic/game.state").Result()
			return err == nil && subscribers["/topic/game.g1"] == 0 && subscribers["/topic/game.state"] == 1
		}, waitDelivery, 50*time.Millisecond)

		require.ErrorIs(t, sub.Unsubscribe(ctx), ErrNoChannels)
	})

	t.Run("Closes the message stream on Close", func(t *testing.T) {
		ctx, st := suite.New(t)
		broker := NewRedisBroker(st.Redis)

		sub, err := broker.Subscribe(ctx, "/topic/game.state")
		require.NoError(t, err)

		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())

		require.Eventually(t, func() bool {
			_, ok := <-sub.Messages()
			return !ok
		}, waitDelivery, 10*time.Millisecond)
	})

	t.Run("Requires a channel", func(t *testing.T) {
		ctx, st := suite.New(t)
		broker := NewRedisBroker(st.Redis)

		_, err := broker.Subscribe(ctx)
		require.ErrorIs(t, err, ErrNoChannels)
	})
}
