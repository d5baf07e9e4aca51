package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const deliveryBuffer = 16

var ErrNoChannels = errors.New("at least one channel is required")

type RedisBroker struct {
	client *redis.Client
}

func NewRedisBroker(client *redis.Client) *RedisBroker {
	return &RedisBroker{
		client: client,
	}
}

func (that *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := that.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", channel, err)
	}

	return nil
}

// Subscribe returns once redis has confirmed the subscription.
func (that *RedisBroker) Subscribe(ctx context.Context, channels ...string) (Subscription, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	pubSub := that.client.Subscribe(ctx, channels...)

	if _, err := pubSub.Receive(ctx); err != nil {
		_ = pubSub.Close()
		return nil, fmt.Errorf("failed to subscribe to %v: %w", channels, err)
	}

	sub := &redisSubscription{
		pubSub:   pubSub,
		messages: make(chan Delivery, deliveryBuffer),
		done:     make(chan struct{}),
	}

	go sub.forward()

	return sub, nil
}

type redisSubscription struct {
	pubSub   *redis.PubSub
	messages chan Delivery

	done      chan struct{}
	closeOnce sync.Once
}

func (that *redisSubscription) Messages() <-chan Delivery {
	return that.messages
}

func (that *redisSubscription) Subscribe(ctx context.Context, channels ...string) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}

	if err := that.pubSub.Subscribe(ctx, channels...); err != nil {
		return fmt.Errorf("failed to subscribe to %v: %w", channels, err)
	}

	return nil
}

func (that *redisSubscription) Unsubscribe(ctx context.Context, channels ...string) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}

	if err := that.pubSub.Unsubscribe(ctx, channels...); err != nil {
		return fmt.Errorf("failed to unsubscribe from %v: %w", channels, err)
	}

	return nil
}

func (that *redisSubscription) Close() error {
	var err error

	that.closeOnce.Do(func() {
		close(that.done)

		if closeErr := that.pubSub.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close subscription: %w", closeErr)
		}
	})

	return err
}

// forward copies redis messages until the redis channel is closed or the subscription is.
func (that *redisSubscription) forward() {
	defer close(that.messages)

	source := that.pubSub.Channel()

	for {
		select {
		case <-that.done:
			return
		case msg, ok := <-source:
			if !ok {
				return
			}

			select {
			case that.messages <- Delivery{Channel: msg.Channel, Payload: []byte(msg.Payload)}:
			case <-that.done:
				return
			}
		}
	}
}
