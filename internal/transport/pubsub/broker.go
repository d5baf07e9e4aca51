package pubsub

import "context"

// Delivery is one message received on a subscribed channel.
type Delivery struct {
	Channel string
	Payload []byte
}

type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) (Subscription, error)
}

// Broker publishes to and subscribes on named channels.
type Broker interface {
	Publisher
	Subscriber
}

// Subscription is a single stream of deliveries for a growing set of channels.
// Messages is closed after Close.
type Subscription interface {
	Messages() <-chan Delivery
	Subscribe(ctx context.Context, channels ...string) error
	Unsubscribe(ctx context.Context, channels ...string) error
	Close() error
}
