package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/message"
	"github.com/rocketscienceinc/tictactoe-client/internal/render"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/pubsub"
)

var (
	ErrNotStarted         = errors.New("session is not started")
	ErrSubscriptionClosed = errors.New("subscription closed")
)

type profileRepo interface {
	CreateOrUpdate(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, clientID string) (*entity.Profile, error)
}

type Renderer interface {
	Board(snapshot entity.Snapshot, highlight []int) error
	Notify(notice render.Notice) error
}

type Prompter interface {
	AskName(ctx context.Context) (string, error)
}

type Deps struct {
	Broker   pubsub.Broker
	Profiles profileRepo
	Renderer Renderer
	Prompter Prompter
}

// Session holds everything one client needs to play: the transport
// subscription, the player name and the latest game snapshot. Its state is
// only touched from Run, one message or command at a time.
type Session struct {
	logger   *slog.Logger
	clientID string

	broker   pubsub.Broker
	profiles profileRepo
	renderer Renderer
	prompter Prompter

	sub    pubsub.Subscription
	topics map[string]bool

	player string
	game   *entity.Snapshot
}

func New(logger *slog.Logger, deps Deps, clientID string) *Session {
	return &Session{
		logger:   logger.With("component", "session", "client_id", clientID),
		clientID: clientID,

		broker:   deps.Broker,
		profiles: deps.Profiles,
		renderer: deps.Renderer,
		prompter: deps.Prompter,

		topics: make(map[string]bool),
	}
}

// Start resolves the player name, subscribes to the global topic and asks to join a game.
// A non-empty name replaces the remembered one.
func (that *Session) Start(ctx context.Context, name string) error {
	log := that.logger.With("method", "Start")

	player, err := that.resolveName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to resolve player name: %w", err)
	}

	that.player = player

	sub, err := that.broker.Subscribe(ctx, message.GlobalTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to global topic: %w", err)
	}

	that.sub = sub
	that.topics[message.GlobalTopic] = true

	if err = that.publish(ctx, message.JoinRequest{Player: player}); err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	log.Info("join requested", "player", player)

	return nil
}

// Run handles deliveries and commands until the context is canceled, a Quit
// command arrives or the subscription closes.
func (that *Session) Run(ctx context.Context, commands <-chan Command) error {
	log := that.logger.With("method", "Run")

	if that.sub == nil {
		return ErrNotStarted
	}

	deliveries := that.sub.Messages()

	for {
		select {
		case <-ctx.Done():
			log.Info("session context canceled")
			return nil

		case delivery, ok := <-deliveries:
			if !ok {
				return ErrSubscriptionClosed
			}

			that.handleDelivery(ctx, delivery)

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}

			if _, quit := cmd.(Quit); quit {
				log.Info("quit requested")
				return nil
			}

			if err := that.Execute(ctx, cmd); err != nil {
				log.Error("failed to execute command", "error", err)
				that.notify(render.LevelError, err.Error())
			}
		}
	}
}

// Close releases the subscription. It is safe to call more than once.
func (that *Session) Close() error {
	if that.sub == nil {
		return nil
	}

	sub := that.sub
	that.sub = nil

	if err := sub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}

	return nil
}

// Game returns the latest snapshot, if any.
func (that *Session) Game() (entity.Snapshot, bool) {
	if that.game == nil {
		return entity.Snapshot{}, false
	}

	return *that.game, true
}

func (that *Session) Player() string {
	return that.player
}

func (that *Session) handleDelivery(ctx context.Context, delivery pubsub.Delivery) {
	log := that.logger.With("method", "handleDelivery", "channel", delivery.Channel)

	msg, err := message.Decode(delivery.Payload)
	if errors.Is(err, message.ErrUnknownType) {
		log.Debug("ignoring message", "reason", err)
		return
	}

	if err != nil {
		log.Error("failed to decode message", "error", err)
		return
	}

	if err = that.Handle(ctx, msg); err != nil {
		log.Error("failed to handle message", "error", err)
	}
}

func (that *Session) resolveName(ctx context.Context, name string) (string, error) {
	if name != "" {
		return name, that.saveName(ctx, name)
	}

	profile, err := that.profiles.GetByID(ctx, that.clientID)
	if err == nil && profile.Name != "" {
		return profile.Name, nil
	}

	if err != nil && !errors.Is(err, repository.ErrProfileNotFound) {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}

	name, err = that.prompter.AskName(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to ask player name: %w", err)
	}

	if name == "" {
		return "", apperror.ErrNameRequired
	}

	return name, that.saveName(ctx, name)
}

func (that *Session) saveName(ctx context.Context, name string) error {
	if err := that.profiles.CreateOrUpdate(ctx, &entity.Profile{ClientID: that.clientID, Name: name}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

func (that *Session) publish(ctx context.Context, request message.Request) error {
	destination, payload, err := message.Encode(request)
	if err != nil {
		return err
	}

	if err = that.broker.Publish(ctx, destination, payload); err != nil {
		return fmt.Errorf("failed to publish request: %w", err)
	}

	return nil
}
