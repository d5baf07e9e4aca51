package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/console"
	"github.com/rocketscienceinc/tictactoe-client/internal/render"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/session"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/pubsub"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the client until the player quits or a signal arrives.
// A non-empty name overrides the remembered one.
func RunApp(logger *slog.Logger, conf *config.Config, name string) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	clientID, err := ClientID(conf.Player.ClientID)
	if err != nil {
		return err
	}

	if name == "" {
		name = conf.Player.Name
	}

	terminal := console.New(os.Stdin, os.Stdout)

	gameSession := session.New(logger, session.Deps{
		Broker:   pubsub.NewRedisBroker(redisStorage.Connection),
		Profiles: repository.NewProfileRepository(redisStorage.Connection),
		Renderer: render.NewTerminal(os.Stdout),
		Prompter: terminal,
	}, clientID)

	defer func() {
		if err = gameSession.Close(); err != nil {
			log.Error("could not close session", "error", err)
		}
	}()

	if err = gameSession.Start(ctx, name); err != nil {
		return fmt.Errorf("could not start session: %w", err)
	}

	log.Info("Session started", "client_id", clientID, "player", gameSession.Player())

	if err = gameSession.Run(ctx, terminal.Commands(ctx)); err != nil {
		return fmt.Errorf("session stopped: %w", err)
	}

	log.Info("Session finished")

	return nil
}

// ClientID returns the configured client id, or one derived from the host
// name so that the same machine keeps its remembered name.
func ClientID(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get host name: %w", err)
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(hostname)).String(), nil
}
