package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-client/internal"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
)

var (
	configPath string
	playerName string
)

// main - is the entry point of the application. It parses flags, initializes the configuration and logger, and runs the client.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Play tic-tac-toe against other players over Redis pub/sub",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := config.MustLoad(configPath)
			logger := initLogger(conf)

			if err := app.RunApp(logger, conf, playerName); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "./config.yml", "path to the yaml config, the environment is used when it does not exist")
	root.Flags().StringVarP(&playerName, "name", "n", "", "player name, replaces the remembered one")

	return root
}

// initialize logger on stderr, stdout belongs to the board.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
