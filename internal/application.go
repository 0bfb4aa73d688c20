package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/torus-tictactoe/internal/config"
	"github.com/rocketscienceinc/torus-tictactoe/internal/service"
	"github.com/rocketscienceinc/torus-tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/torus-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/torus-tictactoe/transport/cli"
)

// RunApp - runs the application until the player quits, input ends, or the
// process receives SIGINT/SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(ctx, log, logger, conf, in, out)
}

func run(ctx context.Context, log, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	mode, err := conf.GameMode()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	computerMark, err := conf.Computer.GetMark()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	catalog := tictactoe.Default()
	log.Info("line catalog ready", "lines", catalog.Len())

	seed := conf.Computer.GetSeed()
	bot := service.NewBotService(catalog, rand.New(rand.NewSource(seed))) //nolint: gosec // it's ok

	view, _ := cli.ParseView(conf.View)
	console := cli.New(logger, out, view)

	match, err := usecase.NewMatch(logger, catalog, bot, usecase.Options{
		Mode:         mode,
		ComputerMark: computerMark,
		ThinkDelay:   conf.Computer.ThinkDelay,
		OnChange:     console.Render,
	})
	if err != nil {
		return fmt.Errorf("could not start match: %w", err)
	}
	defer match.Close()

	log.Info("Starting console", "mode", mode, "computer", computerMark.String(), "seed", seed)

	if err = console.Run(ctx, in, match); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Console closed, shutting down")

	return nil
}
