package suite

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/torus-tictactoe/internal/service"
	"github.com/rocketscienceinc/torus-tictactoe/internal/tictactoe"
)

const (
	maxWaitDuration = 10 * time.Second
	seed            = 1
)

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Catalog *tictactoe.Catalog
	Bot     service.BotService
}

// New returns a context bounded by maxWaitDuration and a suite with the torus
// catalog and a bot seeded for repeatable fallbacks.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	catalog := tictactoe.Default()

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Catalog: catalog,
		Bot:     service.NewBotService(catalog, rand.New(rand.NewSource(seed))), //nolint: gosec // it's ok
	}
}
