package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/morris-backend/internal/config"
	"github.com/rocketscienceinc/morris-backend/internal/repository"
	"github.com/rocketscienceinc/morris-backend/internal/repository/storage"
	"github.com/rocketscienceinc/morris-backend/internal/service"
	"github.com/rocketscienceinc/morris-backend/internal/usecase"
)

const recentGamesShown = 5

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - plays the configured number of bot matches and logs the results.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameRepo := repository.NewDiscardGameRepository()
	statsRepo := repository.NewDiscardStatsRepository()

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.DB)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(redisStorage.Connection, conf.Redis.ResultTTL)
		statsRepo = repository.NewStatsRepository(redisStorage.Connection)
	}

	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	//nolint: gosec // it's ok
	random := rand.New(rand.NewSource(seed))

	bot := service.NewBotService(logger, random)
	gameManager := usecase.NewGameManager(logger, gameRepo, statsRepo, bot, random, usecase.Settings{
		ThinkDelay: conf.Bot.ThinkDelay,
		TurnLimit:  conf.TurnLimit,
	})

	log.Info("Starting matches", "matches", conf.Matches, "seed", seed)

	for i := range conf.Matches {
		game, err := gameManager.PlayMatch(ctx)
		if errors.Is(err, context.Canceled) {
			log.Info("Application context canceled, stopping matches", "played", i)
			break
		}

		if err != nil {
			return fmt.Errorf("match %d failed: %w", i+1, err)
		}

		log.Info("Match played", "match", i+1, "game_id", game.ID, "status", game.Status,
			"winner", game.Winner, "turns", game.Turns)
	}

	summary := gameManager.Summary()
	log.Info("Matches summary", "played", summary.Played, "draws", summary.Draws, "wins", summary.Wins)

	logLedger(ctx, log, gameRepo, statsRepo)

	return nil
}

func logLedger(ctx context.Context, log *slog.Logger, gameRepo repository.GameRepository, statsRepo repository.StatsRepository) {
	stats, err := statsRepo.Get(ctx)
	if err != nil {
		log.Error("could not read stats", "error", err)
		return
	}

	if len(stats) == 0 {
		return
	}

	recent, err := gameRepo.ListRecent(ctx, recentGamesShown)
	if err != nil {
		log.Error("could not list recent games", "error", err)
		return
	}

	log.Info("All time results", "stats", stats, "recent_games", recent)
}
