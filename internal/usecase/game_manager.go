package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/morris-backend/internal/apperror"
	"github.com/rocketscienceinc/morris-backend/internal/entity"
	"github.com/rocketscienceinc/morris-backend/internal/morris"
)

var ErrGameStillRunning = errors.New("game is still running")

// maxFinishedGames bounds the finished games kept in memory for lookups and rematches.
const maxFinishedGames = 100

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type statsRepo interface {
	RecordResult(ctx context.Context, game *entity.Game) error
}

type Settings struct {
	ThinkDelay time.Duration
	TurnLimit  int
}

// Summary counts the games finished by this manager.
type Summary struct {
	Played int
	Draws  int
	Wins   map[string]int
}

type activeGame struct {
	game    *entity.Game
	session *morris.Session
}

type GameManager struct {
	logger    *slog.Logger
	gameRepo  gameRepo
	statsRepo statsRepo
	bot       morris.ActionGenerator
	settings  Settings

	mu            sync.Mutex
	random        *rand.Rand
	games         map[string]*activeGame
	finished      map[string]*entity.Game
	finishedOrder []string
	summary       Summary
}

func NewGameManager(
	logger *slog.Logger,
	gameRepo gameRepo,
	statsRepo statsRepo,
	bot morris.ActionGenerator,
	random *rand.Rand,
	settings Settings,
) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		gameRepo:  gameRepo,
		statsRepo: statsRepo,
		bot:       bot,
		settings:  settings,
		random:    random,
		games:     make(map[string]*activeGame),
		finished:  make(map[string]*entity.Game),
		summary:   Summary{Wins: make(map[string]int)},
	}
}

// CreateGame starts a game of the given type. A game between two bots is played out before returning.
func (that *GameManager) CreateGame(ctx context.Context, gameType string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.createGame(ctx, gameType)
}

func (that *GameManager) createGame(ctx context.Context, gameType string) (*entity.Game, error) {
	log := that.logger.With("method", "createGame")

	kinds, err := entity.PlayerKinds(gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve seats: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), gameType)
	gameLogger := that.logger.With("game_id", game.ID)

	session, err := morris.NewSession(gameLogger, kinds, morris.Options{
		Generator:  that.bot,
		Notifier:   morris.NewLogNotifier(gameLogger),
		ThinkDelay: that.settings.ThinkDelay,
		TurnLimit:  that.settings.TurnLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Debug("game created", "game_id", game.ID, "type", gameType)

	session.Start()
	session.Snapshot(game)

	if session.IsOver() {
		that.finish(ctx, game)
		return game.Clone(), nil
	}

	that.games[game.ID] = &activeGame{game: game, session: session}

	return game.Clone(), nil
}

// HandleClick forwards a click to a running game. When the click ends the game the final state is
// returned together with apperror.ErrGameFinished.
func (that *GameManager) HandleClick(ctx context.Context, gameID string, position int) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	active, ok := that.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	active.session.HandlePositionClick(position)
	active.session.Snapshot(active.game)

	if active.session.IsOver() {
		delete(that.games, gameID)
		that.finish(ctx, active.game)

		return active.game.Clone(), apperror.ErrGameFinished
	}

	return active.game.Clone(), nil
}

// ValidPositions returns the positions the current player may click.
func (that *GameManager) ValidPositions(gameID string) ([]int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	active, ok := that.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	return active.session.ValidPositions(), nil
}

// GetGame looks in the running games first, then in the recently finished ones and last in the ledger.
func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	if game, ok := that.lookup(gameID); ok {
		return game, nil
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) lookup(gameID string) (*entity.Game, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if active, ok := that.games[gameID]; ok {
		return active.game.Clone(), true
	}

	if game, ok := that.finished[gameID]; ok {
		return game.Clone(), true
	}

	return nil, false
}

// RestartGame throws away the progress of a running game and starts over with the same seats.
func (that *GameManager) RestartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	active, ok := that.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, gameID)
	}

	active.session.Reset()
	active.game.StartedAt = time.Now()
	active.session.Snapshot(active.game)

	if active.session.IsOver() {
		delete(that.games, gameID)
		that.finish(ctx, active.game)
	}

	return active.game.Clone(), nil
}

// Rematch starts a new game of the same type as a finished one.
func (that *GameManager) Rematch(ctx context.Context, gameID string) (*entity.Game, error) {
	previous, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to find previous game: %w", err)
	}

	if !previous.IsFinished() {
		return nil, fmt.Errorf("rematch of game %s: %w", gameID, ErrGameStillRunning)
	}

	return that.CreateGame(ctx, previous.Type)
}

// PlayMatch plays one game between two bots.
func (that *GameManager) PlayMatch(ctx context.Context) (*entity.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("match not started: %w", err)
	}

	game, err := that.CreateGame(ctx, entity.BotsType)
	if err != nil {
		return nil, fmt.Errorf("failed to play match: %w", err)
	}

	return game, nil
}

func (that *GameManager) Summary() Summary {
	that.mu.Lock()
	defer that.mu.Unlock()

	wins := make(map[string]int, len(that.summary.Wins))
	for kind, count := range that.summary.Wins {
		wins[kind] = count
	}

	return Summary{Played: that.summary.Played, Draws: that.summary.Draws, Wins: wins}
}

func (that *GameManager) finish(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finish", "game_id", game.ID)

	game.FinishedAt = time.Now()
	that.remember(game)

	that.summary.Played++
	if game.IsDraw() {
		that.summary.Draws++
	} else {
		that.summary.Wins[game.WinnerKind()]++
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		log.Error("failed to save game", "error", err)
	}

	if err := that.statsRepo.RecordResult(ctx, game); err != nil {
		log.Error("failed to record result", "error", err)
	}

	log.Info("game finished",
		"type", game.Type,
		"winner", game.Winner,
		"turns", game.Turns,
		"message", EndGameMessage(game, that.random.Intn),
	)
}

func (that *GameManager) remember(game *entity.Game) {
	if _, ok := that.finished[game.ID]; !ok {
		that.finishedOrder = append(that.finishedOrder, game.ID)
	}

	that.finished[game.ID] = game.Clone()

	if len(that.finishedOrder) > maxFinishedGames {
		delete(that.finished, that.finishedOrder[0])
		that.finishedOrder = that.finishedOrder[1:]
	}
}
