package morris

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rocketscienceinc/morris-backend/internal/apperror"
	"github.com/rocketscienceinc/morris-backend/internal/entity"
)

// maxBotClicks bounds the clicks a generator may spend on one sub-turn.
const maxBotClicks = 8

// ActionGenerator chooses the next click for a computer-controlled player.
type ActionGenerator interface {
	ChoosePosition(view TurnView) int
}

// TurnView is what a generator sees. Board must be treated as read-only.
type TurnView struct {
	Board      *Board
	Player     entity.Player
	Opponent   entity.Player
	Controller ControllerKind
	Selected   int
	Legal      []int
}

type Options struct {
	Generator  ActionGenerator
	Notifier   Notifier
	ThinkDelay time.Duration
	// TurnLimit ends the game as a draw after that many sub-turns. Zero means no limit.
	TurnLimit int
	Sleep     func(time.Duration)
}

// Session is one game: it owns the board, both players and the controllers, and alternates turns.
// It is not safe for concurrent use.
type Session struct {
	logger     *slog.Logger
	notifier   Notifier
	generator  ActionGenerator
	thinkDelay time.Duration
	turnLimit  int
	sleep      func(time.Duration)

	kinds       [2]string
	board       *Board
	players     []*entity.Player
	controllers []*Controller
	active      *Controller
	current     int

	interactionsDisabled bool
	started              bool
	over                 bool
	draw                 bool
	winner               int
	turns                int
}

func NewSession(logger *slog.Logger, kinds [2]string, opts Options) (*Session, error) {
	for _, kind := range kinds {
		if kind == entity.BotKind && opts.Generator == nil {
			return nil, fmt.Errorf("%w: bot seat without a generator", apperror.ErrInvariantViolation)
		}
	}

	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}

	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	session := &Session{
		logger:     logger.With("component", "session"),
		notifier:   opts.Notifier,
		generator:  opts.Generator,
		thinkDelay: opts.ThinkDelay,
		turnLimit:  opts.TurnLimit,
		sleep:      opts.Sleep,
		kinds:      kinds,
	}

	session.build()

	return session, nil
}

func (that *Session) build() {
	that.board = NewStandardBoard()
	that.players = []*entity.Player{
		entity.NewPlayer(0, that.kinds[0]),
		entity.NewPlayer(1, that.kinds[1]),
	}

	that.controllers = make([]*Controller, len(controllerKinds))
	for _, kind := range controllerKinds {
		that.controllers[kind] = NewController(kind, that.board, that.players)
	}

	that.current = 0
	that.active = that.controllers[ControllerPlacing]
	that.interactionsDisabled = false
	that.started = false
	that.over = false
	that.draw = false
	that.winner = entity.NoWinner
	that.turns = 0
}

// Start announces the first turn. When the first seat is a bot, its moves are played before returning.
func (that *Session) Start() {
	if that.started {
		return
	}

	that.started = true
	that.beginTurn()
	that.publishCounts()
	that.runBots()
	that.highlight()
}

// Reset discards the current game and starts a new one with the same seats.
func (that *Session) Reset() {
	that.build()
	that.Start()
}

// HandlePositionClick routes a click to the active controller and reports whether it ended the turn.
// Clicks are ignored before Start, after game over and while a bot is moving.
func (that *Session) HandlePositionClick(position int) bool {
	if !that.started || that.over || that.interactionsDisabled {
		return false
	}

	turnOver := that.click(position)
	that.runBots()
	that.highlight()

	return turnOver
}

func (that *Session) click(position int) bool {
	previous := that.active.Selected()

	effect, turnOver, err := that.active.Handle(position, that.current)
	if err != nil {
		panic(fmt.Errorf("player %d click at %d: %w", that.current, position, err))
	}

	if selected := that.active.Selected(); selected != previous {
		if previous != NoPosition {
			that.notifier.SelectionChanged(previous, false)
		}

		if selected != NoPosition {
			that.notifier.SelectionChanged(selected, true)
		}
	}

	if turnOver {
		that.publish(effect)
		that.endTurn()
	}

	return turnOver
}

func (that *Session) publish(effect Effect) {
	if effect.Removed != NoPosition {
		that.notifier.TokenRemoved(effect.Removed)
	} else {
		that.notifier.TokenRemoved(NoPosition)
		that.notifier.PreviousMove(effect.Touched)
	}

	if effect.Mill != nil {
		that.notifier.MillFormed(effect.Mill)
	}

	that.publishCounts()
}

func (that *Session) publishCounts() {
	for _, player := range that.players {
		that.notifier.TokenCounts(player.ID, player.TokensToPlace, player.TokensRemoved())
	}
}

func (that *Session) endTurn() {
	log := that.logger.With("method", "endTurn")

	that.turns++
	that.active.Reset()

	if that.board.MillJustFormed() {
		removal := that.controllers[ControllerRemoval]
		if removal.LegalActionsRemain(that.current) {
			that.active = removal
			that.announceHelper()
			log.Debug("mill formed", "player", that.current, "turns", that.turns)

			return
		}

		// nothing to take, the mill goes unrewarded
		that.board.SetMillJustFormed(false)
	}

	if that.turnLimit > 0 && that.turns >= that.turnLimit {
		log.Info("turn limit reached", "turns", that.turns)
		that.finish(entity.NoWinner, true)

		return
	}

	that.current = that.nextPlayer()
	that.beginTurn()
	that.checkEndCondition()

	log.Debug("turn ended", "next", that.current, "controller", that.active.Kind(), "turns", that.turns)
}

func (that *Session) beginTurn() {
	player := that.players[that.current]
	player.SyncPhase()

	that.active = that.controllers[ControllerFor(player, false)]
	that.active.Reset()
	that.interactionsDisabled = player.IsBot()

	that.notifier.TurnChanged(that.current)
	that.announceHelper()
}

func (that *Session) announceHelper() {
	if !that.players[that.current].IsBot() {
		that.notifier.HelperText(that.active.Kind().HelperText())
	}
}

func (that *Session) nextPlayer() int {
	for step := 1; step <= len(that.players); step++ {
		candidate := (that.current + step) % len(that.players)
		if !that.players[candidate].HasLost {
			return candidate
		}
	}

	return that.current
}

func (that *Session) checkEndCondition() {
	for _, player := range that.players {
		if player.IsDefeated() {
			player.HasLost = true
		}
	}

	if !that.active.LegalActionsRemain(that.current) {
		that.players[that.current].HasLost = true
	}

	winner, losers := entity.NoWinner, 0
	for _, player := range that.players {
		if player.HasLost {
			losers++
		} else {
			winner = player.ID
		}
	}

	if losers > 0 {
		that.finish(winner, false)
	}
}

func (that *Session) finish(winner int, draw bool) {
	that.over = true
	that.draw = draw
	that.winner = winner
	that.interactionsDisabled = false

	that.logger.Info("game finished", "winner", winner, "draw", draw, "turns", that.turns)
	that.notifier.GameOver(winner)
}

func (that *Session) runBots() {
	for !that.over && that.players[that.current].IsBot() {
		that.playBotTurn()
	}
}

func (that *Session) playBotTurn() {
	if that.thinkDelay > 0 {
		that.sleep(that.thinkDelay)
	}

	for range maxBotClicks {
		if that.click(that.generator.ChoosePosition(that.view())) {
			return
		}
	}

	panic(fmt.Errorf("%w: player %d", apperror.ErrGeneratorStalled, that.current))
}

func (that *Session) view() TurnView {
	return TurnView{
		Board:      that.board,
		Player:     *that.players[that.current],
		Opponent:   *that.players[opponentOf(that.current)],
		Controller: that.active.Kind(),
		Selected:   that.active.Selected(),
		Legal:      that.active.ValidPositions(that.current),
	}
}

func (that *Session) highlight() {
	if that.over || that.interactionsDisabled {
		that.notifier.HighlightPositions(nil)
		return
	}

	that.notifier.HighlightPositions(that.active.ValidPositions(that.current))
}

func (that *Session) Board() *Board {
	return that.board
}

// Player returns a copy of the player record.
func (that *Session) Player(id int) entity.Player {
	return *that.players[id]
}

func (that *Session) CurrentPlayer() int {
	return that.current
}

func (that *Session) Controller() ControllerKind {
	return that.active.Kind()
}

func (that *Session) Selected() int {
	return that.active.Selected()
}

func (that *Session) ValidPositions() []int {
	return slices.Clone(that.active.ValidPositions(that.current))
}

func (that *Session) InteractionsDisabled() bool {
	return that.interactionsDisabled
}

func (that *Session) IsOver() bool {
	return that.over
}

func (that *Session) IsDraw() bool {
	return that.draw
}

// Winner returns the winning player id, or entity.NoWinner.
func (that *Session) Winner() int {
	return that.winner
}

func (that *Session) Turns() int {
	return that.turns
}

// Snapshot copies the board, players and outcome into a game record.
func (that *Session) Snapshot(game *entity.Game) {
	game.Board = that.board.States()
	game.Turns = that.turns
	game.Winner = that.winner

	game.Players = make([]*entity.Player, 0, len(that.players))
	for _, player := range that.players {
		copied := *player
		game.Players = append(game.Players, &copied)
	}

	switch {
	case that.over && that.draw:
		game.Status = entity.StatusDraw
	case that.over:
		game.Status = entity.StatusFinished
	default:
		game.Status = entity.StatusOngoing
	}
}
