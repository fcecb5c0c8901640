package morris

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/morris-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var localSeats = [2]string{entity.HumanKind, entity.HumanKind}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	NopNotifier

	mills      []MillLine
	removed    []int
	highlights [][]int
	winners    []int
}

func (that *recordingNotifier) MillFormed(line MillLine) {
	that.mills = append(that.mills, line)
}

func (that *recordingNotifier) TokenRemoved(position int) {
	if position != NoPosition {
		that.removed = append(that.removed, position)
	}
}

func (that *recordingNotifier) HighlightPositions(positions []int) {
	that.highlights = append(that.highlights, positions)
}

func (that *recordingNotifier) GameOver(winner int) {
	that.winners = append(that.winners, winner)
}

// firstLegal always clicks the first valid position.
type firstLegal struct {
	calls int
}

func (that *firstLegal) ChoosePosition(view TurnView) int {
	that.calls++
	return view.Legal[0]
}

func clickAll(t *testing.T, session *Session, positions ...int) {
	t.Helper()

	for _, position := range positions {
		session.HandlePositionClick(position)
	}
}

func TestSession_Placing(t *testing.T) {
	t.Run("Turns alternate after each placement", func(t *testing.T) {
		// Given: a started local game
		session, err := NewSession(discardLogger(), localSeats, Options{})
		require.NoError(t, err)
		session.Start()

		// When: player 0 places at 0
		turnOver := session.HandlePositionClick(0)

		// Then: it is player 1's turn
		assert.True(t, turnOver)
		assert.Equal(t, 1, session.CurrentPlayer())
		assert.Equal(t, ControllerPlacing, session.Controller())

		// When: player 1 clicks the occupied position
		turnOver = session.HandlePositionClick(0)

		// Then: nothing happens
		assert.False(t, turnOver)
		assert.Equal(t, 1, session.CurrentPlayer())
		assert.Equal(t, Owner(0), session.Board().PositionState(0))
	})

	t.Run("Clicks before start are ignored", func(t *testing.T) {
		session, err := NewSession(discardLogger(), localSeats, Options{})
		require.NoError(t, err)

		assert.False(t, session.HandlePositionClick(0))
		assert.Equal(t, Empty, session.Board().PositionState(0))
	})

	t.Run("Bot seat requires a generator", func(t *testing.T) {
		_, err := NewSession(discardLogger(), [2]string{entity.HumanKind, entity.BotKind}, Options{})
		require.Error(t, err)
	})
}

func TestSession_MillAndRemoval(t *testing.T) {
	// Given: a local game where player 0 builds 0,1,2 and player 1 builds 9,10
	notifier := &recordingNotifier{}
	session, err := NewSession(discardLogger(), localSeats, Options{Notifier: notifier})
	require.NoError(t, err)
	session.Start()

	clickAll(t, session, 0, 9, 1, 10)

	// When: player 0 completes the line
	turnOver := session.HandlePositionClick(2)

	// Then: player 0 keeps the turn with the removal controller
	require.True(t, turnOver)
	assert.True(t, session.Board().MillJustFormed())
	assert.Equal(t, 0, session.CurrentPlayer())
	assert.Equal(t, ControllerRemoval, session.Controller())
	assert.Equal(t, []int{9, 10}, session.ValidPositions())
	assert.Equal(t, []MillLine{{0, 1, 2}}, notifier.mills)
	assert.Equal(t, []int{9, 10}, notifier.highlights[len(notifier.highlights)-1])

	// When: player 0 removes token 10
	turnOver = session.HandlePositionClick(10)

	// Then: the turn passes and the counters follow
	require.True(t, turnOver)
	assert.False(t, session.Board().MillJustFormed())
	assert.Equal(t, 1, session.CurrentPlayer())
	assert.Equal(t, ControllerPlacing, session.Controller())
	assert.Equal(t, []int{10}, notifier.removed)

	player := session.Player(1)
	assert.Equal(t, 1, player.TokensOnBoard)
	assert.Equal(t, 1, player.TokensRemoved())
}

func TestSession_LossAtTwoTokens(t *testing.T) {
	// Given: player 0 slides with 0,1,10,14 and player 1 slides with four loose tokens
	session, err := NewSession(discardLogger(), localSeats, Options{})
	require.NoError(t, err)
	session.Start()

	board := session.Board()
	postPlacing(board, session.players[0], 0, 1, 10, 14)
	postPlacing(board, session.players[1], 5, 7, 19, 22)
	session.beginTurn()
	require.Equal(t, ControllerSliding, session.Controller())

	// When: player 0 closes the mill and removes 22
	clickAll(t, session, 14, 2, 22)

	// Then: player 1 is down to three and flies
	require.Equal(t, 1, session.CurrentPlayer())
	assert.Equal(t, ControllerFlying, session.Controller())
	assert.False(t, session.IsOver())

	// When: both shuffle and player 0 closes the mill again, removing 5
	clickAll(t, session, 19, 16)
	clickAll(t, session, 2, 14)
	clickAll(t, session, 16, 19)
	clickAll(t, session, 14, 2, 5)

	// Then: player 1 has lost and player 0 wins
	assert.True(t, session.IsOver())
	assert.False(t, session.IsDraw())
	assert.Equal(t, 0, session.Winner())
	assert.True(t, session.Player(1).HasLost)
	assert.Equal(t, 2, session.Player(1).TokensOnBoard)

	// And: further clicks are ignored
	assert.False(t, session.HandlePositionClick(16))
}

func TestSession_NoLegalMovesLoses(t *testing.T) {
	// Given: player 1 is about to move with every token blocked
	session, err := NewSession(discardLogger(), localSeats, Options{})
	require.NoError(t, err)
	session.Start()

	board := session.Board()
	postPlacing(board, session.players[1], 1, 3, 5, 7)
	postPlacing(board, session.players[0], 4, 0, 2, 6, 8, 10, 13, 11, 12)

	// When: player 0 makes a harmless move
	session.beginTurn()
	clickAll(t, session, 11, 15)

	// Then: player 1 cannot move and loses
	assert.True(t, session.IsOver())
	assert.Equal(t, 0, session.Winner())
}

func TestSession_BotTurns(t *testing.T) {
	t.Run("Bot moves synchronously after the human", func(t *testing.T) {
		// Given: a game against a generator that picks the first valid position
		generator := &firstLegal{}
		session, err := NewSession(discardLogger(), [2]string{entity.HumanKind, entity.BotKind}, Options{
			Generator: generator,
		})
		require.NoError(t, err)
		session.Start()

		// When: the human places at 0
		session.HandlePositionClick(0)

		// Then: the bot has already placed at the first empty position and it is the human's turn again
		assert.Equal(t, 1, generator.calls)
		assert.Equal(t, Owner(1), session.Board().PositionState(1))
		assert.Equal(t, 0, session.CurrentPlayer())
		assert.False(t, session.InteractionsDisabled())
	})

	t.Run("Clicks while the bot is thinking are ignored", func(t *testing.T) {
		// Given: a think delay that tries to click for the human
		var session *Session
		var ignored []bool

		sleep := func(time.Duration) {
			ignored = append(ignored, !session.HandlePositionClick(23))
		}

		var err error
		session, err = NewSession(discardLogger(), [2]string{entity.HumanKind, entity.BotKind}, Options{
			Generator:  &firstLegal{},
			ThinkDelay: time.Second,
			Sleep:      sleep,
		})
		require.NoError(t, err)
		session.Start()

		// When: the human places and the bot takes its turn
		session.HandlePositionClick(0)

		// Then: the click during the bot turn did nothing
		require.Equal(t, []bool{true}, ignored)
		assert.Equal(t, Empty, session.Board().PositionState(23))
	})

	t.Run("Two bots play until the turn limit or a winner", func(t *testing.T) {
		// Given: two bots with a turn limit
		notifier := &recordingNotifier{}
		session, err := NewSession(discardLogger(), [2]string{entity.BotKind, entity.BotKind}, Options{
			Generator: &firstLegal{},
			Notifier:  notifier,
			TurnLimit: 200,
		})
		require.NoError(t, err)

		// When: starting the game
		session.Start()

		// Then: it runs to completion inside Start
		assert.True(t, session.IsOver())
		assert.LessOrEqual(t, session.Turns(), 200)
		assert.Len(t, notifier.winners, 1)

		game := entity.NewGame("g", entity.BotsType)
		session.Snapshot(game)
		assert.True(t, game.IsFinished())
		assert.Len(t, game.Board, 24)
		assert.Len(t, game.Players, 2)
	})

	t.Run("Generator that never finishes its turn panics", func(t *testing.T) {
		session, err := NewSession(discardLogger(), [2]string{entity.BotKind, entity.HumanKind}, Options{
			Generator: stuckGenerator{},
		})
		require.NoError(t, err)

		assert.Panics(t, session.Start)
	})
}

type stuckGenerator struct{}

func (stuckGenerator) ChoosePosition(TurnView) int {
	return NoPosition
}

func TestSession_Reset(t *testing.T) {
	// Given: a game with a few moves
	session, err := NewSession(discardLogger(), localSeats, Options{})
	require.NoError(t, err)
	session.Start()
	clickAll(t, session, 0, 1, 2)

	// When: resetting
	session.Reset()

	// Then: the board is empty and player 0 places
	assert.Len(t, session.Board().PositionsWithState(Empty), 24)
	assert.Equal(t, 0, session.CurrentPlayer())
	assert.Equal(t, entity.TokensPerPlayer, session.Player(0).TokensToPlace)
	assert.Equal(t, 0, session.Turns())
	assert.True(t, session.HandlePositionClick(5))
}
