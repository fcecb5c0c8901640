package morris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardBoard(t *testing.T) {
	// Given: a standard board
	board := NewStandardBoard()

	// Then: it has 24 empty positions and 16 lines
	require.Equal(t, 24, board.Size())
	assert.Len(t, board.MillLines(), 16)
	assert.Len(t, board.PositionsWithState(Empty), 24)
	assert.False(t, board.MillJustFormed())
}

func TestBoard_AdjacentPositions(t *testing.T) {
	board := NewStandardBoard()

	t.Run("Middle of lines is adjacent to both ends", func(t *testing.T) {
		// Then: position 4 is the middle of {1,4,7} and {3,4,5}
		assert.Equal(t, []int{1, 3, 5, 7}, board.AdjacentPositions(4))
	})

	t.Run("Corner is adjacent to the middles only", func(t *testing.T) {
		// Then: position 0 touches 1 and 9 but not 2 or 21
		assert.Equal(t, []int{1, 9}, board.AdjacentPositions(0))
		assert.False(t, board.IsAdjacent(0, 2))
		assert.True(t, board.IsAdjacent(9, 0))
	})

	t.Run("Adjacency is symmetric", func(t *testing.T) {
		for position := range board.Size() {
			for _, neighbour := range board.AdjacentPositions(position) {
				assert.True(t, board.IsAdjacent(neighbour, position), "%d-%d", position, neighbour)
			}
		}
	})
}

func TestBoard_PositionsWithState(t *testing.T) {
	// Given: a board with tokens of player 1 placed out of order
	board := NewStandardBoard()
	board.SetPositionState(17, 1)
	board.SetPositionState(3, 1)
	board.SetPositionState(9, 0)

	// When: listing player 1 positions
	positions := board.PositionsWithState(1)

	// Then: they come back ascending
	assert.Equal(t, []int{3, 17}, positions)
	assert.Len(t, board.PositionsWithState(Empty), 21)
}

func TestBoard_CheckMill(t *testing.T) {
	t.Run("Full line of one owner is a mill", func(t *testing.T) {
		// Given: player 0 holds 0, 1 and 2
		board := NewStandardBoard()
		for _, position := range []int{0, 1, 2} {
			board.SetPositionState(position, 0)
		}

		// When: checking the mill with notification
		formed := board.CheckMill(2, true)

		// Then: a mill is reported and kept for notification
		require.True(t, formed)
		assert.True(t, board.MillJustFormed())

		line, ok := board.TakeNewMill()
		require.True(t, ok)
		assert.Equal(t, MillLine{0, 1, 2}, line)

		_, ok = board.TakeNewMill()
		assert.False(t, ok)
	})

	t.Run("Mixed owners are not a mill", func(t *testing.T) {
		// Given: the line 0,1,2 is split between players
		board := NewStandardBoard()
		board.SetPositionState(0, 0)
		board.SetPositionState(1, 1)
		board.SetPositionState(2, 0)

		// Then: no mill
		assert.False(t, board.CheckMill(1, true))
		assert.False(t, board.MillJustFormed())
	})

	t.Run("Empty lines are never mills", func(t *testing.T) {
		// Given: an empty board
		board := NewStandardBoard()
		board.SetMillJustFormed(true)

		// When: checking any position
		formed := board.CheckMill(10, false)

		// Then: the result is false and the flag follows it
		assert.False(t, formed)
		assert.False(t, board.MillJustFormed())
	})

	t.Run("Without notification nothing is kept", func(t *testing.T) {
		// Given: player 1 holds 3, 10 and 18
		board := NewStandardBoard()
		for _, position := range []int{3, 10, 18} {
			board.SetPositionState(position, 1)
		}

		// When: checking without notification
		formed := board.CheckMill(10, false)

		// Then: the mill is found but not recorded as new
		assert.True(t, formed)
		_, ok := board.TakeNewMill()
		assert.False(t, ok)
	})
}

func TestBoard_AllTokensInMill(t *testing.T) {
	// Given: player 1 holds the mill 21,22,23
	board := NewStandardBoard()
	for _, position := range []int{21, 22, 23} {
		board.SetPositionState(position, 1)
	}

	// Then: all tokens are in mills and the mill flag is untouched
	assert.True(t, board.AllTokensInMill(1))
	assert.False(t, board.MillJustFormed())

	// When: player 1 gets a loose token
	board.SetPositionState(4, 1)

	// Then: not all tokens are in mills
	assert.False(t, board.AllTokensInMill(1))
	assert.True(t, board.InStandingMill(22))
	assert.False(t, board.InStandingMill(4))
}

func TestBoard_Reset(t *testing.T) {
	// Given: a board with tokens and a pending mill
	board := NewStandardBoard()
	board.SetPositionState(5, 0)
	board.SetMillJustFormed(true)

	// When: resetting
	board.Reset()

	// Then: everything is empty again
	assert.Len(t, board.PositionsWithState(Empty), board.Size())
	assert.False(t, board.MillJustFormed())
}
