package morris

import (
	"fmt"
	"slices"
)

// Owner is the state of a position: Empty or the id of the player holding it.
type Owner int

const Empty Owner = -1

// NoPosition marks an unset position index.
const NoPosition = -1

// MillLine is an ordered run of positions. Consecutive entries are adjacent.
type MillLine []int

func (that MillLine) Contains(position int) bool {
	return slices.Contains(that, position)
}

// StandardLayout is the 24 point board with its 16 mill lines.
var StandardLayout = []MillLine{
	{0, 1, 2},
	{0, 9, 21},
	{1, 4, 7},
	{2, 14, 23},
	{3, 4, 5},
	{3, 10, 18},
	{5, 13, 20},
	{6, 7, 8},
	{6, 11, 15},
	{8, 12, 17},
	{9, 10, 11},
	{12, 13, 14},
	{15, 16, 17},
	{16, 19, 22},
	{18, 19, 20},
	{21, 22, 23},
}

type Board struct {
	states    []Owner
	lines     []MillLine
	linesAt   [][]int
	adjacent  [][]int
	millFound bool
	newMill   MillLine
}

// NewBoard builds a board for the given topology. The board size is one past the highest index.
func NewBoard(layout []MillLine) *Board {
	size := 0
	for _, line := range layout {
		for _, position := range line {
			size = max(size, position+1)
		}
	}

	board := &Board{
		states:   make([]Owner, size),
		lines:    layout,
		linesAt:  make([][]int, size),
		adjacent: make([][]int, size),
	}

	for i, line := range layout {
		for j, position := range line {
			board.linesAt[position] = append(board.linesAt[position], i)

			if j > 0 {
				board.link(position, line[j-1])
			}
		}
	}

	for _, neighbours := range board.adjacent {
		slices.Sort(neighbours)
	}

	board.Reset()

	return board
}

func NewStandardBoard() *Board {
	return NewBoard(StandardLayout)
}

func (that *Board) link(a, b int) {
	if !slices.Contains(that.adjacent[a], b) {
		that.adjacent[a] = append(that.adjacent[a], b)
	}

	if !slices.Contains(that.adjacent[b], a) {
		that.adjacent[b] = append(that.adjacent[b], a)
	}
}

// Reset empties every position and clears the mill flag.
func (that *Board) Reset() {
	for i := range that.states {
		that.states[i] = Empty
	}

	that.millFound = false
	that.newMill = nil
}

func (that *Board) Size() int {
	return len(that.states)
}

func (that *Board) Contains(position int) bool {
	return position >= 0 && position < len(that.states)
}

func (that *Board) PositionState(position int) Owner {
	return that.states[position]
}

func (that *Board) SetPositionState(position int, owner Owner) {
	that.states[position] = owner
}

// AdjacentPositions returns the neighbours of a position in ascending order. The slice is shared.
func (that *Board) AdjacentPositions(position int) []int {
	return that.adjacent[position]
}

func (that *Board) IsAdjacent(a, b int) bool {
	return slices.Contains(that.adjacent[a], b)
}

// PositionsWithState returns every position holding the given state in ascending order.
func (that *Board) PositionsWithState(owner Owner) []int {
	var positions []int

	for i, state := range that.states {
		if state == owner {
			positions = append(positions, i)
		}
	}

	return positions
}

func (that *Board) MillLines() []MillLine {
	return that.lines
}

// LinesThrough returns the mill lines a position belongs to.
func (that *Board) LinesThrough(position int) []MillLine {
	lines := make([]MillLine, 0, len(that.linesAt[position]))
	for _, i := range that.linesAt[position] {
		lines = append(lines, that.lines[i])
	}

	return lines
}

// CheckMill reports whether a mill line through the position is owned entirely by one player.
// The result is kept as the mill flag. With notifyIfNew the completed line is kept for TakeNewMill.
func (that *Board) CheckMill(position int, notifyIfNew bool) bool {
	that.millFound = false

	for _, i := range that.linesAt[position] {
		line := that.lines[i]
		if !that.isMill(line) {
			continue
		}

		that.millFound = true
		if notifyIfNew {
			that.newMill = line
		}

		break
	}

	return that.millFound
}

func (that *Board) isMill(line MillLine) bool {
	owner := that.states[line[0]]
	if owner == Empty {
		return false
	}

	for _, position := range line[1:] {
		if that.states[position] != owner {
			return false
		}
	}

	return true
}

// AllTokensInMill reports whether every token of the player is part of a standing mill.
func (that *Board) AllTokensInMill(player int) bool {
	for _, position := range that.PositionsWithState(Owner(player)) {
		if !that.InStandingMill(position) {
			return false
		}
	}

	return true
}

// InStandingMill checks mill membership without touching the mill flag.
func (that *Board) InStandingMill(position int) bool {
	for _, i := range that.linesAt[position] {
		if that.isMill(that.lines[i]) {
			return true
		}
	}

	return false
}

func (that *Board) MillJustFormed() bool {
	return that.millFound
}

func (that *Board) SetMillJustFormed(formed bool) {
	that.millFound = formed
}

// TakeNewMill returns the last line completed with notification and forgets it.
func (that *Board) TakeNewMill() (MillLine, bool) {
	line := that.newMill
	that.newMill = nil

	return line, line != nil
}

// States returns a copy of every position state as plain ints.
func (that *Board) States() []int {
	states := make([]int, len(that.states))
	for i, state := range that.states {
		states[i] = int(state)
	}

	return states
}

func (that *Board) String() string {
	return fmt.Sprint(that.States())
}
