package service

import (
	"math"

	"github.com/rocketscienceinc/morris-backend/internal/morris"
)

// stateFunc reads a position, possibly with hypothetical changes on top of the board.
type stateFunc func(position int) morris.Owner

// scoreMove rates clicking position: the change in line scores around it plus, for clicks that
// empty the position, how close the affected tokens are to a mill.
func scoreMove(view morris.TurnView, position int) int {
	board := view.Board
	me := morris.Owner(view.Player.ID)

	result := morris.Empty
	if view.Controller == morris.ControllerPlacing || view.Selected != morris.NoPosition {
		result = me
	}

	current := board.PositionState
	future := func(candidate int) morris.Owner {
		switch candidate {
		case position:
			return result
		case view.Selected:
			return morris.Empty
		default:
			return board.PositionState(candidate)
		}
	}

	inHand := view.Player.TokensToPlace > 0

	score := 0
	for _, line := range board.LinesThrough(position) {
		score += lineScore(board, line, future, me, inHand) - lineScore(board, line, current, me, inHand)
	}

	if result != morris.Empty {
		return score
	}

	if view.Controller == morris.ControllerRemoval {
		owner := board.PositionState(position)
		probe := newProbe(board, owner).vacate(position)

		return score + proximityBonus(probe.movesToMill(position), 300, 100)
	}

	probe := newProbe(board, me).vacate(position)
	score += proximityBonus(probe.movesToMill(position), 200, 70)

	return score + neighbourShift(board, position, me)
}

// lineScore rates one line from the acting player's side.
func lineScore(board *morris.Board, line morris.MillLine, state stateFunc, me morris.Owner, inHand bool) int {
	var mine, theirs, empty int
	open, blocker := morris.NoPosition, morris.NoPosition

	for _, position := range line {
		switch owner := state(position); owner {
		case morris.Empty:
			empty++
			open = position
		case me:
			mine++
			blocker = position
		default:
			theirs++
		}
	}

	isMine := func(owner morris.Owner) bool { return owner == me }
	isTheirs := func(owner morris.Owner) bool { return owner != morris.Empty && owner != me }

	score := 0

	switch {
	case theirs == 0:
		score += 100 * mine
		if empty == 1 {
			score += 100

			switch {
			case !inHand:
				score -= 200
			case neighbourMatches(board, line, state, open, isMine):
				score += 150
			}
		}

	case mine == 0:
		score -= 70 * theirs
		if empty == 1 && (!inHand || neighbourMatches(board, line, state, open, isTheirs)) {
			score -= 200
		}

	case mine == 1:
		score += 50 * theirs
		if empty == 0 && (!inHand || neighbourMatches(board, line, state, blocker, isTheirs)) {
			score += 150
		}

	case theirs == 1:
		score -= 30 * mine
	}

	return score
}

// neighbourMatches checks the neighbours of position that lie outside the line.
func neighbourMatches(board *morris.Board, line morris.MillLine, state stateFunc, position int, match func(morris.Owner) bool) bool {
	for _, neighbour := range board.AdjacentPositions(position) {
		if !line.Contains(neighbour) && match(state(neighbour)) {
			return true
		}
	}

	return false
}

// proximityBonus converts a moves-to-mill distance into points. Zero means unreachable.
func proximityBonus(distance, one, two int) int {
	switch distance {
	case 0:
		return 0
	case 1:
		return one
	case 2:
		return two
	default:
		return 50 - (distance-3)*10
	}
}

// neighbourShift rates the best empty square next to source as a destination by how much it changes
// the moves-to-mill of the surrounding tokens. Friendly tokens count up, opponent tokens count down.
func neighbourShift(board *morris.Board, source int, me morris.Owner) int {
	var empties, tokens []int
	for _, neighbour := range board.AdjacentPositions(source) {
		if board.PositionState(neighbour) == morris.Empty {
			empties = append(empties, neighbour)
		} else {
			tokens = append(tokens, neighbour)
		}
	}

	if len(empties) == 0 || len(tokens) == 0 {
		return 0
	}

	baseline := 0
	for _, token := range tokens {
		owner := board.PositionState(token)
		baseline += sign(owner, me) * proximityBonus(newProbe(board, owner).movesToMill(token), 200, 70)
	}

	best := math.MinInt
	for _, destination := range empties {
		total := 0
		for _, token := range tokens {
			owner := board.PositionState(token)
			probe := newProbe(board, owner).vacate(source).occupy(destination, me)
			total += sign(owner, me) * proximityBonus(probe.movesToMill(token), 200, 70)
		}

		best = max(best, total)
	}

	return best - baseline
}

func sign(owner, me morris.Owner) int {
	if owner == me {
		return 1
	}

	return -1
}
