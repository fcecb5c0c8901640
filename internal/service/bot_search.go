package service

import (
	"github.com/rocketscienceinc/morris-backend/internal/morris"
)

// MaxProximityDepth bounds the moves-to-mill search.
const MaxProximityDepth = 7

// probe is a read-only what-if view of the board for one player.
type probe struct {
	board    *morris.Board
	player   morris.Owner
	vacated  int
	occupied int
	occupant morris.Owner
	start    int
}

func newProbe(board *morris.Board, player morris.Owner) probe {
	return probe{
		board:    board,
		player:   player,
		vacated:  morris.NoPosition,
		occupied: morris.NoPosition,
		start:    morris.NoPosition,
	}
}

func (that probe) vacate(position int) probe {
	that.vacated = position
	return that
}

func (that probe) occupy(position int, owner morris.Owner) probe {
	that.occupied = position
	that.occupant = owner

	return that
}

func (that probe) state(position int) morris.Owner {
	switch position {
	case that.start, that.vacated:
		return morris.Empty
	case that.occupied:
		return that.occupant
	default:
		return that.board.PositionState(position)
	}
}

// completes reports whether a token of the player arriving at position closes one of its lines.
func (that probe) completes(position int) bool {
	for _, line := range that.board.LinesThrough(position) {
		empty, foreign := 0, 0

		for _, member := range line {
			switch owner := that.state(member); owner {
			case morris.Empty:
				empty++
			case that.player:
			default:
				foreign++
			}
		}

		if foreign == 0 && empty == 1 {
			return true
		}
	}

	return false
}

// movesToMill returns how many moves the token at start needs to close a mill through empty
// positions, or 0 when none is reachable within MaxProximityDepth.
func (that probe) movesToMill(start int) int {
	that.start = start

	visited := make([]bool, that.board.Size())
	visited[start] = true

	return that.search(start, 1, visited)
}

func (that probe) search(from, depth int, visited []bool) int {
	var next []int

	for _, neighbour := range that.board.AdjacentPositions(from) {
		if visited[neighbour] || that.state(neighbour) != morris.Empty {
			continue
		}

		if that.completes(neighbour) {
			return depth
		}

		next = append(next, neighbour)
	}

	if depth >= MaxProximityDepth {
		return 0
	}

	best := 0
	for _, neighbour := range next {
		visited[neighbour] = true
		found := that.search(neighbour, depth+1, visited)
		visited[neighbour] = false

		if found > 0 && (best == 0 || found < best) {
			best = found
			if best == depth+1 {
				break
			}
		}
	}

	return best
}
