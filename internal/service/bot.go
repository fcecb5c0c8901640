package service

import (
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/rocketscienceinc/morris-backend/internal/entity"
	"github.com/rocketscienceinc/morris-backend/internal/morris"
)

type BotService interface {
	ChoosePosition(view morris.TurnView) int
}

type botService struct {
	logger *slog.Logger

	mu     sync.Mutex
	random *rand.Rand
}

// NewBotService returns the heuristic opponent. random breaks ties between equally scored moves.
func NewBotService(logger *slog.Logger, random *rand.Rand) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		random: random,
	}
}

// ChoosePosition picks one click for the acting player. The board is only read.
func (that *botService) ChoosePosition(view morris.TurnView) int {
	log := that.logger.With("method", "ChoosePosition", "player", view.Player.ID, "controller", view.Controller)

	if len(view.Legal) == 0 {
		return morris.NoPosition
	}

	if view.Controller != morris.ControllerRemoval {
		if position, rule, ok := that.completeMill(view); ok {
			log.Debug("rule matched", "rule", rule, "position", position)
			return position
		}
	}

	if best := that.bestScored(view); len(best) > 0 {
		position := that.pick(best)
		log.Debug("heuristic choice", "position", position, "candidates", best)

		return position
	}

	return that.pick(view.Legal)
}

func (that *botService) pick(positions []int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return positions[that.random.Intn(len(positions))]
}

// openLine is a line one token short of a mill for the acting player.
type openLine struct {
	line morris.MillLine
	slot int
}

func (that *botService) completeMill(view morris.TurnView) (int, string, bool) {
	board := view.Board
	me := morris.Owner(view.Player.ID)

	var open []openLine
	for _, line := range board.MillLines() {
		// moving a token out of the line cannot complete it
		if line.Contains(view.Selected) {
			continue
		}

		if slot, ok := openSlot(board, line, me); ok {
			open = append(open, openLine{line: line, slot: slot})
		}
	}

	for _, candidate := range open {
		if slices.Contains(view.Legal, candidate.slot) {
			return candidate.slot, "complete", true
		}
	}

	for _, candidate := range open {
		if source := relocation(view, candidate); source != morris.NoPosition {
			return source, "relocate", true
		}
	}

	choosingSource := view.Selected == morris.NoPosition &&
		(view.Controller == morris.ControllerSliding || view.Controller == morris.ControllerFlying)

	if choosingSource && view.Player.TokensOnBoard == entity.FlyingTokens {
		for _, candidate := range open {
			for _, position := range view.Legal {
				if !candidate.line.Contains(position) {
					return position, "keep-line", true
				}
			}
		}
	}

	return morris.NoPosition, "", false
}

// openSlot returns the single empty member of a line whose other members all belong to owner.
func openSlot(board *morris.Board, line morris.MillLine, owner morris.Owner) (int, bool) {
	slot := morris.NoPosition

	for _, position := range line {
		switch board.PositionState(position) {
		case morris.Empty:
			if slot != morris.NoPosition {
				return morris.NoPosition, false
			}

			slot = position
		case owner:
		default:
			return morris.NoPosition, false
		}
	}

	return slot, slot != morris.NoPosition
}

// relocation looks along the other lines through the open slot for a friendly token next to it.
func relocation(view morris.TurnView, candidate openLine) int {
	board := view.Board
	me := morris.Owner(view.Player.ID)

	for _, line := range board.LinesThrough(candidate.slot) {
		if slices.Equal(line, candidate.line) {
			continue
		}

		index := slices.Index(line, candidate.slot)
		for _, neighbour := range []int{index - 1, index + 1} {
			if neighbour < 0 || neighbour >= len(line) {
				continue
			}

			position := line[neighbour]
			if board.PositionState(position) == me && slices.Contains(view.Legal, position) {
				return position
			}
		}
	}

	return morris.NoPosition
}

func (that *botService) bestScored(view morris.TurnView) []int {
	best := math.MinInt
	var moves []int

	for _, position := range view.Legal {
		score := scoreMove(view, position)

		switch {
		case score > best:
			best = score
			moves = []int{position}
		case score == best:
			moves = append(moves, position)
		}
	}

	return moves
}
