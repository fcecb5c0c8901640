package morris

import (
	"fmt"

	"github.com/rocketscienceinc/morris-backend/internal/apperror"
	"github.com/rocketscienceinc/morris-backend/internal/entity"
)

type ActionKind int

const (
	ActionPlace ActionKind = iota
	ActionMove
	ActionRemove
)

func (that ActionKind) String() string {
	switch that {
	case ActionPlace:
		return "place"
	case ActionMove:
		return "move"
	case ActionRemove:
		return "remove"
	default:
		return fmt.Sprintf("action(%d)", int(that))
	}
}

// Action is a single validated change to the board. Start is NoPosition for placements and removals.
type Action struct {
	Kind   ActionKind
	Start  int
	End    int
	Player int
}

// Effect describes what applying an action changed.
type Effect struct {
	Touched []int
	Removed int
	Mill    MillLine
}

func NewPlaceAction(player, end int) Action {
	return Action{Kind: ActionPlace, Start: NoPosition, End: end, Player: player}
}

func NewMoveAction(player, start, end int) Action {
	return Action{Kind: ActionMove, Start: start, End: end, Player: player}
}

func NewRemoveAction(player, end int) Action {
	return Action{Kind: ActionRemove, Start: NoPosition, End: end, Player: player}
}

// Apply mutates the board and the player records. players is indexed by player id.
func (that Action) Apply(board *Board, players []*entity.Player) (Effect, error) {
	effect := Effect{Removed: NoPosition}

	switch that.Kind {
	case ActionPlace:
		if err := players[that.Player].PlaceToken(); err != nil {
			return effect, fmt.Errorf("failed to place token: %w", err)
		}

		board.SetPositionState(that.End, Owner(that.Player))
		effect.Touched = []int{that.End}
		effect.Mill = that.checkMill(board)

	case ActionMove:
		board.SetPositionState(that.Start, Empty)
		board.SetPositionState(that.End, Owner(that.Player))
		effect.Touched = []int{that.Start, that.End}
		effect.Mill = that.checkMill(board)

	case ActionRemove:
		if !board.MillJustFormed() {
			return effect, fmt.Errorf("%w: remove at %d", apperror.ErrNoMillPending, that.End)
		}

		owner := board.PositionState(that.End)
		if owner == Empty || int(owner) == that.Player {
			return effect, fmt.Errorf("%w: position %d is not an opponent token", apperror.ErrInvariantViolation, that.End)
		}

		board.SetMillJustFormed(false)
		board.SetPositionState(that.End, Empty)
		players[owner].LoseToken()
		effect.Removed = that.End

	default:
		return effect, fmt.Errorf("%w: unknown action %d", apperror.ErrInvariantViolation, that.Kind)
	}

	return effect, nil
}

func (that Action) checkMill(board *Board) MillLine {
	if !board.CheckMill(that.End, true) {
		return nil
	}

	line, _ := board.TakeNewMill()

	return line
}
