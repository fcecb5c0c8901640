package morris

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/morris-backend/internal/entity"
)

type ControllerKind int

const (
	ControllerPlacing ControllerKind = iota
	ControllerSliding
	ControllerFlying
	ControllerRemoval
)

var controllerKinds = []ControllerKind{ControllerPlacing, ControllerSliding, ControllerFlying, ControllerRemoval}

func (that ControllerKind) String() string {
	switch that {
	case ControllerPlacing:
		return "placing"
	case ControllerSliding:
		return "sliding"
	case ControllerFlying:
		return "flying"
	case ControllerRemoval:
		return "removal"
	default:
		return fmt.Sprintf("controller(%d)", int(that))
	}
}

// HelperText is the hint shown to a human while the controller is active.
func (that ControllerKind) HelperText() string {
	switch that {
	case ControllerPlacing:
		return "Place one of your tokens onto an empty position!"
	case ControllerSliding:
		return "Move one of your tokens to an adjacent empty position!"
	case ControllerFlying:
		return "Move one of your tokens to an empty position!"
	case ControllerRemoval:
		return "You've formed a mill! Remove a token from your opponent which is not forming a mill"
	default:
		return ""
	}
}

// ControllerFor picks the controller for a player. A pending mill always means removal.
func ControllerFor(player *entity.Player, millPending bool) ControllerKind {
	switch {
	case millPending:
		return ControllerRemoval
	case player.IsPlacing():
		return ControllerPlacing
	case player.Phase == entity.PhaseFlying || player.TokensOnBoard <= entity.FlyingTokens:
		return ControllerFlying
	default:
		return ControllerSliding
	}
}

// Controller validates clicks for one kind of turn. Only moving controllers keep a selected source.
type Controller struct {
	kind     ControllerKind
	board    *Board
	players  []*entity.Player
	selected int
}

func NewController(kind ControllerKind, board *Board, players []*entity.Player) *Controller {
	return &Controller{
		kind:     kind,
		board:    board,
		players:  players,
		selected: NoPosition,
	}
}

func (that *Controller) Kind() ControllerKind {
	return that.kind
}

// Selected returns the chosen source of a move, or NoPosition.
func (that *Controller) Selected() int {
	return that.selected
}

func (that *Controller) Reset() {
	that.selected = NoPosition
}

// Handle processes a click by the player. It reports whether the click completed the turn.
// Illegal clicks change nothing.
func (that *Controller) Handle(position, player int) (Effect, bool, error) {
	if !that.board.Contains(position) {
		return Effect{Removed: NoPosition}, false, nil
	}

	switch that.kind {
	case ControllerPlacing:
		if that.board.PositionState(position) != Empty {
			return Effect{Removed: NoPosition}, false, nil
		}

		return that.apply(NewPlaceAction(player, position))

	case ControllerRemoval:
		if !that.isRemovable(position, player) {
			return Effect{Removed: NoPosition}, false, nil
		}

		return that.apply(NewRemoveAction(player, position))

	default:
		return that.handleMove(position, player)
	}
}

func (that *Controller) handleMove(position, player int) (Effect, bool, error) {
	if that.board.PositionState(position) == Owner(player) {
		switch {
		case position == that.selected:
			that.selected = NoPosition
		case len(that.LegalDestinationsFrom(position)) > 0:
			that.selected = position
		}

		return Effect{Removed: NoPosition}, false, nil
	}

	if that.selected == NoPosition || !slices.Contains(that.LegalDestinationsFrom(that.selected), position) {
		return Effect{Removed: NoPosition}, false, nil
	}

	start := that.selected
	that.selected = NoPosition

	return that.apply(NewMoveAction(player, start, position))
}

func (that *Controller) apply(action Action) (Effect, bool, error) {
	effect, err := action.Apply(that.board, that.players)
	if err != nil {
		return effect, false, fmt.Errorf("failed to apply %s action: %w", action.Kind, err)
	}

	return effect, true, nil
}

// LegalDestinationsFrom lists where the token at position may move under this controller.
func (that *Controller) LegalDestinationsFrom(position int) []int {
	switch that.kind {
	case ControllerSliding:
		var destinations []int
		for _, neighbour := range that.board.AdjacentPositions(position) {
			if that.board.PositionState(neighbour) == Empty {
				destinations = append(destinations, neighbour)
			}
		}

		return destinations
	case ControllerFlying:
		return that.board.PositionsWithState(Empty)
	default:
		return nil
	}
}

// ValidPositions lists the positions the player may click right now.
func (that *Controller) ValidPositions(player int) []int {
	switch that.kind {
	case ControllerPlacing:
		return that.board.PositionsWithState(Empty)

	case ControllerRemoval:
		var targets []int
		for _, position := range that.board.PositionsWithState(Owner(opponentOf(player))) {
			if that.isRemovable(position, player) {
				targets = append(targets, position)
			}
		}

		return targets

	default:
		if that.selected != NoPosition {
			return that.LegalDestinationsFrom(that.selected)
		}

		var sources []int
		for _, position := range that.board.PositionsWithState(Owner(player)) {
			if len(that.LegalDestinationsFrom(position)) > 0 {
				sources = append(sources, position)
			}
		}

		return sources
	}
}

// LegalActionsRemain reports whether the player can act at all under this controller.
func (that *Controller) LegalActionsRemain(player int) bool {
	switch that.kind {
	case ControllerPlacing:
		return len(that.board.PositionsWithState(Empty)) > 0

	case ControllerFlying:
		return len(that.board.PositionsWithState(Owner(player))) > 0 &&
			len(that.board.PositionsWithState(Empty)) > 0

	case ControllerSliding:
		for _, position := range that.board.PositionsWithState(Owner(player)) {
			if len(that.LegalDestinationsFrom(position)) > 0 {
				return true
			}
		}

		return false

	case ControllerRemoval:
		for _, position := range that.board.PositionsWithState(Owner(opponentOf(player))) {
			if that.isRemovable(position, player) {
				return true
			}
		}

		return false

	default:
		return false
	}
}

// isRemovable: an opponent token outside standing mills, or any opponent token once all of them are in mills.
func (that *Controller) isRemovable(position, player int) bool {
	owner := that.board.PositionState(position)
	if owner == Empty || int(owner) == player {
		return false
	}

	return !that.board.InStandingMill(position) || that.board.AllTokensInMill(int(owner))
}

func opponentOf(player int) int {
	return 1 - player
}
