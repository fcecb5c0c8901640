package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/morris-backend/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
	StatusDraw     = "draw"
)

const (
	LocalType = "local" // two humans sharing one board
	BotType   = "bot"   // human against the computer, computer moves second
	BotsType  = "bots"  // computer against computer
)

// NoWinner marks a game without a winner yet, or a draw.
const NoWinner = -1

type Game struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Winner     int       `json:"winner"`
	Turns      int       `json:"turns"`
	Board      []int     `json:"board"`
	Players    []*Player `json:"players,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:        id,
		Type:      gameType,
		Status:    StatusOngoing,
		Winner:    NoWinner,
		StartedAt: time.Now(),
	}
}

// PlayerKinds returns the kinds of the two seats for a game type.
func PlayerKinds(gameType string) ([2]string, error) {
	switch gameType {
	case LocalType:
		return [2]string{HumanKind, HumanKind}, nil
	case BotType:
		return [2]string{HumanKind, BotKind}, nil
	case BotsType:
		return [2]string{BotKind, BotKind}, nil
	default:
		return [2]string{}, fmt.Errorf("%w: %s", apperror.ErrUnknownGameType, gameType)
	}
}

// Clone returns a deep copy that shares nothing with the original.
func (that *Game) Clone() *Game {
	cloned := *that
	cloned.Board = slices.Clone(that.Board)

	if that.Players != nil {
		cloned.Players = make([]*Player, 0, len(that.Players))
		for _, player := range that.Players {
			copied := *player
			cloned.Players = append(cloned.Players, &copied)
		}
	}

	return &cloned
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished || that.Status == StatusDraw
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

// WinnerKind returns the kind of the winning seat, or an empty string without a winner.
func (that *Game) WinnerKind() string {
	for _, player := range that.Players {
		if player.ID == that.Winner {
			return player.Kind
		}
	}

	return ""
}
