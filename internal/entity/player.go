package entity

import (
	"fmt"

	"github.com/rocketscienceinc/morris-backend/internal/apperror"
)

const (
	HumanKind = "human"
	BotKind   = "bot"
)

const (
	// TokensPerPlayer is the number of tokens each player starts with in hand.
	TokensPerPlayer = 9

	// FlyingTokens is the token count at which a player may fly.
	FlyingTokens = 3
)

type Player struct {
	ID            int    `json:"id"`
	Kind          string `json:"kind"`
	Phase         Phase  `json:"phase"`
	TokensToPlace int    `json:"tokens_to_place"`
	TokensOnBoard int    `json:"tokens_on_board"`
	HasLost       bool   `json:"has_lost"`
}

func NewPlayer(id int, kind string) *Player {
	return &Player{
		ID:            id,
		Kind:          kind,
		Phase:         PhasePlacing,
		TokensToPlace: TokensPerPlayer,
	}
}

func (that *Player) IsBot() bool {
	return that.Kind == BotKind
}

func (that *Player) IsPlacing() bool {
	return that.Phase == PhasePlacing
}

// TokensRemoved - number of tokens the opponent has taken from this player.
func (that *Player) TokensRemoved() int {
	return TokensPerPlayer - that.TokensToPlace - that.TokensOnBoard
}

// PlaceToken moves one token from hand to the board. Placing ends once the hand is empty.
func (that *Player) PlaceToken() error {
	if that.TokensToPlace <= 0 {
		return fmt.Errorf("%w: player %d", apperror.ErrNoTokensToPlace, that.ID)
	}

	that.TokensToPlace--
	that.TokensOnBoard++

	if that.TokensToPlace == 0 {
		that.Phase = PhaseSliding
	}

	return nil
}

// LoseToken accounts for a token taken off the board by the opponent.
func (that *Player) LoseToken() {
	that.TokensOnBoard--

	if that.TokensOnBoard == FlyingTokens && !that.IsPlacing() {
		that.Phase = PhaseFlying
	}
}

// SyncPhase promotes a sliding player who is down to the flying threshold.
func (that *Player) SyncPhase() {
	if that.Phase == PhaseSliding && that.TokensOnBoard <= FlyingTokens {
		that.Phase = PhaseFlying
	}
}

// IsDefeated reports whether the player no longer has enough tokens to form a mill.
func (that *Player) IsDefeated() bool {
	return !that.IsPlacing() && that.TokensOnBoard < FlyingTokens
}
