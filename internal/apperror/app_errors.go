package apperror

import "errors"

var (
	ErrGameFinished       = errors.New("game is already finished")
	ErrGameNotFound       = errors.New("game not found")
	ErrUnknownGameType    = errors.New("unknown game type")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNoMillPending      = errors.New("no mill is pending")
	ErrNoTokensToPlace    = errors.New("player has no tokens left to place")
	ErrGeneratorStalled   = errors.New("bot did not finish its turn")
)
