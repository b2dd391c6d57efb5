package game

import "errors"

// Expected failure modes of the engine. All of them leave the table
// state unchanged; the caller may retry with a corrected request.
var (
	// Lifecycle errors.
	ErrRoomFull         = errors.New("room is full")
	ErrHandInProgress   = errors.New("hand in progress")
	ErrNotEnoughPlayers = errors.New("need at least 2 players")
	ErrNotEnoughFunds   = errors.New("need at least 2 players with chips")
	ErrHandNotStarted   = errors.New("hand has not started")
	ErrHandOver         = errors.New("hand is already over")

	// Turn and authorization errors.
	ErrNotYourTurn   = errors.New("not your turn")
	ErrAlreadyFolded = errors.New("player has folded")
	ErrAlreadyAllIn  = errors.New("player is all-in")

	// Action validity errors.
	ErrNothingToCheck = errors.New("cannot check, there is a bet to call")
	ErrNothingToCall  = errors.New("nothing to call")
	ErrRaiseTooSmall  = errors.New("raise below minimum")
	ErrInvalidAmount  = errors.New("invalid amount")
)
