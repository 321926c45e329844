package hangmandomain

import "errors"

// Domain errors returned by Game. Handlers map each one to a user reply.
var (
	// ErrNoActiveRound is returned by commands that need a running round.
	ErrNoActiveRound = errors.New("no active round")

	// ErrRoundActive is returned when starting a round while one is running.
	ErrRoundActive = errors.New("a round is already active")

	// ErrInvalidLetter is returned when a letter guess is not exactly one letter.
	ErrInvalidLetter = errors.New("guess must be exactly one letter")

	// ErrInvalidSecret is returned for a blank secret.
	ErrInvalidSecret = errors.New("secret must not be blank")

	// ErrInvalidLives is returned for a non-positive lives value.
	ErrInvalidLives = errors.New("lives must be positive")

	// ErrEliminated is returned when an eliminated player acts or receives lives.
	ErrEliminated = errors.New("player is eliminated")

	// ErrNotYourTurn is returned when the last player to guess guesses again.
	ErrNotYourTurn = errors.New("wait for another player's turn")
)
