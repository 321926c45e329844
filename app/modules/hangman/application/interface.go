package hangmanservice

import (
	"context"

	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

// Player identifies the user acting on the game.
type Player struct {
	ID   string
	Name string
}

// StartRoundRequest carries the start_game options.
type StartRoundRequest struct {
	GuildID   string
	StartedBy string
	Secret    string
	Hint      string
	Lives     int
}

// RoundInfo is what the round header shows.
type RoundInfo struct {
	RoundNumber int
	Pattern     string
	Lengths     string
	Hint        string
	Lives       int
}

// PlayerStatus is one line of the status view. Name is the ranking name
// and is empty when the ledger does not know the user.
type PlayerStatus struct {
	UserID      string
	Name        string
	Lives       int
	Eliminated  bool
	DailyPoints int
}

// StatusView is the status embed content.
type StatusView struct {
	hangmandomain.Snapshot
	PlayerStatuses []PlayerStatus
}

// Service runs the hangman game.
type Service interface {
	StartRound(ctx context.Context, req StartRoundRequest) (RoundInfo, error)
	GuessLetter(ctx context.Context, player Player, letter string) (hangmandomain.Outcome, error)
	GuessWord(ctx context.Context, player Player, phrase string) (hangmandomain.Outcome, error)
	Status(ctx context.Context) (StatusView, error)
	// AddLives returns the new lives total of userID.
	AddLives(ctx context.Context, userID string, n int) (int, error)
	AddPoints(ctx context.Context, player Player, n int) error
	// EndRound returns the secret of the closed round.
	EndRound(ctx context.Context, by string) (string, error)
	ResetRounds(ctx context.Context)
	// ToggleMode reports whether points mode is now on.
	ToggleMode(ctx context.Context) bool
}

// Ledger is the part of the ranking service the game writes to.
type Ledger interface {
	AddPoints(ctx context.Context, userID, name string, delta int, reason string) (rankingdomain.Entry, error)
	Lookup(ctx context.Context, userID string) (name string, known bool, dailyPoints int)
}

// EventPublisher publishes domain events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, payload any) error
}
