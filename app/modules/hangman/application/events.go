package hangmanservice

import (
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
)

func newRoundStarted(g *hangmandomain.Game, guildID, startedBy string, at time.Time) events.RoundStartedPayloadV1 {
	return events.RoundStartedPayloadV1{
		RoundID:     g.RoundID,
		RoundNumber: g.RoundNumber,
		GuildID:     guildID,
		StartedBy:   startedBy,
		Lives:       g.InitialLives,
		Pattern:     hangmandomain.InitialPattern(g.Secret),
		Letters:     len(g.Needed),
		StartedAt:   at.UTC(),
	}
}

func newGuessEvaluated(roundID, userID string, out hangmandomain.Outcome) events.GuessEvaluatedPayloadV1 {
	return events.GuessEvaluatedPayloadV1{
		RoundID:    roundID,
		UserID:     userID,
		Kind:       string(out.Kind),
		Guess:      out.Guess,
		Outcome:    string(out.Result),
		Points:     out.Points(),
		LivesLeft:  out.LivesLeft,
		Eliminated: out.Eliminated,
	}
}

func newRoundEnded(roundID string, roundNumber int, guildID, reason, secret, winnerID string, at time.Time) events.RoundEndedPayloadV1 {
	return events.RoundEndedPayloadV1{
		RoundID:     roundID,
		RoundNumber: roundNumber,
		GuildID:     guildID,
		Reason:      reason,
		Secret:      secret,
		WinnerID:    winnerID,
		EndedAt:     at.UTC(),
	}
}
