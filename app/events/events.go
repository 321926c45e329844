// Package events defines the domain event topics published by the bots and
// their JSON payloads.
package events

import "time"

// Topic names. Subjects are grouped per stream: hangman.>, ranking.>, ditto.>.
const (
	RoundStartedV1   = "hangman.round.started.v1"
	RoundEndedV1     = "hangman.round.ended.v1"
	GuessEvaluatedV1 = "hangman.guess.evaluated.v1"

	PointsAwardedV1 = "ranking.points.awarded.v1"
	DailyResetV1    = "ranking.daily.reset.v1"

	LetterRepeatedV1 = "ditto.letter.repeated.v1"
)

// Round end reasons.
const (
	EndReasonSolved  = "solved"
	EndReasonPhrase  = "phrase"
	EndReasonStopped = "stopped"
)

// RoundStartedPayloadV1 is published when a round opens.
type RoundStartedPayloadV1 struct {
	RoundID     string    `json:"round_id"`
	RoundNumber int       `json:"round_number"`
	GuildID     string    `json:"guild_id,omitempty"`
	StartedBy   string    `json:"started_by"`
	Lives       int       `json:"lives"`
	Pattern     string    `json:"pattern"`
	Letters     int       `json:"letters"`
	StartedAt   time.Time `json:"started_at"`
}

// RoundEndedPayloadV1 is published when a round closes for any reason.
type RoundEndedPayloadV1 struct {
	RoundID     string    `json:"round_id"`
	RoundNumber int       `json:"round_number"`
	GuildID     string    `json:"guild_id,omitempty"`
	Reason      string    `json:"reason"`
	Secret      string    `json:"secret"`
	WinnerID    string    `json:"winner_id,omitempty"`
	EndedAt     time.Time `json:"ended_at"`
}

// GuessEvaluatedPayloadV1 is published for every guess that reached evaluation.
type GuessEvaluatedPayloadV1 struct {
	RoundID    string `json:"round_id"`
	UserID     string `json:"user_id"`
	Kind       string `json:"kind"`
	Guess      string `json:"guess"`
	Outcome    string `json:"outcome"`
	Points     int    `json:"points"`
	LivesLeft  int    `json:"lives_left"`
	Eliminated bool   `json:"eliminated"`
}

// PointsAwardedPayloadV1 is published after the ledger persisted a change.
type PointsAwardedPayloadV1 struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Delta      int       `json:"delta"`
	Reason     string    `json:"reason"`
	Daily      int       `json:"daily"`
	Historical int       `json:"historical"`
	AwardedAt  time.Time `json:"awarded_at"`
}

// DailyResetPayloadV1 is published after the daily window was cleared.
type DailyResetPayloadV1 struct {
	Date   string `json:"date"`
	Manual bool   `json:"manual"`
}

// LetterRepeatedPayloadV1 is published when a tracked letter is said again.
type LetterRepeatedPayloadV1 struct {
	ChannelID      string `json:"channel_id"`
	Letter         string `json:"letter"`
	UserID         string `json:"user_id"`
	PreviousUserID string `json:"previous_user_id"`
	PreviousName   string `json:"previous_name"`
}
