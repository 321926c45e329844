package hangmanservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anna  = Player{ID: "u1", Name: "Anna"}
	bruno = Player{ID: "u2", Name: "Bruno"}
)

func newTestService(t *testing.T) (*HangmanService, *FakeLedger, *FakePublisher, *observability.Observability) {
	t.Helper()
	obs := observability.NewNoop()
	ledger := NewFakeLedger()
	pub := &FakePublisher{}
	svc := NewHangmanService(ledger, pub, obs.Logger, obs.Metrics, obs.Tracer)
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "round-id" }
	return svc, ledger, pub, obs
}

func start(t *testing.T, svc *HangmanService, secret string, lives int) RoundInfo {
	t.Helper()
	info, err := svc.StartRound(context.Background(), StartRoundRequest{
		GuildID: "g1", StartedBy: "owner", Secret: secret, Hint: "animale", Lives: lives,
	})
	require.NoError(t, err)
	return info
}

func TestStartRound(t *testing.T) {
	svc, _, pub, _ := newTestService(t)

	info := start(t, svc, "gatto nero", 3)
	assert.Equal(t, RoundInfo{
		RoundNumber: 1,
		Pattern:     "_ _ _ _ _   _ _ _ _",
		Lengths:     "5+4",
		Hint:        "animale",
		Lives:       3,
	}, info)

	require.Equal(t, []string{events.RoundStartedV1}, pub.Topics())
	started := pub.Last().Payload.(events.RoundStartedPayloadV1)
	assert.Equal(t, "round-id", started.RoundID)
	assert.Equal(t, "g1", started.GuildID)
	assert.Equal(t, 7, started.Letters)

	_, err := svc.StartRound(context.Background(), StartRoundRequest{Secret: "cane", Lives: 5})
	assert.ErrorIs(t, err, hangmandomain.ErrRoundActive)
}

func TestGuessLetter_Gatto(t *testing.T) {
	svc, ledger, pub, obs := newTestService(t)
	ctx := context.Background()
	start(t, svc, "GATTO", 5)

	for i, l := range []string{"g", "a", "t"} {
		p := anna
		if i%2 == 1 {
			p = bruno
		}
		out, err := svc.GuessLetter(ctx, p, l)
		require.NoError(t, err)
		assert.Equal(t, hangmandomain.ResultCorrect, out.Result)
	}

	out, err := svc.GuessLetter(ctx, bruno, "o")
	require.NoError(t, err)
	assert.True(t, out.Solved())
	assert.Equal(t, "GATTO", out.Secret)

	assert.Equal(t, 2, ledger.Total("u1"))
	assert.Equal(t, 6, ledger.Total("u2"))
	assert.Equal(t, []ledgerCall{
		{"u2", "Bruno", 1, ReasonLetter},
		{"u2", "Bruno", 4, ReasonSolveBonus},
	}, ledger.Calls[3:])

	ended := pub.Last()
	assert.Equal(t, events.RoundEndedV1, ended.Topic)
	payload := ended.Payload.(events.RoundEndedPayloadV1)
	assert.Equal(t, events.EndReasonSolved, payload.Reason)
	assert.Equal(t, "u2", payload.WinnerID)

	count, err := testutil.GatherAndCount(obs.Registry, "test_rounds_ended_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.GuessLetter(ctx, anna, "x")
	assert.ErrorIs(t, err, hangmandomain.ErrNoActiveRound)
}

func TestGuessLetter_DomainErrorsDoNotTouchLedger(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()
	start(t, svc, "GATTO", 5)

	_, err := svc.GuessLetter(ctx, anna, "42")
	assert.ErrorIs(t, err, hangmandomain.ErrInvalidLetter)

	_, err = svc.GuessLetter(ctx, anna, "g")
	require.NoError(t, err)
	_, err = svc.GuessLetter(ctx, anna, "a")
	assert.ErrorIs(t, err, hangmandomain.ErrNotYourTurn)

	assert.Len(t, ledger.Calls, 1)
}

func TestGuess_PenaltiesByMode(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()
	start(t, svc, "GATTO", 5)

	out, err := svc.GuessLetter(ctx, anna, "z")
	require.NoError(t, err)
	assert.Equal(t, hangmandomain.PenaltyLife, out.Penalty)
	assert.Empty(t, ledger.Calls)

	assert.True(t, svc.ToggleMode(ctx))
	out, err = svc.GuessWord(ctx, bruno, "cane")
	require.NoError(t, err)
	assert.Equal(t, hangmandomain.PenaltyPoint, out.Penalty)
	assert.Equal(t, []ledgerCall{{"u2", "Bruno", -1, ReasonPenalty}}, ledger.Calls)
}

func TestGuessWord_Solves(t *testing.T) {
	svc, ledger, pub, _ := newTestService(t)
	ctx := context.Background()
	start(t, svc, "Perché no", 5)

	out, err := svc.GuessWord(ctx, anna, "PERCHE NO")
	require.NoError(t, err)
	assert.True(t, out.Solved())
	assert.Equal(t, []ledgerCall{{"u1", "Anna", 5, ReasonPhrase}}, ledger.Calls)
	assert.Equal(t, events.EndReasonPhrase, pub.Last().Payload.(events.RoundEndedPayloadV1).Reason)
}

func TestGuess_LedgerFailure(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()
	start(t, svc, "GATTO", 5)

	errDisk := errors.New("read-only file system")
	ledger.AddPointsFunc = func(context.Context, string, string, int, string) (rankingdomain.Entry, error) {
		return rankingdomain.Entry{}, errDisk
	}

	_, err := svc.GuessLetter(ctx, anna, "g")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	assert.False(t, IsDomainError(err))

	view, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, view.LettersGuessed, "state is not rolled back")
}

func TestStatus(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Status(ctx)
	assert.ErrorIs(t, err, hangmandomain.ErrNoActiveRound)

	start(t, svc, "GATTO", 5)
	_, err = svc.GuessLetter(ctx, anna, "g")
	require.NoError(t, err)
	_, err = svc.GuessLetter(ctx, bruno, "z")
	require.NoError(t, err)
	_, err = svc.AddLives(ctx, "u3", 1)
	require.NoError(t, err)

	view, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "G _ _ _ _", view.Pattern)
	assert.Equal(t, 2, view.LettersSaid)
	assert.Equal(t, []PlayerStatus{
		{UserID: "u1", Name: "Anna", Lives: 5, DailyPoints: 1},
		{UserID: "u2", Name: "", Lives: 4},
		{UserID: "u3", Name: "", Lives: 6},
	}, view.PlayerStatuses)
}

func TestAddLivesAndPoints(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddLives(ctx, "u1", 1)
	assert.ErrorIs(t, err, hangmandomain.ErrNoActiveRound)

	require.NoError(t, svc.AddPoints(ctx, anna, 3), "points can be added without a round")
	assert.Equal(t, 3, ledger.Total("u1"))
	assert.Equal(t, ReasonManual, ledger.Calls[0].Reason)

	start(t, svc, "GATTO", 2)
	total, err := svc.AddLives(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestEndRoundAndCounters(t *testing.T) {
	svc, _, pub, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.EndRound(ctx, "owner")
	assert.ErrorIs(t, err, hangmandomain.ErrNoActiveRound)

	start(t, svc, "gatto", 5)
	secret, err := svc.EndRound(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "GATTO", secret)
	assert.Equal(t, events.EndReasonStopped, pub.Last().Payload.(events.RoundEndedPayloadV1).Reason)

	info := start(t, svc, "cane", 5)
	assert.Equal(t, 2, info.RoundNumber)
	_, err = svc.EndRound(ctx, "owner")
	require.NoError(t, err)

	svc.ResetRounds(ctx)
	info = start(t, svc, "topo", 5)
	assert.Equal(t, 1, info.RoundNumber)

	assert.True(t, svc.ToggleMode(ctx))
	assert.False(t, svc.ToggleMode(ctx))
}
