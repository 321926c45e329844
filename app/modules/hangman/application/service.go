package hangmanservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/impiccato-bot/app/events"
	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/impiccato-bot/internal/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Ledger reasons recorded with every point change.
const (
	ReasonLetter     = "letter"
	ReasonSolveBonus = "solve_bonus"
	ReasonPhrase     = "phrase"
	ReasonPenalty    = "penalty"
	ReasonManual     = "manual"
)

var domainErrors = []error{
	hangmandomain.ErrNoActiveRound,
	hangmandomain.ErrRoundActive,
	hangmandomain.ErrInvalidLetter,
	hangmandomain.ErrInvalidSecret,
	hangmandomain.ErrInvalidLives,
	hangmandomain.ErrEliminated,
	hangmandomain.ErrNotYourTurn,
}

// IsDomainError reports whether err is an expected game outcome rather
// than an infrastructure fault.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// HangmanService owns the game state of the process.
type HangmanService struct {
	ledger    Ledger
	publisher EventPublisher
	logger    *slog.Logger
	metrics   observability.HangmanMetrics
	tracer    trace.Tracer
	now       func() time.Time
	newID     func() string

	mu      sync.Mutex
	game    *hangmandomain.Game
	guildID string
}

var _ Service = (*HangmanService)(nil)

// NewHangmanService creates a service with an idle game. publisher may be nil.
func NewHangmanService(
	ledger Ledger,
	publisher EventPublisher,
	logger *slog.Logger,
	metrics observability.HangmanMetrics,
	tracer trace.Tracer,
) *HangmanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HangmanService{
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		now:       time.Now,
		newID:     uuid.NewString,
		game:      hangmandomain.NewGame(),
	}
}

func (s *HangmanService) operation() observability.Operation {
	op := observability.Operation{Service: "HangmanService", Logger: s.logger, Tracer: s.tracer}
	if s.metrics != nil {
		op.Metrics = s.metrics
	}
	return op
}

// run wraps fn with telemetry. Domain errors travel as failure results so
// they are not counted as operation failures, and come back as plain errors.
func run[S any](ctx context.Context, s *HangmanService, name, identifier string, fn func(ctx context.Context) (S, error)) (S, error) {
	result, err := observability.WithTelemetry(ctx, s.operation(), name, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		v, err := fn(ctx)
		if err != nil {
			if IsDomainError(err) {
				return results.FailureResult[S, error](err), nil
			}
			return results.OperationResult[S, error]{}, err
		}
		return results.SuccessResult[S, error](v), nil
	})
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}

func (s *HangmanService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish hangman event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

func (s *HangmanService) StartRound(ctx context.Context, req StartRoundRequest) (RoundInfo, error) {
	return run(ctx, s, "StartRound", req.StartedBy, func(ctx context.Context) (RoundInfo, error) {
		s.mu.Lock()
		if err := s.game.Start(s.newID(), req.Secret, req.Hint, req.Lives); err != nil {
			s.mu.Unlock()
			return RoundInfo{}, err
		}
		s.guildID = req.GuildID
		info := RoundInfo{
			RoundNumber: s.game.RoundNumber,
			Pattern:     hangmandomain.InitialPattern(req.Secret),
			Lengths:     hangmandomain.WordLengths(req.Secret),
			Hint:        req.Hint,
			Lives:       req.Lives,
		}
		started := newRoundStarted(s.game, req.GuildID, req.StartedBy, s.now())
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.RecordRoundStarted(ctx)
		}
		s.logger.InfoContext(ctx, "Round started",
			attr.String("round_id", started.RoundID),
			attr.Int("round_number", info.RoundNumber),
			attr.Int("letters", started.Letters),
			attr.Int("lives", info.Lives),
		)
		s.publish(ctx, events.RoundStartedV1, started)
		return info, nil
	})
}

func (s *HangmanService) GuessLetter(ctx context.Context, player Player, letter string) (hangmandomain.Outcome, error) {
	return run(ctx, s, "GuessLetter", player.ID, func(ctx context.Context) (hangmandomain.Outcome, error) {
		return s.guess(ctx, player, func(g *hangmandomain.Game) (hangmandomain.Outcome, error) {
			return g.GuessLetter(player.ID, letter)
		})
	})
}

func (s *HangmanService) GuessWord(ctx context.Context, player Player, phrase string) (hangmandomain.Outcome, error) {
	return run(ctx, s, "GuessWord", player.ID, func(ctx context.Context) (hangmandomain.Outcome, error) {
		return s.guess(ctx, player, func(g *hangmandomain.Game) (hangmandomain.Outcome, error) {
			return g.GuessWord(player.ID, phrase)
		})
	})
}

// guess applies evaluate under the lock, then books the awards and
// announces the outcome. A ledger failure is returned after the game state
// already moved on.
func (s *HangmanService) guess(ctx context.Context, player Player, evaluate func(*hangmandomain.Game) (hangmandomain.Outcome, error)) (hangmandomain.Outcome, error) {
	s.mu.Lock()
	out, err := evaluate(s.game)
	roundID, roundNumber, guildID := s.game.RoundID, s.game.RoundNumber, s.guildID
	s.mu.Unlock()
	if err != nil {
		return hangmandomain.Outcome{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordGuess(ctx, string(out.Kind), string(out.Result))
	}
	s.logger.InfoContext(ctx, "Guess evaluated",
		attr.UserID(player.ID),
		attr.String("kind", string(out.Kind)),
		attr.String("result", string(out.Result)),
		attr.String("penalty", string(out.Penalty)),
		attr.Int("lives_left", out.LivesLeft),
		attr.Bool("eliminated", out.Eliminated),
	)

	for i, delta := range out.Awards {
		if _, err := s.ledger.AddPoints(ctx, player.ID, player.Name, delta, awardReason(out, i)); err != nil {
			return out, fmt.Errorf("failed to book %d points for %s: %w", delta, player.ID, err)
		}
	}

	s.publish(ctx, events.GuessEvaluatedV1, newGuessEvaluated(roundID, player.ID, out))
	if out.Solved() {
		reason := events.EndReasonSolved
		if out.Kind == hangmandomain.GuessKindWord {
			reason = events.EndReasonPhrase
		}
		s.roundEnded(ctx, newRoundEnded(roundID, roundNumber, guildID, reason, out.Secret, player.ID, s.now()))
	}
	return out, nil
}

func awardReason(out hangmandomain.Outcome, i int) string {
	switch {
	case out.Result == hangmandomain.ResultRepeated || out.Result == hangmandomain.ResultWrong:
		return ReasonPenalty
	case out.Kind == hangmandomain.GuessKindWord:
		return ReasonPhrase
	case i > 0:
		return ReasonSolveBonus
	default:
		return ReasonLetter
	}
}

func (s *HangmanService) roundEnded(ctx context.Context, ended events.RoundEndedPayloadV1) {
	if s.metrics != nil {
		s.metrics.RecordRoundEnded(ctx, ended.Reason)
	}
	s.logger.InfoContext(ctx, "Round ended",
		attr.String("round_id", ended.RoundID),
		attr.String("reason", ended.Reason),
		attr.String("winner_id", ended.WinnerID),
	)
	s.publish(ctx, events.RoundEndedV1, ended)
}

// Status returns the round snapshot with ledger names and daily points.
func (s *HangmanService) Status(ctx context.Context) (StatusView, error) {
	return run(ctx, s, "Status", "status", func(ctx context.Context) (StatusView, error) {
		s.mu.Lock()
		if !s.game.Active {
			s.mu.Unlock()
			return StatusView{}, hangmandomain.ErrNoActiveRound
		}
		snap := s.game.Snapshot()
		s.mu.Unlock()

		view := StatusView{Snapshot: snap}
		for _, p := range snap.Players {
			name, _, daily := s.ledger.Lookup(ctx, p.UserID)
			view.PlayerStatuses = append(view.PlayerStatuses, PlayerStatus{
				UserID:      p.UserID,
				Name:        name,
				Lives:       p.Lives,
				Eliminated:  p.Eliminated,
				DailyPoints: daily,
			})
		}
		return view, nil
	})
}

func (s *HangmanService) AddLives(ctx context.Context, userID string, n int) (int, error) {
	return run(ctx, s, "AddLives", userID, func(ctx context.Context) (int, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		total, err := s.game.AddLives(userID, n)
		if err != nil {
			return 0, err
		}
		s.logger.InfoContext(ctx, "Lives added",
			attr.UserID(userID),
			attr.Int("added", n),
			attr.Int("total", total),
		)
		return total, nil
	})
}

// AddPoints books n points for player outside any round.
func (s *HangmanService) AddPoints(ctx context.Context, player Player, n int) error {
	_, err := run(ctx, s, "AddPoints", player.ID, func(ctx context.Context) (struct{}, error) {
		_, err := s.ledger.AddPoints(ctx, player.ID, player.Name, n, ReasonManual)
		return struct{}{}, err
	})
	return err
}

func (s *HangmanService) EndRound(ctx context.Context, by string) (string, error) {
	return run(ctx, s, "EndRound", by, func(ctx context.Context) (string, error) {
		s.mu.Lock()
		secret, err := s.game.End()
		roundID, roundNumber, guildID := s.game.RoundID, s.game.RoundNumber, s.guildID
		s.mu.Unlock()
		if err != nil {
			return "", err
		}
		s.roundEnded(ctx, newRoundEnded(roundID, roundNumber, guildID, events.EndReasonStopped, secret, "", s.now()))
		return secret, nil
	})
}

func (s *HangmanService) ResetRounds(ctx context.Context) {
	s.mu.Lock()
	s.game.ResetRounds()
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "Round counter reset")
}

func (s *HangmanService) ToggleMode(ctx context.Context) bool {
	s.mu.Lock()
	pointsMode := s.game.ToggleMode()
	s.mu.Unlock()
	s.logger.InfoContext(ctx, "Penalty mode toggled", attr.Bool("points_mode", pointsMode))
	return pointsMode
}
