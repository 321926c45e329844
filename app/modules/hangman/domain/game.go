package hangmandomain

import "strings"

// DefaultLives is the lives each player starts a round with unless the
// round says otherwise.
const DefaultLives = 5

// Points awarded by the game.
const (
	LetterPoints  = 1
	SolveBonus    = 4
	PhrasePoints  = 5
	PenaltyPoints = -1
)

// GuessKind tells a letter guess from a full-phrase guess.
type GuessKind string

const (
	GuessKindLetter GuessKind = "letter"
	GuessKindWord   GuessKind = "word"
)

// Result classifies an evaluated guess.
type Result string

const (
	ResultRepeated Result = "repeated"
	ResultCorrect  Result = "correct"
	ResultSolved   Result = "solved"
	ResultWrong    Result = "wrong"
)

// Penalty is the cost applied to a repeated or wrong guess.
type Penalty string

const (
	PenaltyNone  Penalty = "none"
	PenaltyPoint Penalty = "point"
	PenaltyLife  Penalty = "life"
)

// Player is the per-round record of a participant.
type Player struct {
	Lives      int
	Eliminated bool
}

// Outcome is the effect of one accepted guess. Awards lists the ledger
// changes for the guesser in the order they are applied.
type Outcome struct {
	Kind       GuessKind
	Guess      string
	Result     Result
	Penalty    Penalty
	Awards     []int
	LivesLeft  int
	Eliminated bool
	Secret     string
}

// Points sums Awards.
func (o Outcome) Points() int {
	total := 0
	for _, a := range o.Awards {
		total += a
	}
	return total
}

// Solved reports whether the guess closed the round.
func (o Outcome) Solved() bool {
	return o.Result == ResultSolved
}

// Game is the hangman state of one process: the round in progress plus the
// round counter and penalty mode that outlive it.
type Game struct {
	Active           bool
	RoundID          string
	RoundNumber      int
	Secret           string
	SecretNormalized string
	Hint             string
	Needed           LetterSet
	Found            LetterSet
	Wrong            LetterSet
	Players          map[string]*Player
	PlayerOrder      []string
	LastPlayer       string
	InitialLives     int
	LosePointsMode   bool
}

// NewGame returns an idle game.
func NewGame() *Game {
	return &Game{
		Needed:       LetterSet{},
		Found:        LetterSet{},
		Wrong:        LetterSet{},
		Players:      map[string]*Player{},
		InitialLives: DefaultLives,
	}
}

// Start opens a new round. The round counter advances and the penalty mode
// goes back to lives.
func (g *Game) Start(roundID, secret, hint string, lives int) error {
	if g.Active {
		return ErrRoundActive
	}
	if strings.TrimSpace(secret) == "" {
		return ErrInvalidSecret
	}
	if lives < 1 {
		return ErrInvalidLives
	}

	g.Active = true
	g.RoundID = roundID
	g.RoundNumber++
	g.LosePointsMode = false
	g.Secret = Upper(secret)
	g.SecretNormalized = Normalize(secret)
	g.Hint = hint
	g.Needed = LettersOf(secret)
	g.Found = LetterSet{}
	g.Wrong = LetterSet{}
	g.Players = map[string]*Player{}
	g.PlayerOrder = nil
	g.LastPlayer = ""
	g.InitialLives = lives
	return nil
}

// player returns the record of userID, creating it with the round's
// initial lives on first use.
func (g *Game) player(userID string) *Player {
	p, ok := g.Players[userID]
	if !ok {
		p = &Player{Lives: g.InitialLives}
		g.Players[userID] = p
		g.PlayerOrder = append(g.PlayerOrder, userID)
	}
	return p
}

// admit runs the checks shared by both guess kinds and claims the turn.
func (g *Game) admit(userID string) (*Player, error) {
	p := g.player(userID)
	if p.Eliminated {
		return nil, ErrEliminated
	}
	if g.LastPlayer == userID {
		return nil, ErrNotYourTurn
	}
	g.LastPlayer = userID
	return p, nil
}

// GuessLetter evaluates a single-letter guess by userID.
func (g *Game) GuessLetter(userID, input string) (Outcome, error) {
	if !g.Active {
		return Outcome{}, ErrNoActiveRound
	}
	letter, err := ParseLetter(input)
	if err != nil {
		return Outcome{}, err
	}
	p, err := g.admit(userID)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Kind: GuessKindLetter, Guess: letter, Penalty: PenaltyNone}

	switch {
	case g.Found.Has(letter) || g.Wrong.Has(letter):
		out.Result = ResultRepeated
		g.penalize(p, &out)

	case g.Needed.Has(letter):
		g.Needed.Remove(letter)
		g.Found.Add(letter)
		out.Result = ResultCorrect
		out.Awards = []int{LetterPoints}
		if len(g.Needed) == 0 {
			g.Active = false
			out.Result = ResultSolved
			out.Awards = append(out.Awards, SolveBonus)
			out.Secret = g.Secret
		}

	default:
		g.Wrong.Add(letter)
		out.Result = ResultWrong
		g.penalize(p, &out)
	}

	out.LivesLeft = p.Lives
	return out, nil
}

// GuessWord compares the normalized phrase against the secret.
func (g *Game) GuessWord(userID, phrase string) (Outcome, error) {
	if !g.Active {
		return Outcome{}, ErrNoActiveRound
	}
	p, err := g.admit(userID)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Kind: GuessKindWord, Guess: Normalize(phrase), Penalty: PenaltyNone}
	if out.Guess == g.SecretNormalized {
		g.Active = false
		out.Result = ResultSolved
		out.Awards = []int{PhrasePoints}
		out.Secret = g.Secret
	} else {
		out.Result = ResultWrong
		g.penalize(p, &out)
	}

	out.LivesLeft = p.Lives
	return out, nil
}

// penalize costs a point in points mode and a life otherwise. Running out
// of lives eliminates the player for the rest of the round.
func (g *Game) penalize(p *Player, out *Outcome) {
	if g.LosePointsMode {
		out.Penalty = PenaltyPoint
		out.Awards = []int{PenaltyPoints}
		return
	}
	out.Penalty = PenaltyLife
	p.Lives--
	if p.Lives <= 0 {
		p.Eliminated = true
		out.Eliminated = true
	}
}

// AddLives gives n lives to userID, registering the player if needed, and
// returns the new total.
func (g *Game) AddLives(userID string, n int) (int, error) {
	if !g.Active {
		return 0, ErrNoActiveRound
	}
	if n < 1 {
		return 0, ErrInvalidLives
	}
	p := g.player(userID)
	if p.Eliminated {
		return 0, ErrEliminated
	}
	p.Lives += n
	return p.Lives, nil
}

// End closes the running round and returns its secret.
func (g *Game) End() (string, error) {
	if !g.Active {
		return "", ErrNoActiveRound
	}
	g.Active = false
	return g.Secret, nil
}

// ResetRounds sets the round counter back to zero.
func (g *Game) ResetRounds() {
	g.RoundNumber = 0
}

// ToggleMode flips the penalty mode and reports whether points mode is on.
func (g *Game) ToggleMode() bool {
	g.LosePointsMode = !g.LosePointsMode
	return g.LosePointsMode
}

// CurrentPattern reveals every character whose normalized form was found.
func (g *Game) CurrentPattern() string {
	return renderPattern(g.Secret, func(r rune) bool {
		return g.Found.Has(Normalize(string(r)))
	})
}
