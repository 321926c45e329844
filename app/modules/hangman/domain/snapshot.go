package hangmandomain

// PlayerView is a read-only copy of a player record.
type PlayerView struct {
	UserID     string
	Lives      int
	Eliminated bool
}

// Snapshot is a read-only copy of the round used for status rendering.
type Snapshot struct {
	RoundNumber      int
	Hint             string
	Pattern          string
	LettersSaid      int
	LettersGuessed   int
	LettersRemaining int
	WrongLetters     []string
	Players          []PlayerView
	LosePointsMode   bool
}

// Snapshot copies the observable state. Players are listed in the order
// they joined the round.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		RoundNumber:      g.RoundNumber,
		Hint:             g.Hint,
		Pattern:          g.CurrentPattern(),
		LettersSaid:      len(g.Found) + len(g.Wrong),
		LettersGuessed:   len(g.Found),
		LettersRemaining: len(g.Needed),
		WrongLetters:     g.Wrong.Sorted(),
		LosePointsMode:   g.LosePointsMode,
	}
	for _, id := range g.PlayerOrder {
		p := g.Players[id]
		s.Players = append(s.Players, PlayerView{UserID: id, Lives: p.Lives, Eliminated: p.Eliminated})
	}
	return s
}
