package hangmanhandlers

import (
	"context"

	hangmanservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/application"
	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
)

// FakeService implements hangmanservice.Service for handler testing.
type FakeService struct {
	trace []string

	StartRoundFunc  func(ctx context.Context, req hangmanservice.StartRoundRequest) (hangmanservice.RoundInfo, error)
	GuessLetterFunc func(ctx context.Context, player hangmanservice.Player, letter string) (hangmandomain.Outcome, error)
	GuessWordFunc   func(ctx context.Context, player hangmanservice.Player, phrase string) (hangmandomain.Outcome, error)
	StatusFunc      func(ctx context.Context) (hangmanservice.StatusView, error)
	AddLivesFunc    func(ctx context.Context, userID string, n int) (int, error)
	AddPointsFunc   func(ctx context.Context, player hangmanservice.Player, n int) error
	EndRoundFunc    func(ctx context.Context, by string) (string, error)
	pointsMode      bool
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) StartRound(ctx context.Context, req hangmanservice.StartRoundRequest) (hangmanservice.RoundInfo, error) {
	f.record("StartRound")
	if f.StartRoundFunc != nil {
		return f.StartRoundFunc(ctx, req)
	}
	return hangmanservice.RoundInfo{}, nil
}

func (f *FakeService) GuessLetter(ctx context.Context, player hangmanservice.Player, letter string) (hangmandomain.Outcome, error) {
	f.record("GuessLetter")
	if f.GuessLetterFunc != nil {
		return f.GuessLetterFunc(ctx, player, letter)
	}
	return hangmandomain.Outcome{}, nil
}

func (f *FakeService) GuessWord(ctx context.Context, player hangmanservice.Player, phrase string) (hangmandomain.Outcome, error) {
	f.record("GuessWord")
	if f.GuessWordFunc != nil {
		return f.GuessWordFunc(ctx, player, phrase)
	}
	return hangmandomain.Outcome{}, nil
}

func (f *FakeService) Status(ctx context.Context) (hangmanservice.StatusView, error) {
	f.record("Status")
	if f.StatusFunc != nil {
		return f.StatusFunc(ctx)
	}
	return hangmanservice.StatusView{}, nil
}

func (f *FakeService) AddLives(ctx context.Context, userID string, n int) (int, error) {
	f.record("AddLives")
	if f.AddLivesFunc != nil {
		return f.AddLivesFunc(ctx, userID, n)
	}
	return n, nil
}

func (f *FakeService) AddPoints(ctx context.Context, player hangmanservice.Player, n int) error {
	f.record("AddPoints")
	if f.AddPointsFunc != nil {
		return f.AddPointsFunc(ctx, player, n)
	}
	return nil
}

func (f *FakeService) EndRound(ctx context.Context, by string) (string, error) {
	f.record("EndRound")
	if f.EndRoundFunc != nil {
		return f.EndRoundFunc(ctx, by)
	}
	return "", nil
}

func (f *FakeService) ResetRounds(context.Context) {
	f.record("ResetRounds")
}

func (f *FakeService) ToggleMode(context.Context) bool {
	f.record("ToggleMode")
	f.pointsMode = !f.pointsMode
	return f.pointsMode
}

var _ hangmanservice.Service = (*FakeService)(nil)

// FakeRanking implements Ranking.
type FakeRanking struct {
	trace []string

	TopFunc             func(ctx context.Context, w rankingdomain.Window, n int) ([]rankingdomain.Standing, error)
	ResetDailyFunc      func(ctx context.Context) error
	RenderChartFunc     func(ctx context.Context, w rankingdomain.Window, n int) ([]byte, error)
	ExportWorkbookFunc  func(ctx context.Context) ([]byte, error)
	ResetHistoricalFunc func(ctx context.Context) error
}

func (f *FakeRanking) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRanking) Trace() []string {
	return f.trace
}

func (f *FakeRanking) Top(ctx context.Context, w rankingdomain.Window, n int) ([]rankingdomain.Standing, error) {
	f.record("Top:" + string(w))
	if f.TopFunc != nil {
		return f.TopFunc(ctx, w, n)
	}
	return nil, nil
}

func (f *FakeRanking) ResetDaily(ctx context.Context) error {
	f.record("ResetDaily")
	if f.ResetDailyFunc != nil {
		return f.ResetDailyFunc(ctx)
	}
	return nil
}

func (f *FakeRanking) ResetHistorical(ctx context.Context) error {
	f.record("ResetHistorical")
	if f.ResetHistoricalFunc != nil {
		return f.ResetHistoricalFunc(ctx)
	}
	return nil
}

func (f *FakeRanking) RenderChart(ctx context.Context, w rankingdomain.Window, n int) ([]byte, error) {
	f.record("RenderChart:" + string(w))
	if f.RenderChartFunc != nil {
		return f.RenderChartFunc(ctx, w, n)
	}
	return []byte("png"), nil
}

func (f *FakeRanking) ExportWorkbook(ctx context.Context) ([]byte, error) {
	f.record("ExportWorkbook")
	if f.ExportWorkbookFunc != nil {
		return f.ExportWorkbookFunc(ctx)
	}
	return []byte("xlsx"), nil
}

// FakeMembers implements MemberDirectory from a fixed map.
type FakeMembers struct {
	Names map[string]string
	Err   error
}

func (f *FakeMembers) MemberName(_ context.Context, _, userID string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.Names[userID], nil
}
