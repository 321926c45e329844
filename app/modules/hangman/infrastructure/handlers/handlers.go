package hangmanhandlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	hangmanservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/application"
	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	"github.com/Black-And-White-Club/impiccato-bot/internal/observability/attr"
	"github.com/bwmarrin/discordgo"
)

// RankingSize is the number of standings shown by ranking and ranking_chart.
const RankingSize = 10

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errMissingUser = errors.New("user option missing")

// Ranking is the part of the ranking service the commands read and reset.
type Ranking interface {
	Top(ctx context.Context, w rankingdomain.Window, n int) ([]rankingdomain.Standing, error)
	ResetDaily(ctx context.Context) error
	ResetHistorical(ctx context.Context) error
	RenderChart(ctx context.Context, w rankingdomain.Window, n int) ([]byte, error)
	ExportWorkbook(ctx context.Context) ([]byte, error)
}

// MemberDirectory resolves guild member names.
type MemberDirectory interface {
	MemberName(ctx context.Context, guildID, userID string) (string, error)
}

// HangmanHandlers implements the hangman slash commands.
type HangmanHandlers struct {
	service      hangmanservice.Service
	ranking      Ranking
	members      MemberDirectory
	defaultLives int
	logger       *slog.Logger
}

// NewHangmanHandlers creates the handlers. members may be nil, in which case
// status names come from the ranking only.
func NewHangmanHandlers(service hangmanservice.Service, ranking Ranking, members MemberDirectory, defaultLives int, logger *slog.Logger) *HangmanHandlers {
	if defaultLives < 1 {
		defaultLives = hangmandomain.DefaultLives
	}
	return &HangmanHandlers{
		service:      service,
		ranking:      ranking,
		members:      members,
		defaultLives: defaultLives,
		logger:       logger,
	}
}

func ephemeral(content string) discord.Reply {
	return discord.Reply{Content: content, Ephemeral: true}
}

// domainReply maps the errors shared by several commands. ok is false for
// anything that is not a known game outcome.
func domainReply(err error, mention string) (discord.Reply, bool) {
	switch {
	case errors.Is(err, hangmandomain.ErrNoActiveRound):
		return ephemeral(TextNoActiveRound), true
	case errors.Is(err, hangmandomain.ErrRoundActive):
		return ephemeral(TextRoundActive), true
	case errors.Is(err, hangmandomain.ErrInvalidLetter):
		return ephemeral(TextInvalidLetter), true
	case errors.Is(err, hangmandomain.ErrInvalidLives):
		return ephemeral(TextInvalidLives), true
	case errors.Is(err, hangmandomain.ErrInvalidSecret):
		return ephemeral(TextInvalidSecret), true
	case errors.Is(err, hangmandomain.ErrEliminated):
		return ephemeral(eliminatedGuess(mention)), true
	case errors.Is(err, hangmandomain.ErrNotYourTurn):
		return ephemeral(waitTurn(mention)), true
	}
	return discord.Reply{}, false
}

func replyOrError(err error, mention string) (discord.Reply, error) {
	if reply, ok := domainReply(err, mention); ok {
		return reply, nil
	}
	return discord.Reply{}, err
}

func (h *HangmanHandlers) StartGame(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	info, err := h.service.StartRound(ctx, hangmanservice.StartRoundRequest{
		GuildID:   inv.GuildID,
		StartedBy: inv.UserID,
		Secret:    inv.String("secret", ""),
		Hint:      inv.String("hint", ""),
		Lives:     inv.Int("lives", h.defaultLives),
	})
	if err != nil {
		return replyOrError(err, discord.Mention(inv.UserID))
	}
	return discord.Reply{Content: RoundHeader(info)}, nil
}

func (h *HangmanHandlers) GuessLetter(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	mention := discord.Mention(inv.UserID)
	out, err := h.service.GuessLetter(ctx, hangmanservice.Player{ID: inv.UserID, Name: inv.DisplayName}, inv.String("letter", ""))
	if err != nil {
		return replyOrError(err, mention)
	}
	return OutcomeReply(mention, out), nil
}

func (h *HangmanHandlers) GuessWord(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	mention := discord.Mention(inv.UserID)
	out, err := h.service.GuessWord(ctx, hangmanservice.Player{ID: inv.UserID, Name: inv.DisplayName}, inv.String("word", ""))
	if err != nil {
		return replyOrError(err, mention)
	}
	return OutcomeReply(mention, out), nil
}

func (h *HangmanHandlers) Status(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	view, err := h.service.Status(ctx)
	if err != nil {
		return replyOrError(err, discord.Mention(inv.UserID))
	}

	names := make(map[string]string, len(view.PlayerStatuses))
	for _, p := range view.PlayerStatuses {
		names[p.UserID] = h.resolveName(ctx, inv.GuildID, p)
	}

	return discord.Reply{
		Embeds:    []*discordgo.MessageEmbed{StatusEmbed(view, names)},
		Ephemeral: true,
	}, nil
}

// resolveName prefers the guild member name, then the ranking name.
func (h *HangmanHandlers) resolveName(ctx context.Context, guildID string, p hangmanservice.PlayerStatus) string {
	if h.members != nil && guildID != "" {
		name, err := h.members.MemberName(ctx, guildID, p.UserID)
		if err == nil && name != "" {
			return name
		}
		if err != nil {
			h.logger.DebugContext(ctx, "Member lookup failed, falling back to ranking name",
				attr.UserID(p.UserID),
				attr.Error(err),
			)
		}
	}
	if p.Name != "" {
		return p.Name
	}
	return TextUnknownPlayer
}

func (h *HangmanHandlers) AddLives(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	target, ok := inv.User("user")
	if !ok {
		return discord.Reply{}, errMissingUser
	}
	mention := discord.Mention(target.ID)
	n := inv.Int("lives", 1)

	total, err := h.service.AddLives(ctx, target.ID, n)
	if err != nil {
		if errors.Is(err, hangmandomain.ErrEliminated) {
			return ephemeral(livesRefused(mention)), nil
		}
		return replyOrError(err, mention)
	}
	return discord.Reply{Content: livesAdded(mention, n, total)}, nil
}

func (h *HangmanHandlers) AddPoints(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	target, ok := inv.User("user")
	if !ok {
		return discord.Reply{}, errMissingUser
	}
	n := inv.Int("points", 1)
	if err := h.service.AddPoints(ctx, hangmanservice.Player{ID: target.ID, Name: target.DisplayName}, n); err != nil {
		return discord.Reply{}, err
	}
	return discord.Reply{Content: pointsAdded(discord.Mention(target.ID), n)}, nil
}

func (h *HangmanHandlers) EndGame(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	secret, err := h.service.EndRound(ctx, inv.UserID)
	if err != nil {
		return replyOrError(err, discord.Mention(inv.UserID))
	}
	return discord.Reply{Content: gameEnded(secret)}, nil
}

func (h *HangmanHandlers) Ranking(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	w := rankingdomain.ParseWindow(inv.String("type", string(rankingdomain.WindowDaily)))
	standings, err := h.ranking.Top(ctx, w, RankingSize)
	if err != nil {
		return discord.Reply{}, err
	}
	if len(standings) == 0 {
		return ephemeral(TextNoData), nil
	}
	return discord.Reply{Embeds: []*discordgo.MessageEmbed{RankingEmbed(w, standings)}}, nil
}

func (h *HangmanHandlers) RankingChart(ctx context.Context, inv *discord.Invocation) (discord.Reply, error) {
	w := rankingdomain.ParseWindow(inv.String("type", string(rankingdomain.WindowDaily)))
	png, err := h.ranking.RenderChart(ctx, w, RankingSize)
	if err != nil {
		return discord.Reply{}, err
	}
	return discord.Reply{
		Content: rankingTitles[w],
		Files: []*discordgo.File{{
			Name:        "ranking-" + string(w) + ".png",
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		}},
	}, nil
}

func (h *HangmanHandlers) ExportRanking(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	data, err := h.ranking.ExportWorkbook(ctx)
	if err != nil {
		return discord.Reply{}, err
	}
	return discord.Reply{
		Content: TextExportAttached,
		Files: []*discordgo.File{{
			Name:        "ranking.xlsx",
			ContentType: xlsxContentType,
			Reader:      bytes.NewReader(data),
		}},
		Ephemeral: true,
	}, nil
}

func (h *HangmanHandlers) ResetDaily(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	if err := h.ranking.ResetDaily(ctx); err != nil {
		return discord.Reply{}, err
	}
	return discord.Reply{Content: TextDailyReset}, nil
}

func (h *HangmanHandlers) ResetHistorical(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	if err := h.ranking.ResetHistorical(ctx); err != nil {
		return discord.Reply{}, err
	}
	return discord.Reply{Content: TextHistoricReset}, nil
}

func (h *HangmanHandlers) ResetRounds(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	h.service.ResetRounds(ctx)
	return discord.Reply{Content: TextRoundsReset}, nil
}

func (h *HangmanHandlers) ToggleMode(ctx context.Context, _ *discord.Invocation) (discord.Reply, error) {
	return discord.Reply{Content: modeText(h.service.ToggleMode(ctx))}, nil
}
