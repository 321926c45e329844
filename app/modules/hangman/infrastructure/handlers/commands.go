package hangmanhandlers

import (
	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	"github.com/bwmarrin/discordgo"
)

var minOne = 1.0

var windowChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Daily / Giornaliera", Value: "daily"},
	{Name: "Historical / Storica", Value: "historical"},
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func windowOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "type",
		Description: "Ranking type / Tipo di classifica",
		Choices:     windowChoices,
	}
}

func owner(name, description string, handle discord.HandlerFunc, options ...*discordgo.ApplicationCommandOption) discord.Command {
	return discord.Command{
		Definition: &discordgo.ApplicationCommand{Name: name, Description: description, Options: options},
		Restricted: true,
		Handle:     handle,
	}
}

// Commands returns the hangman slash commands. Only l and w are open to
// every member.
func (h *HangmanHandlers) Commands() []discord.Command {
	return []discord.Command{
		owner("start_game", "Start a new game / Inizia una nuova partita", h.StartGame,
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "secret",
				Description: "The secret word or phrase / La parola o frase segreta",
				Required:    true,
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "hint",
				Description: "Hint for players / Indizio per i giocatori",
				Required:    true,
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "lives",
				Description: "Initial lives for each player / Vite iniziali per ogni giocatore",
				MinValue:    &minOne,
			},
		),
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "l",
				Description: "Guess a letter / Indovina una lettera",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "letter",
					Description: "The letter to guess / La lettera da indovinare",
					Required:    true,
				}},
			},
			Handle: h.GuessLetter,
		},
		{
			Definition: &discordgo.ApplicationCommand{
				Name:        "w",
				Description: "Guess the word or phrase / Indovina la parola o frase",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "word",
					Description: "The word or phrase / La parola o frase",
					Required:    true,
				}},
			},
			Handle: h.GuessWord,
		},
		owner("status", "View game status (owner only) / Visualizza stato partita (solo proprietario)", h.Status),
		owner("add_lives", "Add lives to a player / Aggiungi vite a un giocatore", h.AddLives,
			userOption("The player / Il giocatore"),
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "lives",
				Description: "Number of lives to add / Numero di vite da aggiungere",
				MinValue:    &minOne,
			},
		),
		owner("add_points", "Add points to a player / Aggiungi punti a un giocatore", h.AddPoints,
			userOption("The player / Il giocatore"),
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "points",
				Description: "Number of points to add / Numero di punti da aggiungere",
			},
		),
		owner("end_game", "End current game / Termina partita corrente", h.EndGame),
		owner("ranking", "Show rankings / Mostra classifiche", h.Ranking, windowOption()),
		owner("ranking_chart", "Ranking as a bar chart / Classifica come grafico", h.RankingChart, windowOption()),
		owner("export_ranking", "Export rankings as a spreadsheet / Esporta le classifiche in un foglio di calcolo", h.ExportRanking),
		owner("reset_daily", "Reset daily ranking / Resetta classifica giornaliera", h.ResetDaily),
		owner("reset_historical", "Reset historical ranking / Resetta classifica storica", h.ResetHistorical),
		owner("reset_rounds", "Reset round counter / Resetta contatore delle ronde", h.ResetRounds),
		owner("toggle_mode", "Toggle between lives mode and points mode / Alterna tra modalità vite e punti", h.ToggleMode),
	}
}
