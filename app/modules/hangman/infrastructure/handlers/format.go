package hangmanhandlers

import (
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/impiccato-bot/app/discord"
	hangmanservice "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/application"
	hangmandomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/hangman/domain"
	rankingdomain "github.com/Black-And-White-Club/impiccato-bot/app/modules/ranking/domain"
	"github.com/bwmarrin/discordgo"
)

// Embed colors.
const (
	ColorGold = 0xf1c40f
	ColorBlue = 0x3498db
)

// Fixed replies.
const (
	TextOwnerOnly      = "❌ Only the server owner can use this command! / Solo il proprietario del server può usare questo comando!"
	TextRoundActive    = "❌ There's already an active game!"
	TextNoActiveRound  = "❌ No active game! / Nessuna partita attiva!"
	TextInvalidLetter  = "❌ Please provide only one letter! / Fornisci solo una lettera!"
	TextInvalidLives   = "❌ Lives must be at least 1! / Le vite devono essere almeno 1!"
	TextInvalidSecret  = "❌ The secret cannot be empty! / Il segreto non può essere vuoto!"
	TextAccepted       = "✓"
	TextNoData         = "📊 No data yet! / Ancora nessun dato!"
	TextDailyReset     = "✅ Daily ranking reset! / Classifica giornaliera resettata!"
	TextHistoricReset  = "✅ Historical ranking reset! / Classifica storica resettata!"
	TextRoundsReset    = "✅ Round counter reset to 0! / Contatore delle ronde resettato a 0!"
	TextNoPlayers      = "No players yet / Ancora nessun giocatore"
	TextUnknownPlayer  = "Unknown"
	TextPointsModeOn   = "🔴 **Points Mode Active** / **Modalità Punti Attiva**\nPlayers will lose points for wrong answers instead of lives. / I giocatori perderanno punti per risposte sbagliate invece di vite."
	TextLivesModeOn    = "❤️ **Lives Mode Active** / **Modalità Vite Attiva**\nPlayers will lose lives for wrong answers. / I giocatori perderanno vite per risposte sbagliate."
	TextExportAttached = "📎 Ranking export / Esportazione classifica"
)

var rankingTitles = map[rankingdomain.Window]string{
	rankingdomain.WindowDaily:      "🏆 Daily Ranking / Classifica Giornaliera 🏆",
	rankingdomain.WindowHistorical: "🏆 Historical Ranking / Classifica Storica 🏆",
}

// RoundHeader is the public announcement of a new round.
func RoundHeader(info hangmanservice.RoundInfo) string {
	return fmt.Sprintf("**🎮 ROUND %d**\n\n"+
		"**Parola/frase:** `%s` (%s)\n\n"+
		"**Tips:**\n*%s*\n\n"+
		"Use `/l <letter>` to guess a letter or `/w <phrase>` to guess the word!\n"+
		"Usa `/l <lettera>` per indovinare una lettera o `/w <frase>` per indovinare la parola!\n\n"+
		"❤️ Lives / Vite: **%d**",
		info.RoundNumber, info.Pattern, info.Lengths, info.Hint, info.Lives)
}

func eliminatedGuess(mention string) string {
	return fmt.Sprintf("❌ %s you are eliminated! Your message doesn't count. / sei eliminato! Il tuo messaggio non conta.", mention)
}

func waitTurn(mention string) string {
	return fmt.Sprintf("⏳ %s wait for another player's turn! / aspetta il turno di un altro giocatore!", mention)
}

func eliminatedNow(mention string) string {
	return fmt.Sprintf("💀 %s has been eliminated! / è stato eliminato!", mention)
}

// OutcomeReply renders an accepted guess. Correct letters and harmless
// misses are acknowledged privately, everything else is public.
func OutcomeReply(mention string, out hangmandomain.Outcome) discord.Reply {
	switch out.Result {
	case hangmandomain.ResultSolved:
		return discord.Reply{Embeds: []*discordgo.MessageEmbed{VictoryEmbed(mention, out)}}

	case hangmandomain.ResultRepeated:
		if out.Penalty == hangmandomain.PenaltyPoint {
			return discord.Reply{Content: fmt.Sprintf(
				"🔁 %s that letter was already said! -1 point 🔴 / quella lettera è già stata detta! -1 punto 🔴", mention)}
		}
		content := fmt.Sprintf("🔁 %s that letter was already said! -1 life ❤️ / quella lettera è già stata detta! -1 vita ❤️\n", mention)
		if out.Eliminated {
			content += eliminatedNow(mention)
		} else {
			content += fmt.Sprintf("Lives remaining / Vite rimanenti: **%d**", out.LivesLeft)
		}
		return discord.Reply{Content: content}

	case hangmandomain.ResultWrong:
		if out.Eliminated {
			return discord.Reply{Content: eliminatedNow(mention)}
		}
	}
	return discord.Reply{Content: TextAccepted, Ephemeral: true}
}

// VictoryEmbed announces a solved round.
func VictoryEmbed(mention string, out hangmandomain.Outcome) *discordgo.MessageEmbed {
	description := fmt.Sprintf("**%s** found the last letter! / ha trovato l'ultima lettera!", mention)
	if out.Kind == hangmandomain.GuessKindWord {
		description = fmt.Sprintf("**%s** guessed the phrase! / ha indovinato la frase!", mention)
	}
	return &discordgo.MessageEmbed{
		Title:       "🎉 VICTORY! / VITTORIA! 🎉",
		Description: description,
		Color:       ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Answer / Risposta", Value: fmt.Sprintf("**%s**", out.Secret)},
			{Name: "Points / Punti", Value: fmt.Sprintf("+%d 🌟", out.Points())},
		},
	}
}

// StatusEmbed renders the owner's view of the round. names maps user ids to
// the resolved display names.
func StatusEmbed(view hangmanservice.StatusView, names map[string]string) *discordgo.MessageEmbed {
	players := TextNoPlayers
	if len(view.PlayerStatuses) > 0 {
		lines := make([]string, 0, len(view.PlayerStatuses))
		for _, p := range view.PlayerStatuses {
			emoji := "✅"
			if p.Eliminated {
				emoji = "💀"
			}
			lines = append(lines, fmt.Sprintf("%s **%s**: %d❤️ | %d⭐", emoji, names[p.UserID], p.Lives, p.DailyPoints))
		}
		players = strings.Join(lines, "\n")
	}

	mode := "❤️ Lives Mode"
	if view.LosePointsMode {
		mode = "🔴 Points Mode"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "🔤 Current Progress / Progresso Attuale", Value: fmt.Sprintf("`%s`", view.Pattern)},
		{Name: "📈 Statistics / Statistiche", Value: fmt.Sprintf(
			"**Letters said / Lettere dette:** %d\n**Letters guessed / Lettere indovinate:** %d\n**Letters remaining / Lettere mancanti:** %d",
			view.LettersSaid, view.LettersGuessed, view.LettersRemaining)},
		{Name: "👥 Players / Giocatori", Value: players},
	}
	if len(view.WrongLetters) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "❌ Wrong letters / Lettere sbagliate",
			Value: strings.Join(view.WrongLetters, ", "),
		})
	}
	if view.Hint != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "💡 Tips",
			Value: fmt.Sprintf("*%s*", view.Hint),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("📊 Game Status - Round %d", view.RoundNumber),
		Color:  ColorBlue,
		Fields: fields,
		Footer: &discordgo.MessageEmbedFooter{Text: "Mode / Modalità: " + mode},
	}
}

func livesAdded(mention string, n, total int) string {
	return fmt.Sprintf("✅ Added %d life/lives to %s! New total: %d ❤️ / Aggiunte %d vita/vite a %s! Nuovo totale: %d ❤️",
		n, mention, total, n, mention, total)
}

func livesRefused(mention string) string {
	return fmt.Sprintf("❌ %s is eliminated and cannot receive lives! / %s è eliminato e non può ricevere vite!", mention, mention)
}

func pointsAdded(mention string, n int) string {
	return fmt.Sprintf("✅ Added %d point(s) to %s! / Aggiunti %d punto/i a %s!", n, mention, n, mention)
}

func gameEnded(secret string) string {
	return fmt.Sprintf("🏁 Game ended! The answer was: **%s** / Partita terminata! La risposta era: **%s**", secret, secret)
}

// RankingEmbed lists standings with podium medals.
func RankingEmbed(w rankingdomain.Window, standings []rankingdomain.Standing) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, st := range standings {
		fmt.Fprintf(&b, "%s **%s** - %d pts\n", rankingdomain.Medal(st.Position), st.Name, st.Points)
	}
	description := b.String()
	if description == "" {
		description = TextNoPlayers
	}
	return &discordgo.MessageEmbed{
		Title:       rankingTitles[w],
		Description: description,
		Color:       ColorGold,
	}
}

func modeText(pointsMode bool) string {
	if pointsMode {
		return TextPointsModeOn
	}
	return TextLivesModeOn
}
