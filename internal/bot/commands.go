package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/telegram/helpers"
)

func (b *Bot) start(c tele.Context) error {
	return b.sendMainMenu(c)
}

func (b *Bot) help(c tele.Context) error {
	return b.sendHelp(c)
}

func (b *Bot) searchCommand(c tele.Context) error {
	query := commandPayload(c)
	if query == "" {
		return helpers.SendKB(c, "⚠️ Please enter a movie title after /search.", menuOnlyKeyboard())
	}
	return b.sendMovieSearch(c, query)
}

func (b *Bot) genreCommand(c tele.Context) error {
	name := strings.ToLower(commandPayload(c))
	if name == "" {
		return helpers.SendKB(c, "⚠️ Please enter a genre name after /genre.", menuOnlyKeyboard())
	}
	return b.sendGenre(c, name)
}

func (b *Bot) actorCommand(c tele.Context) error {
	name := commandPayload(c)
	if name == "" {
		return helpers.SendKB(c, "⚠️ Masukkan nama aktor/aktris setelah /actor.", menuOnlyKeyboard())
	}
	return b.sendActor(c, name)
}

func (b *Bot) trendingCommand(c tele.Context) error {
	return b.sendTrending(c)
}

func (b *Bot) favoriteCommand(c tele.Context) error {
	query := commandPayload(c)
	if query == "" {
		return helpers.SendKB(c, "⚠️ Please enter a movie title after /favorite.", menuOnlyKeyboard())
	}
	return b.sendFavoriteSelect(c, query)
}

func (b *Bot) favoritesCommand(c tele.Context) error {
	return b.sendFavoritesView(c)
}

func (b *Bot) cinemaCommand(c tele.Context) error {
	return b.sendCinemaPrompt(c, "Silakan kirim lokasi kamu untuk mencari bioskop terdekat:")
}
