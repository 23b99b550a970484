package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/telegram/helpers"
	"github.com/m3rciful/moviebot/internal/telegram/keyboard"
)

// Shared flows reached from commands, menu actions, conversation states,
// and free-text intents alike. Catalog failures degrade to the empty
// rendering; every flow ends in a user-visible message.

func (b *Bot) sendMainMenu(c tele.Context) error {
	return helpers.SendKB(c, menuText, mainMenuKeyboard())
}

func (b *Bot) sendHelp(c tele.Context) error {
	return helpers.SendKB(c, helpText, menuOnlyKeyboard())
}

func (b *Bot) sendMovieSearch(c tele.Context, query string) error {
	ctx := helpers.BuildContext(c)
	movies, err := b.catalog.SearchMovies(ctx, query)
	warnCatalog(ctx, "catalog.search", err)
	if len(movies) == 0 {
		return helpers.SendKB(c, fmt.Sprintf("❌ No movies found for '%s'.", query), menuOnlyKeyboard())
	}
	return helpers.SendKB(c, "🎬 Movies found:", movieListKeyboard(movies, "detail"))
}

// sendActor shows the best person match and their known-for titles.
func (b *Bot) sendActor(c tele.Context, name string) error {
	ctx := helpers.BuildContext(c)
	people, err := b.catalog.SearchPeople(ctx, name)
	warnCatalog(ctx, "catalog.person", err)
	if len(people) == 0 {
		return helpers.SendKB(c, fmt.Sprintf("❌ Tidak ada aktor/aktris ditemukan untuk '%s'.", name), menuOnlyKeyboard())
	}
	person := people[0]
	if err := helpers.SendText(c, actorText(person.Name, b.catalog.ProfileURL(person.ProfilePath))); err != nil {
		return err
	}
	return helpers.SendKB(c, "🎬 Movies starring this actor/actress:", movieListKeyboard(person.KnownFor, "detail"))
}

// sendGenre expects a lowercased genre name.
func (b *Bot) sendGenre(c tele.Context, name string) error {
	id, ok := b.genreID(name)
	if !ok {
		return helpers.SendKB(c, fmt.Sprintf("❌ Genre '%s' not found.", name), menuOnlyKeyboard())
	}
	ctx := helpers.BuildContext(c)
	movies, err := b.catalog.DiscoverByGenre(ctx, id)
	warnCatalog(ctx, "catalog.discover", err)
	if len(movies) == 0 {
		return helpers.SendKB(c, fmt.Sprintf("❌ No movie recommendations available for genre '%s'.", name), menuOnlyKeyboard())
	}
	return helpers.SendKB(c,
		fmt.Sprintf("🎬 Movie recommendations for genre '%s':", capitalize(name)),
		movieListKeyboard(movies, "detail"))
}

func (b *Bot) sendTrending(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	movies, err := b.catalog.TrendingToday(ctx)
	warnCatalog(ctx, "catalog.trending", err)
	if len(movies) == 0 {
		return helpers.SendKB(c, "❌ Tidak ada film tren saat ini.", menuOnlyKeyboard())
	}
	return helpers.SendKB(c, "🎬 Film yang sedang tren:", movieListKeyboard(movies, "detail"))
}

// sendFavoriteSelect shows search results whose buttons save instead of
// opening details.
func (b *Bot) sendFavoriteSelect(c tele.Context, query string) error {
	ctx := helpers.BuildContext(c)
	movies, err := b.catalog.SearchMovies(ctx, query)
	warnCatalog(ctx, "catalog.search", err)
	if len(movies) == 0 {
		return helpers.SendKB(c, fmt.Sprintf("❌ No movies found for '%s'.", query), menuOnlyKeyboard())
	}
	return helpers.SendKB(c, "🎬 Select the movie you want to save:", movieListKeyboard(movies, "save"))
}

func (b *Bot) sendFavoritesView(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	titles := b.favs.List(helpers.BuildContext(c), sender.ID)
	if len(titles) == 0 {
		return helpers.SendKB(c, "❌ Anda belum memiliki film favorit.", menuOnlyKeyboard())
	}
	return helpers.SendKB(c, favoritesViewText(titles), menuOnlyKeyboard())
}

func (b *Bot) sendFavoritesMenuView(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	titles := b.favs.List(helpers.BuildContext(c), sender.ID)
	if len(titles) == 0 {
		return helpers.SendKB(c, "❌ Anda belum memiliki film favorit.", menuOnlyKeyboard())
	}
	return helpers.SendKB(c, favoritesMenuText(titles), menuOnlyKeyboard())
}

func (b *Bot) sendGenresMenu(c tele.Context) error {
	if len(b.genreOrder) == 0 {
		return helpers.SendKB(c, "❌ Genre tidak tersedia saat ini.", menuOnlyKeyboard())
	}
	return helpers.SendKB(c, "🏷️ Pilih genre:", genresKeyboard(b.genreOrder))
}

func (b *Bot) sendCinemaPrompt(c tele.Context, text string) error {
	return helpers.SendKB(c, text, keyboard.LocationRequest("📍 Kirim Lokasi"))
}

// genrePromptText names the first ten known genres as examples.
func (b *Bot) genrePromptText() string {
	names := make([]string, 0, 10)
	for _, g := range b.genreOrder {
		if len(names) == 10 {
			break
		}
		names = append(names, capitalize(strings.ToLower(g.Name)))
	}
	return "🏷️ Silakan tentukan genre film:\nContoh: genre action\nGenre yang tersedia: " + strings.Join(names, ", ")
}
