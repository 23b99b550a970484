package bot

import (
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/logger"
	"github.com/m3rciful/moviebot/internal/telegram/callbacks"
	"github.com/m3rciful/moviebot/internal/telegram/helpers"
)

// onDetail edits the pressed list message into the full movie view.
func (b *Bot) onDetail(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendText(c, "❌ Movie details not found.", menuOnlyKeyboard())
	}

	ctx := helpers.BuildContext(c)
	detail, derr := b.catalog.MovieDetail(ctx, id)
	warnCatalog(ctx, "catalog.detail", derr)
	if detail == nil {
		return helpers.EditOrSendText(c, "❌ Movie details not found.", menuOnlyKeyboard())
	}

	trailer, terr := b.catalog.MovieTrailer(ctx, id)
	warnCatalog(ctx, "catalog.trailer", terr)
	cast, cerr := b.catalog.MovieCast(ctx, id, maxListButtons)
	warnCatalog(ctx, "catalog.credits", cerr)

	return helpers.EditOrSendText(c, movieDetailText(detail, trailer, cast), menuOnlyKeyboard())
}

// onSave resolves the movie title and stores it as a favorite.
func (b *Bot) onSave(c tele.Context) error {
	id, err := callbacks.PayloadInt64(c)
	if err != nil {
		return helpers.EditOrSendText(c, "❌ No movie details found.", menuOnlyKeyboard())
	}
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	ctx := helpers.BuildContext(c)
	detail, derr := b.catalog.MovieDetail(ctx, id)
	warnCatalog(ctx, "catalog.detail", derr)
	if detail == nil {
		return helpers.EditOrSendText(c, "❌ No movie details found.", menuOnlyKeyboard())
	}
	title := detail.Title
	if title == "" {
		title = "Unknown"
	}

	added, aerr := b.favs.Add(ctx, sender.ID, title)
	if aerr != nil {
		// the store already logged the write failure
		return helpers.EditOrSendText(c, "❌ Terjadi kesalahan. Silakan coba lagi.", menuOnlyKeyboard())
	}
	if !added {
		return helpers.EditOrSendText(c, fmt.Sprintf("❌ '%s' sudah ada di daftar favorit Anda.", title), menuOnlyKeyboard())
	}
	return helpers.EditOrSendText(c, fmt.Sprintf("✅ '%s' telah ditambahkan ke daftar favorit Anda.", title), menuOnlyKeyboard())
}

// onMenu dispatches the main-menu actions. The prompt actions arm a
// one-shot conversation state; the rest reply immediately.
func (b *Bot) onMenu(c tele.Context) error {
	action := callbacks.CallbackPayload(c)
	switch action {
	case "search":
		b.setState(c, StateSearch)
		return helpers.SendText(c, "🔍 Ketik judul film yang ingin dicari:")
	case "actor":
		b.setState(c, StateActor)
		return helpers.SendText(c, "🎭 Ketik nama aktor/aktris:")
	case "favorite":
		b.setState(c, StateFavorite)
		return helpers.SendText(c, "⭐ Ketik judul film yang ingin ditambahkan ke favorit:")
	case "trending":
		return b.sendTrending(c)
	case "genres":
		return b.sendGenresMenu(c)
	case "favorites":
		return b.sendFavoritesMenuView(c)
	case "cinema":
		return b.sendCinemaPrompt(c, "Silakan kirim lokasi Anda:")
	case "menu":
		return b.sendMainMenu(c)
	case "main":
		return helpers.SendKB(c, "🎬 Pilih menu:", mainMenuKeyboard())
	case "help":
		return b.sendHelp(c)
	default:
		logger.LogEvent(helpers.BuildContext(c), logger.TG, slog.LevelWarn, "menu.unknown_action",
			slog.String("action", logger.SanitizeLimit(action, 64)),
		)
		return helpers.SendKB(c, "❌ Perintah tidak dikenali.", menuOnlyKeyboard())
	}
}

// onGenreButton resolves a genre submenu press into recommendations.
func (b *Bot) onGenreButton(c tele.Context) error {
	name := callbacks.CallbackPayload(c)
	if name == "" {
		return b.onUnknownCallback(c)
	}
	return b.sendGenre(c, name)
}

// onUnknownCallback answers malformed or stale action tokens. The
// callback router already logged the miss.
func (b *Bot) onUnknownCallback(c tele.Context) error {
	return helpers.SendKB(c, "❌ Perintah tidak dikenali.", menuOnlyKeyboard())
}
