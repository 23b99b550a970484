package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/telegram/helpers"
	"github.com/m3rciful/moviebot/internal/telegram/keyboard"
)

// onText is the fallback for free text that no pending state consumed.
// Unrecognized input redisplays the main menu.
func (b *Bot) onText(c tele.Context) error {
	intent := ParseIntent(c.Text())
	switch intent.Kind {
	case IntentSearch:
		if intent.MissingArg {
			return helpers.SendKB(c, "🔍 Silakan masukkan judul film yang ingin dicari.\nContoh: cari film Avengers", menuOnlyKeyboard())
		}
		return b.sendMovieSearch(c, intent.Arg)
	case IntentActor:
		if intent.MissingArg {
			return helpers.SendKB(c, "🎭 Ketik nama aktor atau aktris.\nContoh: cari aktor Tom Cruise", menuOnlyKeyboard())
		}
		return b.sendActor(c, intent.Arg)
	case IntentTrending:
		return b.sendTrending(c)
	case IntentGenre:
		if intent.MissingArg {
			return helpers.SendKB(c, b.genrePromptText(), menuOnlyKeyboard())
		}
		return b.sendGenre(c, intent.Arg)
	case IntentFavoritesAdd:
		if intent.MissingArg {
			return helpers.SendKB(c, "⭐ Ketik judul film untuk favorit.\nContoh: tambah favorit Inception", menuOnlyKeyboard())
		}
		return b.sendFavoriteSelect(c, intent.Arg)
	case IntentFavoritesView:
		return b.sendFavoritesView(c)
	case IntentCinema:
		return b.sendCinemaPrompt(c, "Silakan kirim lokasi kamu untuk mencari bioskop terdekat:")
	case IntentHelp:
		return b.sendHelp(c)
	case IntentMenu:
		return b.sendMainMenu(c)
	default:
		return helpers.SendKB(c, "Saya tidak mengerti permintaan Anda. Silakan pilih dari menu di bawah:", mainMenuKeyboard())
	}
}

// Conversation-state argument handlers. The router consumed the state
// already; a blank argument reports validation and leaves the state
// cleared, so the user re-enters through the menu.

func (b *Bot) searchArg(c tele.Context, arg string) error {
	query := strings.ToLower(strings.TrimSpace(arg))
	if query == "" {
		return helpers.SendKB(c, "❌ Judul film tidak boleh kosong.", menuOnlyKeyboard())
	}
	return b.sendMovieSearch(c, query)
}

func (b *Bot) actorArg(c tele.Context, arg string) error {
	name := strings.ToLower(strings.TrimSpace(arg))
	if name == "" {
		return helpers.SendKB(c, "❌ Nama aktor tidak boleh kosong.", menuOnlyKeyboard())
	}
	return b.sendActor(c, name)
}

func (b *Bot) favoriteArg(c tele.Context, arg string) error {
	query := strings.ToLower(strings.TrimSpace(arg))
	if query == "" {
		return helpers.SendKB(c, "❌ Judul film tidak boleh kosong.", menuOnlyKeyboard())
	}
	return b.sendFavoriteSelect(c, query)
}

// OnLocation answers a shared location with a cinema maps link and
// removes the one-time reply keyboard.
func (b *Bot) OnLocation(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Location == nil {
		return helpers.SendKB(c, "📍 Silakan kirim lokasi kamu terlebih dahulu.", menuOnlyKeyboard())
	}
	lat := strconv.FormatFloat(float64(msg.Location.Lat), 'f', -1, 32)
	lng := strconv.FormatFloat(float64(msg.Location.Lng), 'f', -1, 32)
	link := fmt.Sprintf("https://www.google.com/maps/search/bioskop/@%s,%s,15z", lat, lng)
	return helpers.SendKB(c, "🎬 Berikut link bioskop terdekat:\n"+link, keyboard.RemoveKeyboard())
}
