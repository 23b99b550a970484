package bot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/telegram/keyboard"
	"github.com/m3rciful/moviebot/internal/tmdb"
)

// maxListButtons caps how many selectable movies a list keyboard shows.
const maxListButtons = 5

const menuText = `🎥 Selamat datang di Movie Search Bot! 🍿
Siap menjelajahi dunia film? Dari blockbuster terbaru hingga klasik favorit, kami punya semua yang kamu cari!
Gunakan tombol di bawah untuk mulai petualanganmu:
- Cari film, aktor, atau genre favoritmu
- Temukan film trending atau bioskop terdekat
- Simpan film kesukaanmu di daftar favorit
Klik **🎛️ Menu** untuk melihat semua fitur!`

const helpText = `🎬 Panduan Menu Movie Search Bot 🍿
Berikut adalah penjelasan tombol menu kami:
- 🔍 **Cari Film**: Cari film berdasarkan judul.
- 🎭 **Cari Aktor**: Temukan film berdasarkan nama aktor/aktris.
- 🎬 **Film Trending**: Lihat film yang sedang populer saat ini.
- 🏷️ **Genre Film**: Jelajahi film berdasarkan genre (action, comedy, dll.).
- ⭐ **Tambah Favorit**: Tambahkan film ke daftar favoritmu.
- 📜 **List Favorit**: Lihat daftar film favoritmu.
- 🎫 **Cari Bioskop**: Temukan bioskop terdekat dengan lokasimu.
- 🎛️ **Menu**: Kembali ke menu utama.
- ❓ **Bantuan**: Tampilkan panduan ini.
Klik **🎛️ Menu** untuk kembali menjelajah!`

// mainMenuKeyboard lays out the nine menu actions two per row.
func mainMenuKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsNPerRow([]keyboard.InlineBtn{
		{Text: "🔍 Cari Film", Unique: "menu", Data: "search"},
		{Text: "🎭 Cari Aktor", Unique: "menu", Data: "actor"},
		{Text: "🎬 Film Trending", Unique: "menu", Data: "trending"},
		{Text: "🏷️ Genre Film", Unique: "menu", Data: "genres"},
		{Text: "⭐ Tambah Favorit", Unique: "menu", Data: "favorite"},
		{Text: "📜 List Favorit", Unique: "menu", Data: "favorites"},
		{Text: "🎫 Cari Bioskop", Unique: "menu", Data: "cinema"},
		{Text: "🎛️ Menu", Unique: "menu", Data: "menu"},
		{Text: "❓ Bantuan", Unique: "menu", Data: "help"},
	}, 2)
}

// menuOnlyKeyboard is the single return-to-menu action appended to
// error and terminal messages.
func menuOnlyKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🎛️ Menu", Unique: "menu", Data: "menu"},
	})
}

// movieListKeyboard renders up to five selectable movies, one per row,
// plus the return-to-menu action. unique decides what pressing an entry
// does ("detail" opens the movie, "save" stores it as a favorite).
func movieListKeyboard(movies []tmdb.MovieSummary, unique string) *tele.ReplyMarkup {
	limit := len(movies)
	if limit > maxListButtons {
		limit = maxListButtons
	}
	rows := make([][]keyboard.InlineBtn, 0, limit+1)
	for _, m := range movies[:limit] {
		title := m.Title
		if title == "" {
			title = "Unknown"
		}
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("%s (%s)", title, m.Year()),
			Unique: unique,
			Data:   strconv.FormatInt(m.ID, 10),
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "🎛️ Menu", Unique: "menu", Data: "menu"}})
	return keyboard.InlineButtonsRows(rows...)
}

// genresKeyboard lists the first ten genres two per row with a back action.
func genresKeyboard(genres []tmdb.Genre) *tele.ReplyMarkup {
	limit := len(genres)
	if limit > 10 {
		limit = 10
	}
	var rows [][]keyboard.InlineBtn
	var row []keyboard.InlineBtn
	for _, g := range genres[:limit] {
		name := strings.ToLower(g.Name)
		row = append(row, keyboard.InlineBtn{Text: capitalize(name), Unique: "genre", Data: name})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "⬅️ Kembali", Unique: "menu", Data: "main"}})
	return keyboard.InlineButtonsRows(rows...)
}

// movieDetailText formats the full detail view. Absent fields render
// their fixed placeholders.
func movieDetailText(detail *tmdb.MovieDetail, trailerURL string, cast []string) string {
	title := detail.Title
	if title == "" {
		title = "N/A"
	}
	release := detail.ReleaseDate
	if release == "" {
		release = "N/A"
	}
	overview := detail.Overview
	if overview == "" {
		overview = "Synopsis not available."
	}
	castList := "Cast information not available."
	if len(cast) > 0 {
		castList = strings.Join(cast, ", ")
	}
	trailer := "Not available."
	if trailerURL != "" {
		trailer = trailerURL
	}
	return fmt.Sprintf(
		"🎬 %s\n📅 Release Date: %s\n⭐ Rating: %s\n📝 Synopsis:\n%s\n👥 Cast:\n%s\n🎬 Trailer: %s",
		title, release, formatRating(detail.VoteAverage), overview, castList, trailer,
	)
}

// actorText formats the person header sent before their known-for list.
func actorText(name, profileURL string) string {
	if profileURL == "" {
		profileURL = "Foto tidak tersedia."
	}
	return fmt.Sprintf("🎭 %s\n🖼️ Foto:\n%s", name, profileURL)
}

// favoritesViewText is the command-path favorites listing.
func favoritesViewText(titles []string) string {
	var b strings.Builder
	b.WriteString("⭐ Daftar film favorit Anda:\n")
	for _, title := range titles {
		b.WriteString("- ")
		b.WriteString(title)
		b.WriteString("\n")
	}
	return b.String()
}

// favoritesMenuText is the menu-button favorites listing. It keeps the
// shorter header and no trailing newline the button flow always had.
func favoritesMenuText(titles []string) string {
	lines := make([]string, 0, len(titles))
	for _, title := range titles {
		lines = append(lines, "- "+title)
	}
	return "⭐ Daftar favorit Anda:\n" + strings.Join(lines, "\n")
}

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// capitalize upper-cases the first rune only; inputs are already lowercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}
