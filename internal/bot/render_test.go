package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/moviebot/internal/tmdb"
)

func TestMainMenuKeyboardLayout(t *testing.T) {
	markup := mainMenuKeyboard()
	rows := markup.InlineKeyboard
	require.Len(t, rows, 5)

	for i, row := range rows[:4] {
		assert.Len(t, row, 2, "row %d", i)
	}
	assert.Len(t, rows[4], 1, "last row holds the odd button out")

	wantData := []string{"search", "actor", "trending", "genres", "favorite", "favorites", "cinema", "menu", "help"}
	var gotData []string
	for _, row := range rows {
		for _, btn := range row {
			assert.Equal(t, "menu", btn.Unique)
			gotData = append(gotData, btn.Data)
		}
	}
	assert.Equal(t, wantData, gotData)
	assert.Equal(t, "🔍 Cari Film", rows[0][0].Text)
	assert.Equal(t, "❓ Bantuan", rows[4][0].Text)
}

func TestMenuOnlyKeyboard(t *testing.T) {
	markup := menuOnlyKeyboard()
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)

	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, "🎛️ Menu", btn.Text)
	assert.Equal(t, "menu", btn.Unique)
	assert.Equal(t, "menu", btn.Data)
}

func TestMovieListKeyboardCapsAtFive(t *testing.T) {
	movies := make([]tmdb.MovieSummary, 8)
	for i := range movies {
		movies[i] = tmdb.MovieSummary{
			ID:          int64(100 + i),
			Title:       fmt.Sprintf("Movie %d", i),
			ReleaseDate: "2019-07-01",
		}
	}

	markup := movieListKeyboard(movies, "detail")
	rows := markup.InlineKeyboard
	require.Len(t, rows, 6, "five movies plus the menu row")

	assert.Equal(t, "Movie 0 (2019)", rows[0][0].Text)
	assert.Equal(t, "detail", rows[0][0].Unique)
	assert.Equal(t, "100", rows[0][0].Data)
	assert.Equal(t, "Movie 4 (2019)", rows[4][0].Text)
	assert.Equal(t, "🎛️ Menu", rows[5][0].Text)
	assert.Equal(t, "menu", rows[5][0].Unique)
}

func TestMovieListKeyboardPlaceholders(t *testing.T) {
	movies := []tmdb.MovieSummary{{ID: 7}}

	markup := movieListKeyboard(movies, "save")
	rows := markup.InlineKeyboard
	require.Len(t, rows, 2)

	assert.Equal(t, "Unknown (Unknown)", rows[0][0].Text)
	assert.Equal(t, "save", rows[0][0].Unique)
	assert.Equal(t, "7", rows[0][0].Data)
}

func TestGenresKeyboardCapsAtTen(t *testing.T) {
	genres := make([]tmdb.Genre, 12)
	for i := range genres {
		genres[i] = tmdb.Genre{ID: int64(i + 1), Name: fmt.Sprintf("GENRE%d", i)}
	}

	markup := genresKeyboard(genres)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 6, "ten genres two per row plus the back row")

	assert.Equal(t, "Genre0", rows[0][0].Text)
	assert.Equal(t, "genre0", rows[0][0].Data)
	assert.Equal(t, "genre", rows[0][0].Unique)
	assert.Equal(t, "Genre9", rows[4][1].Text)

	back := rows[5][0]
	assert.Equal(t, "⬅️ Kembali", back.Text)
	assert.Equal(t, "menu", back.Unique)
	assert.Equal(t, "main", back.Data)
}

func TestGenresKeyboardOddCount(t *testing.T) {
	genres := []tmdb.Genre{
		{ID: 1, Name: "Action"},
		{ID: 2, Name: "Comedy"},
		{ID: 3, Name: "Drama"},
	}

	markup := genresKeyboard(genres)
	rows := markup.InlineKeyboard
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 1)
	assert.Equal(t, "Drama", rows[1][0].Text)
}

func TestMovieDetailTextFull(t *testing.T) {
	detail := &tmdb.MovieDetail{
		Title:       "Inception",
		Overview:    "A thief who steals corporate secrets.",
		ReleaseDate: "2010-07-16",
		VoteAverage: 8.4,
	}
	cast := []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt"}

	got := movieDetailText(detail, "https://www.youtube.com/watch?v=abc", cast)
	want := "🎬 Inception\n" +
		"📅 Release Date: 2010-07-16\n" +
		"⭐ Rating: 8.4\n" +
		"📝 Synopsis:\nA thief who steals corporate secrets.\n" +
		"👥 Cast:\nLeonardo DiCaprio, Joseph Gordon-Levitt\n" +
		"🎬 Trailer: https://www.youtube.com/watch?v=abc"
	assert.Equal(t, want, got)
}

func TestMovieDetailTextPlaceholders(t *testing.T) {
	got := movieDetailText(&tmdb.MovieDetail{}, "", nil)
	want := "🎬 N/A\n" +
		"📅 Release Date: N/A\n" +
		"⭐ Rating: 0\n" +
		"📝 Synopsis:\nSynopsis not available.\n" +
		"👥 Cast:\nCast information not available.\n" +
		"🎬 Trailer: Not available."
	assert.Equal(t, want, got)
}

func TestActorText(t *testing.T) {
	assert.Equal(t,
		"🎭 Tom Hanks\n🖼️ Foto:\nhttps://image.tmdb.org/t/p/w500/abc.jpg",
		actorText("Tom Hanks", "https://image.tmdb.org/t/p/w500/abc.jpg"))
	assert.Equal(t,
		"🎭 Tom Hanks\n🖼️ Foto:\nFoto tidak tersedia.",
		actorText("Tom Hanks", ""))
}

func TestFavoritesViewText(t *testing.T) {
	got := favoritesViewText([]string{"Inception", "Up"})
	assert.Equal(t, "⭐ Daftar film favorit Anda:\n- Inception\n- Up\n", got)
}

func TestFavoritesMenuText(t *testing.T) {
	got := favoritesMenuText([]string{"Inception", "Up"})
	assert.Equal(t, "⭐ Daftar favorit Anda:\n- Inception\n- Up", got)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "0", formatRating(0))
	assert.Equal(t, "7.125", formatRating(7.125))
	assert.Equal(t, "8", formatRating(8.0))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Action", capitalize("action"))
	assert.Equal(t, "Science fiction", capitalize("science fiction"))
	assert.Equal(t, "", capitalize(""))
}
