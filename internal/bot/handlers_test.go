package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/config"
	"github.com/m3rciful/moviebot/internal/favorites"
	"github.com/m3rciful/moviebot/internal/logger"
	tg "github.com/m3rciful/moviebot/internal/telegram"
	"github.com/m3rciful/moviebot/internal/telegram/router"
	"github.com/m3rciful/moviebot/internal/telegram/state"
	"github.com/m3rciful/moviebot/internal/tmdb"
)

func TestMain(m *testing.M) {
	_ = logger.InitLogger(&config.Config{Logging: config.LoggingConfig{Level: "error"}})
	os.Exit(m.Run())
}

// fakeAPI is an in-process Bot API that records every method call the
// handlers produce.
type fakeAPI struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls []apiCall
}

type apiCall struct {
	Method string
	Params map[string]string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	a := &fakeAPI{}
	a.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		var raw map[string]any
		_ = json.NewDecoder(r.Body).Decode(&raw)
		params := make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				params[k] = s
			} else {
				b, _ := json.Marshal(v)
				params[k] = string(b)
			}
		}

		a.mu.Lock()
		a.calls = append(a.calls, apiCall{Method: method, Params: params})
		a.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch method {
		case "sendMessage", "editMessageText":
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":900,"date":1,"chat":{"id":42,"type":"private"}}}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		}
	}))
	t.Cleanup(a.srv.Close)
	return a
}

// messages returns the sendMessage and editMessageText calls in order.
func (a *fakeAPI) messages() []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []apiCall
	for _, c := range a.calls {
		if c.Method == "sendMessage" || c.Method == "editMessageText" {
			out = append(out, c)
		}
	}
	return out
}

func (a *fakeAPI) lastMessage(t *testing.T) apiCall {
	t.Helper()
	msgs := a.messages()
	require.NotEmpty(t, msgs, "expected at least one message sent")
	return msgs[len(msgs)-1]
}

func (a *fakeAPI) methodCount(method string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (a *fakeAPI) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = nil
}

// inlineRows decodes the captured reply_markup into keyboard rows.
func (c apiCall) inlineRows(t *testing.T) [][]tele.InlineButton {
	t.Helper()
	raw := c.Params["reply_markup"]
	require.NotEmpty(t, raw, "message carries no reply markup")
	var m struct {
		InlineKeyboard [][]tele.InlineButton `json:"inline_keyboard"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m.InlineKeyboard
}

// logRecorder captures structured log records so tests can assert on
// emitted levels and event names.
type logRecorder struct {
	mu      sync.Mutex
	records []logRecord
}

type logRecord struct {
	Level slog.Level
	Event string
}

func (r *logRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *logRecorder) Handle(_ context.Context, rec slog.Record) error {
	entry := logRecord{Level: rec.Level}
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == "event" {
			entry.Event = a.Value.String()
		}
		return true
	})
	r.mu.Lock()
	r.records = append(r.records, entry)
	r.mu.Unlock()
	return nil
}

func (r *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *logRecorder) WithGroup(string) slog.Handler      { return r }

func (r *logRecorder) find(event string) (logRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.Event == event {
			return rec, true
		}
	}
	return logRecord{}, false
}

// swapLogger points the logger globals at rec for the duration of the test.
func swapLogger(t *testing.T, rec *logRecorder) {
	t.Helper()
	prevL, prevTG, prevTMDB, prevStore := logger.L, logger.TG, logger.TMDB, logger.Store
	logg := slog.New(rec)
	logger.L, logger.TG, logger.TMDB, logger.Store = logg, logg, logg, logg
	t.Cleanup(func() {
		logger.L, logger.TG, logger.TMDB, logger.Store = prevL, prevTG, prevTMDB, prevStore
	})
}

// stubCatalog serves canned results and records queries.
type stubCatalog struct {
	movies  []tmdb.MovieSummary
	detail  *tmdb.MovieDetail
	trailer string
	cast    []string
	people  []tmdb.Person
	genres  []tmdb.Genre
	err     error

	searchQueries []string
	personNames   []string
	detailIDs     []int64
	genreQueries  []int64
	trendingCalls int
}

var _ Catalog = (*stubCatalog)(nil)

func (s *stubCatalog) SearchMovies(_ context.Context, query string) ([]tmdb.MovieSummary, error) {
	s.searchQueries = append(s.searchQueries, query)
	return s.movies, s.err
}

func (s *stubCatalog) MovieDetail(_ context.Context, id int64) (*tmdb.MovieDetail, error) {
	s.detailIDs = append(s.detailIDs, id)
	return s.detail, s.err
}

func (s *stubCatalog) MovieTrailer(context.Context, int64) (string, error) {
	return s.trailer, s.err
}

func (s *stubCatalog) MovieCast(context.Context, int64, int) ([]string, error) {
	return s.cast, s.err
}

func (s *stubCatalog) SearchPeople(_ context.Context, name string) ([]tmdb.Person, error) {
	s.personNames = append(s.personNames, name)
	return s.people, s.err
}

func (s *stubCatalog) DiscoverByGenre(_ context.Context, genreID int64) ([]tmdb.MovieSummary, error) {
	s.genreQueries = append(s.genreQueries, genreID)
	return s.movies, s.err
}

func (s *stubCatalog) TrendingToday(context.Context) ([]tmdb.MovieSummary, error) {
	s.trendingCalls++
	return s.movies, s.err
}

func (s *stubCatalog) Genres(context.Context) ([]tmdb.Genre, error) {
	return s.genres, s.err
}

func (s *stubCatalog) ProfileURL(path string) string {
	if path == "" {
		return ""
	}
	return "https://img.test/w500" + path
}

// harness wires the full handler set against the fake API: real routers,
// real session manager, real JSON favorites store, stubbed catalog.
type harness struct {
	t    *testing.T
	api  *fakeAPI
	tb   *tele.Bot
	bot  *Bot
	cat  *stubCatalog
	favs favorites.Store
	sess state.Manager
	reg  *tg.Registry

	textHandler tele.HandlerFunc
	locHandler  tele.HandlerFunc
	cbHandler   tele.HandlerFunc

	seq int
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	api := newFakeAPI(t)
	tb, err := tele.NewBot(tele.Settings{Token: "testtoken", URL: api.srv.URL, Offline: true})
	require.NoError(t, err)

	favs, err := favorites.NewJSONStore(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	cat := &stubCatalog{
		genres: []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}},
	}
	sess := state.NewMemoryManager()

	b := New(cat, favs, sess)
	require.NoError(t, b.LoadGenres(context.Background()))

	reg := tg.NewRegistry()
	b.Register(reg)

	h := &harness{
		t: t, api: api, tb: tb, bot: b,
		cat: cat, favs: favs, sess: sess, reg: reg,
	}
	for _, r := range router.TextRoutes(sess, reg, router.TextOptions{Location: b.OnLocation}) {
		switch r.Endpoint {
		case tele.OnText:
			h.textHandler = r.Handler
		case tele.OnLocation:
			h.locHandler = r.Handler
		}
	}
	require.NotNil(t, h.textHandler)
	require.NotNil(t, h.locHandler)

	cb := router.CallbackRoute(reg, router.CallbackOptions{})
	h.cbHandler = cb.Handler
	return h
}

func (h *harness) nextUpdate() int {
	h.seq++
	return h.seq
}

func (h *harness) message(userID int64, text string) *tele.Message {
	return &tele.Message{
		ID:     h.nextUpdate(),
		Text:   text,
		Sender: &tele.User{ID: userID},
		Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
	}
}

// text routes a plain message the way the live bot would.
func (h *harness) text(userID int64, text string) {
	h.t.Helper()
	c := h.tb.NewContext(tele.Update{ID: h.nextUpdate(), Message: h.message(userID, text)})
	require.NoError(h.t, h.textHandler(c))
}

// command invokes a registered slash command with the given payload.
func (h *harness) command(userID int64, name, payload string) {
	h.t.Helper()
	def, ok := h.reg.Commands()[name]
	require.True(h.t, ok, "command %s not registered", name)

	msg := h.message(userID, strings.TrimSpace(name+" "+payload))
	msg.Payload = payload
	c := h.tb.NewContext(tele.Update{ID: h.nextUpdate(), Message: msg})
	require.NoError(h.t, def.Handler(c))
}

// callback presses an inline button carrying "unique|data".
func (h *harness) callback(userID int64, unique, data string) {
	h.t.Helper()
	c := h.tb.NewContext(tele.Update{ID: h.nextUpdate(), Callback: &tele.Callback{
		ID:     fmt.Sprintf("cb%d", h.seq),
		Unique: unique,
		Data:   data,
		Sender: &tele.User{ID: userID},
		Message: &tele.Message{
			ID:   h.nextUpdate(),
			Chat: &tele.Chat{ID: userID, Type: tele.ChatPrivate},
		},
	}})
	require.NoError(h.t, h.cbHandler(c))
}

// location routes a shared-location message.
func (h *harness) location(userID int64, lat, lng float32) {
	h.t.Helper()
	msg := h.message(userID, "")
	msg.Location = &tele.Location{Lat: lat, Lng: lng}
	c := h.tb.NewContext(tele.Update{ID: h.nextUpdate(), Message: msg})
	require.NoError(h.t, h.locHandler(c))
}

const userID int64 = 42

func someMovies() []tmdb.MovieSummary {
	return []tmdb.MovieSummary{
		{ID: 27205, Title: "Inception", ReleaseDate: "2010-07-16"},
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31"},
	}
}

func TestStartCommandShowsMainMenu(t *testing.T) {
	h := newHarness(t)

	h.command(userID, "/start", "")

	msg := h.api.lastMessage(t)
	assert.Equal(t, "sendMessage", msg.Method)
	assert.Equal(t, menuText, msg.Params["text"])

	rows := msg.inlineRows(t)
	require.Len(t, rows, 5)
	assert.Equal(t, "🔍 Cari Film", rows[0][0].Text)
	assert.Equal(t, "\fmenu|search", rows[0][0].Data)
}

func TestMenuSearchArmsStateThenConsumesNextText(t *testing.T) {
	h := newHarness(t)
	h.cat.movies = someMovies()

	h.callback(userID, "menu", "search")
	assert.Equal(t, "🔍 Ketik judul film yang ingin dicari:", h.api.lastMessage(t).Params["text"])
	assert.True(t, h.sess.InProgress(userID), "menu press must arm the search state")

	h.text(userID, "Dune Part Two")

	require.Equal(t, []string{"dune part two"}, h.cat.searchQueries, "state handler lowercases the argument")
	assert.False(t, h.sess.InProgress(userID), "state is one-shot")

	msg := h.api.lastMessage(t)
	assert.Equal(t, "🎬 Movies found:", msg.Params["text"])
	rows := msg.inlineRows(t)
	require.Len(t, rows, 3, "two movies plus the menu row")
	assert.Equal(t, "Inception (2010)", rows[0][0].Text)
	assert.Equal(t, "\fdetail|27205", rows[0][0].Data)
}

func TestStateBlankArgumentValidatesWithoutCatalogCall(t *testing.T) {
	h := newHarness(t)

	h.callback(userID, "menu", "search")
	h.api.reset()

	h.text(userID, "   ")

	assert.Empty(t, h.cat.searchQueries, "blank input must not reach the catalog")
	assert.False(t, h.sess.InProgress(userID), "state stays cleared after validation")
	assert.Equal(t, "❌ Judul film tidak boleh kosong.", h.api.lastMessage(t).Params["text"])
}

func TestCommandsDoNotConsumePendingState(t *testing.T) {
	h := newHarness(t)
	h.cat.movies = someMovies()

	h.callback(userID, "menu", "search")
	h.api.reset()

	// Command-shaped text takes the command path, never the state path.
	h.text(userID, "/trending")
	assert.Empty(t, h.api.messages())
	assert.True(t, h.sess.InProgress(userID), "pending state must survive a command")

	h.text(userID, "dune")
	assert.Equal(t, []string{"dune"}, h.cat.searchQueries)
	assert.False(t, h.sess.InProgress(userID))
}

func TestMenuActorFlow(t *testing.T) {
	h := newHarness(t)
	h.cat.people = []tmdb.Person{{
		ID:          500,
		Name:        "Tom Cruise",
		ProfilePath: "/tom.jpg",
		KnownFor:    someMovies(),
	}}

	h.callback(userID, "menu", "actor")
	assert.Equal(t, "🎭 Ketik nama aktor/aktris:", h.api.lastMessage(t).Params["text"])
	h.api.reset()

	h.text(userID, "Tom Cruise")

	require.Equal(t, []string{"tom cruise"}, h.cat.personNames)
	msgs := h.api.messages()
	require.Len(t, msgs, 2, "actor card then known-for list")
	assert.Equal(t, "🎭 Tom Cruise\n🖼️ Foto:\nhttps://img.test/w500/tom.jpg", msgs[0].Params["text"])
	assert.Equal(t, "🎬 Movies starring this actor/actress:", msgs[1].Params["text"])
}

func TestMenuFavoriteFlowSavesSelection(t *testing.T) {
	h := newHarness(t)
	h.cat.movies = someMovies()
	h.cat.detail = &tmdb.MovieDetail{ID: 27205, Title: "Inception"}

	h.callback(userID, "menu", "favorite")
	assert.Equal(t, "⭐ Ketik judul film yang ingin ditambahkan ke favorit:", h.api.lastMessage(t).Params["text"])

	h.text(userID, "inception")
	msg := h.api.lastMessage(t)
	assert.Equal(t, "🎬 Select the movie you want to save:", msg.Params["text"])
	rows := msg.inlineRows(t)
	assert.Equal(t, "\fsave|27205", rows[0][0].Data)

	h.callback(userID, "save", "27205")
	assert.Equal(t, "✅ 'Inception' telah ditambahkan ke daftar favorit Anda.", h.api.lastMessage(t).Params["text"])
	assert.Equal(t, []string{"Inception"}, h.favs.List(context.Background(), userID))

	h.callback(userID, "save", "27205")
	assert.Equal(t, "❌ 'Inception' sudah ada di daftar favorit Anda.", h.api.lastMessage(t).Params["text"])
	assert.Equal(t, []string{"Inception"}, h.favs.List(context.Background(), userID))
}

func TestFreeTextSearchIntent(t *testing.T) {
	h := newHarness(t)
	h.cat.movies = someMovies()

	h.text(userID, "Cari Film Avengers")

	assert.Equal(t, []string{"avengers"}, h.cat.searchQueries)
	assert.Equal(t, "🎬 Movies found:", h.api.lastMessage(t).Params["text"])
}

func TestFreeTextSearchNoResults(t *testing.T) {
	h := newHarness(t)

	h.text(userID, "cari film zzzz")

	assert.Equal(t, "❌ No movies found for 'zzzz'.", h.api.lastMessage(t).Params["text"])
	assert.Empty(t, h.favs.List(context.Background(), userID), "failed search must not touch favorites")
}

func TestFreeTextCatalogFailureDegrades(t *testing.T) {
	h := newHarness(t)
	h.cat.err = errors.New("upstream down")

	h.text(userID, "cari film dune")

	// The handler reports the empty result instead of failing the update.
	assert.Equal(t, "❌ No movies found for 'dune'.", h.api.lastMessage(t).Params["text"])
}

func TestFreeTextGenreMissingArgPrompts(t *testing.T) {
	h := newHarness(t)

	h.text(userID, "genre")

	text := h.api.lastMessage(t).Params["text"]
	assert.Contains(t, text, "🏷️ Silakan tentukan genre film:")
	assert.Contains(t, text, "Genre yang tersedia: Action, Comedy")
	assert.Empty(t, h.cat.genreQueries)
}

func TestFreeTextUnknownFallsBackToMenu(t *testing.T) {
	h := newHarness(t)

	h.text(userID, "halo apa kabar")

	msg := h.api.lastMessage(t)
	assert.Equal(t, "Saya tidak mengerti permintaan Anda. Silakan pilih dari menu di bawah:", msg.Params["text"])
	assert.Len(t, msg.inlineRows(t), 5)
}

func TestGenreMenuFlow(t *testing.T) {
	h := newHarness(t)
	h.cat.movies = someMovies()

	h.callback(userID, "menu", "genres")
	msg := h.api.lastMessage(t)
	assert.Equal(t, "🏷️ Pilih genre:", msg.Params["text"])
	rows := msg.inlineRows(t)
	require.Len(t, rows, 2, "one genre pair plus the back row")
	assert.Equal(t, "Action", rows[0][0].Text)
	assert.Equal(t, "\fgenre|action", rows[0][0].Data)
	assert.Equal(t, "⬅️ Kembali", rows[1][0].Text)

	h.callback(userID, "genre", "action")
	assert.Equal(t, []int64{28}, h.cat.genreQueries)
	assert.Equal(t, "🎬 Movie recommendations for genre 'Action':", h.api.lastMessage(t).Params["text"])
}

func TestGenreMenuEmptyTable(t *testing.T) {
	h := newHarness(t)
	h.bot.genreOrder = nil

	h.callback(userID, "menu", "genres")

	assert.Equal(t, "❌ Genre tidak tersedia saat ini.", h.api.lastMessage(t).Params["text"])
}

func TestGenreCommandUnknownName(t *testing.T) {
	h := newHarness(t)

	h.command(userID, "/genre", "Sureal")

	assert.Equal(t, "❌ Genre 'sureal' not found.", h.api.lastMessage(t).Params["text"])
	assert.Empty(t, h.cat.genreQueries)
}

func TestSearchCommandRequiresPayload(t *testing.T) {
	h := newHarness(t)

	h.command(userID, "/search", "")

	assert.Equal(t, "⚠️ Please enter a movie title after /search.", h.api.lastMessage(t).Params["text"])
	assert.Empty(t, h.cat.searchQueries)
}

func TestSearchCommandKeepsPayloadCase(t *testing.T) {
	h := newHarness(t)
	h.cat.movies = someMovies()

	h.command(userID, "/search", "The Matrix")

	assert.Equal(t, []string{"The Matrix"}, h.cat.searchQueries)
}

func TestTrendingMenuEmpty(t *testing.T) {
	h := newHarness(t)

	h.callback(userID, "menu", "trending")

	assert.Equal(t, 1, h.cat.trendingCalls)
	assert.Equal(t, "❌ Tidak ada film tren saat ini.", h.api.lastMessage(t).Params["text"])
}

func TestFavoritesListCommandAndMenuRenderDifferently(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.favs.Add(ctx, userID, "Inception")
	require.NoError(t, err)
	_, err = h.favs.Add(ctx, userID, "Up")
	require.NoError(t, err)

	h.command(userID, "/favorites", "")
	assert.Equal(t, "⭐ Daftar film favorit Anda:\n- Inception\n- Up\n", h.api.lastMessage(t).Params["text"])

	h.callback(userID, "menu", "favorites")
	assert.Equal(t, "⭐ Daftar favorit Anda:\n- Inception\n- Up", h.api.lastMessage(t).Params["text"])
}

func TestFavoritesListEmpty(t *testing.T) {
	h := newHarness(t)

	h.command(userID, "/favorites", "")

	assert.Equal(t, "❌ Anda belum memiliki film favorit.", h.api.lastMessage(t).Params["text"])
}

func TestDetailCallbackEditsMessage(t *testing.T) {
	h := newHarness(t)
	h.cat.detail = &tmdb.MovieDetail{
		ID:          27205,
		Title:       "Inception",
		Overview:    "Dream heist.",
		ReleaseDate: "2010-07-16",
		VoteAverage: 8.4,
	}
	h.cat.trailer = "https://www.youtube.com/watch?v=abc"
	h.cat.cast = []string{"Leonardo DiCaprio"}

	h.callback(userID, "detail", "27205")

	require.Equal(t, []int64{27205}, h.cat.detailIDs)
	assert.Equal(t, 1, h.api.methodCount("answerCallbackQuery"))

	msg := h.api.lastMessage(t)
	assert.Equal(t, "editMessageText", msg.Method, "button press edits the list in place")
	assert.Equal(t,
		movieDetailText(h.cat.detail, h.cat.trailer, h.cat.cast),
		msg.Params["text"])
}

func TestDetailCallbackMalformedPayload(t *testing.T) {
	h := newHarness(t)

	h.callback(userID, "detail", "not-a-number")

	assert.Empty(t, h.cat.detailIDs)
	assert.Equal(t, "❌ Movie details not found.", h.api.lastMessage(t).Params["text"])
}

func TestSaveCallbackDetailLookupFails(t *testing.T) {
	h := newHarness(t)
	h.cat.err = errors.New("upstream down")

	h.callback(userID, "save", "27205")

	assert.Equal(t, "❌ No movie details found.", h.api.lastMessage(t).Params["text"])
	assert.Empty(t, h.favs.List(context.Background(), userID))
}

func TestUnknownCallbackKey(t *testing.T) {
	h := newHarness(t)
	rec := &logRecorder{}
	swapLogger(t, rec)

	h.callback(userID, "bogus", "x")

	assert.Equal(t, "❌ Perintah tidak dikenali.", h.api.lastMessage(t).Params["text"])
	entry, ok := rec.find("callback.unknown_key")
	require.True(t, ok, "registry miss must be logged")
	assert.Equal(t, slog.LevelWarn, entry.Level)
}

func TestUnknownMenuAction(t *testing.T) {
	h := newHarness(t)
	rec := &logRecorder{}
	swapLogger(t, rec)

	h.callback(userID, "menu", "bogus")

	assert.Equal(t, "❌ Perintah tidak dikenali.", h.api.lastMessage(t).Params["text"])
	entry, ok := rec.find("menu.unknown_action")
	require.True(t, ok, "unknown menu action must be logged")
	assert.Equal(t, slog.LevelWarn, entry.Level)
}

func TestMenuBackButtonShowsPicker(t *testing.T) {
	h := newHarness(t)

	h.callback(userID, "menu", "main")

	msg := h.api.lastMessage(t)
	assert.Equal(t, "🎬 Pilih menu:", msg.Params["text"])
	assert.Len(t, msg.inlineRows(t), 5)
}

func TestCinemaPromptsDifferPerPath(t *testing.T) {
	h := newHarness(t)

	h.command(userID, "/nearest_cinema", "")
	cmdMsg := h.api.lastMessage(t)
	assert.Equal(t, "Silakan kirim lokasi kamu untuk mencari bioskop terdekat:", cmdMsg.Params["text"])
	assert.Contains(t, cmdMsg.Params["reply_markup"], "request_location")
	assert.Contains(t, cmdMsg.Params["reply_markup"], "📍 Kirim Lokasi")

	h.callback(userID, "menu", "cinema")
	assert.Equal(t, "Silakan kirim lokasi Anda:", h.api.lastMessage(t).Params["text"])
}

func TestLocationAnswersWithMapsLink(t *testing.T) {
	h := newHarness(t)

	h.location(userID, -6.2, 106.8)

	msg := h.api.lastMessage(t)
	assert.Equal(t,
		"🎬 Berikut link bioskop terdekat:\nhttps://www.google.com/maps/search/bioskop/@-6.2,106.8,15z",
		msg.Params["text"])
	assert.Contains(t, msg.Params["reply_markup"], "remove_keyboard")
}

func TestHelpCommandListsMenuGuide(t *testing.T) {
	h := newHarness(t)

	h.command(userID, "/help", "")

	msg := h.api.lastMessage(t)
	assert.Equal(t, helpText, msg.Params["text"])
	rows := msg.inlineRows(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "🎛️ Menu", rows[0][0].Text)
}

func TestLoadGenresFailureKeepsTableEmpty(t *testing.T) {
	cat := &stubCatalog{err: errors.New("upstream down")}
	b := New(cat, nil, state.NewMemoryManager())

	require.Error(t, b.LoadGenres(context.Background()))
	assert.Zero(t, b.GenreCount())
}
