// Package bot implements the conversational movie bot: free-text intent
// parsing, one-shot conversation states, menu navigation via callback
// actions, and rendering of catalog records into messages with inline
// keyboards.
package bot

import (
	"context"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/moviebot/internal/favorites"
	"github.com/m3rciful/moviebot/internal/logger"
	tg "github.com/m3rciful/moviebot/internal/telegram"
	"github.com/m3rciful/moviebot/internal/telegram/commands"
	"github.com/m3rciful/moviebot/internal/telegram/state"
	"github.com/m3rciful/moviebot/internal/tmdb"
)

// Pending expectations set by the menu and consumed by the next text
// message from the same user.
const (
	StateSearch   = state.State("search")
	StateActor    = state.State("actor")
	StateFavorite = state.State("favorite")
)

// Catalog is the movie metadata surface the handlers consume.
// *tmdb.Client satisfies it.
type Catalog interface {
	SearchMovies(ctx context.Context, query string) ([]tmdb.MovieSummary, error)
	MovieDetail(ctx context.Context, id int64) (*tmdb.MovieDetail, error)
	MovieTrailer(ctx context.Context, id int64) (string, error)
	MovieCast(ctx context.Context, id int64, limit int) ([]string, error)
	SearchPeople(ctx context.Context, name string) ([]tmdb.Person, error)
	DiscoverByGenre(ctx context.Context, genreID int64) ([]tmdb.MovieSummary, error)
	TrendingToday(ctx context.Context) ([]tmdb.MovieSummary, error)
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	ProfileURL(path string) string
}

// Bot holds the handler set and its collaborators.
type Bot struct {
	catalog  Catalog
	favs     favorites.Store
	sessions state.Manager

	// genre table, populated once by LoadGenres before updates are served
	genreOrder []tmdb.Genre
	genreIDs   map[string]int64
}

// New assembles the bot around its collaborators. Call LoadGenres before
// serving updates; handlers read the genre table without locking.
func New(catalog Catalog, favs favorites.Store, sessions state.Manager) *Bot {
	return &Bot{
		catalog:  catalog,
		favs:     favs,
		sessions: sessions,
		genreIDs: map[string]int64{},
	}
}

// LoadGenres populates the genre table from the catalog. On failure the
// bot runs with an empty table: the genre submenu reports nothing
// available and every genre lookup misses.
func (b *Bot) LoadGenres(ctx context.Context) error {
	genres, err := b.catalog.Genres(ctx)
	if err != nil {
		return err
	}
	ids := make(map[string]int64, len(genres))
	for _, g := range genres {
		ids[strings.ToLower(g.Name)] = g.ID
	}
	b.genreOrder = genres
	b.genreIDs = ids
	return nil
}

// GenreCount reports how many genres the table holds.
func (b *Bot) GenreCount() int {
	return len(b.genreOrder)
}

func (b *Bot) genreID(name string) (int64, bool) {
	id, ok := b.genreIDs[name]
	return id, ok
}

// Register wires commands, callback actions, conversation states, and
// the free-text fallback into the registry.
func (b *Bot) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{Handler: b.start, Description: "Show the main menu"})
	reg.RegisterCommand("/help", commands.Command{Handler: b.help, Description: "How to use the bot"})
	reg.RegisterCommand("/search", commands.Command{Handler: b.searchCommand, Description: "Search movies by title"})
	reg.RegisterCommand("/genre", commands.Command{Handler: b.genreCommand, Description: "Movie recommendations by genre"})
	reg.RegisterCommand("/actor", commands.Command{Handler: b.actorCommand, Description: "Find movies by actor or actress"})
	reg.RegisterCommand("/trending", commands.Command{Handler: b.trendingCommand, Description: "Movies trending today"})
	reg.RegisterCommand("/favorite", commands.Command{Handler: b.favoriteCommand, Description: "Add a movie to favorites"})
	reg.RegisterCommand("/favorites", commands.Command{Handler: b.favoritesCommand, Description: "Show your favorites"})
	reg.RegisterCommand("/nearest_cinema", commands.Command{Handler: b.cinemaCommand, Description: "Find a cinema near you"})

	_ = reg.RegisterCallback("detail", b.onDetail)
	_ = reg.RegisterCallback("save", b.onSave)
	_ = reg.RegisterCallback("menu", b.onMenu)
	_ = reg.RegisterCallback("genre", b.onGenreButton)

	reg.SetCallbackNotFound(b.onUnknownCallback)
	reg.SetTextFallback(b.onText)

	state.RegisterHandler(StateSearch, b.searchArg)
	state.RegisterHandler(StateActor, b.actorArg)
	state.RegisterHandler(StateFavorite, b.favoriteArg)
}

func (b *Bot) setState(c tele.Context, st state.State) {
	if sender := c.Sender(); sender != nil {
		b.sessions.Set(sender.ID, st)
	}
}

func commandPayload(c tele.Context) string {
	msg := c.Message()
	if msg == nil {
		return ""
	}
	return strings.TrimSpace(msg.Payload)
}

// warnCatalog records a failed catalog call. Handlers degrade to the
// empty-result rendering instead of propagating the error.
func warnCatalog(ctx context.Context, event string, err error) {
	if err == nil {
		return
	}
	logger.LogEvent(ctx, logger.TMDB, slog.LevelWarn, event,
		slog.String("status", "fail"),
		slog.String("err", err.Error()),
	)
}
