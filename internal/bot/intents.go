package bot

import "strings"

// Intent identifies what a free-text message asks for.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentSearch
	IntentActor
	IntentTrending
	IntentGenre
	IntentFavoritesAdd
	IntentFavoritesView
	IntentCinema
	IntentHelp
	IntentMenu
)

var intentNames = map[Intent]string{
	IntentUnknown:       "unknown",
	IntentSearch:        "search",
	IntentActor:         "actor",
	IntentTrending:      "trending",
	IntentGenre:         "genre",
	IntentFavoritesAdd:  "favorites_add",
	IntentFavoritesView: "favorites_view",
	IntentCinema:        "cinema",
	IntentHelp:          "help",
	IntentMenu:          "menu",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// ParsedIntent is the outcome of matching free text against the phrase
// table. MissingArg marks a recognized intent whose required argument
// came out empty, so the caller prompts for it instead of showing the
// fallback menu.
type ParsedIntent struct {
	Kind       Intent
	Arg        string
	MissingArg bool
}

// ParseIntent matches text against a fixed bilingual phrase table.
// Matching is substring-based and order-dependent: the first matching
// entry wins. Add-to-favorites phrases are checked before the favorites
// view because "tambah favorit" contains "favorit".
func ParseIntent(text string) ParsedIntent {
	text = strings.ToLower(text)

	switch {
	case containsAny(text, "cari film", "search movie"):
		return argIntent(IntentSearch, stripPhrases(text, "cari film", "search movie"))
	case containsAny(text, "cari aktor", "search actor"):
		return argIntent(IntentActor, stripPhrases(text, "cari aktor", "search actor"))
	case containsAny(text, "trending", "film populer"):
		return ParsedIntent{Kind: IntentTrending}
	case strings.Contains(text, "genre"):
		return argIntent(IntentGenre, stripPhrases(text, "genre"))
	case containsAny(text, "favorit", "favorites"):
		if containsAny(text, "tambah", "add") {
			return argIntent(IntentFavoritesAdd, stripPhrases(text, "tambah favorit", "add to favorites"))
		}
		return ParsedIntent{Kind: IntentFavoritesView}
	case containsAny(text, "bioskop", "cinema"):
		return ParsedIntent{Kind: IntentCinema}
	case containsAny(text, "bantuan", "help"):
		return ParsedIntent{Kind: IntentHelp}
	case containsAny(text, "menu", "start"):
		return ParsedIntent{Kind: IntentMenu}
	default:
		return ParsedIntent{Kind: IntentUnknown}
	}
}

func argIntent(kind Intent, arg string) ParsedIntent {
	return ParsedIntent{Kind: kind, Arg: arg, MissingArg: arg == ""}
}

func containsAny(text string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func stripPhrases(text string, phrases ...string) string {
	for _, p := range phrases {
		text = strings.ReplaceAll(text, p, "")
	}
	return strings.TrimSpace(text)
}
