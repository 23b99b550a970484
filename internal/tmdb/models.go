package tmdb

// MovieSummary is a single entry of a search, discover, or trending listing.
type MovieSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Year returns the four-digit release year, or "Unknown" when the date is absent.
func (m MovieSummary) Year() string {
	if len(m.ReleaseDate) < 4 {
		return "Unknown"
	}
	return m.ReleaseDate[:4]
}

// MovieDetail is the full movie record used for the detail view.
type MovieDetail struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// Video is a single entry of a movie's video listing.
type Video struct {
	Site string `json:"site"`
	Type string `json:"type"`
	Key  string `json:"key"`
}

// Person is the first match of a person search together with their known-for titles.
// KnownFor may contain TV entries whose Title is empty.
type Person struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	ProfilePath string         `json:"profile_path"`
	KnownFor    []MovieSummary `json:"known_for"`
}

// Genre maps a genre name to the upstream genre identifier.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type movieListResponse struct {
	Results []MovieSummary `json:"results"`
}

type videoListResponse struct {
	Results []Video `json:"results"`
}

type creditsResponse struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
}

type personListResponse struct {
	Results []Person `json:"results"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}
