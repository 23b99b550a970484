package logger

import "strings"

// Severity names as they are rendered.
const (
	levelDebug = "DEBUG"
	levelInfo  = "INFO"
	levelWarn  = "WARN"
	levelError = "ERROR"
)

var levelNames = map[string]string{
	"debug":   levelDebug,
	"info":    levelInfo,
	"warn":    levelWarn,
	"warning": levelWarn,
	"error":   levelError,
}

// normalizeLevel maps any spelling of a severity onto its canonical name.
func normalizeLevel(level string) string {
	if level == "" {
		return levelInfo
	}
	if name, ok := levelNames[strings.ToLower(level)]; ok {
		return name
	}
	return strings.ToUpper(level)
}

// vocab is the closed set of values an enum-like log field may take.
type vocab map[string]struct{}

func newVocab(values ...string) vocab {
	v := make(vocab, len(values))
	for _, s := range values {
		v[s] = struct{}{}
	}
	return v
}

// normalize lowercases val and reports whether it belongs to the vocabulary.
func (v vocab) normalize(val string) (string, bool) {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return "", false
	}
	_, ok := v[val]
	return val, ok
}

var (
	statusValues  = newVocab("ok", "fail", "skip", "retry", "rate_limited", "cancelled")
	cacheValues   = newVocab("hit", "miss", "bypass", "refresh")
	outcomeValues = newVocab("ok", "fail", "cancelled", "rate_limited")
)

// defaultKeyOrder fixes the column order of well-known fields; anything
// not listed renders after these, sorted by name.
var defaultKeyOrder = []string{
	"ts", "level", "component", "event", "status", "rid", "rid_full", "ts_unix_nano",
	"update_id", "user_id", "chat_id", "chat_type", "handler",
	"intent", "state", "cb_key", "outcome", "duration_ms", "messages", "kb",
	"query", "movie_id", "person_id", "genre", "genres", "results", "shown", "title",
	"favorites", "added", "cache", "endpoint", "http_code", "payload",
	"lang", "username", "mode", "listen", "public_url", "backend", "db", "host", "port",
	"err", "err_code", "cause", "retryable", "attempts", "backoff_ms", "rate_limited",
}
