package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type logFormat string

const (
	formatJSON logFormat = "json"
	formatKV   logFormat = "kv"

	timeFormatMillis = "2006-01-02T15:04:05.000Z07:00"
)

type lineOptions struct {
	level    slog.Leveler
	writer   *asyncWriter
	format   logFormat
	keyOrder []string
}

// lineHandler renders records as single flat lines: ordered JSON objects or
// key=value text. Groups are flattened into dotted keys.
type lineHandler struct {
	opts   lineOptions
	attrs  []slog.Attr
	groups []string
}

func newLineHandler(opts lineOptions) *lineHandler {
	if opts.level == nil {
		opts.level = slog.LevelInfo
	}
	if opts.keyOrder == nil {
		opts.keyOrder = append([]string(nil), defaultKeyOrder...)
	}
	return &lineHandler{opts: opts}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

func (h *lineHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.opts.writer == nil {
		return errors.New("logger: writer not initialized")
	}
	isJSON := h.opts.format == formatJSON

	fields := make(map[string]any, 16)
	ts := r.Time.UTC()
	fields["ts"] = ts.Truncate(time.Millisecond).Format(timeFormatMillis)
	fields["level"] = normalizeLevel(r.Level.String())
	if isJSON {
		fields["ts_unix_nano"] = ts.UnixNano()
	}

	for _, a := range h.attrs {
		h.putAttr(fields, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.putAttr(fields, a)
		return true
	})

	mergeContextIDs(ctx, fields)
	compactRIDField(fields, isJSON)
	fillEventComponent(fields, r.Message)
	normalizeEnums(fields)
	dropEmpty(fields)

	line, err := renderLine(fields, h.opts.format, h.opts.keyOrder)
	if err != nil {
		return err
	}
	return h.opts.writer.Write(append(line, '\n'))
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *lineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

func (h *lineHandler) putAttr(fields map[string]any, attr slog.Attr) {
	walkAttr(strings.Join(h.groups, "."), attr, func(k string, v slog.Value) {
		key, val, ok := fieldValue(k, v)
		if ok {
			fields[key] = val
		}
	})
}

func walkAttr(prefix string, attr slog.Attr, fn func(string, slog.Value)) {
	key := attr.Key
	switch {
	case key == "":
		key = prefix
	case prefix != "":
		key = prefix + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, child := range attr.Value.Group() {
			walkAttr(key, child, fn)
		}
		return
	}
	if key != "" {
		fn(key, attr.Value)
	}
}

// fieldValue coerces a slog value into a loggable scalar. Durations become
// millisecond integers under a _ms key.
func fieldValue(key string, val slog.Value) (string, any, bool) {
	if key == "" {
		return "", nil, false
	}
	switch val.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(val.String()), true
	case slog.KindBool:
		return key, val.Bool(), true
	case slog.KindInt64:
		return key, val.Int64(), true
	case slog.KindUint64:
		if u := val.Uint64(); u > math.MaxInt64 {
			return key, u, true
		}
		return key, int64(val.Uint64()), true
	case slog.KindFloat64:
		return key, val.Float64(), true
	case slog.KindDuration:
		return durationKey(key), RoundMS(val.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, val.Time().UTC().Format(time.RFC3339Nano), true
	case slog.KindAny:
		return anyFieldValue(key, val.Any())
	default:
		return key, val.Any(), true
	}
}

func anyFieldValue(key string, v any) (string, any, bool) {
	switch x := v.(type) {
	case nil:
		return key, nil, false
	case error:
		return key, x.Error(), true
	case string:
		return key, strings.TrimSpace(x), true
	case time.Duration:
		return durationKey(key), RoundMS(x).Milliseconds(), true
	case fmt.Stringer:
		return key, x.String(), true
	default:
		return key, fmt.Sprint(v), true
	}
}

func durationKey(key string) string {
	switch {
	case key == "duration":
		return "duration_ms"
	case strings.HasSuffix(key, "_duration"):
		return strings.TrimSuffix(key, "_duration") + "_duration_ms"
	case strings.HasSuffix(key, "_ms"):
		return key
	default:
		return key + "_ms"
	}
}

func mergeContextIDs(ctx context.Context, fields map[string]any) {
	if ctx == nil {
		return
	}
	put := func(key string, val any, present bool) {
		if !present {
			return
		}
		if _, exists := fields[key]; !exists {
			fields[key] = val
		}
	}

	rid := RIDFrom(ctx)
	put("rid", rid, rid != "")
	uid := UserIDFrom(ctx)
	put("user_id", uid, uid != 0)
	upd := UpdateIDFrom(ctx)
	put("update_id", upd, upd != 0)
	cid := ChatIDFrom(ctx)
	put("chat_id", cid, cid != 0)
	handler := HandlerFrom(ctx)
	put("handler", handler, handler != "")
}

// compactRIDField shortens the rid for readability. JSON output keeps the
// raw value under rid_full for grep-ability.
func compactRIDField(fields map[string]any, keepFull bool) {
	rid, ok := stringField(fields, "rid")
	if !ok || rid == "" {
		return
	}
	compact := CompactRID(rid)
	if compact == "" || compact == rid {
		return
	}
	if keepFull {
		if _, seen := fields["rid_full"]; !seen {
			fields["rid_full"] = rid
		}
	}
	fields["rid"] = compact
}

func fillEventComponent(fields map[string]any, msg string) {
	if event, ok := stringField(fields, "event"); !ok || event == "" {
		if msg == "" {
			msg = "unknown"
		}
		fields["event"] = msg
	}
	if component, ok := stringField(fields, "component"); !ok || component == "" {
		fields["component"] = "app"
	}
}

func normalizeEnums(fields map[string]any) {
	if level, ok := stringField(fields, "level"); ok {
		fields["level"] = normalizeLevel(level)
	}
	// unknown status values pass through untouched; unknown cache and
	// outcome values are dropped
	if s, ok := stringField(fields, "status"); ok && s != "" {
		if normalized, known := statusValues.normalize(s); known {
			fields["status"] = normalized
		}
	}
	if c, ok := stringField(fields, "cache"); ok && c != "" {
		if normalized, known := cacheValues.normalize(c); known {
			fields["cache"] = normalized
		} else {
			delete(fields, "cache")
		}
	}
	if o, ok := stringField(fields, "outcome"); ok && o != "" {
		if normalized, known := outcomeValues.normalize(o); known {
			fields["outcome"] = normalized
		} else {
			delete(fields, "outcome")
		}
	}
}

func dropEmpty(fields map[string]any) {
	for k, v := range fields {
		switch val := v.(type) {
		case nil:
			delete(fields, k)
		case string:
			if val == "" {
				delete(fields, k)
			}
		case fmt.Stringer:
			if val.String() == "" {
				delete(fields, k)
			}
		}
	}
}

func renderLine(fields map[string]any, format logFormat, order []string) ([]byte, error) {
	keys := rankKeys(fields, order)
	if format == formatJSON {
		return renderJSON(fields, keys)
	}
	return renderKV(fields, keys), nil
}

// rankKeys returns the schema-ordered keys first, then the rest sorted.
func rankKeys(fields map[string]any, order []string) []string {
	ranked := make([]string, 0, len(fields))
	inOrder := make(map[string]struct{}, len(order))
	for _, key := range order {
		if _, ok := fields[key]; ok {
			ranked = append(ranked, key)
			inOrder[key] = struct{}{}
		}
	}

	var rest []string
	for key := range fields {
		if _, ok := inOrder[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(ranked, rest...)
}

func renderJSON(fields map[string]any, keys []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		data, err := json.Marshal(fields[key])
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(key))
		buf.WriteByte(':')
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func renderKV(fields map[string]any, keys []string) []byte {
	var buf bytes.Buffer
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(kvValue(fields[key]))
	}
	return buf.Bytes()
}

func kvValue(val any) string {
	switch v := val.(type) {
	case string:
		if v != "" && strings.IndexFunc(v, needsQuote) >= 0 {
			return strconv.Quote(v)
		}
		return v
	case bool:
		return strconv.FormatBool(v)
	case int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		s := fmt.Sprint(v)
		if strings.IndexFunc(s, needsQuote) >= 0 {
			return strconv.Quote(s)
		}
		return s
	}
}

func needsQuote(r rune) bool {
	return r <= 32 || r == '=' || r == '"'
}

func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}
