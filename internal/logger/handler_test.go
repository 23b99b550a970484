package logger

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// captureLine renders whatever emit logs through a fresh handler and
// returns the trimmed output.
func captureLine(t *testing.T, format logFormat, emit func(log *slog.Logger)) string {
	t.Helper()

	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	log := slog.New(newLineHandler(lineOptions{
		level:  slog.LevelInfo,
		writer: aw,
		format: format,
	}))

	emit(log)

	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return strings.TrimSpace(buf.String())
}

func TestLineHandlerKVOrder(t *testing.T) {
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		ctx := WithRID(Background(), "rid-123")
		ctx = WithUpdateMeta(ctx, 42, 7, 9)
		LogEvent(ctx, log.With("component", "tmdb"), slog.LevelInfo, "tmdb.search",
			slog.String("status", "ok"),
			slog.String("query", "inception"),
		)
	})
	if line == "" {
		t.Fatal("expected log line")
	}

	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=tmdb", "event=tmdb.search", "status=ok", "rid=rid-123"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestLineHandlerJSONOrder(t *testing.T) {
	line := captureLine(t, formatJSON, func(log *slog.Logger) {
		ctx := WithRID(Background(), "rid-json")
		ctx = WithUpdateMeta(ctx, 11, 22, 33)
		LogEvent(ctx, log.With("component", "store"), slog.LevelError, "favorites.save",
			slog.String("status", "fail"),
			slog.String("err", "boom"),
			slog.String("err_code", "STORE_WRITE"),
		)
	})
	if !strings.HasPrefix(line, "{") {
		t.Fatalf("expected JSON, got %s", line)
	}

	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"store"`, `"event":"favorites.save"`, `"status":"fail"`, `"rid":"rid-json"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestLineHandlerCompactRID(t *testing.T) {
	rawRID := "123:456:789"
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		ctx := WithRID(Background(), rawRID)
		LogEvent(ctx, log.With("component", "tg"), slog.LevelInfo, "rid.test",
			slog.String("status", "ok"),
		)
	})

	if !strings.Contains(line, "rid="+CompactRID(rawRID)) {
		t.Fatalf("expected compact rid, got %s", line)
	}
	if strings.Contains(line, "rid_full=") {
		t.Fatalf("rid_full should be omitted in KV output, got %s", line)
	}
}

func TestLineHandlerCompactRIDJSON(t *testing.T) {
	rawRID := "12:34:56"
	line := captureLine(t, formatJSON, func(log *slog.Logger) {
		ctx := WithRID(Background(), rawRID)
		LogEvent(ctx, log.With("component", "tg"), slog.LevelInfo, "rid.test",
			slog.String("status", "ok"),
		)
	})

	if !strings.Contains(line, `"rid":"`+CompactRID(rawRID)+`"`) {
		t.Fatalf("expected compact rid in JSON, got %s", line)
	}
	if !strings.Contains(line, `"rid_full":"`+rawRID+`"`) {
		t.Fatalf("expected rid_full in JSON output, got %s", line)
	}
	if !strings.Contains(line, `"ts_unix_nano"`) {
		t.Fatalf("expected ts_unix_nano in JSON output, got %s", line)
	}
}

func TestLineHandlerFlattensGroupAttrs(t *testing.T) {
	line := captureLine(t, formatKV, func(log *slog.Logger) {
		LogEvent(Background(), log, slog.LevelInfo, "peer.dial",
			slog.Duration("elapsed", 1500*time.Microsecond),
			slog.Group("peer", slog.String("host", "example.com")),
		)
	})

	for _, want := range []string{"event=peer.dial", "elapsed_ms=2", "peer.host=example.com"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %s", want, line)
		}
	}
}
