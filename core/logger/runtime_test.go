package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogEventCarriesEventAndContextMeta(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{ReplaceAttr: renameStandardKeys}))

	ctx := WithRID(Background(), "42:7:9")
	LogEvent(ctx, log.With("component", "tg"), slog.LevelInfo, "handler.handled",
		slog.String("status", "ok"),
		slog.String("rid", RIDFrom(ctx)),
	)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	require.Equal(t, "handler.handled", record["event"])
	require.Equal(t, "tg", record["component"])
	require.Equal(t, "42:7:9", record["rid"])
	require.Contains(t, record, "ts")
	require.NotContains(t, record, "msg")
}

func TestBuildAndCompactRID(t *testing.T) {
	rid := BuildRID(42, -100123, 777)
	require.Equal(t, "42:-100123:777", rid)

	require.Equal(t, "not-a-rid", CompactRID("not-a-rid"))
	require.Equal(t, "1.2.3", CompactRID("1:2:3"))
}

func TestSanitizeLimit(t *testing.T) {
	require.Equal(t, "abc", Sanitize("a\x00b\x1bc"))
	require.Equal(t, "tab\tkept", Sanitize("tab\tkept"))
	require.Equal(t, "аб", SanitizeLimit("абвгд", 2))
	require.Equal(t, "", SanitizeLimit("anything", 0))
}

func TestUpdateMetaRoundTrip(t *testing.T) {
	ctx := WithUpdateMeta(Background(), 5, 10, -20)
	require.Equal(t, 5, UpdateIDFrom(ctx))
	require.Equal(t, int64(10), UserIDFrom(ctx))
	require.Equal(t, int64(-20), ChatIDFrom(ctx))
}
