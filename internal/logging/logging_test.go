package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "json")
	logger.Info("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "v", rec["k"])
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "error", "text")
	logger.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestNew_WithFile(t *testing.T) {
	logger := New(Options{Level: "info", Format: "text", File: filepath.Join(t.TempDir(), "app.log")})
	require.NotNil(t, logger)
	logger.Info("written to file")
}

func TestRotator_UsesOptions(t *testing.T) {
	r := rotator(Options{File: "app.log", MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 7})
	assert.Equal(t, "app.log", r.Filename)
	assert.Equal(t, 10, r.MaxSize)
	assert.Equal(t, 2, r.MaxBackups)
	assert.Equal(t, 7, r.MaxAge)

	r = rotator(Options{File: "app.log"})
	assert.Equal(t, 50, r.MaxSize)
	assert.Equal(t, 5, r.MaxBackups)
	assert.Equal(t, 30, r.MaxAge)
}

func TestRequestIDAndLogger(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Equal(t, slog.Default(), FromContext(ctx))

	var buf bytes.Buffer
	custom := NewWithWriter(&buf, "info", "json")
	ctx = WithLogger(WithRequestID(ctx, "req-123"), custom)

	assert.Equal(t, "req-123", RequestID(ctx))
	L(ctx).Info("tagged")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-123", rec["request_id"])
}
