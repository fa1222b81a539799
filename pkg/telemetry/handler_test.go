package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *AuditHandler {
	t.Helper()
	next := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	h, err := NewAuditHandler(next, t.TempDir())
	require.NoError(t, err)
	return h
}

func TestAuditHandlerCapturesSearchEvents(t *testing.T) {
	h := newTestHandler(t)
	logger := slog.New(h)

	logger.Info("search complete",
		"query", "تمارين الدوال",
		"strategy", "strict",
		"results", 3,
		"elapsed", 120*time.Millisecond,
		"refined", false)

	require.Len(t, h.buffer, 1)
	record := h.buffer[0]
	assert.Equal(t, "search complete", record.Message)
	assert.Equal(t, "strict", record.Strategy)
	assert.Equal(t, 3, record.Results)
	assert.Equal(t, int64(120), record.ElapsedMs)
	assert.Contains(t, record.Attributes, "refined")
	assert.NotEmpty(t, record.ID)
}

func TestAuditHandlerIgnoresOtherInfoLogs(t *testing.T) {
	h := newTestHandler(t)
	logger := slog.New(h)

	logger.Info("server starting", "port", 8080)
	assert.Empty(t, h.buffer)
}

func TestAuditHandlerCapturesErrors(t *testing.T) {
	h := newTestHandler(t)
	logger := slog.New(h)

	logger.Error("lexical query failed", "error", "connection refused")
	require.Len(t, h.buffer, 1)
	assert.Equal(t, "ERROR", h.buffer[0].Level)
}

func TestAuditHandlerFlushWritesParquet(t *testing.T) {
	next := slog.NewTextHandler(io.Discard, nil)
	dir := t.TempDir()
	h, err := NewAuditHandler(next, dir)
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("search complete", "strategy", "relaxed", "results", 1)

	require.NoError(t, h.Flush())
	assert.Empty(t, h.buffer)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAuditHandlerEnabledFollowsNext(t *testing.T) {
	next := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn})
	h, err := NewAuditHandler(next, t.TempDir())
	require.NoError(t, err)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}
