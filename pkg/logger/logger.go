// Package logger provides a colored slog handler for terminal output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// ColorHandler is a slog.Handler that colorizes terminal output by level.
// Warnings are yellow, errors are red, and index/storage progress messages
// are green.
type ColorHandler struct {
	mu     *sync.Mutex
	out    io.Writer
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
}

// NewColorHandler creates a new color handler writing to out.
func NewColorHandler(out io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColorHandler{
		mu:   &sync.Mutex{},
		out:  out,
		opts: *opts,
	}
}

// NewDefaultLogger creates a colored logger writing to stderr at the given
// level.
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Enabled implements slog.Handler.
func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle implements slog.Handler.
func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format(time.RFC3339))
	sb.WriteString(" ")
	sb.WriteString(r.Level.String())
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, attr := range h.attrs {
		writeAttr(&sb, prefix, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&sb, prefix, attr)
		return true
	})
	sb.WriteString("\n")

	line := sb.String()
	if color := levelColor(r.Level, r.Message); color != "" {
		line = color + line + colorReset
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

// WithAttrs implements slog.Handler.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

// WithGroup implements slog.Handler.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

func writeAttr(sb *strings.Builder, prefix string, attr slog.Attr) {
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	fmt.Fprintf(sb, " %s=%v", key, attr.Value.Resolve().Any())
}

// greenWords marks messages about index and storage progress.
var greenWords = []string{"indexed", "indexing", "persist", "flushed"}

func levelColor(level slog.Level, msg string) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	}
	lower := strings.ToLower(msg)
	for _, w := range greenWords {
		if strings.Contains(lower, w) {
			return colorGreen
		}
	}
	return ""
}
