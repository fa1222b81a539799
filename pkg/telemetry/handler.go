// Package telemetry provides a slog.Handler that records search audit
// events to Parquet files for offline relevance analysis.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// AuditRecord is one search event as stored in Parquet.
type AuditRecord struct {
	ID         string    `parquet:"id"`
	Timestamp  time.Time `parquet:"timestamp"`
	Level      string    `parquet:"level"`
	Message    string    `parquet:"message"`
	Query      string    `parquet:"query"`
	Strategy   string    `parquet:"strategy"`
	Results    int       `parquet:"results"`
	ElapsedMs  int64     `parquet:"elapsed_ms"`
	Attributes string    `parquet:"attributes"` // JSON string
}

// auditMessages are the log messages captured into the audit trail.
var auditMessages = map[string]bool{
	"search complete":                        true,
	"waterfall exhausted with no candidates": true,
}

// AuditHandler is a slog.Handler that tees search events and errors into
// batched Parquet files while passing every record to the next handler.
type AuditHandler struct {
	next      slog.Handler
	outputDir string
	mu        sync.Mutex
	buffer    []AuditRecord
	batchSize int
}

// NewAuditHandler creates an AuditHandler writing to outputDir.
func NewAuditHandler(next slog.Handler, outputDir string) (*AuditHandler, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
	}

	return &AuditHandler{
		next:      next,
		outputDir: outputDir,
		batchSize: 100,
		buffer:    make([]AuditRecord, 0, 100),
	}, nil
}

// Enabled implements slog.Handler.
func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.next.Handle(ctx, r); err != nil {
		return err
	}

	// Capture search events plus anything at error level.
	if !auditMessages[r.Message] && r.Level < slog.LevelError {
		return nil
	}

	record := AuditRecord{
		ID:        uuid.New().String(),
		Timestamp: r.Time.UTC(),
		Level:     r.Level.String(),
		Message:   r.Message,
	}

	attrs := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "query":
			record.Query = a.Value.String()
		case "strategy":
			record.Strategy = a.Value.String()
		case "results":
			record.Results = int(a.Value.Int64())
		case "elapsed":
			record.ElapsedMs = a.Value.Duration().Milliseconds()
		default:
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})
	if len(attrs) > 0 {
		attrsJSON, _ := json.Marshal(attrs)
		record.Attributes = string(attrsJSON)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.buffer = append(h.buffer, record)
	if len(h.buffer) >= h.batchSize {
		return h.flush()
	}
	return nil
}

// Flush writes any buffered records out. Called on shutdown.
func (h *AuditHandler) Flush() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flush()
}

// flush writes the current buffer to a new Parquet file. Caller holds the
// lock.
func (h *AuditHandler) flush() error {
	if len(h.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("search_audit_%s_%d.parquet",
		time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(h.outputDir, filename)

	if err := parquet.WriteFile(path, h.buffer); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write telemetry parquet file: %v\n", err)
		return err
	}

	h.buffer = h.buffer[:0]
	return nil
}

// WithAttrs implements slog.Handler. Child handlers batch independently.
func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{
		next:      h.next.WithAttrs(attrs),
		outputDir: h.outputDir,
		batchSize: h.batchSize,
		buffer:    make([]AuditRecord, 0, h.batchSize),
	}
}

// WithGroup implements slog.Handler.
func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{
		next:      h.next.WithGroup(name),
		outputDir: h.outputDir,
		batchSize: h.batchSize,
		buffer:    make([]AuditRecord, 0, h.batchSize),
	}
}
