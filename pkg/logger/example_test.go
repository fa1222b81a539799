package logger_test

import (
	"log/slog"

	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/logger"
)

func ExampleNewDefaultLogger() {
	// Create a logger with default settings
	log := logger.NewDefaultLogger(slog.LevelDebug)

	// Log different levels
	log.Debug("This is a debug message")
	log.Info("This is an info message")
	log.Info("Indexed documents")         // Will be green in terminal
	log.Warn("This is a warning message") // Will be yellow in terminal
	log.Error("This is an error message") // Will be red in terminal
}

func ExampleNewDefaultLogger_attributes() {
	// Create a logger with custom configuration
	log := logger.NewDefaultLogger(slog.LevelInfo)

	// Log with attributes
	log.Info("search complete", "query", "suites", "results", 5)
	log.Info("indexed documents", "count", 42)                      // Green
	log.Warn("dense source degraded", "error", "index unavailable") // Yellow
	log.Error("content store unreachable", "error", "timeout")      // Red
}
