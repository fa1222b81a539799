package daleel

import (
	"fmt"
	"log/slog"
	"os"

	engine "github.com/HOUSSAM16ai/my-ai-project-sub004"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/config"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/logger"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/telemetry"
)

// newLogger builds the process logger: colored terminal output, optionally
// teed into the parquet search audit trail.
func newLogger(cfg *config.Config) *slog.Logger {
	handler := logger.NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	})

	if cfg.Telemetry.ParquetPath != "" {
		if err := os.MkdirAll(cfg.Telemetry.ParquetPath, 0755); err != nil {
			fmt.Printf("Warning: failed to create telemetry directory: %v\n", err)
			return slog.New(handler)
		}
		auditHandler, err := telemetry.NewAuditHandler(handler, cfg.Telemetry.ParquetPath)
		if err != nil {
			fmt.Printf("Warning: failed to initialize search audit trail: %v\n", err)
			return slog.New(handler)
		}
		fmt.Printf("Search audit trail enabled at: %s\n", cfg.Telemetry.ParquetPath)
		return slog.New(auditHandler)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// initEngine loads configuration and wires a full engine client.
func initEngine() (*engine.Client, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg)

	client, err := engine.NewClient(cfg, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return client, cfg, log, nil
}
