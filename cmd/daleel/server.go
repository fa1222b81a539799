package daleel

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	engine "github.com/HOUSSAM16ai/my-ai-project-sub004"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/config"
	"github.com/HOUSSAM16ai/my-ai-project-sub004/pkg/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the Daleel HTTP server",
	Long: `Start the Daleel HTTP server to provide REST API access to the retrieval engine.

The server provides endpoints for:
- Searching the corpus
- Ingesting documents
- Health checks

Configuration can be provided through config files, environment variables, or command-line flags.`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
	serverMode string
)

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Server host")
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Server port")
	serverCmd.Flags().StringVar(&serverMode, "mode", "debug", "Server mode (debug, release, test)")

	// Storage flags
	serverCmd.Flags().String("storage-driver", "", "Storage driver (postgres, memory)")
	serverCmd.Flags().String("storage-dsn", "", "PostgreSQL connection string")
	serverCmd.Flags().String("badger-path", "", "Vector index directory")

	// Embedding flags
	serverCmd.Flags().String("embedding-provider", "", "Embedding provider (embedeverything, openai, mock)")
	serverCmd.Flags().String("embedding-model", "", "Embedding model")

	// Reranker flags
	serverCmd.Flags().String("reranker-provider", "", "Reranker provider (embedeverything, openai, local, mock)")
	serverCmd.Flags().String("reranker-model", "", "Reranker model")

	// Refiner flags
	serverCmd.Flags().String("refiner-api-key", "", "LLM refiner API key")
	serverCmd.Flags().String("refiner-base-url", "", "LLM refiner base URL")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "Path to directory for the parquet search audit trail")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	overrideConfigWithFlags(cmd, cfg)

	log := newLogger(cfg)

	// Initialize the engine
	fmt.Println("Initializing engine...")
	client, err := engine.NewClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}
	defer client.Close()

	// Create and setup server
	srv := server.New(cfg, client)
	srv.Setup()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)

		// Create shutdown context with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Shutdown server
		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		fmt.Println("Server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	// Server flags
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serverMode
	}

	// Storage flags
	if cmd.Flags().Changed("storage-driver") {
		cfg.Storage.Driver, _ = cmd.Flags().GetString("storage-driver")
	}
	if cmd.Flags().Changed("storage-dsn") {
		cfg.Storage.DSN, _ = cmd.Flags().GetString("storage-dsn")
	}
	if cmd.Flags().Changed("badger-path") {
		cfg.Storage.BadgerPath, _ = cmd.Flags().GetString("badger-path")
	}

	// Embedding flags
	if cmd.Flags().Changed("embedding-provider") {
		cfg.Embedding.Provider, _ = cmd.Flags().GetString("embedding-provider")
	}
	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}

	// Reranker flags
	if cmd.Flags().Changed("reranker-provider") {
		cfg.Reranker.Provider, _ = cmd.Flags().GetString("reranker-provider")
	}
	if cmd.Flags().Changed("reranker-model") {
		cfg.Reranker.Model, _ = cmd.Flags().GetString("reranker-model")
	}

	// Refiner flags
	if cmd.Flags().Changed("refiner-api-key") {
		cfg.Refiner.APIKey, _ = cmd.Flags().GetString("refiner-api-key")
	}
	if cmd.Flags().Changed("refiner-base-url") {
		cfg.Refiner.BaseURL, _ = cmd.Flags().GetString("refiner-base-url")
	}

	// Telemetry flags
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}
}
