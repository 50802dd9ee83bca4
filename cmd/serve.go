package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/streamlex/live-translator/api"
	"github.com/streamlex/live-translator/api/live"
	"github.com/streamlex/live-translator/api/types"
	"github.com/streamlex/live-translator/internal/database"
	"github.com/streamlex/live-translator/internal/models"
	"github.com/streamlex/live-translator/internal/pipeline"
	"github.com/streamlex/live-translator/internal/services/history"
	"github.com/streamlex/live-translator/pkg/config"
	"github.com/streamlex/live-translator/pkg/logging"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Live Translator API server with the configured settings.

The server exposes the pipeline control endpoints, the transcription
history and a WebSocket feed of live results.

Example:
  live-translator serve
  live-translator serve --port 9090
  live-translator serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	log := logging.WithComponent("serve")

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(&models.TranscriptionRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	coordinator, _, err := buildCoordinator(cfg)
	if err != nil {
		return err
	}

	hub := live.NewHub()

	var historyService history.Service
	if cfg.History.Enabled {
		historyService = history.NewService(history.NewRepository(db.DB), cfg.History.MaxResults)
	}

	wireCallbacks(coordinator, hub, historyService, cfg.Pipeline.TargetLanguage)

	deps := &types.Dependencies{
		DB:       db,
		Pipeline: coordinator,
		History:  historyService,
		Live:     hub,
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort), cfg.Server)
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	log.WithField("address", fmt.Sprintf("%s:%d", serverHost, serverPort)).Info("starting server")

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-stop:
		log.Info("shutting down")
	case err := <-serverErr:
		log.WithError(err).Error("server failed")
	}

	// Stop the pipeline before the HTTP listener so in-flight segments
	// drain and the final state lands in the history database.
	coordinator.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
		return err
	}

	log.Info("server stopped")
	return nil
}

// wireCallbacks connects the pipeline's outbound events to the
// WebSocket hub and the history store.
func wireCallbacks(coordinator *pipeline.Coordinator, hub *live.Hub, historyService history.Service, targetLang string) {
	log := logging.WithComponent("events")

	coordinator.SetTranscriptionCallback(func(result models.TranscriptionResult) {
		hub.Broadcast(live.Event{Type: "transcription", Payload: result})

		if historyService != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := historyService.SaveResult(ctx, coordinator.SessionID(), targetLang, result); err != nil {
				log.WithError(err).Warn("failed to persist transcription")
			}
		}
	})

	coordinator.SetErrorCallback(func(message string) {
		hub.Broadcast(live.Event{Type: "error", Payload: map[string]string{"message": message}})
	})

	coordinator.SetStateCallback(func(state pipeline.State) {
		hub.Broadcast(live.Event{Type: "state", Payload: map[string]string{"state": string(state)}})
	})
}
