package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	kafka_impl "creative-editor/internal/broker/kafka"
	"creative-editor/internal/client/api"
	"creative-editor/internal/config"
	editor_h "creative-editor/internal/http-server/handler/editor"
	"creative-editor/internal/http-server/router"
	minio_repo "creative-editor/internal/repository/blob/minio"
	editor_uc "creative-editor/internal/usecase/editor"
	"creative-editor/internal/usecase/processor"

	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg      *config.Config
	server   *http.Server
	logger   *zlog.Zerolog
	editor   *editor_uc.Usecase
	producer *kafka_impl.ProducerClient
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	fileRepo, err := minio_repo.NewMinIORepository(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	compositor, err := processor.NewCompositor(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create compositor: %w", err)
	}

	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.Timeout,
		api.NewMemoryTokenStore(cfg.API.ServiceToken),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	)
	poller := api.NewPoller(client, cfg.API.PollInterval, cfg.API.PollBackoff)

	producer := kafka_impl.NewProducerClient(cfg)
	events := kafka_impl.NewEventPublisher(producer, cfg.DefaultRetryStrategy())

	editorUsecase, err := editor_uc.NewEditorUsecase(editor_uc.Deps{
		API:        client,
		Poller:     poller,
		Blobs:      fileRepo,
		Previews:   fileRepo,
		Events:     events,
		Compositor: compositor,
	}, logger, cfg.RefreshRetryStrategy(), cfg.Editor.ImageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create editor usecase: %w", err)
	}

	editorHandler := editor_h.NewEditorHandler(editorUsecase, logger, cfg.Server.MaxUploadSize)

	h := &router.Handler{
		EditorHandler: editorHandler,
	}

	mux := router.SetupRouter(h)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info().
		Str("api", cfg.API.BaseURL).
		Str("bucket", cfg.Minio.Bucket).
		Str("topic", cfg.Kafka.EventsTopic).
		Msg("Editor configuration")

	return &App{
		cfg:      cfg,
		server:   server,
		logger:   logger,
		editor:   editorUsecase,
		producer: producer,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Str("addr", a.cfg.Server.Addr).Msg("Starting server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.handleSignals(cancel)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		return err
	case <-ctx.Done():
		a.logger.Info().Msg("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error().Err(err).Msg("Server shutdown failed")
		}

		a.editor.CloseAll(shutdownCtx)

		if err := a.producer.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close producer")
		}

		a.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (a *App) handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	a.logger.Info().Str("signal", sig.String()).Msg("Received signal")
	cancel()
}
