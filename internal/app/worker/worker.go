package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafka_impl "creative-editor/internal/broker/kafka"
	"creative-editor/internal/client/api"
	"creative-editor/internal/config"
	minio_repo "creative-editor/internal/repository/blob/minio"
	"creative-editor/internal/usecase/processor"
	preview "creative-editor/internal/worker"

	"github.com/wb-go/wbf/zlog"
)

type Worker struct {
	cfg      *config.Config
	logger   *zlog.Zerolog
	consumer *kafka_impl.ConsumerClient
	previews *preview.PreviewWorker
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	if cfg.API.ServiceToken == "" {
		return nil, fmt.Errorf("api service token is required for the preview worker")
	}

	fileRepo, err := minio_repo.NewMinIORepository(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.Timeout,
		api.NewMemoryTokenStore(cfg.API.ServiceToken),
		api.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	)
	consumer := kafka_impl.NewConsumerClient(cfg, logger)
	previewer := processor.NewPreviewer(cfg.Worker.ThumbnailSize, cfg.Worker.JPEGQuality, logger)

	logger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.EventsTopic).
		Str("group", cfg.Kafka.GroupID).
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("Worker configuration")

	previews := preview.NewPreviewWorker(preview.Deps{
		Consumer: consumer,
		Fetcher:  client,
		Renderer: previewer,
		Store:    fileRepo,
	}, cfg.Worker.Concurrency, cfg.DefaultRetryStrategy(), logger)

	return &Worker{
		cfg:      cfg,
		logger:   logger,
		consumer: consumer,
		previews: previews,
	}, nil
}

func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		w.logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal, stopping worker...")
		cancel()
	}()

	w.previews.Run(ctx)

	if err := w.consumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close consumer")
	}
	w.logger.Info().Msg("Worker stopped gracefully")
	return nil
}
