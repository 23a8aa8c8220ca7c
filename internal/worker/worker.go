package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"creative-editor/internal/broker"
	kafka_impl "creative-editor/internal/broker/kafka"
	"creative-editor/internal/domain"
	"creative-editor/internal/usecase/processor/operations"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type imageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

type previewRenderer interface {
	Render(data []byte) ([]byte, error)
}

type previewStore interface {
	SaveObject(ctx context.Context, key string, data []byte, contentType string) error
}

// PreviewWorker renders a preview for every applied edit it consumes.
type PreviewWorker struct {
	consumer    broker.Consumer
	fetcher     imageFetcher
	renderer    previewRenderer
	store       previewStore
	logger      *zlog.Zerolog
	retries     retry.Strategy
	concurrency int
	wg          sync.WaitGroup
}

type Deps struct {
	Consumer broker.Consumer
	Fetcher  imageFetcher
	Renderer previewRenderer
	Store    previewStore
}

func NewPreviewWorker(deps Deps, concurrency int, retries retry.Strategy, logger *zlog.Zerolog) *PreviewWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PreviewWorker{
		consumer:    deps.Consumer,
		fetcher:     deps.Fetcher,
		renderer:    deps.Renderer,
		store:       deps.Store,
		logger:      logger,
		retries:     retries,
		concurrency: concurrency,
	}
}

// Run blocks until ctx is cancelled and every in-flight message is finished.
func (w *PreviewWorker) Run(ctx context.Context) {
	w.logger.Info().Int("concurrency", w.concurrency).Msg("Starting preview workers")

	messages := make(chan *broker.Message, w.concurrency*2)
	w.consumer.Start(ctx, messages, w.retries)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processWorker(ctx, id, messages)
		}(i)
	}

	<-ctx.Done()
	w.wg.Wait()
	w.logger.Info().Msg("Preview workers stopped")
}

func (w *PreviewWorker) processWorker(ctx context.Context, id int, messages <-chan *broker.Message) {
	w.logger.Debug().Int("worker_id", id).Msg("Worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Int("worker_id", id).Msg("Worker stopping")
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			w.handle(ctx, id, msg)
		}
	}
}

func (w *PreviewWorker) handle(ctx context.Context, id int, msg *broker.Message) {
	startTime := time.Now()
	if err := w.safeProcessMessage(ctx, id, msg); err != nil {
		w.logger.Error().
			Err(err).
			Int("worker_id", id).
			Int64("offset", msg.Offset).
			Msg("Failed to process message")
		return
	}

	if err := w.consumer.Commit(ctx, msg); err != nil {
		w.logger.Error().
			Err(err).
			Int("worker_id", id).
			Int64("offset", msg.Offset).
			Msg("Failed to commit message after successful processing")
		return
	}
	w.logger.Debug().
		Int("worker_id", id).
		Int64("offset", msg.Offset).
		Dur("duration", time.Since(startTime)).
		Msg("Message processed and committed")
}

func (w *PreviewWorker) safeProcessMessage(ctx context.Context, workerID int, msg *broker.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Int("worker_id", workerID).
				Interface("panic", r).
				Int64("offset", msg.Offset).
				Msg("Panic recovered while processing message")
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.processMessage(ctx, msg)
}

func (w *PreviewWorker) processMessage(ctx context.Context, msg *broker.Message) error {
	event, err := kafka_impl.DecodeEditApplied(msg)
	if err != nil {
		w.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("Dropping malformed event")
		// committed and skipped
		return nil
	}

	data, err := w.fetcher.FetchImage(ctx, event.AssetURL)
	if err != nil {
		return fmt.Errorf("failed to fetch asset %s: %w", event.AssetID, err)
	}

	preview, err := w.renderer.Render(data)
	if err != nil {
		w.logger.Error().Err(err).Str("asset_id", event.AssetID).Msg("Preview render failed, skipping")
		return nil
	}

	key := domain.PreviewPath(event.AssetID, event.Version)
	if err := w.store.SaveObject(ctx, key, preview, operations.ContentType(domain.FormatJPEG)); err != nil {
		return fmt.Errorf("failed to save preview %s: %w", key, err)
	}

	w.logger.Info().
		Str("asset_id", event.AssetID).
		Int64("version", event.Version).
		Str("path", key).
		Msg("Preview stored")
	return nil
}
