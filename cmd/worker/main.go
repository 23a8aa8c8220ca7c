package main

import (
	"creative-editor/internal/app/worker"
	"creative-editor/internal/config"
	"os"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}
	zlog.Logger.Info().Str("env", cfg.Env).Msg("Starting preview worker")

	previewWorker, err := worker.NewWorker(cfg, &zlog.Logger)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to create preview worker")
	}

	if err := previewWorker.Run(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Preview worker failed")
	}

	zlog.Logger.Info().Msg("Preview worker exited successfully")
	os.Exit(0)
}
