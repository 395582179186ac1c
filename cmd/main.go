package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"glyphscan/config"
	"glyphscan/internal/api/rest"
	"glyphscan/internal/api/telegram"
	app "glyphscan/internal/application"
	"glyphscan/internal/container"
	"glyphscan/internal/domain/entity"
	"glyphscan/internal/infrastructure/classifier"
	"glyphscan/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	xerr.QuitIfError(err, "Failed to load config")
	tl.LogJSON(tl.Verbose, palette.CyanDim, "glyphscan configuration", cfg)

	order, err := app.ParseGlyphOrder(cfg.GlyphOrder)
	xerr.QuitIfError(err, "Failed to parse GLYPH_ORDER")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Сегментатор и нормализатор
	segmenter := vision.NewSegmenter(vision.Params{
		Threshold:  uint8(cfg.BinaryThreshold),
		KernelSize: cfg.DilateKernel,
		Iterations: cfg.DilateIterations,
		MaxPixels:  cfg.MaxImagePixels,
	})
	normalizer := vision.NewNormalizer(cfg.GlyphWidth, cfg.GlyphHeight)

	// Модели загружаются один раз и дальше только читаются
	registry := classifier.LoadRegistry(classifier.Options{
		ModelDir:       cfg.ModelDir,
		Backend:        cfg.ClassifierBackend,
		RuntimeLibrary: cfg.ONNXRuntimeLib,
		ChannelLast:    cfg.ModelChannelLast,
	}, entity.Scripts())
	defer func() {
		if err := registry.Close(); err != nil {
			tl.Log(tl.Warning, palette.Yellow, "Failed to release classifiers: '%s'", err.Error())
		}
	}()
	if len(registry.Available()) == 0 {
		tl.Log(tl.Warning, palette.YellowBold, "No classifier is loaded, every request will fail until models are placed in '%s'", cfg.ModelDir)
	}

	// Собираем сервисы приложения
	appContainer := container.New(segmenter, normalizer, registry, app.TranscriptionOptions{
		Order:   order,
		Workers: cfg.ClassifyWorkers,
	})

	server := rest.NewServer(rest.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		CORSOrigins:    cfg.CORSOrigins,
		Segmenter:      segmenter.Backend(),
	}, appContainer.TranscriptionService, registry)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(cfg.HTTPAddr)
	}()

	// Telegram-бот включается токеном
	botDone := make(chan struct{})
	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.TranscriptionService)
		xerr.QuitIfError(err, "Failed to create Telegram bot")

		go func() {
			defer close(botDone)
			tl.Log(tl.Notice, palette.BlueBold, "Telegram bot is %s", "running")
			if err := bot.Run(ctx); err != nil {
				tl.Log(tl.Error, palette.RedBold, "Telegram bot stopped: '%s'", err.Error())
			}
		}()
	} else {
		close(botDone)
	}

	select {
	case <-ctx.Done():
		tl.Log(tl.Notice, palette.BlueBold, "Shutting down: '%s'", context.Cause(ctx).Error())
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			tl.Log(tl.Error, palette.RedBold, "HTTP server failed: '%s'", err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		tl.Log(tl.Warning, palette.Yellow, "HTTP server shutdown: '%s'", err.Error())
	}

	// Классификаторы освобождаются только после того, как бот дообработал своё сообщение.
	stop()
	<-botDone
}
