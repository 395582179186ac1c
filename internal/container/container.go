package container

import (
	app "glyphscan/internal/application"
	"glyphscan/internal/domain/port"
)

// Container сервисы приложения, собранные из адаптеров инфраструктуры
type Container struct {
	TranscriptionService *app.TranscriptionService
}

func New(
	segmenter port.GlyphSegmenter,
	normalizer port.GlyphNormalizer,
	classifiers port.ClassifierRegistry,
	opts app.TranscriptionOptions,
) *Container {
	transcriptionService := app.NewTranscriptionService(segmenter, normalizer, classifiers, opts)

	return &Container{
		TranscriptionService: transcriptionService,
	}
}
