package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

// TranscriptionOptions настройки сборки результата.
type TranscriptionOptions struct {
	Order   GlyphOrder // порядок символов
	Workers int        // сколько символов классифицировать параллельно, 1 — последовательно
}

// TranscriptionService разбивает слово на символы, классифицирует их и склеивает результат.
type TranscriptionService struct {
	segmenter   port.GlyphSegmenter
	normalizer  port.GlyphNormalizer
	classifiers port.ClassifierRegistry
	order       GlyphOrder
	workers     int
}

// NewTranscriptionService создаёт сервис распознавания.
func NewTranscriptionService(
	segmenter port.GlyphSegmenter,
	normalizer port.GlyphNormalizer,
	classifiers port.ClassifierRegistry,
	opts TranscriptionOptions,
) *TranscriptionService {
	if opts.Order == "" {
		opts.Order = OrderReading
	}
	return &TranscriptionService{
		segmenter:   segmenter,
		normalizer:  normalizer,
		classifiers: classifiers,
		order:       opts.Order,
		workers:     max(opts.Workers, 1),
	}
}

// Transcribe распознаёт слово на изображении. Ошибка на любом символе отменяет
// весь результат: частичных строк не бывает.
func (s *TranscriptionService) Transcribe(ctx context.Context, script entity.Script, imageData []byte) (*entity.Transcription, error) {
	if s.segmenter == nil || s.normalizer == nil || s.classifiers == nil {
		return nil, entity.Errorf(entity.KindModelUnavailable, "transcribe", "service is not configured")
	}

	classifier, err := s.classifiers.Classifier(script)
	if err != nil {
		return nil, err
	}

	mask, err := s.segmenter.Binarize(imageData)
	if err != nil {
		return nil, err
	}
	located, err := s.segmenter.Locate(mask)
	if err != nil {
		return nil, err
	}
	regions := s.order.Apply(located)

	tl.Log(tl.Verbose, palette.CyanDim, "Located '%s' glyphs on %sx%s mask for '%s'",
		fmt.Sprint(len(regions)), fmt.Sprint(mask.Width), fmt.Sprint(mask.Height), string(script))

	glyphs, err := s.classifyAll(ctx, classifier, mask, regions)
	if err != nil {
		return nil, err
	}
	return entity.NewTranscription(script, glyphs), nil
}

func (s *TranscriptionService) classifyAll(ctx context.Context, classifier port.GlyphClassifier, mask *entity.BinaryMask, regions []entity.GlyphRegion) ([]entity.RecognizedGlyph, error) {
	glyphs := make([]entity.RecognizedGlyph, len(regions))

	if s.workers == 1 || len(regions) < 2 {
		for i, region := range regions {
			if err := ctx.Err(); err != nil {
				return nil, entity.NewError(entity.KindInference, "transcribe", err)
			}
			ch, err := s.classifyOne(ctx, classifier, mask, region)
			if err != nil {
				return nil, fmt.Errorf("glyph %d: %w", i, err)
			}
			glyphs[i] = entity.RecognizedGlyph{Region: region, Char: ch}
		}
		return glyphs, nil
	}

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	jobs := make(chan int)
	for w := 0; w < min(s.workers, len(regions)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ch, err := s.classifyOne(workCtx, classifier, mask, regions[i])
				if err != nil {
					once.Do(func() {
						firstErr = fmt.Errorf("glyph %d: %w", i, err)
						cancel()
					})
					continue
				}
				// Каждый индекс пишет ровно один воркер.
				glyphs[i] = entity.RecognizedGlyph{Region: regions[i], Char: ch}
			}
		}()
	}

feed:
	for i := range regions {
		select {
		case jobs <- i:
		case <-workCtx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, entity.NewError(entity.KindInference, "transcribe", err)
	}
	return glyphs, nil
}

// classifyOne вырезает символ из исходной маски, нормализует и классифицирует его.
func (s *TranscriptionService) classifyOne(ctx context.Context, classifier port.GlyphClassifier, mask *entity.BinaryMask, region entity.GlyphRegion) (string, error) {
	crop, err := mask.Crop(region)
	if err != nil {
		return "", err
	}
	glyph, err := s.normalizer.Normalize(crop)
	if err != nil {
		return "", err
	}
	ch, err := classifier.Classify(ctx, glyph)
	if err != nil {
		var pipelineErr *entity.Error
		if !errors.As(err, &pipelineErr) {
			err = entity.NewError(entity.KindInference, "classify", err)
		}
		return "", err
	}
	if ch == "" {
		return "", entity.Errorf(entity.KindInference, "classify", "classifier returned an empty label")
	}
	return ch, nil
}
