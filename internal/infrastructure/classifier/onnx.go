package classifier

import (
	"context"
	"errors"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

var (
	ortOnce    sync.Once
	ortInitErr error
)

// initRuntime один раз на процесс инициализирует ONNX Runtime.
func initRuntime(libraryPath string) error {
	ortOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ONNXClassifier классификатор символов на модели ONNX.
// Сессия ONNX Runtime допускает параллельные вызовы Run.
type ONNXClassifier struct {
	session     *ort.DynamicAdvancedSession
	options     *ort.SessionOptions
	labels      entity.LabelMap
	channelLast bool
}

// NewONNXClassifier загружает модель и таблицу классов.
// channelLast добавляет к входу ось канала: [1, H, W, 1] вместо [1, H, W].
func NewONNXClassifier(modelPath string, labels entity.LabelMap, channelLast bool) (*ONNXClassifier, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, entity.NewError(entity.KindModelUnavailable, "read model info", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, entity.Errorf(entity.KindModelUnavailable, "read model info", "%s has no inputs or outputs", modelPath)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, entity.NewError(entity.KindModelUnavailable, "session options", err)
	}
	_ = options.SetIntraOpNumThreads(1)
	_ = options.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		options,
	)
	if err != nil {
		options.Destroy()
		return nil, entity.NewError(entity.KindModelUnavailable, "create session", err)
	}

	return &ONNXClassifier{
		session:     session,
		options:     options,
		labels:      labels,
		channelLast: channelLast,
	}, nil
}

// Classify запускает модель на символе и возвращает метку с максимальной уверенностью.
func (c *ONNXClassifier) Classify(ctx context.Context, glyph *entity.NormalizedGlyph) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", entity.NewError(entity.KindInference, "classify", err)
	}

	dims := glyph.Shape()
	if c.channelLast {
		dims = append(dims, 1)
	}
	input, err := ort.NewTensor(ort.NewShape(dims...), glyph.Pix)
	if err != nil {
		return "", entity.NewError(entity.KindInference, "input tensor", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := c.session.Run([]ort.Value{input}, outputs); err != nil {
		return "", entity.NewError(entity.KindInference, "run model", err)
	}
	if outputs[0] == nil {
		return "", entity.NewError(entity.KindInference, "run model", errors.New("no output"))
	}
	defer outputs[0].Destroy()

	scores, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return "", entity.Errorf(entity.KindInference, "run model", "unsupported output type %T", outputs[0])
	}
	return c.labels.Lookup(entity.Argmax(scores.GetData()))
}

// Close освобождает сессию ONNX Runtime.
func (c *ONNXClassifier) Close() error {
	var errs []error
	if c.session != nil {
		errs = append(errs, c.session.Destroy())
	}
	if c.options != nil {
		errs = append(errs, c.options.Destroy())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close onnx classifier: %w", err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.GlyphClassifier = (*ONNXClassifier)(nil)
