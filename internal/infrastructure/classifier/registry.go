package classifier

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"glyphscan/internal/domain/entity"
	"glyphscan/internal/domain/port"
)

// Бэкенды классификатора.
const (
	BackendONNX      = "onnx"
	BackendTesseract = "tesseract"
)

// Options настройки загрузки моделей.
type Options struct {
	ModelDir       string // корень каталогов model/<script>/
	Backend        string // onnx или tesseract
	RuntimeLibrary string // путь к libonnxruntime, пусто — путь по умолчанию
	ChannelLast    bool   // модель ждёт вход [1, H, W, 1]
}

// ModelPath возвращает путь к модели письменности: <dir>/<script>/<script>model.onnx.
func ModelPath(dir string, script entity.Script) string {
	return filepath.Join(dir, string(script), string(script)+"model.onnx")
}

// LabelMapPath возвращает путь к таблице классов: <dir>/<script>/k49_classmap.csv.
func LabelMapPath(dir string, script entity.Script) string {
	return filepath.Join(dir, string(script), "k49_classmap.csv")
}

// Registry хранит классификаторы письменностей.
// Заполняется при старте процесса и дальше только читается, поэтому блокировок нет.
type Registry struct {
	classifiers map[entity.Script]port.GlyphClassifier
	failures    map[entity.Script]error
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		classifiers: make(map[entity.Script]port.GlyphClassifier),
		failures:    make(map[entity.Script]error),
	}
}

// LoadRegistry загружает классификатор для каждой письменности.
// Письменность, модель которой не загрузилась, остаётся в реестре с ошибкой:
// её запросы завершаются ErrModelUnavailable, остальные работают.
func LoadRegistry(opts Options, scripts []entity.Script) *Registry {
	r := NewRegistry()
	for _, script := range scripts {
		classifier, err := load(opts, script)
		if err != nil {
			tl.Log(tl.Warning, palette.YellowBold, "Classifier for '%s' is %s: '%s'", string(script), "unavailable", err.Error())
			r.failures[script] = err
			continue
		}
		tl.Log(tl.Notice, palette.GreenBold, "Loaded '%s' classifier for '%s'", opts.Backend, string(script))
		r.Register(script, classifier)
	}
	return r
}

func load(opts Options, script entity.Script) (port.GlyphClassifier, error) {
	switch opts.Backend {
	case BackendONNX, "":
		if err := initRuntime(opts.RuntimeLibrary); err != nil {
			return nil, entity.NewError(entity.KindModelUnavailable, "init onnxruntime", err)
		}
		labels, err := LoadLabelMap(LabelMapPath(opts.ModelDir, script))
		if err != nil {
			return nil, err
		}
		tl.Log(tl.Info1, palette.Cyan, "Read '%s' labels from '%s'", fmt.Sprint(len(labels)), LabelMapPath(opts.ModelDir, script))
		c, err := NewONNXClassifier(ModelPath(opts.ModelDir, script), labels, opts.ChannelLast)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendTesseract:
		c, err := NewTesseractClassifier(script)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, entity.Errorf(entity.KindModelUnavailable, "load classifier", "unknown backend %q", opts.Backend)
}

// Register добавляет классификатор письменности. Вызывается только до начала обслуживания запросов.
func (r *Registry) Register(script entity.Script, classifier port.GlyphClassifier) {
	r.classifiers[script] = classifier
	delete(r.failures, script)
}

// Classifier возвращает классификатор письменности.
func (r *Registry) Classifier(script entity.Script) (port.GlyphClassifier, error) {
	if c, ok := r.classifiers[script]; ok {
		return c, nil
	}
	if err := r.failures[script]; err != nil {
		return nil, fmt.Errorf("%s: %w", script, err)
	}
	return nil, entity.Errorf(entity.KindModelUnavailable, "classifier", "no classifier for %q", script)
}

// Available возвращает письменности с загруженным классификатором в порядке entity.Scripts.
func (r *Registry) Available() []entity.Script {
	var out []entity.Script
	for _, s := range entity.Scripts() {
		if _, ok := r.classifiers[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Close освобождает ресурсы всех классификаторов.
func (r *Registry) Close() error {
	var errs []error
	for script, c := range r.classifiers {
		closer, ok := c.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", script, err))
		}
	}
	return errors.Join(errs...)
}

// Проверка реализации интерфейса
var _ port.ClassifierRegistry = (*Registry)(nil)
