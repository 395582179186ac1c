package entity

import (
	"errors"
	"fmt"
)

// ErrorKind вид ошибки конвейера распознавания
type ErrorKind string

const (
	KindDecode           ErrorKind = "decode"            // байты не декодируются как изображение
	KindEmptyRegion      ErrorKind = "empty_region"      // область символа нулевой площади
	KindModelUnavailable ErrorKind = "model_unavailable" // модель или таблица меток не загружены
	KindInference        ErrorKind = "inference"         // модель не выдала результат
	KindUnknownScript    ErrorKind = "unknown_script"    // неизвестная письменность
	KindUnknown          ErrorKind = "unknown"
)

// Error ошибка конвейера с видом и операцией.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Сторожевые значения для errors.Is: сравнение идёт только по виду.
var (
	ErrDecode           = &Error{Kind: KindDecode}
	ErrEmptyRegion      = &Error{Kind: KindEmptyRegion}
	ErrModelUnavailable = &Error{Kind: KindModelUnavailable}
	ErrInference        = &Error{Kind: KindInference}
	ErrUnknownScript    = &Error{Kind: KindUnknownScript}
)

// NewError создаёт ошибку заданного вида.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf создаёт ошибку заданного вида с форматированным описанием.
func Errorf(kind ErrorKind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по виду.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf возвращает вид первой ошибки конвейера в цепочке.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
