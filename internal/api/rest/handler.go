package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"glyphscan/internal/domain/entity"
)

// MsgProcessError единственное сообщение об ошибке, которое видит клиент.
const MsgProcessError = "Error in the process"

// Transcriber распознаёт слово на изображении
type Transcriber interface {
	Transcribe(ctx context.Context, script entity.Script, imageData []byte) (*entity.Transcription, error)
}

// HealthReporter сообщает, для каких письменностей загружены модели
type HealthReporter interface {
	Available() []entity.Script
}

// transcribeResponse тело ответа: при ошибке result равен null.
type transcribeResponse struct {
	Result *string `json:"result"`
	Error  string  `json:"error"`
}

type healthResponse struct {
	Status    string          `json:"status"`
	Scripts   []entity.Script `json:"scripts"`
	Segmenter string          `json:"segmenter,omitempty"`
}

func successResponse(text string) transcribeResponse {
	return transcribeResponse{Result: &text, Error: ""}
}

func failureResponse(msg string) transcribeResponse {
	return transcribeResponse{Result: nil, Error: msg}
}

// handler обработчики HTTP-маршрутов
type handler struct {
	transcriber Transcriber
	health      HealthReporter
	segmenter   string
}

// transcribe возвращает обработчик маршрута письменности.
// Любая ошибка, включая панику, сворачивается в одно сообщение MsgProcessError.
func (h *handler) transcribe(script entity.Script) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = h.fail(c, script, entity.Errorf(entity.KindUnknown, "transcribe", "panic: %v", r))
			}
		}()

		data, err := readUpload(c, "image")
		if err != nil {
			return h.fail(c, script, err)
		}

		result, err := h.transcriber.Transcribe(c.Request().Context(), script, data)
		if err != nil {
			return h.fail(c, script, err)
		}

		tl.Log(tl.Info1, palette.Green, "Transcribed '%s' glyphs for '%s', RequestID='%s'",
			fmt.Sprint(len(result.Glyphs)), string(script), requestID(c))
		return c.JSON(http.StatusOK, successResponse(result.Text))
	}
}

// fail пишет в лог вид ошибки и отвечает клиенту общим сообщением.
func (h *handler) fail(c echo.Context, script entity.Script, err error) error {
	tl.Log(tl.Warning, palette.Yellow, "Transcription for '%s' failed: Kind='%s', RequestID='%s', Error='%s'",
		string(script), string(entity.KindOf(err)), requestID(c), err.Error())
	return c.JSON(http.StatusOK, failureResponse(MsgProcessError))
}

func (h *handler) healthz(c echo.Context) error {
	scripts := []entity.Script{}
	if h.health != nil {
		scripts = append(scripts, h.health.Available()...)
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Scripts: scripts, Segmenter: h.segmenter})
}

// readUpload читает файл из multipart-поля.
func readUpload(c echo.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, entity.NewError(entity.KindDecode, "read upload", err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, entity.NewError(entity.KindDecode, "open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, entity.NewError(entity.KindDecode, "read upload", err)
	}
	return data, nil
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
