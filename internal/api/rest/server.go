package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"glyphscan/internal/domain/entity"
)

// Options настройки HTTP-сервера.
type Options struct {
	MaxUploadBytes int64
	RateLimit      int
	RateBurst      int
	CORSOrigins    []string
	Segmenter      string // название реализации сегментатора для /healthz
}

// Server HTTP-сервер распознавания
type Server struct {
	echo *echo.Echo
}

// NewServer собирает маршруты: POST /<script> для каждой письменности и GET /healthz.
func NewServer(opts Options, transcriber Transcriber, health HealthReporter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 60 * time.Second
	// Адрес клиента берётся из соединения: заголовки X-Forwarded-For и X-Real-IP не учитываются.
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = errorHandler(e)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(RouteAccessLogger)
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: opts.CORSOrigins}))
	}
	if opts.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(strconv.FormatInt(opts.MaxUploadBytes, 10) + "B"))
	}

	h := &handler{transcriber: transcriber, health: health, segmenter: opts.Segmenter}

	var routeMiddleware []echo.MiddlewareFunc
	if opts.RateLimit > 0 && opts.RateBurst > 0 {
		routeMiddleware = append(routeMiddleware, NewRateLimiter(opts.RateLimit, opts.RateBurst).Middleware)
	}
	for _, script := range entity.Scripts() {
		e.POST("/"+script.String(), h.transcribe(script), routeMiddleware...)
	}
	e.GET("/healthz", h.healthz)

	return &Server{echo: e}
}

// errorHandler отвечает общим телом ошибки на превышение MAX_UPLOAD_BYTES,
// остальные ошибки echo обрабатывает как обычно.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusRequestEntityTooLarge {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		tl.Log(tl.Warning, palette.Yellow, "Upload rejected: Path='%s', ContentLength='%s', RequestID='%s', Error='%s'",
			c.Request().URL.Path, fmt.Sprint(c.Request().ContentLength), requestID(c), err.Error())
		if err := c.JSON(http.StatusOK, failureResponse(MsgProcessError)); err != nil {
			e.Logger.Error(err)
		}
	}
}

// Handler возвращает http.Handler сервера.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start запускает сервер и блокируется до его остановки.
func (s *Server) Start(addr string) error {
	tl.Log(tl.Notice, palette.BlueBold, "HTTP server is listening on '%s'", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь текущих запросов.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
