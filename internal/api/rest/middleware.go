package rest

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"golang.org/x/time/rate"
)

// RouteAccessLogger пишет в лог начало и конец обработки запроса.
func RouteAccessLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		LogRouteAccess(c, tl.Info, "Accessing route", palette.Blue)
		defer func() {
			tl.Log(tl.Info1, palette.Green, "Route accessed: Method='%s', Path='%s', Status='%s', Took='%s', RequestID='%s'",
				c.Request().Method, c.Path(), http.StatusText(c.Response().Status), time.Since(start).String(), requestID(c))
		}()
		return next(c)
	}
}

// LogRouteAccess пишет в лог метод, путь и IP клиента.
func LogRouteAccess(c echo.Context, logLevel tl.LogLevel, actionName string, colorizer palette.Colorizer) {
	path := c.Path()
	if path == "/healthz" {
		logLevel = tl.Verbose
		colorizer = palette.CyanDim
	}
	tl.Log(logLevel, colorizer, "%s: Method='%s', Path='%s', ClientIP='%s'", actionName, c.Request().Method, path, c.RealIP())
}

// RateLimiter ограничивает частоту запросов с одного IP.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создаёт ограничитель: perSecond запросов в секунду, burst — запас мгновенных запросов.
func NewRateLimiter(perSecond, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		ttl:     time.Minute,
		now:     time.Now,
	}
}

// Allow сообщает, можно ли обслужить запрос с этого IP.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	// Забываем клиентов, которых не было дольше ttl.
	if now.Sub(l.lastSweep) > l.ttl {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > l.ttl {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Middleware отклоняет запросы сверх лимита с кодом 429.
func (l *RateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !l.Allow(c.RealIP()) {
			LogRouteAccess(c, tl.Warning, "Rate limit exceeded", palette.Yellow)
			return c.JSON(http.StatusTooManyRequests, failureResponse("Too many requests"))
		}
		return next(c)
	}
}
