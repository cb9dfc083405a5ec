package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/spa-pos-api/pkg/logger"
	"github.com/jhoicas/spa-pos-api/pkg/metrics"
)

// RequestLogger registra cada petición y su latencia. info para 2xx/3xx, warn para 4xx, error para 5xx.
// m puede ser nil.
func RequestLogger(log *logger.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// el ErrorHandler de la app escribe la respuesta; así el status registrado es el real
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		latency := time.Since(start)

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.ObserveRequest(route, c.Method(), status, latency)

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency)
		if uid := GetUserID(c); uid != "" {
			ev = ev.Str("actor_id", uid)
		}
		if msg, ok := c.Locals(LocalError).(string); ok && msg != "" {
			ev = ev.Str("error", msg)
		}
		ev.Msg("http request")
		return nil
	}
}
