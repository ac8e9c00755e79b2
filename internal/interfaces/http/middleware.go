package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const localLogger = "logger"

// RequestLogger registra método, ruta, estado y latencia de cada petición
// y deja un sublogger con request_id en c.Locals para los handlers.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().
			Str("request_id", c.Get(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.Locals(localLogger, reqLog)

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		switch {
		case status >= 500:
			ev = reqLog.Error()
		case status >= 400:
			ev = reqLog.Warn()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

func loggerFrom(c *fiber.Ctx) zerolog.Logger {
	if l, ok := c.Locals(localLogger).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
