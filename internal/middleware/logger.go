package middleware

import (
    "log/slog"
    "time"

    "github.com/labstack/echo/v4"
)

// RequestLogger logs one structured line per request with status, latency
// and the authenticated subject.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                // Let echo's error handler write the response so the status is final.
                c.Error(err)
            }
            req := c.Request()
            attrs := []any{
                slog.String("method", req.Method),
                slog.String("route", c.Path()),
                slog.Int("status", c.Response().Status),
                slog.Duration("latency", time.Since(start)),
                slog.String("subject", Subject(c)),
                slog.String("ip", c.RealIP()),
            }
            if err != nil {
                logger.Warn("request failed", append(attrs, slog.Any("err", err))...)
                return nil
            }
            logger.Info("request", attrs...)
            return nil
        }
    }
}
