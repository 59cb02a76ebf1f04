package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger は1リクエスト1行でログを出す。4xxはwarn、5xxはerror
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			//エラーはここでレスポンスにしておかないとstatusが確定しない
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("uri", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", latency),
				slog.String("remote_ip", c.RealIP()),
			}
			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
			}

			level := slog.LevelInfo
			if res.Status >= 400 {
				level = slog.LevelWarn
			}
			if res.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(req.Context(), level, "http request", attrs...)

			//c.Errorで処理済み
			return nil
		}
	}
}
