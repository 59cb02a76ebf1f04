package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormのログをslogに流す
type gormSlogLogger struct {
	logger *slog.Logger
	level  logger.LogLevel
}

func newGormSlogLogger(base *slog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gormSlogLogger{logger: base, level: level}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level
	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.logger.InfoContext(ctx, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
	}
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.logger.WarnContext(ctx, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
	}
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.logger.ErrorContext(ctx, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
	}
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	//NotFoundはrepositoryでErrNotFoundにするのでログ不要
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, rows := fc()
		l.logger.ErrorContext(ctx, "gorm query failed",
			slog.String("sql", sql), slog.Int64("rows", rows), slog.Duration("elapsed", elapsed), slog.Any("error", err))
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.logger.WarnContext(ctx, "gorm slow query",
			slog.String("sql", sql), slog.Int64("rows", rows), slog.Duration("elapsed", elapsed))
	case l.level >= logger.Info:
		sql, rows := fc()
		l.logger.DebugContext(ctx, "gorm query",
			slog.String("sql", sql), slog.Int64("rows", rows), slog.Duration("elapsed", elapsed))
	}
}
