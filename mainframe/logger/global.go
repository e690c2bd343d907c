package logger

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"
)

// LogCommand logs the outcome of one engine action.
func LogCommand(name string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "cmd"),
		slog.String("name", name),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Action failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Info("Action executed", attrs...)
	}
}

// LogQuery logs database operations. Successful queries and empty results
// are debug noise; everything else is an error.
func LogQuery(query string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "db"),
		slog.Duration("took", duration),
		slog.String("query", query),
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Log(context.Background(), slog.LevelDebug, "Query executed", attrs...)
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
