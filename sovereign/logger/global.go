package logger

import (
	"log/slog"
	"time"
)

// LogSheetOp logs one spreadsheet operation.
func LogSheetOp(op, table string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "sheet"),
		slog.String("op", op),
		slog.String("table", table),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Sheet operation failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Debug("Sheet operation", attrs...)
	}
}

// LogSystem logs system events.
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events.
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
