package errutil

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/oops"
)

// LogError logs err through ctx so request-scoped attributes are kept. The oops code and each
// context key become top-level attributes. Delivery failures are logged at warn level.
func LogError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.ErrorContext(ctx, msg, "error", err)
		return
	}

	level := slog.LevelError
	if oopsErr.Code() == CodeDelivery {
		level = slog.LevelWarn
	}

	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	errCtx := oopsErr.Context()
	for _, key := range slices.Sorted(maps.Keys(errCtx)) {
		attrs = append(attrs, key, errCtx[key])
	}
	logger.Log(ctx, level, msg, attrs...)
}
