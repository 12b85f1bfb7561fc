// Package log plumbs a logr.Logger through context.Context.
package log

import (
	"context"

	"github.com/go-logr/logr"
)

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}
