package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerKeyType is unexported so no other package can collide with the
// logger entry in a context.
type loggerKeyType struct{}

//nolint:gochecknoglobals // Package-level context key is idiomatic
var loggerKey = loggerKeyType{}

// WithLogger returns a context carrying logger. Commands attach their
// configured logger once at the top and everything below recovers it
// with FromContext instead of threading a parameter through.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or the package default
// when the context carries none.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithComponent returns ctx's logger with a component prefix, so a
// subsystem's lines stay attributable in mixed output.
func WithComponent(ctx context.Context, component string) *log.Logger {
	return FromContext(ctx).WithPrefix(component)
}
