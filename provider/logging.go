package provider

import (
	"context"
	"time"

	"github.com/kbukum/slaybot/logger"
)

// WithLogging logs each Execute call with provider name and duration.
// Failures are logged at warn level; the caller decides whether they matter.
// A nil log discards output.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	if log == nil {
		log = logger.Nop()
	}
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{wrapped: wrapped[I, O]{inner}, log: log}
	}
}

type loggingRR[I, O any] struct {
	wrapped[I, O]
	log *logger.Logger
}

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	fields := logger.DurationFields("execute", time.Since(start))
	fields[logger.FieldProvider] = l.inner.Name()
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.WithContext(ctx).Warn("provider execute failed", fields)
	} else {
		l.log.WithContext(ctx).Debug("provider execute ok", fields)
	}
	return output, err
}
