package infer

import (
	"log/slog"
	"time"

	"github.com/siegeai/siegeschema/schema"
)

type loggingInferrer struct {
	next   Inferrer
	logger *slog.Logger
}

// WithLogging logs every inference through logger: successes at debug level,
// failures at warn.
func WithLogging(next Inferrer, logger *slog.Logger) Inferrer {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingInferrer{next: next, logger: logger}
}

func (l *loggingInferrer) InferBytes(b []byte) (schema.Schema, error) {
	start := time.Now()
	s, err := l.next.InferBytes(b)
	if err != nil {
		l.logger.Warn("could not infer schema", "bytes", len(b), "err", err)
		return nil, err
	}
	l.logger.Debug("inferred schema", "root", s.Kind(), "bytes", len(b), "elapsed", time.Since(start))
	return s, nil
}
