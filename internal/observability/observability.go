// Package observability starts the process-wide telemetry sinks: Uptrace
// traces and logs, Pyroscope profiles and the pprof listener.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/last-man-standing/internal/config"
	"github.com/riskibarqy/last-man-standing/internal/platform/logging"
)

// ShutdownFunc flushes and stops one telemetry sink.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

type sink struct {
	name  string
	start func(config.Config, *logging.Logger) (ShutdownFunc, error)
}

var sinks = []sink{
	{"uptrace", InitUptrace},
	{"pyroscope", InitPyroscope},
	{"pprof", StartPprofServer},
}

// Start brings up every configured sink. The returned ShutdownFunc stops them
// in reverse order and joins their errors. On failure the sinks already
// started are stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var started []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(started) - 1; i >= 0; i-- {
			errs = append(errs, started[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, step := range sinks {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		started = append(started, stop)
	}
	return shutdown, nil
}
