package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Func adapts a plain function to Stoppable
type Func func(ctx context.Context) error

func (f Func) Shutdown(ctx context.Context) error { return f(ctx) }

// Graceful blocks until one of signals arrives, then stops every Stoppable in
// order within timeout
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, stops ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	if err := Stop(timeout, stops...); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}

// Stop shuts down every Stoppable in order and collects their errors
func Stop(timeout time.Duration, stops ...Stoppable) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var result *multierror.Error
	for _, s := range stops {
		if s == nil {
			continue
		}
		if err := s.Shutdown(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
