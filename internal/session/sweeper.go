package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// RunSweeper purges expired sessions every interval until ctx is cancelled.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration, logger logrus.FieldLogger) {
	logger.WithField("interval", interval).Info("starting session sweeper")

	sweepOnce(ctx, s, logger)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session sweeper shutting down")
			return
		case <-timer.C:
			sweepOnce(ctx, s, logger)
			timer.Reset(interval)
		}
	}
}

func sweepOnce(ctx context.Context, s Sweeper, logger logrus.FieldLogger) {
	removed, err := s.Sweep(ctx, time.Now())
	if err != nil {
		logger.WithError(err).Warn("session sweep failed")
		return
	}
	if removed > 0 {
		logger.WithField("removed", removed).Info("expired sessions purged")
	}
}
