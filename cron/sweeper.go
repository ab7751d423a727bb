// Package cron hosts the recurring background jobs of the service.
package cron

import (
	"context"
	"time"

	"petcare/models"
	"petcare/services/booking"
	"petcare/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpirySweeper periodically deletes bookings whose cancellation grace
// period has elapsed. It owns its schedule, is cancelable on shutdown, and
// never halts the host process: sweep failures are logged inside the
// booking service and the next tick runs regardless.
type ExpirySweeper struct {
	Bookings booking.BookingService
	Schedule string // cron spec, e.g. "@every 1m"

	runner *cron.Cron
}

// NewExpirySweeper wires a sweeper against the given booking service.
func NewExpirySweeper(bookings booking.BookingService, schedule string) *ExpirySweeper {
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &ExpirySweeper{Bookings: bookings, Schedule: schedule}
}

// Start registers the sweep job and begins the schedule.
func (s *ExpirySweeper) Start() error {
	logger := utils.GetLogger()

	s.runner = cron.New()
	if _, err := s.runner.AddFunc(s.Schedule, s.sweep); err != nil {
		return err
	}
	s.runner.Start()
	logger.Info("Expiry sweeper started",
		zap.String("schedule", s.Schedule),
		zap.Duration("graceWindow", models.CancelGraceWindow))
	return nil
}

// Stop cancels the schedule and waits for an in-flight sweep to finish.
func (s *ExpirySweeper) Stop(ctx context.Context) {
	if s.runner == nil {
		return
	}
	done := s.runner.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		utils.GetLogger().Warn("Expiry sweeper stop timed out")
	}
	utils.GetLogger().Info("Expiry sweeper stopped")
}

// sweep is one pass; it is idempotent and side-effect-free beyond deletion.
func (s *ExpirySweeper) sweep() {
	start := time.Now()
	deleted := s.Bookings.DeleteExpiredCancellations(models.CancelGraceWindow)
	if deleted > 0 {
		utils.GetLogger().Info("Sweep pass complete",
			zap.Int64("deleted", deleted),
			zap.Duration("took", time.Since(start)))
	}
}
