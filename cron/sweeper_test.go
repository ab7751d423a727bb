package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"petcare/models"
	"petcare/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepRecorder stubs the booking service and counts sweep invocations.
type sweepRecorder struct {
	sweeps    atomic.Int64
	lastGrace atomic.Int64
}

func (r *sweepRecorder) CreateBooking(models.Actor, booking.CreateBookingInput) (*models.Booking, error) {
	return nil, nil
}
func (r *sweepRecorder) GetBooking(models.Actor, string) (*models.BookingView, error) {
	return nil, nil
}
func (r *sweepRecorder) ListMine(models.Actor) ([]models.BookingView, error) { return nil, nil }
func (r *sweepRecorder) ListAll(models.Actor) ([]models.BookingView, error)  { return nil, nil }
func (r *sweepRecorder) UpdateStatus(models.Actor, string, string) (*models.Booking, error) {
	return nil, nil
}
func (r *sweepRecorder) Cancel(models.Actor, string) (*models.CancelResult, error) {
	return nil, nil
}
func (r *sweepRecorder) UndoCancel(models.Actor, string) (*models.Booking, error) {
	return nil, nil
}
func (r *sweepRecorder) DeleteExpiredCancellations(grace time.Duration) int64 {
	r.lastGrace.Store(int64(grace))
	r.sweeps.Add(1)
	return 0
}

func TestSweeperRunsOnSchedule(t *testing.T) {
	recorder := &sweepRecorder{}
	sweeper := NewExpirySweeper(recorder, "@every 50ms")
	require.NoError(t, sweeper.Start())

	assert.Eventually(t, func() bool {
		return recorder.sweeps.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sweeper.Stop(ctx)

	// Every pass uses the canonical grace window.
	assert.Equal(t, int64(models.CancelGraceWindow), recorder.lastGrace.Load())
}

func TestSweeperStopHaltsSchedule(t *testing.T) {
	recorder := &sweepRecorder{}
	sweeper := NewExpirySweeper(recorder, "@every 50ms")
	require.NoError(t, sweeper.Start())

	assert.Eventually(t, func() bool {
		return recorder.sweeps.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	sweeper.Stop(ctx)

	after := recorder.sweeps.Load()
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, after, recorder.sweeps.Load())
}

func TestSweeperDefaultsSchedule(t *testing.T) {
	sweeper := NewExpirySweeper(&sweepRecorder{}, "")
	assert.Equal(t, "@every 1m", sweeper.Schedule)
}

func TestSweeperStopBeforeStartIsNoop(t *testing.T) {
	sweeper := NewExpirySweeper(&sweepRecorder{}, "@every 1m")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	sweeper.Stop(ctx)
}
