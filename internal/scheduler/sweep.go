// Package scheduler drives the periodic reservation sweep: promoting
// pendiente reservations out of their grace period and finalizing
// confirmadas whose slot has ended.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/golapp/field-booking/internal/booking"
)

// Sweeper runs the lifecycle sweep on a fixed interval.
type Sweeper struct {
	svc      *booking.Service
	interval time.Duration
}

// NewSweeper returns a Sweeper for svc.  Non-positive intervals fall back
// to one hour.
func NewSweeper(svc *booking.Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{svc: svc, interval: interval}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
// Sweep failures are logged and do not stop the loop.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	rep, err := s.svc.Sweep(ctx)
	if err != nil {
		log.Printf("sweep failed: %v", err)
		return
	}
	if rep.PendingToConfirmed > 0 || rep.ConfirmedToFinalized > 0 || rep.Errors > 0 {
		log.Printf("sweep: %d confirmadas, %d finalizadas, %d errores",
			rep.PendingToConfirmed, rep.ConfirmedToFinalized, rep.Errors)
	}
}
