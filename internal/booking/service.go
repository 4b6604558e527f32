package booking

import (
	"context"
	"time"
)

// ConfirmedEvent describes a reservation that just entered the confirmada
// state.  It is handed to the publisher after the surrounding transaction
// commits, never before.
type ConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	FieldID       uint64 `json:"id_cancha"`
	UserID        uint64 `json:"id_usuario"`
	Date          string `json:"fecha_reserva"`
	StartTime     string `json:"hora_inicio"`
	EndTime       string `json:"hora_fin"`
	Trigger       string `json:"trigger"` // "request" or "sweep"
	ConfirmedAt   string `json:"confirmed_at"`
}

// Publisher receives confirmation events.  Implementations must not block
// the caller for long and must swallow their own errors; confirmation of a
// reservation never fails because the broker is down.
type Publisher interface {
	ReservationConfirmed(ctx context.Context, ev ConfirmedEvent)
}

// Service owns the booking core.  It is safe for concurrent use: every
// mutation runs inside a Store transaction and the service itself carries
// no mutable state beyond configuration.
type Service struct {
	store Store
	loc   *time.Location
	grace time.Duration // pendiente -> confirmada promotion delay
	// dayHours is the fallback bookable-hours-per-day used by the occupancy
	// metric when fields carry no open/close times.
	dayHours float64
	pub      Publisher
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the facility timezone used to interpret reservation
// dates and end times.  Defaults to America/Bogota.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithGrace sets how long a reservation stays pendiente before the sweep
// promotes it to confirmada.  Defaults to one hour.
func WithGrace(d time.Duration) Option {
	return func(s *Service) { s.grace = d }
}

// WithDayHours sets the fallback bookable hours per day for the occupancy
// denominator.  Defaults to 16 (06:00-22:00).
func WithDayHours(h float64) Option {
	return func(s *Service) { s.dayHours = h }
}

// WithPublisher wires a confirmation event publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.pub = p }
}

// WithClock overrides the time source; tests use it to freeze "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds a Service around the given store.
func New(store Store, opts ...Option) *Service {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		loc = time.FixedZone("COT", -5*60*60)
	}
	s := &Service{
		store:    store,
		loc:      loc,
		grace:    time.Hour,
		dayHours: 16,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// publishConfirmed hands the event to the publisher when one is wired.
func (s *Service) publishConfirmed(ctx context.Context, ev ConfirmedEvent) {
	if s.pub != nil {
		s.pub.ReservationConfirmed(ctx, ev)
	}
}
