package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore is an empty booking.Store that counts sweep reads.
type countingStore struct {
	sweeps atomic.Int64
}

func (s *countingStore) InTx(ctx context.Context, fn func(booking.Store) error) error { return fn(s) }
func (s *countingStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
	return nil
}
func (s *countingStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	return nil, &booking.NotFoundError{Entity: "reserva", ID: id}
}
func (s *countingStore) UpdateReservation(ctx context.Context, r *model.Reservation) error { return nil }
func (s *countingStore) DeleteReservation(ctx context.Context, id uint64) error            { return nil }
func (s *countingStore) SetReservationStatus(ctx context.Context, id uint64, st string) error {
	return nil
}
func (s *countingStore) ActiveReservations(ctx context.Context, fieldID uint64, date string, excludeID uint64) ([]model.Reservation, error) {
	return nil, nil
}
func (s *countingStore) ReservationsByStatus(ctx context.Context, status string) ([]model.Reservation, error) {
	if status == model.StatusPending {
		s.sweeps.Add(1)
	}
	return nil, nil
}
func (s *countingStore) CountByStatusOnDate(ctx context.Context, date string) (map[string]int, error) {
	return map[string]int{}, nil
}
func (s *countingStore) PricedReservations(ctx context.Context, from, to string) ([]booking.PricedReservation, error) {
	return nil, nil
}
func (s *countingStore) GetField(ctx context.Context, id uint64) (*model.Field, error) {
	return nil, &booking.NotFoundError{Entity: "cancha", ID: id}
}
func (s *countingStore) GetFieldType(ctx context.Context, id uint64) (*model.FieldType, error) {
	return nil, &booking.NotFoundError{Entity: "tipo_cancha", ID: id}
}
func (s *countingStore) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	return nil, &booking.NotFoundError{Entity: "usuario", ID: id}
}
func (s *countingStore) ActiveFieldHours(ctx context.Context) (int, float64, error) {
	return 0, 0, nil
}
func (s *countingStore) GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error) {
	return nil, &booking.NotFoundError{Entity: "producto", ID: id}
}
func (s *countingStore) EquipmentByName(ctx context.Context, name string) (*model.Equipment, error) {
	return nil, &booking.NotFoundError{Entity: "producto"}
}
func (s *countingStore) ActiveLoanQuantity(ctx context.Context, equipmentID uint64) (int, error) {
	return 0, nil
}
func (s *countingStore) LoansByReservation(ctx context.Context, reservationID uint64) ([]model.Loan, error) {
	return nil, nil
}
func (s *countingStore) InsertLoan(ctx context.Context, l *model.Loan) error { return nil }

func TestSweeper_RunsImmediatelyAndOnTicks(t *testing.T) {
	store := &countingStore{}
	sweeper := NewSweeper(booking.New(store), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.sweeps.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "first sweep plus at least two ticks")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancellation")
	}
}

func TestNewSweeper_DefaultsInterval(t *testing.T) {
	sweeper := NewSweeper(booking.New(&countingStore{}), 0)
	assert.Equal(t, time.Hour, sweeper.interval)
}
