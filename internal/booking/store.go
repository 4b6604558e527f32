package booking

import (
	"context"

	"github.com/golapp/field-booking/internal/model"
)

// PricedReservation is the read model the aggregators consume: one row per
// reservation joined with its field type's hourly price.
type PricedReservation struct {
	Date         string
	StartTime    string
	EndTime      string
	Status       string
	PricePerHour float64
}

// Store is the persistence surface the booking core needs.  The production
// implementation wraps MySQL (internal/repository); tests substitute an
// in-memory fake.  All methods are safe to call on the store passed to an
// InTx callback, in which case they share that transaction.
type Store interface {
	// InTx runs fn against a transaction-scoped view of the store and
	// commits when fn returns nil.  Availability checks performed inside a
	// transaction lock the rows they read, closing the check-then-insert
	// race between concurrent booking requests.
	InTx(ctx context.Context, fn func(Store) error) error

	// Reservations.
	InsertReservation(ctx context.Context, r *model.Reservation) error
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, r *model.Reservation) error
	DeleteReservation(ctx context.Context, id uint64) error
	SetReservationStatus(ctx context.Context, id uint64, status string) error
	// ActiveReservations returns the pendiente/confirmada reservations for a
	// field on a date, excluding excludeID when non-zero (editing case).
	ActiveReservations(ctx context.Context, fieldID uint64, date string, excludeID uint64) ([]model.Reservation, error)
	ReservationsByStatus(ctx context.Context, status string) ([]model.Reservation, error)
	CountByStatusOnDate(ctx context.Context, date string) (map[string]int, error)
	// PricedReservations returns reservations with fecha_reserva in
	// [fromDate, toDate] joined with their field type price.
	PricedReservations(ctx context.Context, fromDate, toDate string) ([]PricedReservation, error)

	// Catalog lookups.
	GetField(ctx context.Context, id uint64) (*model.Field, error)
	GetFieldType(ctx context.Context, id uint64) (*model.FieldType, error)
	GetUser(ctx context.Context, id uint64) (*model.User, error)
	// ActiveFieldHours returns how many fields are bookable (estado
	// disponible or ocupada) and the sum of their daily open windows in
	// hours.  Fields without open/close times contribute zero hours.
	ActiveFieldHours(ctx context.Context) (count int, totalHours float64, err error)

	// Equipment and loans.
	GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error)
	EquipmentByName(ctx context.Context, name string) (*model.Equipment, error)
	// ActiveLoanQuantity sums cantidad_prestada over estado='activo' loans
	// of one equipment item.
	ActiveLoanQuantity(ctx context.Context, equipmentID uint64) (int, error)
	LoansByReservation(ctx context.Context, reservationID uint64) ([]model.Loan, error)
	InsertLoan(ctx context.Context, l *model.Loan) error
}
