// Package booking implements the reservation core: availability checking,
// the reservation lifecycle state machine, automatic equipment allocation
// and the dashboard aggregations.  HTTP handlers stay thin and translate
// the structured errors defined here into status codes.
package booking

import (
	"fmt"

	"github.com/golapp/field-booking/internal/model"
)

// ValidationError signals missing or malformed input.  Handlers map it to
// HTTP 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s %s", e.Field, e.Reason)
}

// ConflictError signals that a requested slot overlaps existing active
// reservations.  It carries the conflicting records so the caller can show
// which bookings block the slot.  Handlers map it to HTTP 409.
type ConflictError struct {
	FieldID     uint64
	Date        string
	Conflicting []model.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("horario no disponible: cancha %d, fecha %s, %d reservas en conflicto",
		e.FieldID, e.Date, len(e.Conflicting))
}

// NotFoundError signals that a referenced entity does not exist.  Handlers
// map it to HTTP 404.
type NotFoundError struct {
	Entity string // "cancha", "usuario", "reserva", "producto", "tipo_cancha"
	ID     uint64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d no encontrado", e.Entity, e.ID)
}

// StockError signals that a loan request exceeds the available quantity of
// an equipment item.  Available is always Total minus Loaned at the moment
// of the check.  Handlers map it to HTTP 400 and include all four numbers
// in the response body.
type StockError struct {
	Equipment string
	Total     int
	Loaned    int
	Available int
	Requested int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible=%d solicitado=%d",
		e.Equipment, e.Available, e.Requested)
}

// InvalidStateError signals an unrecognized status value or a transition
// that would move a reservation backward.  Handlers map it to HTTP 400.
type InvalidStateError struct {
	Status string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("estado inválido %q: %s", e.Status, e.Reason)
}
