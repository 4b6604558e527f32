package model

import "time"

// Reservation status values as stored in the Reservas.estado enum.  The
// lifecycle only moves forward: pendiente -> confirmada -> finalizada, with
// cancelada reachable from the two non-terminal states.  cancelada and
// finalizada are absorbing.
const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmada"
	StatusCancelled = "cancelada"
	StatusFinalized = "finalizada"
)

// Reservation is a booking of a field for a time slot on a calendar day.
// Date is a "YYYY-MM-DD" string and StartTime/EndTime are "HH:MM" strings
// forming the half-open interval [StartTime, EndTime).  Two reservations for
// the same field and date whose intervals overlap may never both be active
// (pendiente or confirmada) at the same time.
//
// Fields:
//  ID            – primary key identifier.
//  FieldID       – field (cancha) being booked.
//  UserID        – user who registered the booking.
//  Date          – calendar day of the slot, facility-local.
//  StartTime     – slot start, inclusive.
//  EndTime       – slot end, exclusive; must be after StartTime.
//  Status        – one of the Status* constants above.
//  Notes         – free-form operator notes.
//  CustomerPhone – contact phone captured at the desk.
//  CreatedAt     – creation timestamp (UTC); drives the pending grace period.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
	ID            uint64    `json:"id"`               // Reservas.id
	FieldID       uint64    `json:"id_cancha"`        // Reservas.id_cancha
	UserID        uint64    `json:"id_usuario"`       // Reservas.id_usuario
	Date          string    `json:"fecha_reserva"`    // Reservas.fecha_reserva
	StartTime     string    `json:"hora_inicio"`      // Reservas.hora_inicio
	EndTime       string    `json:"hora_fin"`         // Reservas.hora_fin
	Status        string    `json:"estado"`           // Reservas.estado
	Notes         string    `json:"observaciones"`    // Reservas.observaciones
	CustomerPhone string    `json:"telefono_cliente"` // Reservas.telefono_cliente
	CreatedAt     time.Time `json:"createdAt"`        // Reservas.createdAt
	UpdatedAt     time.Time `json:"updatedAt"`        // Reservas.updatedAt
}

// IsActive reports whether the reservation occupies its slot for conflict
// purposes.  Only pendiente and confirmada block other bookings.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal reports whether the reservation is in an absorbing state.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusFinalized
}
