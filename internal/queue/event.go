// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation enters the
// confirmada state, whether by an explicit request or by the periodic
// sweep.  It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	FieldID       uint64 `json:"id_cancha"`
	UserID        uint64 `json:"id_usuario"`
	Date          string `json:"fecha_reserva"`
	StartTime     string `json:"hora_inicio"`
	EndTime       string `json:"hora_fin"`
	Trigger       string `json:"trigger"`
	ConfirmedAt   string `json:"confirmed_at"`
}
