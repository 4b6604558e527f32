// Package repository implements MySQL persistence for the booking domain.
// Each repository wraps a *sql.DB and exposes plain CRUD; the transactional
// booking paths go through BookingStore instead.  Sentinel errors defined
// here let the handlers map failures to HTTP codes without inspecting
// driver-specific error values.
package repository

import "errors"

// ErrConflict is returned when a delete cannot proceed because dependent
// rows still reference the record, such as removing a cancha that still
// has reservations.  Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflicto: existen registros dependientes")

// ErrDuplicate is returned when an insert or update violates a unique
// constraint, such as registering a usuario with an existing correo.
// Handlers translate this into an HTTP 409 response.
var ErrDuplicate = errors.New("registro duplicado")

// ErrForeignKey is returned when an insert or update references a row
// that does not exist (bad id_cancha, id_usuario, id_tipo...).  Handlers
// translate this into an HTTP 400 response.
var ErrForeignKey = errors.New("clave foránea inválida")
