package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/golapp/field-booking/internal/booking"
)

// ReservationRepo serves the enriched read side of reservations: rows
// joined with their cancha, tipo de cancha and usuario, plus the computed
// total price.  Writes go through BookingStore so they stay inside the
// core's transactional paths.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservationDetail is one reservation with the display fields the desk
// frontend consumes.  PriceTotal applies the same pricing rule as the
// revenue metric, so listings and dashboards always agree.
type ReservationDetail struct {
	ID            uint64  `json:"id"`
	FieldID       uint64  `json:"id_cancha"`
	UserID        uint64  `json:"id_usuario"`
	Date          string  `json:"fecha_reserva"`
	StartTime     string  `json:"hora_inicio"`
	EndTime       string  `json:"hora_fin"`
	Status        string  `json:"estado"`
	Notes         string  `json:"observaciones"`
	CustomerPhone string  `json:"telefono_cliente"`
	FieldName     string  `json:"nombre_cancha"`
	FieldType     string  `json:"tipo_cancha"`
	CustomerName  string  `json:"nombre_cliente"`
	PricePerHour  float64 `json:"precio_hora"`
	PriceTotal    float64 `json:"precio_total"`
	CreatedAt     string  `json:"createdAt"`
}

const detailQuery = `SELECT r.id, r.id_cancha, r.id_usuario, r.fecha_reserva,
       r.hora_inicio, r.hora_fin, r.estado,
       COALESCE(r.observaciones, ''), COALESCE(r.telefono_cliente, ''),
       COALESCE(c.nombre_cancha, ''), COALESCE(t.tipo, ''),
       COALESCE(u.nombre, ''), COALESCE(u.telefono, ''),
       COALESCE(t.precio, 0), r.createdAt
FROM Reservas r
LEFT JOIN Canchas c ON c.id = r.id_cancha
LEFT JOIN TipoCanchas t ON t.id = c.id_tipo
LEFT JOIN Usuarios u ON u.id = r.id_usuario`

// scanDetail scans one joined row and computes the total price.  When the
// reservation itself carries no telefono_cliente, the usuario's phone is
// used, matching what the desk shows.
func scanDetail(row interface{ Scan(...interface{}) error }) (*ReservationDetail, error) {
	var d ReservationDetail
	var date, createdAt time.Time
	var start, end, userPhone string
	if err := row.Scan(&d.ID, &d.FieldID, &d.UserID, &date, &start, &end, &d.Status,
		&d.Notes, &d.CustomerPhone, &d.FieldName, &d.FieldType,
		&d.CustomerName, &userPhone, &d.PricePerHour, &createdAt); err != nil {
		return nil, err
	}
	d.Date = date.Format("2006-01-02")
	d.StartTime = clockOut(start)
	d.EndTime = clockOut(end)
	if d.CustomerPhone == "" {
		d.CustomerPhone = userPhone
	}
	d.PriceTotal = booking.SlotPrice(d.StartTime, d.EndTime, d.PricePerHour)
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &d, nil
}

// ListAll returns every reservation enriched for display, newest first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailQuery+` ORDER BY r.fecha_reserva DESC, r.hora_inicio DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

// GetByID returns one reservation enriched for display.  When no row
// exists, sql.ErrNoRows is returned.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*ReservationDetail, error) {
	return scanDetail(r.db.QueryRowContext(ctx, detailQuery+` WHERE r.id = ?`, id))
}
