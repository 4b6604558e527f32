package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golapp/field-booking/internal/booking"
	"github.com/golapp/field-booking/internal/model"
)

// executor is the subset of database/sql shared by *sql.DB and *sql.Tx.
// BookingStore runs against either, so the same queries serve both the
// plain and the transaction-scoped view.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// BookingStore is the MySQL implementation of booking.Store.  Outside a
// transaction it executes against the pool; inside InTx it executes against
// the transaction and adds row locks to the availability reads, which
// closes the check-then-insert race between concurrent booking requests.
type BookingStore struct {
	db   *sql.DB
	ex   executor
	inTx bool
}

// NewBookingStore returns a BookingStore bound to the given database.
func NewBookingStore(db *sql.DB) *BookingStore {
	return &BookingStore{db: db, ex: db}
}

// InTx begins a transaction, runs fn against a transaction-scoped view and
// commits when fn returns nil.  Nested calls reuse the open transaction.
func (s *BookingStore) InTx(ctx context.Context, fn func(booking.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&BookingStore{db: s.db, ex: tx, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// reservationCols is the scan list shared by every Reservas read.
const reservationCols = `id, id_cancha, id_usuario, fecha_reserva, hora_inicio, hora_fin,
       estado, COALESCE(observaciones, ''), COALESCE(telefono_cliente, ''), createdAt, updatedAt`

// scanReservation scans one Reservas row.  DATE columns arrive as
// time.Time (parseTime=true) and TIME columns as "HH:MM:SS" strings, which
// are normalized to the "HH:MM" form the core works with.
func scanReservation(row interface{ Scan(...interface{}) error }) (*model.Reservation, error) {
	var r model.Reservation
	var date time.Time
	var start, end string
	if err := row.Scan(&r.ID, &r.FieldID, &r.UserID, &date, &start, &end,
		&r.Status, &r.Notes, &r.CustomerPhone, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Date = date.Format("2006-01-02")
	r.StartTime = clockOut(start)
	r.EndTime = clockOut(end)
	return &r, nil
}

// clockOut trims a MySQL TIME value ("HH:MM:SS") down to "HH:MM".
func clockOut(s string) string {
	if min, err := booking.ParseClock(s); err == nil {
		return booking.FormatClock(min)
	}
	return s
}

func (s *BookingStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
	const q = `INSERT INTO Reservas
	           (id_cancha, id_usuario, fecha_reserva, hora_inicio, hora_fin, estado,
	            observaciones, telefono_cliente, createdAt, updatedAt)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := s.ex.ExecContext(ctx, q, r.FieldID, r.UserID, r.Date,
		r.StartTime, r.EndTime, r.Status, r.Notes, r.CustomerPhone)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	// Read the row back so the caller sees the stored timestamps.
	stored, err := s.GetReservation(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *stored
	return nil
}

func (s *BookingStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM Reservas WHERE id = ?`
	r, err := scanReservation(s.ex.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "reserva", ID: id}
	}
	return r, err
}

func (s *BookingStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	const q = `UPDATE Reservas
	           SET id_cancha = ?, id_usuario = ?, fecha_reserva = ?, hora_inicio = ?,
	               hora_fin = ?, estado = ?, observaciones = ?, telefono_cliente = ?,
	               updatedAt = NOW()
	           WHERE id = ?`
	result, err := s.ex.ExecContext(ctx, q, r.FieldID, r.UserID, r.Date, r.StartTime,
		r.EndTime, r.Status, r.Notes, r.CustomerPhone, r.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := s.GetReservation(ctx, r.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookingStore) DeleteReservation(ctx context.Context, id uint64) error {
	result, err := s.ex.ExecContext(ctx, `DELETE FROM Reservas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &booking.NotFoundError{Entity: "reserva", ID: id}
	}
	return nil
}

func (s *BookingStore) SetReservationStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE Reservas SET estado = ?, updatedAt = NOW() WHERE id = ?`
	result, err := s.ex.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := s.GetReservation(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *BookingStore) ActiveReservations(ctx context.Context, fieldID uint64, date string, excludeID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + `
	      FROM Reservas
	      WHERE id_cancha = ? AND fecha_reserva = ?
	        AND estado IN ('pendiente', 'confirmada')
	        AND id <> ?
	      ORDER BY hora_inicio`
	if s.inTx {
		q += ` FOR UPDATE`
	}
	rows, err := s.ex.QueryContext(ctx, q, fieldID, date, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *BookingStore) ReservationsByStatus(ctx context.Context, status string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM Reservas WHERE estado = ? ORDER BY id`
	rows, err := s.ex.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *BookingStore) CountByStatusOnDate(ctx context.Context, date string) (map[string]int, error) {
	const q = `SELECT estado, COUNT(*) FROM Reservas WHERE fecha_reserva = ? GROUP BY estado`
	rows, err := s.ex.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (s *BookingStore) PricedReservations(ctx context.Context, fromDate, toDate string) ([]booking.PricedReservation, error) {
	const q = `SELECT r.fecha_reserva, r.hora_inicio, r.hora_fin, r.estado,
	                  COALESCE(t.precio, 0)
	           FROM Reservas r
	           JOIN Canchas c ON c.id = r.id_cancha
	           LEFT JOIN TipoCanchas t ON t.id = c.id_tipo
	           WHERE r.fecha_reserva BETWEEN ? AND ?`
	rows, err := s.ex.QueryContext(ctx, q, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []booking.PricedReservation
	for rows.Next() {
		var p booking.PricedReservation
		var date time.Time
		var start, end string
		if err := rows.Scan(&date, &start, &end, &p.Status, &p.PricePerHour); err != nil {
			return nil, err
		}
		p.Date = date.Format("2006-01-02")
		p.StartTime = clockOut(start)
		p.EndTime = clockOut(end)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *BookingStore) GetField(ctx context.Context, id uint64) (*model.Field, error) {
	const q = `SELECT id, nombre_cancha, estado, id_tipo,
	                  COALESCE(ubicacion, ''), COALESCE(capacidad, 0),
	                  COALESCE(horario_inicio, ''), COALESCE(horario_fin, '')
	           FROM Canchas WHERE id = ?`
	var f model.Field
	var open, close string
	err := s.ex.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.Name, &f.Status, &f.TypeID,
		&f.Location, &f.Capacity, &open, &close)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "cancha", ID: id}
	}
	if err != nil {
		return nil, err
	}
	f.OpenTime = clockOut(open)
	f.CloseTime = clockOut(close)
	return &f, nil
}

func (s *BookingStore) GetFieldType(ctx context.Context, id uint64) (*model.FieldType, error) {
	const q = `SELECT id, tipo, COALESCE(precio, 0) FROM TipoCanchas WHERE id = ?`
	var ft model.FieldType
	err := s.ex.QueryRowContext(ctx, q, id).Scan(&ft.ID, &ft.Label, &ft.PricePerHour)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "tipo_cancha", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &ft, nil
}

func (s *BookingStore) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, nombre, correo, contrasena, rol, COALESCE(telefono, ''), createdAt, updatedAt
	           FROM Usuarios WHERE id = ?`
	var u model.User
	err := s.ex.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email,
		&u.PasswordHash, &u.Role, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "usuario", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *BookingStore) ActiveFieldHours(ctx context.Context) (int, float64, error) {
	const q = `SELECT COALESCE(horario_inicio, ''), COALESCE(horario_fin, '')
	           FROM Canchas WHERE estado IN ('disponible', 'ocupada')`
	rows, err := s.ex.QueryContext(ctx, q)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()
	count := 0
	hours := 0.0
	for rows.Next() {
		var open, close string
		if err := rows.Scan(&open, &close); err != nil {
			return 0, 0, err
		}
		count++
		o, err1 := booking.ParseClock(open)
		c, err2 := booking.ParseClock(close)
		if err1 == nil && err2 == nil && c > o {
			hours += float64(c-o) / 60.0
		}
	}
	return count, hours, rows.Err()
}

func (s *BookingStore) GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error) {
	const q = `SELECT id, nombre_producto, cantidad_total FROM Productos WHERE id = ?`
	var e model.Equipment
	err := s.ex.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.TotalQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "producto", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *BookingStore) EquipmentByName(ctx context.Context, name string) (*model.Equipment, error) {
	q := `SELECT id, nombre_producto, cantidad_total FROM Productos WHERE nombre_producto = ? LIMIT 1`
	if s.inTx {
		q += ` FOR UPDATE`
	}
	var e model.Equipment
	err := s.ex.QueryRowContext(ctx, q, name).Scan(&e.ID, &e.Name, &e.TotalQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "producto"}
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *BookingStore) ActiveLoanQuantity(ctx context.Context, equipmentID uint64) (int, error) {
	q := `SELECT COALESCE(SUM(cantidad_prestada), 0) FROM Prestamos
	      WHERE id_producto = ? AND estado = 'activo'`
	if s.inTx {
		q += ` FOR UPDATE`
	}
	var total int
	if err := s.ex.QueryRowContext(ctx, q, equipmentID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *BookingStore) LoansByReservation(ctx context.Context, reservationID uint64) ([]model.Loan, error) {
	const q = `SELECT id, id_reserva, id_producto, cantidad_prestada, estado, createdAt, updatedAt
	           FROM Prestamos WHERE id_reserva = ? ORDER BY id`
	rows, err := s.ex.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(&l.ID, &l.ReservationID, &l.EquipmentID, &l.Quantity,
			&l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *BookingStore) InsertLoan(ctx context.Context, l *model.Loan) error {
	const q = `INSERT INTO Prestamos (id_reserva, id_producto, cantidad_prestada, estado, createdAt, updatedAt)
	           VALUES (?, ?, ?, ?, NOW(), NOW())`
	result, err := s.ex.ExecContext(ctx, q, l.ReservationID, l.EquipmentID, l.Quantity, l.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}
