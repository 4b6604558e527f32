package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/golapp/field-booking/internal/model"
)

// LoanRepo serves the read and maintenance side of prestamos.  Stock-checked
// creation goes through the booking core so the availability check and the
// insert share one transaction.
type LoanRepo struct {
	db *sql.DB
}

// NewLoanRepo returns a new LoanRepo bound to the given database.
func NewLoanRepo(db *sql.DB) *LoanRepo { return &LoanRepo{db: db} }

// LoanDetail is one prestamo joined with its producto and the reservation
// it belongs to, as shown on the equipment desk screen.
type LoanDetail struct {
	ID            uint64 `json:"id"`
	ReservationID uint64 `json:"id_reserva"`
	EquipmentID   uint64 `json:"id_producto"`
	Quantity      int    `json:"cantidad_prestada"`
	Status        string `json:"estado"`
	EquipmentName string `json:"nombre_producto"`
	Date          string `json:"fecha_reserva"`
	FieldName     string `json:"nombre_cancha"`
	CreatedAt     string `json:"createdAt"`
}

const loanDetailQuery = `SELECT pr.id, pr.id_reserva, pr.id_producto, pr.cantidad_prestada, pr.estado,
       COALESCE(p.nombre_producto, ''), r.fecha_reserva, COALESCE(c.nombre_cancha, ''), pr.createdAt
FROM Prestamos pr
LEFT JOIN Productos p ON p.id = pr.id_producto
LEFT JOIN Reservas r ON r.id = pr.id_reserva
LEFT JOIN Canchas c ON c.id = r.id_cancha`

func scanLoanDetail(row interface{ Scan(...interface{}) error }) (*LoanDetail, error) {
	var d LoanDetail
	var date sql.NullTime
	var createdAt time.Time
	if err := row.Scan(&d.ID, &d.ReservationID, &d.EquipmentID, &d.Quantity, &d.Status,
		&d.EquipmentName, &date, &d.FieldName, &createdAt); err != nil {
		return nil, err
	}
	if date.Valid {
		d.Date = date.Time.Format("2006-01-02")
	}
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &d, nil
}

// List returns every prestamo enriched for display, newest first.  When
// status is non-empty only that estado is returned.
func (r *LoanRepo) List(ctx context.Context, status string) ([]LoanDetail, error) {
	q := loanDetailQuery
	args := []interface{}{}
	if status != "" {
		q += ` WHERE pr.estado = ?`
		args = append(args, status)
	}
	q += ` ORDER BY pr.createdAt DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LoanDetail, 0)
	for rows.Next() {
		d, err := scanLoanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetByID returns one prestamo enriched for display or sql.ErrNoRows.
func (r *LoanRepo) GetByID(ctx context.Context, id uint64) (*LoanDetail, error) {
	return scanLoanDetail(r.db.QueryRowContext(ctx, loanDetailQuery+` WHERE pr.id = ?`, id))
}

// UpdateStatus moves a prestamo to a new estado.  sql.ErrNoRows is
// returned when the id does not exist.
func (r *LoanRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE Prestamos SET estado = ?, updatedAt = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM Prestamos WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Update overwrites the mutable fields of a prestamo.
func (r *LoanRepo) Update(ctx context.Context, l *model.Loan) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE Prestamos SET id_reserva = ?, id_producto = ?, cantidad_prestada = ?, estado = ?, updatedAt = NOW()
		 WHERE id = ?`,
		l.ReservationID, l.EquipmentID, l.Quantity, l.Status, l.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM Prestamos WHERE id = ?`, l.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a prestamo.
func (r *LoanRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Prestamos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// StatusStats counts prestamos per estado for the desk dashboard.
func (r *LoanRepo) StatusStats(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT estado, COUNT(*) FROM Prestamos GROUP BY estado`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]int)
	for _, s := range model.LoanStatuses {
		out[s] = 0
	}
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
