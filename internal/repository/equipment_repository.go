package repository

import (
	"context"
	"database/sql"

	"github.com/golapp/field-booking/internal/model"
)

// EquipmentRepo provides CRUD operations for productos plus the derived
// availability numbers the inventory screen consumes.
type EquipmentRepo struct {
	db *sql.DB
}

// NewEquipmentRepo returns a new EquipmentRepo bound to the given database.
func NewEquipmentRepo(db *sql.DB) *EquipmentRepo { return &EquipmentRepo{db: db} }

// EquipmentDetail is one producto with its derived stock numbers.  The
// available quantity is never stored; it is computed against the active
// loans on every read so it can never drift from the Prestamos table.
type EquipmentDetail struct {
	ID            uint64 `json:"id"`
	Name          string `json:"nombre_producto"`
	TotalQuantity int    `json:"cantidad_total"`
	Loaned        int    `json:"cantidad_prestada"`
	Available     int    `json:"cantidad_disponible"`
}

const equipmentDetailQuery = `SELECT p.id, p.nombre_producto, p.cantidad_total,
       COALESCE(SUM(CASE WHEN pr.estado = 'activo' THEN pr.cantidad_prestada ELSE 0 END), 0)
FROM Productos p
LEFT JOIN Prestamos pr ON pr.id_producto = p.id
GROUP BY p.id, p.nombre_producto, p.cantidad_total`

// List returns every producto with its loaned and available quantities.
func (r *EquipmentRepo) List(ctx context.Context) ([]EquipmentDetail, error) {
	rows, err := r.db.QueryContext(ctx, equipmentDetailQuery+` ORDER BY p.nombre_producto`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]EquipmentDetail, 0)
	for rows.Next() {
		var d EquipmentDetail
		if err := rows.Scan(&d.ID, &d.Name, &d.TotalQuantity, &d.Loaned); err != nil {
			return nil, err
		}
		d.Available = d.TotalQuantity - d.Loaned
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID returns one producto with its stock numbers or sql.ErrNoRows.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uint64) (*EquipmentDetail, error) {
	const q = `SELECT p.id, p.nombre_producto, p.cantidad_total,
	       COALESCE(SUM(CASE WHEN pr.estado = 'activo' THEN pr.cantidad_prestada ELSE 0 END), 0)
	FROM Productos p
	LEFT JOIN Prestamos pr ON pr.id_producto = p.id
	WHERE p.id = ?
	GROUP BY p.id, p.nombre_producto, p.cantidad_total`
	var d EquipmentDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.TotalQuantity, &d.Loaned); err != nil {
		return nil, err
	}
	d.Available = d.TotalQuantity - d.Loaned
	return &d, nil
}

// Create inserts a producto and populates the generated ID.
func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO Productos (nombre_producto, cantidad_total, createdAt, updatedAt)
		 VALUES (?, ?, NOW(), NOW())`,
		e.Name, e.TotalQuantity)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update overwrites a producto.  sql.ErrNoRows is returned when the id
// does not exist.
func (r *EquipmentRepo) Update(ctx context.Context, e *model.Equipment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE Productos SET nombre_producto = ?, cantidad_total = ?, updatedAt = NOW() WHERE id = ?`,
		e.Name, e.TotalQuantity, e.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM Productos WHERE id = ?`, e.ID).Scan(&exists); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a producto.  Productos with loan history fail with
// ErrConflict.
func (r *EquipmentRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Productos WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// StockStats summarizes the whole inventory for the dashboard cards.
type StockStats struct {
	Products  int `json:"implementos"`
	Stock     int `json:"stock"`
	Loaned    int `json:"prestado"`
	Available int `json:"disponible"`
}

// Stats totals the inventory: product count, units owned, units out on
// active loans and units on the shelf.
func (r *EquipmentRepo) Stats(ctx context.Context) (*StockStats, error) {
	var st StockStats
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(cantidad_total), 0) FROM Productos`).
		Scan(&st.Products, &st.Stock); err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cantidad_prestada), 0) FROM Prestamos WHERE estado = 'activo'`).
		Scan(&st.Loaned); err != nil {
		return nil, err
	}
	st.Available = st.Stock - st.Loaned
	return &st, nil
}
