package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/golapp/field-booking/internal/model"
)

// translate maps MySQL constraint violations onto the package sentinels.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return ErrDuplicate
		case 1451:
			return ErrConflict
		case 1452:
			return ErrForeignKey
		}
	}
	return err
}

// FieldRepo provides CRUD operations for canchas.
type FieldRepo struct {
	db *sql.DB
}

// NewFieldRepo returns a new FieldRepo bound to the given database.
func NewFieldRepo(db *sql.DB) *FieldRepo { return &FieldRepo{db: db} }

const fieldCols = `id, nombre_cancha, estado, id_tipo,
       COALESCE(ubicacion, ''), COALESCE(capacidad, 0),
       COALESCE(horario_inicio, ''), COALESCE(horario_fin, '')`

func scanField(row interface{ Scan(...interface{}) error }) (*model.Field, error) {
	var f model.Field
	var open, close string
	if err := row.Scan(&f.ID, &f.Name, &f.Status, &f.TypeID,
		&f.Location, &f.Capacity, &open, &close); err != nil {
		return nil, err
	}
	f.OpenTime = clockOut(open)
	f.CloseTime = clockOut(close)
	return &f, nil
}

// List returns all canchas ordered by name.
func (r *FieldRepo) List(ctx context.Context) ([]model.Field, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+fieldCols+` FROM Canchas ORDER BY nombre_cancha`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

// GetByID returns one cancha or sql.ErrNoRows.
func (r *FieldRepo) GetByID(ctx context.Context, id uint64) (*model.Field, error) {
	return scanField(r.db.QueryRowContext(ctx, `SELECT `+fieldCols+` FROM Canchas WHERE id = ?`, id))
}

// Create inserts a cancha and populates the generated ID.
func (r *FieldRepo) Create(ctx context.Context, f *model.Field) error {
	const q = `INSERT INTO Canchas
	           (nombre_cancha, estado, id_tipo, ubicacion, capacidad, horario_inicio, horario_fin,
	            createdAt, updatedAt)
	           VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.ExecContext(ctx, q, f.Name, f.Status, f.TypeID,
		f.Location, f.Capacity, f.OpenTime, f.CloseTime)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// Update overwrites a cancha.  sql.ErrNoRows is returned when the id does
// not exist.
func (r *FieldRepo) Update(ctx context.Context, f *model.Field) error {
	const q = `UPDATE Canchas
	           SET nombre_cancha = ?, estado = ?, id_tipo = ?, ubicacion = ?,
	               capacidad = ?, horario_inicio = ?, horario_fin = ?, updatedAt = NOW()
	           WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, f.Name, f.Status, f.TypeID,
		f.Location, f.Capacity, f.OpenTime, f.CloseTime, f.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, f.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a cancha.  Canchas that still have reservations or
// tarifas fail with ErrConflict.
func (r *FieldRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Canchas WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
