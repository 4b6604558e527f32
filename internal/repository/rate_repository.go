package repository

import (
	"context"
	"database/sql"

	"github.com/golapp/field-booking/internal/model"
)

// RateRepo provides CRUD operations for the Tarifas table.  Pricing now
// lives on TipoCanchas; tarifas remain for installations that still carry
// per-cancha time-banded prices.
type RateRepo struct {
	db *sql.DB
}

// NewRateRepo returns a new RateRepo bound to the given database.
func NewRateRepo(db *sql.DB) *RateRepo { return &RateRepo{db: db} }

func scanRate(row interface{ Scan(...interface{}) error }) (*model.Rate, error) {
	var rt model.Rate
	var start, end string
	if err := row.Scan(&rt.ID, &rt.FieldID, &rt.Price, &start, &end); err != nil {
		return nil, err
	}
	rt.StartTime = clockOut(start)
	rt.EndTime = clockOut(end)
	return &rt, nil
}

// List returns all tarifas, optionally filtered by cancha when fieldID is
// non-zero.
func (r *RateRepo) List(ctx context.Context, fieldID uint64) ([]model.Rate, error) {
	q := `SELECT id, id_cancha, precio, hora_inicio, hora_fin FROM Tarifas`
	args := []interface{}{}
	if fieldID != 0 {
		q += ` WHERE id_cancha = ?`
		args = append(args, fieldID)
	}
	q += ` ORDER BY id_cancha, hora_inicio`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Rate, 0)
	for rows.Next() {
		rt, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	return out, rows.Err()
}

// GetByID returns one tarifa or sql.ErrNoRows.
func (r *RateRepo) GetByID(ctx context.Context, id uint64) (*model.Rate, error) {
	return scanRate(r.db.QueryRowContext(ctx,
		`SELECT id, id_cancha, precio, hora_inicio, hora_fin FROM Tarifas WHERE id = ?`, id))
}

// Create inserts a tarifa and populates the generated ID.
func (r *RateRepo) Create(ctx context.Context, rt *model.Rate) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO Tarifas (id_cancha, precio, hora_inicio, hora_fin, createdAt, updatedAt)
		 VALUES (?, ?, ?, ?, NOW(), NOW())`,
		rt.FieldID, rt.Price, rt.StartTime, rt.EndTime)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rt.ID = uint64(id)
	return nil
}

// Update overwrites a tarifa.  sql.ErrNoRows is returned when the id does
// not exist.
func (r *RateRepo) Update(ctx context.Context, rt *model.Rate) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE Tarifas SET id_cancha = ?, precio = ?, hora_inicio = ?, hora_fin = ?, updatedAt = NOW()
		 WHERE id = ?`,
		rt.FieldID, rt.Price, rt.StartTime, rt.EndTime, rt.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, rt.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a tarifa.
func (r *RateRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Tarifas WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
