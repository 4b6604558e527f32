package repository

import (
	"context"
	"database/sql"

	"github.com/golapp/field-booking/internal/model"
)

// FieldTypeRepo provides CRUD operations for tipos de cancha.
type FieldTypeRepo struct {
	db *sql.DB
}

// NewFieldTypeRepo returns a new FieldTypeRepo bound to the given database.
func NewFieldTypeRepo(db *sql.DB) *FieldTypeRepo { return &FieldTypeRepo{db: db} }

// List returns all tipos ordered by label.
func (r *FieldTypeRepo) List(ctx context.Context) ([]model.FieldType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tipo, COALESCE(precio, 0) FROM TipoCanchas ORDER BY tipo`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.FieldType, 0)
	for rows.Next() {
		var ft model.FieldType
		if err := rows.Scan(&ft.ID, &ft.Label, &ft.PricePerHour); err != nil {
			return nil, err
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

// GetByID returns one tipo or sql.ErrNoRows.
func (r *FieldTypeRepo) GetByID(ctx context.Context, id uint64) (*model.FieldType, error) {
	var ft model.FieldType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tipo, COALESCE(precio, 0) FROM TipoCanchas WHERE id = ?`, id).
		Scan(&ft.ID, &ft.Label, &ft.PricePerHour)
	if err != nil {
		return nil, err
	}
	return &ft, nil
}

// Create inserts a tipo and populates the generated ID.
func (r *FieldTypeRepo) Create(ctx context.Context, ft *model.FieldType) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO TipoCanchas (tipo, precio, createdAt, updatedAt) VALUES (?, ?, NOW(), NOW())`,
		ft.Label, ft.PricePerHour)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ft.ID = uint64(id)
	return nil
}

// Update overwrites a tipo.  sql.ErrNoRows is returned when the id does
// not exist.
func (r *FieldTypeRepo) Update(ctx context.Context, ft *model.FieldType) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE TipoCanchas SET tipo = ?, precio = ?, updatedAt = NOW() WHERE id = ?`,
		ft.Label, ft.PricePerHour, ft.ID)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, ft.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a tipo.  Tipos still referenced by canchas fail with
// ErrConflict.
func (r *FieldTypeRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM TipoCanchas WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
