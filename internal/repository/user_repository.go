package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/golapp/field-booking/internal/model"
)

// UserRepo provides CRUD operations for usuarios.  Password hashing is the
// handler's concern; this layer only ever sees the bcrypt hash.  Correos
// are normalized to lowercase before every read or write.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, nombre, correo, contrasena, rol, COALESCE(telefono, ''), createdAt, updatedAt`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// List returns all usuarios ordered by name.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userCols+` FROM Usuarios ORDER BY nombre`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// GetByID returns one usuario or sql.ErrNoRows.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM Usuarios WHERE id = ? LIMIT 1`, id))
}

// GetByEmail returns the usuario with the given correo or sql.ErrNoRows.
// Used by login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM Usuarios WHERE correo = ? LIMIT 1`, normalizeEmail(email)))
}

// Create inserts a usuario and populates the generated ID.  Duplicate
// correos fail with ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO Usuarios (nombre, correo, contrasena, rol, telefono, createdAt, updatedAt)
	           VALUES (?, ?, ?, ?, ?, NOW(), NOW())`
	u.Email = normalizeEmail(u.Email)
	result, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone)
	if err != nil {
		return translate(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update overwrites a usuario.  An empty PasswordHash keeps the stored
// hash, so profile edits do not have to resend the password.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.Email = normalizeEmail(u.Email)
	q := `UPDATE Usuarios SET nombre = ?, correo = ?, rol = ?, telefono = ?, updatedAt = NOW()`
	args := []interface{}{u.Name, u.Email, u.Role, u.Phone}
	if u.PasswordHash != "" {
		q = `UPDATE Usuarios SET nombre = ?, correo = ?, contrasena = ?, rol = ?, telefono = ?, updatedAt = NOW()`
		args = []interface{}{u.Name, u.Email, u.PasswordHash, u.Role, u.Phone}
	}
	q += ` WHERE id = ?`
	args = append(args, u.ID)
	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a usuario.  Usuarios that still own reservations fail
// with ErrConflict.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Usuarios WHERE id = ?`, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
