package model

import "time"

// User roles stored in Usuarios.rol.
const (
	RoleClient = "cliente"
	RoleAdmin  = "administrador"
)

// User is an operator or client account.  Passwords are stored as bcrypt
// hashes; the hash never leaves the server (json "-").
type User struct {
	ID           uint64    `json:"id"`        // Usuarios.id
	Name         string    `json:"nombre"`    // Usuarios.nombre
	Email        string    `json:"correo"`    // Usuarios.correo
	PasswordHash string    `json:"-"`         // Usuarios.contrasena (bcrypt)
	Role         string    `json:"rol"`       // Usuarios.rol
	Phone        string    `json:"telefono"`  // Usuarios.telefono
	CreatedAt    time.Time `json:"createdAt"` // Usuarios.createdAt
	UpdatedAt    time.Time `json:"updatedAt"` // Usuarios.updatedAt
}
