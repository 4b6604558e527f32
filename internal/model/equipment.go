package model

import "time"

// Loan status values stored in Prestamos.estado.
const (
	LoanActive   = "activo"
	LoanReturned = "devuelto"
	LoanOverdue  = "vencido"
	LoanLost     = "perdido"
	LoanDamaged  = "dañado"
)

// LoanStatuses lists every accepted Prestamos.estado value.  Status change
// requests are validated against this set.
var LoanStatuses = []string{LoanActive, LoanReturned, LoanOverdue, LoanLost, LoanDamaged}

// Equipment is a loanable product (balls, vests).  The available quantity is
// never stored; it is always derived as TotalQuantity minus the sum of
// active loan quantities, which keeps the stock invariant checkable in one
// query.
type Equipment struct {
	ID            uint64 `json:"id"`              // Productos.id
	Name          string `json:"nombre_producto"` // Productos.nombre_producto
	TotalQuantity int    `json:"cantidad_total"`  // Productos.cantidad_total
}

// Loan records equipment handed out against a reservation.  Loans are
// created automatically when a reservation is confirmed and manually by
// operators; they are never deleted automatically, only moved through the
// Loan* statuses above.
type Loan struct {
	ID            uint64    `json:"id"`                // Prestamos.id
	ReservationID uint64    `json:"id_reserva"`        // Prestamos.id_reserva
	EquipmentID   uint64    `json:"id_producto"`       // Prestamos.id_producto
	Quantity      int       `json:"cantidad_prestada"` // Prestamos.cantidad_prestada
	Status        string    `json:"estado"`            // Prestamos.estado
	CreatedAt     time.Time `json:"createdAt"`         // Prestamos.createdAt
	UpdatedAt     time.Time `json:"updatedAt"`         // Prestamos.updatedAt
}

// ValidLoanStatus reports whether s is an accepted Prestamos.estado value.
func ValidLoanStatus(s string) bool {
	for _, v := range LoanStatuses {
		if v == s {
			return true
		}
	}
	return false
}
