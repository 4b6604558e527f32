package booking

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/golapp/field-booking/internal/model"
)

// Product names the automatic allocator looks up in the Productos table.
const (
	EquipmentBall  = "Balón"
	EquipmentVests = "Chalecos"
)

// AllocationFailure reports one equipment item the allocator could not
// loan.  Failures are warnings: the reservation stands regardless.
type AllocationFailure struct {
	Equipment string `json:"producto"`
	Reason    string `json:"motivo"`
}

// vestsForType maps a field type label to the number of vests loaned when
// a reservation on that type is confirmed.  Unknown labels get nothing.
func vestsForType(label string) int {
	switch strings.TrimSpace(label) {
	case "Fútbol 11":
		return 11
	case "Fútbol 7":
		return 7
	case "Fútbol 5":
		return 5
	}
	return 0
}

// AllocateForReservation creates the automatic equipment loans for a newly
// confirmed reservation: N vests by field type plus one ball whenever vests
// are due.  The check is idempotent: a reservation that already has loans
// gets nothing, so repeated confirmations never duplicate rows.  Stock
// shortfalls on individual items are collected as failures; partial success
// is allowed and nothing is rolled back on account of equipment.
func (s *Service) AllocateForReservation(ctx context.Context, reservationID uint64, typeLabel string) ([]model.Loan, []AllocationFailure, error) {
	var created []model.Loan
	var failures []AllocationFailure
	err := s.store.InTx(ctx, func(st Store) error {
		var err error
		created, failures, err = s.allocate(ctx, st, reservationID, typeLabel)
		return err
	})
	return created, failures, err
}

// allocate runs inside the caller's transaction so the stock check and the
// loan inserts commit atomically with the reservation status change.
func (s *Service) allocate(ctx context.Context, st Store, reservationID uint64, typeLabel string) ([]model.Loan, []AllocationFailure, error) {
	vests := vestsForType(typeLabel)
	if vests == 0 {
		return nil, nil, nil
	}
	existing, err := st.LoansByReservation(ctx, reservationID)
	if err != nil {
		return nil, nil, err
	}
	if len(existing) > 0 {
		// Already allocated on a previous confirmation.
		return nil, nil, nil
	}

	var created []model.Loan
	var failures []AllocationFailure
	for _, want := range []struct {
		name string
		qty  int
	}{
		{EquipmentBall, 1},
		{EquipmentVests, vests},
	} {
		loan, fail, err := s.loanOne(ctx, st, reservationID, want.name, want.qty)
		if err != nil {
			return created, failures, err
		}
		if fail != nil {
			failures = append(failures, *fail)
			continue
		}
		created = append(created, *loan)
	}
	return created, failures, nil
}

// loanOne attempts a single stock-checked loan insert.  A missing product
// or insufficient stock becomes a failure entry, not an error.
func (s *Service) loanOne(ctx context.Context, st Store, reservationID uint64, name string, qty int) (*model.Loan, *AllocationFailure, error) {
	eq, err := st.EquipmentByName(ctx, name)
	if err != nil {
		if _, ok := err.(*NotFoundError); ok {
			return nil, &AllocationFailure{Equipment: name, Reason: "producto no registrado"}, nil
		}
		return nil, nil, err
	}
	loaned, err := st.ActiveLoanQuantity(ctx, eq.ID)
	if err != nil {
		return nil, nil, err
	}
	available := eq.TotalQuantity - loaned
	if qty > available {
		return nil, &AllocationFailure{
			Equipment: name,
			Reason:    fmt.Sprintf("stock insuficiente, disponible=%d solicitado=%d", available, qty),
		}, nil
	}
	loan := &model.Loan{
		ReservationID: reservationID,
		EquipmentID:   eq.ID,
		Quantity:      qty,
		Status:        model.LoanActive,
	}
	if err := st.InsertLoan(ctx, loan); err != nil {
		return nil, nil, err
	}
	return loan, nil, nil
}

// CreateLoan is the operator-initiated path: an arbitrary quantity of one
// product against one reservation, under the same stock rule as automatic
// allocation but failing hard with a StockError instead of a warning.
func (s *Service) CreateLoan(ctx context.Context, reservationID, equipmentID uint64, qty int) (*model.Loan, error) {
	if qty <= 0 {
		return nil, &ValidationError{Field: "cantidad_prestada", Reason: "debe ser mayor a 0"}
	}
	var loan *model.Loan
	err := s.store.InTx(ctx, func(st Store) error {
		if _, err := st.GetReservation(ctx, reservationID); err != nil {
			return err
		}
		eq, err := st.GetEquipment(ctx, equipmentID)
		if err != nil {
			return err
		}
		loaned, err := st.ActiveLoanQuantity(ctx, eq.ID)
		if err != nil {
			return err
		}
		available := eq.TotalQuantity - loaned
		if qty > available {
			return &StockError{
				Equipment: eq.Name,
				Total:     eq.TotalQuantity,
				Loaned:    loaned,
				Available: available,
				Requested: qty,
			}
		}
		loan = &model.Loan{
			ReservationID: reservationID,
			EquipmentID:   equipmentID,
			Quantity:      qty,
			Status:        model.LoanActive,
		}
		return st.InsertLoan(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("prestamo creado: reserva=%d producto=%d cantidad=%d", reservationID, equipmentID, qty)
	return loan, nil
}

// ValidateLoanStatus checks an operator-supplied Prestamos.estado value.
func ValidateLoanStatus(status string) error {
	if !model.ValidLoanStatus(status) {
		return &InvalidStateError{Status: status, Reason: "estado de préstamo desconocido"}
	}
	return nil
}
