package booking

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/golapp/field-booking/internal/model"
)

// ReservationInput is the operator-facing payload for creating or updating
// a reservation.  Times are "HH:MM", the date is "YYYY-MM-DD".
type ReservationInput struct {
	FieldID       uint64
	UserID        uint64
	Date          string
	StartTime     string
	EndTime       string
	Status        string // empty defaults to pendiente on create
	Notes         string
	CustomerPhone string
}

// ReservationResult bundles a persisted reservation with the loans the
// allocator created for it and the equipment warnings it reported.
type ReservationResult struct {
	Reservation *model.Reservation
	Loans       []model.Loan
	Warnings    []AllocationFailure
}

// statusRank orders the forward-only lifecycle.  cancelada is handled
// separately because it is reachable from both non-terminal states.
var statusRank = map[string]int{
	model.StatusPending:   0,
	model.StatusConfirmed: 1,
	model.StatusFinalized: 2,
}

// canTransition reports whether a reservation may move from one status to
// another.  Staying put is always allowed; terminal states absorb.
func canTransition(from, to string) bool {
	if from == to {
		return true
	}
	if from == model.StatusCancelled || from == model.StatusFinalized {
		return false
	}
	if to == model.StatusCancelled {
		return true
	}
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr > fr
}

func (in *ReservationInput) validate() error {
	if in.FieldID == 0 {
		return &ValidationError{Field: "id_cancha", Reason: "es requerido"}
	}
	if in.UserID == 0 {
		return &ValidationError{Field: "id_usuario", Reason: "es requerido"}
	}
	if strings.TrimSpace(in.Date) == "" {
		return &ValidationError{Field: "fecha_reserva", Reason: "es requerido"}
	}
	if _, _, err := slotRange(in.StartTime, in.EndTime); err != nil {
		return err
	}
	return nil
}

// CreateReservation validates the request, checks availability and persists
// the reservation in one transaction.  A reservation created directly as
// confirmada gets its equipment allocated inside the same transaction; the
// confirmation event goes out only after commit.
func (s *Service) CreateReservation(ctx context.Context, in ReservationInput) (*ReservationResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := ParseDate(in.Date, s.loc); err != nil {
		return nil, &ValidationError{Field: "fecha_reserva", Reason: "formato esperado YYYY-MM-DD"}
	}
	status := in.Status
	if status == "" {
		status = model.StatusPending
	}
	if status != model.StatusPending && status != model.StatusConfirmed {
		return nil, &InvalidStateError{Status: status, Reason: "una reserva nueva sólo puede ser pendiente o confirmada"}
	}

	field, err := s.store.GetField(ctx, in.FieldID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	ftype, err := s.store.GetFieldType(ctx, field.TypeID)
	if err != nil {
		return nil, err
	}

	cs, ce, _ := slotRange(in.StartTime, in.EndTime)
	res := &model.Reservation{
		FieldID:       in.FieldID,
		UserID:        in.UserID,
		Date:          in.Date,
		StartTime:     FormatClock(cs),
		EndTime:       FormatClock(ce),
		Status:        status,
		Notes:         in.Notes,
		CustomerPhone: in.CustomerPhone,
	}
	result := &ReservationResult{Reservation: res}
	err = s.store.InTx(ctx, func(st Store) error {
		conflicting, err := s.conflicts(ctx, st, in.FieldID, in.Date, cs, ce, 0)
		if err != nil {
			return err
		}
		if len(conflicting) > 0 {
			return &ConflictError{FieldID: in.FieldID, Date: in.Date, Conflicting: conflicting}
		}
		if err := st.InsertReservation(ctx, res); err != nil {
			return err
		}
		if status == model.StatusConfirmed {
			result.Loans, result.Warnings, err = s.allocate(ctx, st, res.ID, ftype.Label)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if status == model.StatusConfirmed {
		s.publishConfirmed(ctx, s.confirmedEvent(res, "request"))
	}
	return result, nil
}

// UpdateReservation applies an edit to an existing reservation.  Slot
// changes re-run the availability check (excluding the reservation itself),
// status changes must move forward, and a transition into confirmada runs
// the idempotent allocator.
func (s *Service) UpdateReservation(ctx context.Context, id uint64, in ReservationInput) (*ReservationResult, error) {
	existing, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	// Merge: absent fields keep their stored values, matching the partial
	// PUT bodies the admin frontend sends.
	merged := *existing
	if in.FieldID != 0 {
		merged.FieldID = in.FieldID
	}
	if in.UserID != 0 {
		merged.UserID = in.UserID
	}
	if strings.TrimSpace(in.Date) != "" {
		merged.Date = in.Date
	}
	if strings.TrimSpace(in.StartTime) != "" {
		merged.StartTime = in.StartTime
	}
	if strings.TrimSpace(in.EndTime) != "" {
		merged.EndTime = in.EndTime
	}
	if in.Notes != "" {
		merged.Notes = in.Notes
	}
	if in.CustomerPhone != "" {
		merged.CustomerPhone = in.CustomerPhone
	}
	newStatus := existing.Status
	if in.Status != "" {
		newStatus = in.Status
	}
	if _, ok := statusRank[newStatus]; !ok && newStatus != model.StatusCancelled {
		return nil, &InvalidStateError{Status: newStatus, Reason: "estado de reserva desconocido"}
	}
	if !canTransition(existing.Status, newStatus) {
		return nil, &InvalidStateError{Status: newStatus, Reason: "la reserva no puede retroceder de " + existing.Status}
	}
	merged.Status = newStatus

	cs, ce, err := slotRange(merged.StartTime, merged.EndTime)
	if err != nil {
		return nil, err
	}
	if _, err := ParseDate(merged.Date, s.loc); err != nil {
		return nil, &ValidationError{Field: "fecha_reserva", Reason: "formato esperado YYYY-MM-DD"}
	}
	merged.StartTime = FormatClock(cs)
	merged.EndTime = FormatClock(ce)

	if merged.FieldID != existing.FieldID {
		if _, err := s.store.GetField(ctx, merged.FieldID); err != nil {
			return nil, err
		}
	}
	if merged.UserID != existing.UserID {
		if _, err := s.store.GetUser(ctx, merged.UserID); err != nil {
			return nil, err
		}
	}

	becomesConfirmed := newStatus == model.StatusConfirmed && existing.Status != model.StatusConfirmed
	var ftypeLabel string
	if becomesConfirmed {
		field, err := s.store.GetField(ctx, merged.FieldID)
		if err != nil {
			return nil, err
		}
		ftype, err := s.store.GetFieldType(ctx, field.TypeID)
		if err != nil {
			return nil, err
		}
		ftypeLabel = ftype.Label
	}

	result := &ReservationResult{Reservation: &merged}
	err = s.store.InTx(ctx, func(st Store) error {
		// A reservation keeps occupying its slot unless it was cancelled,
		// so the overlap invariant must hold for the merged slot too.
		if merged.IsActive() {
			conflicting, err := s.conflicts(ctx, st, merged.FieldID, merged.Date, cs, ce, id)
			if err != nil {
				return err
			}
			if len(conflicting) > 0 {
				return &ConflictError{FieldID: merged.FieldID, Date: merged.Date, Conflicting: conflicting}
			}
		}
		if err := st.UpdateReservation(ctx, &merged); err != nil {
			return err
		}
		if becomesConfirmed {
			var err error
			result.Loans, result.Warnings, err = s.allocate(ctx, st, id, ftypeLabel)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if becomesConfirmed {
		s.publishConfirmed(ctx, s.confirmedEvent(&merged, "request"))
	}
	return result, nil
}

// CancelReservation moves a reservation to cancelada.  Existing loans stay
// untouched; returning equipment is a separate operator action.
func (s *Service) CancelReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(res.Status, model.StatusCancelled) {
		return nil, &InvalidStateError{Status: model.StatusCancelled, Reason: "la reserva ya está " + res.Status}
	}
	if err := s.store.SetReservationStatus(ctx, id, model.StatusCancelled); err != nil {
		return nil, err
	}
	res.Status = model.StatusCancelled
	return res, nil
}

// DeleteReservation removes a reservation outright.  Loans reference the
// reservation and are kept; the operator decides their fate.
func (s *Service) DeleteReservation(ctx context.Context, id uint64) error {
	if _, err := s.store.GetReservation(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteReservation(ctx, id)
}

// SweepReport summarizes one pass of the scheduled status sweep.
type SweepReport struct {
	PendingToConfirmed   int
	ConfirmedToFinalized int
	Errors               int
}

// Sweep is the recurring status pass: pendiente reservations older than the
// grace period become confirmada (equipment allocated via the idempotent
// allocator), and confirmada reservations whose end instant has passed in
// the facility timezone become finalizada.  Each reservation is processed
// in isolation; one bad record is logged and skipped, never blocking the
// rest.
func (s *Service) Sweep(ctx context.Context) (SweepReport, error) {
	var rep SweepReport
	now := s.now().In(s.loc)

	pending, err := s.store.ReservationsByStatus(ctx, model.StatusPending)
	if err != nil {
		return rep, err
	}
	for _, r := range pending {
		if now.Sub(r.CreatedAt) < s.grace {
			continue
		}
		if err := s.confirmOne(ctx, r); err != nil {
			rep.Errors++
			log.Printf("sweep: confirmar reserva %d: %v", r.ID, err)
			continue
		}
		rep.PendingToConfirmed++
	}

	confirmed, err := s.store.ReservationsByStatus(ctx, model.StatusConfirmed)
	if err != nil {
		return rep, err
	}
	for _, r := range confirmed {
		ended, err := s.slotEnded(r, now)
		if err != nil {
			rep.Errors++
			log.Printf("sweep: reserva %d con horario inválido: %v", r.ID, err)
			continue
		}
		if !ended {
			continue
		}
		if err := s.store.SetReservationStatus(ctx, r.ID, model.StatusFinalized); err != nil {
			rep.Errors++
			log.Printf("sweep: finalizar reserva %d: %v", r.ID, err)
			continue
		}
		rep.ConfirmedToFinalized++
	}
	return rep, nil
}

// confirmOne promotes a single pendiente reservation inside a transaction,
// allocating equipment with the same idempotent path used by request-driven
// confirmations.
func (s *Service) confirmOne(ctx context.Context, r model.Reservation) error {
	field, err := s.store.GetField(ctx, r.FieldID)
	if err != nil {
		return err
	}
	ftype, err := s.store.GetFieldType(ctx, field.TypeID)
	if err != nil {
		return err
	}
	err = s.store.InTx(ctx, func(st Store) error {
		if err := st.SetReservationStatus(ctx, r.ID, model.StatusConfirmed); err != nil {
			return err
		}
		_, failures, err := s.allocate(ctx, st, r.ID, ftype.Label)
		for _, f := range failures {
			log.Printf("sweep: reserva %d sin %s: %s", r.ID, f.Equipment, f.Reason)
		}
		return err
	})
	if err != nil {
		return err
	}
	r.Status = model.StatusConfirmed
	s.publishConfirmed(ctx, s.confirmedEvent(&r, "sweep"))
	return nil
}

// slotEnded reports whether the reservation's end instant has passed.  The
// comparison is strict: a reservation ending at 18:00 is still confirmada
// at exactly 18:00 and finalizes on the first sweep after.
func (s *Service) slotEnded(r model.Reservation, now time.Time) (bool, error) {
	day, err := ParseDate(r.Date, s.loc)
	if err != nil {
		return false, err
	}
	endMin, err := ParseClock(r.EndTime)
	if err != nil {
		return false, err
	}
	end := day.Add(time.Duration(endMin) * time.Minute)
	return now.After(end), nil
}

func (s *Service) confirmedEvent(r *model.Reservation, trigger string) ConfirmedEvent {
	return ConfirmedEvent{
		ReservationID: r.ID,
		FieldID:       r.FieldID,
		UserID:        r.UserID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Trigger:       trigger,
		ConfirmedAt:   s.now().In(s.loc).Format(time.RFC3339),
	}
}
