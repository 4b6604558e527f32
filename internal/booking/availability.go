package booking

import (
	"context"

	"github.com/golapp/field-booking/internal/model"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect.  Arguments are minutes from midnight.  Back-to-back slots
// (e1 == s2) do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// CheckConflict returns the active (pendiente/confirmada) reservations for
// the field and date whose slots overlap [start, end).  excludeID skips one
// reservation, used when editing an existing booking so it does not collide
// with itself.  An empty result means the slot is free.  Read-only.
func (s *Service) CheckConflict(ctx context.Context, fieldID uint64, date, start, end string, excludeID uint64) ([]model.Reservation, error) {
	cs, ce, err := slotRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.conflicts(ctx, s.store, fieldID, date, cs, ce, excludeID)
}

// conflicts is the shared overlap scan; st may be a transaction-scoped
// store, in which case the rows read stay locked until commit.
func (s *Service) conflicts(ctx context.Context, st Store, fieldID uint64, date string, cs, ce int, excludeID uint64) ([]model.Reservation, error) {
	existing, err := st.ActiveReservations(ctx, fieldID, date, excludeID)
	if err != nil {
		return nil, err
	}
	var out []model.Reservation
	for _, r := range existing {
		rs, err := ParseClock(r.StartTime)
		if err != nil {
			continue // malformed row, cannot block the slot
		}
		re, err := ParseClock(r.EndTime)
		if err != nil {
			continue
		}
		if Overlaps(cs, ce, rs, re) {
			out = append(out, r)
		}
	}
	return out, nil
}

// OccupiedSlot is one taken interval on a field's day, as returned by the
// horarios-ocupados endpoint.
type OccupiedSlot struct {
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
	Status    string `json:"estado"`
}

// OccupiedSlots lists the active reservation intervals for a field on a
// date, for rendering the day grid in the frontend.
func (s *Service) OccupiedSlots(ctx context.Context, fieldID uint64, date string) ([]OccupiedSlot, error) {
	if _, err := ParseDate(date, s.loc); err != nil {
		return nil, &ValidationError{Field: "fecha", Reason: "formato esperado YYYY-MM-DD"}
	}
	existing, err := s.store.ActiveReservations(ctx, fieldID, date, 0)
	if err != nil {
		return nil, err
	}
	slots := make([]OccupiedSlot, 0, len(existing))
	for _, r := range existing {
		slots = append(slots, OccupiedSlot{StartTime: r.StartTime, EndTime: r.EndTime, Status: r.Status})
	}
	return slots, nil
}
