package booking

import (
	"context"
	"testing"

	"github.com/golapp/field-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "10:00", "11:00", "10:00", "11:00", true},
		{"contained", "10:00", "12:00", "10:30", "11:00", true},
		{"straddles start", "10:30", "11:30", "10:00", "11:00", true},
		{"straddles end", "09:30", "10:30", "10:00", "11:00", true},
		{"back to back before", "09:00", "10:00", "10:00", "11:00", false},
		{"back to back after", "11:00", "12:00", "10:00", "11:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s1, _ := ParseClock(tc.s1)
			e1, _ := ParseClock(tc.e1)
			s2, _ := ParseClock(tc.s2)
			e2, _ := ParseClock(tc.e2)
			assert.Equal(t, tc.want, Overlaps(s1, e1, s2, e2))
			// The predicate is symmetric.
			assert.Equal(t, tc.want, Overlaps(s2, e2, s1, e1))
		})
	}
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("18:30")
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, min)

	min, err = ParseClock("09:00:00") // MySQL TIME scan format
	require.NoError(t, err)
	assert.Equal(t, 9*60, min)

	for _, bad := range []string{"", "25:00", "10:75", "diez", "10", "10:00:00:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestCheckConflict_ReportsOverlappingReservation(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store)

	ctx := context.Background()
	_, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
		Status: model.StatusConfirmed,
	})
	require.NoError(t, err)

	conflicting, err := svc.CheckConflict(ctx, field.ID, "2024-06-01", "10:30", "11:30", 0)
	require.NoError(t, err)
	require.Len(t, conflicting, 1)
	assert.Equal(t, "10:00", conflicting[0].StartTime)
	assert.Equal(t, "11:00", conflicting[0].EndTime)

	// The same slot on another date is free.
	conflicting, err = svc.CheckConflict(ctx, field.ID, "2024-06-02", "10:30", "11:30", 0)
	require.NoError(t, err)
	assert.Empty(t, conflicting)
}

func TestCheckConflict_IgnoresCancelledAndExcluded(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 5", 25000)
	field := store.addField("Cancha Sur", ft.ID)
	user := store.addUser("Laura")
	svc := New(store)

	ctx := context.Background()
	res, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "14:00", EndTime: "15:00",
	})
	require.NoError(t, err)

	// Editing the reservation itself must not self-conflict.
	conflicting, err := svc.CheckConflict(ctx, field.ID, "2024-06-01", "14:00", "15:00", res.Reservation.ID)
	require.NoError(t, err)
	assert.Empty(t, conflicting)

	_, err = svc.CancelReservation(ctx, res.Reservation.ID)
	require.NoError(t, err)

	conflicting, err = svc.CheckConflict(ctx, field.ID, "2024-06-01", "14:00", "15:00", 0)
	require.NoError(t, err)
	assert.Empty(t, conflicting, "cancelled reservations do not block the slot")
}

func TestCheckConflict_RejectsInvertedRange(t *testing.T) {
	svc := New(newFakeStore())
	_, err := svc.CheckConflict(context.Background(), 1, "2024-06-01", "11:00", "10:00", 0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOccupiedSlots(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 11", 50000)
	field := store.addField("Cancha Principal", ft.ID)
	user := store.addUser("Ana")
	svc := New(store)

	ctx := context.Background()
	for _, slot := range [][2]string{{"08:00", "09:00"}, {"10:00", "12:00"}} {
		_, err := svc.CreateReservation(ctx, ReservationInput{
			FieldID: field.ID, UserID: user.ID,
			Date: "2024-06-01", StartTime: slot[0], EndTime: slot[1],
		})
		require.NoError(t, err)
	}
	slots, err := svc.OccupiedSlots(ctx, field.ID, "2024-06-01")
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	_, err = svc.OccupiedSlots(ctx, field.ID, "01/06/2024")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
