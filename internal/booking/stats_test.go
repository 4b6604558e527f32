package booking

import (
	"context"
	"testing"
	"time"

	"github.com/golapp/field-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture(t *testing.T, now time.Time) (*Service, *fakeStore, uint64, uint64) {
	t.Helper()
	loc := bogota(t)
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store, WithLocation(loc), WithClock(func() time.Time { return now }))
	return svc, store, field.ID, user.ID
}

func insertReservation(t *testing.T, store *fakeStore, fieldID, userID uint64, date, start, end, status string) {
	t.Helper()
	r := &model.Reservation{FieldID: fieldID, UserID: userID, Date: date,
		StartTime: start, EndTime: end, Status: status}
	require.NoError(t, store.InsertReservation(context.Background(), r))
}

func TestReservationsToday(t *testing.T) {
	loc := bogota(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, loc)
	svc, store, fieldID, userID := statsFixture(t, now)

	insertReservation(t, store, fieldID, userID, "2024-06-15", "08:00", "09:00", model.StatusPending)
	insertReservation(t, store, fieldID, userID, "2024-06-15", "10:00", "11:00", model.StatusConfirmed)
	insertReservation(t, store, fieldID, userID, "2024-06-15", "12:00", "13:00", model.StatusCancelled)
	insertReservation(t, store, fieldID, userID, "2024-06-14", "10:00", "11:00", model.StatusConfirmed)

	st, err := svc.ReservationsToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", st.Date)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.ByStatus[model.StatusPending])
	assert.Equal(t, 1, st.ByStatus[model.StatusConfirmed])
	assert.Equal(t, 1, st.ByStatus[model.StatusCancelled])
}

func TestMonthlyRevenue(t *testing.T) {
	loc := bogota(t)
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, loc)
	svc, store, fieldID, userID := statsFixture(t, now)
	ctx := context.Background()

	// June: one daytime hour plus one night hour, both billable, and one
	// cancelled hour that must not count.
	insertReservation(t, store, fieldID, userID, "2024-06-10", "10:00", "11:00", model.StatusConfirmed)
	insertReservation(t, store, fieldID, userID, "2024-06-11", "19:00", "20:00", model.StatusFinalized)
	insertReservation(t, store, fieldID, userID, "2024-06-12", "10:00", "11:00", model.StatusCancelled)
	// May: one daytime hour.
	insertReservation(t, store, fieldID, userID, "2024-05-10", "10:00", "11:00", model.StatusFinalized)

	st, err := svc.MonthlyRevenue(ctx, 6, 2024)
	require.NoError(t, err)
	assert.Equal(t, 6, st.Month)
	assert.Equal(t, 2024, st.Year)
	assert.InDelta(t, 35000+35000*1.2, st.Revenue, 0.001)
	assert.InDelta(t, 35000, st.PriorRevenue, 0.001)
	assert.InDelta(t, (st.Revenue-35000)/35000*100, st.GrowthPercent, 0.001)
	assert.Equal(t, 2, st.Reservations)

	// Zero month/year fall back to the current month.
	cur, err := svc.MonthlyRevenue(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, cur.Month)
	assert.Equal(t, 2024, cur.Year)
}

func TestMonthlyRevenue_GrowthZeroWhenPriorEmpty(t *testing.T) {
	loc := bogota(t)
	now := time.Date(2024, 6, 20, 12, 0, 0, 0, loc)
	svc, store, fieldID, userID := statsFixture(t, now)

	insertReservation(t, store, fieldID, userID, "2024-06-10", "10:00", "11:00", model.StatusConfirmed)

	st, err := svc.MonthlyRevenue(context.Background(), 6, 2024)
	require.NoError(t, err)
	assert.Zero(t, st.PriorRevenue)
	assert.Zero(t, st.GrowthPercent)
}

func TestMonthlyRevenue_JanuaryLooksAtPriorDecember(t *testing.T) {
	loc := bogota(t)
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, loc)
	svc, store, fieldID, userID := statsFixture(t, now)

	insertReservation(t, store, fieldID, userID, "2025-01-10", "10:00", "11:00", model.StatusConfirmed)
	insertReservation(t, store, fieldID, userID, "2024-12-10", "10:00", "12:00", model.StatusFinalized)

	st, err := svc.MonthlyRevenue(context.Background(), 1, 2025)
	require.NoError(t, err)
	assert.InDelta(t, 35000, st.Revenue, 0.001)
	assert.InDelta(t, 70000, st.PriorRevenue, 0.001)
}

func TestAverageOccupancy(t *testing.T) {
	loc := bogota(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, loc)
	svc, store, fieldID, userID := statsFixture(t, now)

	// The fixture field carries no open/close window, so the default day
	// hours apply: 1 field * 16h * 7 days = 112 available hours.
	insertReservation(t, store, fieldID, userID, "2024-06-15", "10:00", "12:00", model.StatusConfirmed)
	insertReservation(t, store, fieldID, userID, "2024-06-10", "10:00", "11:00", model.StatusFinalized)
	insertReservation(t, store, fieldID, userID, "2024-06-14", "10:00", "11:00", model.StatusPending)
	// Outside the 7-day window.
	insertReservation(t, store, fieldID, userID, "2024-06-01", "10:00", "11:00", model.StatusConfirmed)

	st, err := svc.AverageOccupancy(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 7, st.WindowDays)
	assert.InDelta(t, 3.0, st.OccupiedHours, 0.001)
	assert.InDelta(t, 112.0, st.AvailableHours, 0.001)
	assert.InDelta(t, 3.0/112.0*100, st.Percent, 0.001)
}

func TestAverageOccupancy_UsesFieldHoursWhenPresent(t *testing.T) {
	loc := bogota(t)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, loc)
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 5", 25000)
	field := store.addField("Cancha Sur", ft.ID)
	field.OpenTime = "08:00"
	field.CloseTime = "22:00"
	user := store.addUser("Laura")
	svc := New(store, WithLocation(loc), WithClock(func() time.Time { return now }))

	insertReservation(t, store, field.ID, user.ID, "2024-06-15", "10:00", "11:00", model.StatusConfirmed)

	st, err := svc.AverageOccupancy(context.Background(), 7)
	require.NoError(t, err)
	// 14 open hours * 7 days.
	assert.InDelta(t, 98.0, st.AvailableHours, 0.001)
	assert.InDelta(t, 1.0/98.0*100, st.Percent, 0.001)
}
