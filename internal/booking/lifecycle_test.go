package booking

import (
	"context"
	"testing"
	"time"

	"github.com/golapp/field-booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		loc = time.FixedZone("COT", -5*60*60)
	}
	return loc
}

func TestCreateReservation_DefaultsToPending(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store)

	res, err := svc.CreateReservation(context.Background(), ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, res.Reservation.Status)
	assert.Empty(t, res.Loans, "pendiente reservations get no equipment yet")
}

func TestCreateReservation_ConflictRejected(t *testing.T) {
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

	_, err = svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:30", EndTime: "11:30",
	})
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Conflicting, 1)
	assert.Equal(t, "10:00", cerr.Conflicting[0].StartTime)

	// Only the original reservation exists.
	active, err := store.ActiveReservations(ctx, field.ID, "2024-06-01", 0)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestCreateReservation_MissingReferences(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store)
	ctx := context.Background()

	var nerr *NotFoundError
	_, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: 999, UserID: user.ID, Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
	})
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "cancha", nerr.Entity)

	_, err = svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: 999, Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
	})
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "usuario", nerr.Entity)

	var verr *ValidationError
	_, err = svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID, StartTime: "10:00", EndTime: "11:00",
	})
	require.ErrorAs(t, err, &verr)
}

func TestUpdateReservation_ConfirmTriggersAllocationOnce(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 5", 25000)
	field := store.addField("Cancha Sur", ft.ID)
	user := store.addUser("Laura")
	store.addEquipment(EquipmentBall, 3)
	store.addEquipment(EquipmentVests, 20)
	pub := &recordingPublisher{}
	svc := New(store, WithPublisher(pub))
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	upd, err := svc.UpdateReservation(ctx, res.Reservation.ID, ReservationInput{Status: model.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, upd.Reservation.Status)
	assert.Len(t, upd.Loans, 2)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "request", pub.events[0].Trigger)

	// Confirming again is a no-op for allocation.
	upd, err = svc.UpdateReservation(ctx, res.Reservation.ID, ReservationInput{Status: model.StatusConfirmed})
	require.NoError(t, err)
	assert.Empty(t, upd.Loans)
	loans, _ := store.LoansByReservation(ctx, res.Reservation.ID)
	assert.Len(t, loans, 2, "no duplicate loan rows after repeated confirmation")
}

func TestUpdateReservation_RejectsUnknownReferences(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store)
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	var nerr *NotFoundError
	_, err = svc.UpdateReservation(ctx, res.Reservation.ID, ReservationInput{UserID: 9999})
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "usuario", nerr.Entity)

	_, err = svc.UpdateReservation(ctx, res.Reservation.ID, ReservationInput{FieldID: 9999})
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "cancha", nerr.Entity)

	// The stored reservation kept its original references.
	stored, err := store.GetReservation(ctx, res.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	assert.Equal(t, field.ID, stored.FieldID)
}

func TestUpdateReservation_NeverMovesBackward(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store)
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
		Status: model.StatusConfirmed,
	})
	require.NoError(t, err)
	id := res.Reservation.ID

	var ierr *InvalidStateError
	_, err = svc.UpdateReservation(ctx, id, ReservationInput{Status: model.StatusPending})
	require.ErrorAs(t, err, &ierr)

	require.NoError(t, store.SetReservationStatus(ctx, id, model.StatusFinalized))
	_, err = svc.UpdateReservation(ctx, id, ReservationInput{Status: model.StatusConfirmed})
	require.ErrorAs(t, err, &ierr)
	_, err = svc.CancelReservation(ctx, id)
	require.ErrorAs(t, err, &ierr, "finalizada is absorbing")

	_, err = svc.UpdateReservation(ctx, id, ReservationInput{Status: "reservada"})
	require.ErrorAs(t, err, &ierr, "unknown status values are rejected")
}

func TestCancelReservation_KeepsLoans(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 5", 25000)
	field := store.addField("Cancha Sur", ft.ID)
	user := store.addUser("Laura")
	store.addEquipment(EquipmentBall, 3)
	store.addEquipment(EquipmentVests, 20)
	svc := New(store)
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
		Status: model.StatusConfirmed,
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelReservation(ctx, res.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	loans, err := store.LoansByReservation(ctx, res.Reservation.ID)
	require.NoError(t, err)
	assert.Len(t, loans, 2, "cancellation never auto-returns equipment")
	for _, l := range loans {
		assert.Equal(t, model.LoanActive, l.Status)
	}
}

func TestSweep_PromotesPendingAfterGrace(t *testing.T) {
	loc := bogota(t)
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	store.addEquipment(EquipmentBall, 3)
	store.addEquipment(EquipmentVests, 20)

	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now := created.Add(61 * time.Minute)
	pub := &recordingPublisher{}
	svc := New(store,
		WithLocation(loc),
		WithPublisher(pub),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()

	fresh := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-06-02",
		StartTime: "10:00", EndTime: "11:00", Status: model.StatusPending, CreatedAt: now.Add(-5 * time.Minute)}
	require.NoError(t, store.InsertReservation(ctx, fresh))
	aged := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-06-02",
		StartTime: "12:00", EndTime: "13:00", Status: model.StatusPending, CreatedAt: created}
	require.NoError(t, store.InsertReservation(ctx, aged))

	rep, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.PendingToConfirmed)
	assert.Equal(t, 0, rep.Errors)

	got, _ := store.GetReservation(ctx, aged.ID)
	assert.Equal(t, model.StatusConfirmed, got.Status)
	got, _ = store.GetReservation(ctx, fresh.ID)
	assert.Equal(t, model.StatusPending, got.Status, "inside the grace period")

	// The sweep allocates equipment for what it confirms.
	loans, _ := store.LoansByReservation(ctx, aged.ID)
	assert.Len(t, loans, 2)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "sweep", pub.events[0].Trigger)
}

func TestSweep_FinalizesPastEndTime(t *testing.T) {
	loc := bogota(t)
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")

	// Local time 18:05 on 2024-06-01.
	now := time.Date(2024, 6, 1, 18, 5, 0, 0, loc)
	svc := New(store, WithLocation(loc), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	endedToday := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-06-01",
		StartTime: "17:00", EndTime: "18:00", Status: model.StatusConfirmed, CreatedAt: now.Add(-24 * time.Hour)}
	require.NoError(t, store.InsertReservation(ctx, endedToday))
	stillRunning := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-06-01",
		StartTime: "18:00", EndTime: "19:00", Status: model.StatusConfirmed, CreatedAt: now.Add(-24 * time.Hour)}
	require.NoError(t, store.InsertReservation(ctx, stillRunning))
	pastDate := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-05-30",
		StartTime: "10:00", EndTime: "11:00", Status: model.StatusConfirmed, CreatedAt: now.Add(-72 * time.Hour)}
	require.NoError(t, store.InsertReservation(ctx, pastDate))

	rep, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.ConfirmedToFinalized)

	got, _ := store.GetReservation(ctx, endedToday.ID)
	assert.Equal(t, model.StatusFinalized, got.Status)
	got, _ = store.GetReservation(ctx, pastDate.ID)
	assert.Equal(t, model.StatusFinalized, got.Status)
	got, _ = store.GetReservation(ctx, stillRunning.ID)
	assert.Equal(t, model.StatusConfirmed, got.Status, "slot still in progress")
}

func TestSweep_IsolatesBadRecords(t *testing.T) {
	loc := bogota(t)
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")

	now := time.Date(2024, 6, 1, 20, 0, 0, 0, loc)
	svc := New(store, WithLocation(loc), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	broken := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-06-01",
		StartTime: "10:00", EndTime: "no-es-hora", Status: model.StatusConfirmed, CreatedAt: now.Add(-4 * time.Hour)}
	require.NoError(t, store.InsertReservation(ctx, broken))
	good := &model.Reservation{FieldID: field.ID, UserID: user.ID, Date: "2024-06-01",
		StartTime: "10:00", EndTime: "11:00", Status: model.StatusConfirmed, CreatedAt: now.Add(-4 * time.Hour)}
	require.NoError(t, store.InsertReservation(ctx, good))

	rep, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.ConfirmedToFinalized, "the good record is still processed")
	assert.Equal(t, 1, rep.Errors)
}

func TestDeleteReservation(t *testing.T) {
	store := newFakeStore()
	ft := store.addFieldType("Fútbol 7", 35000)
	field := store.addField("Cancha Norte", ft.ID)
	user := store.addUser("Carlos")
	svc := New(store)
	ctx := context.Background()

	res, err := svc.CreateReservation(ctx, ReservationInput{
		FieldID: field.ID, UserID: user.ID,
		Date: "2024-06-01", StartTime: "10:00", EndTime: "11:00",
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteReservation(ctx, res.Reservation.ID))

	var nerr *NotFoundError
	err = svc.DeleteReservation(ctx, res.Reservation.ID)
	require.ErrorAs(t, err, &nerr)
}
