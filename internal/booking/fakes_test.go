package booking

import (
	"context"
	"sync"
	"time"

	"github.com/golapp/field-booking/internal/model"
)

// fakeStore is an in-memory Store used by the unit tests.  InTx just runs
// the callback against the same store under a mutex; transactional
// isolation is the repository's concern, not the core's.
type fakeStore struct {
	mu           sync.Mutex
	nextID       uint64
	reservations map[uint64]*model.Reservation
	loans        map[uint64]*model.Loan
	fields       map[uint64]*model.Field
	fieldTypes   map[uint64]*model.FieldType
	users        map[uint64]*model.User
	equipment    map[uint64]*model.Equipment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:       1,
		reservations: map[uint64]*model.Reservation{},
		loans:        map[uint64]*model.Loan{},
		fields:       map[uint64]*model.Field{},
		fieldTypes:   map[uint64]*model.FieldType{},
		users:        map[uint64]*model.User{},
		equipment:    map[uint64]*model.Equipment{},
	}
}

func (f *fakeStore) id() uint64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) addFieldType(label string, price float64) *model.FieldType {
	ft := &model.FieldType{ID: f.id(), Label: label, PricePerHour: price}
	f.fieldTypes[ft.ID] = ft
	return ft
}

func (f *fakeStore) addField(name string, typeID uint64) *model.Field {
	fl := &model.Field{ID: f.id(), Name: name, Status: model.FieldAvailable, TypeID: typeID}
	f.fields[fl.ID] = fl
	return fl
}

func (f *fakeStore) addUser(name string) *model.User {
	u := &model.User{ID: f.id(), Name: name, Role: model.RoleClient}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addEquipment(name string, total int) *model.Equipment {
	e := &model.Equipment{ID: f.id(), Name: name, TotalQuantity: total}
	f.equipment[e.ID] = e
	return e
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Store) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(txView{f})
}

// txView bypasses the mutex so nested calls inside InTx do not deadlock.
type txView struct{ *fakeStore }

func (t txView) InTx(ctx context.Context, fn func(Store) error) error { return fn(t) }

func (f *fakeStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
	r.ID = f.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.UpdatedAt = r.CreatedAt
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, &NotFoundError{Entity: "reserva", ID: id}
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	if _, ok := f.reservations[r.ID]; !ok {
		return &NotFoundError{Entity: "reserva", ID: r.ID}
	}
	cp := *r
	cp.UpdatedAt = time.Now().UTC()
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteReservation(ctx context.Context, id uint64) error {
	if _, ok := f.reservations[id]; !ok {
		return &NotFoundError{Entity: "reserva", ID: id}
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeStore) SetReservationStatus(ctx context.Context, id uint64, status string) error {
	r, ok := f.reservations[id]
	if !ok {
		return &NotFoundError{Entity: "reserva", ID: id}
	}
	r.Status = status
	r.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeStore) ActiveReservations(ctx context.Context, fieldID uint64, date string, excludeID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.FieldID != fieldID || r.Date != date || r.ID == excludeID {
			continue
		}
		if r.IsActive() {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) ReservationsByStatus(ctx context.Context, status string) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CountByStatusOnDate(ctx context.Context, date string) (map[string]int, error) {
	out := map[string]int{}
	for _, r := range f.reservations {
		if r.Date == date {
			out[r.Status]++
		}
	}
	return out, nil
}

func (f *fakeStore) PricedReservations(ctx context.Context, fromDate, toDate string) ([]PricedReservation, error) {
	var out []PricedReservation
	for _, r := range f.reservations {
		if r.Date < fromDate || r.Date > toDate {
			continue
		}
		price := 0.0
		if fl, ok := f.fields[r.FieldID]; ok {
			if ft, ok := f.fieldTypes[fl.TypeID]; ok {
				price = ft.PricePerHour
			}
		}
		out = append(out, PricedReservation{
			Date:         r.Date,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			Status:       r.Status,
			PricePerHour: price,
		})
	}
	return out, nil
}

func (f *fakeStore) GetField(ctx context.Context, id uint64) (*model.Field, error) {
	fl, ok := f.fields[id]
	if !ok {
		return nil, &NotFoundError{Entity: "cancha", ID: id}
	}
	cp := *fl
	return &cp, nil
}

func (f *fakeStore) GetFieldType(ctx context.Context, id uint64) (*model.FieldType, error) {
	ft, ok := f.fieldTypes[id]
	if !ok {
		return nil, &NotFoundError{Entity: "tipo_cancha", ID: id}
	}
	cp := *ft
	return &cp, nil
}

func (f *fakeStore) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, &NotFoundError{Entity: "usuario", ID: id}
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) ActiveFieldHours(ctx context.Context) (int, float64, error) {
	count := 0
	hours := 0.0
	for _, fl := range f.fields {
		if fl.Status != model.FieldAvailable && fl.Status != model.FieldOccupied {
			continue
		}
		count++
		if fl.OpenTime != "" && fl.CloseTime != "" {
			o, err1 := ParseClock(fl.OpenTime)
			c, err2 := ParseClock(fl.CloseTime)
			if err1 == nil && err2 == nil && c > o {
				hours += float64(c-o) / 60.0
			}
		}
	}
	return count, hours, nil
}

func (f *fakeStore) GetEquipment(ctx context.Context, id uint64) (*model.Equipment, error) {
	e, ok := f.equipment[id]
	if !ok {
		return nil, &NotFoundError{Entity: "producto", ID: id}
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) EquipmentByName(ctx context.Context, name string) (*model.Equipment, error) {
	for _, e := range f.equipment {
		if e.Name == name {
			cp := *e
			return &cp, nil
		}
	}
	return nil, &NotFoundError{Entity: "producto"}
}

func (f *fakeStore) ActiveLoanQuantity(ctx context.Context, equipmentID uint64) (int, error) {
	total := 0
	for _, l := range f.loans {
		if l.EquipmentID == equipmentID && l.Status == model.LoanActive {
			total += l.Quantity
		}
	}
	return total, nil
}

func (f *fakeStore) LoansByReservation(ctx context.Context, reservationID uint64) ([]model.Loan, error) {
	var out []model.Loan
	for _, l := range f.loans {
		if l.ReservationID == reservationID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertLoan(ctx context.Context, l *model.Loan) error {
	l.ID = f.id()
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	f.loans[l.ID] = &cp
	return nil
}

// recordingPublisher captures confirmation events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ConfirmedEvent
}

func (p *recordingPublisher) ReservationConfirmed(ctx context.Context, ev ConfirmedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}
