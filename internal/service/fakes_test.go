package service

import (
	"sync"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

// fakeStore backs the repository interfaces in memory. The mutex held across
// the read-modify-write in approve stands in for the database transaction
// plus exclusion constraint: at most one committer per vehicle at a time.
type fakeStore struct {
	mu        sync.Mutex
	vehicles  map[int]db.Vehicle
	requests  map[int]*db.Request
	bookings  map[int]db.BookingPeriod
	nextReqID int
	nextBpID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles:  make(map[int]db.Vehicle),
		requests:  make(map[int]*db.Request),
		bookings:  make(map[int]db.BookingPeriod),
		nextReqID: 1,
		nextBpID:  1,
	}
}

func (s *fakeStore) addVehicle(v db.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
}

func (s *fakeStore) addBooking(bp db.BookingPeriod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bp.ID = s.nextBpID
	s.nextBpID++
	s.bookings[bp.ID] = bp
}

func (s *fakeStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *fakeStore) overlapsLocked(vehicleID int, p entities.Period) bool {
	for _, bp := range s.bookings {
		if bp.VehicleID != vehicleID {
			continue
		}
		if p.Overlaps(entities.Period{Start: bp.StartDate, End: bp.EndDate}) {
			return true
		}
	}
	return false
}

// fakeVehicleRepo implements repository.VehicleRepository.
type fakeVehicleRepo struct{ store *fakeStore }

func (r *fakeVehicleRepo) GetByID(id int) (*db.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	v, ok := r.store.vehicles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (r *fakeVehicleRepo) List() ([]db.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []db.Vehicle
	for _, v := range r.store.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVehicleRepo) ListAvailable(period entities.Period) ([]db.Vehicle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []db.Vehicle
	for _, v := range r.store.vehicles {
		if !r.store.overlapsLocked(v.ID, period) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) Create(v *db.Vehicle) error {
	r.store.addVehicle(*v)
	return nil
}

func (r *fakeVehicleRepo) Update(v *db.Vehicle) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.vehicles[v.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.store.vehicles[v.ID] = *v
	return nil
}

func (r *fakeVehicleRepo) Delete(id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.vehicles[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.vehicles, id)
	return nil
}

// fakeBookingRepo implements repository.BookingRepository.
type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) IsVehicleAvailable(vehicleID int, period entities.Period) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return !r.store.overlapsLocked(vehicleID, period), nil
}

func (r *fakeBookingRepo) ListForVehicle(vehicleID int) ([]db.BookingPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []db.BookingPeriod
	for _, bp := range r.store.bookings {
		if bp.VehicleID == vehicleID {
			out = append(out, bp)
		}
	}
	return out, nil
}

// fakeRequestRepo implements repository.RequestRepository.
type fakeRequestRepo struct{ store *fakeStore }

func (r *fakeRequestRepo) Create(req *db.Request) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.vehicles[req.VehicleID]; !ok {
		return apperrors.NewValidationError("vehicle %d does not exist", req.VehicleID)
	}
	req.ID = r.store.nextReqID
	r.store.nextReqID++
	cp := *req
	r.store.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) viewLocked(req *db.Request) *entities.RequestView {
	return &entities.RequestView{
		ID:            req.ID,
		UserID:        req.UserID,
		PickUpDate:    req.PickUpDate,
		ReturnDate:    req.ReturnDate,
		DateOfRequest: req.DateOfRequest,
		State:         req.State,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Vehicle:       r.store.vehicles[req.VehicleID],
	}
}

func (r *fakeRequestRepo) GetByID(id int) (*entities.RequestView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.viewLocked(req), nil
}

func (r *fakeRequestRepo) ListByUser(userID string) ([]entities.RequestView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entities.RequestView
	for _, req := range r.store.requests {
		if req.UserID == userID {
			out = append(out, *r.viewLocked(req))
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) List(filter repository.RequestFilter, sort repository.RequestSort) ([]entities.RequestView, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entities.RequestView
	for _, req := range r.store.requests {
		switch filter {
		case repository.FilterPending:
			if req.State != db.StatePending {
				continue
			}
		case repository.FilterProcessed:
			if req.State == db.StatePending {
				continue
			}
		}
		out = append(out, *r.viewLocked(req))
	}
	return out, nil
}

func (r *fakeRequestRepo) Approve(id int) (*db.BookingPeriod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.requests[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !db.CanTransition(req.State, db.StateApproved) {
		return nil, apperrors.ErrAlreadyTerminal
	}
	period := entities.Period{Start: req.PickUpDate, End: req.ReturnDate}
	if r.store.overlapsLocked(req.VehicleID, period) {
		return nil, apperrors.ErrVehicleUnavailable
	}

	bp := db.BookingPeriod{
		ID:        r.store.nextBpID,
		VehicleID: req.VehicleID,
		RequestID: req.ID,
		StartDate: req.PickUpDate,
		EndDate:   req.ReturnDate,
	}
	r.store.nextBpID++
	r.store.bookings[bp.ID] = bp
	req.State = db.StateApproved
	return &bp, nil
}

func (r *fakeRequestRepo) Decline(id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !db.CanTransition(req.State, db.StateDeclined) {
		return apperrors.ErrAlreadyTerminal
	}
	req.State = db.StateDeclined
	return nil
}

func (r *fakeRequestRepo) Delete(id int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	req, ok := r.store.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for bpID, bp := range r.store.bookings {
		if bp.RequestID == req.ID {
			delete(r.store.bookings, bpID)
		}
	}
	delete(r.store.requests, id)
	return nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []entities.RequestView
	urls  []string
}

func (n *recordingNotifier) RequestAnswered(view entities.RequestView, paymentURL string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, view)
	n.urls = append(n.urls, paymentURL)
}

// stubPayments returns a fixed checkout URL.
type stubPayments struct{ url string }

func (p *stubPayments) CreateRentalCheckout(amountCents int64, description, customerEmail string) (string, error) {
	return p.url, nil
}
