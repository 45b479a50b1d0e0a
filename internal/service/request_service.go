package service

import (
	"errors"
	"log"
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

// Notifier tells the requester their request was answered. Implementations
// must not block the workflow; delivery failures are logged, never returned.
type Notifier interface {
	RequestAnswered(view entities.RequestView, paymentURL string)
}

// PaymentProvider creates a payment link for an approved rental.
type PaymentProvider interface {
	CreateRentalCheckout(amountCents int64, description, customerEmail string) (string, error)
}

// RequestService drives the request workflow: create, approve, decline,
// delete. Approval is the only path that ever commits a booking period.
type RequestService struct {
	requests repository.RequestRepository
	vehicles repository.VehicleRepository
	notifier Notifier
	payments PaymentProvider
}

func NewRequestService(requests repository.RequestRepository, vehicles repository.VehicleRepository, notifier Notifier, payments PaymentProvider) *RequestService {
	return &RequestService{
		requests: requests,
		vehicles: vehicles,
		notifier: notifier,
		payments: payments,
	}
}

type CreateRequestInput struct {
	UserID       string
	VehicleID    int
	PickUpDate   time.Time
	ReturnDate   time.Time
	ContactName  string
	ContactEmail string
	ContactPhone string
}

// CreateRequest records a rental proposal. Availability is deliberately NOT
// checked here: any number of pending requests may compete for the same
// vehicle and dates, and only the approval decides between them.
func (s *RequestService) CreateRequest(in CreateRequestInput) (*db.Request, error) {
	if in.UserID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	period, err := entities.NewPeriod(in.PickUpDate, in.ReturnDate)
	if err != nil {
		return nil, err
	}
	today := entities.DateOnly(time.Now())
	if period.Start.Before(today) {
		return nil, apperrors.NewValidationError("pick-up date cannot be in the past")
	}

	if _, err := s.vehicles.GetByID(in.VehicleID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("vehicle %d does not exist", in.VehicleID)
		}
		return nil, err
	}

	req := &db.Request{
		VehicleID:     in.VehicleID,
		UserID:        in.UserID,
		PickUpDate:    period.Start,
		ReturnDate:    period.End,
		DateOfRequest: time.Now().UTC(),
		State:         db.StatePending,
		ContactName:   in.ContactName,
		ContactEmail:  in.ContactEmail,
		ContactPhone:  in.ContactPhone,
	}
	if err := s.requests.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Approve commits the booking for the request's vehicle and dates. On
// ErrVehicleUnavailable the request stays pending so the admin can decline it
// or try again after a cancellation.
func (s *RequestService) Approve(id int) (*entities.RequestView, error) {
	booking, err := s.requests.Approve(id)
	if err != nil {
		return nil, err
	}
	log.Printf("Request %d approved, booked vehicle %d from %s to %s",
		id, booking.VehicleID, booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"))

	view, err := s.requests.GetByID(id)
	if err != nil {
		// The booking is committed; answer with what the transaction
		// returned instead of failing a successful approval. Only the
		// notification is lost.
		log.Printf("Could not reload approved request %d: %v", id, err)
		return &entities.RequestView{
			ID:         id,
			State:      db.StateApproved,
			PickUpDate: booking.StartDate,
			ReturnDate: booking.EndDate,
			Vehicle:    db.Vehicle{ID: booking.VehicleID},
		}, nil
	}

	paymentURL := ""
	if s.payments != nil {
		period := entities.Period{Start: view.PickUpDate, End: view.ReturnDate}
		amountCents := int64(view.Vehicle.PricePerDay) * int64(period.Days()) * 100
		description := view.Vehicle.Brand + " " + view.Vehicle.Model + " rental"
		url, payErr := s.payments.CreateRentalCheckout(amountCents, description, view.ContactEmail)
		if payErr != nil {
			log.Printf("Could not create checkout session for request %d: %v", id, payErr)
		} else {
			paymentURL = url
		}
	}
	if s.notifier != nil {
		s.notifier.RequestAnswered(*view, paymentURL)
	}
	return view, nil
}

// Decline answers the request negatively. Booking periods are never touched.
func (s *RequestService) Decline(id int) (*entities.RequestView, error) {
	if err := s.requests.Decline(id); err != nil {
		return nil, err
	}
	view, err := s.requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.RequestAnswered(*view, "")
	}
	return view, nil
}

// Delete removes a request in any state. For an approved request the booking
// period is released together with the row.
func (s *RequestService) Delete(id int) error {
	return s.requests.Delete(id)
}

func (s *RequestService) GetRequest(id int) (*entities.RequestView, error) {
	return s.requests.GetByID(id)
}

func (s *RequestService) ListUserRequests(userID string) ([]entities.RequestView, error) {
	return s.requests.ListByUser(userID)
}

func (s *RequestService) ListRequests(filter repository.RequestFilter, sort repository.RequestSort) ([]entities.RequestView, error) {
	return s.requests.List(filter, sort)
}
