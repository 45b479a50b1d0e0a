package service

import (
	"time"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	"rentacar/internal/repository"
)

// AvailabilityService answers the read-only availability questions. It never
// mutates anything; the authoritative check at commit time runs inside the
// approval transaction.
type AvailabilityService struct {
	bookings repository.BookingRepository
	vehicles repository.VehicleRepository
}

func NewAvailabilityService(bookings repository.BookingRepository, vehicles repository.VehicleRepository) *AvailabilityService {
	return &AvailabilityService{bookings: bookings, vehicles: vehicles}
}

// CheckAvailability reports whether one vehicle is free over [start, end).
func (s *AvailabilityService) CheckAvailability(vehicleID int, start, end time.Time) (*entities.AvailabilityResponse, error) {
	period, err := entities.NewPeriod(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicles.GetByID(vehicleID); err != nil {
		return nil, err
	}
	available, err := s.bookings.IsVehicleAvailable(vehicleID, period)
	if err != nil {
		return nil, err
	}
	return &entities.AvailabilityResponse{
		VehicleID:          vehicleID,
		RequestedStartDate: period.Start,
		RequestedEndDate:   period.End,
		Available:          available,
	}, nil
}

// ListAvailableVehicles returns the fleet minus every vehicle with a booking
// overlapping [start, end).
func (s *AvailabilityService) ListAvailableVehicles(start, end time.Time) ([]db.Vehicle, error) {
	period, err := entities.NewPeriod(start, end)
	if err != nil {
		return nil, err
	}
	return s.vehicles.ListAvailable(period)
}

// ListVehicleBookings exposes the committed periods of one vehicle, used by
// the admin calendar.
func (s *AvailabilityService) ListVehicleBookings(vehicleID int) ([]db.BookingPeriod, error) {
	if _, err := s.vehicles.GetByID(vehicleID); err != nil {
		return nil, err
	}
	return s.bookings.ListForVehicle(vehicleID)
}
