package service

import (
	"log"

	"rentacar/internal/db"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
)

// VehicleService is the fleet-management collaborator: plain CRUD around the
// vehicles table.
type VehicleService struct {
	vehicles repository.VehicleRepository
}

func NewVehicleService(vehicles repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) GetVehicle(id int) (*db.Vehicle, error) {
	return s.vehicles.GetByID(id)
}

func (s *VehicleService) ListVehicles() ([]db.Vehicle, error) {
	return s.vehicles.List()
}

func (s *VehicleService) CreateVehicle(v *db.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	return s.vehicles.Create(v)
}

func (s *VehicleService) UpdateVehicle(v *db.Vehicle) error {
	if err := validateVehicle(v); err != nil {
		return err
	}
	return s.vehicles.Update(v)
}

// DeleteVehicle removes the vehicle and, through the schema cascades, all of
// its booking periods and requests.
func (s *VehicleService) DeleteVehicle(id int) error {
	if err := s.vehicles.Delete(id); err != nil {
		return err
	}
	log.Printf("Vehicle %d deleted together with its bookings and requests", id)
	return nil
}

func validateVehicle(v *db.Vehicle) error {
	if v.Brand == "" || v.Model == "" {
		return apperrors.NewValidationError("brand and model are required")
	}
	if v.Year <= 0 {
		return apperrors.NewValidationError("year must be positive")
	}
	if v.PassengerSeats <= 0 {
		return apperrors.NewValidationError("passenger seats must be positive")
	}
	if v.PricePerDay <= 0 {
		return apperrors.NewValidationError("price per day must be positive")
	}
	return nil
}
