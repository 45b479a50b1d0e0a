package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
)

// VehicleRepository is the fleet-management side: plain CRUD plus the
// fleet-wide availability listing.
type VehicleRepository interface {
	GetByID(id int) (*db.Vehicle, error)
	List() ([]db.Vehicle, error)
	ListAvailable(period entities.Period) ([]db.Vehicle, error)
	Create(v *db.Vehicle) error
	Update(v *db.Vehicle) error
	Delete(id int) error
}

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(database *sql.DB) VehicleRepository {
	return &vehicleRepository{db: database}
}

const vehicleColumns = `id, brand, model, year, passenger_seats, description, image, price_per_day`

func (r *vehicleRepository) GetByID(id int) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.db.QueryRow(`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id).
		Scan(&v.ID, &v.Brand, &v.Model, &v.Year, &v.PassengerSeats, &v.Description, &v.Image, &v.PricePerDay)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (r *vehicleRepository) List() ([]db.Vehicle, error) {
	rows, err := r.db.Query(`SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY brand, model`)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

// ListAvailable returns every vehicle with no booking overlapping
// [period.Start, period.End) — the overlap predicate applied per vehicle
// across the fleet.
func (r *vehicleRepository) ListAvailable(period entities.Period) ([]db.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles v
		WHERE NOT EXISTS (
			SELECT 1 FROM booking_periods bp
			WHERE bp.vehicle_id = v.id
			  AND bp.start_date < $2
			  AND bp.end_date > $1
		)
		ORDER BY v.brand, v.model`
	rows, err := r.db.Query(query, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("error querying available vehicles: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func collectVehicles(rows *sql.Rows) ([]db.Vehicle, error) {
	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		err := rows.Scan(&v.ID, &v.Brand, &v.Model, &v.Year, &v.PassengerSeats, &v.Description, &v.Image, &v.PricePerDay)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *vehicleRepository) Create(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles (brand, model, year, passenger_seats, description, image, price_per_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRow(query, v.Brand, v.Model, v.Year, v.PassengerSeats, v.Description, v.Image, v.PricePerDay).
		Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("error creating vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) Update(v *db.Vehicle) error {
	result, err := r.db.Exec(`
		UPDATE vehicles
		SET brand = $1, model = $2, year = $3, passenger_seats = $4, description = $5, image = $6, price_per_day = $7
		WHERE id = $8`,
		v.Brand, v.Model, v.Year, v.PassengerSeats, v.Description, v.Image, v.PricePerDay, v.ID)
	if err != nil {
		return fmt.Errorf("error updating vehicle %d: %w", v.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading updated rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes the vehicle; its booking periods and requests go with it
// through the ON DELETE CASCADE foreign keys.
func (r *vehicleRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting vehicle %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
