package repository

import (
	"database/sql"
	"fmt"

	"rentacar/internal/db"
	"rentacar/internal/entities"
)

// BookingRepository reads committed booking periods. Writes happen only
// inside the approval transaction in RequestRepository, never here.
type BookingRepository interface {
	IsVehicleAvailable(vehicleID int, period entities.Period) (bool, error)
	ListForVehicle(vehicleID int) ([]db.BookingPeriod, error)
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(database *sql.DB) BookingRepository {
	return &bookingRepository{db: database}
}

// IsVehicleAvailable applies the half-open overlap predicate: the vehicle is
// taken iff some booking has start_date < $end AND end_date > $start. Bookings
// that merely touch the requested period at an endpoint do not count.
func (r *bookingRepository) IsVehicleAvailable(vehicleID int, period entities.Period) (bool, error) {
	query := `
		SELECT NOT EXISTS (
			SELECT 1 FROM booking_periods
			WHERE vehicle_id = $1
			  AND start_date < $3
			  AND end_date > $2
		)`
	var available bool
	err := r.db.QueryRow(query, vehicleID, period.Start, period.End).Scan(&available)
	if err != nil {
		return false, fmt.Errorf("error checking vehicle availability: %w", err)
	}
	return available, nil
}

func (r *bookingRepository) ListForVehicle(vehicleID int) ([]db.BookingPeriod, error) {
	query := `
		SELECT id, vehicle_id, request_id, start_date, end_date
		FROM booking_periods
		WHERE vehicle_id = $1
		ORDER BY start_date`
	rows, err := r.db.Query(query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error querying booking periods: %w", err)
	}
	defer rows.Close()

	var bookings []db.BookingPeriod
	for rows.Next() {
		var bp db.BookingPeriod
		if err := rows.Scan(&bp.ID, &bp.VehicleID, &bp.RequestID, &bp.StartDate, &bp.EndDate); err != nil {
			return nil, fmt.Errorf("error scanning booking period: %w", err)
		}
		bookings = append(bookings, bp)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking periods: %w", err)
	}
	return bookings, nil
}
