package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentacar/internal/db"
	"rentacar/internal/entities"
	apperrors "rentacar/internal/errors"
)

// Postgres class 23 codes the approval transaction has to recognize.
const (
	pgExclusionViolation  = "23P01" // overlapping booking rejected by the EXCLUDE constraint
	pgForeignKeyViolation = "23503"
)

// RequestFilter selects which requests an admin listing shows.
type RequestFilter string

const (
	FilterAll       RequestFilter = "all"
	FilterPending   RequestFilter = "pending"
	FilterProcessed RequestFilter = "processed"
)

// RequestSort orders admin listings.
type RequestSort string

const (
	SortNewest RequestSort = "newest"
	SortOldest RequestSort = "oldest"
	SortStatus RequestSort = "status"
)

type RequestRepository interface {
	Create(req *db.Request) error
	GetByID(id int) (*entities.RequestView, error)
	ListByUser(userID string) ([]entities.RequestView, error)
	List(filter RequestFilter, sort RequestSort) ([]entities.RequestView, error)

	// Approve commits the booking: inside one transaction it locks the
	// request, re-checks availability, inserts the booking period and flips
	// the state. Returns ErrVehicleUnavailable when another approval won the
	// race; the request then stays pending.
	Approve(id int) (*db.BookingPeriod, error)
	Decline(id int) error
	Delete(id int) error
}

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(database *sql.DB) RequestRepository {
	return &requestRepository{db: database}
}

func (r *requestRepository) Create(req *db.Request) error {
	query := `
		INSERT INTO requests
		(vehicle_id, user_id, pick_up_date, return_date, date_of_request, state, contact_name, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.db.QueryRow(query,
		req.VehicleID,
		req.UserID,
		req.PickUpDate,
		req.ReturnDate,
		req.DateOfRequest,
		req.State,
		req.ContactName,
		req.ContactEmail,
		req.ContactPhone,
	).Scan(&req.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			// Vehicle deleted between the service's existence check and the
			// insert; same answer as the check itself.
			return apperrors.NewValidationError("vehicle %d does not exist", req.VehicleID)
		}
		return fmt.Errorf("error creating request: %w", err)
	}
	return nil
}

const requestViewColumns = `
	r.id, r.user_id, r.pick_up_date, r.return_date, r.date_of_request, r.state,
	r.contact_name, r.contact_email, r.contact_phone,
	v.id, v.brand, v.model, v.year, v.passenger_seats, v.description, v.image, v.price_per_day`

func scanRequestView(row interface{ Scan(...interface{}) error }) (*entities.RequestView, error) {
	var rv entities.RequestView
	err := row.Scan(
		&rv.ID, &rv.UserID, &rv.PickUpDate, &rv.ReturnDate, &rv.DateOfRequest, &rv.State,
		&rv.ContactName, &rv.ContactEmail, &rv.ContactPhone,
		&rv.Vehicle.ID, &rv.Vehicle.Brand, &rv.Vehicle.Model, &rv.Vehicle.Year,
		&rv.Vehicle.PassengerSeats, &rv.Vehicle.Description, &rv.Vehicle.Image, &rv.Vehicle.PricePerDay,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *requestRepository) GetByID(id int) (*entities.RequestView, error) {
	query := `
		SELECT` + requestViewColumns + `
		FROM requests r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.id = $1`
	rv, err := scanRequestView(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying request %d: %w", id, err)
	}
	return rv, nil
}

func (r *requestRepository) ListByUser(userID string) ([]entities.RequestView, error) {
	query := `
		SELECT` + requestViewColumns + `
		FROM requests r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.user_id = $1
		ORDER BY r.date_of_request DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying requests for user: %w", err)
	}
	defer rows.Close()
	return collectRequestViews(rows)
}

func (r *requestRepository) List(filter RequestFilter, sort RequestSort) ([]entities.RequestView, error) {
	query := `
		SELECT` + requestViewColumns + `
		FROM requests r
		JOIN vehicles v ON v.id = r.vehicle_id`

	switch filter {
	case FilterPending:
		query += ` WHERE r.state = 'pending'`
	case FilterProcessed:
		query += ` WHERE r.state <> 'pending'`
	}

	switch sort {
	case SortOldest:
		query += ` ORDER BY r.date_of_request ASC`
	case SortStatus:
		query += ` ORDER BY r.state, r.date_of_request DESC`
	default:
		query += ` ORDER BY r.date_of_request DESC`
	}

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying requests: %w", err)
	}
	defer rows.Close()
	return collectRequestViews(rows)
}

func collectRequestViews(rows *sql.Rows) ([]entities.RequestView, error) {
	var views []entities.RequestView
	for rows.Next() {
		rv, err := scanRequestView(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning request: %w", err)
		}
		views = append(views, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating requests: %w", err)
	}
	return views, nil
}

func (r *requestRepository) Approve(id int) (*db.BookingPeriod, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting approval transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the request row so two admins answering the same request
	// serialize here.
	var req db.Request
	err = tx.QueryRow(`
		SELECT id, vehicle_id, state, pick_up_date, return_date
		FROM requests WHERE id = $1 FOR UPDATE`, id).
		Scan(&req.ID, &req.VehicleID, &req.State, &req.PickUpDate, &req.ReturnDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error locking request %d: %w", id, err)
	}
	if !db.CanTransition(req.State, db.StateApproved) {
		return nil, apperrors.ErrAlreadyTerminal
	}

	// Availability re-check at approval time. Competing requests are only
	// filtered out here, never at creation.
	var available bool
	err = tx.QueryRow(`
		SELECT NOT EXISTS (
			SELECT 1 FROM booking_periods
			WHERE vehicle_id = $1
			  AND start_date < $3
			  AND end_date > $2
		)`, req.VehicleID, req.PickUpDate, req.ReturnDate).Scan(&available)
	if err != nil {
		return nil, fmt.Errorf("error re-checking availability: %w", err)
	}
	if !available {
		return nil, apperrors.ErrVehicleUnavailable
	}

	// The EXCLUDE constraint is the backstop for approvals racing in other
	// transactions the re-check above cannot see yet.
	booking := db.BookingPeriod{
		VehicleID: req.VehicleID,
		RequestID: req.ID,
		StartDate: req.PickUpDate,
		EndDate:   req.ReturnDate,
	}
	err = tx.QueryRow(`
		INSERT INTO booking_periods (vehicle_id, request_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		booking.VehicleID, booking.RequestID, booking.StartDate, booking.EndDate,
	).Scan(&booking.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation {
			return nil, apperrors.ErrVehicleUnavailable
		}
		return nil, fmt.Errorf("error inserting booking period: %w", err)
	}

	if _, err := tx.Exec(`UPDATE requests SET state = $1 WHERE id = $2`, db.StateApproved, id); err != nil {
		return nil, fmt.Errorf("error marking request approved: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing approval: %w", err)
	}
	return &booking, nil
}

func (r *requestRepository) Decline(id int) error {
	var state db.RequestState
	err := r.db.QueryRow(`SELECT state FROM requests WHERE id = $1`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("error querying request %d: %w", id, err)
	}
	if !db.CanTransition(state, db.StateDeclined) {
		return apperrors.ErrAlreadyTerminal
	}

	// Guard the state in the WHERE clause: if a concurrent approval got in
	// between, the update matches nothing and the decline is rejected.
	result, err := r.db.Exec(`UPDATE requests SET state = $1 WHERE id = $2 AND state = $3`,
		db.StateDeclined, id, db.StatePending)
	if err != nil {
		return fmt.Errorf("error declining request %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading declined rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAlreadyTerminal
	}
	return nil
}

// Delete removes the request in any state. Releasing the booking period of an
// approved request is handled by the ON DELETE CASCADE on
// booking_periods.request_id.
func (r *requestRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting request %d: %w", id, err)
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
