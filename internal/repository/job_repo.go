package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetStalePendingRequestIDs finds pending requests whose pick-up date is
// already behind us. Nobody can approve them anymore, the validation at
// creation time would reject the same dates today.
func (r *JobRepository) GetStalePendingRequestIDs(before time.Time) ([]int, error) {
	query := `SELECT id FROM requests WHERE state = 'pending' AND pick_up_date < $1`
	rows, err := r.DB.Query(query, before)
	if err != nil {
		return nil, fmt.Errorf("error querying stale pending requests: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning request ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// DeleteRequests removes the given requests. Only ever called with pending
// IDs, so no booking periods are touched.
func (r *JobRepository) DeleteRequests(ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.DB.Exec(`DELETE FROM requests WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error deleting stale requests: %w", err)
	}
	return result.RowsAffected()
}
