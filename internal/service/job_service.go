package service

import (
	"fmt"
	"log"
	"time"

	"rentacar/internal/entities"
	"rentacar/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// PurgeStalePendingRequests deletes pending requests whose pick-up date has
// passed; they can no longer be approved. Answered requests are kept for the
// history views.
func (s *JobService) PurgeStalePendingRequests() error {
	log.Println("Cron Job: Checking for stale pending requests...")

	today := entities.DateOnly(time.Now())
	ids, err := s.Repo.GetStalePendingRequestIDs(today)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending requests: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No stale pending requests found.")
		return nil
	}

	deleted, err := s.Repo.DeleteRequests(ids)
	if err != nil {
		return fmt.Errorf("cron job: failed to delete stale requests: %w", err)
	}

	log.Printf("Cron Job: Deleted %d stale pending requests. IDs: %v", deleted, ids)
	return nil
}
