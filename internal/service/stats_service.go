package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"task-manager/internal/logging"
	"task-manager/internal/repository"
)

// Stats is a point-in-time count of stored records.
type Stats struct {
	Users     int64
	Tasks     int64
	OpenTasks int64
	TakenAt   time.Time
}

// StatsService summarizes the store for periodic operational reports.
type StatsService struct {
	userRepo *repository.UserRepository
	taskRepo *repository.TaskRepository
}

func NewStatsService(userRepo *repository.UserRepository, taskRepo *repository.TaskRepository) *StatsService {
	return &StatsService{userRepo: userRepo, taskRepo: taskRepo}
}

func (s *StatsService) Snapshot(ctx context.Context, now time.Time) (Stats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	tasks, open, err := s.taskRepo.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Users: users, Tasks: tasks, OpenTasks: open, TakenAt: now}, nil
}

// Report takes a snapshot and logs it.
func (s *StatsService) Report(ctx context.Context, now time.Time) error {
	stats, err := s.Snapshot(ctx, now)
	if err != nil {
		return err
	}
	logging.WithComponent("stats").WithFields(logrus.Fields{
		"users":      stats.Users,
		"tasks":      stats.Tasks,
		"open_tasks": stats.OpenTasks,
	}).Info("store snapshot")
	return nil
}
