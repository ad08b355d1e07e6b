package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"task-manager/internal/model"
	"task-manager/internal/repository"
)

// TaskService wraps task-related business logic. All calls are scoped to user.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) CreateTask(ctx context.Context, user *model.User, title string) (*model.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.Create(ctx, user.ID, title)
}

func (s *TaskService) ListTasks(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, user.ID)
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	return task, notFound(err)
}

func (s *TaskService) UpdateTitle(ctx context.Context, user *model.User, taskID uint, title string) (*model.Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.UpdateTitle(ctx, user.ID, taskID, title)
	return task, notFound(err)
}

// MarkDone sets the task done. Repeating the call is not an error.
func (s *TaskService) MarkDone(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.MarkDone(ctx, user.ID, taskID)
	return task, notFound(err)
}

// DeleteTask removes the task and returns what was deleted.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.Delete(ctx, user.ID, taskID)
	return task, notFound(err)
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return title, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
