package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// TaskRepository handles CRUD for tasks. Every lookup is scoped by owner.
type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, now: time.Now}
}

// WithClock replaces the timestamp source.
func (r *TaskRepository) WithClock(now func() time.Time) *TaskRepository {
	r.now = now
	return r
}

func (r *TaskRepository) Create(ctx context.Context, userID uint, title string) (*model.Task, error) {
	task := model.Task{
		UserID:      userID,
		Title:       title,
		IsDone:      false,
		CreatedDate: r.now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	tasks := []model.Task{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// FindByID returns gorm.ErrRecordNotFound when the task is absent or owned by someone else.
func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	return findScoped(r.db.WithContext(ctx), userID, taskID)
}

func (r *TaskRepository) UpdateTitle(ctx context.Context, userID, taskID uint, title string) (*model.Task, error) {
	return r.mutate(ctx, userID, taskID, map[string]interface{}{"title": title})
}

// MarkDone is idempotent: a task that is already done is stamped again and returned.
func (r *TaskRepository) MarkDone(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	return r.mutate(ctx, userID, taskID, map[string]interface{}{"is_done": true})
}

// Delete removes a task and returns its state before deletion.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var snapshot *model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := findScoped(tx, userID, taskID)
		if err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		snapshot = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *TaskRepository) Count(ctx context.Context) (total, open int64, err error) {
	db := r.db.WithContext(ctx).Model(&model.Task{})
	if err := db.Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count tasks: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("is_done = ?", false).Count(&open).Error; err != nil {
		return 0, 0, fmt.Errorf("count open tasks: %w", err)
	}
	return total, open, nil
}

func (r *TaskRepository) mutate(ctx context.Context, userID, taskID uint, updates map[string]interface{}) (*model.Task, error) {
	var updated *model.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findScoped(tx, userID, taskID); err != nil {
			return err
		}
		updates["updated_date"] = r.now().UTC()
		if err := tx.Model(&model.Task{}).Where("user_id = ? AND id = ?", userID, taskID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		task, err := findScoped(tx, userID, taskID)
		if err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func findScoped(db *gorm.DB, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := db.Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}
