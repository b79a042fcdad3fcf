package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskpad/internal/cache"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

const taskListCacheTTL = 5 * time.Minute

// TaskService is the task store: per-user CRUD with ordering and
// partial-merge update semantics.
type TaskService interface {
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	CreateTask(ctx context.Context, in CreateTaskInput) (uuid.UUID, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (int64, error)
	DeleteTask(ctx context.Context, id uuid.UUID) (int64, error)
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService builds a TaskService with repository and cache.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{repo: repo, cache: cache}
}

func (s *taskService) cacheKey(userID string) string {
	return fmt.Sprintf("tasks:%s", userID)
}

// ListTasks returns the user's tasks sorted ascending by order, with caching.
// A user with no tasks gets an empty list, not an error.
func (s *taskService) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	if err := ValidateListTasks(userID); err != nil {
		return nil, err
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, taskListCacheTTL)
	}
	return tasks, nil
}

// CreateTask validates, applies defaults and persists a new task. The order
// default is the creation wall clock in milliseconds, so tasks created
// without an explicit order list in creation sequence.
func (s *taskService) CreateTask(ctx context.Context, in CreateTaskInput) (uuid.UUID, error) {
	if err := ValidateCreateTask(in); err != nil {
		return uuid.Nil, err
	}

	now := time.Now()
	task := &model.Task{
		Title:     in.Title,
		UserID:    in.UserID,
		Category:  model.DefaultCategory,
		Order:     now.UnixMilli(),
		Timestamp: now,
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Category != nil {
		task.Category = *in.Category
	}
	if in.Order != nil {
		task.Order = *in.Order
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return uuid.Nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(task.UserID))
	return task.ID, nil
}

// UpdateTask merges only the fields present in the input into the stored
// task and reports the number of modified rows. An unknown id is a no-op
// with a zero count, not an error.
func (s *taskService) UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) (int64, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Order != nil {
		fields["sort_order"] = *in.Order
	}
	if len(fields) == 0 {
		return 0, nil
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("find task: %w", err)
	}

	modified, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return 0, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(task.UserID))
	return modified, nil
}

// DeleteTask hard-deletes the task and reports the number of deleted rows.
// An unknown id is a no-op with a zero count, not an error.
func (s *taskService) DeleteTask(ctx context.Context, id uuid.UUID) (int64, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("find task: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(task.UserID))
	return deleted, nil
}
