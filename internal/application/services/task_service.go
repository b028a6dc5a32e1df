package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

// TaskService owns the canonical task collection per user. Every mutation
// rewrites the whole persisted collection, so after a successful call the
// stored blob always matches what the mutation produced. A single mutex
// serializes mutations; in-process operations never interleave.
type TaskService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger

	mu  sync.Mutex
	ids *idGenerator
	now func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo ports.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
		ids:      newIDGenerator(nil),
		now:      time.Now,
	}
}

// Create appends a new task built from the form and persists the
// collection. The estimated time defaults when the form left it empty,
// blank tags are stripped, and the task starts pending.
func (s *TaskService) Create(ctx context.Context, userID int64, form ports.TaskForm) (*entities.Task, error) {
	if !form.Priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	task := entities.Task{
		ID:            s.ids.next(),
		Title:         form.Title,
		Subject:       form.Subject,
		Priority:      form.Priority,
		EstimatedTime: form.EstimatedTime,
		DueDate:       form.DueDate,
		Description:   form.Description,
		Tags:          append([]string{}, form.Tags...),
		RelatedApp:    form.RelatedApp,
		Completed:     false,
		CreatedAt:     s.now(),
		CompletedAt:   nil,
		TimeSpent:     0,
	}
	if task.EstimatedTime == 0 {
		task.EstimatedTime = entities.DefaultEstimatedMinutes
	}
	task.StripBlankTags()

	tasks = append(tasks, task)
	if err := s.taskRepo.Save(ctx, userID, tasks); err != nil {
		return nil, fmt.Errorf("persist tasks: %w", err)
	}

	s.logger.Info("Task created", "user_id", userID, "task_id", task.ID, "title", task.Title)

	return &task, nil
}

// Update replaces the user-editable fields of the task with matching id.
// Completion state, creation time and time spent are never editable and
// carry over from the prior record.
func (s *TaskService) Update(ctx context.Context, userID, id int64, form ports.TaskForm) (*entities.Task, error) {
	if !form.Priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return nil, entities.ErrTaskNotFound
	}

	prior := tasks[idx]
	task := entities.Task{
		ID:            prior.ID,
		Title:         form.Title,
		Subject:       form.Subject,
		Priority:      form.Priority,
		EstimatedTime: form.EstimatedTime,
		DueDate:       form.DueDate,
		Description:   form.Description,
		Tags:          append([]string{}, form.Tags...),
		RelatedApp:    form.RelatedApp,
		Completed:     prior.Completed,
		CreatedAt:     prior.CreatedAt,
		CompletedAt:   prior.CompletedAt,
		TimeSpent:     prior.TimeSpent,
	}
	if task.EstimatedTime == 0 {
		task.EstimatedTime = entities.DefaultEstimatedMinutes
	}
	task.StripBlankTags()

	tasks[idx] = task
	if err := s.taskRepo.Save(ctx, userID, tasks); err != nil {
		return nil, fmt.Errorf("persist tasks: %w", err)
	}

	s.logger.Info("Task updated", "user_id", userID, "task_id", task.ID, "title", task.Title)

	return &task, nil
}

// ToggleCompletion flips the completion state of the task with matching
// id, stamping or clearing completedAt.
func (s *TaskService) ToggleCompletion(ctx context.Context, userID, id int64) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return nil, entities.ErrTaskNotFound
	}

	tasks[idx].ToggleCompletion(s.now())
	if err := s.taskRepo.Save(ctx, userID, tasks); err != nil {
		return nil, fmt.Errorf("persist tasks: %w", err)
	}

	task := tasks[idx]
	s.logger.Info("Task completion toggled", "user_id", userID, "task_id", id, "completed", task.Completed)

	return &task, nil
}

// CompleteViaTimer forces the task into the completed state. Distinct
// entry point from the manual toggle; only timer expiry calls it.
func (s *TaskService) CompleteViaTimer(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return entities.ErrTaskNotFound
	}

	tasks[idx].MarkCompleted(s.now())
	if err := s.taskRepo.Save(ctx, userID, tasks); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}

	s.logger.Info("Task completed by timer", "user_id", userID, "task_id", id)

	return nil
}

// Delete removes the task with matching id. The caller signals that the
// user confirmed the action; an unconfirmed delete leaves state unchanged.
func (s *TaskService) Delete(ctx context.Context, userID, id int64, confirmed bool) error {
	if !confirmed {
		return entities.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return entities.ErrTaskNotFound
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := s.taskRepo.Save(ctx, userID, tasks); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}

	s.logger.Info("Task deleted", "user_id", userID, "task_id", id)

	return nil
}

// Get retrieves a single task.
func (s *TaskService) Get(ctx context.Context, userID, id int64) (*entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return nil, entities.ErrTaskNotFound
	}

	task := tasks[idx]
	return &task, nil
}

// List retrieves the full task collection in creation order.
func (s *TaskService) List(ctx context.Context, userID int64) ([]entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

func findTask(tasks []entities.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
