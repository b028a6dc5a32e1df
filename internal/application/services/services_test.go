package services

import (
	"context"
	"testing"
	"time"

	"github.com/studytracker/core/internal/adapters/repository"
	kv "github.com/studytracker/core/internal/adapters/storage"
	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/config"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

const testUserID int64 = 42

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	l, err := logger.New(config.LoggerConfig{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}
	return l
}

type fixture struct {
	store    *kv.Memory
	taskRepo ports.TaskRepository
	tasks    *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := kv.NewMemory()
	taskRepo := repository.NewTaskRepository(store)
	return &fixture{
		store:    store,
		taskRepo: taskRepo,
		tasks:    NewTaskService(taskRepo, testLogger(t)),
	}
}

func (f *fixture) mustCreate(t *testing.T, form ports.TaskForm) *entities.Task {
	t.Helper()

	task, err := f.tasks.Create(context.Background(), testUserID, form)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return task
}

func validForm() ports.TaskForm {
	return ports.TaskForm{
		Title:    "Integrals worksheet",
		Subject:  "Math",
		Priority: entities.PriorityHigh,
	}
}

func fixedClock(start time.Time) func() time.Time {
	return func() time.Time { return start }
}
