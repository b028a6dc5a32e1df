package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studytracker/core/internal/adapters/storage"
	"github.com/studytracker/core/internal/domain/entities"
)

func TestUserRepositoryRoundTrip(t *testing.T) {
	repo := NewUserRepository(storage.NewMemory())
	ctx := context.Background()

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() on empty store failed: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("List() = %v, want empty", users)
	}

	saved := []entities.User{
		{ID: 1, Username: "alex", Password: "secret", CreatedAt: time.Now().Truncate(time.Second)},
		{ID: 2, Username: "sam", Password: "hunter2", CreatedAt: time.Now().Truncate(time.Second)},
	}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	users, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alex" || users[1].Username != "sam" {
		t.Errorf("List() = %v", users)
	}

	user, err := repo.GetByUsername(ctx, "sam")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if user.ID != 2 {
		t.Errorf("GetByUsername() ID = %d, want 2", user.ID)
	}

	if _, err := repo.GetByUsername(ctx, "ghost"); !errors.Is(err, entities.ErrUserNotFound) {
		t.Errorf("GetByUsername(ghost) error = %v, want ErrUserNotFound", err)
	}
}

func TestCurrentUserLifecycle(t *testing.T) {
	repo := NewUserRepository(storage.NewMemory())
	ctx := context.Background()

	if _, err := repo.CurrentUser(ctx); !errors.Is(err, entities.ErrNoActiveUser) {
		t.Fatalf("CurrentUser() on empty store error = %v, want ErrNoActiveUser", err)
	}

	user := entities.User{ID: 7, Username: "alex"}
	if err := repo.SetCurrentUser(ctx, &user); err != nil {
		t.Fatalf("SetCurrentUser() failed: %v", err)
	}

	got, err := repo.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser() failed: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("CurrentUser() ID = %d, want 7", got.ID)
	}

	if err := repo.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("ClearCurrentUser() failed: %v", err)
	}
	if _, err := repo.CurrentUser(ctx); !errors.Is(err, entities.ErrNoActiveUser) {
		t.Errorf("CurrentUser() after clear error = %v, want ErrNoActiveUser", err)
	}
}

func TestTaskRepositoryRoundTrip(t *testing.T) {
	store := storage.NewMemory()
	repo := NewTaskRepository(store)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	done := now.Add(time.Hour)
	saved := []entities.Task{
		{
			ID: 1, Title: "Integrals worksheet", Subject: "Math",
			Priority: entities.PriorityHigh, EstimatedTime: 60,
			DueDate: "2026-03-01", Tags: []string{"exam"},
			CreatedAt: now,
		},
		{
			ID: 2, Title: "Read chapter 4", Subject: "History",
			Priority: entities.PriorityLow, EstimatedTime: 30,
			Tags: []string{}, Completed: true, CompletedAt: &done,
			CreatedAt: now,
		},
	}
	if err := repo.Save(ctx, 42, saved); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	tasks, err := repo.List(ctx, 42)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks", len(tasks))
	}
	if tasks[0].DueDate != "2026-03-01" || tasks[0].Tags[0] != "exam" {
		t.Errorf("task 1 = %+v", tasks[0])
	}
	if !tasks[1].Completed || tasks[1].CompletedAt == nil || !tasks[1].CompletedAt.Equal(done) {
		t.Errorf("task 2 completion did not survive the round trip: %+v", tasks[1])
	}

	// Collections are keyed per user.
	other, err := repo.List(ctx, 43)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("user 43 has %d tasks, want 0", len(other))
	}
}

func TestTaskRepositorySaveNilStoresEmptyArray(t *testing.T) {
	store := storage.NewMemory()
	repo := NewTaskRepository(store)
	ctx := context.Background()

	if err := repo.Save(ctx, 42, nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}

	blob, found, err := store.Get(ctx, "tasks_42")
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if string(blob) != "[]" {
		t.Errorf("stored blob = %s, want []", blob)
	}
}

func TestSubjectRepositoryRoundTrip(t *testing.T) {
	repo := NewSubjectRepository(storage.NewMemory())
	ctx := context.Background()

	if err := repo.Save(ctx, 42, []string{"Math", "Chemistry"}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	subjects, err := repo.List(ctx, 42)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(subjects) != 2 || subjects[0] != "Math" || subjects[1] != "Chemistry" {
		t.Errorf("List() = %v", subjects)
	}
}

func TestStudyAppRepositoryRoundTrip(t *testing.T) {
	repo := NewStudyAppRepository(storage.NewMemory())
	ctx := context.Background()

	apps := []entities.StudyApp{
		{ID: 1, Name: "Anki", Description: "Flashcards", URL: "https://apps.ankiweb.net"},
	}
	if err := repo.Save(ctx, 42, apps); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := repo.List(ctx, 42)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://apps.ankiweb.net" {
		t.Errorf("List() = %v", got)
	}
}

func TestOnboardingRepository(t *testing.T) {
	repo := NewOnboardingRepository(storage.NewMemory())
	ctx := context.Background()

	seen, err := repo.Seen(ctx, 42)
	if err != nil {
		t.Fatalf("Seen() failed: %v", err)
	}
	if seen {
		t.Fatal("flag must start unset")
	}

	if err := repo.MarkSeen(ctx, 42); err != nil {
		t.Fatalf("MarkSeen() failed: %v", err)
	}

	seen, err = repo.Seen(ctx, 42)
	if err != nil {
		t.Fatalf("Seen() failed: %v", err)
	}
	if !seen {
		t.Fatal("flag must be set after MarkSeen")
	}

	// Per-user flags are independent.
	seen, err = repo.Seen(ctx, 43)
	if err != nil {
		t.Fatalf("Seen() failed: %v", err)
	}
	if seen {
		t.Error("another user's flag must stay unset")
	}
}
