package services

import (
	"context"
	"errors"
	"testing"

	"github.com/studytracker/core/internal/adapters/repository"
	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/ports"
)

func newStudyAppFixture(t *testing.T) *StudyAppService {
	t.Helper()

	f := newFixture(t)
	return NewStudyAppService(repository.NewStudyAppRepository(f.store), testLogger(t))
}

func TestStudyAppAdd(t *testing.T) {
	svc := newStudyAppFixture(t)
	ctx := context.Background()

	app, err := svc.Add(ctx, testUserID, ports.StudyAppForm{
		Name:        "Anki",
		Description: "Spaced repetition flashcards",
		URL:         "https://apps.ankiweb.net",
	})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if app.ID == 0 {
		t.Error("app must be assigned an id")
	}

	apps, err := svc.List(ctx, testUserID)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(apps) != 1 || apps[0].Name != "Anki" {
		t.Errorf("apps = %v, want [Anki]", apps)
	}
}

func TestStudyAppRemoveRequiresConfirmation(t *testing.T) {
	svc := newStudyAppFixture(t)
	ctx := context.Background()

	app, err := svc.Add(ctx, testUserID, ports.StudyAppForm{
		Name:        "Anki",
		Description: "Spaced repetition flashcards",
		URL:         "https://apps.ankiweb.net",
	})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	if err := svc.Remove(ctx, testUserID, app.ID, false); !errors.Is(err, entities.ErrNotConfirmed) {
		t.Fatalf("unconfirmed Remove() error = %v, want ErrNotConfirmed", err)
	}

	if err := svc.Remove(ctx, testUserID, app.ID, true); err != nil {
		t.Fatalf("confirmed Remove() failed: %v", err)
	}

	apps, err := svc.List(ctx, testUserID)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(apps) != 0 {
		t.Errorf("apps = %v, want empty", apps)
	}
}

func TestStudyAppRemoveUnknown(t *testing.T) {
	svc := newStudyAppFixture(t)

	if err := svc.Remove(context.Background(), testUserID, 999, true); !errors.Is(err, entities.ErrAppNotFound) {
		t.Errorf("Remove() error = %v, want ErrAppNotFound", err)
	}
}
