package services

import (
	"context"
	"errors"
	"testing"

	"github.com/studytracker/core/internal/adapters/repository"
	"github.com/studytracker/core/internal/domain/entities"
)

func newSubjectFixture(t *testing.T) (*SubjectService, *fixture) {
	t.Helper()

	f := newFixture(t)
	subjectRepo := repository.NewSubjectRepository(f.store)
	return NewSubjectService(subjectRepo, f.taskRepo, testLogger(t)), f
}

func TestSubjectAdd(t *testing.T) {
	svc, _ := newSubjectFixture(t)
	ctx := context.Background()

	subjects, err := svc.Add(ctx, testUserID, "Math")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if len(subjects) != 1 || subjects[0] != "Math" {
		t.Errorf("subjects = %v, want [Math]", subjects)
	}

	subjects, err = svc.Add(ctx, testUserID, "  Chemistry  ")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if len(subjects) != 2 || subjects[1] != "Chemistry" {
		t.Errorf("subjects = %v, want trimmed Chemistry appended", subjects)
	}
}

func TestSubjectAddIgnoresDuplicatesAndBlanks(t *testing.T) {
	svc, _ := newSubjectFixture(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testUserID, "Math"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	subjects, err := svc.Add(ctx, testUserID, "Math")
	if err != nil {
		t.Fatalf("duplicate Add() failed: %v", err)
	}
	if len(subjects) != 1 {
		t.Errorf("duplicate add changed registry: %v", subjects)
	}

	subjects, err = svc.Add(ctx, testUserID, "   ")
	if err != nil {
		t.Fatalf("blank Add() failed: %v", err)
	}
	if len(subjects) != 1 {
		t.Errorf("blank add changed registry: %v", subjects)
	}
}

func TestSubjectRemoveBlockedWhileReferenced(t *testing.T) {
	svc, f := newSubjectFixture(t)
	ctx := context.Background()

	for _, s := range []string{"Math", "Chemistry"} {
		if _, err := svc.Add(ctx, testUserID, s); err != nil {
			t.Fatalf("Add(%s) failed: %v", s, err)
		}
	}

	form := validForm()
	form.Subject = "Chemistry"
	task := f.mustCreate(t, form)

	if _, err := svc.Remove(ctx, testUserID, "Chemistry"); !errors.Is(err, entities.ErrSubjectInUse) {
		t.Fatalf("Remove() error = %v, want ErrSubjectInUse", err)
	}

	// Registry unchanged after the refusal.
	subjects, err := svc.List(ctx, testUserID)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(subjects) != 2 {
		t.Fatalf("registry changed after refused removal: %v", subjects)
	}

	// Completing the task does not unblock removal; the reference must go.
	if _, err := f.tasks.ToggleCompletion(ctx, testUserID, task.ID); err != nil {
		t.Fatalf("ToggleCompletion() failed: %v", err)
	}
	if _, err := svc.Remove(ctx, testUserID, "Chemistry"); !errors.Is(err, entities.ErrSubjectInUse) {
		t.Fatalf("Remove() with completed referencing task error = %v, want ErrSubjectInUse", err)
	}

	if err := f.tasks.Delete(ctx, testUserID, task.ID, true); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	subjects, err = svc.Remove(ctx, testUserID, "Chemistry")
	if err != nil {
		t.Fatalf("Remove() after deleting task failed: %v", err)
	}
	if len(subjects) != 1 || subjects[0] != "Math" {
		t.Errorf("subjects = %v, want [Math]", subjects)
	}
}

func TestSubjectRemoveUnknownLabel(t *testing.T) {
	svc, _ := newSubjectFixture(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, testUserID, "Math"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}

	subjects, err := svc.Remove(ctx, testUserID, "Biology")
	if err != nil {
		t.Fatalf("Remove() of unknown label failed: %v", err)
	}
	if len(subjects) != 1 {
		t.Errorf("subjects = %v, want [Math]", subjects)
	}
}
