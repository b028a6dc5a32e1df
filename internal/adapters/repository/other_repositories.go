package repository

import (
	"context"
	"fmt"

	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface.
type TaskRepositoryImpl struct {
	store ports.Storage
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(store ports.Storage) ports.TaskRepository {
	return &TaskRepositoryImpl{store: store}
}

func (r *TaskRepositoryImpl) List(ctx context.Context, userID int64) ([]entities.Task, error) {
	var tasks []entities.Task
	if err := loadCollection(ctx, r.store, taskKey(userID), &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) Save(ctx context.Context, userID int64, tasks []entities.Task) error {
	if tasks == nil {
		tasks = []entities.Task{}
	}
	if err := saveCollection(ctx, r.store, taskKey(userID), tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// SubjectRepositoryImpl implements the SubjectRepository interface.
type SubjectRepositoryImpl struct {
	store ports.Storage
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(store ports.Storage) ports.SubjectRepository {
	return &SubjectRepositoryImpl{store: store}
}

func (r *SubjectRepositoryImpl) List(ctx context.Context, userID int64) ([]string, error) {
	var subjects []string
	if err := loadCollection(ctx, r.store, subjectKey(userID), &subjects); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

func (r *SubjectRepositoryImpl) Save(ctx context.Context, userID int64, subjects []string) error {
	if subjects == nil {
		subjects = []string{}
	}
	if err := saveCollection(ctx, r.store, subjectKey(userID), subjects); err != nil {
		return fmt.Errorf("save subjects: %w", err)
	}
	return nil
}

// StudyAppRepositoryImpl implements the StudyAppRepository interface.
type StudyAppRepositoryImpl struct {
	store ports.Storage
}

// NewStudyAppRepository creates a new study app repository.
func NewStudyAppRepository(store ports.Storage) ports.StudyAppRepository {
	return &StudyAppRepositoryImpl{store: store}
}

func (r *StudyAppRepositoryImpl) List(ctx context.Context, userID int64) ([]entities.StudyApp, error) {
	var apps []entities.StudyApp
	if err := loadCollection(ctx, r.store, studyAppKey(userID), &apps); err != nil {
		return nil, fmt.Errorf("list study apps: %w", err)
	}
	return apps, nil
}

func (r *StudyAppRepositoryImpl) Save(ctx context.Context, userID int64, apps []entities.StudyApp) error {
	if apps == nil {
		apps = []entities.StudyApp{}
	}
	if err := saveCollection(ctx, r.store, studyAppKey(userID), apps); err != nil {
		return fmt.Errorf("save study apps: %w", err)
	}
	return nil
}

// OnboardingRepositoryImpl implements the OnboardingRepository interface.
// The flag is presence-only: any stored value means the walkthrough was
// already shown.
type OnboardingRepositoryImpl struct {
	store ports.Storage
}

// NewOnboardingRepository creates a new onboarding repository.
func NewOnboardingRepository(store ports.Storage) ports.OnboardingRepository {
	return &OnboardingRepositoryImpl{store: store}
}

func (r *OnboardingRepositoryImpl) Seen(ctx context.Context, userID int64) (bool, error) {
	_, found, err := r.store.Get(ctx, onboardingKey(userID))
	if err != nil {
		return false, fmt.Errorf("get onboarding flag: %w", err)
	}
	return found, nil
}

func (r *OnboardingRepositoryImpl) MarkSeen(ctx context.Context, userID int64) error {
	if err := r.store.Set(ctx, onboardingKey(userID), []byte(`"true"`)); err != nil {
		return fmt.Errorf("set onboarding flag: %w", err)
	}
	return nil
}
