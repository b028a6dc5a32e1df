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

// StudyAppService owns the per-user catalogue of external study apps and
// resources that tasks may link to.
type StudyAppService struct {
	appRepo ports.StudyAppRepository
	logger  *logger.Logger

	mu  sync.Mutex
	ids *idGenerator
}

// NewStudyAppService creates a new study app service.
func NewStudyAppService(appRepo ports.StudyAppRepository, logger *logger.Logger) *StudyAppService {
	return &StudyAppService{
		appRepo: appRepo,
		logger:  logger,
		ids:     newIDGenerator(time.Now),
	}
}

// Add appends a study app and persists the collection.
func (s *StudyAppService) Add(ctx context.Context, userID int64, form ports.StudyAppForm) (*entities.StudyApp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.appRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load study apps: %w", err)
	}

	app := entities.StudyApp{
		ID:          s.ids.next(),
		Name:        form.Name,
		Description: form.Description,
		URL:         form.URL,
	}

	apps = append(apps, app)
	if err := s.appRepo.Save(ctx, userID, apps); err != nil {
		return nil, fmt.Errorf("persist study apps: %w", err)
	}

	s.logger.Info("Study app added", "user_id", userID, "app_id", app.ID, "name", app.Name)

	return &app, nil
}

// Remove deletes a study app after user confirmation; declining leaves
// state unchanged.
func (s *StudyAppService) Remove(ctx context.Context, userID, id int64, confirmed bool) error {
	if !confirmed {
		return entities.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apps, err := s.appRepo.List(ctx, userID)
	if err != nil {
		return fmt.Errorf("load study apps: %w", err)
	}

	idx := -1
	for i := range apps {
		if apps[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.ErrAppNotFound
	}

	apps = append(apps[:idx], apps[idx+1:]...)
	if err := s.appRepo.Save(ctx, userID, apps); err != nil {
		return fmt.Errorf("persist study apps: %w", err)
	}

	s.logger.Info("Study app removed", "user_id", userID, "app_id", id)

	return nil
}

// List retrieves the app catalogue.
func (s *StudyAppService) List(ctx context.Context, userID int64) ([]entities.StudyApp, error) {
	apps, err := s.appRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load study apps: %w", err)
	}
	return apps, nil
}
