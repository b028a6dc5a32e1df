package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/ports"
)

// SubjectService owns the set of subject labels usable by tasks. Removal
// is refused while any task still references the label; this is the only
// write-path validation tying two collections together.
type SubjectService struct {
	subjectRepo ports.SubjectRepository
	taskRepo    ports.TaskRepository
	logger      *logger.Logger

	mu sync.Mutex
}

// NewSubjectService creates a new subject service.
func NewSubjectService(subjectRepo ports.SubjectRepository, taskRepo ports.TaskRepository, logger *logger.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// Add appends a subject label. Empty labels and exact duplicates are
// silently ignored.
func (s *SubjectService) Add(ctx context.Context, userID int64, label string) ([]string, error) {
	label = strings.TrimSpace(label)

	s.mu.Lock()
	defer s.mu.Unlock()

	subjects, err := s.subjectRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}

	if label == "" || contains(subjects, label) {
		return subjects, nil
	}

	subjects = append(subjects, label)
	if err := s.subjectRepo.Save(ctx, userID, subjects); err != nil {
		return nil, fmt.Errorf("persist subjects: %w", err)
	}

	s.logger.Info("Subject added", "user_id", userID, "subject", label)

	return subjects, nil
}

// Remove deletes a subject label. Fails with ErrSubjectInUse while any
// task references it, leaving the registry unchanged.
func (s *SubjectService) Remove(ctx context.Context, userID int64, label string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The in-use check reads the task collection under this service's
	// lock only. A task created concurrently can re-reference the label
	// mid-removal; last writer wins, matching the storage model.
	tasks, err := s.taskRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	for i := range tasks {
		if tasks[i].Subject == label {
			return nil, entities.ErrSubjectInUse
		}
	}

	subjects, err := s.subjectRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}

	kept := subjects[:0]
	for _, subject := range subjects {
		if subject != label {
			kept = append(kept, subject)
		}
	}
	subjects = kept

	if err := s.subjectRepo.Save(ctx, userID, subjects); err != nil {
		return nil, fmt.Errorf("persist subjects: %w", err)
	}

	s.logger.Info("Subject removed", "user_id", userID, "subject", label)

	return subjects, nil
}

// List retrieves the registry in insertion order.
func (s *SubjectService) List(ctx context.Context, userID int64) ([]string, error) {
	subjects, err := s.subjectRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	return subjects, nil
}

func contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
