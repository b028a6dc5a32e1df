package ports

import (
	"context"

	"github.com/studytracker/core/internal/domain/entities"
)

// Storage is the key-value store all collections persist through. Values
// are opaque JSON blobs; there are no transactions and no atomicity across
// keys. Concurrent writers to the same key are last-writer-wins.
type Storage interface {
	// Get returns the blob stored under key. found is false when the key
	// is absent, which callers treat as the empty collection.
	Get(ctx context.Context, key string) (blob []byte, found bool, err error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// UserRepository owns the global users collection and the active-user
// record.
type UserRepository interface {
	List(ctx context.Context) ([]entities.User, error)
	Save(ctx context.Context, users []entities.User) error
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	CurrentUser(ctx context.Context) (*entities.User, error)
	SetCurrentUser(ctx context.Context, user *entities.User) error
	ClearCurrentUser(ctx context.Context) error
}

// TaskRepository owns a user's task collection. Save always rewrites the
// whole collection.
type TaskRepository interface {
	List(ctx context.Context, userID int64) ([]entities.Task, error)
	Save(ctx context.Context, userID int64, tasks []entities.Task) error
}

// SubjectRepository owns a user's subject labels.
type SubjectRepository interface {
	List(ctx context.Context, userID int64) ([]string, error)
	Save(ctx context.Context, userID int64, subjects []string) error
}

// StudyAppRepository owns a user's study app collection.
type StudyAppRepository interface {
	List(ctx context.Context, userID int64) ([]entities.StudyApp, error)
	Save(ctx context.Context, userID int64, apps []entities.StudyApp) error
}

// OnboardingRepository tracks whether a user has been shown the
// first-run walkthrough. Presence of the flag means "already seen".
type OnboardingRepository interface {
	Seen(ctx context.Context, userID int64) (bool, error)
	MarkSeen(ctx context.Context, userID int64) error
}
