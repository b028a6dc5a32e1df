package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studytracker/core/internal/domain/entities"
	"github.com/studytracker/core/internal/ports"
)

// Storage keys. Collections are stored wholesale as JSON arrays; the
// active user is a single record under its own key.
const (
	keyUsers       = "users"
	keyCurrentUser = "currentUser"
)

func taskKey(userID int64) string       { return fmt.Sprintf("tasks_%d", userID) }
func subjectKey(userID int64) string    { return fmt.Sprintf("subjects_%d", userID) }
func studyAppKey(userID int64) string   { return fmt.Sprintf("studyApps_%d", userID) }
func onboardingKey(userID int64) string { return fmt.Sprintf("onboarding_%d", userID) }

// UserRepositoryImpl implements the UserRepository interface over the
// key-value store.
type UserRepositoryImpl struct {
	store ports.Storage
}

// NewUserRepository creates a new user repository.
func NewUserRepository(store ports.Storage) ports.UserRepository {
	return &UserRepositoryImpl{store: store}
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := loadCollection(ctx, r.store, keyUsers, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepositoryImpl) Save(ctx context.Context, users []entities.User) error {
	if err := saveCollection(ctx, r.store, keyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *UserRepositoryImpl) CurrentUser(ctx context.Context) (*entities.User, error) {
	blob, found, err := r.store.Get(ctx, keyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	if !found {
		return nil, entities.ErrNoActiveUser
	}

	var user entities.User
	if err := json.Unmarshal(blob, &user); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) SetCurrentUser(ctx context.Context, user *entities.User) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	if err := r.store.Set(ctx, keyCurrentUser, blob); err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}

func (r *UserRepositoryImpl) ClearCurrentUser(ctx context.Context) error {
	if err := r.store.Remove(ctx, keyCurrentUser); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// loadCollection reads a JSON array blob into dest. A missing key is the
// empty collection.
func loadCollection(ctx context.Context, store ports.Storage, key string, dest interface{}) error {
	blob, found, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(blob, dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// saveCollection rewrites the whole collection blob under key.
func saveCollection(ctx context.Context, store ports.Storage, key string, collection interface{}) error {
	blob, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return store.Set(ctx, key, blob)
}
