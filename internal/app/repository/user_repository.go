package repository

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/nchoi/atelier-backend/internal/app/model"
	"github.com/nchoi/atelier-backend/pkg/kv"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

var ErrUserNotFound = errors.New("user not found")

const usersKey = "auth:users"

// UserRepository persists the registered-user registry. The whole
// registry lives under a single key so it loads and saves as one unit.
type UserRepository interface {
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	Create(user *model.User) error
	Update(user *model.User) error
}

// storedUser is the persisted form of model.User. The API model hides the
// password hash from JSON, so the registry is written through this type to
// keep the hash in the slot.
type storedUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"password_hash"`
	Name         string         `json:"name"`
	Avatar       string         `json:"avatar,omitempty"`
	Role         model.UserRole `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
}

func toStoredUser(user model.User) storedUser {
	return storedUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Avatar:       user.Avatar,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
}

func (s storedUser) toModel() model.User {
	return model.User{
		ID:           s.ID,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Name:         s.Name,
		Avatar:       s.Avatar,
		Role:         s.Role,
		CreatedAt:    s.CreatedAt,
	}
}

type userRepository struct {
	mu    sync.Mutex
	store kv.Store
	users map[string]model.User
}

func NewUserRepository(store kv.Store) (UserRepository, error) {
	repo := &userRepository{
		store: store,
		users: make(map[string]model.User),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *userRepository) load() error {
	raw, err := r.store.Get(usersKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	stored := make(map[string]storedUser)
	if err := json.Unmarshal(raw, &stored); err != nil {
		logger.Error("Failed to decode user registry, starting empty", err, nil)
		return nil
	}
	for id, user := range stored {
		r.users[id] = user.toModel()
	}
	return nil
}

func (r *userRepository) save() error {
	stored := make(map[string]storedUser, len(r.users))
	for id, user := range r.users {
		stored[id] = toStoredUser(user)
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return r.store.Set(usersKey, raw)
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := user
	return &found, nil
}

func (r *userRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *user
	return r.save()
}

func (r *userRepository) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[user.ID] = *user
	return r.save()
}
