package repository

import (
	"account-service/internal/apperror"
	"account-service/internal/model"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MemoryUserRepository : хранилище пользователей в памяти процесса.
// Используется, когда DATABASE_URL не задан, и в тестах
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User
	now   func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]*model.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryUserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *user
	created.Username = normalizeIdentifier(user.Username)
	created.Email = normalizeIdentifier(user.Email)
	created.FullName = strings.TrimSpace(user.FullName)
	created.RefreshToken = nil

	if _, ok := r.users[created.UUID]; ok {
		return nil, apperror.Conflict(conflictMessage, nil)
	}
	if r.findLocked(created.Username, created.Email) != nil {
		return nil, apperror.Conflict(conflictMessage, nil)
	}

	created.CreatedAt = r.now()
	created.UpdatedAt = created.CreatedAt
	r.users[created.UUID] = &created

	return copyUser(&created), nil
}

func (r *MemoryUserRepository) FindByUUID(_ context.Context, uuid string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[uuid]
	if !ok {
		return nil, fmt.Errorf("[MemoryUserRepo] пользователь %s: %w", uuid, apperror.ErrNotFound)
	}
	return copyUser(user), nil
}

func (r *MemoryUserRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.findLocked(normalizeIdentifier(username), normalizeIdentifier(email))
	if user == nil {
		return nil, fmt.Errorf("[MemoryUserRepo] пользователь не найден: %w", apperror.ErrNotFound)
	}
	return copyUser(user), nil
}

func (r *MemoryUserRepository) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findLocked(normalizeIdentifier(username), normalizeIdentifier(email)) != nil, nil
}

func (r *MemoryUserRepository) UpdateAccount(_ context.Context, uuid, fullName, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok {
		return nil, fmt.Errorf("[MemoryUserRepo] пользователь %s: %w", uuid, apperror.ErrNotFound)
	}

	email = normalizeIdentifier(email)
	if email != "" {
		for _, other := range r.users {
			if other.UUID != uuid && other.Email == email {
				return nil, apperror.Conflict(conflictMessage, nil)
			}
		}
		user.Email = email
	}
	if fullName = strings.TrimSpace(fullName); fullName != "" {
		user.FullName = fullName
	}
	user.UpdatedAt = r.now()

	return copyUser(user), nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, uuid, newPasswordHash string) error {
	return r.update(uuid, func(user *model.User) { user.PasswordHash = newPasswordHash })
}

func (r *MemoryUserRepository) UpdateAvatar(_ context.Context, uuid, url string) error {
	return r.update(uuid, func(user *model.User) { user.Avatar = url })
}

func (r *MemoryUserRepository) UpdateCoverImage(_ context.Context, uuid, url string) error {
	return r.update(uuid, func(user *model.User) { user.CoverImage = url })
}

func (r *MemoryUserRepository) SetRefreshToken(_ context.Context, uuid, refreshToken string) error {
	return r.update(uuid, func(user *model.User) { user.RefreshToken = &refreshToken })
}

func (r *MemoryUserRepository) ClearRefreshToken(_ context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[uuid]; ok {
		user.RefreshToken = nil
	}
	return nil
}

func (r *MemoryUserRepository) update(uuid string, apply func(user *model.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok {
		return fmt.Errorf("[MemoryUserRepo] пользователь %s: %w", uuid, apperror.ErrNotFound)
	}
	apply(user)
	user.UpdatedAt = r.now()
	return nil
}

// findLocked : совпадение по username имеет приоритет над совпадением по email
func (r *MemoryUserRepository) findLocked(username, email string) *model.User {
	var byEmail *model.User
	for _, user := range r.users {
		if username != "" && user.Username == username {
			return user
		}
		if byEmail == nil && email != "" && user.Email == email {
			byEmail = user
		}
	}
	return byEmail
}

func copyUser(user *model.User) *model.User {
	clone := *user
	if user.RefreshToken != nil {
		token := *user.RefreshToken
		clone.RefreshToken = &token
	}
	return &clone
}
