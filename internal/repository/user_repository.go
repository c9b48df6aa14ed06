package repository

import (
	"account-service/config"
	"account-service/internal/apperror"
	"account-service/internal/model"
	"account-service/internal/util"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

const (
	userColumns = `uuid, username, email, full_name, avatar, cover_image, password_hash, refresh_token, created_at, updated_at`

	uniqueViolationCode = "23505"

	conflictMessage = "user with email or username already exists"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя. username и email приводятся к нижнему регистру
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, username, email, full_name, avatar, cover_image, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		normalizeIdentifier(user.Username),
		normalizeIdentifier(user.Email),
		strings.TrimSpace(user.FullName),
		user.Avatar,
		user.CoverImage,
		user.PasswordHash,
	).StructScan(createdUser)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(conflictMessage, err)
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1`

	var user model.User
	if err := r.DB.GetContext(ctx, &user, query, uuid); err != nil {
		return nil, wrapQueryError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// FindByUsernameOrEmail : ищет пользователя по username или email.
// Если username и email принадлежат разным пользователям, выигрывает совпадение по username
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2
		ORDER BY (username = $1) DESC LIMIT 1`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, normalizeIdentifier(username), normalizeIdentifier(email))
	if err != nil {
		return nil, wrapQueryError("[UserRepo] не удалось найти пользователя по username/email", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	err := r.DB.GetContext(ctx, &exists, query, normalizeIdentifier(username), normalizeIdentifier(email))
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// UpdateAccount : обновляет full_name и email. Пустые значения оставляют поле без изменений
func (r *UserRepository) UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE(NULLIF($2, ''), full_name),
		    email = COALESCE(NULLIF($3, ''), email),
		    updated_at = NOW()
		WHERE uuid = $1
		RETURNING ` + userColumns

	var user model.User
	err := r.DB.QueryRowxContext(ctx, query, uuid, strings.TrimSpace(fullName), normalizeIdentifier(email)).StructScan(&user)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(conflictMessage, err)
		}
		return nil, wrapQueryError("[UserRepo] не удалось обновить пользователя", err)
	}
	return &user, nil
}

// UpdatePassword : меняет хэш пароля пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE uuid = $1`
	return r.execUpdate(ctx, "[UserRepo] не удалось обновить пароль", query, uuid, newPasswordHash)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, uuid, url string) error {
	query := `UPDATE users SET avatar = $2, updated_at = NOW() WHERE uuid = $1`
	return r.execUpdate(ctx, "[UserRepo] не удалось обновить аватар", query, uuid, url)
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, uuid, url string) error {
	query := `UPDATE users SET cover_image = $2, updated_at = NOW() WHERE uuid = $1`
	return r.execUpdate(ctx, "[UserRepo] не удалось обновить обложку", query, uuid, url)
}

// SetRefreshToken : перезаписывает единственный действующий refresh токен пользователя
func (r *UserRepository) SetRefreshToken(ctx context.Context, uuid, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $2 WHERE uuid = $1`
	return r.execUpdate(ctx, "[UserRepo] не удалось сохранить refresh токен", query, uuid, refreshToken)
}

// ClearRefreshToken : обнуляет refresh токен. Повторный вызов ничего не меняет
func (r *UserRepository) ClearRefreshToken(ctx context.Context, uuid string) error {
	query := `UPDATE users SET refresh_token = NULL WHERE uuid = $1`

	if _, err := r.DB.ExecContext(ctx, query, uuid); err != nil {
		return util.LogError("[UserRepo] не удалось сбросить refresh токен", err)
	}
	return nil
}

func (r *UserRepository) execUpdate(ctx context.Context, message, query string, args ...any) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return util.LogError(message, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError(message, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", message, apperror.ErrNotFound)
	}
	return nil
}

func wrapQueryError(message string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", message, apperror.ErrNotFound)
	}
	return util.LogError(message, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
