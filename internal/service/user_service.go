package service

import (
	"account-service/internal/apperror"
	"account-service/internal/model"
	"account-service/internal/model/requestresponse"
	"account-service/internal/ports"
	"account-service/internal/security"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	mediaStorage   ports.MediaStorage
	userCache      ports.UserCache
	validate       *validator.Validate
}

// NewUserService : userCache может быть nil, тогда кэширование отключено
func NewUserService(
	userRepository ports.UserRepository,
	mediaStorage ports.MediaStorage,
	userCache ports.UserCache,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		mediaStorage:   mediaStorage,
		userCache:      userCache,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *UserService) Register(ctx context.Context, req requestresponse.RegisterRequest) (*model.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))

	if req.FullName == "" || req.Email == "" || req.Username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperror.Validation("all fields are required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation("invalid email address", validationDetails(err)...)
	}

	exists, err := s.userRepository.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, apperror.Internal("[UserService] ошибка проверки существования пользователя", err)
	}
	if exists {
		return nil, apperror.Conflict("user with email or username already exists", nil)
	}

	if req.AvatarPath == "" {
		return nil, apperror.Validation("avatar file is required")
	}

	avatarURL, err := s.mediaStorage.Upload(ctx, req.AvatarPath)
	if err != nil || avatarURL == "" {
		return nil, apperror.Internal("[UserService] не удалось загрузить аватар", err)
	}

	coverImageURL, err := s.mediaStorage.Upload(ctx, req.CoverImagePath)
	if err != nil {
		s.deleteMedia(ctx, avatarURL)
		return nil, apperror.Internal("[UserService] не удалось загрузить обложку", err)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		s.deleteMedia(ctx, avatarURL, coverImageURL)
		return nil, apperror.Internal("[UserService] не удалось создать хэш пароля", err)
	}

	created, err := s.userRepository.CreateUser(ctx, &model.User{
		UUID:         uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Avatar:       avatarURL,
		CoverImage:   coverImageURL,
		PasswordHash: hash,
	})
	if err != nil {
		s.deleteMedia(ctx, avatarURL, coverImageURL)
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	slog.Info("[UserService] пользователь зарегистрирован", "user_id", created.UUID)
	return created.Sanitized(), nil
}

// CurrentUser : пользователь, прикреплённый к запросу middleware аутентификации
func (s *UserService) CurrentUser(ctx context.Context) (*model.User, error) {
	user, ok := security.UserFromContext(ctx)
	if !ok {
		return nil, apperror.Unauthorized("unauthorized request", nil)
	}
	return user, nil
}

// FindActiveUser : очищенный пользователь по UUID, сначала из кэша, затем из БД.
// Ошибки кэша не прерывают запрос
func (s *UserService) FindActiveUser(ctx context.Context, uuid string) (*model.User, error) {
	if s.userCache != nil {
		cached, err := s.userCache.GetUser(ctx, uuid)
		if err != nil {
			slog.Warn("[UserService] кэш недоступен, чтение из БД", "user_id", uuid, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.userRepository.FindByUUID(ctx, uuid)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("user does not exist", err)
		}
		return nil, fmt.Errorf("[UserService] ошибка загрузки пользователя: %w", err)
	}

	sanitized := user.Sanitized()
	if s.userCache != nil {
		if err := s.userCache.SetUser(ctx, sanitized); err != nil {
			slog.Warn("[UserService] не удалось сохранить пользователя в кэш", "user_id", uuid, "error", err)
		}
	}

	return sanitized, nil
}

func (s *UserService) UpdateAccountDetails(ctx context.Context, uuid, fullName, email string) (*model.User, error) {
	req := requestresponse.UpdateAccountRequest{
		FullName: strings.TrimSpace(fullName),
		Email:    strings.ToLower(strings.TrimSpace(email)),
	}

	if req.FullName == "" && req.Email == "" {
		return nil, apperror.Validation("fullName or email is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation("invalid email address", validationDetails(err)...)
	}

	user, err := s.userRepository.UpdateAccount(ctx, uuid, req.FullName, req.Email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("user does not exist", err)
		}
		return nil, fmt.Errorf("[UserService] ошибка обновления пользователя: %w", err)
	}

	s.evict(ctx, uuid)
	return user.Sanitized(), nil
}

// ChangePassword : меняет пароль. Выданный refresh токен остаётся действительным
func (s *UserService) ChangePassword(ctx context.Context, uuid, oldPassword, newPassword string) error {
	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return apperror.Validation("oldPassword and newPassword are required")
	}

	user, err := s.userRepository.FindByUUID(ctx, uuid)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return apperror.NotFound("user does not exist", err)
		}
		return fmt.Errorf("[UserService] ошибка загрузки пользователя: %w", err)
	}

	if !security.CheckPassword(oldPassword, user.PasswordHash) {
		return apperror.Unauthorized("invalid old password", nil)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal("[UserService] не удалось создать хэш пароля", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, uuid, hash); err != nil {
		return fmt.Errorf("[UserService] ошибка смены пароля: %w", err)
	}

	return nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, uuid, tempPath string) (*model.User, error) {
	if tempPath == "" {
		return nil, apperror.Validation("avatar file is required")
	}
	return s.replaceImage(ctx, uuid, tempPath, avatarImage)
}

func (s *UserService) UpdateCoverImage(ctx context.Context, uuid, tempPath string) (*model.User, error) {
	if tempPath == "" {
		return nil, apperror.Validation("cover image file is required")
	}
	return s.replaceImage(ctx, uuid, tempPath, coverImage)
}

type imageKind int

const (
	avatarImage imageKind = iota
	coverImage
)

// replaceImage : загружает новое изображение, сохраняет URL и удаляет старый объект.
// Ошибка удаления старого объекта только логируется
func (s *UserService) replaceImage(ctx context.Context, uuid, tempPath string, kind imageKind) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, uuid)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("user does not exist", err)
		}
		return nil, fmt.Errorf("[UserService] ошибка загрузки пользователя: %w", err)
	}

	url, err := s.mediaStorage.Upload(ctx, tempPath)
	if err != nil || url == "" {
		return nil, apperror.Internal("[UserService] не удалось загрузить изображение", err)
	}

	var previous string
	switch kind {
	case avatarImage:
		previous, user.Avatar = user.Avatar, url
		err = s.userRepository.UpdateAvatar(ctx, uuid, url)
	case coverImage:
		previous, user.CoverImage = user.CoverImage, url
		err = s.userRepository.UpdateCoverImage(ctx, uuid, url)
	}
	if err != nil {
		s.deleteMedia(ctx, url)
		return nil, fmt.Errorf("[UserService] ошибка сохранения изображения: %w", err)
	}

	s.evict(ctx, uuid)
	s.deleteMedia(ctx, previous)

	return user.Sanitized(), nil
}

func (s *UserService) evict(ctx context.Context, uuid string) {
	if s.userCache == nil {
		return
	}
	if err := s.userCache.DeleteUser(ctx, uuid); err != nil {
		slog.Warn("[UserService] не удалось удалить пользователя из кэша", "user_id", uuid, "error", err)
	}
}

func (s *UserService) deleteMedia(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := s.mediaStorage.Delete(ctx, url); err != nil {
			slog.Warn("[UserService] не удалось удалить медиа", "url", url, "error", err)
		}
	}
}

func validationDetails(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details = append(details, fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return details
}
