package service

import (
	"account-service/internal/apperror"
	"account-service/internal/model"
	"account-service/internal/ports"
	"account-service/internal/security"
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
)

type AuthenticationService struct {
	userRepository      ports.UserRepository
	jwtServiceInterface ports.JWTServiceInterface
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository:      userRepository,
		jwtServiceInterface: jwtService,
	}
}

// VerifyCredentials : проверяет username или email и пароль. Ничего не меняет в хранилище
func (s *AuthenticationService) VerifyCredentials(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" && email == "" {
		return nil, apperror.Validation("username or email is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperror.Validation("password is required")
	}

	user, err := s.userRepository.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("user does not exist", err)
		}
		return nil, apperror.Internal("[AuthService] ошибка поиска пользователя", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, apperror.Unauthorized("invalid user credentials", nil)
	}

	return user, nil
}

func (s *AuthenticationService) Login(ctx context.Context, username, email, password string) (*model.User, *model.TokensPair, error) {
	user, err := s.VerifyCredentials(ctx, username, email, password)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user.Sanitized(), tokens, nil
}

// IssueTokens : выпускает пару токенов и сохраняет refresh токен у пользователя,
// вытесняя предыдущий
func (s *AuthenticationService) IssueTokens(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.NotFound("user does not exist", err)
		}
		return nil, apperror.Internal("[AuthService] ошибка загрузки пользователя", err)
	}

	return s.issue(ctx, user)
}

func (s *AuthenticationService) issue(ctx context.Context, user *model.User) (*model.TokensPair, error) {
	accessToken, err := s.jwtServiceInterface.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.Internal("[AuthService] ошибка генерации access токена", err)
	}

	refreshToken, err := s.jwtServiceInterface.GenerateRefreshToken(user.UUID)
	if err != nil {
		return nil, apperror.Internal("[AuthService] ошибка генерации refresh токена", err)
	}

	if err := s.userRepository.SetRefreshToken(ctx, user.UUID, refreshToken); err != nil {
		return nil, apperror.Internal("[AuthService] ошибка сохранения refresh токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RotateRefreshToken : обменивает действующий refresh токен на новую пару.
// Токен принимается только если подпись и срок верны и он совпадает с сохранённым.
// Два одновременных обмена одним токеном могут оба пройти сравнение,
// тогда в хранилище остаётся токен последнего
func (s *AuthenticationService) RotateRefreshToken(ctx context.Context, refreshToken string) (*model.User, *model.TokensPair, error) {
	claims, err := s.jwtServiceInterface.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperror.Unauthorized("invalid or expired token", err)
	}

	user, err := s.userRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, nil, apperror.Unauthorized("invalid refresh token", err)
		}
		return nil, nil, apperror.Internal("[AuthService] ошибка загрузки пользователя", err)
	}

	stored := user.StoredRefreshToken()
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(refreshToken)) != 1 {
		return nil, nil, apperror.Unauthorized("refresh token expired/superseded", nil)
	}

	tokens, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user.Sanitized(), tokens, nil
}

// InvalidateRefreshToken : сбрасывает сохранённый refresh токен (logout)
func (s *AuthenticationService) InvalidateRefreshToken(ctx context.Context, userUUID string) error {
	if err := s.userRepository.ClearRefreshToken(ctx, userUUID); err != nil {
		return apperror.Internal(fmt.Sprintf("[AuthService] не удалось сбросить refresh токен пользователя %s", userUUID), err)
	}
	return nil
}
