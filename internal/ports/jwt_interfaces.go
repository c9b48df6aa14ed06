package ports

import (
	"account-service/internal/model"
	"account-service/internal/security"
	"time"
)

type JWTServiceInterface interface {
	GenerateAccessToken(user *model.User) (string, error)
	GenerateRefreshToken(userUUID string) (string, error)
	ParseAccessToken(tokenStr string) (*security.AccessClaims, error)
	ParseRefreshToken(tokenStr string) (*security.RefreshClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}
