package security

import (
	"account-service/config"
	"account-service/internal/model"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("невалидный токен")

// AccessClaims : полезная нагрузка access токена
type AccessClaims struct {
	UserUUID string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// RefreshClaims : полезная нагрузка refresh токена. ID (jti) случаен,
// поэтому два токена, выпущенные в одну секунду, различаются
type RefreshClaims struct {
	UserUUID string `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
}

func (service *JWTService) AccessTokenTTL() time.Duration {
	return service.accessTTL
}

func (service *JWTService) RefreshTokenTTL() time.Duration {
	return service.refreshTTL
}

func (service *JWTService) GenerateAccessToken(user *model.User) (string, error) {
	now := service.now()
	claims := AccessClaims{
		UserUUID: user.UUID,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(service.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    service.issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(service.accessSecret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи access токена: %w", err)
	}
	return token, nil
}

func (service *JWTService) GenerateRefreshToken(userUUID string) (string, error) {
	now := service.now()
	claims := RefreshClaims{
		UserUUID: userUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    service.issuer,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(service.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи refresh токена: %w", err)
	}
	return token, nil
}

func (service *JWTService) ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := service.validateJWT(tokenStr, claims, service.accessSecret); err != nil {
		return nil, err
	}
	if claims.UserUUID == "" {
		return nil, fmt.Errorf("%w: отсутствует user_id", ErrInvalidToken)
	}
	return claims, nil
}

func (service *JWTService) ParseRefreshToken(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.validateJWT(tokenStr, claims, service.refreshSecret); err != nil {
		return nil, err
	}
	if claims.UserUUID == "" {
		return nil, fmt.Errorf("%w: отсутствует user_id", ErrInvalidToken)
	}
	return claims, nil
}

func (service *JWTService) validateJWT(tokenStr string, claims jwt.Claims, secretKey []byte) error {
	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(service.now), jwt.WithExpirationRequired())

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !jwtToken.Valid {
		return ErrInvalidToken
	}
	return nil
}
