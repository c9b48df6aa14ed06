package ports

import (
	"account-service/internal/model"
	"context"
)

type AuthenticationService interface {
	VerifyCredentials(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, email, password string) (*model.User, *model.TokensPair, error)
	IssueTokens(ctx context.Context, userUUID string) (*model.TokensPair, error)
	RotateRefreshToken(ctx context.Context, refreshToken string) (*model.User, *model.TokensPair, error)
	InvalidateRefreshToken(ctx context.Context, userUUID string) error
}
