package ports

import (
	"account-service/internal/model"
	"context"
)

// UserCache : Redis слой. Промах кэша возвращает nil, nil
type UserCache interface {
	SetUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	DeleteUser(ctx context.Context, uuid string) error
}
