package ports

import (
	"account-service/internal/model"
	"account-service/internal/model/requestresponse"
	"context"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateAccount(ctx context.Context, uuid, fullName, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error
	UpdateAvatar(ctx context.Context, uuid, url string) error
	UpdateCoverImage(ctx context.Context, uuid, url string) error
	SetRefreshToken(ctx context.Context, uuid, refreshToken string) error
	ClearRefreshToken(ctx context.Context, uuid string) error
}

type UserService interface {
	Register(ctx context.Context, req requestresponse.RegisterRequest) (*model.User, error)
	CurrentUser(ctx context.Context) (*model.User, error)
	FindActiveUser(ctx context.Context, uuid string) (*model.User, error)
	UpdateAccountDetails(ctx context.Context, uuid, fullName, email string) (*model.User, error)
	ChangePassword(ctx context.Context, uuid, oldPassword, newPassword string) error
	UpdateAvatar(ctx context.Context, uuid, tempPath string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, uuid, tempPath string) (*model.User, error)
}
