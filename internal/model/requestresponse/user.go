package requestresponse

import "account-service/internal/model"

// RegisterRequest : поля multipart формы регистрации. Файлы к этому моменту
// уже сохранены во временные пути
type RegisterRequest struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Username string `validate:"required"`
	Password string `validate:"required"`

	AvatarPath     string `validate:"-"`
	CoverImagePath string `validate:"-"`
}

// ChangePasswordRequest : тело запроса на смену пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required" example:"secret123"`
	NewPassword string `json:"newPassword" validate:"required" example:"n3wSecret!"`
}

// UpdateAccountRequest : тело запроса на обновление профиля, достаточно одного поля
type UpdateAccountRequest struct {
	FullName string `json:"fullName" validate:"required_without=Email" example:"Alice Liddell"`
	Email    string `json:"email" validate:"omitempty,email" example:"alice@example.com"`
}

// ApiResponse : общий конверт успешного ответа
type ApiResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Data       any    `json:"data"`
	Message    string `json:"message" example:"Success"`
	Success    bool   `json:"success" example:"true"`
}

// ApiError : общий конверт ответа с ошибкой, data всегда null
type ApiError struct {
	StatusCode int      `json:"statusCode" example:"401"`
	Message    string   `json:"message" example:"unauthorized request"`
	Data       any      `json:"data"`
	Success    bool     `json:"success" example:"false"`
	Errors     []string `json:"errors"`
}

// UserResponse : ответ с данными пользователя
type UserResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Data       *model.User `json:"data"`
	Message    string      `json:"message" example:"user fetched successfully"`
	Success    bool        `json:"success" example:"true"`
}
