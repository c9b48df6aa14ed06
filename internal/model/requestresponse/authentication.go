package requestresponse

import "account-service/internal/model"

// LoginRequest : тело запроса на аутентификацию, достаточно username или email
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret123"`
}

// RefreshTokenRequest : запрос на обновление пары токенов, если cookie не передана
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
}

// AuthData : данные ответа на login и refresh-token
type AuthData struct {
	User         *model.User `json:"user,omitempty"`
	AccessToken  string      `json:"accessToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string      `json:"refreshToken" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
}

// AuthResponse : ответ на login и refresh-token
type AuthResponse struct {
	StatusCode int      `json:"statusCode" example:"200"`
	Data       AuthData `json:"data"`
	Message    string   `json:"message" example:"user logged in successfully"`
	Success    bool     `json:"success" example:"true"`
}
