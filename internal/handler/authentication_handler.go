package handler

import (
	"account-service/config"
	"account-service/internal/apperror"
	"account-service/internal/model/requestresponse"
	"account-service/internal/ports"
	"account-service/internal/security"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.JWTServiceInterface
	cookie   *config.CookieConfig
	basePath string
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	jwtServiceInterface ports.JWTServiceInterface,
	cookie *config.CookieConfig,
	basePath string,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		jwtServiceInterface,
		cookie,
		basePath,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Проверяет username или email и пароль, выдаёт пару токенов в cookie и в теле ответа
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ApiError "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ApiError "Неверный пароль"
// @Failure 404 {object} requestresponse.ApiError "Пользователь не найден"
// @Failure 500 {object} requestresponse.ApiError
// @Router /users/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, tokens, err := h.AuthenticationService.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.setTokenCookies(w, tokens.AccessToken, tokens.RefreshToken)
	sendResponse(w, http.StatusOK, requestresponse.AuthData{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "user logged in successfully")
}

// Logout godoc
// @Summary Завершение сессии
// @Description Сбрасывает сохранённый refresh токен и удаляет cookie
// @Tags Authentication
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} requestresponse.ApiResponse
// @Failure 401 {object} requestresponse.ApiError
// @Failure 500 {object} requestresponse.ApiError
// @Router /users/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := currentUserUUID(w, r)
	if !ok {
		return
	}

	if err := h.AuthenticationService.InvalidateRefreshToken(r.Context(), userUUID); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.clearTokenCookies(w)
	sendResponse(w, http.StatusOK, map[string]any{}, "user logged out")
}

// RefreshToken godoc
// @Summary Обновление пары токенов
// @Description Принимает refresh токен из cookie или из тела запроса, выдаёт новую пару. Старый токен перестаёт действовать
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest false "Refresh токен, если cookie не передана"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 401 {object} requestresponse.ApiError
// @Failure 500 {object} requestresponse.ApiError
// @Router /users/refresh-token [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshToken := incomingRefreshToken(r)
	if refreshToken == "" {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	user, tokens, err := h.AuthenticationService.RotateRefreshToken(r.Context(), refreshToken)
	if err != nil {
		if apperror.Is(err, apperror.KindUnauthorized) {
			slog.Info("отказ в обновлении токена", "reason", err)
			sendErrorResponse(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		handleServiceError(w, r, err)
		return
	}

	h.setTokenCookies(w, tokens.AccessToken, tokens.RefreshToken)
	sendResponse(w, http.StatusOK, requestresponse.AuthData{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "access token refreshed")
}

// incomingRefreshToken : cookie, затем поле refreshToken в JSON теле
func incomingRefreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(security.RefreshTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req requestresponse.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return req.RefreshToken
}

func (h *AuthenticationHandler) setTokenCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, h.newCookie(security.AccessTokenCookie, accessToken, h.AccessTokenTTL()))
	http.SetCookie(w, h.newCookie(security.RefreshTokenCookie, refreshToken, h.RefreshTokenTTL()))
}

func (h *AuthenticationHandler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{security.AccessTokenCookie, security.RefreshTokenCookie} {
		cookie := h.newCookie(name, "", 0)
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
		http.SetCookie(w, cookie)
	}
}

func (h *AuthenticationHandler) newCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     h.basePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
