package security

import (
	"account-service/internal/apperror"
	"account-service/internal/model"
	"account-service/internal/model/requestresponse"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type AccessTokenParser interface {
	ParseAccessToken(tokenStr string) (*AccessClaims, error)
}

// UserLoader : загрузка пользователя по UUID из access токена
type UserLoader interface {
	FindActiveUser(ctx context.Context, uuid string) (*model.User, error)
}

func JWTMiddleware(parser AccessTokenParser, loader UserLoader) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(parser, loader, next))
	}
}

func handleAuthentication(parser AccessTokenParser, loader UserLoader, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token := extractAccessToken(request)
		if token == "" {
			writeUnauthorized(writer, "unauthorized request")
			return
		}

		claims, err := parser.ParseAccessToken(token)
		if err != nil {
			slog.Debug("невалидный access токен", "error", err)
			writeUnauthorized(writer, "invalid access token")
			return
		}

		user, err := loader.FindActiveUser(request.Context(), claims.UserUUID)
		if err != nil && !apperror.Is(err, apperror.KindNotFound) {
			slog.Error("ошибка загрузки пользователя по токену", "user_id", claims.UserUUID, "error", err)
			writeError(writer, http.StatusInternalServerError, apperror.PublicMessage(err))
			return
		}
		if user == nil {
			writeUnauthorized(writer, "invalid access token")
			return
		}

		ctx := context.WithValue(request.Context(), UserContextKey, user.Sanitized())
		next.ServeHTTP(writer, request.WithContext(ctx))
	}
}

// extractAccessToken : cookie имеет приоритет над заголовком Authorization
func extractAccessToken(request *http.Request) string {
	if cookie, err := request.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authorizationHeader := request.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authorizationHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// UserFromContext : пользователь, прикреплённый JWTMiddleware
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// WithUser : кладёт пользователя в контекст так же, как это делает JWTMiddleware
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func writeUnauthorized(writer http.ResponseWriter, message string) {
	writeError(writer, http.StatusUnauthorized, message)
}

func writeError(writer http.ResponseWriter, statusCode int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(requestresponse.ApiError{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}
