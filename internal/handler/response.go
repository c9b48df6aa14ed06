package handler

import (
	"account-service/internal/apperror"
	"account-service/internal/model/requestresponse"
	"account-service/internal/security"
	"encoding/json"
	"log/slog"
	"net/http"
)

func sendResponse(w http.ResponseWriter, statusCode int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(requestresponse.ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	}); err != nil {
		slog.Error("ошибка записи ответа", "error", err)
	}
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(requestresponse.ApiError{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     details,
	}); err != nil {
		slog.Error("ошибка записи ответа", "error", err)
	}
}

// handleServiceError : переводит ошибку сервиса в HTTP ответ.
// Причина внутренних ошибок пишется только в лог
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		slog.Error("внутренняя ошибка", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	sendErrorResponse(w, apperror.HTTPStatus(kind), apperror.PublicMessage(err), apperror.PublicDetails(err)...)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// currentUserUUID : UUID пользователя, прикреплённого JWTMiddleware
func currentUserUUID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := security.UserFromContext(r.Context())
	if !ok {
		sendErrorResponse(w, http.StatusUnauthorized, "unauthorized request")
		return "", false
	}
	return user.UUID, true
}
