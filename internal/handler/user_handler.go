package handler

import (
	"account-service/internal/model"
	"account-service/internal/model/requestresponse"
	"account-service/internal/ports"
	"account-service/internal/util"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
)

// multipartMemory : сколько байт формы держать в памяти, остальное уходит во временные файлы
const multipartMemory = 1 << 20

type UserHandler struct {
	ports.UserService
	maxUploadBytes int64
}

func NewUserHandler(userService ports.UserService, maxUploadBytes int64) *UserHandler {
	return &UserHandler{userService, maxUploadBytes}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создаёт пользователя. Аватар обязателен, обложка опциональна
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Полное имя"
// @Param email formData string true "Email"
// @Param username formData string true "Имя пользователя"
// @Param password formData string true "Пароль"
// @Param avatar formData file true "Аватар"
// @Param coverImage formData file false "Обложка"
// @Success 201 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ApiError
// @Failure 409 {object} requestresponse.ApiError
// @Failure 500 {object} requestresponse.ApiError
// @Router /users/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}

	avatarPath, err := saveFormFile(r, "avatar")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid avatar file")
		return
	}
	defer removeTempFile(avatarPath)

	coverImagePath, err := saveFormFile(r, "coverImage")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid cover image file")
		return
	}
	defer removeTempFile(coverImagePath)

	user, err := h.UserService.Register(r.Context(), requestresponse.RegisterRequest{
		FullName:       r.FormValue("fullName"),
		Email:          r.FormValue("email"),
		Username:       r.FormValue("username"),
		Password:       r.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverImagePath,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	sendResponse(w, http.StatusCreated, user, "user registered successfully")
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ApiError
// @Router /users/current-user [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.CurrentUser(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	sendResponse(w, http.StatusOK, user, "current user fetched successfully")
}

// ChangePassword godoc
// @Summary Смена пароля
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.ChangePasswordRequest true "Старый и новый пароль"
// @Success 200 {object} requestresponse.ApiResponse
// @Failure 400 {object} requestresponse.ApiError
// @Failure 401 {object} requestresponse.ApiError
// @Router /users/change-password [post]
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := currentUserUUID(w, r)
	if !ok {
		return
	}

	var req requestresponse.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.UserService.ChangePassword(r.Context(), userUUID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(w, r, err)
		return
	}

	sendResponse(w, http.StatusOK, map[string]any{}, "password changed successfully")
}

// UpdateAccountDetails godoc
// @Summary Обновление профиля
// @Description Обновляет полное имя и/или email
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.UpdateAccountRequest true "Новые значения"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ApiError
// @Failure 409 {object} requestresponse.ApiError
// @Router /users/update-account [patch]
func (h *UserHandler) UpdateAccountDetails(w http.ResponseWriter, r *http.Request) {
	userUUID, ok := currentUserUUID(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateAccountDetails(r.Context(), userUUID, req.FullName, req.Email)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	sendResponse(w, http.StatusOK, user, "account details updated successfully")
}

// UpdateAvatar godoc
// @Summary Замена аватара
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "Аватар"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ApiError
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "avatar", h.UserService.UpdateAvatar, "avatar updated successfully")
}

// UpdateCoverImage godoc
// @Summary Замена обложки
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param coverImage formData file true "Обложка"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ApiError
// @Router /users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "coverImage", h.UserService.UpdateCoverImage, "cover image updated successfully")
}

type imageUpdater func(ctx context.Context, uuid, tempPath string) (*model.User, error)

func (h *UserHandler) replaceImage(w http.ResponseWriter, r *http.Request, field string, update imageUpdater, message string) {
	userUUID, ok := currentUserUUID(w, r)
	if !ok {
		return
	}
	if !h.parseMultipart(w, r) {
		return
	}

	tempPath, err := saveFormFile(r, field)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "invalid "+field+" file")
		return
	}
	defer removeTempFile(tempPath)

	user, err := update(r.Context(), userUUID, tempPath)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	sendResponse(w, http.StatusOK, user, message)
}

func (h *UserHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			sendErrorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		sendErrorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return false
	}
	return true
}

// saveFormFile : сохраняет файл формы во временный файл. Отсутствие файла не ошибка,
// возвращается пустой путь
func saveFormFile(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return util.SaveTempFile(file, header.Filename)
}

func removeTempFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("не удалось удалить временный файл", "path", path, "error", err)
	}
}
