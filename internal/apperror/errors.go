package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
)

// ErrNotFound : базовая ошибка репозиториев, когда запись не найдена
var ErrNotFound = errors.New("not found")

// Error : ошибка с категорией, которую граница HTTP переводит в статус
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string, details ...string) error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func Conflict(message string, err error) error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func NotFound(message string, err error) error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func Unauthorized(message string, err error) error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: err}
}

func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf : возвращает категорию первой ошибки *Error в цепочке.
// Ошибки без категории считаются внутренними.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindInternal
}

// Is : проверяет категорию ошибки
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus : HTTP статус для категории
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage : сообщение, которое можно отдать клиенту. Для внутренних ошибок
// причина никогда не раскрывается.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	if errors.Is(err, ErrNotFound) {
		return "not found"
	}
	return "something went wrong"
}

// PublicDetails : список деталей ошибки валидации, никогда не nil
func PublicDetails(err error) []string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind == KindValidation && appErr.Details != nil {
		return appErr.Details
	}
	return []string{}
}
