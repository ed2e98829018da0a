package domain

import (
	"errors"
	"fmt"
)

// Классы ошибок. Каждая бизнес-ошибка оборачивает ровно один из них.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
)

// Определение бизнес-ошибок
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrEmployeeNotFound   = fmt.Errorf("employee %w", ErrNotFound)
	ErrFeedbackNotFound   = fmt.Errorf("feedback %w", ErrNotFound)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidManager     = fmt.Errorf("%w: invalid manager id", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: role must be manager or employee", ErrValidation)
	ErrInvalidSentiment   = fmt.Errorf("%w: sentiment must be positive, neutral or negative", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect email or password", ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("%w: could not validate credentials", ErrUnauthenticated)
)

// Kind - класс ошибки, по которому транспорт выбирает статус ответа
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindValidation
	KindConflict
)

// KindOf определяет класс ошибки по цепочке обёрток
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindInternal
	}
}

// Forbidden создаёт ошибку авторизации с пояснением
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// Invalid создаёт ошибку валидации с пояснением
func Invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
