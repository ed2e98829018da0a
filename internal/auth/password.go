package auth

import (
	"errors"
	"fmt"

	"github.com/feedback-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt учитывает только первые 72 байта пароля и отказывает на более длинных
var ErrPasswordTooLong = domain.Invalid("password must not exceed 72 bytes")

// PasswordHasher хеширует и проверяет пароли через bcrypt
type PasswordHasher struct {
	cost int
	// dummyHash сравнивается, когда пользователь не найден,
	// чтобы отказ занимал столько же времени, сколько неверный пароль
	dummyHash []byte
}

// NewPasswordHasher создаёт хешер с заданной стоимостью
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("feedback-api-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash возвращает необратимый солёный хеш пароля
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хешу
func (h *PasswordHasher) Verify(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Burn выполняет сравнение с фиктивным хешем; результат не важен
func (h *PasswordHasher) Burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
