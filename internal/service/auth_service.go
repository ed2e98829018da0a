package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feedback-api/internal/domain"
	"github.com/feedback-api/internal/dto"
	"github.com/feedback-api/internal/repository"
)

// PasswordHasher - хеширование паролей (реализация: auth.PasswordHasher)
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
	Burn(password string)
}

// TokenIssuer - выпуск и проверка токенов доступа (реализация: auth.TokenIssuer)
type TokenIssuer interface {
	Issue(email string) (string, error)
	Parse(token string) (string, error)
	TTL() time.Duration
}

// Token - выданный токен доступа
type Token struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// AuthService определяет регистрацию, вход и разрешение токенов
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*Token, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewAuthService создаёт новый экземпляр сервиса
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.Invalid("name must not be empty")
	}
	email := strings.TrimSpace(req.Email)

	// Проверяем уникальность email до хеширования пароля
	_, err = s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	var manager *domain.User
	if req.ManagerID != nil {
		manager, err = s.userRepo.GetByID(ctx, *req.ManagerID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidManager
		}
		if err != nil {
			return nil, err
		}
		if !manager.IsManager() {
			return nil, domain.ErrInvalidManager
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ManagerID:    req.ManagerID,
	}

	// Уникальный индекс ловит одновременную регистрацию с тем же email
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Manager = manager

	return user, nil
}

// VerifyCredentials возвращает пользователя только при совпадении пароля.
// Неизвестный email и неверный пароль неразличимы ни по ошибке, ни по времени ответа.
func (s *authService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		s.hasher.Burn(password)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*Token, error) {
	user, err := s.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Token{AccessToken: token, ExpiresIn: s.tokens.TTL()}, nil
}

// ResolveToken проверяет токен и заново находит пользователя по email на каждый запрос
func (s *authService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.Parse(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
