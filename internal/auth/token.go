package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/feedback-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// TokenType - тип токена в ответе на вход
const TokenType = "bearer"

var (
	errEmptyToken    = errors.New("token is empty")
	errMissingEmail  = errors.New("token has no subject")
	errInvalidIssuer = errors.New("invalid token issuer")
)

// Claims - полезная нагрузка токена; subject содержит email пользователя
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет подписанные HS256 токены ограниченного срока жизни.
// Токен не отзывается: он действителен до истечения exp.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokenIssuer создаёт выпускающего токены из конфигурации
func NewTokenIssuer(cfg config.AuthConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	clone := *i
	clone.now = now
	return &clone
}

// TTL возвращает срок жизни выпускаемых токенов
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue подписывает токен для email со сроком now+ttl
func (i *TokenIssuer) Issue(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errMissingEmail
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись, срок и издателя и возвращает email из токена
func (i *TokenIssuer) Parse(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", errEmptyToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	if claims.Issuer != i.issuer {
		return "", errInvalidIssuer
	}
	if claims.Subject == "" {
		return "", errMissingEmail
	}

	return claims.Subject, nil
}
