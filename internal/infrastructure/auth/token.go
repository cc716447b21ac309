package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dashboard-rbac/internal/domain"
)

// JWTIssuer mints HS256 session tokens carrying the verified email.
// The same tokens authenticate later requests through the jwt auth
// middleware mode.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration

	nowFunc func() time.Time // mockable
}

func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, nowFunc: time.Now}, nil
}

func (i *JWTIssuer) Issue(email string) (string, error) {
	if email == "" {
		return "", domain.ErrInvalidInput
	}
	now := i.nowFunc().UTC()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *JWTIssuer) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return i.nowFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrCodeExpired
		}
		return "", domain.ErrInvalidInput
	}
	if !token.Valid {
		return "", domain.ErrInvalidInput
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", domain.ErrInvalidInput
	}
	return sub, nil
}
