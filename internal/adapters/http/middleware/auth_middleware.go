package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type Mode string

const (
	ModeNone   Mode = "none"
	ModeAPIKey Mode = "api_key"
	ModeJWT    Mode = "jwt"
)

// EmailContextKey is where the jwt mode stores the acting account's
// email; handlers read it for ownership stamping.
const EmailContextKey = "email"

func ParseAuthMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeNone, nil
	case ModeNone, ModeAPIKey, ModeJWT:
		return Mode(s), nil
	default:
		return "", errors.New("invalid auth mode")
	}
}

type TokenVerifier interface {
	Verify(token string) (email string, err error)
}

func AuthMiddleware(mode Mode, apiKey string, verifier TokenVerifier) (echo.MiddlewareFunc, error) {
	switch mode {
	case ModeAPIKey:
		if apiKey == "" {
			return nil, errors.New("api key is required when AUTH_MODE=api_key")
		}
	case ModeJWT:
		if verifier == nil {
			return nil, errors.New("token verifier is required when AUTH_MODE=jwt")
		}
	case ModeNone:
	default:
		return nil, errors.New("invalid auth mode")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch mode {
			case ModeNone:
				return next(c)
			case ModeAPIKey:
				got := c.Request().Header.Get("X-API-Key")
				if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) == 0 {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
				}
				return next(c)
			case ModeJWT:
				authHeader := c.Request().Header.Get("Authorization")
				if authHeader == "" {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization token"})
				}
				tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
				if tokenString == "" {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization token"})
				}
				email, err := verifier.Verify(tokenString)
				if err != nil {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				}
				c.Set(EmailContextKey, email)
				return next(c)
			default:
				return echo.NewHTTPError(http.StatusInternalServerError, "invalid auth mode")
			}
		}
	}, nil
}
