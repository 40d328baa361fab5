package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"stayadmin/config"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "stayadmin-dev"
	}
	return []byte(secret)
}

// GenerateSessionToken creates a signed JWT carrying the console session id.
// The browser holds this token; the remote API bearer credential never leaves
// the server-side session store.
func GenerateSessionToken(sessionID, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   sessionID,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ParseSessionToken validates a console token and returns the session id it carries.
func ParseSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid session token")
	}
	sessionID, _ := claims["sub"].(string)
	if sessionID == "" {
		return "", errors.New("session token has no subject")
	}
	return sessionID, nil
}
